// Package levelscanner discovers level projects in a data directory.
package levelscanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/tilekit/internal/world/maploader"
)

// ProjectEntry is a discoverable project file
type ProjectEntry struct {
	Name   string   // Project name, or the file name when the project has none
	Path   string   // Path of the project file
	Levels []string // Level identifiers in file order
}

// ScanDataDirectory finds the project files in dataPath and its direct
// subdirectories. JSON files that are not projects with at least one level
// (atlas configs, external level files) are skipped.
func ScanDataDirectory(dataPath string) ([]ProjectEntry, error) {
	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	projects := scanFiles(dataPath, entries)

	for _, entry := range entries {
		dirName := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(dirName, ".") {
			continue
		}

		dirPath := filepath.Join(dataPath, dirName)
		subEntries, err := os.ReadDir(dirPath)
		if err != nil {
			// Skip directories that can't be read
			continue
		}
		projects = append(projects, scanFiles(dirPath, subEntries)...)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Path < projects[j].Path
	})

	return projects, nil
}

func scanFiles(dir string, entries []os.DirEntry) []ProjectEntry {
	var projects []ProjectEntry

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}

		path := filepath.Join(dir, name)
		project, err := maploader.LoadProject(path)
		if err != nil || len(project.Levels) == 0 {
			continue
		}

		displayName := project.Name
		if displayName == "" {
			displayName = strings.TrimSuffix(name, filepath.Ext(name))
		}

		projects = append(projects, ProjectEntry{
			Name:   displayName,
			Path:   path,
			Levels: project.LevelNames(),
		})
	}

	return projects
}

// FindProject returns the entry whose name or path matches, or the first
// entry when name is empty
func FindProject(projects []ProjectEntry, name string) (ProjectEntry, bool) {
	if len(projects) == 0 {
		return ProjectEntry{}, false
	}
	if name == "" {
		return projects[0], true
	}
	for _, p := range projects {
		if p.Name == name || p.Path == name || filepath.Base(p.Path) == name {
			return p, true
		}
	}
	return ProjectEntry{}, false
}
