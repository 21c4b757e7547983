// Command chainview opens a window showing a level, its collision chains and
// the area visible from the cursor.
package main

import (
	"errors"
	"flag"
	"log"

	"chosenoffset.com/tilekit/internal/config"
	"chosenoffset.com/tilekit/internal/level"
	"chosenoffset.com/tilekit/internal/levelscanner"
	"chosenoffset.com/tilekit/internal/physics"
	ebitenrender "chosenoffset.com/tilekit/internal/render/ebiten"
	"chosenoffset.com/tilekit/internal/viewer"
	"chosenoffset.com/tilekit/internal/world/maploader"
)

func main() {
	configPath := flag.String("config", "tilekit.json", "config file")
	projectName := flag.String("project", "", "project file or name (default: from config, else the first one found)")
	levelName := flag.String("level", "", "level identifier (default: from config, else the first level)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	projectFile, levelID := resolveLevel(cfg, *projectName, *levelName)

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	world := physics.NewWorld(cfg.PhysicsWorldConfig())
	svc := level.NewService(cfg.LevelServiceConfig(projectFile, levelID))
	if err := svc.Init(world, renderer, loader); err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	defer svc.Unload()

	v := viewer.New(svc, world, renderer, inputMgr, cfg)

	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title + " - " + levelID)
	engine.SetWindowResizable(true)

	log.Printf("Viewing %s / %s", projectFile, levelID)
	if err := engine.RunGame(v); err != nil && !errors.Is(err, viewer.ErrQuit) {
		log.Fatal(err)
	}
}

// resolveLevel picks the project and level from flags, then config, then
// the data directory
func resolveLevel(cfg *config.Config, projectName, levelName string) (string, string) {
	if projectName == "" {
		projectName = cfg.Level.ProjectFile
	}
	if levelName == "" {
		levelName = cfg.Level.LevelName
	}

	log.Printf("Scanning %s for level projects...", cfg.Level.DataDir)
	projects, err := levelscanner.ScanDataDirectory(cfg.Level.DataDir)
	if err != nil && projectName == "" {
		log.Fatalf("Failed to scan data directory: %v", err)
	}

	entry, ok := levelscanner.FindProject(projects, projectName)
	if !ok {
		if projectName == "" {
			log.Fatalf("No level projects found in %s", cfg.Level.DataDir)
		}
		// Not under the data directory: use the path as given
		project, err := maploader.LoadProject(projectName)
		if err != nil {
			log.Fatalf("Failed to load project: %v", err)
		}
		entry = levelscanner.ProjectEntry{Name: project.Name, Path: projectName, Levels: project.LevelNames()}
	}

	if levelName == "" {
		if len(entry.Levels) == 0 {
			log.Fatalf("Project %s has no levels", entry.Path)
		}
		levelName = entry.Levels[0]
	}

	return entry.Path, levelName
}
