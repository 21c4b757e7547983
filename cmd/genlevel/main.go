// Command genlevel writes a project of procedurally generated cave levels
// together with the placeholder tileset they are drawn with.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"chosenoffset.com/tilekit/internal/world/procgen"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("genlevel: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	defaults := procgen.DefaultCaveOptions()

	fs := flag.NewFlagSet("genlevel", flag.ContinueOnError)
	fs.SetOutput(out)
	dir := fs.String("out", "data/caves", "output directory")
	name := fs.String("name", "caves", "project name, also the project file name")
	levels := fs.Int("levels", 1, "number of levels")
	width := fs.Int("width", defaults.Width, "level width in cells")
	height := fs.Int("height", defaults.Height, "level height in cells")
	tileSize := fs.Int("tile", defaults.TileSize, "cell size in pixels")
	seed := fs.Int64("seed", defaults.Seed, "seed of the first level")
	octaves := fs.Int("octaves", defaults.Octaves, "noise octaves")
	frequency := fs.Float64("frequency", defaults.Frequency, "base noise frequency per cell")
	threshold := fs.Float64("threshold", defaults.Threshold, "noise above this is solid, in [-1, 1]")
	border := fs.Int("border", defaults.Border, "solid frame thickness in cells")
	if err := fs.Parse(args); err != nil {
		return err
	}

	project, err := procgen.GenerateProject(procgen.ProjectOptions{
		Name:   *name,
		Levels: *levels,
		Cave: procgen.CaveOptions{
			Width:     *width,
			Height:    *height,
			TileSize:  *tileSize,
			Seed:      *seed,
			Octaves:   *octaves,
			Frequency: *frequency,
			Threshold: *threshold,
			Border:    *border,
		},
	})
	if err != nil {
		return err
	}

	path, err := procgen.WriteProject(*dir, project)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %d level(s) to %s\n", len(project.Levels), path)
	return nil
}
