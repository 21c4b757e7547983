// Command tilechains extracts the collision loops of a level and prints them
// with the walk statistics of every int grid layer.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"chosenoffset.com/tilekit/internal/core/chains"
	"chosenoffset.com/tilekit/internal/world/maploader"
)

type layerReport struct {
	Layer    string         `json:"layer"`
	GridSize int            `json:"grid_size"`
	Stats    chains.Stats   `json:"stats"`
	Loops    [][]chains.Vec `json:"loops"`
}

type report struct {
	Project string        `json:"project"`
	Level   string        `json:"level"`
	Layers  []layerReport `json:"layers"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("tilechains: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tilechains", flag.ContinueOnError)
	fs.SetOutput(out)
	levelName := fs.String("level", "", "level identifier (default: first level)")
	collision := fs.String("collision", "wall", "comma separated int grid names that are solid")
	scale := fs.Float64("scale", 1, "draw scale applied on top of the cell size")
	keepColinear := fs.Bool("keep-colinear", false, "keep every unit corner")
	asJSON := fs.Bool("json", false, "print JSON instead of text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tilechains [flags] project.json")
	}
	if *scale <= 0 {
		return fmt.Errorf("invalid scale: %g", *scale)
	}

	project, err := maploader.LoadProject(fs.Arg(0))
	if err != nil {
		return err
	}

	name := *levelName
	if name == "" {
		names := project.LevelNames()
		if len(names) == 0 {
			return fmt.Errorf("project %s has no levels", fs.Arg(0))
		}
		name = names[0]
	}

	level, err := project.Level(name)
	if err != nil {
		return err
	}

	rep := report{Project: project.Name, Level: level.Identifier}
	names := splitNames(*collision)
	for i := range level.Layers {
		layer := &level.Layers[i]
		if layer.Type != maploader.LayerIntGrid {
			continue
		}

		cellSize := float64(layer.GridSize)
		result := chains.Extract(layer.SolidGrid(names), chains.Options{
			CellSize:     cellSize,
			Scale:        *scale,
			KeepColinear: *keepColinear,
		})
		rep.Layers = append(rep.Layers, layerReport{
			Layer:    layer.Identifier,
			GridSize: layer.GridSize,
			Stats:    result.Stats,
			Loops:    result.Scaled(cellSize * *scale),
		})
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	writeText(out, rep)
	return nil
}

func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func writeText(out io.Writer, rep report) {
	fmt.Fprintf(out, "%s / %s\n", rep.Project, rep.Level)
	for _, l := range rep.Layers {
		st := l.Stats
		fmt.Fprintf(out, "layer %s: %d loops, %d boundary edges, %d consumed, %d dropped, %d open, %d truncated, %d discarded\n",
			l.Layer, st.Loops, st.BoundaryEdges, st.ConsumedEdges, st.DroppedEdges, st.OpenChains, st.Truncated, st.Discarded)
		for i, loop := range l.Loops {
			fmt.Fprintf(out, "  loop %d (%d vertices):", i, len(loop))
			for _, v := range loop {
				fmt.Fprintf(out, " %g,%g", v.X, v.Y)
			}
			fmt.Fprintln(out)
		}
	}
}
