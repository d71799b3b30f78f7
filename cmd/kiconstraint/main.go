package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/dimension"
	"github.com/dshills/kiconstraint/pkg/kiconfig"
	"github.com/dshills/kiconstraint/pkg/padmap"
	"github.com/dshills/kiconstraint/pkg/render"
	"github.com/dshills/kiconstraint/pkg/shapemap"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	verb := os.Args[1]
	args := os.Args[2:]

	var err error
	switch verb {
	case "solve":
		err = runSolve(args)
	case "build", "install":
		err = runPassThrough(verb, args)
	case "-version", "--version", "version":
		fmt.Printf("kiconstraint version %s\n", version)
		return
	case "-help", "--help", "help":
		printHelp()
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown verb %q\n", verb)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runPassThrough handles the host-toolchain verbs. Actually invoking a
// board's native build/install step is an external-collaborator concern
// outside this module's scope; these verbs exist so the CLI's surface
// matches a host plugin's expected entry points.
func runPassThrough(verb string, args []string) error {
	fs := flag.NewFlagSet(verb, flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "enable verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *verbose {
		fmt.Printf("%s: no-op in this module; delegate to the host toolchain\n", verb)
	}
	fmt.Printf("%s: ok\n", verb)
	return nil
}

func runSolve(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	fixturePath := fs.String("fixture", "", "path to a board fixture JSON file (required)")
	configPath := fs.String("config", "", "path to a kiconfig YAML file (default config if empty)")
	outDir := fs.String("output", "", "directory to write the solved fixture and SVG renders (default: none)")
	svgOut := fs.Bool("svg", false, "render before/after SVG snapshots into -output")
	verbose := fs.Bool("verbose", false, "enable verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fixturePath == "" {
		return fmt.Errorf("-fixture flag is required")
	}

	cfg := kiconfig.DefaultConfig()
	if *configPath != "" {
		loaded, err := kiconfig.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = *loaded
	}

	if *verbose {
		fmt.Printf("Loading fixture from %s\n", *fixturePath)
	}
	fx, err := board.LoadFixture(*fixturePath)
	if err != nil {
		return fmt.Errorf("loading fixture: %w", err)
	}

	s := sketch.New()

	geoms := make([]dimension.Geometry, 0, len(fx.Shapes)+len(fx.Pads))
	mappedShapes := make([]shapemap.MappedGeometry, 0, len(fx.Shapes))
	for i, shape := range fx.Shapes {
		mapped, err := shapemap.MapShape(s, shape)
		if err != nil {
			return fmt.Errorf("mapping shape[%d]: %w", i, err)
		}
		mappedShapes = append(mappedShapes, mapped)
		geoms = append(geoms, mapped)
	}

	mappedPads := make([]*padmap.MappedPad, 0, len(fx.Pads))
	for i := range fx.Pads {
		mapped, err := padmap.MapPad(s, &fx.Pads[i])
		if err != nil {
			return fmt.Errorf("mapping pad[%d]: %w", i, err)
		}
		mappedPads = append(mappedPads, mapped)
		geoms = append(geoms, mapped)
	}

	if *svgOut && *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		renderGeoms := toRenderGeometry(geoms)
		if err := render.SaveToFile(s, renderGeoms, cfg.Render, filepath.Join(*outDir, "before.svg")); err != nil {
			return fmt.Errorf("rendering before.svg: %w", err)
		}
	}

	mapping, err := dimension.BuildMapping(s, fx.Dimensions, geoms, cfg.Tolerance.PointMatch)
	if err != nil {
		return fmt.Errorf("building dimension mapping: %w", err)
	}
	reg := mapping.BuildRegistry()
	if err := dimension.ApplyDimensionConstraints(s, mapping, reg); err != nil {
		return fmt.Errorf("applying dimension constraints: %w", err)
	}

	start := time.Now()
	result := s.Solve()
	elapsed := time.Since(start)
	if *verbose {
		fmt.Printf("Solve completed in %v\n", elapsed)
	}

	fmt.Printf("ok=%t dof=%d\n", result.Ok, result.Dof)

	if !result.Ok {
		return nil
	}

	for i, mapped := range mappedShapes {
		if err := mapped.WriteBack(s); err != nil {
			return fmt.Errorf("writing back shape[%d]: %w", i, err)
		}
	}
	for i, mapped := range mappedPads {
		if err := mapped.WriteBack(s); err != nil {
			return fmt.Errorf("writing back pad[%d]: %w", i, err)
		}
	}
	if err := dimension.WriteBack(s, mapping); err != nil {
		return fmt.Errorf("writing back dimensions: %w", err)
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		solvedPath := filepath.Join(*outDir, "solved.json")
		if err := fx.SaveJSON(solvedPath); err != nil {
			return fmt.Errorf("saving solved fixture: %w", err)
		}
		if *verbose {
			fmt.Printf("Wrote solved fixture to %s\n", solvedPath)
		}
		if *svgOut {
			renderGeoms := toRenderGeometry(geoms)
			if err := render.SaveToFile(s, renderGeoms, cfg.Render, filepath.Join(*outDir, "after.svg")); err != nil {
				return fmt.Errorf("rendering after.svg: %w", err)
			}
		}
	}

	return nil
}

func toRenderGeometry(geoms []dimension.Geometry) []render.Geometry {
	out := make([]render.Geometry, len(geoms))
	for i, g := range geoms {
		out[i] = g
	}
	return out
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: kiconstraint <solve|build|install> [options]")
	fmt.Fprintln(os.Stderr, "Run 'kiconstraint -help' for detailed help")
}

func printHelp() {
	fmt.Printf("kiconstraint version %s\n\n", version)
	fmt.Println("A command-line driver for the constraint-construction pipeline.")
	fmt.Println("\nUsage:")
	fmt.Println("  kiconstraint solve -fixture <fixture.json> [options]")
	fmt.Println("  kiconstraint build")
	fmt.Println("  kiconstraint install")
	fmt.Println("\nsolve flags:")
	fmt.Println("  -fixture string")
	fmt.Println("        Path to a board fixture JSON file (required)")
	fmt.Println("  -config string")
	fmt.Println("        Path to a kiconfig YAML file (default config if empty)")
	fmt.Println("  -output string")
	fmt.Println("        Directory to write the solved fixture and SVG renders")
	fmt.Println("  -svg")
	fmt.Println("        Render before/after SVG snapshots into -output")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("\nbuild and install are pass-through stubs: the host toolchain owns the")
	fmt.Println("actual plugin build/install step, outside this module's scope.")
}
