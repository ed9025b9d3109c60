package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Flags holds command-line overrides. Only flags present on the command line
// override file and default values.
type Flags struct {
	Config string
	// SaveConfig is the path the effective configuration is written to.
	SaveConfig string

	debug     bool
	cellSize  int
	voxelSize float64
	workers   int
	solver    string
	world     worldFlag
	shape     string
	scale     float64
	stl       string
	obj       string
	png       string
	logLevel  string
	logFile   string

	set map[string]bool
}

// ParseFlags parses command-line arguments, not including the program name.
func ParseFlags(args []string, output io.Writer) (*Flags, error) {
	f := &Flags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("fastdc", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.SaveConfig, "save-config", "", "Write the effective config to this path and exit")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.cellSize, "cell", 0, "Cell size in voxels per axis")
	fs.Float64Var(&f.voxelSize, "voxel", 0, "Voxel edge length in world units")
	fs.IntVar(&f.workers, "workers", 0, "Number of concurrent workers")
	fs.StringVar(&f.solver, "solver", "", "QEF solver: svd, regularized or masspoint")
	fs.Var(&f.world, "world", "World offset of the cell as x,y,z")
	fs.StringVar(&f.shape, "shape", "", "Shape preset: cube, cylinder, pill, corridor or torus")
	fs.Float64Var(&f.scale, "scale", 0, "Shape scale")
	fs.StringVar(&f.stl, "stl", "", "STL output path")
	fs.StringVar(&f.obj, "obj", "", "OBJ output path")
	fs.StringVar(&f.png, "png", "", "PNG preview output path")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&f.logFile, "log-file", "", "Rotating log file path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments %q", fs.Args())
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.set["debug"] && f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.set["log-level"] {
		cfg.Logging.Level = f.logLevel
	}
	if f.set["log-file"] {
		cfg.Logging.LogFile = f.logFile
	}
	if f.set["cell"] {
		cfg.Mesh.CellSize = f.cellSize
	}
	if f.set["voxel"] {
		cfg.Mesh.VoxelSize = float32(f.voxelSize)
	}
	if f.set["workers"] {
		cfg.Mesh.Workers = f.workers
	}
	if f.set["solver"] {
		cfg.Mesh.Solver = f.solver
	}
	if f.set["world"] {
		cfg.Mesh.World = [3]int(f.world)
	}
	if f.set["shape"] {
		cfg.Shape.Kind = f.shape
	}
	if f.set["scale"] {
		cfg.Shape.Scale = float32(f.scale)
	}
	if f.set["stl"] {
		cfg.Output.STL = f.stl
	}
	if f.set["obj"] {
		cfg.Output.OBJ = f.obj
	}
	if f.set["png"] {
		cfg.Output.PNG = f.png
	}
}

// worldFlag parses an integer triple such as "10,-4,0".
type worldFlag [3]int

func (w *worldFlag) String() string {
	return fmt.Sprintf("%d,%d,%d", w[0], w[1], w[2])
}

func (w *worldFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("want x,y,z, got %q", s)
	}
	var v worldFlag
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return err
		}
		v[i] = n
	}
	*w = v
	return nil
}
