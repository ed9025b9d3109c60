// Command fastdc extracts the Dual Contouring mesh of one cell of a preset
// shape and writes it as STL, OBJ and PNG files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/soypat/fastdc"
	"github.com/soypat/fastdc/form3"
	"github.com/soypat/fastdc/internal/config"
	"github.com/soypat/fastdc/internal/logger"
	"github.com/soypat/fastdc/qef"
	"github.com/soypat/fastdc/render"
)

func main() {
	err := run(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "fastdc: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	flags, err := config.ParseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if flags.SaveConfig != "" {
		return cfg.SaveTo(flags.SaveConfig)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Log

	kind, _ := form3.ParseKind(cfg.Shape.Kind) // Checked by config.Load.
	shape, err := form3.NewSuperPrimitive(form3.ConfigForShape(kind), cfg.Shape.Scale)
	if err != nil {
		return err
	}
	gen, err := fastdc.NewGenerator(shape, fastdc.Config{
		CellSize:  cfg.Mesh.CellSize,
		VoxelSize: cfg.Mesh.VoxelSize,
		Workers:   cfg.Mesh.Workers,
		Solver:    solverByName(cfg.Mesh.Solver),
		Log:       log.Named("fastdc"),
	})
	if err != nil {
		return err
	}

	w := cfg.Mesh.World
	start := time.Now()
	mesh, stats, err := gen.GenerateMesh(w[0], w[1], w[2])
	if err != nil {
		return err
	}
	log.Info("generated mesh",
		zap.Stringer("shape", kind),
		zap.Ints("world", w[:]),
		zap.Int("vertices", stats.Vertices),
		zap.Int("triangles", stats.Triangles),
		zap.Int("evaluations", stats.Evaluations),
		zap.Duration("elapsed", time.Since(start)),
	)
	if mesh.IsEmpty() {
		return errors.New("cell contains no surface")
	}
	return writeOutputs(log, cfg.Output, mesh)
}

func writeOutputs(log *zap.Logger, out config.OutputConfig, mesh *fastdc.Mesh) error {
	if out.STL != "" {
		mr, err := render.NewMeshRenderer(mesh)
		if err != nil {
			return err
		}
		if err := render.CreateSTL(out.STL, mr); err != nil {
			return fmt.Errorf("writing STL: %w", err)
		}
		log.Info("wrote STL", zap.String("path", out.STL))
	}
	if out.OBJ != "" {
		if err := createOBJ(out.OBJ, mesh); err != nil {
			return fmt.Errorf("writing OBJ: %w", err)
		}
		log.Info("wrote OBJ", zap.String("path", out.OBJ))
	}
	if out.PNG != "" {
		if err := render.CreatePNG(out.PNG, mesh.Triangles3(), render.DefaultView()); err != nil {
			return fmt.Errorf("writing PNG: %w", err)
		}
		log.Info("wrote PNG", zap.String("path", out.PNG))
	}
	return nil
}

func createOBJ(path string, mesh *fastdc.Mesh) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err := render.WriteOBJ(fp, mesh); err != nil {
		return err
	}
	return fp.Close()
}

func solverByName(name string) qef.Solver {
	switch strings.ToLower(name) {
	case config.SolverRegularized:
		return qef.Regularized{}
	case config.SolverMassPoint:
		return qef.MassPoint{}
	default:
		return qef.SVD{}
	}
}
