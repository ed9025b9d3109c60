// Package config handles fastdc command configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/soypat/fastdc/form3"
)

// Config holds all command settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Shape   ShapeConfig   `yaml:"shape"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds extraction settings for the generated cell.
type MeshConfig struct {
	CellSize  int     `yaml:"cell_size"`
	VoxelSize float32 `yaml:"voxel_size"`
	Workers   int     `yaml:"workers"`
	// Solver is one of svd, regularized or masspoint.
	Solver string `yaml:"solver"`
	// World is the integer world offset the cell is centred on.
	World [3]int `yaml:"world,flow"`
}

// ShapeConfig selects the density field preset.
type ShapeConfig struct {
	Kind  string  `yaml:"kind"`
	Scale float32 `yaml:"scale"`
}

// OutputConfig holds output file paths. Empty paths are not written.
type OutputConfig struct {
	STL string `yaml:"stl"`
	OBJ string `yaml:"obj"`
	PNG string `yaml:"png"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Solver names accepted in MeshConfig.
const (
	SolverSVD         = "svd"
	SolverRegularized = "regularized"
	SolverMassPoint   = "masspoint"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			CellSize:  32,
			VoxelSize: 1,
			Workers:   1,
			Solver:    SolverSVD,
		},
		Shape: ShapeConfig{
			Kind:  form3.Cube.String(),
			Scale: 10,
		},
		Output: OutputConfig{
			STL: "fastdc.stl",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks settings that would otherwise fail deep inside mesh
// generation.
func (c *Config) Validate() error {
	var errs []error
	m := c.Mesh
	if m.CellSize < 1 || m.CellSize > 1024 {
		errs = append(errs, fmt.Errorf("mesh.cell_size %d out of range [1,1024]", m.CellSize))
	}
	if !(m.VoxelSize > 0) || math.IsInf(float64(m.VoxelSize), 0) {
		errs = append(errs, fmt.Errorf("mesh.voxel_size must be positive and finite, got %v", m.VoxelSize))
	}
	if m.Workers < 0 {
		errs = append(errs, fmt.Errorf("mesh.workers must not be negative, got %d", m.Workers))
	}
	switch strings.ToLower(m.Solver) {
	case SolverSVD, SolverRegularized, SolverMassPoint:
	default:
		errs = append(errs, fmt.Errorf("mesh.solver %q unknown", m.Solver))
	}
	if _, err := form3.ParseKind(c.Shape.Kind); err != nil {
		errs = append(errs, fmt.Errorf("shape.kind: %w", err))
	}
	if !(c.Shape.Scale > 0) {
		errs = append(errs, fmt.Errorf("shape.scale must be positive, got %v", c.Shape.Scale))
	}
	if c.Output == (OutputConfig{}) {
		errs = append(errs, errors.New("no output path configured"))
	}
	return errors.Join(errs...)
}
