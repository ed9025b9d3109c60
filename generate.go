package fastdc

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/chewxy/math32"
	"github.com/soypat/fastdc/qef"
	"go.uber.org/zap"
)

// ErrCellSize is returned for cell sizes outside of [1, MaxCellSize].
var ErrCellSize = errors.New("cell size out of range [1,1024]")

// Config configures a Generator. The zero value of each field selects its default.
type Config struct {
	// CellSize is the number of voxels per axis of a cell.
	CellSize int
	// VoxelSize is the world length of a voxel edge. Defaults to 1.
	VoxelSize float32
	// Workers is the number of goroutines used per pass. Values below 2 run
	// all passes on the calling goroutine. The SDF3 must be safe for
	// concurrent use when Workers > 1.
	Workers int
	// Solver places vertices. Defaults to qef.SVD with default tolerance.
	Solver qef.Solver
	// Log receives per-pass debug statistics. Defaults to a no-op logger.
	Log *zap.Logger
	// UserData is passed to every SDF3.Evaluate call.
	UserData any
}

// Stats describes the work done generating a cell's mesh.
type Stats struct {
	ActiveVoxels int
	Edges        int
	Vertices     int
	Triangles    int
	// Evaluations is the number of positions the density field was evaluated at.
	Evaluations int
}

// Generator extracts meshes of fixed size cells from a density field.
type Generator struct {
	sdf SDF3
	cfg Config
}

// NewGenerator returns a Generator for s after validating cfg.
func NewGenerator(s SDF3, cfg Config) (*Generator, error) {
	if s == nil {
		return nil, errors.New("nil SDF3")
	}
	if cfg.CellSize < 1 || cfg.CellSize > MaxCellSize {
		return nil, fmt.Errorf("%w: got %d", ErrCellSize, cfg.CellSize)
	}
	if cfg.VoxelSize == 0 {
		cfg.VoxelSize = 1
	} else if cfg.VoxelSize < 0 || math32.IsNaN(cfg.VoxelSize) || math32.IsInf(cfg.VoxelSize, 0) {
		return nil, fmt.Errorf("invalid voxel size %g", cfg.VoxelSize)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Solver == nil {
		cfg.Solver = qef.SVD{}
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	return &Generator{sdf: s, cfg: cfg}, nil
}

// Config returns the generator's configuration with defaults filled in.
func (g *Generator) Config() Config { return g.cfg }

// GenerateMesh extracts the mesh of the cell centred on the world offset. The
// mesh is owned by the caller. Output is identical for any number of workers.
func (g *Generator) GenerateMesh(worldX, worldY, worldZ int) (*Mesh, Stats, error) {
	var stats Stats
	var pool pond.Pool
	if g.cfg.Workers > 1 {
		pool = pond.NewPool(g.cfg.Workers)
		defer pool.StopAndWait()
	}
	log := g.cfg.Log.With(zap.Int("x", worldX), zap.Int("y", worldY), zap.Int("z", worldZ))
	grid := newCellGrid([3]int{worldX, worldY, worldZ}, g.cfg.CellSize, g.cfg.VoxelSize)

	start := time.Now()
	edges, active, evals, err := g.scan(pool, grid)
	if err != nil {
		return nil, stats, err
	}
	stats.ActiveVoxels = len(active)
	stats.Edges = len(edges)
	stats.Evaluations = evals
	log.Debug("scanned edges",
		zap.Int("edges", stats.Edges),
		zap.Int("activeVoxels", stats.ActiveVoxels),
		zap.Int("evaluations", evals),
		zap.Duration("elapsed", time.Since(start)),
	)

	mesh := &Mesh{
		Vertices:  make([]Vertex, 0, len(active)),
		Triangles: make([]Triangle, 0, 2*len(edges)),
	}

	start = time.Now()
	voxels := sortedKeys(active)
	placements := make([]placed, len(voxels))
	forEachPart(pool, len(voxels), g.cfg.Workers, func(lo, hi int) {
		placeVertices(placements, voxels, edges, g.cfg.Solver, lo, hi)
	})
	index := compactVertices(mesh, voxels, placements)
	stats.Vertices = len(mesh.Vertices)
	log.Debug("placed vertices", zap.Int("vertices", stats.Vertices), zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	edgeIDs := sortedKeys(edges)
	quads := make([]quad, len(edgeIDs))
	forEachPart(pool, len(edgeIDs), g.cfg.Workers, func(lo, hi int) {
		triangulateEdges(quads, edgeIDs, edges, index, lo, hi)
	})
	compactTriangles(mesh, quads)
	stats.Triangles = len(mesh.Triangles)
	log.Debug("triangulated", zap.Int("triangles", stats.Triangles), zap.Duration("elapsed", time.Since(start)))
	return mesh, stats, nil
}

// scan finds all crossing edges of the cell and the voxels sharing them.
// With a pool the cell is split into z slabs scanned concurrently.
func (g *Generator) scan(pool pond.Pool, grid cellGrid) (map[EdgeID]EdgeInfo, map[VoxelID]struct{}, int, error) {
	parts := g.cfg.Workers
	slabs := make([]slabScan, min(parts, grid.n))
	samplers := make([]*sampler, len(slabs))
	err := runParts(pool, grid.n, len(slabs), func(part, z0, z1 int) error {
		samplers[part] = newSampler(g.sdf, g.cfg.UserData)
		return scanSlab(samplers[part], grid, z0, z1, &slabs[part])
	})
	if err != nil {
		return nil, nil, 0, fmt.Errorf("scanning cell: %w", err)
	}
	var nedges, evals int
	for i := range slabs {
		nedges += len(slabs[i].edges)
		evals += samplers[i].evals
	}
	edges := make(map[EdgeID]EdgeInfo, nedges)
	active := make(map[VoxelID]struct{}, nedges)
	for _, slab := range slabs {
		for _, e := range slab.edges {
			edges[e.id] = e.info
		}
		for _, v := range slab.voxels {
			active[v] = struct{}{}
		}
	}
	return edges, active, evals, nil
}

func sortedKeys[K ~uint32, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// GenerateMesh extracts the mesh of a cell of cellSize³ unit voxels centred
// on the world offset using the default configuration.
func GenerateMesh(s SDF3, worldX, worldY, worldZ, cellSize int) (*Mesh, error) {
	g, err := NewGenerator(s, Config{CellSize: cellSize})
	if err != nil {
		return nil, err
	}
	mesh, _, err := g.GenerateMesh(worldX, worldY, worldZ)
	return mesh, err
}
