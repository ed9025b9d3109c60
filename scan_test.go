package fastdc

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// TestScanSlabRootSearch pins the crossing search on fields linear in x over
// a 2³ cell at unit resolution, where grid x indices 0,1,2 sit at -1,0,1.
func TestScanSlabRootSearch(t *testing.T) {
	for _, tc := range []struct {
		name     string
		sdf      DensityFunc
		wantX    int // Grid x index of every crossing edge's base.
		wantPos  float32
		winding  bool
		wantEdge int
	}{
		{
			// |d| ties at t=0 and t=1/16: the first sample wins.
			name:     "tie",
			sdf:      func(p ms3.Vec) float32 { return p.X - 1.0/32 },
			wantX:    1,
			wantPos:  0,
			winding:  false,
			wantEdge: 4,
		},
		{
			// Zero density counts as outside so only the edge from -1 to 0
			// crosses. Sample t=15/16 is the closest of the 16.
			name:     "zero at grid point",
			sdf:      func(p ms3.Vec) float32 { return p.X },
			wantX:    0,
			wantPos:  -0.0625,
			winding:  false,
			wantEdge: 4,
		},
		{
			name:     "decreasing",
			sdf:      func(p ms3.Vec) float32 { return 0.5 - p.X },
			wantX:    1,
			wantPos:  0.5,
			winding:  true,
			wantEdge: 4,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			const n = 2
			g := newCellGrid([3]int{}, n, 1)
			var dst slabScan
			s := newSampler(tc.sdf, nil)
			if err := scanSlab(s, g, 0, n, &dst); err != nil {
				t.Fatal(err)
			}
			if len(dst.edges) != tc.wantEdge {
				t.Fatalf("got %d crossing edges, want %d", len(dst.edges), tc.wantEdge)
			}
			for _, e := range dst.edges {
				x, _, _ := e.id.Base().Decode()
				if e.id.Axis() != AxisX || x != tc.wantX {
					t.Errorf("edge %v axis %v at x index %d, want x axis at %d", e.id, e.id.Axis(), x, tc.wantX)
				}
				if e.info.Pos.X != tc.wantPos {
					t.Errorf("edge %v root at x=%g, want %g", e.id, e.info.Pos.X, tc.wantPos)
				}
				if e.info.Winding != tc.winding {
					t.Errorf("edge %v winding %v, want %v", e.id, e.info.Winding, tc.winding)
				}
				wantNormal := ms3.Vec{X: 1}
				if tc.winding {
					wantNormal.X = -1
				}
				if !ms3.EqualElem(e.info.Normal, wantNormal, 1e-3) {
					t.Errorf("edge %v normal %v, want %v", e.id, e.info.Normal, wantNormal)
				}
			}
			// Grid layers plus root and gradient samples per edge.
			wantEvals := (n+1)*(n+1)*(n+1) + tc.wantEdge*(rootSamples+6)
			if s.evals != wantEvals {
				t.Errorf("got %d evaluations, want %d", s.evals, wantEvals)
			}
		})
	}
}

func TestScanSlabRootSamplesSpacing(t *testing.T) {
	// Surface at 0.3 between grid x=0 and x=1: nearest sample is t=5/16.
	sdf := DensityFunc(func(p ms3.Vec) float32 { return p.X - 0.3 })
	g := newCellGrid([3]int{}, 2, 1)
	var dst slabScan
	if err := scanSlab(newSampler(sdf, nil), g, 0, 2, &dst); err != nil {
		t.Fatal(err)
	}
	if len(dst.edges) == 0 {
		t.Fatal("no crossing edges")
	}
	for _, e := range dst.edges {
		if math32.Abs(e.info.Pos.X-0.3125) > 1e-6 {
			t.Errorf("root at %g, want 0.3125", e.info.Pos.X)
		}
	}
}
