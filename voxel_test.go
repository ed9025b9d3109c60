package fastdc

import (
	"math/rand"
	"testing"
)

func TestVoxelIDRoundTrip(t *testing.T) {
	check := func(x, y, z int) {
		gx, gy, gz := EncodeVoxelID(x, y, z).Decode()
		if gx != x || gy != y || gz != z {
			t.Fatalf("round trip (%d,%d,%d) got (%d,%d,%d)", x, y, z, gx, gy, gz)
		}
	}
	// Exhaustive on the faces of the coordinate cube, random inside.
	for a := 0; a < MaxCellSize; a++ {
		for _, b := range []int{0, 1, MaxCellSize - 2, MaxCellSize - 1} {
			check(a, b, b)
			check(b, a, b)
			check(b, b, a)
		}
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1<<16; i++ {
		check(rng.Intn(MaxCellSize), rng.Intn(MaxCellSize), rng.Intn(MaxCellSize))
	}
}

func TestEdgeID(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		for _, p := range [][3]int{{0, 0, 0}, {1023, 1023, 1023}, {5, 900, 17}} {
			id := EncodeEdgeID(axis, p[0], p[1], p[2])
			if id.Axis() != axis {
				t.Errorf("axis: got %v, want %v", id.Axis(), axis)
			}
			if id.Base() != EncodeVoxelID(p[0], p[1], p[2]) {
				t.Errorf("base of %v edge at %v mismatch", axis, p)
			}
			if uint32(id.Base())&axisMask != 0 {
				t.Errorf("base %#x overlaps axis bits", id.Base())
			}
		}
	}
}

func TestAxisString(t *testing.T) {
	for _, test := range []struct {
		a    Axis
		want string
	}{
		{AxisX, "x"}, {AxisY, "y"}, {AxisZ, "z"}, {Axis(7), "Axis(7)"},
	} {
		if got := test.a.String(); got != test.want {
			t.Errorf("got %q, want %q", got, test.want)
		}
	}
}

// Tables must match offsets computed in 3D coordinates and re-encoded.
func TestOffsetTables(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 2000; i++ {
		// Keep away from the limits so no offset leaves [0,1023].
		x, y, z := 1+rng.Intn(1021), 1+rng.Intn(1021), 1+rng.Intn(1021)
		for axis := AxisX; axis <= AxisZ; axis++ {
			edge := EncodeEdgeID(axis, x, y, z)
			voxels, ok := edgeVoxels(edge)
			for k := range voxels {
				d := edgeVoxelSteps[int(axis)*4+k]
				want := EncodeVoxelID(x-d[0], y-d[1], z-d[2])
				if !ok[k] || voxels[k] != want {
					t.Fatalf("edge %v (%d,%d,%d) voxel %d: got %#x, want %#x", axis, x, y, z, k, voxels[k], want)
				}
			}
		}
		voxel := EncodeVoxelID(x, y, z)
		for k := 0; k < 12; k++ {
			step := voxelEdgeSteps[k]
			want := EncodeEdgeID(step.axis, x+step.d[0], y+step.d[1], z+step.d[2])
			got, ok := voxelEdge(voxel, k)
			if !ok || got != want {
				t.Fatalf("voxel (%d,%d,%d) edge %d: got %#x, want %#x", x, y, z, k, got, want)
			}
		}
	}
}

// Every edge of a voxel must list that voxel among the edge's 4 voxels.
func TestOffsetTablesInverse(t *testing.T) {
	voxel := EncodeVoxelID(10, 20, 30)
	for k := 0; k < 12; k++ {
		edge, _ := voxelEdge(voxel, k)
		voxels, _ := edgeVoxels(edge)
		found := false
		for _, v := range voxels {
			found = found || v == voxel
		}
		if !found {
			t.Errorf("edge %d (%#x) of voxel does not reference it: %x", k, edge, voxels)
		}
	}
}

func TestOffsetLimits(t *testing.T) {
	// Edges at the lower boundary drop voxels with negative coordinates.
	_, ok := edgeVoxels(EncodeEdgeID(AxisX, 0, 0, 0))
	if ok != [4]bool{true, false, false, false} {
		t.Errorf("x edge at origin: got %v", ok)
	}
	_, ok = edgeVoxels(EncodeEdgeID(AxisZ, 3, 0, 9))
	if ok != [4]bool{true, false, true, false} {
		t.Errorf("z edge at y=0: got %v", ok)
	}
	// Voxels at the upper limit skip edges that would carry.
	top := EncodeVoxelID(MaxCellSize-1, 5, 5)
	for k := 0; k < 12; k++ {
		_, ok := voxelEdge(top, k)
		if want := voxelEdgeSteps[k].d[0] == 0; ok != want {
			t.Errorf("edge %d of voxel at x=1023: got ok=%v", k, ok)
		}
	}
}
