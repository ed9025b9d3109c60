package fastdc

import "strconv"

// Compact voxel and edge identifiers. A voxel (or grid point) is identified
// by its integer coordinates packed 10 bits per axis into the low 30 bits
// of a uint32. Edges additionally carry their axis in the top 2 bits.

const (
	// MaxCellSize is the largest grid resolution per axis that can be
	// encoded without coordinates overflowing into neighbouring fields.
	MaxCellSize = 1 << coordBits

	coordBits = 10
	coordMask = 1<<coordBits - 1 // 0x3ff
	axisShift = 3 * coordBits    // 30
	axisMask  = 3 << axisShift   // 0xc0000000
)

// Axis is a principal grid axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "Axis(" + strconv.Itoa(int(a)) + ")"
}

// VoxelID packs integer grid coordinates in [0,1023] into 30 bits.
type VoxelID uint32

// EncodeVoxelID packs x,y,z into a VoxelID. Coordinates outside of [0,1023]
// silently corrupt the higher fields; callers must keep them in range.
func EncodeVoxelID(x, y, z int) VoxelID {
	return VoxelID(x | y<<coordBits | z<<(2*coordBits))
}

// Decode unpacks the grid coordinates of the voxel.
func (id VoxelID) Decode() (x, y, z int) {
	return int(id & coordMask), int(id>>coordBits) & coordMask, int(id>>(2*coordBits)) & coordMask
}

// EdgeID identifies the grid edge starting at a base grid point and running
// one unit along an axis.
type EdgeID uint32

// EncodeEdgeID packs the edge's base grid point and its axis.
func EncodeEdgeID(axis Axis, x, y, z int) EdgeID {
	return EdgeID(EncodeVoxelID(x, y, z)) | EdgeID(axis)<<axisShift
}

// Axis returns the direction of the edge.
func (id EdgeID) Axis() Axis { return Axis(id >> axisShift) }

// Base returns the grid point the edge starts at.
func (id EdgeID) Base() VoxelID { return VoxelID(id &^ axisMask) }

// The two lookup tables below were calculated by expanding the IDs into 3D
// coordinates, performing the offsets in 3D space and converting back into
// the compact form, subtracting the base ID. They allow neighbour lookups
// with integer arithmetic on the encoded form.

// edgeVoxelOffsets is indexed by axis*4+i. Subtracting entry i from an edge's
// base gives the i'th of the 4 voxels sharing that edge.
var edgeVoxelOffsets = [12]uint32{
	0x00000000,
	0x00100000,
	0x00000400,
	0x00100400,
	0x00000000,
	0x00000001,
	0x00100000,
	0x00100001,
	0x00000000,
	0x00000400,
	0x00000001,
	0x00000401,
}

// voxelEdgeOffsets added to a voxel ID gives the 12 edges bounding the voxel.
var voxelEdgeOffsets = [12]uint32{
	0x00000000,
	0x00100000,
	0x00000400,
	0x00100400,
	0x40000000,
	0x40100000,
	0x40000001,
	0x40100001,
	0x80000000,
	0x80000400,
	0x80000001,
	0x80000401,
}

// edgeVoxelSteps are the 3D offsets edgeVoxelOffsets were derived from.
var edgeVoxelSteps = [12][3]int{
	{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1}, // X
	{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {1, 0, 1}, // Y
	{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 0}, // Z
}

// voxelEdgeSteps are the 3D offsets voxelEdgeOffsets were derived from.
var voxelEdgeSteps = [12]struct {
	axis Axis
	d    [3]int
}{
	{AxisX, [3]int{0, 0, 0}}, {AxisX, [3]int{0, 0, 1}}, {AxisX, [3]int{0, 1, 0}}, {AxisX, [3]int{0, 1, 1}},
	{AxisY, [3]int{0, 0, 0}}, {AxisY, [3]int{0, 0, 1}}, {AxisY, [3]int{1, 0, 0}}, {AxisY, [3]int{1, 0, 1}},
	{AxisZ, [3]int{0, 0, 0}}, {AxisZ, [3]int{0, 1, 0}}, {AxisZ, [3]int{1, 0, 0}}, {AxisZ, [3]int{1, 1, 0}},
}

// edgeVoxels returns the IDs of the 4 voxels sharing the edge. ok[i] is false
// where the voxel would have a negative coordinate, in which case the
// subtraction would borrow from a neighbouring field.
func edgeVoxels(edge EdgeID) (voxels [4]VoxelID, ok [4]bool) {
	base := edge.Base()
	x, y, z := base.Decode()
	k := int(edge.Axis()) * 4
	for i := range voxels {
		step := edgeVoxelSteps[k+i]
		ok[i] = x >= step[0] && y >= step[1] && z >= step[2]
		voxels[i] = VoxelID(uint32(base) - edgeVoxelOffsets[k+i])
	}
	return voxels, ok
}

// voxelEdge returns the i'th edge bounding the voxel. ok is false when the
// edge's base would lie past coordinate 1023 and carry into the next field.
func voxelEdge(voxel VoxelID, i int) (edge EdgeID, ok bool) {
	x, y, z := voxel.Decode()
	d := voxelEdgeSteps[i].d
	ok = x+d[0] <= coordMask && y+d[1] <= coordMask && z+d[2] <= coordMask
	return EdgeID(uint32(voxel) + voxelEdgeOffsets[i]), ok
}
