package mesher

// Face is one of the six axis-aligned cube faces.
type Face int

// Face order matches the texture table columns.
const (
	FaceRight  Face = iota // +X
	FaceLeft               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceFront              // +Z
	FaceBack               // -Z
)

var faceNames = [FacesPerVoxel]string{"right", "left", "top", "bottom", "front", "back"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return "invalid"
	}
	return faceNames[f]
}

// faceNormals doubles as the neighbour offset for each face.
var faceNormals = [FacesPerVoxel][3]int{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// cubeCorners are the four corners of each face around a voxel centre.
var cubeCorners = [FacesPerVoxel][VerticesPerFace][3]float32{
	FaceRight: {
		{0.5, 0.5, 0.5},
		{0.5, 0.5, -0.5},
		{0.5, -0.5, 0.5},
		{0.5, -0.5, -0.5},
	},
	FaceLeft: {
		{-0.5, 0.5, -0.5},
		{-0.5, 0.5, 0.5},
		{-0.5, -0.5, -0.5},
		{-0.5, -0.5, 0.5},
	},
	FaceTop: {
		{-0.5, 0.5, -0.5},
		{0.5, 0.5, -0.5},
		{-0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
	},
	FaceBottom: {
		{0.5, -0.5, -0.5},
		{-0.5, -0.5, -0.5},
		{0.5, -0.5, 0.5},
		{-0.5, -0.5, 0.5},
	},
	FaceFront: {
		{-0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
		{-0.5, -0.5, 0.5},
		{0.5, -0.5, 0.5},
	},
	FaceBack: {
		{0.5, 0.5, -0.5},
		{-0.5, 0.5, -0.5},
		{0.5, -0.5, -0.5},
		{-0.5, -0.5, -0.5},
	},
}

var quadUVs = [VerticesPerFace][2]float32{
	{0, 0},
	{1, 0},
	{0, 1},
	{1, 1},
}

// quadIndices is the winding shared by every face, relative to its first vertex.
var quadIndices = [IndicesPerFace]uint32{2, 1, 0, 2, 3, 1}

// Normal returns the outward unit normal of f.
func (f Face) Normal() [3]float32 {
	n := faceNormals[f]
	return [3]float32{float32(n[0]), float32(n[1]), float32(n[2])}
}
