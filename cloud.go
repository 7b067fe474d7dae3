package pcd

// PointCloud is the decoded output record. Each slice is present only if
// the corresponding fields were declared in the header and produced at
// least one value; absent groups are nil. Positions and Normals hold
// x,y,z triples, Colors holds linear-light r,g,b triples. The record is
// immutable once built
type PointCloud struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	Intensity []float32
	Label     []int32
}

// fieldIndexes resolves the recognized semantic field names to their
// declaration-order indexes, -1 when absent. Unrecognized fields keep
// their schema slot (they contribute to offsets and stride) but are
// never read into the output
type fieldIndexes struct {
	x, y, z    int
	nx, ny, nz int
	rgb        int
	intensity  int
	label      int
}

func (s *Schema) indexes() fieldIndexes {
	lookup := func(name string) int {
		if i, ok := s.FieldIndex(name); ok {
			return i
		}
		return -1
	}
	return fieldIndexes{
		x:         lookup("x"),
		y:         lookup("y"),
		z:         lookup("z"),
		nx:        lookup("normal_x"),
		ny:        lookup("normal_y"),
		nz:        lookup("normal_z"),
		rgb:       lookup("rgb"),
		intensity: lookup("intensity"),
		label:     lookup("label"),
	}
}

func (f fieldIndexes) hasPosition() bool {
	return f.x >= 0 && f.y >= 0 && f.z >= 0
}

func (f fieldIndexes) hasNormal() bool {
	return f.nx >= 0 && f.ny >= 0 && f.nz >= 0
}

// cloudBuilder accumulates per-group values during body decoding and
// assembles the final record
type cloudBuilder struct {
	positions []float32
	normals   []float32
	colors    []float32
	intensity []float32
	labels    []int32
}

func newCloudBuilder(points int, idx fieldIndexes) *cloudBuilder {
	b := &cloudBuilder{}
	if points < 0 {
		points = 0
	}
	if idx.hasPosition() {
		b.positions = make([]float32, 0, 3*points)
	}
	if idx.hasNormal() {
		b.normals = make([]float32, 0, 3*points)
	}
	if idx.rgb >= 0 {
		b.colors = make([]float32, 0, 3*points)
	}
	if idx.intensity >= 0 {
		b.intensity = make([]float32, 0, points)
	}
	if idx.label >= 0 {
		b.labels = make([]int32, 0, points)
	}
	return b
}

func (b *cloudBuilder) addPosition(x, y, z float32) {
	b.positions = append(b.positions, x, y, z)
}

func (b *cloudBuilder) addNormal(x, y, z float32) {
	b.normals = append(b.normals, x, y, z)
}

// addColor appends one sRGB byte triple as linear-light floats
func (b *cloudBuilder) addColor(r, g, blue uint8) {
	b.colors = append(b.colors,
		srgbToLinear(float32(r)/255),
		srgbToLinear(float32(g)/255),
		srgbToLinear(float32(blue)/255))
}

func (b *cloudBuilder) addPackedColor(packed uint32) {
	r, g, blue := unpackRGB(packed)
	b.addColor(r, g, blue)
}

func (b *cloudBuilder) addIntensity(v float32) {
	b.intensity = append(b.intensity, v)
}

func (b *cloudBuilder) addLabel(v int32) {
	b.labels = append(b.labels, v)
}

func (b *cloudBuilder) build() *PointCloud {
	cloud := &PointCloud{}
	if len(b.positions) > 0 {
		cloud.Positions = b.positions
	}
	if len(b.normals) > 0 {
		cloud.Normals = b.normals
	}
	if len(b.colors) > 0 {
		cloud.Colors = b.colors
	}
	if len(b.intensity) > 0 {
		cloud.Intensity = b.intensity
	}
	if len(b.labels) > 0 {
		cloud.Label = b.labels
	}
	return cloud
}
