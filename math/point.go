package math

// Point3 is a position in 3D space. Point and vector arithmetic follow the
// usual affine rules: Point−Point is a Vec3, Point+Vec3 is a Point3.
type Point3 struct {
	X, Y, Z float32
}

func NewPoint3(x, y, z float32) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Sub returns the displacement from other to p.
func (p Point3) Sub(other Point3) Vec3 {
	return Vec3{X: p.X - other.X, Y: p.Y - other.Y, Z: p.Z - other.Z}
}

func (p Point3) AddVec(v Vec3) Point3 {
	return Point3{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

func (p Point3) SubVec(v Vec3) Point3 {
	return Point3{X: p.X - v.X, Y: p.Y - v.Y, Z: p.Z - v.Z}
}

// AddScalar offsets every coordinate by s.
func (p Point3) AddScalar(s float32) Point3 {
	return Point3{X: p.X + s, Y: p.Y + s, Z: p.Z + s}
}

func (p Point3) SubScalar(s float32) Point3 {
	return Point3{X: p.X - s, Y: p.Y - s, Z: p.Z - s}
}

// Mul scales every coordinate by s.
func (p Point3) Mul(s float32) Point3 {
	return Point3{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Axis returns coordinate i for i in 0..2.
func (p Point3) Axis(i int) float32 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	}
	panic("math: Point3 axis out of range")
}

// ToPoint4 lifts p to homogeneous coordinates with w = 1.
func (p Point3) ToPoint4() Point4 {
	return Point4{X: p.X, Y: p.Y, Z: p.Z, W: 1}
}

// Point4 is a homogeneous point.
type Point4 struct {
	X, Y, Z, W float32
}

func NewPoint4(x, y, z, w float32) Point4 {
	return Point4{X: x, Y: y, Z: z, W: w}
}

// ToPoint3 projects back to 3D by dividing through w.
func (p Point4) ToPoint3() Point3 {
	wInv := 1.0 / p.W
	return Point3{X: p.X * wInv, Y: p.Y * wInv, Z: p.Z * wInv}
}

// Axis returns coordinate i for i in 0..3.
func (p Point4) Axis(i int) float32 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	case 3:
		return p.W
	}
	panic("math: Point4 axis out of range")
}

func (p *Point4) setAxis(i int, v float32) {
	switch i {
	case 0:
		p.X = v
	case 1:
		p.Y = v
	case 2:
		p.Z = v
	case 3:
		p.W = v
	default:
		panic("math: Point4 axis out of range")
	}
}
