// Package vmath provides the small vector/matrix/quaternion kit the
// transformation machine and geometry optimiser need: Vec3, Mat4, a
// rotation Quaternion and axis-aligned bounding boxes, trimmed to the
// operations this module actually exercises.
package vmath

import "math"

// Vec3 is a 3-component float32 vector.
type Vec3 struct{ X, Y, Z float32 }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float32) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

func (a Vec3) Dot(b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Length() float32 { return float32(math.Sqrt(float64(a.Dot(a)))) }

func (a Vec3) Normalize() Vec3 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// NearEqual reports whether a and b differ by no more than eps in every
// component.
func (a Vec3) NearEqual(b Vec3, eps float32) bool {
	return absf(a.X-b.X) <= eps && absf(a.Y-b.Y) <= eps && absf(a.Z-b.Z) <= eps
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Quaternion is a rotation quaternion (x, y, z, w).
type Quaternion struct{ X, Y, Z, W float32 }

func QuaternionIdentity() Quaternion { return Quaternion{0, 0, 0, 1} }

// Mat4 is a row-major 4x4 matrix; Data[r*4+c] is row r, column c.
// Vectors are treated as row vectors multiplied on the left: v' = v * M.
type Mat4 struct{ Data [16]float32 }

func Identity() Mat4 {
	var m Mat4
	m.Data[0], m.Data[5], m.Data[10], m.Data[15] = 1, 1, 1, 1
	return m
}

func (m Mat4) at(r, c int) float32      { return m.Data[r*4+c] }
func (m *Mat4) set(r, c int, v float32) { m.Data[r*4+c] = v }

// Mul returns a*b (apply a, then b, for row-vector convention: v*a*b).
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a.at(r, k) * b.at(k, c)
			}
			out.set(r, c, sum)
		}
	}
	return out
}

// TransformPoint applies the matrix to a point (w=1), returning the
// resulting xyz after the implicit homogeneous divide.
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	x := v.X*m.at(0, 0) + v.Y*m.at(1, 0) + v.Z*m.at(2, 0) + m.at(3, 0)
	y := v.X*m.at(0, 1) + v.Y*m.at(1, 1) + v.Z*m.at(2, 1) + m.at(3, 1)
	z := v.X*m.at(0, 2) + v.Y*m.at(1, 2) + v.Z*m.at(2, 2) + m.at(3, 2)
	w := v.X*m.at(0, 3) + v.Y*m.at(1, 3) + v.Z*m.at(2, 3) + m.at(3, 3)
	if w != 0 && w != 1 {
		x, y, z = x/w, y/w, z/w
	}
	return Vec3{x, y, z}
}

// TransformVector applies the matrix's 3x3 upper-left submatrix only (no
// translation) - used for normals/tangents.
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		v.X*m.at(0, 0) + v.Y*m.at(1, 0) + v.Z*m.at(2, 0),
		v.X*m.at(0, 1) + v.Y*m.at(1, 1) + v.Z*m.at(2, 1),
		v.X*m.at(0, 2) + v.Y*m.at(1, 2) + v.Z*m.at(2, 2),
	}
}

func Translation(v Vec3) Mat4 {
	m := Identity()
	m.set(3, 0, v.X)
	m.set(3, 1, v.Y)
	m.set(3, 2, v.Z)
	return m
}

func UniformScale(s float32) Mat4 { return Scale(Vec3{s, s, s}) }

func Scale(v Vec3) Mat4 {
	m := Identity()
	m.set(0, 0, v.X)
	m.set(1, 1, v.Y)
	m.set(2, 2, v.Z)
	return m
}

func RotateX(radians float32) Mat4 {
	m := Identity()
	c, s := float32(math.Cos(float64(radians))), float32(math.Sin(float64(radians)))
	m.set(1, 1, c)
	m.set(1, 2, s)
	m.set(2, 1, -s)
	m.set(2, 2, c)
	return m
}

func RotateY(radians float32) Mat4 {
	m := Identity()
	c, s := float32(math.Cos(float64(radians))), float32(math.Sin(float64(radians)))
	m.set(0, 0, c)
	m.set(0, 2, -s)
	m.set(2, 0, s)
	m.set(2, 2, c)
	return m
}

func RotateZ(radians float32) Mat4 {
	m := Identity()
	c, s := float32(math.Cos(float64(radians))), float32(math.Sin(float64(radians)))
	m.set(0, 0, c)
	m.set(0, 1, s)
	m.set(1, 0, -s)
	m.set(1, 1, c)
	return m
}

// RotateAxisAngle builds a rotation matrix around an arbitrary (not
// necessarily normalised) axis.
func RotateAxisAngle(axis Vec3, radians float32) Mat4 {
	a := axis.Normalize()
	c, s := float32(math.Cos(float64(radians))), float32(math.Sin(float64(radians)))
	t := 1 - c
	m := Identity()
	m.set(0, 0, t*a.X*a.X+c)
	m.set(0, 1, t*a.X*a.Y+s*a.Z)
	m.set(0, 2, t*a.X*a.Z-s*a.Y)
	m.set(1, 0, t*a.X*a.Y-s*a.Z)
	m.set(1, 1, t*a.Y*a.Y+c)
	m.set(1, 2, t*a.Y*a.Z+s*a.X)
	m.set(2, 0, t*a.X*a.Z+s*a.Y)
	m.set(2, 1, t*a.Y*a.Z-s*a.X)
	m.set(2, 2, t*a.Z*a.Z+c)
	return m
}

// FromQuaternion builds a rotation matrix from a unit quaternion.
func FromQuaternion(q Quaternion) Mat4 {
	m := Identity()
	x, y, z, w := q.X, q.Y, q.Z, q.W
	m.set(0, 0, 1-2*y*y-2*z*z)
	m.set(0, 1, 2*x*y+2*z*w)
	m.set(0, 2, 2*x*z-2*y*w)
	m.set(1, 0, 2*x*y-2*z*w)
	m.set(1, 1, 1-2*x*x-2*z*z)
	m.set(1, 2, 2*y*z+2*x*w)
	m.set(2, 0, 2*x*z+2*y*w)
	m.set(2, 1, 2*y*z-2*x*w)
	m.set(2, 2, 1-2*x*x-2*y*y)
	return m
}

// BoundingBox is an axis-aligned bounding box, stored as (min, max).
type BoundingBox struct{ Min, Max Vec3 }

// EmptyBoundingBox returns an inverted box such that the first point
// merged into it always takes effect.
func EmptyBoundingBox() BoundingBox {
	inf := float32(math.MaxFloat32)
	return BoundingBox{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

func (b BoundingBox) Merge(p Vec3) BoundingBox {
	return BoundingBox{
		Min: Vec3{minf(b.Min.X, p.X), minf(b.Min.Y, p.Y), minf(b.Min.Z, p.Z)},
		Max: Vec3{maxf(b.Max.X, p.X), maxf(b.Max.Y, p.Y), maxf(b.Max.Z, p.Z)},
	}
}

func (b BoundingBox) MergeBox(o BoundingBox) BoundingBox {
	return b.Merge(o.Min).Merge(o.Max)
}

// Corners returns the 8 corners of the box, used when transforming an AABB
// through a matrix.
func (b BoundingBox) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z}, {b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Max.Z},
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
