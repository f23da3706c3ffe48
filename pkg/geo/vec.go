package geo

import "math"

// Vec3 is a 3D vector in scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector in the same direction.
// Returns the zero vector if v has zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Quat is a rotation quaternion [x, y, z, w].
type Quat [4]float64

// IdentityQuat is the no-op rotation.
func IdentityQuat() Quat {
	return Quat{0, 0, 0, 1}
}

// YawQuat rotates by angle radians around the Z axis.
func YawQuat(angle float64) Quat {
	half := angle / 2
	return Quat{0, 0, math.Sin(half), math.Cos(half)}
}

// QuatFromTo returns the shortest rotation that maps direction from onto
// direction to. Both inputs are normalized first.
func QuatFromTo(from, to Vec3) Quat {
	a := from.Normalize()
	b := to.Normalize()
	d := a.Dot(b)
	if d < -1+1e-9 {
		// Opposite directions: rotate half a turn around any perpendicular axis.
		axis := Vec3{1, 0, 0}.Cross(a)
		if axis.Length() < 1e-9 {
			axis = Vec3{0, 1, 0}.Cross(a)
		}
		axis = axis.Normalize()
		return Quat{axis.X, axis.Y, axis.Z, 0}
	}
	c := a.Cross(b)
	q := Quat{c.X, c.Y, c.Z, 1 + d}
	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	return Quat{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q[0], q[1], q[2]}
	w := q[3]
	// v' = 2(u·v)u + (w²-u·u)v + 2w(u×v)
	uv := u.Dot(v)
	uu := u.Dot(u)
	c := u.Cross(v)
	return Vec3{
		X: 2*uv*u.X + (w*w-uu)*v.X + 2*w*c.X,
		Y: 2*uv*u.Y + (w*w-uu)*v.Y + 2*w*c.Y,
		Z: 2*uv*u.Z + (w*w-uu)*v.Z + 2*w*c.Z,
	}
}
