package geo

import "math"

// SpherePoint is one tile placement on the globe.
type SpherePoint struct {
	Phi      float64 `json:"phi"`
	Theta    float64 `json:"theta"`
	Position Vec3    `json:"position"`
	Rotation Quat    `json:"rotation"`
}

// tileNormal is the direction a flat tile faces before placement.
var tileNormal = Vec3{0, 0, 1}

// FibonacciSphere places item i of n on a sphere of the given radius using
// phi = acos(-1 + 2i/n) and theta = sqrt(n*pi)*phi, which spreads points
// evenly without clustering at the poles. The tile is rotated to face
// outward. ok is false when n <= 0.
func FibonacciSphere(i, n int, radius float64) (p SpherePoint, ok bool) {
	if n <= 0 {
		return SpherePoint{}, false
	}
	phi := math.Acos(-1 + 2*float64(i)/float64(n))
	theta := math.Sqrt(float64(n)*math.Pi) * phi

	sinPhi := math.Sin(phi)
	pos := Vec3{
		X: radius * math.Cos(theta) * sinPhi,
		Y: radius * math.Sin(theta) * sinPhi,
		Z: radius * math.Cos(phi),
	}
	return SpherePoint{
		Phi:      phi,
		Theta:    theta,
		Position: pos,
		Rotation: QuatFromTo(tileNormal, pos),
	}, true
}
