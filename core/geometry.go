package core

import (
	"math"

	"github.com/signalsfoundry/orbital-cdn/model"
)

// EarthRadiusKm is the mean Earth radius used for all simple geometry
// calculations in the constellation layer (kilometres).
const EarthRadiusKm = 6371.0

// Vec3 is an ECEF-style vector in kilometres.
type Vec3 struct {
	X, Y, Z float64
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// ECEFFromGeodetic converts a geodetic satellite position to ECEF kilometres
// on a spherical Earth. Node positions are fixed for a run, so the conversion
// happens once at constellation setup.
func ECEFFromGeodetic(pos model.SatellitePosition) Vec3 {
	lat := pos.LatDeg * math.Pi / 180.0
	lon := pos.LonDeg * math.Pi / 180.0
	r := EarthRadiusKm + pos.AltKm

	return Vec3{
		X: r * math.Cos(lat) * math.Cos(lon),
		Y: r * math.Cos(lat) * math.Sin(lon),
		Z: r * math.Sin(lat),
	}
}
