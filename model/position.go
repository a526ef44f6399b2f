package model

// SatellitePosition is a geodetic position, immutable for the duration of a
// simulation run. Altitude is measured above the mean Earth surface.
type SatellitePosition struct {
	LatDeg float64
	LonDeg float64
	AltKm  float64
}
