package core

// LinkProfile describes one hop of the delivery path: a fixed latency plus a
// bandwidth that bounds transfer time. Profiles are constants of the
// simulation; there is no jitter and no randomness anywhere in the cost model.
type LinkProfile struct {
	Name          string
	LatencyMs     float64
	BandwidthMbps float64
}

// The three link profiles of the simulated network. Latency and bandwidth
// values follow the NTN reference figures: a LEO user downlink, a ground
// station uplink, and optical inter-satellite links.
var (
	SatelliteToUser = LinkProfile{
		Name:          "satellite-to-user",
		LatencyMs:     15.0,
		BandwidthMbps: 100.0,
	}
	GroundToSatellite = LinkProfile{
		Name:          "ground-to-satellite",
		LatencyMs:     150.0,
		BandwidthMbps: 1000.0,
	}
	InterSatellite = LinkProfile{
		Name:          "inter-satellite",
		LatencyMs:     2.0, // base; distance scaling is added per hop
		BandwidthMbps: 2000.0,
	}
)

// interSatelliteMsPerKm scales inter-satellite latency with node separation:
// one extra millisecond per 300 km of range.
const interSatelliteMsPerKm = 1.0 / 300.0

// DeliveryTime returns the time in milliseconds to move sizeBytes over a link
// with the given latency and bandwidth. Mbps converts to bits per millisecond
// as bandwidthMbps * 1000. The function is total and deterministic: identical
// inputs always produce bit-identical outputs.
func DeliveryTime(latencyMs, bandwidthMbps float64, sizeBytes int64) float64 {
	transfer := float64(sizeBytes) * 8 / (bandwidthMbps * 1000)
	return latencyMs + transfer
}

// TransferMs returns only the bandwidth-bound portion of DeliveryTime.
func TransferMs(bandwidthMbps float64, sizeBytes int64) float64 {
	return float64(sizeBytes) * 8 / (bandwidthMbps * 1000)
}

// InterSatelliteLatencyMs returns the latency of an inter-satellite hop over
// the given range: the profile's base latency plus the distance term.
func InterSatelliteLatencyMs(distanceKm float64) float64 {
	return InterSatellite.LatencyMs + distanceKm*interSatelliteMsPerKm
}
