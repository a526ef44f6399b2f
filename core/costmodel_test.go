package core

import "testing"

func TestDeliveryTimeFormula(t *testing.T) {
	cases := []struct {
		name          string
		latencyMs     float64
		bandwidthMbps float64
		sizeBytes     int64
		want          float64
	}{
		{"zero size is pure latency", 15, 100, 0, 15},
		{"1 MB over satellite downlink", 15, 100, 1_000_000, 15 + 80},
		{"1 MB over ground uplink", 150, 1000, 1_000_000, 150 + 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeliveryTime(tc.latencyMs, tc.bandwidthMbps, tc.sizeBytes)
			if got != tc.want {
				t.Fatalf("DeliveryTime(%v, %v, %d) = %v, want %v",
					tc.latencyMs, tc.bandwidthMbps, tc.sizeBytes, got, tc.want)
			}
		})
	}
}

func TestDeliveryTimeDeterministic(t *testing.T) {
	first := DeliveryTime(GroundToSatellite.LatencyMs, GroundToSatellite.BandwidthMbps, 471859200)
	for i := 0; i < 100; i++ {
		if got := DeliveryTime(GroundToSatellite.LatencyMs, GroundToSatellite.BandwidthMbps, 471859200); got != first {
			t.Fatalf("iteration %d: DeliveryTime = %v, want bit-identical %v", i, got, first)
		}
	}
}

// The delivery cost of a request must strictly increase along the resolution
// chain: serving from the local cache beats fetching from a neighbor, which
// beats going to the ground origin. Checked across the full range of catalog
// payload sizes and realistic inter-satellite distances.
func TestDeliveryCostOrdering(t *testing.T) {
	sizes := []int64{50 * 1024 * 1024, 450 * 1024 * 1024, 2 * 1024 * 1024 * 1024}
	distancesKm := []float64{100, 1000, 5000}

	for _, size := range sizes {
		for _, dist := range distancesKm {
			local := SatelliteToUser.LatencyMs + TransferMs(SatelliteToUser.BandwidthMbps, size)

			neighbor := InterSatelliteLatencyMs(dist) + SatelliteToUser.LatencyMs +
				TransferMs(InterSatellite.BandwidthMbps, size) +
				TransferMs(SatelliteToUser.BandwidthMbps, size)

			origin := GroundToSatellite.LatencyMs + SatelliteToUser.LatencyMs +
				TransferMs(GroundToSatellite.BandwidthMbps, size) +
				TransferMs(SatelliteToUser.BandwidthMbps, size)

			if !(local < neighbor) {
				t.Fatalf("size=%d dist=%v: local %v not cheaper than neighbor %v", size, dist, local, neighbor)
			}
			if !(neighbor < origin) {
				t.Fatalf("size=%d dist=%v: neighbor %v not cheaper than origin %v", size, dist, neighbor, origin)
			}
		}
	}
}

func TestInterSatelliteLatencyScalesWithDistance(t *testing.T) {
	if got := InterSatelliteLatencyMs(0); got != InterSatellite.LatencyMs {
		t.Fatalf("latency at zero range = %v, want base %v", got, InterSatellite.LatencyMs)
	}
	if got := InterSatelliteLatencyMs(300); got != InterSatellite.LatencyMs+1 {
		t.Fatalf("latency at 300 km = %v, want %v", got, InterSatellite.LatencyMs+1)
	}
	if InterSatelliteLatencyMs(600) <= InterSatelliteLatencyMs(300) {
		t.Fatal("latency must increase with distance")
	}
}
