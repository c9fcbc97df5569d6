package rewards

import "testing"

func TestComputePoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		distance float64
		duration float64
		want     int
	}{
		{"typical trip", 2.3, 15.0, 173},
		{"zero trip", 0, 0, 0},
		{"floors each component independently", 0.15, 0, 1},
		{"floors before summing", 0.15, 0.15, 2},
		{"fractional minutes", 1.0, 0.9, 19},
		{"long trip", 3.2, 12, 152},
		{"negative distance clamps", -5, 10, 100},
		{"negative duration clamps", 5, -10, 50},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ComputePoints(tc.distance, tc.duration)
			if got != tc.want {
				t.Errorf("ComputePoints(%v, %v) = %d, want %d", tc.distance, tc.duration, got, tc.want)
			}
		})
	}
}

func TestComputePoints_Deterministic(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		if got := ComputePoints(2.3, 15.0); got != 173 {
			t.Fatalf("ComputePoints not deterministic: got %d on call %d", got, i)
		}
	}
}
