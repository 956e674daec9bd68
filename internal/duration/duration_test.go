package duration

import "testing"

func TestPositionToMinutes_Segments(t *testing.T) {
	cases := []struct {
		pos  int
		want int
	}{
		{1, 5},
		{6, 30},
		{12, 60},
		{13, 70},
		{15, 90},
		{18, 120},
		{19, 135},
		{26, 240},
		{27, 270},
		{34, 480},
	}

	for _, tc := range cases {
		if got := PositionToMinutes(tc.pos); got != tc.want {
			t.Fatalf("PositionToMinutes(%d) = %d, want %d", tc.pos, got, tc.want)
		}
	}
}

func TestMinutesToPosition_Segments(t *testing.T) {
	cases := []struct {
		minutes int
		want    int
	}{
		{5, 1},
		{60, 12},
		{70, 13},
		{90, 15},
		{120, 18},
		{135, 19},
		{240, 26},
		{270, 27},
		{480, 34},
	}

	for _, tc := range cases {
		if got := MinutesToPosition(tc.minutes); got != tc.want {
			t.Fatalf("MinutesToPosition(%d) = %d, want %d", tc.minutes, got, tc.want)
		}
	}
}

// Na grade do seletor a ida e volta é exata, inclusive nas fronteiras dos
// segmentos.
func TestRoundTrip(t *testing.T) {
	for p := MinPosition; p <= MaxPosition; p++ {
		if got := MinutesToPosition(PositionToMinutes(p)); got != p {
			t.Fatalf("round-trip %d → %d min → %d", p, PositionToMinutes(p), got)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(0) != MinPosition {
		t.Fatal("Clamp(0) should floor at MinPosition")
	}
	if Clamp(99) != MaxPosition {
		t.Fatal("Clamp(99) should cap at MaxPosition")
	}
	if Clamp(17) != 17 {
		t.Fatal("Clamp(17) should be identity")
	}
}
