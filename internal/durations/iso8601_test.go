package durations

import "testing"

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT4M13S", 253},
		{"PT1H2M", 3720},
		{"PT30S", 30},
		{"PT2H", 7200},
		{"PT1H0M5S", 3605},
		{"PT0S", 0},
		{"pt4m13s", 253},
		{"", 0},
		{"garbage", 0},
		{"4M13S", 0},
	}
	for _, tt := range tests {
		if got := ParseISODuration(tt.in); got != tt.want {
			t.Errorf("ParseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
