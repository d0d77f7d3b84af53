package printers

import (
	"testing"

	"tableflip.dev/timescope/pkg/timeline"
)

func TestDescribeEnable(t *testing.T) {
	cases := []struct {
		name   string
		enable []timeline.Enable
		want   string
	}{
		{"none", nil, "never"},
		{"window", []timeline.Enable{{Start: 5, End: timeline.EndAt(15)}}, "[5s, 15s)"},
		{"duration", []timeline.Enable{{Start: 0, Duration: timeline.EndAt(10)}}, "0s for 10s"},
		{"open-ended", []timeline.Enable{{Start: 90}}, "[1m30s, ...)"},
		{"repeat", []timeline.Enable{{Start: 0, Duration: timeline.EndAt(2), Repeat: 10}}, "0s for 2s every 10s"},
		{"multiple", []timeline.Enable{{Start: 0, Duration: timeline.EndAt(1)}, {Start: 30}}, "0s for 1s, [30s, ...)"},
	}
	for _, tc := range cases {
		if got := describeEnable(tc.enable); got != tc.want {
			t.Fatalf("%s: describeEnable = %q, want %q", tc.name, got, tc.want)
		}
	}
}
