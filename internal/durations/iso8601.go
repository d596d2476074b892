package durations

import (
	"regexp"
	"strconv"
)

// The Data API encodes contentDetails.duration as an ISO 8601 duration with
// optional hour/minute/second designators, e.g. PT4M13S.
var isoDurationPattern = regexp.MustCompile(`(?i)PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseISODuration converts an ISO 8601 duration into whole seconds.
// Malformed or empty input yields 0.
func ParseISODuration(s string) int {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h := atoiDefault(m[1])
	min := atoiDefault(m[2])
	sec := atoiDefault(m[3])
	return h*3600 + min*60 + sec
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
