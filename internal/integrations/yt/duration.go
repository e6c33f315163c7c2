package yt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Valid ISO 8601 duration subset, as used by the YouTube API
var validISO8601 = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Sentinel the YouTube API uses for videos still processing or live
const processingDuration = "P0D"

// ParseDuration converts an ISO 8601 duration like PT1H2M3S to seconds.
// Returns false if the string does not match the grammar.
// A bare PT or the processing sentinel is a valid zero duration.
// Totals past math.MaxInt32 seconds are rejected.
func ParseDuration(duration string) (int, bool) {

	if duration == processingDuration {
		return 0, true
	}

	matches := validISO8601.FindStringSubmatch(duration)
	if matches == nil {
		return 0, false
	}

	var total int
	for i, unit := range []int{3600, 60, 1} {
		group := matches[i+1]
		if group == "" {
			continue
		}

		// Keep the total within int32 seconds
		n, err := strconv.Atoi(group)
		if err != nil || n > (math.MaxInt32-total)/unit {
			return 0, false
		}
		total += n * unit
	}

	return total, true
}

// HumanDuration formats seconds as HH:MM:SS
func HumanDuration(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
