package shader

import (
	"regexp"
	"strconv"
)

// LogMarker is a source position extracted from a driver info log.
type LogMarker struct {
	// File is the source string number the driver reports. Sources are
	// submitted as a single string, so this is 0 in practice.
	File int
	// Line is 1-based.
	Line int
}

// Info logs are not standardized. Mesa emits "0:12(34): error: ...", the
// NVIDIA driver "0(12) : error C1008: ..." and AMD "ERROR: 0:12: ...".
// All of them lead with a file and line number pair.
var logMarkerRe = regexp.MustCompile(`(?m)^\s*(?:ERROR:\s*)?(\d+)[:(](\d+)\)?(?:\(\d+\))?\s*:`)

// ParseLogMarkers extracts the source positions of every failure line in
// a compile or link info log. Unrecognized lines are skipped; an empty
// result just means the log format is unknown.
func ParseLogMarkers(log string) []LogMarker {
	matches := logMarkerRe.FindAllStringSubmatch(log, -1)
	markers := make([]LogMarker, 0, len(matches))
	for _, m := range matches {
		file, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		line, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		markers = append(markers, LogMarker{File: file, Line: line})
	}
	return markers
}
