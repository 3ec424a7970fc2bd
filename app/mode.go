package app

import (
	"strconv"
	"strings"
)

// Mode selects which HN ranking to list
type Mode int

const (
	// Hottest lists HN top stories
	Hottest Mode = iota
	// Latest lists HN new stories
	Latest
)

// Modes are all known modes in display order
var Modes = []Mode{Hottest, Latest}

func (m Mode) String() string {
	switch m {
	case Hottest:
		return "hottest"
	case Latest:
		return "latest"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode parses s, case insensitively, into a Mode
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return 0, &ValidationError{Field: "mode", Value: s, Reason: "must be one of hottest, latest"}
}

// Count is how many stories a run asks for, within [MinCount, MaxCount]
type Count int

// NewCount validates n
func NewCount(n int) (Count, error) {
	if n < MinCount || n > MaxCount {
		return 0, &ValidationError{
			Field:  "count",
			Value:  strconv.Itoa(n),
			Reason: "must be between " + strconv.Itoa(MinCount) + " and " + strconv.Itoa(MaxCount),
		}
	}
	return Count(n), nil
}

// ParseCount parses and validates s
func ParseCount(s string) (Count, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ValidationError{Field: "count", Value: s, Reason: "must be an integer"}
	}
	return NewCount(n)
}
