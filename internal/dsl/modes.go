package dsl

import (
	"errors"
	"fmt"

	"github.com/roach88/esquery/internal/value"
)

// ErrInvalidMode is returned when parsing an unknown enum value.
var ErrInvalidMode = errors.New("invalid mode")

// BoostModeType controls how the query score and function score combine.
type BoostModeType string

const (
	BoostModeMultiply BoostModeType = "multiply"
	BoostModeReplace  BoostModeType = "replace"
	BoostModeSum      BoostModeType = "sum"
	BoostModeAvg      BoostModeType = "avg"
	BoostModeMax      BoostModeType = "max"
	BoostModeMin      BoostModeType = "min"
)

// Valid reports whether m is one of the known boost modes.
func (m BoostModeType) Valid() bool {
	switch m {
	case BoostModeMultiply, BoostModeReplace, BoostModeSum, BoostModeAvg, BoostModeMax, BoostModeMin:
		return true
	}
	return false
}

// ParseBoostMode converts s to a BoostModeType.
func ParseBoostMode(s string) (BoostModeType, error) {
	m := BoostModeType(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: boost_mode %q", ErrInvalidMode, s)
	}
	return m, nil
}

// ScoreModeType controls how function scores combine.
type ScoreModeType string

const (
	ScoreModeMultiply ScoreModeType = "multiply"
	ScoreModeSum      ScoreModeType = "sum"
	ScoreModeAvg      ScoreModeType = "avg"
	ScoreModeFirst    ScoreModeType = "first"
	ScoreModeMax      ScoreModeType = "max"
	ScoreModeMin      ScoreModeType = "min"
)

// Valid reports whether m is one of the known score modes.
func (m ScoreModeType) Valid() bool {
	switch m {
	case ScoreModeMultiply, ScoreModeSum, ScoreModeAvg, ScoreModeFirst, ScoreModeMax, ScoreModeMin:
		return true
	}
	return false
}

// ParseScoreMode converts s to a ScoreModeType.
func ParseScoreMode(s string) (ScoreModeType, error) {
	m := ScoreModeType(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: score_mode %q", ErrInvalidMode, s)
	}
	return m, nil
}

// SortOrder is the direction of a sort field.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder converts s to a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case SortAsc, SortDesc:
		return o, nil
	}
	return "", fmt.Errorf("%w: sort order %q", ErrInvalidMode, s)
}

// BoostMode produces {"boost_mode": mode}.
func BoostMode(mode BoostModeType) KeyValue {
	return Value("boost_mode", value.String(mode))
}

// ScoreMode produces {"score_mode": mode}.
func ScoreMode(mode ScoreModeType) KeyValue {
	return Value("score_mode", value.String(mode))
}
