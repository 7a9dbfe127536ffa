// ABOUTME: Parses scroll threshold specifications like "120px", "80%" or 80
// ABOUTME: Normalizes them into a unit/value pair used for edge-proximity checks

// Package threshold parses the distance at which an infinite-scroll region
// decides it is close enough to its content edge to load more.
package threshold

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit says how a threshold value is measured
type Unit int

const (
	Percent Unit = iota // Value is a percentage of the scrollable height
	Pixel               // Value is an absolute distance in rows
)

// ErrInvalidThreshold is returned for specifications that cannot be parsed
var ErrInvalidThreshold = errors.New("invalid scroll threshold")

// Spec is a parsed threshold
type Spec struct {
	Unit  Unit
	Value float64
}

// Default is used when no threshold is configured (80%)
var Default = Spec{Unit: Percent, Value: 80}

// Parse converts a threshold specification into a Spec.
//
// Accepted forms: "120px" (Pixel), "80%" (Percent), and bare numbers of any
// integer or float kind or numeric strings, which are taken as percentages as-is. Empty strings and nil yield Default.
func Parse(v interface{}) (Spec, error) {
	switch t := v.(type) {
	case nil:
		return Default, nil
	case Spec:
		return t, nil
	case int:
		return fromNumber(float64(t), v)
	case int8:
		return fromNumber(float64(t), v)
	case int16:
		return fromNumber(float64(t), v)
	case int32:
		return fromNumber(float64(t), v)
	case int64:
		return fromNumber(float64(t), v)
	case uint:
		return fromNumber(float64(t), v)
	case uint8:
		return fromNumber(float64(t), v)
	case uint16:
		return fromNumber(float64(t), v)
	case uint32:
		return fromNumber(float64(t), v)
	case uint64:
		return fromNumber(float64(t), v)
	case float32:
		return fromNumber(float64(t), v)
	case float64:
		return fromNumber(t, v)
	case string:
		return parseString(t)
	default:
		return Spec{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidThreshold, v)
	}
}

func parseString(s string) (Spec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default, nil
	}

	unit := Percent
	num := s

	switch {
	case strings.HasSuffix(s, "px"):
		unit = Pixel
		num = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "%"):
		num = strings.TrimSuffix(s, "%")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidThreshold, s)
	}

	spec, err := fromNumber(value, s)
	if err != nil {
		return Spec{}, err
	}
	spec.Unit = unit

	return spec, nil
}

func fromNumber(value float64, orig interface{}) (Spec, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return Spec{}, fmt.Errorf("%w: %v", ErrInvalidThreshold, orig)
	}

	return Spec{Unit: Percent, Value: value}, nil
}

// Distance returns how close (in rows) the viewport edge must be to the content
// edge before the threshold is met, for content of the given scroll height.
func (s Spec) Distance(scrollHeight int) float64 {
	if s.Unit == Pixel {
		return s.Value
	}

	return (1 - s.Value/100) * float64(scrollHeight)
}

// String renders the threshold in the form Parse accepts
func (s Spec) String() string {
	v := strconv.FormatFloat(s.Value, 'f', -1, 64)
	if s.Unit == Pixel {
		return v + "px"
	}

	return v + "%"
}
