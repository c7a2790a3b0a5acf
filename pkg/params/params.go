// Package params turns raw path and query strings into tagged values so that
// query builders only ever receive already-parsed input.
package params

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|\d+\.?\d*([eE][+-]?\d+)?|\.\d+([eE][+-]?\d+)?)`)
	yearPattern = regexp.MustCompile(`^\d{4}$`)
)

// ParsedInt is an integer read from the leading digits of a parameter.
type ParsedInt struct {
	Value int
	Raw   string
}

// ParsedFloat is a number read from the leading numeric prefix of a parameter.
type ParsedFloat struct {
	Value float64
	Raw   string
}

// RawString is a parameter used verbatim.
type RawString struct {
	Value string
}

// InvalidParamError is returned when a parameter cannot be parsed.
type InvalidParamError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%q: %s", e.Name, e.Value, e.Reason)
}

// Int parses the leading base-10 integer prefix of raw, so "42abc" yields 42.
func Int(name, raw string) (ParsedInt, error) {
	s := strings.TrimSpace(raw)
	m := intPrefix.FindString(s)
	if m == "" {
		return ParsedInt{}, &InvalidParamError{Name: name, Value: raw, Reason: "not a number"}
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return ParsedInt{}, &InvalidParamError{Name: name, Value: raw, Reason: "out of range"}
	}
	return ParsedInt{Value: v, Raw: raw}, nil
}

// Float parses the leading decimal prefix of raw, so "4.5stars" yields 4.5.
// "Infinity" and out of range values such as "1e999" yield an infinity.
func Float(name, raw string) (ParsedFloat, error) {
	s := strings.TrimSpace(raw)
	m := floatPrefix.FindString(s)
	if m == "" {
		return ParsedFloat{}, &InvalidParamError{Name: name, Value: raw, Reason: "not a number"}
	}
	if strings.HasSuffix(m, "Infinity") {
		return ParsedFloat{Value: math.Inf(sign(m)), Raw: raw}, nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return ParsedFloat{}, &InvalidParamError{Name: name, Value: raw, Reason: "not a number"}
	}
	return ParsedFloat{Value: v, Raw: raw}, nil
}

func sign(m string) int {
	if strings.HasPrefix(m, "-") {
		return -1
	}
	return 1
}

// String accepts any non-empty value.
func String(name, raw string) (RawString, error) {
	if raw == "" {
		return RawString{}, &InvalidParamError{Name: name, Value: raw, Reason: "must not be empty"}
	}
	return RawString{Value: raw}, nil
}

// Year accepts exactly four digits.
func Year(name, raw string) (RawString, error) {
	if !yearPattern.MatchString(raw) {
		return RawString{}, &InvalidParamError{Name: name, Value: raw, Reason: "must be a four digit year"}
	}
	return RawString{Value: raw}, nil
}

// OptionalFloat parses raw when present; an empty value means no filter.
func OptionalFloat(name, raw string) (*ParsedFloat, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := Float(name, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// OptionalString wraps raw when present.
func OptionalString(raw string) *RawString {
	if raw == "" {
		return nil
	}
	return &RawString{Value: raw}
}
