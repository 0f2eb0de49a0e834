package coercer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TypeCoercer converts formatted numeric cells ("1,234,000", "45.2%") into numbers
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	StripChars      []string `json:"strip_chars"`       // removed before parsing
	AllowEmptyFloat bool     `json:"allow_empty_float"` // empty float cells become NaN instead of failing
}

// DefaultCoercionConfig strips thousands separators and percent signs
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		StripChars:      []string{",", "%"},
		AllowEmptyFloat: true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// Clean trims the value and removes every configured formatting character
func (c *TypeCoercer) Clean(raw string) string {
	cleanVal := strings.TrimSpace(raw)
	for _, ch := range c.config.StripChars {
		cleanVal = strings.ReplaceAll(cleanVal, ch, "")
	}
	return strings.TrimSpace(cleanVal)
}

// CoerceInt parses an integer column value. Whole-valued decimals such as
// "1200.0" are accepted; fractions and empty cells are errors.
func (c *TypeCoercer) CoerceInt(raw string) (int, error) {
	cleanVal := c.Clean(raw)
	if cleanVal == "" {
		return 0, fmt.Errorf("empty value")
	}

	if v, err := strconv.Atoi(cleanVal); err == nil {
		return v, nil
	}

	f, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %w", err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %s", cleanVal)
	}
	return int(f), nil
}

// CoerceFloat parses a float column value. An empty cell is NaN when the
// config allows it and an error otherwise.
func (c *TypeCoercer) CoerceFloat(raw string) (float64, error) {
	cleanVal := c.Clean(raw)
	if cleanVal == "" {
		if c.config.AllowEmptyFloat {
			return math.NaN(), nil
		}
		return 0, fmt.Errorf("empty value")
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %w", err)
	}
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, fmt.Errorf("not a finite number: %s", cleanVal)
	}
	return val, nil
}

// CoerceRequiredFloat is CoerceFloat without the empty-cell allowance
func (c *TypeCoercer) CoerceRequiredFloat(raw string) (float64, error) {
	if c.Clean(raw) == "" {
		return 0, fmt.Errorf("empty value")
	}
	return c.CoerceFloat(raw)
}
