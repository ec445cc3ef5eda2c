package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	sim "github.com/inference-sim/memsim/sim"
)

var errMalformedInput = errors.New("malformed input")

// parseIntList splits raw on whitespace and commas and parses each token as
// a base-10 integer.
func parseIntList(raw string) ([]int, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", errMalformedInput, f)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseWorkload parses raw and rejects an empty result; label names the
// input in the user-facing message.
func parseWorkload(label, raw string) ([]int, error) {
	vals, err := parseIntList(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: please enter %s", sim.ErrEmptyWorkload, label)
	}
	return vals, nil
}

// normalizePolicy accepts policy names in any case.
func normalizePolicy(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
