package core

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// MaxStateCount bounds the number of per-cell states a code may declare.
const MaxStateCount = 64

// ErrInvalidCode reports a code artifact that cannot be turned into a rule table.
var ErrInvalidCode = errors.New("invalid code")

// Code is the serialized form of a transition rule: a state count and one
// arbitrary-precision integer whose base-StateCount digits are the table.
type Code struct {
	Version    int
	StateCount int
	Rule       *big.Int
}

// ParseRule reads a non-negative decimal rule integer without truncation.
func ParseRule(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	rule, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: rule %q is not a decimal integer", ErrInvalidCode, s)
	}
	if rule.Sign() < 0 {
		return nil, fmt.Errorf("%w: rule %s is negative", ErrInvalidCode, s)
	}
	return rule, nil
}

// MustCode builds a Code from a decimal rule and panics on malformed input.
// It is meant for package-level defaults.
func MustCode(version, stateCount int, rule string) Code {
	r, err := ParseRule(rule)
	if err != nil {
		panic(err)
	}
	return Code{Version: version, StateCount: stateCount, Rule: r}
}

// RuleString returns the decimal form of the rule integer.
func (c Code) RuleString() string {
	if c.Rule == nil {
		return "0"
	}
	return c.Rule.String()
}

// String formats the code as "k:rule".
func (c Code) String() string {
	return fmt.Sprintf("%d:%s", c.StateCount, c.RuleString())
}

// RuleTable maps a (left, center, right) neighbourhood to the next state.
type RuleTable struct {
	states  int
	entries []uint8
}

// ParseCode expands the rule integer into a table of StateCount^3 entries
// indexed by left*k*k + center*k + right. Digits past the integer's magnitude
// are zero; digits above k^3 are ignored.
func ParseCode(c Code) (*RuleTable, error) {
	k := c.StateCount
	if k < 2 || k > MaxStateCount {
		return nil, fmt.Errorf("%w: state count %d outside [2, %d]", ErrInvalidCode, k, MaxStateCount)
	}
	if c.Rule == nil {
		return nil, fmt.Errorf("%w: missing rule", ErrInvalidCode)
	}
	if c.Rule.Sign() < 0 {
		return nil, fmt.Errorf("%w: rule %s is negative", ErrInvalidCode, c.Rule)
	}

	size := k * k * k
	entries := make([]uint8, size)
	rest := new(big.Int).Set(c.Rule)
	base := big.NewInt(int64(k))
	digit := new(big.Int)
	for i := 0; i < size && rest.Sign() > 0; i++ {
		rest.QuoRem(rest, base, digit)
		entries[i] = uint8(digit.Int64())
	}
	return &RuleTable{states: k, entries: entries}, nil
}

// States returns the per-cell state count.
func (t *RuleTable) States() int { return t.states }

// Len returns the number of table entries.
func (t *RuleTable) Len() int { return len(t.entries) }

// Next looks up the state produced by a neighbourhood.
func (t *RuleTable) Next(left, center, right uint8) uint8 {
	k := t.states
	return t.entries[(int(left)*k+int(center))*k+int(right)]
}

// Entries returns a copy of the table in index order.
func (t *RuleTable) Entries() []uint8 {
	return append([]uint8(nil), t.entries...)
}
