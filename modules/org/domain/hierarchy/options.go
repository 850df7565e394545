package hierarchy

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides which line defines an employee's title when the
// same name appears on several lines.
type DuplicatePolicy int

const (
	// FirstWins keeps the first occurrence; later lines only add manager links.
	FirstWins DuplicatePolicy = iota
	// LastWins lets the last occurrence overwrite the title.
	LastWins
)

func (p DuplicatePolicy) String() string {
	switch p {
	case LastWins:
		return "last"
	default:
		return "first"
	}
}

func ParseDuplicatePolicy(v string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "first":
		return FirstWins, nil
	case "last":
		return LastWins, nil
	default:
		return FirstWins, fmt.Errorf("unknown duplicate policy %q (expected first|last)", v)
	}
}

type options struct {
	policy DuplicatePolicy
}

type Option func(*options)

func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) { o.policy = p }
}

func buildOptions(opts []Option) options {
	o := options{policy: FirstWins}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
