package semantic

import "fmt"

// BoundPolicy decides what happens to an array bound that is not a
// constant integer.
type BoundPolicy int

const (
	// BoundError rejects the declaration.
	BoundError BoundPolicy = iota
	// BoundZero uses 0 for the bound and logs a warning.
	BoundZero
)

func (p BoundPolicy) String() string {
	switch p {
	case BoundError:
		return "error"
	case BoundZero:
		return "zero"
	}
	return fmt.Sprintf("BoundPolicy(%d)", int(p))
}

// ParseBoundPolicy accepts the names returned by String.
func ParseBoundPolicy(s string) (BoundPolicy, error) {
	switch s {
	case "", "error":
		return BoundError, nil
	case "zero":
		return BoundZero, nil
	}
	return BoundError, fmt.Errorf("unknown bound policy %q", s)
}

type Option func(*Analyzer)

func WithBoundPolicy(p BoundPolicy) Option {
	return func(a *Analyzer) {
		a.bounds = p
	}
}
