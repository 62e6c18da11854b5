package trend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when parsing an unrecognized trend kind.
var ErrUnknownKind = errors.New("unknown trend kind")

// Kind selects a trend estimator.
type Kind int

const (
	Spline Kind = iota
	Line
	Mean
	Median
	None
)

var kindNames = map[Kind]string{
	Spline: "spline",
	Line:   "line",
	Mean:   "mean",
	Median: "median",
	None:   "none",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses a kind name. The empty string selects Spline.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Spline, nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
