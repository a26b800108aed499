package args

import (
	"fmt"
	"strconv"
)

// Parseable enumerates the value types a positional or option can be
// bound as. Extend this set, and parseAs's type switch, to support
// more types.
type Parseable interface {
	string | int | int64 | bool
}

// parseAs converts raw into T, or a BadTypeParse-flavored error
// describing the failure.
func parseAs[T Parseable](raw string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case string:
		return any(raw).(T), nil
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return zero, fmt.Errorf("%q is not a valid integer", raw)
		}
		return any(n).(T), nil
	case int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, fmt.Errorf("%q is not a valid integer", raw)
		}
		return any(n).(T), nil
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, fmt.Errorf("%q is not a valid boolean", raw)
		}
		return any(b).(T), nil
	default:
		return zero, fmt.Errorf("unsupported value type")
	}
}
