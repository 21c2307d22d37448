package portfolio

import (
	"encoding/json"
	"fmt"
)

// Optional holds a value that may be undefined.
//
// Metrics whose preconditions do not hold (empty series, a solver that does
// not converge, a zero denominator) are returned as an undefined Optional,
// never as an error. It encodes as JSON null when undefined.
type Optional[T any] struct {
	value   T
	defined bool
}

// Some returns a defined Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, defined: true} }

// None returns an undefined Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is defined.
func (o Optional[T]) Get() (T, bool) { return o.value, o.defined }

// IsDefined reports whether the value is defined.
func (o Optional[T]) IsDefined() bool { return o.defined }

// Or returns the value if defined, 'fallback' otherwise.
func (o Optional[T]) Or(fallback T) T {
	if o.defined {
		return o.value
	}
	return fallback
}

// String returns "—" for an undefined value.
func (o Optional[T]) String() string {
	if !o.defined {
		return "—"
	}
	return fmt.Sprint(o.value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.defined {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = Optional[T]{}
		return nil
	}
	if err := json.Unmarshal(b, &o.value); err != nil {
		return err
	}
	o.defined = true
	return nil
}
