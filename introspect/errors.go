package introspect

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAccessorNotFound is returned by the lookup API when a type has no
	// getter or setter for a property.
	ErrAccessorNotFound = errors.New("accessor not found")

	// ErrPropertyNotSettable is returned when no setter overload accepts a value.
	ErrPropertyNotSettable = errors.New("property not settable")

	// ErrPropertyNotReadable is returned when a property has no getter.
	ErrPropertyNotReadable = errors.New("property not readable")

	// ErrNilTarget is returned when a nil value is projected.
	ErrNilTarget = errors.New("nil target")
)

// AccessorNotFoundError names the accessor that was looked up, e.g.
// "example.com/pkg.Bean.GetName()" or "example.com/pkg.Bean.SetName".
type AccessorNotFoundError struct {
	Signature string
	// Suggestions lists existing property names close to the requested one.
	Suggestions []string
}

func (e *AccessorNotFoundError) Error() string {
	return e.Signature
}

func (e *AccessorNotFoundError) Is(target error) bool {
	return target == ErrAccessorNotFound
}

// PropertyNotSettableError reports a property that could not be set to a value.
type PropertyNotSettableError struct {
	Type      string
	Property  string
	ValueType string
	Reason    string

	Suggestions []string
}

func (e *PropertyNotSettableError) Error() string {
	msg := fmt.Sprintf("cannot set property %q of %s to a value of type %s: %s", e.Property, e.Type, e.ValueType, e.Reason)

	return msg + didYouMean(e.Suggestions)
}

func (e *PropertyNotSettableError) Is(target error) bool {
	return target == ErrPropertyNotSettable
}

// PropertyNotReadableError reports a property without a getter.
type PropertyNotReadableError struct {
	Type     string
	Property string

	Suggestions []string
}

func (e *PropertyNotReadableError) Error() string {
	return fmt.Sprintf("property %q of %s has no getter", e.Property, e.Type) + didYouMean(e.Suggestions)
}

// Is matches ErrPropertyNotReadable and ErrAccessorNotFound.
func (e *PropertyNotReadableError) Is(target error) bool {
	return target == ErrPropertyNotReadable || target == ErrAccessorNotFound
}

func didYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}

	return " (did you mean " + strings.Join(suggestions, ", ") + "?)"
}

// IsAccessorNotFound checks if an error is an accessor lookup failure
func IsAccessorNotFound(err error) bool {
	return errors.Is(err, ErrAccessorNotFound)
}

// IsPropertyNotSettable checks if an error is a failed property assignment
func IsPropertyNotSettable(err error) bool {
	return errors.Is(err, ErrPropertyNotSettable)
}

// IsPropertyNotReadable checks if an error is a missing getter
func IsPropertyNotReadable(err error) bool {
	return errors.Is(err, ErrPropertyNotReadable)
}
