package reveal

import (
	"cmp"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance.
var validate = validator.New()

// inRange reports whether v lies within [min, max], inclusive on both ends.
func inRange[T cmp.Ordered](v, min, max T) bool {
	return v >= min && v <= max
}

// oneOf reports whether v equals one of the allowed values.
func oneOf[T comparable](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
