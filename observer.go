package reveal

import (
	"fmt"
	"regexp"
	"strings"
)

// ElementRef identifies a DOM-like element owned by the rendering layer.
// The engine treats it as an opaque handle and never dereferences it.
type ElementRef any

// ObserverOptions configures the viewport-intersection observer that
// triggers the reveal effect. The engine only validates and carries these
// settings; the observer itself lives in the rendering layer.
type ObserverOptions struct {
	// Root is the intersection root element, or nil for the viewport.
	Root ElementRef `json:"-" yaml:"-"`

	// RootMargin grows or shrinks the root's bounding box before
	// intersection is computed: up to four whitespace-separated
	// <integer>(px|%) tokens in CSS margin order. Trailing tokens may be
	// omitted (CSS shorthand).
	RootMargin string `json:"rootMargin" yaml:"rootMargin"`

	// Threshold is the fraction of the target that must be visible to
	// trigger the effect, in [0,1].
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// marginToken matches a single rootMargin component.
var marginToken = regexp.MustCompile(`^(0|[1-9]\d*)(px|%)$`)

// validRootMargin checks the rootMargin token grammar. Fewer than four
// tokens is shorthand the observer API tolerates; zero tokens or more than
// four is not.
func validRootMargin(margin string) error {
	tokens := strings.Fields(strings.TrimSpace(margin))
	if !inRange(len(tokens), 1, 4) {
		return fmt.Errorf("%w: expected 1 to 4 margin tokens, got %d", ErrRootMarginSyntax, len(tokens))
	}
	for _, tok := range tokens {
		if !marginToken.MatchString(tok) {
			return fmt.Errorf("%w: bad margin token %q", ErrRootMarginSyntax, tok)
		}
	}
	return nil
}

// Validate checks the margin grammar and the threshold range.
func (o ObserverOptions) Validate() error {
	if err := validRootMargin(o.RootMargin); err != nil {
		return err
	}
	if !inRange(o.Threshold, 0, 1) {
		return fmt.Errorf("%w: threshold %v outside [0,1]", ErrOutOfRange, o.Threshold)
	}
	return nil
}

// ObserverPatch is the partial form of ObserverOptions. Nil fields leave the
// current value unchanged. A non-nil Root replaces the current root; to
// clear the root back to the viewport use Store.SetObserverRoot(nil).
type ObserverPatch struct {
	Root       ElementRef `json:"-" yaml:"-"`
	RootMargin *string    `json:"rootMargin,omitempty" yaml:"rootMargin,omitempty"`
	Threshold  *float64   `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}
