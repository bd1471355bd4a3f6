package reveal

import "fmt"

// Device is one of the four fixed viewport-width tiers.
type Device string

const (
	Mobile  Device = "mobile"
	Tablet  Device = "tablet"
	Laptop  Device = "laptop"
	Desktop Device = "desktop"
)

// DeviceOrder lists the tiers from narrowest to widest viewport.
var DeviceOrder = [4]Device{Mobile, Tablet, Laptop, Desktop}

// DeviceSetting configures a single tier: whether the effect runs on it, and
// the minimum viewport width at which the tier becomes active.
type DeviceSetting struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	Breakpoint int  `json:"breakpoint" yaml:"breakpoint"`
}

// Responsive maps each device tier to its setting. A valid map contains
// exactly the four tiers with strictly increasing breakpoints.
type Responsive map[Device]DeviceSetting

// hasValidBreakpoints reports whether all four tiers are present with
// non-negative breakpoints that increase strictly from mobile to desktop.
// It never panics; callers decide whether false becomes an error.
func (r Responsive) hasValidBreakpoints() bool {
	prev := -1
	for _, d := range DeviceOrder {
		s, ok := r[d]
		if !ok || s.Breakpoint < 0 || s.Breakpoint <= prev {
			return false
		}
		prev = s.Breakpoint
	}
	return true
}

// Validate checks the tier ordering invariant
// mobile < tablet < laptop < desktop. Enabled flags are not constrained:
// any combination of enabled and disabled tiers is valid.
func (r Responsive) Validate() error {
	for d := range r {
		if !oneOf(d, DeviceOrder[:]...) {
			return fmt.Errorf("%w: %q", ErrUnknownDevice, d)
		}
	}
	if !r.hasValidBreakpoints() {
		return fmt.Errorf("%w: breakpoints must increase strictly from mobile to desktop", ErrInvalidBreakpoints)
	}
	return nil
}

// ActiveDevice returns the widest tier whose breakpoint does not exceed
// width. ok is false when width is below the mobile breakpoint, in which
// case the effect does not run at all.
func (r Responsive) ActiveDevice(width int) (Device, bool) {
	var active Device
	found := false
	for _, d := range DeviceOrder {
		if s, ok := r[d]; ok && s.Breakpoint <= width {
			active = d
			found = true
		}
	}
	return active, found
}

// Active reports whether the effect should run at the given viewport width:
// a tier must match and that tier must be enabled.
func (r Responsive) Active(width int) bool {
	d, ok := r.ActiveDevice(width)
	return ok && r[d].Enabled
}

// clone returns a copy that shares no storage with r.
func (r Responsive) clone() Responsive {
	out := make(Responsive, len(r))
	for d, s := range r {
		out[d] = s
	}
	return out
}
