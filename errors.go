package reveal

import "errors"

// Sentinel errors returned by validation and store mutation. Wrap details are
// attached with fmt.Errorf("%w: ..."); match with errors.Is.
var (
	// ErrInvalidOptions indicates a merged element options record failed
	// validation. The store and any in-flight options keep their
	// last-known-good values.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrInvalidBreakpoints indicates a responsive map violates the strict
	// mobile < tablet < laptop < desktop breakpoint ordering.
	ErrInvalidBreakpoints = errors.New("invalid breakpoints")

	// ErrRootMarginSyntax indicates a malformed observer rootMargin string:
	// too many tokens, no tokens, or a token not matching <integer>(px|%).
	ErrRootMarginSyntax = errors.New("invalid rootMargin syntax")

	// ErrOutOfRange indicates a numeric value outside its documented range,
	// such as an observer threshold outside [0,1].
	ErrOutOfRange = errors.New("value out of range")

	// ErrNoDevices indicates SetDevicesStatus was called with an empty
	// device list.
	ErrNoDevices = errors.New("no devices specified")

	// ErrUnknownDevice indicates a device outside the four fixed tiers.
	ErrUnknownDevice = errors.New("unknown device")
)
