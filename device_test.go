package reveal

import (
	"errors"
	"testing"
)

func defaultResponsive() Responsive {
	return Responsive{
		Mobile:  {Enabled: true, Breakpoint: 425},
		Tablet:  {Enabled: true, Breakpoint: 768},
		Laptop:  {Enabled: true, Breakpoint: 1440},
		Desktop: {Enabled: true, Breakpoint: 2560},
	}
}

func TestResponsive_Validate_Defaults(t *testing.T) {
	if err := defaultResponsive().Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestResponsive_Validate_EqualBreakpoints(t *testing.T) {
	r := defaultResponsive()
	r[Tablet] = DeviceSetting{Enabled: true, Breakpoint: 425}

	err := r.Validate()
	if !errors.Is(err, ErrInvalidBreakpoints) {
		t.Errorf("expected ErrInvalidBreakpoints for equal adjacent breakpoints, got %v", err)
	}
}

func TestResponsive_Validate_DecreasingBreakpoints(t *testing.T) {
	r := defaultResponsive()
	r[Desktop] = DeviceSetting{Enabled: true, Breakpoint: 100}

	err := r.Validate()
	if !errors.Is(err, ErrInvalidBreakpoints) {
		t.Errorf("expected ErrInvalidBreakpoints for decreasing breakpoints, got %v", err)
	}
}

func TestResponsive_Validate_NegativeBreakpoint(t *testing.T) {
	r := defaultResponsive()
	r[Mobile] = DeviceSetting{Enabled: true, Breakpoint: -1}

	err := r.Validate()
	if !errors.Is(err, ErrInvalidBreakpoints) {
		t.Errorf("expected ErrInvalidBreakpoints for negative breakpoint, got %v", err)
	}
}

func TestResponsive_Validate_MissingTier(t *testing.T) {
	r := defaultResponsive()
	delete(r, Laptop)

	err := r.Validate()
	if !errors.Is(err, ErrInvalidBreakpoints) {
		t.Errorf("expected ErrInvalidBreakpoints for missing tier, got %v", err)
	}
}

func TestResponsive_Validate_UnknownTier(t *testing.T) {
	r := defaultResponsive()
	r["watch"] = DeviceSetting{Enabled: true, Breakpoint: 100}

	err := r.Validate()
	if !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("expected ErrUnknownDevice, got %v", err)
	}
}

func TestResponsive_Validate_DisabledTiersAllowed(t *testing.T) {
	r := defaultResponsive()
	for _, d := range DeviceOrder {
		s := r[d]
		s.Enabled = false
		r[d] = s
	}

	if err := r.Validate(); err != nil {
		t.Errorf("expected any enabled combination to validate, got %v", err)
	}
}

func TestResponsive_ActiveDevice_BelowMobile(t *testing.T) {
	if d, ok := defaultResponsive().ActiveDevice(300); ok {
		t.Errorf("expected no active device below the mobile breakpoint, got %q", d)
	}
}

func TestResponsive_ActiveDevice_ExactBreakpoint(t *testing.T) {
	d, ok := defaultResponsive().ActiveDevice(425)
	if !ok || d != Mobile {
		t.Errorf("expected mobile at exactly 425, got %q (ok=%v)", d, ok)
	}
}

func TestResponsive_ActiveDevice_BetweenTiers(t *testing.T) {
	d, ok := defaultResponsive().ActiveDevice(1024)
	if !ok || d != Tablet {
		t.Errorf("expected tablet at 1024, got %q (ok=%v)", d, ok)
	}
}

func TestResponsive_ActiveDevice_WidestTier(t *testing.T) {
	d, ok := defaultResponsive().ActiveDevice(3840)
	if !ok || d != Desktop {
		t.Errorf("expected desktop at 3840, got %q (ok=%v)", d, ok)
	}
}

func TestResponsive_Active_DisabledTier(t *testing.T) {
	r := defaultResponsive()
	r[Tablet] = DeviceSetting{Enabled: false, Breakpoint: 768}

	if r.Active(1024) {
		t.Error("expected effect not to run on a disabled tier")
	}
	if !r.Active(2000) {
		t.Error("expected effect to run on an enabled tier")
	}
}

func TestResponsive_Active_BelowAllTiers(t *testing.T) {
	if defaultResponsive().Active(100) {
		t.Error("expected effect not to run below the mobile breakpoint")
	}
}
