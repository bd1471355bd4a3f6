package reveal

import (
	"errors"
	"testing"
)

func TestObserverOptions_Validate_Defaults(t *testing.T) {
	o := DefaultConfig().Observer
	if err := o.Validate(); err != nil {
		t.Errorf("expected default observer options to validate, got %v", err)
	}
}

func TestValidRootMargin_FourTokens(t *testing.T) {
	if err := validRootMargin("0px 0px 0px 0px"); err != nil {
		t.Errorf("expected '0px 0px 0px 0px' to validate, got %v", err)
	}
}

func TestValidRootMargin_Shorthand(t *testing.T) {
	for _, margin := range []string{"10px", "10px 5%", "0px 0px 0px"} {
		if err := validRootMargin(margin); err != nil {
			t.Errorf("expected shorthand %q to validate, got %v", margin, err)
		}
	}
}

func TestValidRootMargin_Percent(t *testing.T) {
	if err := validRootMargin("5% 10% 5% 10%"); err != nil {
		t.Errorf("expected percent tokens to validate, got %v", err)
	}
}

func TestValidRootMargin_TooManyTokens(t *testing.T) {
	err := validRootMargin("10 10 10 10 10")
	if !errors.Is(err, ErrRootMarginSyntax) {
		t.Errorf("expected ErrRootMarginSyntax for 5 tokens, got %v", err)
	}
}

func TestValidRootMargin_BadUnit(t *testing.T) {
	err := validRootMargin("10xyz")
	if !errors.Is(err, ErrRootMarginSyntax) {
		t.Errorf("expected ErrRootMarginSyntax for bad unit, got %v", err)
	}
}

func TestValidRootMargin_LeadingZero(t *testing.T) {
	err := validRootMargin("01px")
	if !errors.Is(err, ErrRootMarginSyntax) {
		t.Errorf("expected ErrRootMarginSyntax for leading zero, got %v", err)
	}
}

func TestValidRootMargin_Empty(t *testing.T) {
	err := validRootMargin("   ")
	if !errors.Is(err, ErrRootMarginSyntax) {
		t.Errorf("expected ErrRootMarginSyntax for blank margin, got %v", err)
	}
}

func TestValidRootMargin_MissingUnit(t *testing.T) {
	err := validRootMargin("10 10")
	if !errors.Is(err, ErrRootMarginSyntax) {
		t.Errorf("expected ErrRootMarginSyntax for unitless token, got %v", err)
	}
}

func TestObserverOptions_Validate_ThresholdTooHigh(t *testing.T) {
	o := ObserverOptions{RootMargin: "0px", Threshold: 1.5}

	err := o.Validate()
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for threshold 1.5, got %v", err)
	}
}

func TestObserverOptions_Validate_ThresholdNegative(t *testing.T) {
	o := ObserverOptions{RootMargin: "0px", Threshold: -0.1}

	err := o.Validate()
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for negative threshold, got %v", err)
	}
}

func TestObserverOptions_Validate_ThresholdBounds(t *testing.T) {
	for _, threshold := range []float64{0, 0.5, 1} {
		o := ObserverOptions{RootMargin: "0px", Threshold: threshold}
		if err := o.Validate(); err != nil {
			t.Errorf("expected threshold %v to validate, got %v", threshold, err)
		}
	}
}
