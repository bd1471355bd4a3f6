package reveal

import "testing"

func TestInRange_Inclusive(t *testing.T) {
	if !inRange(0.0, 0.0, 1.0) {
		t.Error("expected lower bound to be inclusive")
	}
	if !inRange(1.0, 0.0, 1.0) {
		t.Error("expected upper bound to be inclusive")
	}
	if inRange(1.01, 0.0, 1.0) {
		t.Error("expected value above range to fail")
	}
	if inRange(-0.01, 0.0, 1.0) {
		t.Error("expected value below range to fail")
	}
}

func TestInRange_Ints(t *testing.T) {
	if !inRange(3, 1, 4) {
		t.Error("expected 3 in [1,4]")
	}
	if inRange(5, 1, 4) {
		t.Error("expected 5 outside [1,4]")
	}
}

func TestOneOf(t *testing.T) {
	if !oneOf(Tablet, DeviceOrder[:]...) {
		t.Error("expected tablet to be a known device")
	}
	if oneOf(Device("watch"), DeviceOrder[:]...) {
		t.Error("expected watch to be unknown")
	}
	if oneOf("x") {
		t.Error("expected empty allowed set to match nothing")
	}
}
