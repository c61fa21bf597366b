package machine

import (
	"errors"
	"testing"
)

func TestRotorVariants(t *testing.T) {
	alpha := upper(t)
	perm := mustPerm(t, "(AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP) (RX) (SZ) (TV)", alpha)

	moving, err := NewMovingRotor("I", perm, "QE")
	if err != nil {
		t.Fatalf("NewMovingRotor failed: %v", err)
	}
	reflector, err := NewReflector("B", perm)
	if err != nil {
		t.Fatalf("NewReflector failed: %v", err)
	}
	fixed := NewFixedRotor("Beta", perm)

	tests := []struct {
		rotor      Rotor
		rotates    bool
		reflecting bool
	}{
		{moving, true, false},
		{fixed, false, false},
		{reflector, false, true},
	}
	for _, tt := range tests {
		if tt.rotor.Rotates() != tt.rotates {
			t.Errorf("%s: Rotates() = %v", tt.rotor.Name(), tt.rotor.Rotates())
		}
		if tt.rotor.Reflecting() != tt.reflecting {
			t.Errorf("%s: Reflecting() = %v", tt.rotor.Name(), tt.rotor.Reflecting())
		}
	}

	if moving.Notches() != "QE" {
		t.Errorf("Notches() = %q", moving.Notches())
	}
}

func TestAdvanceAndNotch(t *testing.T) {
	alpha := upper(t)
	perm := mustPerm(t, "(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)", alpha)

	r, err := NewMovingRotor("I", perm, "Q")
	if err != nil {
		t.Fatalf("NewMovingRotor failed: %v", err)
	}
	if err := r.SetSymbol('P'); err != nil {
		t.Fatalf("SetSymbol failed: %v", err)
	}
	if r.AtNotch() {
		t.Error("rotor at P should not be at notch Q")
	}
	r.Advance()
	if r.Setting() != 16 || !r.AtNotch() {
		t.Errorf("after advance: setting %d, at notch %v", r.Setting(), r.AtNotch())
	}

	r.Set(25)
	r.Advance()
	if r.Setting() != 0 {
		t.Errorf("advance from Z should wrap to 0, got %d", r.Setting())
	}

	fixed := NewFixedRotor("Beta", perm)
	fixed.Set(3)
	fixed.Advance()
	if fixed.Setting() != 3 || fixed.AtNotch() {
		t.Errorf("fixed rotor moved: setting %d", fixed.Setting())
	}
}

func TestSetSymbolRejectsUnknown(t *testing.T) {
	r := NewFixedRotor("Beta", mustPerm(t, "(AB)", upper(t)))
	r.Set(7)
	if err := r.SetSymbol('a'); !errors.Is(err, ErrInvalidSymbol) {
		t.Fatalf("expected ErrInvalidSymbol, got %v", err)
	}
	if r.Setting() != 7 {
		t.Errorf("failed SetSymbol changed setting to %d", r.Setting())
	}
}

func TestConvertForwardBackward(t *testing.T) {
	alpha := upper(t)
	r, err := NewMovingRotor("I", mustPerm(t, "(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)", alpha), "Q")
	if err != nil {
		t.Fatalf("NewMovingRotor failed: %v", err)
	}

	// At setting 0 the rotor is its permutation.
	if got := r.ConvertForward(0); got != 4 {
		t.Errorf("ConvertForward(A) at A = %d, want 4", got)
	}
	// At setting B, entry A meets contact B -> K, which leaves at J.
	r.Set(1)
	if got := r.ConvertForward(0); got != 9 {
		t.Errorf("ConvertForward(A) at B = %d, want 9", got)
	}
	if got := r.ConvertBackward(9); got != 0 {
		t.Errorf("ConvertBackward(J) at B = %d, want 0", got)
	}

	for setting := 0; setting < alpha.Size(); setting++ {
		for ring := 0; ring < alpha.Size(); ring += 5 {
			r.Set(setting)
			r.SetRing(ring)
			for p := -30; p < 60; p++ {
				if got := r.ConvertBackward(r.ConvertForward(p)); got != r.Permutation().Wrap(p) {
					t.Fatalf("setting %d ring %d: round trip of %d gave %d", setting, ring, p, got)
				}
			}
		}
	}
}

func TestRingOffsetsCancelSetting(t *testing.T) {
	alpha := upper(t)
	perm := mustPerm(t, "(ABDHPEJT) (CFLVMZOYQIRWUKXSG) (N)", alpha)
	plain := NewFixedRotor("a", perm)
	ringed := NewFixedRotor("b", perm)
	ringed.Set(3)
	ringed.SetRing(3)
	for p := 0; p < alpha.Size(); p++ {
		if plain.ConvertForward(p) != ringed.ConvertForward(p) {
			t.Fatalf("ring and setting of 3 should cancel at %d", p)
		}
	}
}

func TestRotorConstructionErrors(t *testing.T) {
	alpha := upper(t)
	perm := mustPerm(t, "(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)", alpha)

	if _, err := NewMovingRotor("I", perm, ""); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("no notches: expected ErrInvalidConfiguration, got %v", err)
	}
	if _, err := NewMovingRotor("I", perm, "Q!"); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("bad notch: expected ErrInvalidSymbol, got %v", err)
	}
	if _, err := NewReflector("I", perm); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("reflector with fixed point: expected ErrInvalidConfiguration, got %v", err)
	}
}
