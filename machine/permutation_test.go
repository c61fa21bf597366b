package machine

import (
	"errors"
	"testing"
)

func upper(t *testing.T) *Alphabet {
	t.Helper()
	alpha, err := NewRange('A', 'Z')
	if err != nil {
		t.Fatalf("NewRange failed: %v", err)
	}
	return alpha
}

func mustPerm(t *testing.T, cycles string, alpha *Alphabet) *Permutation {
	t.Helper()
	p, err := NewPermutation(cycles, alpha)
	if err != nil {
		t.Fatalf("NewPermutation(%q) failed: %v", cycles, err)
	}
	return p
}

func TestPermuteAndInvert(t *testing.T) {
	alpha := upper(t)
	p := mustPerm(t, "(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)", alpha)

	tests := []struct {
		from, to rune
	}{
		{'A', 'E'},
		{'U', 'A'}, // wraps to the start of the cycle
		{'W', 'B'},
		{'I', 'V'},
		{'V', 'I'},
		{'S', 'S'},
	}
	for _, tt := range tests {
		got, err := p.PermuteSymbol(tt.from)
		if err != nil {
			t.Fatalf("PermuteSymbol(%q) failed: %v", tt.from, err)
		}
		if got != tt.to {
			t.Errorf("PermuteSymbol(%q) = %q, want %q", tt.from, got, tt.to)
		}
		back, err := p.InvertSymbol(tt.to)
		if err != nil {
			t.Fatalf("InvertSymbol(%q) failed: %v", tt.to, err)
		}
		if back != tt.from {
			t.Errorf("InvertSymbol(%q) = %q, want %q", tt.to, back, tt.from)
		}
	}

	if got := p.Permute(0); got != 4 {
		t.Errorf("Permute(0) = %d, want 4", got)
	}
	if got := p.Invert(0); got != 20 {
		t.Errorf("Invert(0) = %d, want 20", got)
	}
	if got := p.Permute(-26); got != 4 {
		t.Errorf("Permute(-26) = %d, want 4", got)
	}
}

func TestPermutationInverseProperty(t *testing.T) {
	alpha := upper(t)
	for _, cycles := range []string{
		"",
		"(AB)",
		"(ANOUPFRIMBZTLWKSVEGCJYDHXQ)",
		"(AFLSETWUNDHOZVICQ) (BKJ) (GXY) (MPR)",
		"A (BC) () (D)",
	} {
		p := mustPerm(t, cycles, alpha)
		for i := 0; i < alpha.Size(); i++ {
			if got := p.Invert(p.Permute(i)); got != i {
				t.Errorf("%q: Invert(Permute(%d)) = %d", cycles, i, got)
			}
			if got := p.Permute(p.Invert(i)); got != i {
				t.Errorf("%q: Permute(Invert(%d)) = %d", cycles, i, got)
			}
		}
	}
}

func TestWrap(t *testing.T) {
	p := mustPerm(t, "", upper(t))
	tests := []struct{ in, want int }{
		{0, 0}, {25, 25}, {26, 0}, {27, 1}, {-1, 25}, {-26, 0}, {-27, 25}, {53, 1},
	}
	for _, tt := range tests {
		if got := p.Wrap(tt.in); got != tt.want {
			t.Errorf("Wrap(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDerangement(t *testing.T) {
	alpha := upper(t)
	tests := []struct {
		cycles string
		want   bool
	}{
		{"(ANOUPFRIMBZTLWKSVEGCJYDHXQ)", true},
		{"(AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP) (RX) (SZ) (TV)", true},
		{"(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)", false},
		{"(ALBEVFCYODJWUGNMQTZSKPR) (HIX)", true},
		{"(ALBEVFCYODJWUGNMQTZSKPR) (HI)", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := mustPerm(t, tt.cycles, alpha).Derangement(); got != tt.want {
			t.Errorf("Derangement(%q) = %v, want %v", tt.cycles, got, tt.want)
		}
	}

	small, _ := NewAlphabet("AB")
	if !mustPerm(t, "(BA)", small).Derangement() {
		t.Error("(BA) over AB should be a derangement")
	}
}

func TestMalformedPermutation(t *testing.T) {
	alpha := upper(t)
	for _, cycles := range []string{
		"(ABC",
		"AB)",
		"(A(B))",
		"(AB) (BC)",
		"(ABA)",
		"(Ab)",
		"(A1)",
	} {
		_, err := NewPermutation(cycles, alpha)
		if !errors.Is(err, ErrMalformedPermutation) {
			t.Errorf("NewPermutation(%q): expected ErrMalformedPermutation, got %v", cycles, err)
		}
	}
}

func TestPermutationString(t *testing.T) {
	p := mustPerm(t, " (HQ)(EX)\t(IP) ", upper(t))
	if got := p.String(); got != "(HQ) (EX) (IP)" {
		t.Errorf("String() = %q", got)
	}
	if n := len(p.Cycles()); n != 3 {
		t.Errorf("expected 3 cycles, got %d", n)
	}
}
