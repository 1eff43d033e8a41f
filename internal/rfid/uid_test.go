package rfid

import "testing"

func TestNormalizeUID(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"4DD6D8B5", "4DD6D8B5", true},
		{"4d d6 d8 b5", "4DD6D8B5", true},
		{"  e154e2a9 ", "E154E2A9", true},
		{"4D D6 D8", "", false},     // too short
		{"4DD6D8B5FF", "", false},   // too long
		{"4GD6D8B5", "", false},     // non-hex
		{"", "", false},
	}

	for _, tc := range cases {
		got, err := NormalizeUID(tc.raw)
		if tc.ok {
			if err != nil {
				t.Fatalf("NormalizeUID(%q): unexpected error %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("NormalizeUID(%q) = %q, want %q", tc.raw, got, tc.want)
			}
			continue
		}
		if err == nil {
			t.Fatalf("NormalizeUID(%q): expected error, got %q", tc.raw, got)
		}
	}
}

func TestFormatUID(t *testing.T) {
	if got := FormatUID("4DD6D8B5"); got != "4D D6 D8 B5" {
		t.Fatalf("FormatUID = %q", got)
	}
}

func TestFormatRoundTripIdempotent(t *testing.T) {
	// normalize(format(normalize(u))) == normalize(u)
	for _, raw := range []string{"4DD6D8B5", "e1 54 e2 a9", " AABBCCDD "} {
		canonical, err := NormalizeUID(raw)
		if err != nil {
			t.Fatalf("NormalizeUID(%q): %v", raw, err)
		}
		again, err := NormalizeUID(FormatUID(canonical))
		if err != nil {
			t.Fatalf("re-normalizing formatted %q: %v", canonical, err)
		}
		if again != canonical {
			t.Fatalf("round trip changed uid: %q -> %q", canonical, again)
		}
	}
}

func TestValidateRemoval(t *testing.T) {
	if err := ValidateRemoval("", ""); err == nil {
		t.Fatal("missing reason must be rejected")
	}
	if err := ValidateRemoval("NOT_A_REASON", ""); err == nil {
		t.Fatal("unknown reason must be rejected")
	}
	if err := ValidateRemoval(ReasonOther, "  "); err == nil {
		t.Fatal("OTHER without a description must be rejected")
	}
	if err := ValidateRemoval(ReasonOther, "handed in at front desk"); err != nil {
		t.Fatalf("OTHER with description should pass, got %v", err)
	}
	if err := ValidateRemoval(ReasonCardLost, ""); err != nil {
		t.Fatalf("CARD_LOST should pass, got %v", err)
	}
}
