package astro

import (
	"errors"
	"testing"
)

func TestParseFrame(t *testing.T) {
	tests := []struct {
		in   string
		want Frame
	}{
		{"icrs", ICRS},
		{"FK5", FK5},
		{" Galactic ", Galactic},
		{"fk4noeterms", FK4NoETerms},
		{"GalactoCentric", Galactocentric},
	}
	for _, tt := range tests {
		got, err := ParseFrame(tt.in)
		if err != nil {
			t.Fatalf("ParseFrame(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFrame(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFrame("ecliptic"); !errors.Is(err, ErrUnknownFrame) {
		t.Errorf("expected ErrUnknownFrame, got %v", err)
	}
}

func TestFrameString(t *testing.T) {
	for _, f := range Frames() {
		back, err := ParseFrame(f.String())
		if err != nil || back != f {
			t.Errorf("frame %d does not round-trip through its name %q", f, f.String())
		}
	}
	if got := Frame(42).String(); got != "frame(42)" {
		t.Errorf("unexpected name for unknown frame: %q", got)
	}
}
