package common

import (
	"errors"
	"testing"
)

func TestWrap360(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{359, 359},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-720, 0},
	}
	for _, c := range cases {
		if got := Wrap360(c.in); got != c.want {
			t.Fatalf("Wrap360(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 10) != 0 || Clamp(11, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Fatalf("clamp bounds not respected")
	}
}

func TestErrorTaxonomy(t *testing.T) {
	if !errors.Is(Configf("tile %d", 3), ErrConfiguration) {
		t.Fatalf("Configf should wrap ErrConfiguration")
	}
	if !errors.Is(Lookupf("state %q", "run"), ErrLookup) {
		t.Fatalf("Lookupf should wrap ErrLookup")
	}

	inner := errors.New("no ear")
	var err error = &TopologyError{Polygon: 2, MaxX: 10, MaxY: 20, Err: inner}
	if !errors.Is(err, ErrTopology) {
		t.Fatalf("TopologyError should match ErrTopology")
	}
	if !errors.Is(err, inner) {
		t.Fatalf("TopologyError should match its cause")
	}
	var te *TopologyError
	if !errors.As(err, &te) || te.Polygon != 2 {
		t.Fatalf("expected TopologyError for polygon 2, got %v", err)
	}
}
