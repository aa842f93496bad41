package profile

import (
	"slices"
	"testing"
)

func TestNew_Options(t *testing.T) {
	p := New(WithMode("cpu"), WithPath("/tmp/x"), WithQuiet(true), WithMode("heap"))

	want := Profiler{Mode: "heap", Path: "/tmp/x", Quiet: true}
	if p != want {
		t.Errorf("New() = %+v, want %+v", p, want)
	}
}

func TestStart_NoMode(t *testing.T) {
	s := New(WithPath(t.TempDir())).Start()
	if _, ok := s.(ignore); !ok {
		t.Fatalf("Start() = %T, want no-op", s)
	}

	s.Stop()
}

func TestStart_UnknownMode(t *testing.T) {
	s := New(WithMode("bogus"), WithPath(t.TempDir())).Start()
	if _, ok := s.(ignore); !ok {
		t.Fatalf("Start() = %T, want no-op", s)
	}

	s.Stop()
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !Enabled {
		if len(modes) != 0 {
			t.Errorf("Modes() = %v without profiling support", modes)
		}

		return
	}

	if !slices.IsSorted(modes) || !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v", modes)
	}
}
