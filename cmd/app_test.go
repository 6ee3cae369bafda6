package cmd

import "testing"

func TestCommandsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Commands {
		name := c.Name()
		if name == "" {
			t.Errorf("command %T has no name", c)
		}
		if seen[name] {
			t.Errorf("duplicate command name %q", name)
		}
		seen[name] = true
		if c.Synopsis() == "" || c.Usage() == "" {
			t.Errorf("command %q has no help text", name)
		}
	}
}

func TestWindow(t *testing.T) {
	w := window(14)
	if got := w.Len(); got != 14 {
		t.Errorf("window(14) spans %d days, want 14", got)
	}
	if got := window(1).Len(); got != 1 {
		t.Errorf("window(1) spans %d days, want 1", got)
	}
}
