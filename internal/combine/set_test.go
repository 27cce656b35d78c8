package combine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTemplateSetOrder(t *testing.T) {
	s := NewTemplateSet()
	s.Add("Zebra", "z")
	s.Add("Alpha", "a")
	s.Add("Mango", "m")

	want := []string{"Zebra", "Alpha", "Mango"}
	if diff := cmp.Diff(want, s.Names()); diff != "" {
		t.Errorf("insertion order not preserved (-want +got):\n%s", diff)
	}
}

func TestTemplateSetOverwriteKeepsPosition(t *testing.T) {
	s := NewTemplateSet()
	s.Add("A", "first")
	s.Add("B", "b")
	s.Add("A", "second")

	if diff := cmp.Diff([]string{"A", "B"}, s.Names()); diff != "" {
		t.Errorf("duplicate Add must keep first position (-want +got):\n%s", diff)
	}

	content, ok := s.Get("A")
	if !ok || content != "second" {
		t.Errorf("Get(A) = %q, %v; want %q, true", content, ok, "second")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestTemplateSetGetMissing(t *testing.T) {
	s := NewTemplateSet()
	if _, ok := s.Get("nope"); ok {
		t.Error("Get on missing name must report false")
	}
}

func TestTemplateSetZeroValue(t *testing.T) {
	var s TemplateSet
	s.Add("A", "a")

	if s.Len() != 1 {
		t.Errorf("zero-value set must be usable, Len = %d", s.Len())
	}
}

func TestTemplateSetNamesIsCopy(t *testing.T) {
	s := NewTemplateSet()
	s.Add("A", "a")
	s.Add("B", "b")

	names := s.Names()
	names[0] = "mutated"

	if got := s.Names()[0]; got != "A" {
		t.Errorf("Names must return a copy, internal order now %q", got)
	}
}
