package catalog

import (
	"errors"
	"testing"
)

func TestEveryPracticeHasGuide(t *testing.T) {
	for _, p := range Practices() {
		g := p.Guide()
		if g.Title == "" || g.Mantra == "" {
			t.Fatalf("practice %s missing guide text", p)
		}
		if len(g.Instructions) != 10 {
			t.Fatalf("practice %s: expected 10 instructions, got %d", p, len(g.Instructions))
		}
		if p.Name() == string(p) {
			t.Fatalf("practice %s has no display name", p)
		}
	}
}

func TestUnknownPracticeFallsBack(t *testing.T) {
	p := Practice("zen")
	if p.Known() {
		t.Fatalf("expected zen to be unknown")
	}
	if p.Name() != "zen" {
		t.Fatalf("expected raw id label, got %q", p.Name())
	}
	if len(p.Guide().Instructions) != 0 {
		t.Fatalf("expected empty guide for unknown practice")
	}
	if Practice("energy").Name() != "Energy Boost" {
		t.Fatalf("unexpected label: %q", Practice("energy").Name())
	}
}

func TestParsePractice(t *testing.T) {
	p, err := ParsePractice(" Healing ")
	if err != nil || p != Healing {
		t.Fatalf("ParsePractice(Healing) = %q, %v", p, err)
	}
	if _, err := ParsePractice("nope"); !errors.Is(err, ErrUnknownPractice) {
		t.Fatalf("expected ErrUnknownPractice, got %v", err)
	}
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{6, "🌅 Good Morning"},
		{12, "☀️ Good Afternoon"},
		{17, "🌆 Good Evening"},
		{22, "🌙 Good Night"},
	}
	for _, tt := range tests {
		if got := Greeting(tt.hour); got != tt.want {
			t.Fatalf("Greeting(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestFindContent(t *testing.T) {
	c, ok := FindContent("2")
	if !ok || c.Title != "Self-Realization through Chakra Meditation" {
		t.Fatalf("unexpected content for index 2: %+v", c)
	}
	if _, ok := FindContent("loving-kindness meditation"); !ok {
		t.Fatalf("expected case-insensitive title match")
	}
	if _, ok := FindContent("missing"); ok {
		t.Fatalf("expected no match")
	}
}

func TestPickerIsDeterministicWithSeed(t *testing.T) {
	a := NewSeededPicker(42)
	b := NewSeededPicker(42)
	for i := 0; i < 5; i++ {
		if a.Affirmation() != b.Affirmation() {
			t.Fatalf("seeded pickers diverged")
		}
	}
}
