package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	got := wrapText("breathe in slowly and let go", 12)
	want := "breathe in\nslowly and\nlet go"
	if got != want {
		t.Fatalf("unexpected wrap:\n%s", got)
	}
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	got := wrapText("abcdefghij", 4)
	if got != "abcd\nefgh\nij" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextNoWidth(t *testing.T) {
	text := "one two three"
	if got := wrapText(text, 0); got != text {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}

func TestWrapTextCountsWideRunes(t *testing.T) {
	got := wrapText("🌙🌙🌙 rest", 4)
	for _, line := range strings.Split(got, "\n") {
		if w := runewidth.StringWidth(line); w > 4 {
			t.Fatalf("line %q is %d cells wide", line, w)
		}
	}
}
