package editor

import (
	"testing"

	"sourcetrace/document"
)

func TestLayoutWrapsAtWidth(t *testing.T) {
	doc := document.New()
	typeText(doc, "abcdefghij")

	lc := buildLayout(doc, 4, false)
	if len(lc.lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lc.lines))
	}
	if got := string(lineRunes(lc.lines[0])); got != "abcd" {
		t.Fatalf("line 0 = %q", got)
	}
	if got := string(lineRunes(lc.lines[2])); got != "ij" {
		t.Fatalf("line 2 = %q", got)
	}
}

func TestLayoutWordWrapBreaksAtSpace(t *testing.T) {
	doc := document.New()
	typeText(doc, "one two three")

	lc := buildLayout(doc, 6, true)
	if got := string(lineRunes(lc.lines[0])); got != "one " {
		t.Fatalf("line 0 = %q", got)
	}
	if got := string(lineRunes(lc.lines[1])); got != "two " {
		t.Fatalf("line 1 = %q", got)
	}
	if got := string(lineRunes(lc.lines[2])); got != "three" {
		t.Fatalf("line 2 = %q", got)
	}
}

func TestLayoutNewlineForcesBreak(t *testing.T) {
	doc := document.New()
	typeText(doc, "ab\ncd")

	lc := buildLayout(doc, 80, false)
	if len(lc.lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lc.lines))
	}
	if got := string(lineRunes(lc.lines[1])); got != "cd" {
		t.Fatalf("line 1 = %q", got)
	}
}

func TestLayoutMarkerGlyphIsZeroWidthInOffsets(t *testing.T) {
	doc := document.New()
	typeText(doc, "ab")
	doc.Cursor = document.Pos{Seg: 0, Off: 1}
	if err := doc.PlaceMarker(); err != nil {
		t.Fatalf("PlaceMarker failed: %v", err)
	}

	lc := buildLayout(doc, 80, false)
	if lc.total != 2 {
		t.Fatalf("flat length = %d, want 2", lc.total)
	}
	cells := lc.lines[0]
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	if cells[1].kind != document.Marker {
		t.Fatal("expected marker glyph between a and b")
	}
	// The glyph shares the offset of the rune after it.
	if cells[1].off != 1 || cells[2].off != 1 {
		t.Fatalf("offsets = %d, %d, want 1, 1", cells[1].off, cells[2].off)
	}

	// The cursor sits after the marker, visually past the glyph.
	_, x := lc.cursorCell(doc.FlatOffset(doc.Cursor))
	if x != 2 {
		t.Fatalf("cursor x = %d, want 2", x)
	}
}

func TestOffsetAtColumnPastLineEnd(t *testing.T) {
	doc := document.New()
	typeText(doc, "ab\ncdef")

	lc := buildLayout(doc, 80, false)
	// Clicking far right on the first line lands before the newline.
	if got := offsetAtColumn(lc, 0, 40); got != 2 {
		t.Fatalf("offset = %d, want 2", got)
	}
	// On the last line it lands at the document end.
	if got := offsetAtColumn(lc, 1, 40); got != 7 {
		t.Fatalf("offset = %d, want 7", got)
	}
}

func TestCursorCellAtDocumentEnd(t *testing.T) {
	doc := document.New()
	typeText(doc, "abc")

	lc := buildLayout(doc, 80, false)
	line, x := lc.cursorCell(3)
	if line != 0 || x != 3 {
		t.Fatalf("cursor cell = (%d, %d), want (0, 3)", line, x)
	}
}

func lineRunes(cells []lcell) []rune {
	var out []rune
	for _, c := range cells {
		if c.ch == '\n' {
			continue
		}
		out = append(out, c.ch)
	}
	return out
}
