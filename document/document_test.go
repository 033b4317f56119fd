package document

import "testing"

func typeText(d *Document, text string) {
	for _, ch := range text {
		d.InsertText(string(ch))
	}
}

func TestInsertAndBackspace(t *testing.T) {
	d := New()
	typeText(d, "hello")
	if got := d.PlainText(); got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
	d.Backspace()
	d.Backspace()
	if got := d.PlainText(); got != "hel" {
		t.Fatalf("expected hel after backspace, got %q", got)
	}
	if d.CharCount() != 3 {
		t.Fatalf("expected char count 3, got %d", d.CharCount())
	}
}

func TestDeleteForward(t *testing.T) {
	d := New()
	typeText(d, "abc")
	d.MoveLeft()
	d.MoveLeft()
	d.Delete()
	if got := d.PlainText(); got != "ac" {
		t.Fatalf("expected ac, got %q", got)
	}
}

func TestPlaceMarkerSplitsTextRun(t *testing.T) {
	d := New()
	typeText(d, "one two")
	d.Cursor = Pos{Seg: 0, Off: 3}
	if err := d.PlaceMarker(); err != nil {
		t.Fatalf("place marker failed: %v", err)
	}
	if !d.HasMarker() {
		t.Fatalf("expected marker present")
	}
	if err := d.PlaceMarker(); err != ErrMarkerExists {
		t.Fatalf("expected ErrMarkerExists, got %v", err)
	}
	// The marker is invisible.
	if got := d.PlainText(); got != "one two" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}

func TestRemoveMarkerRestoresDocument(t *testing.T) {
	d := New()
	typeText(d, "one two")
	d.Cursor = Pos{Seg: 0, Off: 3}
	if err := d.PlaceMarker(); err != nil {
		t.Fatalf("place marker failed: %v", err)
	}

	pos, ok := d.RemoveMarker()
	if !ok {
		t.Fatalf("expected marker to be removed")
	}
	if got := d.PlainText(); got != "one two" {
		t.Fatalf("expected text unchanged after cancel, got %q", got)
	}
	if len(d.Segments) != 1 {
		t.Fatalf("expected a single merged text run, got %d segments", len(d.Segments))
	}
	if !pos.Equal(Pos{Seg: 0, Off: 3}) {
		t.Fatalf("expected join position at original offset, got %+v", pos)
	}

	if _, ok := d.RemoveMarker(); ok {
		t.Fatalf("second removal should report marker absent")
	}
}

func TestInsertReferenceAtMarker(t *testing.T) {
	d := New()
	typeText(d, "before after")
	d.Cursor = Pos{Seg: 0, Off: 7}
	if err := d.PlaceMarker(); err != nil {
		t.Fatalf("place marker failed: %v", err)
	}

	if !d.InsertReferenceAtMarker("ref-1", "Quoted passage.") {
		t.Fatalf("expected insert at marker to succeed")
	}
	if d.HasMarker() {
		t.Fatalf("marker must not survive commit")
	}
	want := "before " + "Quoted passage." + Separator + "after"
	if got := d.PlainText(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if !d.SpanIDs()["ref-1"] {
		t.Fatalf("expected span id ref-1 present")
	}

	// Cursor sits in the editable gap right after the separator.
	d.InsertText("x")
	want = "before Quoted passage." + Separator + "xafter"
	if got := d.PlainText(); got != want {
		t.Fatalf("expected typing to land after separator, got %q", got)
	}
}

func TestInsertReferenceWithoutMarker(t *testing.T) {
	d := New()
	typeText(d, "text")
	if d.InsertReferenceAtMarker("ref-1", "x") {
		t.Fatalf("expected insert to fail with no marker")
	}
	if len(d.SpanIDs()) != 0 {
		t.Fatalf("expected no spans")
	}
}

func TestBackspaceDeletesWholeSpan(t *testing.T) {
	d := New()
	typeText(d, "a")
	if err := d.PlaceMarker(); err != nil {
		t.Fatalf("place marker failed: %v", err)
	}
	d.InsertReferenceAtMarker("ref-1", "span text")

	// Cursor is after the separator; two backspaces reach the span.
	d.Backspace() // separator
	d.Backspace() // whole span
	if got := d.PlainText(); got != "a" {
		t.Fatalf("expected span removed wholesale, got %q", got)
	}
	if len(d.SpanIDs()) != 0 {
		t.Fatalf("expected no span ids after deletion")
	}
}

func TestRemoveSpanMergesNeighbors(t *testing.T) {
	d := New()
	typeText(d, "head tail")
	d.Cursor = Pos{Seg: 0, Off: 5}
	d.PlaceMarker()
	d.InsertReferenceAtMarker("ref-9", "MID")

	if !d.RemoveSpan("ref-9") {
		t.Fatalf("expected span removal to succeed")
	}
	if d.RemoveSpan("ref-9") {
		t.Fatalf("second removal should fail")
	}
	want := "head " + Separator + "tail"
	if got := d.PlainText(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if len(d.Segments) != 1 {
		t.Fatalf("expected merged text run, got %d segments", len(d.Segments))
	}
}

func TestMarkerConsumedByEditing(t *testing.T) {
	d := New()
	typeText(d, "ab")
	d.Cursor = Pos{Seg: 0, Off: 1}
	d.PlaceMarker()

	// User keeps editing and backspaces over the marker.
	d.Backspace()
	if d.HasMarker() {
		t.Fatalf("expected marker consumed by backspace")
	}
	if got := d.PlainText(); got != "ab" {
		t.Fatalf("backspace over the zero-size marker must not eat text, got %q", got)
	}
}

func TestDeleteSelectionAcrossSpan(t *testing.T) {
	d := New()
	typeText(d, "aa bb")
	d.Cursor = Pos{Seg: 0, Off: 3}
	d.PlaceMarker()
	d.InsertReferenceAtMarker("ref-2", "XYZ")

	d.SelectAll()
	d.DeleteSelection()
	if got := d.PlainText(); got != "" {
		t.Fatalf("expected empty document, got %q", got)
	}
	if len(d.SpanIDs()) != 0 {
		t.Fatalf("expected spans deleted with selection")
	}
	if len(d.Segments) != 1 {
		t.Fatalf("expected single empty run, got %d segments", len(d.Segments))
	}
}

func TestSelectedTextIncludesSpanText(t *testing.T) {
	d := New()
	typeText(d, "x y")
	d.Cursor = Pos{Seg: 0, Off: 2}
	d.PlaceMarker()
	d.InsertReferenceAtMarker("ref-3", "SPAN")
	d.SelectAll()

	want := "x SPAN" + Separator + "y"
	if got := d.SelectedText(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTypingOverSelection(t *testing.T) {
	d := New()
	typeText(d, "hello world")
	sel := NewSelection(Pos{Seg: 0, Off: 5}, Pos{Seg: 0, Off: 11})
	d.Selection = &sel
	d.InsertText("!")
	if got := d.PlainText(); got != "hello!" {
		t.Fatalf("expected hello!, got %q", got)
	}
}

func TestCursorNavigationAroundSpan(t *testing.T) {
	d := New()
	typeText(d, "ab")
	d.Cursor = Pos{Seg: 0, Off: 1}
	d.PlaceMarker()
	d.InsertReferenceAtMarker("ref-4", "wide span")

	// From the gap, left hops over the whole span in one step.
	d.Cursor = Pos{Seg: 2, Off: 0}
	d.MoveLeft()
	if !d.Cursor.Equal(Pos{Seg: 0, Off: 1}) {
		t.Fatalf("expected cursor before span, got %+v", d.Cursor)
	}
	d.MoveRight()
	if !d.Cursor.Equal(Pos{Seg: 2, Off: 0}) {
		t.Fatalf("expected cursor after span, got %+v", d.Cursor)
	}
}

func TestFlatOffsetRoundTrip(t *testing.T) {
	d := New()
	typeText(d, "ab")
	d.Cursor = Pos{Seg: 0, Off: 1}
	d.PlaceMarker()
	d.InsertReferenceAtMarker("ref-5", "XY")

	// Document text: "a" + "XY" + NBSP + "b"
	if got := d.CharCount(); got != 5 {
		t.Fatalf("expected 5 visible chars, got %d", got)
	}

	p := d.PosAtOffset(0)
	if d.FlatOffset(p) != 0 {
		t.Fatalf("offset 0 did not round trip")
	}
	// Offset inside the span snaps to the boundary after it.
	p = d.PosAtOffset(2)
	if !p.Equal(Pos{Seg: 2, Off: 0}) {
		t.Fatalf("expected snap past span, got %+v", p)
	}
	if got := d.FlatOffset(p); got != 3 {
		t.Fatalf("expected flat offset 3 after span, got %d", got)
	}
	// Past the end clamps to document end.
	p = d.PosAtOffset(100)
	if got := d.FlatOffset(p); got != 5 {
		t.Fatalf("expected clamp to end, got %d", got)
	}
}

func TestClearResetsEverything(t *testing.T) {
	d := New()
	typeText(d, "content")
	d.PlaceMarker()
	d.Clear()
	if got := d.PlainText(); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
	if d.HasMarker() {
		t.Fatalf("expected no marker after clear")
	}
	if !d.Cursor.Equal(Pos{}) {
		t.Fatalf("expected cursor at origin, got %+v", d.Cursor)
	}
}

func TestUnicodeMovement(t *testing.T) {
	d := New()
	d.InsertText("héllo")
	d.MoveLeft()
	d.MoveLeft()
	d.MoveLeft()
	d.MoveLeft()
	d.Backspace()
	if got := d.PlainText(); got != "éllo" {
		t.Fatalf("expected éllo, got %q", got)
	}
}
