package document

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Separator sits between a committed reference span and the editable gap
// that follows it.
const Separator = " "

var ErrMarkerExists = errors.New("document: a position marker is already placed")

type Kind int

const (
	Text Kind = iota
	Span
	Marker
)

type Segment struct {
	Kind  Kind
	Text  string // text runs; for spans, the source text
	RefID string // spans only
}

// Document is an ordered sequence of inline segments. Text runs and
// atomic segments (spans, the marker) strictly alternate: text runs sit
// at even indices, the first and last segment are always text runs, and
// an empty text run separates adjacent atomic segments. The cursor
// therefore always addresses a text run.
type Document struct {
	Segments  []Segment
	Cursor    Pos
	Selection *Selection
}

func New() *Document {
	return &Document{Segments: []Segment{{Kind: Text}}}
}

func (d *Document) clampCursor() {
	if len(d.Segments) == 0 {
		d.Segments = []Segment{{Kind: Text}}
	}
	if d.Cursor.Seg < 0 {
		d.Cursor.Seg = 0
	}
	if d.Cursor.Seg >= len(d.Segments) {
		d.Cursor.Seg = len(d.Segments) - 1
	}
	if d.Segments[d.Cursor.Seg].Kind != Text {
		// Atomic segments always have a text run on both sides.
		d.Cursor.Seg--
		d.Cursor.Off = len(d.Segments[d.Cursor.Seg].Text)
	}
	n := len(d.Segments[d.Cursor.Seg].Text)
	if d.Cursor.Off < 0 {
		d.Cursor.Off = 0
	}
	if d.Cursor.Off > n {
		d.Cursor.Off = n
	}
}

func (d *Document) clampPos(p Pos) Pos {
	if p.Seg < 0 {
		return Pos{}
	}
	if p.Seg >= len(d.Segments) {
		last := len(d.Segments) - 1
		return Pos{Seg: last, Off: len(d.Segments[last].Text)}
	}
	if d.Segments[p.Seg].Kind != Text {
		p.Seg--
		p.Off = len(d.Segments[p.Seg].Text)
		return p
	}
	if p.Off < 0 {
		p.Off = 0
	}
	if n := len(d.Segments[p.Seg].Text); p.Off > n {
		p.Off = n
	}
	return p
}

func (d *Document) InsertText(text string) {
	if text == "" {
		return
	}
	d.deleteSelectionIfAny()
	d.clampCursor()
	seg := &d.Segments[d.Cursor.Seg]
	seg.Text = seg.Text[:d.Cursor.Off] + text + seg.Text[d.Cursor.Off:]
	d.Cursor.Off += len(text)
}

func (d *Document) Backspace() {
	if d.deleteSelectionIfAny() {
		return
	}
	d.clampCursor()
	if d.Cursor.Off > 0 {
		seg := &d.Segments[d.Cursor.Seg]
		_, size := utf8.DecodeLastRuneInString(seg.Text[:d.Cursor.Off])
		seg.Text = seg.Text[:d.Cursor.Off-size] + seg.Text[d.Cursor.Off:]
		d.Cursor.Off -= size
		return
	}
	if d.Cursor.Seg == 0 {
		return
	}
	// The previous segment is atomic; deleting into it removes it whole.
	// That may consume the marker, which resolution paths tolerate.
	d.removeAtomic(d.Cursor.Seg - 1)
}

func (d *Document) Delete() {
	if d.deleteSelectionIfAny() {
		return
	}
	d.clampCursor()
	seg := &d.Segments[d.Cursor.Seg]
	if d.Cursor.Off < len(seg.Text) {
		_, size := utf8.DecodeRuneInString(seg.Text[d.Cursor.Off:])
		seg.Text = seg.Text[:d.Cursor.Off] + seg.Text[d.Cursor.Off+size:]
		return
	}
	if d.Cursor.Seg >= len(d.Segments)-1 {
		return
	}
	d.removeAtomic(d.Cursor.Seg + 1)
}

// removeAtomic removes the atomic segment at index i and merges the text
// runs on either side of it. Returns the join position, the former
// location of the removed segment expressed in the merged run.
func (d *Document) removeAtomic(i int) Pos {
	join := Pos{Seg: i - 1, Off: len(d.Segments[i-1].Text)}

	cur := d.Cursor
	switch {
	case cur.Seg > i+1:
		cur.Seg -= 2
	case cur.Seg == i+1:
		cur = Pos{Seg: i - 1, Off: join.Off + cur.Off}
	case cur.Seg == i:
		cur = join
	}

	d.Segments[i-1].Text += d.Segments[i+1].Text
	d.Segments = append(d.Segments[:i], d.Segments[i+2:]...)
	d.Cursor = cur
	d.Selection = nil
	return join
}

func (d *Document) MoveLeft() {
	d.clampCursor()
	if d.Cursor.Off > 0 {
		seg := d.Segments[d.Cursor.Seg]
		_, size := utf8.DecodeLastRuneInString(seg.Text[:d.Cursor.Off])
		d.Cursor.Off -= size
		return
	}
	if d.Cursor.Seg == 0 {
		return
	}
	// Hop over the atomic segment; spans are opaque units.
	d.Cursor = Pos{Seg: d.Cursor.Seg - 2, Off: len(d.Segments[d.Cursor.Seg-2].Text)}
}

func (d *Document) MoveRight() {
	d.clampCursor()
	seg := d.Segments[d.Cursor.Seg]
	if d.Cursor.Off < len(seg.Text) {
		_, size := utf8.DecodeRuneInString(seg.Text[d.Cursor.Off:])
		d.Cursor.Off += size
		return
	}
	if d.Cursor.Seg >= len(d.Segments)-1 {
		return
	}
	d.Cursor = Pos{Seg: d.Cursor.Seg + 2, Off: 0}
}

func (d *Document) SelectAll() {
	last := len(d.Segments) - 1
	sel := NewSelection(Pos{}, Pos{Seg: last, Off: len(d.Segments[last].Text)})
	d.Selection = &sel
	d.Cursor = sel.End
}

func (d *Document) deleteSelectionIfAny() bool {
	if d.Selection == nil || d.Selection.Empty() {
		d.Selection = nil
		return false
	}
	d.DeleteSelection()
	return true
}

// DeleteSelection removes everything between the selection endpoints.
// Spans inside the range are deleted wholesale; a marker inside the
// range is consumed.
func (d *Document) DeleteSelection() {
	if d.Selection == nil {
		return
	}
	sel := *d.Selection
	d.Selection = nil
	start := d.clampPos(sel.Start)
	end := d.clampPos(sel.End)
	if end.Before(start) {
		start, end = end, start
	}

	if start.Seg == end.Seg {
		seg := &d.Segments[start.Seg]
		seg.Text = seg.Text[:start.Off] + seg.Text[end.Off:]
	} else {
		d.Segments[start.Seg].Text = d.Segments[start.Seg].Text[:start.Off] + d.Segments[end.Seg].Text[end.Off:]
		d.Segments = append(d.Segments[:start.Seg+1], d.Segments[end.Seg+1:]...)
	}
	d.Cursor = start
	d.clampCursor()
}

func (d *Document) SelectedText() string {
	if d.Selection == nil {
		return ""
	}
	sel := *d.Selection
	start := d.clampPos(sel.Start)
	end := d.clampPos(sel.End)
	if end.Before(start) {
		start, end = end, start
	}

	if start.Seg == end.Seg {
		return d.Segments[start.Seg].Text[start.Off:end.Off]
	}

	var sb strings.Builder
	sb.WriteString(d.Segments[start.Seg].Text[start.Off:])
	for i := start.Seg + 1; i < end.Seg; i++ {
		if d.Segments[i].Kind == Marker {
			continue
		}
		sb.WriteString(d.Segments[i].Text)
	}
	sb.WriteString(d.Segments[end.Seg].Text[:end.Off])
	return sb.String()
}

// PlainText returns the visible text: text runs plus span source texts.
// The marker is zero-size and contributes nothing.
func (d *Document) PlainText() string {
	var sb strings.Builder
	for _, s := range d.Segments {
		if s.Kind == Marker {
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func (d *Document) CharCount() int {
	return utf8.RuneCountInString(d.PlainText())
}

func (d *Document) Clear() {
	d.Segments = []Segment{{Kind: Text}}
	d.Cursor = Pos{}
	d.Selection = nil
}

// FlatOffset returns the rune offset of p within PlainText.
func (d *Document) FlatOffset(p Pos) int {
	p = d.clampPos(p)
	off := 0
	for i := 0; i < p.Seg; i++ {
		if d.Segments[i].Kind == Marker {
			continue
		}
		off += utf8.RuneCountInString(d.Segments[i].Text)
	}
	return off + utf8.RuneCountInString(d.Segments[p.Seg].Text[:p.Off])
}

// PosAtOffset maps a rune offset within PlainText back to a cursor
// position. Offsets falling inside a span snap to the boundary after it.
func (d *Document) PosAtOffset(off int) Pos {
	if off < 0 {
		off = 0
	}
	for i, s := range d.Segments {
		switch s.Kind {
		case Text:
			n := utf8.RuneCountInString(s.Text)
			if off <= n {
				return Pos{Seg: i, Off: byteOffset(s.Text, off)}
			}
			off -= n
		case Span:
			n := utf8.RuneCountInString(s.Text)
			if off < n {
				return Pos{Seg: i + 1, Off: 0}
			}
			off -= n
		}
	}
	last := len(d.Segments) - 1
	return Pos{Seg: last, Off: len(d.Segments[last].Text)}
}

func byteOffset(s string, runes int) int {
	for i := range s {
		if runes == 0 {
			return i
		}
		runes--
	}
	return len(s)
}
