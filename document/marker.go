package document

// Marker operations. At most one marker exists at a time; it remembers
// "insert here" across the asynchronous citation dialog and is removed
// on every resolution path. Ordinary editing may consume it first, so
// every reader tolerates its absence.

func (d *Document) HasMarker() bool {
	return d.markerIndex() >= 0
}

func (d *Document) markerIndex() int {
	for i, s := range d.Segments {
		if s.Kind == Marker {
			return i
		}
	}
	return -1
}

// PlaceMarker inserts the marker at the cursor by splitting the current
// text run around it. Any active selection is dropped without deleting
// its text, so a later cancel leaves the document byte-identical.
func (d *Document) PlaceMarker() error {
	if d.HasMarker() {
		return ErrMarkerExists
	}
	d.Selection = nil
	d.clampCursor()

	i, off := d.Cursor.Seg, d.Cursor.Off
	left := d.Segments[i].Text[:off]
	right := d.Segments[i].Text[off:]

	segs := make([]Segment, 0, len(d.Segments)+2)
	segs = append(segs, d.Segments[:i]...)
	segs = append(segs,
		Segment{Kind: Text, Text: left},
		Segment{Kind: Marker},
		Segment{Kind: Text, Text: right},
	)
	segs = append(segs, d.Segments[i+1:]...)
	d.Segments = segs
	d.Cursor = Pos{Seg: i + 2, Off: 0}
	return nil
}

// RemoveMarker removes the marker without inserting anything, merging
// its neighboring text runs. The returned position is the marker's
// former location; ok is false if the marker was already consumed.
func (d *Document) RemoveMarker() (Pos, bool) {
	i := d.markerIndex()
	if i < 0 {
		return Pos{}, false
	}
	return d.removeAtomic(i), true
}

// InsertReferenceAtMarker materializes a confirmed reference where the
// marker sits: the marker becomes the span and the separator plus
// editable gap follow it, all in a single mutation with no intermediate
// state. The cursor lands in the gap. Returns false if the marker is
// gone.
func (d *Document) InsertReferenceAtMarker(id, sourceText string) bool {
	i := d.markerIndex()
	if i < 0 {
		return false
	}
	d.Segments[i] = Segment{Kind: Span, Text: sourceText, RefID: id}
	d.Segments[i+1].Text = Separator + d.Segments[i+1].Text
	d.Cursor = Pos{Seg: i + 1, Off: len(Separator)}
	d.Selection = nil
	return true
}

// RemoveSpan deletes the span carrying id, merging its neighbors.
func (d *Document) RemoveSpan(id string) bool {
	for i, s := range d.Segments {
		if s.Kind == Span && s.RefID == id {
			d.removeAtomic(i)
			return true
		}
	}
	return false
}

// SpanIDs returns the set of reference ids currently present as spans.
func (d *Document) SpanIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, s := range d.Segments {
		if s.Kind == Span {
			ids[s.RefID] = true
		}
	}
	return ids
}
