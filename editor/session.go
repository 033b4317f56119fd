package editor

import (
	"encoding/json"
	"os"
	"path/filepath"

	"sourcetrace/document"
	"sourcetrace/refstore"
)

type SessionData struct {
	Segments   []SegmentState   `json:"segments"`
	References []ReferenceState `json:"references"`
}

type SegmentState struct {
	Kind  int    `json:"kind"`
	Text  string `json:"text,omitempty"`
	RefID string `json:"ref_id,omitempty"`
}

type ReferenceState struct {
	ID         string `json:"id"`
	SourceText string `json:"source_text"`
	Citation   string `json:"citation"`
}

func sessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "sourcetrace", "session.json")
}

func saveSessionTo(path string, doc *document.Document, refs *refstore.Store) error {
	session := SessionData{}
	for _, seg := range doc.Segments {
		if seg.Kind == document.Marker {
			// An in-flight paste does not survive a restart.
			continue
		}
		session.Segments = append(session.Segments, SegmentState{
			Kind:  int(seg.Kind),
			Text:  seg.Text,
			RefID: seg.RefID,
		})
	}
	for _, ref := range refs.List() {
		session.References = append(session.References, ReferenceState{
			ID:         ref.ID,
			SourceText: ref.SourceText,
			Citation:   ref.Citation,
		})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// restoreSessionFrom rebuilds the document and store from a saved
// session. Segment alternation is re-established from scratch, so a
// hand-edited or stale file degrades to plain text instead of a
// malformed document. Spans without a matching reference are flattened
// into text.
func restoreSessionFrom(path string, doc *document.Document, refs *refstore.Store) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return false
	}

	known := make(map[string]ReferenceState, len(session.References))
	for _, ref := range session.References {
		if ref.ID != "" {
			known[ref.ID] = ref
		}
	}

	segments := []document.Segment{{Kind: document.Text}}
	used := make(map[string]bool)
	for _, seg := range session.Segments {
		switch document.Kind(seg.Kind) {
		case document.Text:
			segments[len(segments)-1].Text += seg.Text
		case document.Span:
			ref, ok := known[seg.RefID]
			if !ok || used[seg.RefID] {
				segments[len(segments)-1].Text += seg.Text
				continue
			}
			used[seg.RefID] = true
			segments = append(segments,
				document.Segment{Kind: document.Span, Text: seg.Text, RefID: seg.RefID},
				document.Segment{Kind: document.Text})
			refs.Restore(refstore.Reference{ID: ref.ID, SourceText: ref.SourceText, Citation: ref.Citation})
		}
	}

	doc.Segments = segments
	doc.Cursor = document.Pos{}
	doc.Selection = nil
	refs.Reconcile(doc.SpanIDs())
	return true
}

func (e *Editor) SaveSession() {
	path := sessionPath()
	if path == "" {
		return
	}
	_ = saveSessionTo(path, e.doc, e.refs)
}

func (e *Editor) RestoreSession() bool {
	path := sessionPath()
	if path == "" {
		return false
	}
	return restoreSessionFrom(path, e.doc, e.refs)
}
