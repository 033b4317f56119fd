package editor

import (
	"errors"
	"strings"

	"sourcetrace/document"
	"sourcetrace/refstore"
)

var (
	ErrPasteInProgress = errors.New("editor: a paste is already awaiting a citation")
	ErrNoPendingPaste  = errors.New("editor: no paste is awaiting a citation")
	ErrEmptyCitation   = errors.New("editor: citation must not be empty")
	ErrMarkerGone      = errors.New("editor: the paste position no longer exists")
)

// PasteController intercepts pasted text. Begin parks a marker at the
// cursor and holds the text until the user either commits a citation or
// cancels. Nothing reaches the document until Commit.
type PasteController struct {
	doc  *document.Document
	refs *refstore.Store

	pending string
	active  bool
}

func NewPasteController(doc *document.Document, refs *refstore.Store) *PasteController {
	return &PasteController{doc: doc, refs: refs}
}

func (p *PasteController) Active() bool    { return p.active }
func (p *PasteController) Pending() string { return p.pending }

// Begin stages text for insertion and places the position marker.
// Whitespace-only pastes carry nothing worth citing and are refused.
func (p *PasteController) Begin(text string) error {
	if p.active {
		return ErrPasteInProgress
	}
	if strings.TrimSpace(text) == "" {
		return ErrNoPendingPaste
	}
	if err := p.doc.PlaceMarker(); err != nil {
		return err
	}
	p.pending = text
	p.active = true
	return nil
}

// Commit attaches the citation, records the reference, and inserts the
// staged text at the marker. A blank citation is refused and the paste
// stays pending. If the marker was edited away while the dialog was up
// the paste is dropped, matching an explicit cancel.
func (p *PasteController) Commit(citation string) (refstore.Reference, error) {
	if !p.active {
		return refstore.Reference{}, ErrNoPendingPaste
	}
	trimmed := strings.TrimSpace(citation)
	if trimmed == "" {
		return refstore.Reference{}, ErrEmptyCitation
	}
	if strings.TrimSpace(p.pending) == "" {
		p.doc.RemoveMarker()
		p.pending = ""
		p.active = false
		return refstore.Reference{}, ErrNoPendingPaste
	}
	if !p.doc.HasMarker() {
		p.pending = ""
		p.active = false
		return refstore.Reference{}, ErrMarkerGone
	}

	ref := p.refs.Add(p.pending, trimmed)
	p.doc.InsertReferenceAtMarker(ref.ID, p.pending)
	p.pending = ""
	p.active = false
	return ref, nil
}

// Cancel drops the staged text and removes the marker. The document is
// left exactly as it was before the paste. Safe to call when idle.
func (p *PasteController) Cancel() {
	if !p.active {
		return
	}
	p.doc.RemoveMarker()
	p.pending = ""
	p.active = false
}
