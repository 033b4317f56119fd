package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sourcetrace/activity"
	"sourcetrace/config"

	"go.uber.org/zap"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	cfg := config.Default()
	cfg.ExportDir = t.TempDir()
	return New(cfg, zap.NewNop())
}

// Pasting a reference and deleting its span must end in the same state
// whether the span goes via the sidebar remove action or via ordinary
// editing: the span gone, the store reconciled, the rest of the text
// intact.
func TestSpanRemovalConvergence(t *testing.T) {
	seed := func(e *Editor) string {
		typeText(e.doc, "before ")
		if err := e.paste.Begin("quoted"); err != nil {
			t.Fatalf("Begin failed: %v", err)
		}
		ref, err := e.paste.Commit("Smith 2020")
		if err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
		e.afterChange(activity.OpInsert)
		return ref.ID
	}

	sidebar := newTestEditor(t)
	id := seed(sidebar)
	sidebar.removeReference(id)

	edited := newTestEditor(t)
	seed(edited)
	// Cursor sits in the gap after the separator. Step over the
	// separator, then backspace through the span itself.
	edited.doc.MoveLeft()
	edited.doc.Backspace()
	edited.afterChange(activity.OpDelete)

	if got, want := edited.doc.PlainText(), sidebar.doc.PlainText(); got != want {
		t.Fatalf("edited text = %q, sidebar text = %q", got, want)
	}
	for _, e := range []*Editor{sidebar, edited} {
		if len(e.doc.SpanIDs()) != 0 {
			t.Fatal("span should be gone")
		}
		if e.refs.Len() != 0 {
			t.Fatalf("store should be empty, has %d", e.refs.Len())
		}
	}
}

func TestExitArtifactsWritten(t *testing.T) {
	e := newTestEditor(t)
	typeText(e.doc, "closing words")
	e.afterChange(activity.OpInsert)

	e.saveExitArtifacts()

	text, err := os.ReadFile(filepath.Join(e.cfg.ExportDir, "text_content.txt"))
	if err != nil {
		t.Fatalf("text artifact missing: %v", err)
	}
	if string(text) != "closing words" {
		t.Fatalf("text artifact = %q", text)
	}
	csv, err := os.ReadFile(filepath.Join(e.cfg.ExportDir, "typing_activity.csv"))
	if err != nil {
		t.Fatalf("activity artifact missing: %v", err)
	}
	// Two rows even when the sampler never ticked.
	if got := len(strings.Split(string(csv), "\n")); got != 2 {
		t.Fatalf("expected 2 csv rows, got %d (%q)", got, csv)
	}
}
