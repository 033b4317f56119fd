package editor

import (
	"context"
	"errors"
	"strings"
	"time"

	"sourcetrace/activity"
	"sourcetrace/clipboardx"
	"sourcetrace/export"
	"sourcetrace/ui"

	"go.uber.org/zap"
)

func (e *Editor) copySelection() {
	text := e.doc.SelectedText()
	if text == "" {
		return
	}
	if clipboardx.Write(text) {
		e.setTemporaryMessage("Copied selection")
	} else {
		e.setTemporaryMessage("Copy failed: no clipboard available")
	}
}

func (e *Editor) pasteFromClipboard() {
	e.beginPaste(clipboardx.Read())
}

// beginPaste stages pasted text and opens the citation dialog. The text
// only enters the document once a citation is confirmed. Pastes that
// are empty after trimming fall through without interception.
func (e *Editor) beginPaste(text string) {
	if strings.TrimSpace(text) == "" || e.dialog != nil {
		return
	}
	if err := e.paste.Begin(text); err != nil {
		e.log.Warn("paste rejected", zap.Error(err))
		return
	}

	d := ui.NewCitationDialog(text)
	d.Theme = e.cfg.GetTheme()
	d.OnSubmit = func(citation string) {
		ref, err := e.paste.Commit(citation)
		switch {
		case errors.Is(err, ErrEmptyCitation):
			d.Message = "A citation is required"
			return
		case errors.Is(err, ErrMarkerGone):
			e.dialog = nil
			e.setTemporaryMessage("Paste position was edited away")
			e.log.Info("paste dropped, marker gone")
		case err != nil:
			e.dialog = nil
			e.log.Warn("paste commit failed", zap.Error(err))
		default:
			e.dialog = nil
			e.refreshSidebar()
			e.afterChange(activity.OpInsert)
			e.log.Info("reference added",
				zap.String("id", ref.ID),
				zap.Int("source_len", len(ref.SourceText)))
		}
		e.updateStatus()
	}
	d.OnCancel = func() {
		e.paste.Cancel()
		e.dialog = nil
		e.layout = nil
		e.updateStatus()
	}
	e.dialog = d
	e.layout = nil
	e.updateStatus()
}

func (e *Editor) removeReference(id string) {
	if !e.doc.RemoveSpan(id) {
		return
	}
	e.refs.Remove(id)
	e.refreshSidebar()
	e.afterChange(activity.OpDelete)
	e.setTemporaryMessage("Reference removed")
	e.log.Info("reference removed", zap.String("id", id))
}

func (e *Editor) openClearConfirm() {
	d := ui.NewClearConfirmDialog()
	d.Theme = e.cfg.GetTheme()
	d.OnConfirm = func(answer rune) {
		e.dialog = nil
		if answer == 'y' {
			e.clearAll()
		}
	}
	e.dialog = d
}

// clearAll wipes the document, references, and activity state together
// so no stale counters or orphaned references survive.
func (e *Editor) clearAll() {
	e.paste.Cancel()
	e.doc.Clear()
	e.refs.Clear()
	e.tracker.Reset()
	e.sampler.Reset()
	e.selAnchor = nil
	e.sidebar.Questions = nil
	e.sidebar.LastError = ""
	e.refreshSidebar()
	e.events.Change("")
	e.layout = nil
	e.scrollY = 0
	e.updateStatus()
	e.setTemporaryMessage("Document cleared")
	e.log.Info("document cleared")
}

func (e *Editor) exportActivity() {
	keystrokes, deletions := e.sampler.Series()
	csv := export.ActivityCSV(deletions, keystrokes)

	path, err := export.SaveArtifact(e.cfg.ExportDir, "typing_activity.csv", csv)
	if err != nil {
		e.setTemporaryMessage("Export failed: " + err.Error())
		e.log.Warn("activity export failed", zap.Error(err))
		return
	}
	if _, err := export.SaveArtifact(e.cfg.ExportDir, "text_content.txt", []byte(e.doc.PlainText())); err != nil {
		e.setTemporaryMessage("Export failed: " + err.Error())
		e.log.Warn("text export failed", zap.Error(err))
		return
	}

	e.setTemporaryMessage("Activity exported to " + path)
	e.log.Info("activity exported",
		zap.String("path", path),
		zap.Int("samples", len(keystrokes)))
}

// saveExitArtifacts writes the activity series and the document's plain
// text on quit, so the session's record survives without an explicit
// export. Failures are logged, not surfaced; the screen is gone.
func (e *Editor) saveExitArtifacts() {
	keystrokes, deletions := e.sampler.Series()
	csv := export.ActivityCSV(deletions, keystrokes)
	if _, err := export.SaveArtifact(e.cfg.ExportDir, "typing_activity.csv", csv); err != nil {
		e.log.Warn("activity save on exit failed", zap.Error(err))
	}
	if _, err := export.SaveArtifact(e.cfg.ExportDir, "text_content.txt", []byte(e.doc.PlainText())); err != nil {
		e.log.Warn("text save on exit failed", zap.Error(err))
	}
}

func (e *Editor) exportEvents() {
	data, err := e.events.MarshalIndent()
	if err != nil {
		e.setTemporaryMessage("Export failed: " + err.Error())
		return
	}
	path, err := export.SaveArtifact(e.cfg.ExportDir, "events.json", data)
	if err != nil {
		e.setTemporaryMessage("Export failed: " + err.Error())
		e.log.Warn("event export failed", zap.Error(err))
		return
	}
	e.setTemporaryMessage("Events exported to " + path)
	e.log.Info("events exported",
		zap.String("path", path),
		zap.Int("events", e.events.Len()))
}

func (e *Editor) generateQuestions() {
	if e.generating {
		e.setTemporaryMessage("Generation already in progress")
		return
	}
	text := e.doc.PlainText()
	e.questionGen++
	gen := e.questionGen
	e.generating = true
	e.sidebar.Loading = true
	e.sidebar.LastError = ""

	screen := e.screen
	client := e.qclient
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		qs, err := client.Generate(ctx, text)
		ev := &QuestionsEvent{Gen: gen, Questions: qs, Err: err}
		ev.SetEventNow()
		screen.PostEvent(ev)
	}()
}
