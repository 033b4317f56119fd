package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestCitationDialogInputEditing(t *testing.T) {
	d := NewCitationDialog("pasted text")

	for _, r := range "Smth" {
		d.HandleKey(key(tcell.KeyRune, r))
	}
	d.HandleKey(key(tcell.KeyLeft, 0))
	d.HandleKey(key(tcell.KeyLeft, 0))
	d.HandleKey(key(tcell.KeyRune, 'i'))
	if d.Input != "Smith" {
		t.Fatalf("input = %q, want %q", d.Input, "Smith")
	}

	d.HandleKey(key(tcell.KeyEnd, 0))
	d.HandleKey(key(tcell.KeyBackspace2, 0))
	if d.Input != "Smit" {
		t.Fatalf("input = %q, want %q", d.Input, "Smit")
	}
}

func TestCitationDialogSubmitAndCancel(t *testing.T) {
	d := NewCitationDialog("pasted text")

	var submitted string
	cancelled := false
	d.OnSubmit = func(v string) { submitted = v }
	d.OnCancel = func() { cancelled = true }

	for _, r := range "Doe 2021" {
		d.HandleKey(key(tcell.KeyRune, r))
	}
	d.HandleKey(key(tcell.KeyEnter, 0))
	if submitted != "Doe 2021" {
		t.Fatalf("submitted = %q", submitted)
	}

	d.HandleKey(key(tcell.KeyEscape, 0))
	if !cancelled {
		t.Fatal("expected cancel callback")
	}
}

func TestTypingClearsRefusalMessage(t *testing.T) {
	d := NewCitationDialog("pasted text")
	d.Message = "A citation is required"
	d.HandleKey(key(tcell.KeyRune, 'a'))
	if d.Message != "" {
		t.Fatalf("message = %q, want empty", d.Message)
	}
}

func TestClearConfirmAnswers(t *testing.T) {
	d := NewClearConfirmDialog()
	var answer rune
	d.OnConfirm = func(a rune) { answer = a }

	d.HandleKey(key(tcell.KeyRune, 'y'))
	if answer != 'y' {
		t.Fatalf("answer = %q, want 'y'", answer)
	}

	d.HandleKey(key(tcell.KeyEscape, 0))
	if answer != 'n' {
		t.Fatalf("answer = %q, want 'n'", answer)
	}
}

func TestPreviewLines(t *testing.T) {
	lines := previewLines("abcdefgh", 4, 4)
	if len(lines) != 2 || lines[0] != "abcd" || lines[1] != "efgh" {
		t.Fatalf("lines = %v", lines)
	}

	lines = previewLines("aaaabbbbccccddddeeee", 4, 2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != "bbb…" {
		t.Fatalf("last line = %q, want elision", lines[1])
	}

	if lines := previewLines("", 10, 4); len(lines) != 1 || lines[0] != "" {
		t.Fatalf("empty preview = %v", lines)
	}
}
