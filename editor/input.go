package editor

import (
	"sourcetrace/activity"
	"sourcetrace/document"

	"github.com/gdamore/tcell/v2"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	// Terminals without bracketed paste delivery fall back to Ctrl+V;
	// terminals with it stream the text between paste boundary events.
	if e.pasting {
		switch ev.Key() {
		case tcell.KeyRune:
			e.pasteBuf = append(e.pasteBuf, ev.Rune())
		case tcell.KeyEnter:
			e.pasteBuf = append(e.pasteBuf, '\n')
		case tcell.KeyTab:
			e.pasteBuf = append(e.pasteBuf, '\t')
		}
		return
	}

	e.events.Keypress(keyName(ev))

	if e.dialog != nil {
		e.dialog.HandleKey(ev)
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		e.quit = true
	case tcell.KeyCtrlC:
		e.copySelection()
	case tcell.KeyCtrlV:
		e.pasteFromClipboard()
	case tcell.KeyCtrlA:
		e.doc.SelectAll()
	case tcell.KeyCtrlE:
		e.exportActivity()
	case tcell.KeyCtrlJ:
		e.exportEvents()
	case tcell.KeyCtrlG:
		e.generateQuestions()
	case tcell.KeyCtrlK:
		e.openClearConfirm()
	case tcell.KeyEnter:
		e.doc.InsertText("\n")
		e.afterChange(activity.OpInsert)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.doc.Selection != nil {
			e.doc.DeleteSelection()
		} else {
			e.doc.Backspace()
		}
		e.afterChange(activity.OpDelete)
	case tcell.KeyDelete:
		if e.doc.Selection != nil {
			e.doc.DeleteSelection()
		} else {
			e.doc.Delete()
		}
		e.afterChange(activity.OpDelete)
	case tcell.KeyLeft:
		e.moveCursor(ev.Modifiers()&tcell.ModShift != 0, func() { e.doc.MoveLeft() })
	case tcell.KeyRight:
		e.moveCursor(ev.Modifiers()&tcell.ModShift != 0, func() { e.doc.MoveRight() })
	case tcell.KeyUp:
		e.moveCursor(ev.Modifiers()&tcell.ModShift != 0, func() { e.moveVertical(-1) })
	case tcell.KeyDown:
		e.moveCursor(ev.Modifiers()&tcell.ModShift != 0, func() { e.moveVertical(1) })
	case tcell.KeyHome:
		e.moveCursor(ev.Modifiers()&tcell.ModShift != 0, func() { e.moveLineEdge(true) })
	case tcell.KeyEnd:
		e.moveCursor(ev.Modifiers()&tcell.ModShift != 0, func() { e.moveLineEdge(false) })
	case tcell.KeyEscape:
		e.doc.Selection = nil
		e.selAnchor = nil
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return
		}
		e.doc.InsertText(string(ev.Rune()))
		e.afterChange(activity.OpInsert)
	}
}

// moveCursor runs a movement, extending the selection when shift is held
// and collapsing it otherwise.
func (e *Editor) moveCursor(extend bool, move func()) {
	if extend {
		if e.selAnchor == nil {
			anchor := e.doc.Cursor
			e.selAnchor = &anchor
		}
		move()
		sel := document.NewSelection(*e.selAnchor, e.doc.Cursor)
		if sel.Empty() {
			e.doc.Selection = nil
		} else {
			e.doc.Selection = &sel
		}
		return
	}
	e.selAnchor = nil
	e.doc.Selection = nil
	move()
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	if e.sidebar.HandleMouse(ev) {
		if ev.Buttons() == tcell.Button1 {
			mx, my := ev.Position()
			e.events.Click(mx, my)
		}
		return
	}
	if e.dialog != nil {
		return
	}

	mx, my := ev.Position()
	switch ev.Buttons() {
	case tcell.WheelUp:
		if e.scrollY > 0 {
			e.scrollY--
		}
	case tcell.WheelDown:
		e.scrollY++
		e.clampScroll()
	case tcell.Button1:
		off, ok := e.hitTest(mx, my)
		if !ok {
			return
		}
		e.events.Click(mx, my)
		if ev.Modifiers()&tcell.ModShift != 0 && e.selAnchor != nil {
			e.doc.Cursor = e.doc.PosAtOffset(off)
			sel := document.NewSelection(*e.selAnchor, e.doc.Cursor)
			e.doc.Selection = &sel
			return
		}
		e.doc.Cursor = e.doc.PosAtOffset(off)
		anchor := e.doc.Cursor
		e.selAnchor = &anchor
		e.doc.Selection = nil
	}
}

func (e *Editor) handlePasteEvent(ev *tcell.EventPaste) {
	if ev.Start() {
		e.pasting = true
		e.pasteBuf = e.pasteBuf[:0]
		return
	}
	e.pasting = false
	text := string(e.pasteBuf)
	e.pasteBuf = nil
	e.beginPaste(text)
}

func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return string(ev.Rune())
	}
	return ev.Name()
}
