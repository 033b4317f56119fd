package editor

import (
	"sourcetrace/document"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// markerGlyph stands in for the zero-width paste marker on screen.
const markerGlyph = '‸'

type lcell struct {
	ch   rune
	w    int
	off  int // flat rune offset; the marker glyph shares the next rune's offset
	kind document.Kind
}

// layoutCache holds the document flattened into wrapped visual lines.
// Rebuilt lazily after any mutation or width change.
type layoutCache struct {
	width int
	lines [][]lcell
	total int // flat length of the document
}

func (e *Editor) textAreaSize() (w, h int) {
	sw, sh := e.screen.Size()
	w = sw - e.cfg.SidebarWidth
	if w < 10 {
		w = sw
	}
	h = sh - 1
	return w, h
}

func (e *Editor) ensureLayout() *layoutCache {
	w, _ := e.textAreaSize()
	if e.layout != nil && e.layout.width == w {
		return e.layout
	}
	e.layout = buildLayout(e.doc, w, e.cfg.WordWrap)
	return e.layout
}

func buildLayout(doc *document.Document, width int, wordWrap bool) *layoutCache {
	if width < 1 {
		width = 1
	}
	lc := &layoutCache{width: width}

	var cells []lcell
	off := 0
	for _, seg := range doc.Segments {
		switch seg.Kind {
		case document.Marker:
			cells = append(cells, lcell{ch: markerGlyph, w: 1, off: off, kind: document.Marker})
		default:
			for _, ch := range seg.Text {
				w := runewidth.RuneWidth(ch)
				if ch == '\n' {
					w = 1
				}
				cells = append(cells, lcell{ch: ch, w: w, off: off, kind: seg.Kind})
				off++
			}
		}
	}
	lc.total = off

	var line []lcell
	col := 0
	flush := func() {
		lc.lines = append(lc.lines, line)
		line = nil
		col = 0
	}
	for _, c := range cells {
		if c.ch == '\n' {
			line = append(line, c)
			flush()
			continue
		}
		if col+c.w > width && len(line) > 0 {
			if wordWrap {
				// Break after the last space on the line when there is one.
				brk := -1
				for i := len(line) - 1; i >= 0; i-- {
					if line[i].ch == ' ' {
						brk = i
						break
					}
				}
				if brk >= 0 && brk < len(line)-1 {
					carried := append([]lcell(nil), line[brk+1:]...)
					line = line[:brk+1]
					flush()
					line = carried
					for _, cc := range line {
						col += cc.w
					}
				} else {
					flush()
				}
			} else {
				flush()
			}
		}
		line = append(line, c)
		col += c.w
	}
	lc.lines = append(lc.lines, line)
	return lc
}

// cursorCell locates the visual position of a flat offset. Offsets shared
// with a marker glyph resolve to the cell after the glyph.
func (lc *layoutCache) cursorCell(off int) (line, x int) {
	for li, cells := range lc.lines {
		col := 0
		for _, c := range cells {
			if c.off == off && c.kind != document.Marker {
				return li, col
			}
			col += c.w
		}
		// End of document: past the last cell of the last line.
		if li == len(lc.lines)-1 {
			return li, col
		}
	}
	return 0, 0
}

func (e *Editor) render() {
	screen := e.screen
	theme := e.cfg.GetTheme()
	sw, sh := screen.Size()
	textW, textH := e.textAreaSize()

	baseStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	spanStyle := tcell.StyleDefault.Background(theme.SpanBg).Foreground(theme.SpanFg)
	markerStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.MarkerFg).Bold(true)
	selStyle := tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground)

	screen.Fill(' ', baseStyle)

	lc := e.ensureLayout()
	e.ensureCursorVisible(lc, textH)

	selStart, selEnd := -1, -1
	if e.doc.Selection != nil {
		selStart = e.doc.FlatOffset(e.doc.Selection.Start)
		selEnd = e.doc.FlatOffset(e.doc.Selection.End)
	}

	for row := 0; row < textH; row++ {
		li := e.scrollY + row
		if li >= len(lc.lines) {
			break
		}
		col := 0
		for _, c := range lc.lines[li] {
			if col >= textW {
				break
			}
			style := baseStyle
			switch c.kind {
			case document.Span:
				style = spanStyle
			case document.Marker:
				style = markerStyle
			}
			if c.kind != document.Marker && selStart >= 0 && c.off >= selStart && c.off < selEnd {
				style = selStyle
			}
			ch := c.ch
			if ch == '\n' {
				ch = ' '
			}
			screen.SetContent(col, row, ch, nil, style)
			col += c.w
		}
	}

	// Hardware cursor in the text area
	if e.dialog == nil && e.cursorVisible {
		cl, cx := lc.cursorCell(e.doc.FlatOffset(e.doc.Cursor))
		if cl >= e.scrollY && cl < e.scrollY+textH && cx < textW {
			screen.ShowCursor(cx, cl-e.scrollY)
		} else {
			screen.HideCursor()
		}
	} else {
		screen.HideCursor()
	}

	if e.cfg.SidebarWidth > 0 && textW < sw {
		e.sidebar.Render(screen, textW, 0, sw-textW, sh-1)
	}
	e.statusBar.Render(screen, 0, sh-1, sw, 1)

	if e.dialog != nil {
		e.dialog.Render(screen, 0, 0, sw, sh-1)
	}

	screen.Show()
}

func (e *Editor) ensureCursorVisible(lc *layoutCache, textH int) {
	cl, _ := lc.cursorCell(e.doc.FlatOffset(e.doc.Cursor))
	if cl < e.scrollY {
		e.scrollY = cl
	}
	if textH > 0 && cl >= e.scrollY+textH {
		e.scrollY = cl - textH + 1
	}
	if e.scrollY < 0 {
		e.scrollY = 0
	}
}

func (e *Editor) clampScroll() {
	lc := e.ensureLayout()
	if e.scrollY > len(lc.lines)-1 {
		e.scrollY = len(lc.lines) - 1
	}
	if e.scrollY < 0 {
		e.scrollY = 0
	}
}

// hitTest maps a screen position in the text area to a flat offset.
func (e *Editor) hitTest(mx, my int) (int, bool) {
	textW, textH := e.textAreaSize()
	if mx < 0 || mx >= textW || my < 0 || my >= textH {
		return 0, false
	}
	lc := e.ensureLayout()
	li := e.scrollY + my
	if li >= len(lc.lines) {
		li = len(lc.lines) - 1
	}
	if li < 0 {
		return 0, false
	}
	return offsetAtColumn(lc, li, mx), true
}

// offsetAtColumn returns the flat offset nearest to column x on line li.
func offsetAtColumn(lc *layoutCache, li, x int) int {
	cells := lc.lines[li]
	col := 0
	for _, c := range cells {
		if c.kind == document.Marker {
			col += c.w
			continue
		}
		if x < col+c.w {
			return c.off
		}
		col += c.w
	}
	// Past the end of the line: before the newline, or document end.
	if n := len(cells); n > 0 {
		last := cells[n-1]
		if last.ch == '\n' {
			return last.off
		}
		if last.kind == document.Marker {
			return last.off
		}
		return last.off + 1
	}
	return lc.total
}

func (e *Editor) moveVertical(dy int) {
	lc := e.ensureLayout()
	cl, cx := lc.cursorCell(e.doc.FlatOffset(e.doc.Cursor))
	target := cl + dy
	if target < 0 || target >= len(lc.lines) {
		return
	}
	e.doc.Cursor = e.doc.PosAtOffset(offsetAtColumn(lc, target, cx))
}

func (e *Editor) moveLineEdge(home bool) {
	lc := e.ensureLayout()
	cl, _ := lc.cursorCell(e.doc.FlatOffset(e.doc.Cursor))
	cells := lc.lines[cl]
	if home {
		if len(cells) > 0 {
			e.doc.Cursor = e.doc.PosAtOffset(cells[0].off)
		}
		return
	}
	e.doc.Cursor = e.doc.PosAtOffset(offsetAtColumn(lc, cl, lc.width))
}
