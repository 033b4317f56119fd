package ui

import (
	"strconv"

	"sourcetrace/config"
	"sourcetrace/questions"
	"sourcetrace/refstore"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Sidebar renders the reference list and generated questions on the right
// edge of the screen. Clicking a reference's ✕ removes it from the document.
type Sidebar struct {
	Refs      []refstore.Reference
	Questions []questions.Question
	Loading   bool
	LastError string

	Theme *config.ColorScheme

	OnRemove func(id string)

	x, y, w, h int
	removeHits []hitRegion
}

type hitRegion struct {
	x, y  int
	refID string
}

func NewSidebar() *Sidebar {
	return &Sidebar{}
}

func (sb *Sidebar) theme() *config.ColorScheme {
	if sb.Theme != nil {
		return sb.Theme
	}
	return config.Themes["dark"]
}

func (sb *Sidebar) Render(screen tcell.Screen, x, y, w, h int) {
	sb.x, sb.y, sb.w, sb.h = x, y, w, h
	sb.removeHits = sb.removeHits[:0]
	if w < 6 || h < 2 {
		return
	}

	theme := sb.theme()
	bgStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.SidebarFg)
	borderStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.SidebarBorder)
	headerStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.SidebarHeaderFg).Bold(true)
	citeStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.SidebarCiteFg)
	removeStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.SidebarRemoveFg)
	questionStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.QuestionFg)
	errStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.DialogWarnFg)

	for dy := 0; dy < h; dy++ {
		screen.SetContent(x, y+dy, '│', nil, borderStyle)
		for dx := 1; dx < w; dx++ {
			screen.SetContent(x+dx, y+dy, ' ', nil, bgStyle)
		}
	}

	textX := x + 2
	textW := w - 3
	row := y

	header := "REFERENCES (" + strconv.Itoa(len(sb.Refs)) + ")"
	drawText(screen, textX, row, textW, header, headerStyle)
	row++

	if len(sb.Refs) == 0 {
		drawText(screen, textX, row, textW, "none yet", citeStyle)
		row++
	}

	for i, ref := range sb.Refs {
		if row >= y+h {
			break
		}
		num := strconv.Itoa(i+1) + ". "
		drawText(screen, textX, row, textW-2, num+oneLine(ref.SourceText), bgStyle)

		// The remove target sits on the right edge of the row.
		hitX := x + w - 2
		screen.SetContent(hitX, row, '✕', nil, removeStyle)
		sb.removeHits = append(sb.removeHits, hitRegion{x: hitX, y: row, refID: ref.ID})
		row++

		if row < y+h {
			drawText(screen, textX+3, row, textW-3, oneLine(ref.Citation), citeStyle)
			row++
		}
	}

	row++
	if row >= y+h {
		return
	}
	drawText(screen, textX, row, textW, "QUESTIONS", headerStyle)
	row++

	switch {
	case sb.Loading:
		drawText(screen, textX, row, textW, "generating...", citeStyle)
	case sb.LastError != "":
		for _, line := range wrapText(sb.LastError, textW) {
			if row >= y+h {
				break
			}
			drawText(screen, textX, row, textW, line, errStyle)
			row++
		}
	case len(sb.Questions) == 0:
		drawText(screen, textX, row, textW, "press Ctrl+G to generate", citeStyle)
	default:
		for i, q := range sb.Questions {
			prefix := strconv.Itoa(i+1) + ". "
			for j, line := range wrapText(q.Text, textW-len(prefix)) {
				if row >= y+h {
					break
				}
				if j == 0 {
					drawText(screen, textX, row, textW, prefix+line, questionStyle)
				} else {
					drawText(screen, textX+len(prefix), row, textW-len(prefix), line, questionStyle)
				}
				row++
			}
		}
	}
}

// HandleMouse consumes clicks inside the sidebar. A press on a ✕ region
// fires OnRemove for that reference.
func (sb *Sidebar) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	if mx < sb.x || mx >= sb.x+sb.w || my < sb.y || my >= sb.y+sb.h {
		return false
	}
	if ev.Buttons() != tcell.Button1 {
		return true
	}
	for _, hit := range sb.removeHits {
		if mx == hit.x && my == hit.y {
			if sb.OnRemove != nil {
				sb.OnRemove(hit.refID)
			}
			return true
		}
	}
	return true
}

func drawText(screen tcell.Screen, x, y, maxW int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		cw := runewidth.RuneWidth(ch)
		if col+cw > x+maxW {
			if col < x+maxW {
				screen.SetContent(col, y, '…', nil, style)
			}
			return
		}
		screen.SetContent(col, y, ch, nil, style)
		col += cw
	}
}

func oneLine(s string) string {
	runes := []rune(s)
	for i, ch := range runes {
		if ch == '\n' {
			return string(runes[:i]) + "…"
		}
	}
	return s
}

func wrapText(s string, width int) []string {
	if width < 1 {
		return nil
	}
	runes := []rune(oneLine(s))
	var lines []string
	for len(runes) > 0 {
		n := len(runes)
		if n > width {
			n = width
		}
		lines = append(lines, string(runes[:n]))
		runes = runes[n:]
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
