package ui

import (
	"strings"

	"sourcetrace/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type DialogType int

const (
	DialogNone DialogType = iota
	DialogCitation
	DialogClearConfirm
)

// Dialog is the modal layer. While one is open it owns all key input.
type Dialog struct {
	Type    DialogType
	Input   string
	Cursor  int
	focused bool

	// Citation state
	SourceText string
	Message    string // refusal line shown when a blank citation is submitted

	Theme *config.ColorScheme

	OnSubmit  func(value string)
	OnCancel  func()
	OnConfirm func(answer rune) // for clear confirm: 'y', 'n'
}

// NewCitationDialog prompts for a citation for the given pasted text.
func NewCitationDialog(sourceText string) *Dialog {
	return &Dialog{
		Type:       DialogCitation,
		SourceText: sourceText,
		focused:    true,
	}
}

func NewClearConfirmDialog() *Dialog {
	return &Dialog{
		Type:    DialogClearConfirm,
		focused: true,
	}
}

func (d *Dialog) HandleKey(ev *tcell.EventKey) bool {
	if d.Type == DialogClearConfirm {
		return d.handleConfirmKey(ev)
	}
	return d.handleInputKey(ev)
}

func (d *Dialog) handleConfirmKey(ev *tcell.EventKey) bool {
	ch := ev.Rune()
	switch {
	case ch == 'y' || ch == 'Y':
		if d.OnConfirm != nil {
			d.OnConfirm('y')
		}
	case ch == 'n' || ch == 'N' || ev.Key() == tcell.KeyEscape:
		if d.OnConfirm != nil {
			d.OnConfirm('n')
		}
	}
	return true
}

func (d *Dialog) handleInputKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if d.OnCancel != nil {
			d.OnCancel()
		}
		return true
	case tcell.KeyEnter:
		if d.OnSubmit != nil {
			d.OnSubmit(d.Input)
		}
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if d.Cursor > 0 {
			runes := []rune(d.Input)
			d.Input = string(runes[:d.Cursor-1]) + string(runes[d.Cursor:])
			d.Cursor--
		}
		return true
	case tcell.KeyDelete:
		runes := []rune(d.Input)
		if d.Cursor < len(runes) {
			d.Input = string(runes[:d.Cursor]) + string(runes[d.Cursor+1:])
		}
		return true
	case tcell.KeyLeft:
		if d.Cursor > 0 {
			d.Cursor--
		}
		return true
	case tcell.KeyRight:
		if d.Cursor < len([]rune(d.Input)) {
			d.Cursor++
		}
		return true
	case tcell.KeyHome:
		d.Cursor = 0
		return true
	case tcell.KeyEnd:
		d.Cursor = len([]rune(d.Input))
		return true
	default:
		if ev.Key() == tcell.KeyRune {
			ch := ev.Rune()
			runes := []rune(d.Input)
			d.Input = string(runes[:d.Cursor]) + string(ch) + string(runes[d.Cursor:])
			d.Cursor++
			d.Message = ""
			return true
		}
	}
	return false
}

func (d *Dialog) Render(screen tcell.Screen, x, y, width, height int) {
	switch d.Type {
	case DialogCitation:
		d.renderCitation(screen, x, y, width, height)
	case DialogClearConfirm:
		d.renderClearConfirm(screen, x, y, width)
	}
}

func (d *Dialog) theme() *config.ColorScheme {
	if d.Theme != nil {
		return d.Theme
	}
	return config.Themes["dark"]
}

func (d *Dialog) renderClearConfirm(screen tcell.Screen, x, y, width int) {
	theme := d.theme()
	style := tcell.StyleDefault.Background(theme.DialogWarnFg).Foreground(theme.DialogBg)
	msg := " Clear the document and all references? [Y]es [N]o "

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	for _, ch := range msg {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	}
}

func (d *Dialog) renderCitation(screen tcell.Screen, x, y, width, height int) {
	theme := d.theme()
	bgStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	borderStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.SidebarBorder)
	titleStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(theme.DialogBg).Bold(true)
	previewStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.SidebarCiteFg)
	inputStyle := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.DialogFg)
	warnStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogWarnFg).Bold(true)
	hintStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.SidebarCiteFg)

	dialogW := width * 2 / 3
	if dialogW < 40 {
		dialogW = 40
	}
	if dialogW > width-4 {
		dialogW = width - 4
	}
	if dialogW < 10 {
		return
	}

	preview := previewLines(d.SourceText, dialogW-4, 4)
	dialogH := len(preview) + 7
	if dialogH > height-2 {
		dialogH = height - 2
	}
	if dialogH < 7 {
		return
	}

	dialogX := x + (width-dialogW)/2
	dialogY := y + (height-dialogH)/2

	for dy := 0; dy < dialogH; dy++ {
		for dx := 0; dx < dialogW; dx++ {
			screen.SetContent(dialogX+dx, dialogY+dy, ' ', nil, bgStyle)
		}
	}

	for dx := 0; dx < dialogW; dx++ {
		screen.SetContent(dialogX+dx, dialogY, '─', nil, borderStyle)
		screen.SetContent(dialogX+dx, dialogY+dialogH-1, '─', nil, borderStyle)
	}
	for dy := 0; dy < dialogH; dy++ {
		screen.SetContent(dialogX, dialogY+dy, '│', nil, borderStyle)
		screen.SetContent(dialogX+dialogW-1, dialogY+dy, '│', nil, borderStyle)
	}
	screen.SetContent(dialogX, dialogY, '┌', nil, borderStyle)
	screen.SetContent(dialogX+dialogW-1, dialogY, '┐', nil, borderStyle)
	screen.SetContent(dialogX, dialogY+dialogH-1, '└', nil, borderStyle)
	screen.SetContent(dialogX+dialogW-1, dialogY+dialogH-1, '┘', nil, borderStyle)

	title := " Cite Source "
	titleX := dialogX + (dialogW-len(title))/2
	for i, ch := range title {
		screen.SetContent(titleX+i, dialogY, ch, nil, titleStyle)
	}

	row := dialogY + 2
	for _, line := range preview {
		col := dialogX + 2
		for _, ch := range line {
			if col >= dialogX+dialogW-2 {
				break
			}
			screen.SetContent(col, row, ch, nil, previewStyle)
			col += runewidth.RuneWidth(ch)
		}
		row++
	}

	row++
	label := "Citation: "
	col := dialogX + 2
	for _, ch := range label {
		screen.SetContent(col, row, ch, nil, bgStyle)
		col++
	}
	inputEnd := dialogX + dialogW - 2
	for cx := col; cx < inputEnd; cx++ {
		screen.SetContent(cx, row, ' ', nil, inputStyle)
	}
	for i, ch := range []rune(d.Input) {
		if col >= inputEnd {
			break
		}
		if i == d.Cursor {
			screen.SetContent(col, row, ch, nil, inputStyle.Reverse(true))
		} else {
			screen.SetContent(col, row, ch, nil, inputStyle)
		}
		col++
	}
	if d.Cursor >= len([]rune(d.Input)) && col < inputEnd {
		screen.SetContent(col, row, ' ', nil, inputStyle.Reverse(true))
	}
	row++

	if d.Message != "" {
		col = dialogX + 2
		for _, ch := range d.Message {
			if col >= dialogX+dialogW-2 {
				break
			}
			screen.SetContent(col, row, ch, nil, warnStyle)
			col++
		}
	}

	hint := " Enter=Insert  Esc=Cancel "
	hintX := dialogX + (dialogW-len(hint))/2
	for i, ch := range hint {
		screen.SetContent(hintX+i, dialogY+dialogH-1, ch, nil, hintStyle)
	}
}

// previewLines wraps the pasted text to the dialog width, keeping at most
// maxLines lines and eliding the rest.
func previewLines(text string, width, maxLines int) []string {
	if width < 4 {
		width = 4
	}
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	var lines []string
	for len(runes) > 0 && len(lines) < maxLines {
		n := len(runes)
		if n > width {
			n = width
		}
		if len(lines) == maxLines-1 && len(runes) > n {
			lines = append(lines, string(runes[:n-1])+"…")
			return lines
		}
		lines = append(lines, string(runes[:n]))
		runes = runes[n:]
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func (d *Dialog) IsFocused() bool   { return d.focused }
func (d *Dialog) SetFocused(f bool) { d.focused = f }
