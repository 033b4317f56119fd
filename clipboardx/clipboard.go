// Package clipboardx reads and writes the system clipboard, falling back
// through external tools when the native bindings are unavailable. An
// in-process copy is kept so copy/paste still works in headless sessions.
package clipboardx

import (
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

var internal string

type tool struct {
	name string
	args []string
}

var writeTools = []tool{
	{name: "wl-copy"},
	{name: "xclip", args: []string{"-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--input"}},
	{name: "pbcopy"},
	{name: "clip.exe"},
}

var readTools = []tool{
	{name: "wl-paste", args: []string{"--no-newline"}},
	{name: "xclip", args: []string{"-o", "-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--output"}},
	{name: "pbpaste"},
	{name: "powershell.exe", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}},
}

func Write(text string) bool {
	internal = text
	ok := false

	if err := clipboard.WriteAll(text); err == nil {
		ok = true
	}
	for _, t := range writeTools {
		if _, err := exec.LookPath(t.name); err != nil {
			continue
		}
		cmd := exec.Command(t.name, t.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			ok = true
		}
	}
	return ok
}

// Read returns the clipboard contents with line endings normalized to \n.
func Read() string {
	if text, err := clipboard.ReadAll(); err == nil && text != "" {
		return normalize(text)
	}
	for _, t := range readTools {
		if _, err := exec.LookPath(t.name); err != nil {
			continue
		}
		out, err := exec.Command(t.name, t.args...).Output()
		if err == nil && len(out) > 0 {
			return normalize(string(out))
		}
	}
	return internal
}

func normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
