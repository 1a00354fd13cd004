package editor

import (
	"strings"

	"github.com/example/snapmark/internal/annotation"
)

// TextInput appends typed characters to the open entry.
func (e *Editor) TextInput(s string) {
	if !e.textActive {
		return
	}
	e.textBuf.WriteString(s)
	e.repaint()
}

// TextBackspace removes the last rune from the open entry.
func (e *Editor) TextBackspace() {
	if !e.textActive {
		return
	}
	runes := []rune(e.textBuf.String())
	if len(runes) == 0 {
		return
	}
	e.textBuf.Reset()
	e.textBuf.WriteString(string(runes[:len(runes)-1]))
	e.repaint()
}

// ConfirmText closes the entry and, when the trimmed content is non-empty,
// commits a text annotation and saves history. Empty entries close without
// mutation.
func (e *Editor) ConfirmText() {
	if !e.textActive {
		return
	}
	e.textActive = false
	text := strings.TrimSpace(e.textBuf.String())
	e.textBuf.Reset()
	if text == "" {
		e.repaint()
		return
	}
	e.Scene.Append(annotation.NewText(e.textPos.X, e.textPos.Y, text, e.Scene.Style))
	e.History.Save(e.Scene)
	e.repaint()
}

// CancelText closes the entry and discards its content.
func (e *Editor) CancelText() {
	if !e.textActive {
		return
	}
	e.textActive = false
	e.textBuf.Reset()
	e.repaint()
}
