package emitter

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"autohan/internal/types"
)

// Terminal is a line-oriented stand-in for the focused application. It keeps
// the current line in memory and redraws it after every edit.
type Terminal struct {
	w           io.Writer
	interactive bool
	line        []rune
	mode        types.InputMode
	markStart   int
	markEnd     int
	converted   lipgloss.Style
	restored    lipgloss.Style
	markStyle   *lipgloss.Style
	prompt      lipgloss.Style
}

func NewTerminal(w io.Writer) *Terminal {
	renderer := lipgloss.NewRenderer(w)
	interactive := false
	if f, ok := w.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &Terminal{
		w:           w,
		interactive: interactive,
		converted:   renderer.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		restored:    renderer.NewStyle().Foreground(lipgloss.Color("214")),
		prompt:      renderer.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Text returns the line as the application would hold it.
func (t *Terminal) Text() string { return string(t.line) }

func (t *Terminal) Mode() types.InputMode { return t.mode }

// SwitchMode records the host mode and shows it in the prompt.
func (t *Terminal) SwitchMode(mode types.InputMode) error {
	t.mode = mode
	return t.render()
}

func (t *Terminal) Forward(ev types.KeyEvent) error {
	switch ev.Kind {
	case types.KindCharacter, types.KindSeparator:
		if ev.Key == '\n' || ev.Key == '\r' {
			return t.commitLine()
		}
		t.line = append(t.line, ev.Char())
	case types.KindBackspace:
		t.erase(1)
	default:
		return nil
	}
	return t.render()
}

func (t *Terminal) Replace(count int, text string) error {
	t.erase(count)
	t.insertMarked(text, &t.converted)
	return t.render()
}

func (t *Terminal) Restore(count int, original string) error {
	t.erase(count)
	t.insertMarked(original, &t.restored)
	return t.render()
}

func (t *Terminal) erase(count int) {
	if count > len(t.line) {
		count = len(t.line)
	}
	if count <= 0 {
		return
	}
	t.line = t.line[:len(t.line)-count]
	if t.markEnd > len(t.line) {
		t.clearMark()
	}
}

func (t *Terminal) insertMarked(text string, style *lipgloss.Style) {
	t.markStart = len(t.line)
	t.line = append(t.line, []rune(text)...)
	t.markEnd = len(t.line)
	t.markStyle = style
}

func (t *Terminal) clearMark() {
	t.markStart, t.markEnd, t.markStyle = 0, 0, nil
}

func (t *Terminal) commitLine() error {
	if err := t.render(); err != nil {
		return err
	}
	if t.interactive {
		if _, err := io.WriteString(t.w, "\r\n"); err != nil {
			return fmt.Errorf("write terminal: %w", err)
		}
	}
	t.line = t.line[:0]
	t.clearMark()
	return nil
}

func (t *Terminal) styled() string {
	if t.markStyle == nil || t.markEnd <= t.markStart {
		return string(t.line)
	}
	return string(t.line[:t.markStart]) +
		t.markStyle.Render(string(t.line[t.markStart:t.markEnd])) +
		string(t.line[t.markEnd:])
}

func (t *Terminal) render() error {
	var err error
	if t.interactive {
		_, err = fmt.Fprintf(t.w, "\r\x1b[2K%s %s", t.prompt.Render(t.promptText()), t.styled())
	} else {
		_, err = fmt.Fprintln(t.w, t.styled())
	}
	if err != nil {
		return fmt.Errorf("write terminal: %w", err)
	}
	return nil
}

func (t *Terminal) promptText() string {
	if t.mode == types.ModeHangul {
		return "한>"
	}
	return ">"
}

// Close ends the line being redrawn so later output starts on a fresh one.
func (t *Terminal) Close() error {
	if !t.interactive || len(t.line) == 0 {
		return nil
	}
	_, err := io.WriteString(t.w, "\r\n")
	return err
}
