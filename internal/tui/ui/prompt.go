package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptMode selects what the prompt input is used for.
type PromptMode int

const (
	PromptCommand PromptMode = iota
	PromptFilter
)

type promptStyle struct {
	label, title, placeholder string
}

var promptStyles = map[PromptMode]promptStyle{
	PromptCommand: {":", " Command ", "chat <name> | connect | disconnect | recent | new | help | quit"},
	PromptFilter:  {"/", " Filter ", "contact name or message text"},
}

// Prompt is the one-line input shown under the main view. In filter mode
// every edit is reported through the change callback; in command mode
// Up/Down walk the command history.
type Prompt struct {
	*tview.InputField
	mode    PromptMode
	history *History

	onSubmit func(mode PromptMode, text string)
	onChange func(mode PromptMode, text string)
	onCancel func()
}

// NewPrompt creates a prompt styled with theme.
func NewPrompt(theme *Theme) *Prompt {
	p := &Prompt{
		InputField: tview.NewInputField(),
		history:    NewHistory(50),
	}
	p.SetBorder(true)
	p.SetBorderColor(theme.PromptBorderColor)
	p.SetBackgroundColor(theme.BgColor)
	p.SetFieldBackgroundColor(theme.BgColor)
	p.SetFieldTextColor(theme.FgColor)
	p.SetLabelColor(theme.MenuKeyColor)
	p.SetPlaceholderTextColor(theme.MutedColor)

	p.SetChangedFunc(func(text string) {
		if p.mode == PromptFilter && p.onChange != nil {
			p.onChange(p.mode, text)
		}
	})
	p.SetInputCapture(p.captureHistory)
	p.SetDoneFunc(p.done)
	return p
}

func (p *Prompt) captureHistory(ev *tcell.EventKey) *tcell.EventKey {
	if p.mode != PromptCommand {
		return ev
	}
	switch ev.Key() {
	case tcell.KeyUp:
		if text, ok := p.history.Prev(); ok {
			p.SetText(text)
		}
		return nil
	case tcell.KeyDown:
		p.SetText(p.history.Next())
		return nil
	}
	return ev
}

func (p *Prompt) done(key tcell.Key) {
	text := p.GetText()
	switch key {
	case tcell.KeyEnter:
		if p.mode == PromptCommand {
			p.history.Add(text)
		}
		p.SetText("")
		// Empty text is passed through: it clears the filter.
		if p.onSubmit != nil {
			p.onSubmit(p.mode, text)
		}
	case tcell.KeyEscape:
		p.SetText("")
		if p.onCancel != nil {
			p.onCancel()
		}
	}
}

// SetOnSubmit sets the callback run on Enter.
func (p *Prompt) SetOnSubmit(fn func(mode PromptMode, text string)) { p.onSubmit = fn }

// SetOnChange sets the callback run on every edit in filter mode.
func (p *Prompt) SetOnChange(fn func(mode PromptMode, text string)) { p.onChange = fn }

// SetOnCancel sets the callback run on Esc.
func (p *Prompt) SetOnCancel(fn func()) { p.onCancel = fn }

// Activate switches the prompt to mode and clears it.
func (p *Prompt) Activate(mode PromptMode) {
	p.mode = mode
	p.history.Reset()
	st := promptStyles[mode]
	p.SetLabel(st.label)
	p.SetTitle(st.title)
	p.SetPlaceholder(st.placeholder)
	p.SetText("")
}

// Mode returns the current prompt mode.
func (p *Prompt) Mode() PromptMode { return p.mode }

// History is a bounded list of submitted commands with a browse cursor.
type History struct {
	entries []string
	limit   int
	pos     int
}

// NewHistory creates a history keeping at most limit entries.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add appends text unless it is empty or repeats the latest entry, and
// resets the cursor.
func (h *History) Add(text string) {
	if text != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != text) {
		h.entries = append(h.entries, text)
		if len(h.entries) > h.limit {
			h.entries = h.entries[len(h.entries)-h.limit:]
		}
	}
	h.Reset()
}

// Reset moves the cursor past the newest entry.
func (h *History) Reset() { h.pos = len(h.entries) }

// Prev steps back one entry. It reports false when there is nothing older.
func (h *History) Prev() (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Next steps forward one entry, returning "" past the newest.
func (h *History) Next() string {
	if h.pos < len(h.entries) {
		h.pos++
	}
	if h.pos == len(h.entries) {
		return ""
	}
	return h.entries[h.pos]
}

// Len returns the number of stored entries.
func (h *History) Len() int { return len(h.entries) }
