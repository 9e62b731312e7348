// Package tui provides a Bubble Tea yes/no prompt for human players.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/lotto/internal/prompt"
)

// ErrAborted is returned when the player leaves the prompt without answering.
var ErrAborted = errors.New("prompt aborted")

// ConfirmModel is a single yes/no question.
type ConfirmModel struct {
	question string
	def      prompt.Default
	input    textinput.Model

	answer   bool
	answered bool
	aborted  bool
	errMsg   string
}

// NewConfirmModel creates a focused model for question.
func NewConfirmModel(question string, def prompt.Default) ConfirmModel {
	ti := textinput.New()
	ti.Placeholder = "y or n"
	ti.CharLimit = 8
	ti.Width = 10
	ti.Prompt = "> "
	ti.PromptStyle = PromptStyle
	ti.Focus()

	return ConfirmModel{
		question: question,
		def:      def,
		input:    ti,
	}
}

// Init starts the cursor blinking.
func (m ConfirmModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			answer, err := prompt.ParseAnswer(m.input.Value(), m.def)
			if err != nil {
				m.errMsg = strings.TrimSpace(prompt.RetryMessage)
				m.input.SetValue("")
				return m, nil
			}
			m.answer = answer
			m.answered = true
			m.errMsg = ""
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the question, the input and any validation message.
func (m ConfirmModel) View() string {
	if m.answered || m.aborted {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(QuestionStyle.Render(m.question))
	sb.WriteString(HintStyle.Render(m.def.Suffix()))
	sb.WriteByte('\n')
	sb.WriteString(m.input.View())
	sb.WriteByte('\n')
	if m.errMsg != "" {
		sb.WriteString(ErrorStyle.Render(m.errMsg))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Answer returns the player's answer once the model has finished.
func (m ConfirmModel) Answer() (bool, error) {
	if !m.answered {
		return false, ErrAborted
	}
	return m.answer, nil
}

// Confirmer asks each question in its own short-lived Bubble Tea program.
type Confirmer struct {
	in     io.Reader
	out    io.Writer
	def    prompt.Default
	logger *log.Logger
}

// NewConfirmer creates a confirmer reading keys from in and drawing to out.
func NewConfirmer(in io.Reader, out io.Writer, def prompt.Default, logger *log.Logger) *Confirmer {
	return &Confirmer{
		in:     in,
		out:    out,
		def:    def,
		logger: logger.WithPrefix("tui"),
	}
}

// Confirm runs the prompt until the player answers or aborts.
func (c *Confirmer) Confirm(ctx context.Context, question string) (bool, error) {
	program := tea.NewProgram(
		NewConfirmModel(question, c.def),
		tea.WithContext(ctx),
		tea.WithInput(c.in),
		tea.WithOutput(c.out),
	)
	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, fmt.Errorf("running prompt: %w", err)
	}
	m, ok := final.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model %T", final)
	}
	answer, err := m.Answer()
	c.logger.Debug("Prompt finished", "question", question, "answer", answer, "error", err)
	return answer, err
}
