// Package prompt asks yes/no questions on a line-oriented terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Default is the answer used when the response is empty.
type Default int

const (
	NoDefault Default = iota
	DefaultYes
	DefaultNo
)

// Suffix is appended to the question to show which answers are accepted.
func (d Default) Suffix() string {
	switch d {
	case DefaultYes:
		return " [Y/n] "
	case DefaultNo:
		return " [y/N] "
	default:
		return " [y/n] "
	}
}

// ErrInvalidInput is returned by ParseAnswer for anything other than a yes or
// no. Prompter recovers from it by asking again.
var ErrInvalidInput = errors.New("invalid yes/no answer")

// RetryMessage is printed after an invalid answer.
const RetryMessage = "Please respond with 'yes' or 'no' (or 'y' or 'n').\n"

var answers = map[string]bool{
	"yes": true,
	"ye":  true,
	"y":   true,
	"no":  false,
	"n":   false,
}

// ParseAnswer interprets a response. Case and surrounding space are ignored.
func ParseAnswer(s string, def Default) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		switch def {
		case DefaultYes:
			return true, nil
		case DefaultNo:
			return false, nil
		}
	}
	if v, ok := answers[s]; ok {
		return v, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidInput, s)
}

// Prompter writes questions to w and reads answers line by line from r.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	def    Default
	logger *log.Logger
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithDefault sets the answer used for an empty response.
func WithDefault(def Default) Option {
	return func(p *Prompter) { p.def = def }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Prompter) { p.logger = logger }
}

// New creates a prompter.
func New(r io.Reader, w io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:     bufio.NewReader(r),
		out:    w,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithPrefix("prompt")
	return p
}

// Confirm asks question until it gets a valid answer. It only fails when
// input ends, writing fails or ctx is done.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if _, err := io.WriteString(p.out, question+p.def.Suffix()); err != nil {
			return false, fmt.Errorf("writing prompt: %w", err)
		}

		line, readErr := p.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return false, fmt.Errorf("reading answer: %w", readErr)
		}
		if readErr != nil && line == "" {
			return false, fmt.Errorf("reading answer: %w", io.ErrUnexpectedEOF)
		}

		answer, err := ParseAnswer(line, p.def)
		if err == nil {
			return answer, nil
		}
		p.logger.Debug("Invalid answer", "error", err)
		if _, err := io.WriteString(p.out, RetryMessage); err != nil {
			return false, fmt.Errorf("writing prompt: %w", err)
		}
		if readErr != nil {
			return false, fmt.Errorf("reading answer: %w", io.ErrUnexpectedEOF)
		}
	}
}
