package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/isaacjstriker/hangman/internal/types"
)

const clearSequence = "\033[2J\033[H"

type readResult struct {
	line string
	err  error
}

// Console is a terminal LineReader and Presenter. Input is read by a single
// goroutine so a cancelled Ask never leaves two reads racing on the stream.
type Console struct {
	in     *bufio.Reader
	closer io.Closer
	out    io.Writer
	tty    bool
	styles map[types.Tone]lipgloss.Style
	frames []string

	startOnce sync.Once
	closeOnce sync.Once
	lines     chan readResult
}

// NewConsole wraps in and out. If in is an io.Closer it is closed by Close.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		in:     bufio.NewReader(in),
		out:    out,
		tty:    isTerminal(out),
		frames: HangmanFrames,
		lines:  make(chan readResult),
	}
	if closer, ok := in.(io.Closer); ok {
		c.closer = closer
	}

	renderer := lipgloss.NewRenderer(out)
	c.styles = map[types.Tone]lipgloss.Style{
		types.ToneHeading: renderer.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		types.ToneSuccess: renderer.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		types.ToneFailure: renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		types.ToneMuted:   renderer.NewStyle().Foreground(lipgloss.Color("8")),
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Ask prints prompt and waits for one line of input.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	c.startOnce.Do(func() { go c.readLoop() })

	fmt.Fprint(c.out, prompt)

	select {
	case res, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	}
}

func (c *Console) readLoop() {
	defer close(c.lines)
	for {
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			c.lines <- readResult{err: err}
			return
		}
		c.lines <- readResult{line: strings.TrimRight(line, "\r\n")}
		if err != nil {
			return
		}
	}
}

// Clear resets the screen when writing to a terminal.
func (c *Console) Clear() {
	if c.tty {
		fmt.Fprint(c.out, clearSequence)
	}
}

// ShowFrame prints one hangman stage. Out of range indexes are clamped.
func (c *Console) ShowFrame(index int) {
	if index < 0 {
		index = 0
	}
	if index >= len(c.frames) {
		index = len(c.frames) - 1
	}
	fmt.Fprintln(c.out, c.frames[index])
}

// PrintLines writes each line, styled by its tone.
func (c *Console) PrintLines(lines ...types.Line) {
	for _, line := range lines {
		if style, ok := c.styles[line.Tone]; ok {
			fmt.Fprintln(c.out, style.Render(line.Text))
			continue
		}
		fmt.Fprintln(c.out, line.Text)
	}
}

// FrameCount returns the number of hangman stages.
func (c *Console) FrameCount() int {
	return len(c.frames)
}

// Close releases the input stream. It is safe to call more than once.
func (c *Console) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.closer != nil {
			err = c.closer.Close()
		}
	})
	return err
}
