package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacjstriker/hangman/internal/types"
)

func TestConsole_Ask(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("hello\r\nworld\n\nlast"), &out)
	ctx := context.Background()

	for _, want := range []string{"hello", "world", "", "last"} {
		got, err := c.Ask(ctx, "> ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := c.Ask(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)

	_, err = c.Ask(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, strings.Repeat("> ", 6), out.String())
}

func TestConsole_AskCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	c := NewConsole(pr, &out)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Ask(ctx, "guess: ")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "guess: \n", out.String())
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestConsole_Presenter(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out)

	t.Run("clear is a no-op off a terminal", func(t *testing.T) {
		out.Reset()
		c.Clear()
		assert.Empty(t, out.String())
	})

	t.Run("frames are clamped", func(t *testing.T) {
		assert.Equal(t, 7, c.FrameCount())

		out.Reset()
		c.ShowFrame(-3)
		assert.Equal(t, HangmanFrames[0]+"\n", out.String())

		out.Reset()
		c.ShowFrame(99)
		assert.Equal(t, HangmanFrames[6]+"\n", out.String())
	})

	t.Run("lines are printed in order", func(t *testing.T) {
		out.Reset()
		c.PrintLines(
			types.Line{Text: "Word: _ _ _", Tone: types.ToneHeading},
			types.Plain("Games Played: 1"),
		)

		got := out.String()
		assert.Contains(t, got, "Word: _ _ _")
		assert.True(t, strings.HasSuffix(got, "Games Played: 1\n"))
		assert.Less(t, strings.Index(got, "Word"), strings.Index(got, "Games"))
	})
}

func TestHangmanFrames(t *testing.T) {
	require.Len(t, HangmanFrames, 7)
	for i := 1; i < len(HangmanFrames); i++ {
		assert.NotEqual(t, HangmanFrames[i-1], HangmanFrames[i])
	}
}
