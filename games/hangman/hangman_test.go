package hangman

import (
	"context"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacjstriker/hangman/internal/types"
)

type fakePresenter struct {
	frames  int
	clears  int
	shown   []int
	printed []types.Line
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{frames: 7}
}

func (p *fakePresenter) Clear() { p.clears++ }
func (p *fakePresenter) ShowFrame(index int) { p.shown = append(p.shown, index) }
func (p *fakePresenter) PrintLines(lines ...types.Line) { p.printed = append(p.printed, lines...) }
func (p *fakePresenter) FrameCount() int { return p.frames }

func (p *fakePresenter) texts() []string {
	out := make([]string, len(p.printed))
	for i, l := range p.printed {
		out[i] = l.Text
	}
	return out
}

var errEndOfScript = io.EOF

type scriptedReader struct {
	answers []string
	prompts []string
}

func (r *scriptedReader) Ask(_ context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.answers) == 0 {
		return "", errEndOfScript
	}
	next := r.answers[0]
	r.answers = r.answers[1:]
	return next, nil
}

func newTestSession(words ...string) (*Session, *Stats) {
	stats := &Stats{}
	s := NewSession(&scriptedReader{}, newFakePresenter(), stats, Options{
		Words: words,
		Rand:  rand.New(rand.NewSource(1)),
	})
	return s, stats
}

func TestResetRound(t *testing.T) {
	// Given: a session over a single word
	s, stats := newTestSession("cat")

	// When: a round starts
	s.ResetRound()

	// Then: the pattern is all placeholders and the round is counted
	assert.Equal(t, "cat", s.Secret())
	assert.Equal(t, "___", s.Revealed())
	assert.Equal(t, "_ _ _", s.Pattern())
	assert.Empty(t, s.WrongGuesses())
	assert.Equal(t, StatusInProgress, s.Status())
	assert.Equal(t, Stats{Played: 1}, *stats)
	assert.Equal(t, 6, s.MaxAttempts())
}

func TestResetRound_ClearsPreviousRound(t *testing.T) {
	s, stats := newTestSession("cat")
	s.ResetRound()
	s.SubmitGuess("z")
	s.SubmitGuess("cat")

	s.ResetRound()

	assert.Equal(t, "___", s.Revealed())
	assert.Empty(t, s.WrongGuesses())
	assert.Equal(t, StatusInProgress, s.Status())
	assert.Equal(t, Stats{Played: 2, Won: 1}, *stats)
}

func TestResetRound_PicksFromWordList(t *testing.T) {
	words := []string{"elephant", "giraffe", "robot"}
	s, _ := newTestSession(words...)

	for i := 0; i < 50; i++ {
		s.ResetRound()
		require.Contains(t, words, s.Secret())
		require.Len(t, []rune(s.Revealed()), len([]rune(s.Secret())))
	}
}

func TestSubmitGuess_Letters(t *testing.T) {
	t.Run("correct letters reveal every position", func(t *testing.T) {
		s, _ := newTestSession("banana")
		s.ResetRound()

		status := s.SubmitGuess("a")

		assert.Equal(t, StatusInProgress, status)
		assert.Equal(t, "_a_a_a", s.Revealed())
		assert.Empty(t, s.WrongGuesses())
	})

	t.Run("covering every letter wins", func(t *testing.T) {
		s, stats := newTestSession("banana")
		s.ResetRound()

		s.SubmitGuess("b")
		s.SubmitGuess("n")
		status := s.SubmitGuess("a")

		assert.Equal(t, StatusWon, status)
		assert.Equal(t, "banana", s.Revealed())
		assert.Equal(t, 1, stats.Won)
	})

	t.Run("uppercase is normalized", func(t *testing.T) {
		s, _ := newTestSession("cat")
		s.ResetRound()

		s.SubmitGuess("C")

		assert.Equal(t, "c__", s.Revealed())
	})

	t.Run("absent letter is recorded once", func(t *testing.T) {
		s, _ := newTestSession("cat")
		s.ResetRound()

		s.SubmitGuess("z")
		s.SubmitGuess("z")
		s.SubmitGuess("Z")

		assert.Equal(t, []string{"z"}, s.WrongGuesses())
	})

	t.Run("repeating a correct letter changes nothing", func(t *testing.T) {
		s, _ := newTestSession("cat")
		s.ResetRound()

		s.SubmitGuess("a")
		s.SubmitGuess("a")

		assert.Equal(t, "_a_", s.Revealed())
		assert.Empty(t, s.WrongGuesses())
	})
}

func TestSubmitGuess_WholeWord(t *testing.T) {
	t.Run("exact word wins from scratch", func(t *testing.T) {
		s, stats := newTestSession("cat")
		s.ResetRound()

		status := s.SubmitGuess("cat")

		assert.Equal(t, StatusWon, status)
		assert.Equal(t, "cat", s.Revealed())
		assert.Equal(t, 1, stats.Won)
	})

	t.Run("exact word wins after partial progress and misses", func(t *testing.T) {
		s, stats := newTestSession("mountain")
		s.ResetRound()
		s.SubmitGuess("n")
		s.SubmitGuess("x")
		s.SubmitGuess("mounting")

		status := s.SubmitGuess("MOUNTAIN")

		assert.Equal(t, StatusWon, status)
		assert.Equal(t, "mountain", s.Revealed())
		assert.Equal(t, []string{"x", "mounting"}, s.WrongGuesses())
		assert.Equal(t, 1, stats.Won)
	})

	t.Run("wrong word is recorded once", func(t *testing.T) {
		s, _ := newTestSession("cat")
		s.ResetRound()

		s.SubmitGuess("dog")
		s.SubmitGuess("dog")

		assert.Equal(t, []string{"dog"}, s.WrongGuesses())
		assert.Equal(t, "___", s.Revealed())
	})

	t.Run("non-letter text is just a wrong guess", func(t *testing.T) {
		s, _ := newTestSession("cat")
		s.ResetRound()

		s.SubmitGuess("c4t!")
		s.SubmitGuess("7")

		assert.Equal(t, []string{"c4t!", "7"}, s.WrongGuesses())
	})
}

func TestSubmitGuess_Empty(t *testing.T) {
	s, stats := newTestSession("cat")
	s.ResetRound()

	status := s.SubmitGuess("")

	assert.Equal(t, StatusInProgress, status)
	assert.Equal(t, "___", s.Revealed())
	assert.Empty(t, s.WrongGuesses())
	assert.Equal(t, Stats{Played: 1}, *stats)
}

func TestSubmitGuess_AfterRoundEnded(t *testing.T) {
	s, stats := newTestSession("cat")
	s.ResetRound()
	s.SubmitGuess("cat")

	s.SubmitGuess("z")
	status := s.SubmitGuess("cat")

	assert.Equal(t, StatusWon, status)
	assert.Empty(t, s.WrongGuesses())
	assert.Equal(t, Stats{Played: 1, Won: 1}, *stats)
	assert.False(t, s.CheckLossCondition())
}

func TestCheckLossCondition(t *testing.T) {
	t.Run("three misses stay in progress", func(t *testing.T) {
		s, _ := newTestSession("cat")
		s.ResetRound()

		for _, g := range []string{"z", "x", "q"} {
			s.SubmitGuess(g)
		}

		assert.False(t, s.CheckLossCondition())
		assert.Equal(t, StatusInProgress, s.Status())
		assert.Equal(t, []string{"z", "x", "q"}, s.WrongGuesses())
	})

	t.Run("max attempts loses", func(t *testing.T) {
		s, stats := newTestSession("dog")
		s.ResetRound()

		for _, g := range []string{"a", "b", "c", "e", "f", "h"} {
			s.SubmitGuess(g)
		}

		assert.True(t, s.CheckLossCondition())
		assert.Equal(t, StatusLost, s.Status())
		assert.Equal(t, "___", s.Revealed())
		assert.Equal(t, 1, stats.Lost)

		// a second check does not count the loss twice
		assert.False(t, s.CheckLossCondition())
		assert.Equal(t, 1, stats.Lost)
	})

	t.Run("frame count sets max attempts", func(t *testing.T) {
		p := newFakePresenter()
		p.frames = 3
		s := NewSession(&scriptedReader{}, p, &Stats{}, Options{Words: []string{"dog"}})
		s.ResetRound()

		s.SubmitGuess("a")
		require.False(t, s.CheckLossCondition())
		s.SubmitGuess("b")

		assert.Equal(t, 2, s.MaxAttempts())
		assert.True(t, s.CheckLossCondition())
	})
}

func TestStats_AcrossRounds(t *testing.T) {
	s, stats := newTestSession("cat")

	s.ResetRound()
	s.SubmitGuess("cat")

	s.ResetRound()
	for _, g := range []string{"b", "d", "e", "f", "g", "h"} {
		s.SubmitGuess(g)
	}
	s.CheckLossCondition()

	assert.Equal(t, Stats{Played: 2, Won: 1, Lost: 1}, *stats)
	assert.Equal(t, *stats, s.Stats())
}

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession(&scriptedReader{}, nil, nil, Options{})
	s.ResetRound()

	assert.Contains(t, ClassicWords(), s.Secret())
	assert.Equal(t, defaultMaxAttempts, s.MaxAttempts())
	assert.Equal(t, 1, s.Stats().Played)
}

func TestNewSession_DropsUnusableWords(t *testing.T) {
	t.Run("keeps the usable words", func(t *testing.T) {
		s, _ := newTestSession("", "a_b", "Dog")

		for i := 0; i < 10; i++ {
			s.ResetRound()
			require.Equal(t, "dog", s.Secret())
		}
		assert.Equal(t, StatusWon, s.SubmitGuess("dog"))
	})

	t.Run("falls back to the classic words", func(t *testing.T) {
		s, _ := newTestSession("", "a_b", "r2d2")

		s.ResetRound()

		assert.Contains(t, ClassicWords(), s.Secret())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "in_progress", StatusInProgress.String())
	assert.Equal(t, "won", StatusWon.String())
	assert.Equal(t, "lost", StatusLost.String())
}
