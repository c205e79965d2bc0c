package hangman

import (
	"math/rand"
	"strings"
	"time"

	"github.com/isaacjstriker/hangman/internal/types"
)

const (
	// Placeholder marks an unrevealed position of the secret word.
	Placeholder = '_'

	// ContinueKeyword is the replay answer that starts another round.
	ContinueKeyword = "next"

	defaultMaxAttempts = 6
)

// Status is the state of the current round.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "in_progress"
	}
}

// Stats are cumulative counters for the lifetime of one player context.
type Stats struct {
	Played int `json:"played"`
	Won    int `json:"won"`
	Lost   int `json:"lost"`
}

// Session owns the round state and drives play against a reader and presenter.
type Session struct {
	words       []string
	maxAttempts int
	rng         *rand.Rand
	stats       *Stats
	now         func() time.Time

	reader    types.LineReader
	presenter types.Presenter
	recorder  types.Recorder
	variant   string
	player    string
	styled    bool

	secret    []rune
	revealed  []rune
	wrong     []string
	status    Status
	startedAt time.Time

	inputEnded bool
}

// Options configure a Session.
type Options struct {
	Words    []string
	Variant  string
	Player   string
	Styled   bool
	Recorder types.Recorder
	Rand     *rand.Rand
}

// NewSession creates a session that draws secrets from opts.Words and counts
// into stats. Unusable words are dropped and an empty list falls back to the
// classic words. Max attempts is one less than the presenter's frame count.
func NewSession(reader types.LineReader, presenter types.Presenter, stats *Stats, opts Options) *Session {
	words := NormalizeWords(opts.Words)
	if len(words) == 0 {
		words = ClassicWords()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if stats == nil {
		stats = &Stats{}
	}

	maxAttempts := defaultMaxAttempts
	if presenter != nil && presenter.FrameCount() > 1 {
		maxAttempts = presenter.FrameCount() - 1
	}

	return &Session{
		words:       words,
		maxAttempts: maxAttempts,
		rng:         rng,
		stats:       stats,
		now:         time.Now,
		reader:      reader,
		presenter:   presenter,
		recorder:    opts.Recorder,
		variant:     opts.Variant,
		player:      opts.Player,
		styled:      opts.Styled,
		status:      StatusInProgress,
	}
}

// ResetRound picks a new secret word and starts a new round.
func (s *Session) ResetRound() {
	s.secret = []rune(strings.ToLower(s.words[s.rng.Intn(len(s.words))]))
	s.revealed = make([]rune, len(s.secret))
	for i := range s.revealed {
		s.revealed[i] = Placeholder
	}
	s.wrong = nil
	s.status = StatusInProgress
	s.startedAt = s.now()
	s.stats.Played++
}

// SubmitGuess applies one guess to the current round and returns the status.
// Any text is accepted: a single rune is a letter guess, anything longer is a
// full-word guess. Empty input and guesses after the round ended change nothing.
func (s *Session) SubmitGuess(raw string) Status {
	if s.status != StatusInProgress {
		return s.status
	}

	guess := strings.ToLower(raw)
	runes := []rune(guess)

	switch {
	case len(runes) > 1:
		if guess == string(s.secret) {
			copy(s.revealed, s.secret)
			s.win()
		} else {
			s.recordWrong(guess)
		}
	case len(runes) == 1:
		if !s.reveal(runes[0]) {
			s.recordWrong(guess)
		} else if !s.hasPlaceholder() {
			s.win()
		}
	}

	return s.status
}

// CheckLossCondition ends the round as lost once the wrong guesses reach the
// maximum number of attempts. It reports whether the round was lost.
func (s *Session) CheckLossCondition() bool {
	if s.status != StatusInProgress || len(s.wrong) < s.maxAttempts {
		return false
	}
	s.status = StatusLost
	s.stats.Lost++
	return true
}

func (s *Session) reveal(letter rune) bool {
	found := false
	for i, r := range s.secret {
		if r == letter {
			s.revealed[i] = r
			found = true
		}
	}
	return found
}

func (s *Session) hasPlaceholder() bool {
	for _, r := range s.revealed {
		if r == Placeholder {
			return true
		}
	}
	return false
}

func (s *Session) recordWrong(guess string) {
	for _, w := range s.wrong {
		if w == guess {
			return
		}
	}
	s.wrong = append(s.wrong, guess)
}

func (s *Session) win() {
	s.status = StatusWon
	s.stats.Won++
}

// Status returns the status of the current round.
func (s *Session) Status() Status { return s.status }

// Secret returns the secret word of the current round.
func (s *Session) Secret() string { return string(s.secret) }

// Revealed returns the revealed pattern, one rune per letter of the secret.
func (s *Session) Revealed() string { return string(s.revealed) }

// Pattern returns the revealed pattern with spaces between positions.
func (s *Session) Pattern() string {
	parts := make([]string, len(s.revealed))
	for i, r := range s.revealed {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// WrongGuesses returns the recorded wrong guesses in the order they were made.
func (s *Session) WrongGuesses() []string {
	out := make([]string, len(s.wrong))
	copy(out, s.wrong)
	return out
}

// InputEnded reports whether the last Run stopped because input ran out or
// the context was cancelled rather than by the player declining to continue.
func (s *Session) InputEnded() bool { return s.inputEnded }

// MaxAttempts returns how many wrong guesses end a round.
func (s *Session) MaxAttempts() int { return s.maxAttempts }

// Stats returns a copy of the cumulative counters.
func (s *Session) Stats() Stats { return *s.stats }
