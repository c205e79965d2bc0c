package types

import (
	"context"
	"time"
)

// Tone is a presentation hint attached to a line of game text.
// Games never interpret it; presenters map it to a style.
type Tone int

const (
	TonePlain Tone = iota
	ToneHeading
	ToneSuccess
	ToneFailure
	ToneMuted
)

// String returns the wire name of the tone.
func (t Tone) String() string {
	switch t {
	case ToneHeading:
		return "heading"
	case ToneSuccess:
		return "success"
	case ToneFailure:
		return "failure"
	case ToneMuted:
		return "muted"
	default:
		return "plain"
	}
}

// Line is one line of text for a Presenter.
type Line struct {
	Text string `json:"text"`
	Tone Tone   `json:"-"`
}

// Plain is shorthand for an unstyled line.
func Plain(text string) Line {
	return Line{Text: text}
}

// LineReader suspends until the user supplies one line of text.
// The returned line has its trailing newline stripped.
type LineReader interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// Presenter renders game output to the user.
type Presenter interface {
	// Clear resets the visible screen before a render cycle.
	Clear()

	// ShowFrame renders progress frame index, 0 <= index < FrameCount().
	ShowFrame(index int)

	// PrintLines writes lines in order.
	PrintLines(lines ...Line)

	// FrameCount returns the number of progress frames available.
	FrameCount() int
}

// Outcome of a finished round.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// RoundResult describes one finished round.
type RoundResult struct {
	ID           string        `json:"id"`
	Variant      string        `json:"variant"`
	Player       string        `json:"player"`
	Secret       string        `json:"secret"`
	Outcome      Outcome       `json:"outcome"`
	WrongGuesses []string      `json:"wrong_guesses"`
	Duration     time.Duration `json:"duration"`
	FinishedAt   time.Time     `json:"finished_at"`
}

// Recorder stores finished rounds.
type Recorder interface {
	RecordRound(ctx context.Context, result RoundResult) error
}

// Env is everything a game needs from the outside to run one session.
type Env struct {
	Reader    LineReader
	Presenter Presenter
	Recorder  Recorder // optional
	Player    string
}

// GameResult is the outcome of a whole session of play.
type GameResult struct {
	GameName    string  `json:"game_name"`
	GamesPlayed int     `json:"games_played"`
	GamesWon    int     `json:"games_won"`
	GamesLost   int     `json:"games_lost"`
	Duration    float64 `json:"duration"`

	// InputEnded is set when play stopped because input ran out.
	InputEnded bool `json:"input_ended,omitempty"`
}

// Game interface that all playable variants implement
type Game interface {
	// GetName returns the name used to select the game
	GetName() string

	// GetDescription returns a brief description
	GetDescription() string

	// Play runs sessions until the player quits and returns the totals
	Play(ctx context.Context, env Env) (*GameResult, error)

	// GetDifficulty returns relative difficulty (1-10)
	GetDifficulty() int

	// IsAvailable checks if game can be played
	IsAvailable() bool
}
