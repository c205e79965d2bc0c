package games

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/isaacjstriker/hangman/internal/types"
)

const textStart = "Press Enter to start..."

// ChallengeMode plays every available variant back to back.
type ChallengeMode struct {
	registry *GameRegistry
}

// ChallengeResult totals a challenge across variants.
type ChallengeResult struct {
	Results     []types.GameResult `json:"results"`
	GamesPlayed int                `json:"games_played"`
	GamesWon    int                `json:"games_won"`
	GamesLost   int                `json:"games_lost"`
	Duration    float64            `json:"duration"`
}

// NewChallengeMode creates a new challenge mode
func NewChallengeMode(registry *GameRegistry) *ChallengeMode {
	return &ChallengeMode{
		registry: registry,
	}
}

// Run plays all available variants in a random order, pausing before each
// one. Quitting a variant moves on to the next one. Running out of input ends
// the challenge.
func (cm *ChallengeMode) Run(ctx context.Context, env types.Env) (*ChallengeResult, error) {
	games := cm.registry.GetRandomOrder()
	total := &ChallengeResult{}

	if len(games) == 0 {
		env.Presenter.PrintLines(types.Plain("No games available for challenge mode!"))
		return total, nil
	}

	for i, game := range games {
		env.Presenter.Clear()
		env.Presenter.PrintLines(
			types.Line{Text: fmt.Sprintf("Challenge %d/%d: %s", i+1, len(games), game.GetName()), Tone: types.ToneHeading},
			types.Plain(game.GetDescription()),
			types.Plain(fmt.Sprintf("Difficulty: %d/10", game.GetDifficulty())),
		)

		if _, err := env.Reader.Ask(ctx, textStart); err != nil {
			if inputEnded(err) {
				break
			}
			return total, fmt.Errorf("failed to start %s: %w", game.GetName(), err)
		}

		result, err := game.Play(ctx, env)
		if result != nil {
			total.add(*result)
		}
		if err != nil {
			return total, fmt.Errorf("challenge stopped in %s: %w", game.GetName(), err)
		}
		if result.InputEnded {
			break
		}
	}

	env.Presenter.PrintLines(
		types.Line{Text: strings.Repeat("*", 25), Tone: types.ToneMuted},
		types.Line{Text: "CHALLENGE COMPLETE!", Tone: types.ToneHeading},
		types.Plain(fmt.Sprintf("Won %d of %d rounds across %d variants", total.GamesWon, total.GamesPlayed, len(total.Results))),
	)
	return total, nil
}

func inputEnded(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (r *ChallengeResult) add(result types.GameResult) {
	r.Results = append(r.Results, result)
	r.GamesPlayed += result.GamesPlayed
	r.GamesWon += result.GamesWon
	r.GamesLost += result.GamesLost
	r.Duration += result.Duration
}
