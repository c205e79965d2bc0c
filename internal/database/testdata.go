package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/isaacjstriker/hangman/internal/types"
)

type sampleRound struct {
	variant string
	secret  string
	outcome types.Outcome
	wrong   []string
}

var samplePlayers = []struct {
	username string
	rounds   []sampleRound
}{
	{"speedster", []sampleRound{
		{"classic", "robot", types.OutcomeWon, []string{"e"}},
		{"classic", "wizard", types.OutcomeWon, nil},
		{"extended", "telescope", types.OutcomeLost, []string{"a", "i", "u", "r", "n", "d"}},
	}},
	{"wordsmith", []sampleRound{
		{"classic", "chocolate", types.OutcomeWon, []string{"s", "i"}},
		{"classic", "volcano", types.OutcomeWon, nil},
		{"classic", "unicorn", types.OutcomeWon, []string{"e"}},
		{"extended", "lighthouse", types.OutcomeWon, []string{"a", "r"}},
	}},
	{"guesser", []sampleRound{
		{"classic", "jungle", types.OutcomeLost, []string{"a", "i", "o", "s", "t", "r"}},
		{"classic", "river", types.OutcomeWon, []string{"a", "o"}},
	}},
	{"challenger", []sampleRound{
		{"extended", "galaxy", types.OutcomeWon, nil},
		{"extended", "octopus", types.OutcomeWon, []string{"e"}},
		{"classic", "diamond", types.OutcomeLost, []string{"e", "r", "s", "t", "l", "u"}},
	}},
}

// CreateTestData records sample rounds for development and demos. Nothing
// is written when rounds already exist. It returns the number of rounds added.
func (db *DB) CreateTestData(ctx context.Context) (int, error) {
	var roundCount int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM rounds`).Scan(&roundCount); err != nil {
		return 0, fmt.Errorf("failed to check existing rounds: %w", err)
	}
	if roundCount > 0 {
		return 0, nil
	}

	start := time.Now().UTC().Add(-7 * 24 * time.Hour)
	added := 0
	for i, player := range samplePlayers {
		for j, r := range player.rounds {
			played := start.Add(time.Duration(i*len(player.rounds)+j) * 12 * time.Hour)
			err := db.SaveRound(ctx, types.RoundResult{
				ID:           uuid.NewString(),
				Variant:      r.variant,
				Player:       player.username,
				Secret:       r.secret,
				Outcome:      r.outcome,
				WrongGuesses: r.wrong,
				Duration:     time.Duration(20+5*len(r.wrong)) * time.Second,
				FinishedAt:   played,
			})
			if err != nil {
				return added, fmt.Errorf("failed to create sample round for %s: %w", player.username, err)
			}
			added++
		}
	}

	return added, nil
}
