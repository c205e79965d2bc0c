package hangman

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isaacjstriker/hangman/internal/types"
)

const (
	VariantClassic  = "classic"
	VariantExtended = "extended"
)

// Variant is a playable flavour of the game: a word list plus presentation.
type Variant struct {
	name        string
	description string
	difficulty  int
	words       []string
	styled      bool
	rng         *rand.Rand
}

// NewVariant creates a variant over the given words.
func NewVariant(name, description string, difficulty int, words []string, styled bool) *Variant {
	return &Variant{
		name:        name,
		description: description,
		difficulty:  difficulty,
		words:       NormalizeWords(words),
		styled:      styled,
	}
}

// NewClassic is the original game: sixteen words, plain text.
func NewClassic() *Variant {
	return NewVariant(VariantClassic, "The original sixteen words, plain text.", 3, ClassicWords(), false)
}

// NewExtended is the larger word list with colored output.
func NewExtended() *Variant {
	return NewVariant(VariantExtended, "A bigger word list with colored output.", 4, ExtendedWords(), true)
}

// WithWordScript replaces the variant's words with the ones a Lua word pack
// provides for it. A missing or broken script leaves the built-in list.
func (v *Variant) WithWordScript(path string) *Variant {
	if path == "" {
		return v
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Warn().Str("path", path).Msg("word script not found, using built-in words")
		return v
	}

	words, err := LoadWordScript(path, v.name)
	if err != nil {
		log.Warn().Err(err).Str("variant", v.name).Msg("could not load word script, using built-in words")
		return v
	}
	v.words = words
	log.Debug().Str("variant", v.name).Int("words", len(words)).Msg("loaded word script")
	return v
}

// WithRand fixes the random source used to pick secrets. A shared source
// must not be used by concurrent Play calls.
func (v *Variant) WithRand(rng *rand.Rand) *Variant {
	v.rng = rng
	return v
}

// Interface methods
func (v *Variant) GetName() string {
	return v.name
}

func (v *Variant) GetDescription() string {
	return v.description
}

func (v *Variant) GetDifficulty() int {
	return v.difficulty
}

func (v *Variant) IsAvailable() bool {
	return len(v.words) > 0
}

// Words returns the variant's word list.
func (v *Variant) Words() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// Play runs rounds against env until the player quits. Stats live for the
// duration of this call.
func (v *Variant) Play(ctx context.Context, env types.Env) (*types.GameResult, error) {
	stats := &Stats{}
	session := NewSession(env.Reader, env.Presenter, stats, Options{
		Words:    v.words,
		Variant:  v.name,
		Player:   env.Player,
		Styled:   v.styled,
		Recorder: env.Recorder,
		Rand:     v.rng,
	})

	started := time.Now()
	final, err := session.Run(ctx)

	result := &types.GameResult{
		GameName:    v.name,
		GamesPlayed: final.Played,
		GamesWon:    final.Won,
		GamesLost:   final.Lost,
		Duration:    time.Since(started).Seconds(),
		InputEnded:  session.InputEnded(),
	}
	return result, err
}
