package games

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/isaacjstriker/hangman/games/hangman"
	"github.com/isaacjstriker/hangman/internal/types"
)

// ErrUnknownGame is returned when no registered game has the requested name.
var ErrUnknownGame = errors.New("unknown game")

// GameRegistry manages all available games
type GameRegistry struct {
	games []types.Game
}

// NewGameRegistry creates a new game registry
func NewGameRegistry() *GameRegistry {
	return &GameRegistry{
		games: make([]types.Game, 0),
	}
}

// NewDefaultRegistry registers the built-in hangman variants. When wordScript
// is set, each variant takes its words from that Lua word pack.
func NewDefaultRegistry(wordScript string) *GameRegistry {
	gr := NewGameRegistry()
	gr.RegisterGame(hangman.NewClassic().WithWordScript(wordScript))
	gr.RegisterGame(hangman.NewExtended().WithWordScript(wordScript))
	return gr
}

// RegisterGame adds a game to the registry
func (gr *GameRegistry) RegisterGame(game types.Game) {
	gr.games = append(gr.games, game)
}

// GetAllGames returns all registered games
func (gr *GameRegistry) GetAllGames() []types.Game {
	available := make([]types.Game, 0)
	for _, game := range gr.games {
		if game.IsAvailable() {
			available = append(available, game)
		}
	}
	return available
}

// GetGame looks up an available game by name
func (gr *GameRegistry) GetGame(name string) (types.Game, error) {
	for _, game := range gr.GetAllGames() {
		if game.GetName() == name {
			return game, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
}

// GetRandomOrder returns the available games shuffled
func (gr *GameRegistry) GetRandomOrder() []types.Game {
	games := gr.GetAllGames()
	rand.Shuffle(len(games), func(i, j int) {
		games[i], games[j] = games[j], games[i]
	})
	return games
}

// GetGameCount returns number of available games
func (gr *GameRegistry) GetGameCount() int {
	return len(gr.GetAllGames())
}

// GetGameList returns the names of available games, sorted
func (gr *GameRegistry) GetGameList() []string {
	var names []string
	for _, game := range gr.GetAllGames() {
		names = append(names, game.GetName())
	}
	sort.Strings(names)
	return names
}
