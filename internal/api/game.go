package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/isaacjstriker/hangman/internal/auth"
	"github.com/isaacjstriker/hangman/internal/types"
	"github.com/isaacjstriker/hangman/ui"
)

const guestPlayer = "guest"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections for now. In production, you'd want to restrict this.
		return true
	},
}

// Message is the JSON frame exchanged over the play socket. Index is only
// sent with frame messages.
type Message struct {
	Type  string            `json:"type"`
	Text  string            `json:"text,omitempty"`
	Index *int              `json:"index,omitempty"`
	Lines []MessageLine     `json:"lines,omitempty"`
	Stats *types.GameResult `json:"stats,omitempty"`
}

// MessageLine is one line of game text with its tone name.
type MessageLine struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

// handlePlay upgrades the request to a websocket and runs one game session
// over it. A valid token attributes recorded rounds to its player.
func (s *APIServer) handlePlay(w http.ResponseWriter, r *http.Request) {
	game, err := s.registry.GetGame(chi.URLParam(r, "variant"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, apiError{Error: "unknown variant"})
		return
	}

	player := guestPlayer
	if token := r.URL.Query().Get("token"); token != "" {
		claims, err := auth.ParseToken(s.config.JWTSecret, token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: "invalid token"})
			return
		}
		player = claims.Username
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("failed to upgrade connection")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sock := newSocketPlayer(conn)
	env := types.Env{Reader: sock, Presenter: sock, Player: player}
	if s.db != nil {
		env.Recorder = s.db
	}

	logger := log.With().Str("game", game.GetName()).Str("player", player).Logger()
	logger.Info().Msg("websocket game started")

	result, err := game.Play(ctx, env)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket game ended with error")
		return
	}

	sock.send(Message{Type: "stats", Stats: result})
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
	logger.Info().Int("played", result.GamesPlayed).Int("won", result.GamesWon).Msg("websocket game finished")
}

// socketPlayer is a LineReader and Presenter backed by a websocket.
// Presenter methods cannot fail, so the first write error is kept and
// returned from the next Ask.
type socketPlayer struct {
	conn *websocket.Conn

	mu       sync.Mutex
	writeErr error
}

func newSocketPlayer(conn *websocket.Conn) *socketPlayer {
	return &socketPlayer{conn: conn}
}

func (p *socketPlayer) send(msg Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writeErr != nil {
		return
	}
	if err := p.conn.WriteJSON(msg); err != nil {
		p.writeErr = err
	}
}

func (p *socketPlayer) Clear() {
	p.send(Message{Type: "clear"})
}

func (p *socketPlayer) ShowFrame(index int) {
	p.send(Message{Type: "frame", Index: &index})
}

func (p *socketPlayer) PrintLines(lines ...types.Line) {
	out := make([]MessageLine, len(lines))
	for i, line := range lines {
		out[i] = MessageLine{Text: line.Text, Tone: line.Tone.String()}
	}
	p.send(Message{Type: "lines", Lines: out})
}

func (p *socketPlayer) FrameCount() int {
	return len(ui.HangmanFrames)
}

// Ask sends a prompt and waits for the next answer message. A closed socket
// reads as end of input.
func (p *socketPlayer) Ask(ctx context.Context, prompt string) (string, error) {
	p.send(Message{Type: "prompt", Text: prompt})

	p.mu.Lock()
	writeErr := p.writeErr
	p.mu.Unlock()
	if writeErr != nil {
		return "", fmt.Errorf("failed to send prompt: %w", writeErr)
	}

	stop := context.AfterFunc(ctx, func() { p.conn.Close() })
	defer stop()

	for {
		var msg Message
		if err := p.conn.ReadJSON(&msg); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return "", io.EOF
			}
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		if msg.Type == "answer" {
			return msg.Text, nil
		}
	}
}

var (
	_ types.LineReader = (*socketPlayer)(nil)
	_ types.Presenter  = (*socketPlayer)(nil)
)
