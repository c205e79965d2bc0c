package hangman

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/isaacjstriker/hangman/internal/types"
)

const (
	textWin       = "You won!"
	textLose      = "You lost! The word was: "
	textPlayAgain = "Type 'next' to play again, or 'exit' to quit: "
	textChoice    = "Guess a letter or the full word: "
)

// Run plays rounds until the player declines to continue, then shows the
// cumulative stats. Running out of input or a cancelled context counts as
// declining.
func (s *Session) Run(ctx context.Context) (Stats, error) {
	s.inputEnded = false
	for {
		s.ResetRound()

		if err := s.PlayRound(ctx); err != nil {
			if endOfInput(err) {
				s.inputEnded = true
				break
			}
			return s.Stats(), fmt.Errorf("failed to play round: %w", err)
		}
		s.record(ctx)

		answer, err := s.reader.Ask(ctx, textPlayAgain)
		if err != nil {
			if endOfInput(err) {
				s.inputEnded = true
				break
			}
			return s.Stats(), fmt.Errorf("failed to read replay answer: %w", err)
		}
		if strings.ToLower(answer) != ContinueKeyword {
			break
		}
	}

	s.showStats()
	return s.Stats(), nil
}

// PlayRound runs the current round until it is won or lost.
func (s *Session) PlayRound(ctx context.Context) error {
	for s.status == StatusInProgress {
		s.render()

		if s.CheckLossCondition() {
			s.presenter.PrintLines(s.line(textLose+s.Secret(), types.ToneFailure))
			break
		}

		guess, err := s.reader.Ask(ctx, textChoice)
		if err != nil {
			return err
		}

		if s.SubmitGuess(guess) == StatusWon {
			s.render()
			s.presenter.PrintLines(s.line(textWin, types.ToneSuccess))
		}
	}
	return nil
}

func (s *Session) render() {
	s.presenter.Clear()
	s.presenter.PrintLines(
		s.line("Word: "+s.Pattern(), types.ToneHeading),
		s.line("Wrong guesses: "+strings.Join(s.wrong, ", "), types.ToneMuted),
	)
	s.presenter.ShowFrame(len(s.wrong))
}

func (s *Session) showStats() {
	s.presenter.Clear()
	s.presenter.PrintLines(
		s.line("Game Statistics:", types.ToneHeading),
		types.Plain(fmt.Sprintf("Games Played: %d", s.stats.Played)),
		types.Plain(fmt.Sprintf("Games Won: %d", s.stats.Won)),
		types.Plain(fmt.Sprintf("Games Lost: %d", s.stats.Lost)),
	)
}

func (s *Session) line(text string, tone types.Tone) types.Line {
	if !s.styled {
		return types.Plain(text)
	}
	return types.Line{Text: text, Tone: tone}
}

// record hands a finished round to the recorder. Storage problems are logged
// and never interrupt play.
func (s *Session) record(ctx context.Context) {
	if s.recorder == nil {
		return
	}

	outcome := types.OutcomeLost
	if s.status == StatusWon {
		outcome = types.OutcomeWon
	}
	finished := s.now()

	result := types.RoundResult{
		ID:           uuid.NewString(),
		Variant:      s.variant,
		Player:       s.player,
		Secret:       s.Secret(),
		Outcome:      outcome,
		WrongGuesses: s.WrongGuesses(),
		Duration:     finished.Sub(s.startedAt),
		FinishedAt:   finished,
	}

	if err := s.recorder.RecordRound(ctx, result); err != nil {
		log.Warn().Err(err).Str("round", result.ID).Msg("could not record round")
		return
	}
	log.Debug().Str("round", result.ID).Str("outcome", string(outcome)).Msg("round recorded")
}

func endOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
