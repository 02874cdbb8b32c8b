package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vovakirdan/arcade-classics/internal/games/minesweeper"
	"github.com/vovakirdan/arcade-classics/internal/registry"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

// defaultPlayer names scores of rounds created without a player.
const defaultPlayer = "web"

type newRoundParams struct {
	Difficulty string `schema:"difficulty"`
	Seed       *int64 `schema:"seed"`
	Player     string `schema:"player"`
}

type cellParams struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

type difficultyParams struct {
	Name string `schema:"name,required"`
}

type scoresParams struct {
	Limit int `schema:"limit"`
}

// NewRoundReply is the body of a successful round creation.
type NewRoundReply struct {
	ID    string           `json:"id"`
	Token string           `json:"token"`
	Round minesweeper.View `json:"round"`
}

// ErrorReply is the body of every error response.
type ErrorReply struct {
	Error string `json:"error"`
}

func (s *Server) decode(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return s.decoder.Decode(dst, r.Form)
}

func (s *Server) replyWithJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.internalError(w, "failed to marshal json", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		s.logger.Error("failed to send data", "error", err)
	}
}

func (s *Server) replyError(w http.ResponseWriter, status int, msg string) {
	s.replyWithJSON(w, status, ErrorReply{Error: msg})
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.replyError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) unauthorized(w http.ResponseWriter) {
	s.replyError(w, http.StatusUnauthorized, "unauthorized")
}

func (s *Server) notFound(w http.ResponseWriter) {
	s.replyError(w, http.StatusNotFound, "not found")
}

func (s *Server) internalError(w http.ResponseWriter, msg string, args ...any) {
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte("internal error"))
	s.logger.Error(msg, args...)
}

func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var params newRoundParams
	if err := s.decode(r, &params); err != nil {
		s.badRequest(w, err)
		return
	}

	name := params.Difficulty
	if name == "" {
		name = s.defDiff
	}
	d, err := minesweeper.LookupDifficulty(s.presets, name)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	seed := s.now().UnixNano()
	if params.Seed != nil {
		seed = *params.Seed
	}
	player := strings.TrimSpace(params.Player)
	if player == "" {
		player = defaultPlayer
	}

	round, err := minesweeper.NewRound(d, seed,
		minesweeper.WithPresets(s.presets),
		minesweeper.WithClock(s.now),
	)
	if err != nil {
		s.internalError(w, "cannot create round", "difficulty", d.Name, "error", err)
		return
	}

	lr := s.rounds.add(round, player, s.now())
	token, err := s.tokens.Sign(lr.id, player, s.now())
	if err != nil {
		s.rounds.remove(lr.id)
		s.internalError(w, "cannot sign token", "error", err)
		return
	}

	s.logger.Info("round created", "round", lr.id, "difficulty", d.Name, "player", player)
	s.replyWithJSON(w, http.StatusCreated, NewRoundReply{
		ID:    lr.id,
		Token: token,
		Round: round.View(s.now()),
	})
}

// withRound runs fn on the round named in the path while holding its lock,
// records a win if fn produced one, and replies with the resulting view.
func (s *Server) withRound(w http.ResponseWriter, r *http.Request, fn func(*minesweeper.Round) error) {
	lr, ok := s.rounds.get(mux.Vars(r)["id"])
	if !ok {
		s.notFound(w)
		return
	}

	lr.mu.Lock()
	err := fn(lr.round)
	if err == nil {
		s.touch(lr)
	}
	view := lr.round.View(s.now())
	lr.mu.Unlock()

	if err != nil {
		s.badRequest(w, err)
		return
	}
	s.replyWithJSON(w, http.StatusOK, view)
}

// touch marks the round as used and saves the score of a fresh win.
// The caller holds lr.mu.
func (s *Server) touch(lr *liveRound) {
	lr.lastUsed = s.now()
	if lr.round.Status() != minesweeper.Win {
		lr.saved = false
		return
	}
	if lr.saved || s.store == nil {
		return
	}
	lr.saved = true
	score := lr.round.Score()
	if _, err := s.store.SaveScore(minesweeper.ID, lr.player, score); err != nil {
		s.logger.Warn("cannot save score", "round", lr.id, "error", err)
		return
	}
	s.logger.Info("round won", "round", lr.id, "player", lr.player, "score", score)
}

func (s *Server) handleFetchRound(w http.ResponseWriter, r *http.Request) {
	s.withRound(w, r, func(*minesweeper.Round) error { return nil })
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var params cellParams
	if err := s.decode(r, &params); err != nil {
		s.badRequest(w, err)
		return
	}
	s.withRound(w, r, func(round *minesweeper.Round) error {
		round.Reveal(params.Row, params.Col)
		return nil
	})
}

func (s *Server) handleFlag(w http.ResponseWriter, r *http.Request) {
	var params cellParams
	if err := s.decode(r, &params); err != nil {
		s.badRequest(w, err)
		return
	}
	s.withRound(w, r, func(round *minesweeper.Round) error {
		round.ToggleFlag(params.Row, params.Col)
		return nil
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withRound(w, r, func(round *minesweeper.Round) error {
		round.Reset()
		return nil
	})
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	var params difficultyParams
	if err := s.decode(r, &params); err != nil {
		s.badRequest(w, err)
		return
	}
	s.withRound(w, r, func(round *minesweeper.Round) error {
		return round.ChangeDifficulty(params.Name)
	})
}

func (s *Server) handleDeleteRound(w http.ResponseWriter, r *http.Request) {
	if !s.rounds.remove(mux.Vars(r)["id"]) {
		s.notFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	game := mux.Vars(r)["game"]
	if !registry.Exists(game) {
		s.notFound(w)
		return
	}
	var params scoresParams
	if err := s.decode(r, &params); err != nil {
		s.badRequest(w, err)
		return
	}
	if s.store == nil {
		s.replyError(w, http.StatusServiceUnavailable, "scores are not being recorded")
		return
	}
	scores, err := s.store.TopScores(game, params.Limit)
	if err != nil {
		s.internalError(w, "cannot load scores", "game", game, "error", err)
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	s.replyWithJSON(w, http.StatusOK, scores)
}

var errEmptyCommand = errors.New("empty command")

// executeCommand applies one text command to a round:
//
//	reveal <row> <col>
//	flag <row> <col>
//	reset
//	difficulty <name>
func executeCommand(round *minesweeper.Round, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return errEmptyCommand
	}

	switch fields[0] {
	case "reveal", "flag":
		if len(fields) != 3 {
			return fmt.Errorf("usage: %s <row> <col>", fields[0])
		}
		row, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad row %q", fields[1])
		}
		col, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("bad col %q", fields[2])
		}
		if fields[0] == "reveal" {
			round.Reveal(row, col)
		} else {
			round.ToggleFlag(row, col)
		}
	case "reset":
		round.Reset()
	case "difficulty":
		if len(fields) != 2 {
			return errors.New("usage: difficulty <name>")
		}
		return round.ChangeDifficulty(fields[1])
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return nil
}
