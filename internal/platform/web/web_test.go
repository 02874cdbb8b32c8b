package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-classics/internal/games/minesweeper"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s, err := NewServer(Config{Secret: "test-secret"}, store, log.New(io.Discard))
	require.NoError(t, err)
	s.now = func() time.Time { return testNow }
	return s, store
}

func do(t *testing.T, s *Server, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func createRound(t *testing.T, s *Server, form url.Values) NewRoundReply {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/minesweeper/rounds", "", form)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var reply NewRoundReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	return reply
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) minesweeper.View {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v minesweeper.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func roundPath(id, action string) string {
	p := "/api/minesweeper/rounds/" + id
	if action != "" {
		p += "/" + action
	}
	return p
}

func TestStatus(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/status", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestNewRound(t *testing.T) {
	s, _ := newTestServer(t)
	reply := createRound(t, s, url.Values{"difficulty": {"easy"}, "seed": {"7"}, "player": {"ann"}})

	_, err := uuid.Parse(reply.ID)
	assert.NoError(t, err, "round id should be a uuid")
	assert.NotEmpty(t, reply.Token)
	assert.Equal(t, minesweeper.Easy, reply.Round.Difficulty)
	assert.Equal(t, "playing", reply.Round.Status)
	assert.False(t, reply.Round.Started)
	require.Len(t, reply.Round.Cells, 9)
	for _, row := range reply.Round.Cells {
		for _, c := range row {
			assert.Equal(t, minesweeper.GlyphHidden, c)
		}
	}

	def := createRound(t, s, nil)
	assert.Equal(t, minesweeper.Medium, def.Round.Difficulty, "medium is the default board")
	assert.NotEqual(t, reply.ID, def.ID)
}

func TestNewRoundBadParams(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		name string
		form url.Values
	}{
		{"unknown difficulty", url.Values{"difficulty": {"insane"}}},
		{"bad seed", url.Values{"seed": {"abc"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/minesweeper/rounds", "", tt.form)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var e ErrorReply
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestMutationsRequireToken(t *testing.T) {
	s, _ := newTestServer(t)
	a := createRound(t, s, url.Values{"difficulty": {"easy"}})
	b := createRound(t, s, url.Values{"difficulty": {"easy"}})

	other, err := NewServer(Config{Secret: "another-secret"}, nil, log.New(io.Discard))
	require.NoError(t, err)
	forged, err := other.tokens.Sign(a.ID, "", testNow)
	require.NoError(t, err)

	expired, err := newTokenIssuer([]byte("test-secret"), -time.Minute).Sign(a.ID, "", testNow)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-jwt"},
		{"token of another round", b.Token},
		{"wrong secret", forged},
		{"expired", expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, roundPath(a.ID, "reveal"), tt.token, url.Values{"row": {"0"}, "col": {"0"}})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, roundPath(a.ID, "reset"), nil)
	req.Header.Set("Authorization", "Basic "+a.Token)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "only bearer tokens are accepted")

	view := decodeView(t, do(t, s, http.MethodGet, roundPath(a.ID, ""), "", nil))
	assert.False(t, view.Started, "rejected calls must not touch the round")
}

func TestRevealAndFlag(t *testing.T) {
	s, _ := newTestServer(t)
	r := createRound(t, s, url.Values{"difficulty": {"easy"}, "seed": {"42"}})

	view := decodeView(t, do(t, s, http.MethodPost, roundPath(r.ID, "reveal"), r.Token, url.Values{"row": {"4"}, "col": {"4"}}))
	assert.True(t, view.Started)
	assert.Equal(t, "0", view.Cells[4][4], "the first reveal opens an empty cell")

	var hr, hc = -1, -1
	for row := range view.Cells {
		for col, c := range view.Cells[row] {
			if c == minesweeper.GlyphHidden && hr < 0 {
				hr, hc = row, col
			}
		}
	}
	require.GreaterOrEqual(t, hr, 0, "some cell should still be hidden")

	cell := url.Values{"row": {strconv.Itoa(hr)}, "col": {strconv.Itoa(hc)}}
	view = decodeView(t, do(t, s, http.MethodPost, roundPath(r.ID, "flag"), r.Token, cell))
	assert.Equal(t, minesweeper.GlyphFlag, view.Cells[hr][hc])
	assert.Equal(t, 1, view.FlagsPlaced)
	assert.Equal(t, minesweeper.Easy.Mines-1, view.MinesLeft)

	view = decodeView(t, do(t, s, http.MethodPost, roundPath(r.ID, "flag"), r.Token, cell))
	assert.Equal(t, minesweeper.GlyphQuestion, view.Cells[hr][hc])

	rec := do(t, s, http.MethodPost, roundPath(r.ID, "reveal"), r.Token, url.Values{"row": {"1"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "col is required")

	view = decodeView(t, do(t, s, http.MethodPost, roundPath(r.ID, "reset"), r.Token, nil))
	assert.False(t, view.Started)
	assert.Zero(t, view.FlagsPlaced)
}

func TestChangeDifficulty(t *testing.T) {
	s, _ := newTestServer(t)
	r := createRound(t, s, url.Values{"difficulty": {"easy"}})

	view := decodeView(t, do(t, s, http.MethodPost, roundPath(r.ID, "difficulty"), r.Token, url.Values{"name": {"hard"}}))
	assert.Equal(t, minesweeper.Hard, view.Difficulty)
	require.Len(t, view.Cells, 16)
	assert.Len(t, view.Cells[0], 30)

	rec := do(t, s, http.MethodPost, roundPath(r.ID, "difficulty"), r.Token, url.Values{"name": {"nightmare"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, roundPath(r.ID, "difficulty"), r.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	view = decodeView(t, do(t, s, http.MethodGet, roundPath(r.ID, ""), "", nil))
	assert.Equal(t, minesweeper.Hard, view.Difficulty, "a rejected change keeps the board")
}

func TestWinRecordsScoreOnce(t *testing.T) {
	s, store := newTestServer(t)
	r := createRound(t, s, url.Values{"difficulty": {"easy"}, "seed": {"3"}, "player": {"ann"}})

	view := decodeView(t, do(t, s, http.MethodPost, roundPath(r.ID, "reveal"), r.Token, url.Values{"row": {"0"}, "col": {"0"}}))

	lr, ok := s.rounds.get(r.ID)
	require.True(t, ok)
	for row := range lr.round.Rows() {
		for col := range lr.round.Cols() {
			if lr.round.Value(row, col) == minesweeper.Mine || lr.round.State(row, col) == minesweeper.Revealed {
				continue
			}
			view = decodeView(t, do(t, s, http.MethodPost, roundPath(r.ID, "reveal"), r.Token,
				url.Values{"row": {strconv.Itoa(row)}, "col": {strconv.Itoa(col)}}))
		}
	}
	require.Equal(t, "win", view.Status)
	assert.Zero(t, view.MinesLeft)

	// Calls on a finished round do not record again.
	decodeView(t, do(t, s, http.MethodPost, roundPath(r.ID, "reveal"), r.Token, url.Values{"row": {"0"}, "col": {"0"}}))

	scores, err := store.TopScores(minesweeper.ID, 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "ann", scores[0].Player)
	assert.Equal(t, minesweeper.Easy.Mines*100+999, scores[0].Score)

	rec := do(t, s, http.MethodGet, "/api/scores/minesweeper", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []storage.ScoreEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, scores[0].Score, listed[0].Score)
}

func TestUnknownRound(t *testing.T) {
	s, _ := newTestServer(t)
	r := createRound(t, s, url.Values{"difficulty": {"easy"}})

	rec := do(t, s, http.MethodGet, roundPath(uuid.NewString(), ""), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, roundPath(r.ID, ""), r.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, roundPath(r.ID, ""), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, roundPath(r.ID, "reveal"), r.Token, url.Values{"row": {"0"}, "col": {"0"}})
	assert.Equal(t, http.StatusNotFound, rec.Code, "a valid token for a removed round")
}

func TestScoresEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/scores/chess", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/scores/minesweeper?limit=x", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/scores/minesweeper", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	bare, err := NewServer(Config{Secret: "x"}, nil, log.New(io.Discard))
	require.NoError(t, err)
	rec = do(t, bare, http.MethodGet, "/api/scores/minesweeper", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPrune(t *testing.T) {
	s, _ := newTestServer(t)
	old := createRound(t, s, nil)

	s.now = func() time.Time { return testNow.Add(2 * roundIdleTTL) }
	fresh := createRound(t, s, nil)

	assert.Equal(t, 1, s.rounds.prune(s.now().Add(-roundIdleTTL)))
	_, ok := s.rounds.get(old.ID)
	assert.False(t, ok)
	_, ok = s.rounds.get(fresh.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, s.rounds.len())
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/minesweeper/rounds", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebSocket(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	r := createRound(t, s, url.Values{"difficulty": {"easy"}, "seed": {"9"}})
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + roundPath(r.ID, "ws")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	c, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+r.Token, nil)
	require.NoError(t, err)
	defer c.Close()

	var view minesweeper.View
	require.NoError(t, c.ReadJSON(&view))
	assert.False(t, view.Started)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("reveal 4 4\nflag 0 0")))
	require.NoError(t, c.ReadJSON(&view))
	assert.True(t, view.Started)
	assert.Equal(t, "0", view.Cells[4][4])

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("explode 1 1")))
	var e ErrorReply
	require.NoError(t, c.ReadJSON(&e))
	assert.Contains(t, e.Error, "unknown command")

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("difficulty medium")))
	require.NoError(t, c.ReadJSON(&view))
	assert.Equal(t, minesweeper.Medium, view.Difficulty)
	assert.False(t, view.Started)

	fetched := decodeView(t, do(t, s, http.MethodGet, roundPath(r.ID, ""), "", nil))
	assert.Equal(t, view.Difficulty, fetched.Difficulty, "http and websocket share the round")
}

func TestExecuteCommand(t *testing.T) {
	tests := []struct {
		line    string
		wantErr bool
	}{
		{"reveal 1 2", false},
		{"flag 0 0", false},
		{"reset", false},
		{"difficulty hard", false},
		{"reveal 1", true},
		{"reveal a 2", true},
		{"flag 1 b", true},
		{"difficulty", true},
		{"difficulty nope", true},
		{"", true},
		{"jump", true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			round, err := minesweeper.NewRound(minesweeper.Easy, 1)
			require.NoError(t, err)
			err = executeCommand(round, tt.line)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
