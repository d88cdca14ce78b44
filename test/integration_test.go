package test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"stageshow/auth"
	"stageshow/domain"
	"stageshow/infrastructure"
	"stageshow/observability"
	"stageshow/repositories"
	"stageshow/runtime"
	"stageshow/services"
)

const operatorKey = "backstage-pass"

type envelope struct {
	Type      string            `json:"type"`
	ID        int64             `json:"id"`
	SessionID string            `json:"sessionId"`
	Role      string            `json:"role"`
	OK        *bool             `json:"ok"`
	Token     string            `json:"token"`
	Error     string            `json:"error"`
	Details   string            `json:"details"`
	State     *domain.ShowState `json:"state"`
}

// startServer wires the full stack the way cmd/server does, on temp storage.
func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	req.NoError(err)
	t.Cleanup(func() { _ = blugeWriter.Close() })

	packsDir := t.TempDir()
	packJSON := `{
		"id": "melody",
		"title": "Угадай мелодию",
		"type": "audio",
		"questions": [
			{"title": "Jingle Bells", "answer": "James Lord Pierpont"},
			{"title": "Last Christmas", "answer": "Wham!"},
			{"title": "Снежинка", "answer": "Из к/ф Чародеи"}
		]
	}`
	req.NoError(os.WriteFile(filepath.Join(packsDir, "01-melody.json"), []byte(packJSON), 0o644))

	catalog, err := repositories.LoadCatalog(packsDir, "", log)
	req.NoError(err)

	searchRepository := repositories.NewSearchRepository(blugeWriter, log, 10)
	req.NoError(searchRepository.IndexCatalog(catalog))
	historyRepository := repositories.NewHistoryRepository(db, log, 50)

	store := runtime.NewSessionStore(catalog, "Новогодняя викторина")
	registry := runtime.NewRegistry()
	showService := services.NewShowService(store, registry, historyRepository, catalog, log)

	hash, err := auth.HashKey(operatorKey)
	req.NoError(err)
	authService := services.NewAuthService(hash, []byte("integration-signing-key"), time.Hour)

	stats, err := observability.NewStatsCollector(log)
	req.NoError(err)

	wsHandler := infrastructure.NewWSHandler(log, showService, authService, time.Second, 30*time.Second)
	api := infrastructure.NewAPIHandler(log, catalog, historyRepository, searchRepository, stats, store)

	server := httptest.NewServer(api.Router(wsHandler, ""))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, sessionID, role string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?session=" + sessionID + "&role=" + role
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	return conn
}

func read(t *testing.T, conn *websocket.Conn, wanted string) envelope {
	t.Helper()
	for {
		var env envelope
		require.NoError(t, conn.ReadJSON(&env))
		if env.Type == wanted {
			return env
		}
	}
}

func authenticate(t *testing.T, conn *websocket.Conn, credential string) envelope {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "authenticate", "id": 1, "credential": credential,
	}))
	return read(t, conn, "ack")
}

func submit(t *testing.T, conn *websocket.Conn, id int64, action string) envelope {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "action", "id": id, "action": json.RawMessage(action),
	}))
	for {
		env := read(t, conn, "ack")
		if env.ID == id {
			return env
		}
	}
}

func Test_ShowScenario(t *testing.T) {
	req := require.New(t)
	server := startServer(t)

	// A display joins first and sees the default state.
	display := dial(t, server, "main-hall", "display")
	hello := read(t, display, "hello")
	req.Equal("main-hall", hello.SessionID)
	req.Equal("display", hello.Role)
	state := read(t, display, "state")
	req.Equal("Новогодняя викторина", state.State.Session.Title)
	req.Equal("melody", *state.State.Selection.PackID)
	req.Equal(domain.PhaseIdle, state.State.UI.Phase)

	// The operator connects and authenticates.
	operator := dial(t, server, "main-hall", "operator")
	ack := authenticate(t, operator, operatorKey)
	req.True(*ack.OK)
	req.NotEmpty(ack.Token)

	// Run a question: start, reveal the answer, fire a timer and an effect.
	req.True(*submit(t, operator, 10, `{"type":"start"}`).OK)
	req.True(*submit(t, operator, 11, `{"type":"reveal","step":"answer"}`).OK)
	req.True(*submit(t, operator, 12, `{"type":"timerStart","seconds":30}`).OK)
	req.True(*submit(t, operator, 13, `{"type":"fx","effect":"confetti"}`).OK)

	// The display converges on the final snapshot.
	final := read(t, display, "state")
	for final.State.UI.FX.ID == 0 {
		final = read(t, display, "state")
	}
	req.Equal(domain.PhaseQuestion, final.State.UI.Phase)
	req.Equal(domain.RevealAnswer, final.State.UI.Reveal)
	req.NotNil(final.State.UI.Timer.EndsAt)
	req.Equal(30, *final.State.UI.Timer.DurationSec)
	req.Equal("confetti", *final.State.UI.FX.Type)

	// A rejected action changes nothing and reports its code.
	rejected := submit(t, operator, 14, `{"type":"timerStart","seconds":0}`)
	req.False(*rejected.OK)
	req.Equal("invalid_timer_duration", rejected.Error)

	// Sessions are isolated: another hall still has the default state.
	other := dial(t, server, "second-hall", "display")
	read(t, other, "hello")
	otherState := read(t, other, "state")
	req.Equal(0, otherState.State.Selection.QuestionIndex)
	req.Equal(domain.PhaseIdle, otherState.State.UI.Phase)

	// The accepted actions are on the audit trail, newest first.
	var history []struct {
		Action domain.Action `json:"action"`
	}
	resp, err := http.Get(server.URL + "/api/sessions/main-hall/history")
	req.NoError(err)
	defer resp.Body.Close()
	req.NoError(json.NewDecoder(resp.Body).Decode(&history))
	req.Len(history, 4)
	req.Equal(domain.ActionFX, history[0].Action.Type)
	req.Equal(domain.ActionStart, history[3].Action.Type)

	// The question index answers a search.
	var hits []repositories.SearchHit
	resp2, err := http.Get(server.URL + "/api/search?q=jingle")
	req.NoError(err)
	defer resp2.Body.Close()
	req.NoError(json.NewDecoder(resp2.Body).Decode(&hits))
	req.Len(hits, 1)
	req.Equal("melody", hits[0].PackID)
	req.Equal(0, hits[0].QuestionIndex)
}
