package chatclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mux *http.ServeMux

	messages       []ChatMessage
	postedMessages []OutgoingMessage
	suggestions    []string
	failPost       bool
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		mux: http.NewServeMux(),
		messages: []ChatMessage{
			{ID: 1, TicketID: 7, SenderName: "John Smith", SenderType: "customer", Message: "I cannot log in"},
		},
		suggestions: []string{"first", "second", "third"},
	}
	f.mux.HandleFunc("GET /api/tickets/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Ticket{ID: 7, Title: "Login page broken", Status: "open", Priority: "high"})
	})
	f.mux.HandleFunc("GET /api/tickets/7/messages", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(f.messages)
	})
	f.mux.HandleFunc("POST /api/tickets/7/messages", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if f.failPost {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error_message": "boom"})
			return
		}
		var msg OutgoingMessage
		json.NewDecoder(r.Body).Decode(&msg)
		f.postedMessages = append(f.postedMessages, msg)
		created := ChatMessage{
			ID:         uint(len(f.messages) + 1),
			TicketID:   7,
			SenderName: msg.SenderName,
			SenderType: msg.SenderType,
			Message:    msg.Message,
		}
		f.messages = append(f.messages, created)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	})
	f.mux.HandleFunc("POST /api/tickets/7/suggestions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"suggestions": f.suggestions})
	})
	return f
}

func newLoadedSession(t *testing.T) (*Session, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	srv := httptest.NewServer(api.mux)
	t.Cleanup(srv.Close)

	agentID := uint(1)
	session := NewSession(New(srv.URL), 7, &agentID, "Sarah Johnson")
	require.NoError(t, session.Load(context.Background()))
	return session, api
}

func TestSessionLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads ticket and transcript", func(t *testing.T) {
		api := newFakeAPI()
		srv := httptest.NewServer(api.mux)
		t.Cleanup(srv.Close)

		session := NewSession(New(srv.URL), 7, nil, "Sarah Johnson")
		assert.Equal(t, StateLoading, session.State())

		require.NoError(t, session.Load(context.Background()))
		assert.Equal(t, StateReady, session.State())
		require.NotNil(t, session.Ticket())
		assert.Equal(t, "Login page broken", session.Ticket().Title)
		assert.Len(t, session.Messages(), 1)
	})

	t.Run("load failure keeps loading state and is retryable", func(t *testing.T) {
		api := newFakeAPI()
		srv := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(srv.Close)

		session := NewSession(New(srv.URL), 7, nil, "Sarah Johnson")
		require.Error(t, session.Load(context.Background()))
		assert.Equal(t, StateLoading, session.State())
		assert.Error(t, session.LastError())

		good := httptest.NewServer(api.mux)
		t.Cleanup(good.Close)
		session.client = New(good.URL)
		require.NoError(t, session.Load(context.Background()))
		assert.Equal(t, StateReady, session.State())
		assert.NoError(t, session.LastError())
	})
}

func TestSessionSend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("posts compose buffer and appends", func(t *testing.T) {
		session, api := newLoadedSession(t)

		session.SetCompose("Looking into it now.")
		created, err := session.Send(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Looking into it now.", created.Message)
		assert.Empty(t, session.Compose())
		assert.Len(t, session.Messages(), 2)
		assert.Equal(t, StateReady, session.State())

		require.Len(t, api.postedMessages, 1)
		assert.Equal(t, "agent", api.postedMessages[0].SenderType)
		assert.Equal(t, "Sarah Johnson", api.postedMessages[0].SenderName)
	})

	t.Run("empty compose is rejected before any call", func(t *testing.T) {
		session, api := newLoadedSession(t)

		session.SetCompose("   ")
		_, err := session.Send(ctx)
		assert.ErrorIs(t, err, ErrEmptyCompose)
		assert.Empty(t, api.postedMessages)
	})

	t.Run("not loaded", func(t *testing.T) {
		session := NewSession(New("http://127.0.0.1:0"), 7, nil, "Sarah Johnson")
		session.SetCompose("hello")
		_, err := session.Send(ctx)
		assert.ErrorIs(t, err, ErrNotLoaded)
	})

	t.Run("failure keeps compose and returns to ready", func(t *testing.T) {
		session, api := newLoadedSession(t)
		api.failPost = true

		session.SetCompose("Looking into it now.")
		_, err := session.Send(ctx)
		require.Error(t, err)
		assert.Equal(t, "Looking into it now.", session.Compose())
		assert.Equal(t, StateReady, session.State())
		assert.Error(t, session.LastError())
	})

	t.Run("only one send in flight", func(t *testing.T) {
		release := make(chan struct{})
		mux := http.NewServeMux()
		api := newFakeAPI()
		mux.HandleFunc("GET /api/tickets/7", api.mux.ServeHTTP)
		mux.HandleFunc("GET /api/tickets/7/messages", api.mux.ServeHTTP)
		mux.HandleFunc("POST /api/tickets/7/messages", func(w http.ResponseWriter, r *http.Request) {
			<-release
			json.NewEncoder(w).Encode(ChatMessage{ID: 2, TicketID: 7, Message: "slow"})
		})
		srv := httptest.NewServer(mux)
		t.Cleanup(srv.Close)
		defer close(release)

		session := NewSession(New(srv.URL), 7, nil, "Sarah Johnson")
		require.NoError(t, session.Load(ctx))
		session.SetCompose("first")

		done := make(chan struct{})
		go func() {
			defer close(done)
			session.Send(ctx)
		}()
		require.Eventually(t, func() bool {
			return session.State() == StateSending
		}, time.Second, 5*time.Millisecond)

		_, err := session.Send(ctx)
		assert.ErrorIs(t, err, ErrSendInFlight)

		release <- struct{}{}
		<-done
	})
}

func TestSessionSuggestions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("shows suggestions", func(t *testing.T) {
		session, _ := newLoadedSession(t)

		require.NoError(t, session.RequestSuggestions(ctx))
		assert.Equal(t, StateSuggestionsShown, session.State())
		assert.Equal(t, []string{"first", "second", "third"}, session.Suggestions())
	})

	t.Run("accept copies into compose and never sends", func(t *testing.T) {
		session, api := newLoadedSession(t)
		require.NoError(t, session.RequestSuggestions(ctx))

		require.NoError(t, session.AcceptSuggestion(1))
		assert.Equal(t, "second", session.Compose())
		assert.Empty(t, session.Suggestions())
		assert.Equal(t, StateReady, session.State())
		assert.Empty(t, api.postedMessages)
	})

	t.Run("accept out of range", func(t *testing.T) {
		session, _ := newLoadedSession(t)
		require.NoError(t, session.RequestSuggestions(ctx))

		assert.ErrorIs(t, session.AcceptSuggestion(3), ErrNoSuchSuggestion)
		assert.ErrorIs(t, session.AcceptSuggestion(-1), ErrNoSuchSuggestion)
	})

	t.Run("dismiss clears the panel", func(t *testing.T) {
		session, _ := newLoadedSession(t)
		require.NoError(t, session.RequestSuggestions(ctx))

		session.DismissSuggestions()
		assert.Equal(t, StateReady, session.State())
		assert.Empty(t, session.Suggestions())
	})

	t.Run("not loaded", func(t *testing.T) {
		session := NewSession(New("http://127.0.0.1:0"), 7, nil, "Sarah Johnson")
		assert.ErrorIs(t, session.RequestSuggestions(ctx), ErrNotLoaded)
	})
}
