package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/adapters/httpapi"
	"github.com/aretw0/folio/pkg/core"
)

type seen struct {
	Method    string
	Path      string
	Body      map[string]any
	RequestID string
	Auth      string
}

func newServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httpapi.Client, *[]seen) {
	t.Helper()
	var requests []seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := seen{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get("X-Request-ID"),
			Auth:      r.Header.Get("Authorization"),
		}
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &s.Body)
			}
		}
		requests = append(requests, s)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := httpapi.NewClient(httpapi.Config{
		BaseURL: srv.URL + "/api/portfolio/",
		Token:   "secret",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return client, &requests
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_FetchDocument(t *testing.T) {
	client, requests := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"courses":     []map[string]any{{"_id": "1", "title": "Go"}},
			"experiences": []map[string]any{},
		})
	})

	doc, err := client.FetchDocument(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Go", doc.Collection("courses")[0]["title"])
	assert.Empty(t, doc.Collection("experiences"))

	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/portfolio/get-portfolio-data", req.Path)
	assert.NotEmpty(t, req.RequestID)
	assert.Equal(t, "Bearer secret", req.Auth)
}

func TestClient_MutationEndpoints(t *testing.T) {
	client, requests := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, core.Envelope{Success: true, Message: "done"})
	})
	ctx := context.Background()

	env, err := client.Create(ctx, "course", core.Item{"title": "X", "technologies": []string{"React", "Node"}})
	require.NoError(t, err)
	assert.Equal(t, core.Envelope{Success: true, Message: "done"}, env)

	_, err = client.Update(ctx, "course", core.Item{"_id": "7", "title": "Y"})
	require.NoError(t, err)

	_, err = client.Delete(ctx, "course", "42")
	require.NoError(t, err)

	require.Len(t, *requests, 3)
	create, update, del := (*requests)[0], (*requests)[1], (*requests)[2]

	assert.Equal(t, http.MethodPost, create.Method)
	assert.Equal(t, "/api/portfolio/add-course", create.Path)
	assert.Equal(t, []any{"React", "Node"}, create.Body["technologies"])

	assert.Equal(t, http.MethodPut, update.Method)
	assert.Equal(t, "/api/portfolio/update-course", update.Path)
	assert.Equal(t, "7", update.Body["_id"])

	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Equal(t, "/api/portfolio/delete-course", del.Path)
	assert.Equal(t, map[string]any{"_id": "42"}, del.Body)

	assert.NotEqual(t, create.RequestID, update.RequestID)
}

func TestClient_RejectionIsNotAFault(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, core.Envelope{Success: false, Message: "Not found"})
	})

	env, err := client.Delete(context.Background(), "course", "42")
	require.NoError(t, err)
	assert.False(t, env.Success)
	assert.Equal(t, "Not found", env.Message)
}

func TestClient_TransportFaults(t *testing.T) {
	tests := []struct {
		name    string
		handler func(w http.ResponseWriter, r *http.Request)
		status  int
		msg     string
	}{
		{
			name: "server error with envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusInternalServerError, core.Envelope{Message: "db down"})
			},
			status: 500,
			msg:    "db down",
		},
		{
			name: "plain text error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusUnauthorized)
			},
			status: 401,
			msg:    "nope",
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("<html>"))
			},
			status: 200,
			msg:    "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newServer(t, tt.handler)

			_, err := client.Create(context.Background(), "course", core.Item{"title": "X"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrTransport))

			var fault *core.TransportFault
			require.True(t, errors.As(err, &fault))
			assert.Equal(t, tt.status, fault.Status)
			assert.Contains(t, fault.Error(), tt.msg)

			st := client.State().(httpapi.ClientState)
			assert.Equal(t, 1, st.Faults)
		})
	}
}

func TestClient_NetworkFault(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := httpapi.NewClient(httpapi.Config{BaseURL: url, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	_, err := client.FetchDocument(context.Background())
	require.Error(t, err)

	var fault *core.TransportFault
	require.True(t, errors.As(err, &fault))
	assert.Zero(t, fault.Status)
}
