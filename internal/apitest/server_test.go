package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/core"
)

func send(t *testing.T, method, url string, body core.Item) core.Envelope {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(method, url, bytes.NewReader(raw))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env core.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestServer_RequestLogIsolatedFromDocument(t *testing.T) {
	srv := NewServer(map[string][]core.Item{"courses": {}})
	defer srv.Close()

	env := send(t, http.MethodPost, srv.BaseURL()+"/add-course", core.Item{"title": "Go"})
	require.True(t, env.Success)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.NotContains(t, reqs[0].Body, core.IDKey, "the assigned id is not part of what the client sent")

	env = send(t, http.MethodPut, srv.BaseURL()+"/update-course", core.Item{core.IDKey: "101", "title": "Go 2"})
	require.True(t, env.Success)

	reqs = srv.Requests()
	require.Len(t, reqs, 2)
	reqs[1].Body["title"] = "tampered"

	var doc map[string][]core.Item
	resp, err := http.Get(srv.BaseURL() + "/get-portfolio-data")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Len(t, doc["courses"], 1)
	assert.Equal(t, "Go 2", doc["courses"][0]["title"])
	assert.Equal(t, "101", doc["courses"][0][core.IDKey])
}

func TestServer_RejectAndFail(t *testing.T) {
	srv := NewServer(nil)
	defer srv.Close()

	srv.SetReject("course not found")
	env := send(t, http.MethodDelete, srv.BaseURL()+"/delete-course", core.Item{core.IDKey: "1"})
	assert.False(t, env.Success)
	assert.Equal(t, "course not found", env.Message)

	srv.SetReject("")
	srv.SetFail(http.StatusServiceUnavailable)
	resp, err := http.Get(srv.BaseURL() + "/get-portfolio-data")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, 0, srv.Fetches())
}
