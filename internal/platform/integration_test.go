package platform_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/internal/apitest"
	"github.com/aretw0/folio/internal/platform"
	"github.com/aretw0/folio/pkg/adapters/notify"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/portfolio"
	"github.com/aretw0/folio/pkg/typed"
)

func setupService(t *testing.T, seed map[string][]core.Item) (*core.Service, *apitest.Server, *notify.Recorder) {
	t.Helper()
	srv := apitest.NewServer(seed)
	t.Cleanup(srv.Close)

	rec := &notify.Recorder{}
	svc, err := platform.New(srv.BaseURL(),
		platform.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		platform.WithNotifier(rec),
		platform.WithTimeout(2*time.Second),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, svc.Start(ctx))
	t.Cleanup(func() {
		_ = svc.Stop(context.Background())
		cancel()
	})
	return svc, srv, rec
}

func seedCourses() map[string][]core.Item {
	return map[string][]core.Item{
		"courses": {{
			"_id":          "42",
			"title":        "Go",
			"image":        "http://img/go",
			"description":  "gophers",
			"link":         "http://go.dev",
			"technologies": []string{"Go"},
		}},
		"experiences": {},
	}
}

func TestService_CreateRoundTrip(t *testing.T) {
	svc, srv, rec := setupService(t, seedCourses())
	admin := portfolio.NewAdmin(svc)

	err := admin.Courses.Create(context.Background(), typed.Form{
		"title":        "X",
		"imageURL":     "http://i",
		"description":  "d",
		"link":         "http://l",
		"technologies": "React, Node",
	})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/portfolio/add-course", reqs[0].Path)
	assert.Equal(t, core.Item{
		"title":        "X",
		"image":        "http://i",
		"description":  "d",
		"link":         "http://l",
		"technologies": []any{"React", "Node"},
	}, reqs[0].Body)

	require.Eventually(t, func() bool {
		list, err := admin.Courses.List()
		return err == nil && len(list) == 2 && !svc.Store().ReloadRequested()
	}, 2*time.Second, 5*time.Millisecond)

	list, err := admin.Courses.List()
	require.NoError(t, err)
	assert.Equal(t, "X", list[1].Data.Title)
	assert.Equal(t, "101", list[1].ID, "identity comes from the server")
	assert.Equal(t, []string{"React", "Node"}, list[1].Data.Technologies)
	assert.Equal(t, []string{"course added successfully"}, rec.Messages(notify.LevelSuccess))
	assert.Equal(t, 2, srv.Fetches())
}

func TestService_EditorUpdate(t *testing.T) {
	svc, srv, _ := setupService(t, seedCourses())
	admin := portfolio.NewAdmin(svc)

	current, err := admin.Courses.Get("42")
	require.NoError(t, err)

	ed := admin.Courses.Edit(current.Raw)
	assert.Equal(t, "Go", ed.Form()["technologies"])
	ed.Set("technologies", "Go, Wasm")
	require.NoError(t, ed.Submit(context.Background()))
	assert.False(t, ed.Open())

	require.Eventually(t, func() bool {
		got, err := admin.Courses.Get("42")
		return err == nil && len(got.Data.Technologies) == 2
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "42", srv.Requests()[0].Body["_id"])
}

func TestService_DeleteRejected(t *testing.T) {
	svc, srv, rec := setupService(t, seedCourses())
	admin := portfolio.NewAdmin(svc)
	before := svc.Snapshot().Document

	err := admin.Courses.Delete(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrRejected))
	assert.Equal(t, []string{"course not found"}, rec.Messages(notify.LevelError))

	assert.False(t, svc.Store().ReloadRequested())
	assert.False(t, svc.Store().Loading())
	assert.Equal(t, before, svc.Snapshot().Document)
	assert.Equal(t, 1, srv.Fetches())
}

func TestService_TransportFaultOnStartup(t *testing.T) {
	srv := apitest.NewServer(nil)
	defer srv.Close()
	srv.SetFail(http.StatusServiceUnavailable)

	rec := &notify.Recorder{}
	svc, err := platform.New(srv.BaseURL(),
		platform.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		platform.WithNotifier(rec),
	)
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))
	defer svc.Stop(context.Background())

	snap := svc.Snapshot()
	assert.Nil(t, snap.Document)
	assert.False(t, snap.Loading)
	assert.Len(t, rec.Messages(notify.LevelError), 1)

	// Recovery: the next reload populates the document.
	srv.SetFail(0)
	svc.Store().RequestReload()
	assert.Eventually(t, func() bool { return svc.Snapshot().Document != nil }, 2*time.Second, 5*time.Millisecond)
}

func TestNew_Validation(t *testing.T) {
	_, err := platform.New("")
	assert.Error(t, err)

	_, err = platform.New("ftp://example.com")
	assert.Error(t, err)

	svc, err := platform.New("", platform.WithAPI(apiStub{}))
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

type apiStub struct{}

func (apiStub) FetchDocument(context.Context) (*core.Document, error) { return core.NewDocument(), nil }
func (apiStub) Create(context.Context, string, core.Item) (core.Envelope, error) {
	return core.Envelope{Success: true}, nil
}
func (apiStub) Update(context.Context, string, core.Item) (core.Envelope, error) {
	return core.Envelope{Success: true}, nil
}
func (apiStub) Delete(context.Context, string, string) (core.Envelope, error) {
	return core.Envelope{Success: true}, nil
}
