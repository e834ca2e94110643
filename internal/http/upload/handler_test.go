package upload_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uploadHandler "github.com/sentra-hq/sentra-cms/internal/http/upload"
	"github.com/sentra-hq/sentra-cms/internal/scripts"
	"github.com/sentra-hq/sentra-cms/internal/storage"
)

type fakeStore struct {
	generateFunc func(ctx context.Context, fileName, fileType string) (*storage.Upload, error)
	fixFunc      func(ctx context.Context, fileName string) (string, error)
	fixAllFunc   func(ctx context.Context) (*storage.ACLReport, error)
}

func (f *fakeStore) GenerateUploadURL(ctx context.Context, fileName, fileType string) (*storage.Upload, error) {
	if f.generateFunc != nil {
		return f.generateFunc(ctx, fileName, fileType)
	}
	return nil, errors.New("not configured")
}

func (f *fakeStore) FixObjectACL(ctx context.Context, fileName string) (string, error) {
	if f.fixFunc != nil {
		return f.fixFunc(ctx, fileName)
	}
	return "", errors.New("not configured")
}

func (f *fakeStore) FixAllObjectACLs(ctx context.Context) (*storage.ACLReport, error) {
	if f.fixAllFunc != nil {
		return f.fixAllFunc(ctx)
	}
	return nil, errors.New("not configured")
}

func newServer(store *fakeStore) *httptest.Server {
	h := uploadHandler.NewHandler(store, scripts.NewRunner(store, nil, time.Second))

	r := chi.NewRouter()
	r.Route("/api", h.Routes)

	return httptest.NewServer(r)
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return resp, decoded
}

func TestHandler_GenerateUploadURL(t *testing.T) {
	store := &fakeStore{
		generateFunc: func(_ context.Context, fileName, fileType string) (*storage.Upload, error) {
			assert.Equal(t, "a.png", fileName)
			assert.Equal(t, "image/png", fileType)

			key := "1700000000000-a.png"
			return &storage.Upload{
				UploadURL: "https://bucket.example.com/" + key + "?signature=abc",
				FileName:  key,
				PublicURL: "https://files.sentra.dev/" + key,
			}, nil
		},
	}
	ts := newServer(store)
	defer ts.Close()

	resp, body := postJSON(t, ts.URL+"/api/generate-upload-url", `{"fileName":"a.png","fileType":"image/png"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, "a.png", body["fileName"])
	assert.Contains(t, body["publicUrl"], body["fileName"])
	assert.NotEmpty(t, body["uploadUrl"])
}

func TestHandler_GenerateUploadURL_MissingFields(t *testing.T) {
	ts := newServer(&fakeStore{})
	defer ts.Close()

	resp, body := postJSON(t, ts.URL+"/api/generate-upload-url", `{"fileName":"a.png"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestHandler_FixFileACL(t *testing.T) {
	store := &fakeStore{
		fixFunc: func(_ context.Context, fileName string) (string, error) {
			return "https://files.sentra.dev/" + fileName, nil
		},
	}
	ts := newServer(store)
	defer ts.Close()

	resp, body := postJSON(t, ts.URL+"/api/fix-file-acl", `{"fileName":"1700000000000-a.png"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "https://files.sentra.dev/1700000000000-a.png", body["fileUrl"])
}

func TestHandler_FixAllFiles(t *testing.T) {
	store := &fakeStore{
		fixAllFunc: func(context.Context) (*storage.ACLReport, error) {
			return &storage.ACLReport{Fixed: 2, Failed: 1, Total: 3}, nil
		},
	}
	ts := newServer(store)
	defer ts.Close()

	resp, body := postJSON(t, ts.URL+"/api/fix-all-files", `{}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["fixedCount"])
	assert.Equal(t, float64(1), body["failedCount"])
	assert.Equal(t, float64(3), body["totalFiles"])
}

func TestHandler_RunScript(t *testing.T) {
	store := &fakeStore{
		fixAllFunc: func(context.Context) (*storage.ACLReport, error) {
			return &storage.ACLReport{Fixed: 2, Failed: 1, Total: 3}, nil
		},
	}
	ts := newServer(store)
	defer ts.Close()

	t.Run("KnownScript", func(t *testing.T) {
		resp, body := postJSON(t, ts.URL+"/api/run-script", `{"script":"fix-file-acls"}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(2), body["fixedCount"])
		assert.Contains(t, body["output"], "fixed 2 of 3")
	})

	t.Run("UnknownScript", func(t *testing.T) {
		resp, body := postJSON(t, ts.URL+"/api/run-script", `{"script":"drop-tables"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "unknown script")
	})

	t.Run("Timeout", func(t *testing.T) {
		slow := &fakeStore{
			fixAllFunc: func(ctx context.Context) (*storage.ACLReport, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}
		slowTS := newServer(slow)
		defer slowTS.Close()

		resp, body := postJSON(t, slowTS.URL+"/api/run-script", `{"script":"fix-file-acls"}`)

		assert.Equal(t, http.StatusRequestTimeout, resp.StatusCode)
		assert.Equal(t, "script timed out", body["error"])
	})
}
