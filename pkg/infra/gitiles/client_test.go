package gitiles_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
	"github.com/m-mizutani/vendorfetch/pkg/infra/gitiles"
)

func TestClient_URL(t *testing.T) {
	client := gitiles.NewClient("https://example.com/repo/+/refs/tags/v1/dir/")
	gt.Equal(t, client.URL("source/a.c"), "https://example.com/repo/+/refs/tags/v1/dir/source/a.c?format=TEXT")
}

func TestClient_FetchOnce_Success(t *testing.T) {
	var gotPath, gotFormat string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFormat = r.URL.Query().Get("format")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("aGVsbG8="))
	}))
	defer server.Close()

	client := gitiles.NewClient(server.URL + "/base/")
	content, err := client.FetchOnce(context.Background(), "inc/basetype.h")

	gt.NoError(t, err)
	gt.Equal(t, string(content), "hello")
	gt.Equal(t, gotPath, "/base/inc/basetype.h")
	gt.Equal(t, gotFormat, "TEXT")
}

func TestClient_FetchOnce_TransportError(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusTooManyRequests} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte("error page"))
			}))
			defer server.Close()

			client := gitiles.NewClient(server.URL + "/")
			content, err := client.FetchOnce(context.Background(), "NOTICE")

			gt.Error(t, err)
			gt.Value(t, content).Nil()
			gt.True(t, goerr.HasTag(err, types.ErrTagTransport))

			var transportErr *types.TransportError
			gt.True(t, errors.As(err, &transportErr))
			gt.Equal(t, transportErr.Status, status)
		})
	}
}

func TestClient_FetchOnce_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>definitely not base64</html>"))
	}))
	defer server.Close()

	client := gitiles.NewClient(server.URL + "/")
	_, err := client.FetchOnce(context.Background(), "NOTICE")

	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagDecode))
	gt.False(t, goerr.HasTag(err, types.ErrTagTransport))
}

func TestClient_FetchOnce_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := gitiles.NewClient(url + "/")
	_, err := client.FetchOnce(context.Background(), "NOTICE")

	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagNetwork))
}

func TestClient_FetchOnce_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	client := gitiles.NewClient(server.URL+"/", gitiles.WithTimeout(50*time.Millisecond))
	_, err := client.FetchOnce(context.Background(), "NOTICE")

	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagNetwork))
}

func TestClient_FetchOnce_UserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(""))
	}))
	defer server.Close()

	client := gitiles.NewClient(server.URL+"/", gitiles.WithUserAgent("test-agent"))
	content, err := client.FetchOnce(context.Background(), "empty")

	gt.NoError(t, err)
	gt.Equal(t, len(content), 0)
	gt.Equal(t, gotUA, "test-agent")
}
