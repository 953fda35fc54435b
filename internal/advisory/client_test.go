package advisory

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

func newTestClient(url string) *Client {
	return NewClient(Config{
		BaseURL: url,
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash-exp",
		Timeout: 2 * time.Second,
	})
}

func TestCompleteSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "Recomendación: "}, {"text": "más fibra."}},
				}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).Complete(context.Background(), "hola")

	assert.True(t, res.OK())
	assert.Equal(t, "Recomendación: más fibra.", res.Text)
	assert.Equal(t, "/v1beta/models/gemini-2.0-flash-exp:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "hola", gotBody.Contents[0].Parts[0].Text)
	assert.Len(t, gotBody.Tools, 1, "search grounding tool always requested")
}

func TestCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).Complete(context.Background(), "hola")
	assert.False(t, res.OK())
	assert.Equal(t, FailureMessage, res.Failure)
	assert.Empty(t, res.Text)
}

func TestCompleteEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).Complete(context.Background(), "hola")
	assert.False(t, res.OK())
}

func TestCompleteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	res := newTestClient(srv.URL).Complete(context.Background(), "hola")
	assert.False(t, res.OK())
	assert.Equal(t, FailureMessage, res.Failure)
}
