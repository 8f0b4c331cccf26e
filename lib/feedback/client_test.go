package feedback

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

func TestGenerateSendsChatRequest(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  What a kind friend!  "}}]}`))
	}))
	defer server.Close()

	var outcomes []string
	c := NewClient(Options{
		APIKey:      "test-key",
		BaseURL:     server.URL + "/v1/",
		Temperature: 0.7,
		Observe:     func(o string) { outcomes = append(outcomes, o) },
	})

	res := c.Generate(context.Background(), "My friend helped me study")
	require.True(t, res.OK())
	assert.Equal(t, "What a kind friend!", res.Text)
	assert.Equal(t, []string{"success"}, outcomes)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, 100, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "My friend helped me study")
}

func TestGenerateBlankSkipsRemoteCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := NewClient(Options{APIKey: "k", BaseURL: server.URL})
	res := c.Generate(context.Background(), "  \n\t ")
	assert.True(t, res.OK())
	assert.Empty(t, res.Text)
	assert.False(t, called)
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "quota", status: http.StatusTooManyRequests, body: `{"error":{"message":"quota exceeded"}}`, wantErr: "quota exceeded"},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantErr: "returned 500"},
		{name: "malformed", status: http.StatusOK, body: `{"choices":[`, wantErr: "not valid JSON"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: "no choices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			var outcomes []string
			c := NewClient(Options{
				APIKey:  "k",
				BaseURL: server.URL,
				Observe: func(o string) { outcomes = append(outcomes, o) },
			})
			res := c.Generate(context.Background(), "thanks")
			require.False(t, res.OK())
			assert.ErrorContains(t, res.Err, tt.wantErr)
			assert.Equal(t, Placeholder("en"), res.Display(Placeholder("en")))
			assert.Equal(t, []string{"failure"}, outcomes)
		})
	}
}

func TestGenerateNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(Options{APIKey: "k", BaseURL: url, Timeout: time.Second})
	res := c.Generate(context.Background(), "thanks")
	assert.False(t, res.OK())
	assert.ErrorContains(t, res.Err, "sending chat request")
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	c := NewClient(Options{})
	res := c.Generate(context.Background(), "thanks")
	assert.ErrorIs(t, res.Err, ErrMissingAPIKey)
}

func TestPromptLocale(t *testing.T) {
	assert.Contains(t, Prompt("ko", "엄마"), "감사일기")
	assert.Contains(t, Prompt("en", "mom"), "\"mom\"")
	assert.Equal(t, Placeholder("en"), Placeholder("fr"))
	assert.NotEqual(t, Placeholder("en"), Placeholder("ko"))
}

func TestResultDisplay(t *testing.T) {
	assert.Equal(t, "hi", Success("hi").Display("x"))
	assert.Equal(t, "x", Failure(ErrMissingAPIKey).Display("x"))
}
