package diet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeGemini answers generateContent calls with a canned status and body
// and records the last request.
type fakeGemini struct {
	status int
	body   string
	path   string
	sent   string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.path = r.URL.Path
	bs, _ := io.ReadAll(r.Body)
	f.sent = string(bs)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.body)
}

func newTestGemini(t *testing.T, f *fakeGemini) *Gemini {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	g, err := newGemini(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	}, "")
	require.NoError(t, err)
	return g
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "gemini-1.5-flash")
	assert.Error(t, err)
}

func TestGeminiGenerate(t *testing.T) {
	f := &fakeGemini{status: http.StatusOK, body: `{"candidates":[{"content":{"role":"model","parts":[{"text":"  **Dinner:**\n1. Dal\n  "}]}}]}`}
	g := newTestGemini(t, f)
	assert.Equal(t, "gemini-1.5-flash", g.Model())

	out, err := g.Generate(context.Background(), "plan please")
	require.NoError(t, err)
	assert.Equal(t, "**Dinner:**\n1. Dal", out)
	assert.True(t, strings.HasSuffix(f.path, "gemini-1.5-flash:generateContent"), f.path)

	var req struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	require.NoError(t, json.Unmarshal([]byte(f.sent), &req))
	require.Len(t, req.Contents, 1)
	assert.Equal(t, "plan please", req.Contents[0].Parts[0].Text)
}

func TestGeminiEmptyAnswer(t *testing.T) {
	g := newTestGemini(t, &fakeGemini{status: http.StatusOK, body: `{"candidates":[]}`})
	_, err := g.Generate(context.Background(), "plan please")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestGeminiAPIError(t *testing.T) {
	g := newTestGemini(t, &fakeGemini{status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"bad key","status":"INVALID_ARGUMENT"}}`})
	_, err := g.Generate(context.Background(), "plan please")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyAnswer)
	assert.Contains(t, err.Error(), "gemini generate failed")
}
