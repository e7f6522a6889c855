package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spanishArticle = "El banco central de México elevó la tasa de interés por tercera vez en el año, y dijo que la inflación se mantiene por encima de la meta."

// fakeAnthropic answers each request with the next queued reply.
type fakeAnthropic struct {
	replies []fakeReply
	calls   atomic.Int32
	prompts []string
}

type fakeReply struct {
	status int
	text   string
}

func (f *fakeAnthropic) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.prompts = append(f.prompts, req.Messages[0].Content)

		n := int(f.calls.Add(1)) - 1
		reply := f.replies[min(n, len(f.replies)-1)]
		if reply.status != http.StatusOK {
			w.WriteHeader(reply.status)
			w.Write([]byte(`{"error":{"type":"x","message":"boom"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": reply.text}},
		})
	}
}

func newTestClient(t *testing.T, f *fakeAnthropic) *Client {
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	return NewClient(Config{Endpoint: srv.URL, APIKey: "test-key", Model: "test-model"})
}

func TestSummarize_SameLanguage(t *testing.T) {
	f := &fakeAnthropic{replies: []fakeReply{
		{http.StatusOK, "Resumen: El banco central de México elevó la tasa de interés y advirtió que la inflación sigue alta."},
	}}
	c := newTestClient(t, f)

	got, err := c.Summarize(context.Background(), spanishArticle, "Banxico eleva la tasa")
	require.NoError(t, err)
	assert.Equal(t, "El banco central de México elevó la tasa de interés y advirtió que la inflación sigue alta.", got)
	assert.EqualValues(t, 1, f.calls.Load())
	assert.Contains(t, f.prompts[0], "Banxico eleva la tasa")
	assert.Equal(t, 1, c.Stats.Snapshot().Count)
}

func TestSummarize_RetriesWithForcedLanguage(t *testing.T) {
	f := &fakeAnthropic{replies: []fakeReply{
		{http.StatusOK, "The central bank of Mexico raised its interest rate and said that inflation is still above the target for the year."},
		{http.StatusOK, "El banco central de México elevó la tasa y dijo que la inflación sigue por encima de la meta."},
	}}
	c := newTestClient(t, f)

	got, err := c.Summarize(context.Background(), spanishArticle, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "El banco central"))
	require.EqualValues(t, 2, f.calls.Load())
	assert.Contains(t, f.prompts[1], "Escribe el resumen en Español")
}

func TestSummarize_ForcedRetryFailureKeepsFirst(t *testing.T) {
	first := "The central bank of Mexico raised its interest rate and said that inflation is still above the target."
	f := &fakeAnthropic{replies: []fakeReply{
		{http.StatusOK, first},
		{http.StatusInternalServerError, ""},
	}}
	c := newTestClient(t, f)

	got, err := c.Summarize(context.Background(), spanishArticle, "")
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestSummarize_ErrorClassification(t *testing.T) {
	cases := []struct {
		status    int
		retryable bool
		contains  string
	}{
		{http.StatusUnauthorized, false, "API key"},
		{http.StatusForbidden, false, "test-model"},
		{http.StatusTooManyRequests, true, "429"},
		{http.StatusBadGateway, true, "502"},
		{http.StatusBadRequest, false, "400"},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			f := &fakeAnthropic{replies: []fakeReply{{tc.status, ""}}}
			c := newTestClient(t, f)

			_, err := c.Summarize(context.Background(), spanishArticle, "")
			require.Error(t, err)
			var se *SummarizationError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.status, se.StatusCode)
			assert.Equal(t, tc.retryable, IsRetryable(err))
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestSummarize_TransportFailureIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(Config{Endpoint: srv.URL, APIKey: "k", Model: "m"})

	_, err := c.Summarize(context.Background(), "text", "")
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, 1, c.Stats.Snapshot().Failures)
}

func TestSummarize_CanceledContext(t *testing.T) {
	f := &fakeAnthropic{replies: []fakeReply{{http.StatusOK, "x"}}}
	c := newTestClient(t, f)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Summarize(ctx, "text", "")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsRetryable(err))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{Model: "m"})
	assert.Equal(t, DefaultEndpoint, c.cfg.Endpoint)
	assert.Equal(t, 300, c.cfg.MaxTokens)
	assert.Equal(t, "m", c.Model())
}
