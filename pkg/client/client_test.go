package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient()
	assert.Equal(t, "http://localhost:8000/api/v1", c.BaseURL())
	assert.Zero(t, c.httpClient.Timeout)
}

func TestNewClient_Options(t *testing.T) {
	hc := &http.Client{}
	c := NewClient(
		WithBaseURL("http://example.com/api/v1/"),
		WithHTTPClient(hc),
		WithTimeout(5*time.Second),
	)
	assert.Equal(t, "http://example.com/api/v1", c.BaseURL())
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.Zero(t, hc.Timeout)
}

func TestNewClient_TimeoutOrder(t *testing.T) {
	transport := &http.Transport{}

	before := NewClient(WithTimeout(2*time.Second), WithHTTPClient(&http.Client{Transport: transport}))
	assert.Equal(t, 2*time.Second, before.httpClient.Timeout)
	assert.Same(t, transport, before.httpClient.Transport)

	after := NewClient(WithHTTPClient(&http.Client{Transport: transport}), WithTimeout(2*time.Second))
	assert.Equal(t, 2*time.Second, after.httpClient.Timeout)
	assert.Same(t, transport, after.httpClient.Transport)
}

func TestNewClient_TimeoutLeavesDefaultClient(t *testing.T) {
	original := http.DefaultClient.Timeout

	c := NewClient(WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.NotSame(t, http.DefaultClient, c.httpClient)
	assert.Equal(t, original, http.DefaultClient.Timeout)
}

func TestClient_FetchCategories(t *testing.T) {
	raw := `{
		"industries": [{"value":"fintech","label":"Fintech"},{"value":"saas","label":"SaaS"}],
		"roles": [{"value":"ai_engineer","label":"AI Engineer"}],
		"difficulties": [{"value":"medium","label":"medium"}]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/category", r.URL.Path)
		w.Write([]byte(raw))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL + "/api/v1"))
	got, err := c.FetchCategories(context.Background())
	require.NoError(t, err)

	var want Categories
	require.NoError(t, json.Unmarshal([]byte(raw), &want))
	assert.Equal(t, &want, got)
	assert.Equal(t, "SaaS", got.Industries[1].Label)
}

func TestClient_FetchCategories_NonSuccess(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"detail":"ignored"}`))
		}))

		c := NewClient(WithBaseURL(srv.URL))
		_, err := c.FetchCategories(context.Background())
		require.Error(t, err)
		assert.Equal(t, "HTTP error! status: "+strconv.Itoa(status), err.Error())
		srv.Close()
	}
}

func TestClient_FetchCategories_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.FetchCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal response")
}

func TestClient_FetchCategories_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(WithBaseURL(url))
	_, err := c.FetchCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestClient_GenerateChallenge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/challenge", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{
			"industry":   "fintech",
			"role":       "backend_engineer",
			"difficulty": "hard",
		}, body)

		w.Write([]byte(`{"result":"Build a ledger."}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	got, err := c.GenerateChallenge(context.Background(), "fintech", "backend_engineer", "hard")
	require.NoError(t, err)
	assert.Equal(t, "Build a ledger.", got)
}

func TestClient_GenerateChallenge_PassesInputsUnchecked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "", body["industry"])
		assert.Equal(t, "nonsense", body["role"])
		w.Write([]byte(`{"result":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.GenerateChallenge(context.Background(), "", "nonsense", "")
	require.NoError(t, err)
}

func TestClient_GenerateChallenge_MissingResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Invalid industry"}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	got, err := c.GenerateChallenge(context.Background(), "x", "y", "z")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestClient_GenerateChallenge_ResultTypes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"result":"Plan a rollout."}`, "Plan a rollout."},
		{"number", `{"result":42}`, "42"},
		{"boolean", `{"result":true}`, "true"},
		{"object", `{"result": {"text": "x"}}`, `{"text":"x"}`},
		{"null", `{"result":null}`, ""},
		{"array body", `["a"]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewClient(WithBaseURL(srv.URL)).GenerateChallenge(context.Background(), "a", "b", "c")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_GenerateChallenge_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>ok</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).GenerateChallenge(context.Background(), "a", "b", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal response")
}

func TestClient_GenerateChallenge_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail", http.StatusBadRequest, `{"detail":"bad input"}`, "Something went wrong. bad input"},
		{"message", http.StatusTooManyRequests, `{"message":"rate limited"}`, "Something went wrong. rate limited"},
		{"detail wins over message", http.StatusBadRequest, `{"message":"m","detail":"d"}`, "Something went wrong. d"},
		{"empty detail falls through", http.StatusBadRequest, `{"detail":"","message":"m"}`, "Something went wrong. m"},
		{"no known field", http.StatusInternalServerError, `{"error":"boom"}`, "Something went wrong. Server responded with status 500"},
		{"empty body", http.StatusServiceUnavailable, ``, "Something went wrong. Server responded with status 503"},
		{"html body", http.StatusServiceUnavailable, `<html>down</html>`, "Something went wrong. Server responded with status 503"},
		{"json null", http.StatusBadGateway, `null`, "Something went wrong. Server responded with status 502"},
		{"json array", http.StatusBadGateway, `[1,2]`, "Something went wrong. Server responded with status 502"},
		{"structured detail", http.StatusUnprocessableEntity, `{"detail": [{"loc": ["body","role"], "msg": "field required"}]}`,
			`Something went wrong. [{"loc":["body","role"],"msg":"field required"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(WithBaseURL(srv.URL))
			_, err := c.GenerateChallenge(context.Background(), "a", "b", "c")
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestClient_GenerateChallenge_NotMemoized(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"result": "challenge " + strconv.Itoa(int(n))})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	first, err := c.GenerateChallenge(context.Background(), "a", "b", "c")
	require.NoError(t, err)
	second, err := c.GenerateChallenge(context.Background(), "a", "b", "c")
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "challenge 1", first)
	assert.Equal(t, "challenge 2", second)
}

func TestClient_GenerateChallenge_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.GenerateChallenge(ctx, "a", "b", "c")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
