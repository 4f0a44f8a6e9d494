package nyne

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_Enrichment(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/person/enrichment", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		assert.Equal(t, "test-secret", r.Header.Get("X-API-Secret"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"request_id": "req-123"},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", "test-secret", WithBaseURL(srv.URL))
	id, err := c.Submit(context.Background(), JobSpec{
		Type:  JobEnrichment,
		Email: "jane@acme.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "req-123", id)
	assert.Equal(t, "jane@acme.com", gotBody["email"])
	assert.Equal(t, []any{"all"}, gotBody["newsfeed"])
	assert.Equal(t, true, gotBody["ai_enhanced_search"])
	_, hasSocial := gotBody["social_media_url"]
	assert.False(t, hasSocial)
}

func TestSubmit_FollowingPayload(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/person/interactions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"request_id": "req-456"},
		})
	}))
	defer srv.Close()

	c := NewClient("k", "s", WithBaseURL(srv.URL))
	_, err := c.Submit(context.Background(), JobSpec{
		Type:           JobFollowing,
		SocialMediaURL: "https://x.com/janedoe",
		MaxResults:     500,
	})

	require.NoError(t, err)
	assert.Equal(t, "following", gotBody["type"])
	assert.Equal(t, "https://x.com/janedoe", gotBody["social_media_url"])
	assert.EqualValues(t, 500, gotBody["max_results"])
}

func TestSubmit_ArticleSearchPayload(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/person/articlesearch", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"request_id": "req-789"},
		})
	}))
	defer srv.Close()

	c := NewClient("k", "s", WithBaseURL(srv.URL))
	_, err := c.Submit(context.Background(), JobSpec{
		Type:    JobArticleSearch,
		Name:    "Jane Doe",
		Company: "Acme",
		Limit:   15,
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", gotBody["name"])
	assert.Equal(t, "Acme", gotBody["company"])
	assert.Equal(t, "recent", gotBody["sort"])
	assert.EqualValues(t, 15, gotBody["limit"])
}

func TestSubmit_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "invalid email",
		})
	}))
	defer srv.Close()

	c := NewClient("k", "s", WithBaseURL(srv.URL))
	_, err := c.Submit(context.Background(), JobSpec{Type: JobEnrichment, Email: "nope"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email")
}

func TestSubmit_UnknownJobType(t *testing.T) {
	c := NewClient("k", "s")
	_, err := c.Submit(context.Background(), JobSpec{Type: JobType("mystery")})
	require.Error(t, err)
}

func TestPoll_Completed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "req-123", r.URL.Query().Get("request_id"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"status": "completed",
				"result": map[string]any{"firstname": "Jane"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("k", "s", WithBaseURL(srv.URL))
	status, err := c.Poll(context.Background(), JobEnrichment, "req-123")

	require.NoError(t, err)
	assert.Equal(t, JobDone, status.State)
	assert.Contains(t, string(status.Result), "Jane")
}

func TestPoll_Pending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"status": "processing"},
		})
	}))
	defer srv.Close()

	c := NewClient("k", "s", WithBaseURL(srv.URL))
	status, err := c.Poll(context.Background(), JobFollowing, "req-1")

	require.NoError(t, err)
	assert.Equal(t, JobPending, status.State)
}

func TestPoll_Failed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"error":   "profile is private",
			"data":    map[string]any{"status": "failed"},
		})
	}))
	defer srv.Close()

	c := NewClient("k", "s", WithBaseURL(srv.URL))
	status, err := c.Poll(context.Background(), JobFollowing, "req-1")

	require.NoError(t, err)
	assert.Equal(t, JobFailed, status.State)
	assert.Equal(t, "profile is private", status.Reason)
}

func TestPoll_HTTPErrorIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("k", "s", WithBaseURL(srv.URL))
	_, err := c.Poll(context.Background(), JobEnrichment, "req-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
}
