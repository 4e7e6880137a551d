package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

func statusPage(startID, count int) []models.MastodonStatus {
	statuses := make([]models.MastodonStatus, count)
	for i := range statuses {
		statuses[i] = models.MastodonStatus{
			ID:        fmt.Sprint(startID + i),
			Content:   fmt.Sprintf("<p>toot %d</p>", startID+i),
			CreatedAt: "2025-06-10T08:30:00.000Z",
		}
	}
	return statuses
}

func TestGetHashtagTimelinePaginates(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "/api/v1/timelines/tag/golang", r.URL.Path)
		require.Equal(t, "40", r.URL.Query().Get("limit"))

		switch r.URL.Query().Get("max_id") {
		case "":
			json.NewEncoder(w).Encode(statusPage(0, 40))
		case "39":
			json.NewEncoder(w).Encode(statusPage(40, 20))
		default:
			json.NewEncoder(w).Encode([]models.MastodonStatus{})
		}
	}))
	defer ts.Close()

	client := NewMastodonClient(ts.URL, "")
	posts, err := client.GetHashtagTimeline(context.Background(), "#golang", 60)

	require.NoError(t, err)
	assert.Len(t, posts, 60)
	assert.Equal(t, 2, requests)
	assert.Equal(t, "toot 0", posts[0].Text)
	assert.Equal(t, "2025-06-10T08:30:00.000Z", posts[0].RawTimestamp)
}

func TestGetHashtagTimelineTrimsToMaxResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(statusPage(0, 40))
	}))
	defer ts.Close()

	client := NewMastodonClient(ts.URL, "")
	posts, err := client.GetHashtagTimeline(context.Background(), "golang", 5)

	require.NoError(t, err)
	assert.Len(t, posts, 5)
}

func TestGetHashtagTimelineStopsWhenEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.MastodonStatus{})
	}))
	defer ts.Close()

	client := NewMastodonClient(ts.URL, "")
	posts, err := client.GetHashtagTimeline(context.Background(), "empty", 100)

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGetHashtagTimelineUnauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewMastodonClient(ts.URL, "bad-token")
	_, err := client.GetHashtagTimeline(context.Background(), "golang", 10)
	assert.Error(t, err)
}

func TestGetHashtagTimelineSendsBearerToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.MastodonStatus{})
	}))
	defer ts.Close()

	client := NewMastodonClient(ts.URL, "secret")
	_, err := client.GetHashtagTimeline(context.Background(), "golang", 10)
	require.NoError(t, err)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "paragraphs", in: "<p>hello</p><p>world</p>", want: "hello world"},
		{name: "links keep text", in: `<a href="https://x.y">label</a>`, want: "label"},
		{name: "plain text untouched", in: "just text", want: "just text"},
		{name: "nested tags", in: "<p>a <span>b</span> c</p>", want: "a b c"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripHTML(tt.in))
		})
	}
}
