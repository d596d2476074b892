package durations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"google.golang.org/api/option"
)

// fakeAPI serves the videos.list shape the fetcher consumes. Durations are
// looked up per requested id; unknown ids are omitted from the response,
// like the real API does for deleted videos.
func fakeAPI(t *testing.T, durations map[string]string, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		ids := strings.Split(r.URL.Query().Get("id"), ",")

		type contentDetails struct {
			Duration string `json:"duration"`
		}
		type item struct {
			ID             string         `json:"id"`
			ContentDetails contentDetails `json:"contentDetails"`
		}
		var items []item
		for _, id := range ids {
			if d, ok := durations[id]; ok {
				items = append(items, item{ID: id, ContentDetails: contentDetails{Duration: d}})
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
	}))
}

func collectDurations(t *testing.T, f *Fetcher, ids []string) map[string]int {
	t.Helper()
	got := make(map[string]int)
	f.FetchDurations(context.Background(), ids, func(id string, seconds int) {
		got[id] = seconds
	})
	return got
}

func TestFetchDurations(t *testing.T) {
	var requests atomic.Int32
	srv := fakeAPI(t, map[string]string{
		"dQw4w9WgXcQ": "PT4M13S",
		"jNQXAC9IVRw": "PT1H2M",
		"9bZkp7q19f0": "PT0S", // zero-length parses to 0 and must be dropped
	}, &requests)
	defer srv.Close()

	f := NewFetcher("test-key", option.WithEndpoint(srv.URL))
	got := collectDurations(t, f, []string{
		"dQw4w9WgXcQ", "jNQXAC9IVRw", "9bZkp7q19f0", "gone-missing",
		"dQw4w9WgXcQ", // duplicate, must not be requested twice
	})

	if len(got) != 2 || got["dQw4w9WgXcQ"] != 253 || got["jNQXAC9IVRw"] != 3720 {
		t.Fatalf("got %v", got)
	}
	if n := requests.Load(); n != 1 {
		t.Fatalf("requests = %d, want 1", n)
	}
}

func TestFetchDurationsBatches(t *testing.T) {
	durations := make(map[string]string)
	var ids []string
	for i := 0; i < 120; i++ {
		id := fmt.Sprintf("video-%03d-xx", i)
		durations[id] = "PT1M"
		ids = append(ids, id)
	}

	var requests atomic.Int32
	srv := fakeAPI(t, durations, &requests)
	defer srv.Close()

	f := NewFetcher("test-key", option.WithEndpoint(srv.URL))
	got := collectDurations(t, f, ids)

	if len(got) != 120 {
		t.Fatalf("resolved %d ids, want 120", len(got))
	}
	// 120 ids at 50 per request
	if n := requests.Load(); n != 3 {
		t.Fatalf("requests = %d, want 3", n)
	}
}

func TestFetchDurationsNoKeyIsNoop(t *testing.T) {
	var requests atomic.Int32
	srv := fakeAPI(t, nil, &requests)
	defer srv.Close()

	f := NewFetcher("", option.WithEndpoint(srv.URL))
	got := collectDurations(t, f, []string{"dQw4w9WgXcQ"})

	if len(got) != 0 || requests.Load() != 0 {
		t.Fatalf("no-key fetch did work: %v, %d requests", got, requests.Load())
	}
}

func TestFetchDurationsEmptyIDs(t *testing.T) {
	var requests atomic.Int32
	srv := fakeAPI(t, nil, &requests)
	defer srv.Close()

	f := NewFetcher("test-key", option.WithEndpoint(srv.URL))
	if got := collectDurations(t, f, nil); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
	if got := collectDurations(t, f, []string{"", ""}); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
	if requests.Load() != 0 {
		t.Fatalf("requests = %d, want 0", requests.Load())
	}
}

func TestFetchDurationsServerErrorKeepsEarlierBatches(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) > 1 {
			http.Error(w, "quota exceeded", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		var items []string
		for _, id := range ids {
			items = append(items, fmt.Sprintf(`{"id":%q,"contentDetails":{"duration":"PT1M"}}`, id))
		}
		fmt.Fprintf(w, `{"items":[%s]}`, strings.Join(items, ","))
	}))
	defer srv.Close()

	var ids []string
	for i := 0; i < 80; i++ {
		ids = append(ids, fmt.Sprintf("video-%03d-xx", i))
	}

	f := NewFetcher("test-key", option.WithEndpoint(srv.URL))
	got := collectDurations(t, f, ids)

	// The first batch of 50 landed before the failure.
	if len(got) != 50 {
		t.Fatalf("resolved %d ids, want the first 50", len(got))
	}
}
