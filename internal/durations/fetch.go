package durations

import (
	"context"
	"log"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// The Data API accepts at most 50 video ids per videos.list call.
const maxIDsPerRequest = 50

// Fetcher looks up video durations from the YouTube Data API v3. It is
// best-effort: any failure aborts the remaining work silently, and results
// already delivered stand.
type Fetcher struct {
	apiKey string
	opts   []option.ClientOption
}

// NewFetcher creates a fetcher. Extra client options are for tests
// (endpoint override); production callers pass only the key.
func NewFetcher(apiKey string, opts ...option.ClientOption) *Fetcher {
	return &Fetcher{apiKey: apiKey, opts: opts}
}

// FetchDurations resolves durations for the given provider ids in batches,
// calling onEach synchronously for every id with a positive parsed duration.
// Ids are de-duplicated; a missing credential or empty id set is a no-op.
// Returning means completion, successful or not; errors are never surfaced.
func (f *Fetcher) FetchDurations(ctx context.Context, ids []string, onEach func(id string, seconds int)) {
	if f.apiKey == "" || len(ids) == 0 {
		return
	}

	seen := make(map[string]bool, len(ids))
	unique := ids[:0:0]
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return
	}

	opts := append([]option.ClientOption{option.WithAPIKey(f.apiKey)}, f.opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		log.Printf("durations: youtube service: %v", err)
		return
	}

	for start := 0; start < len(unique); start += maxIDsPerRequest {
		end := start + maxIDsPerRequest
		if end > len(unique) {
			end = len(unique)
		}
		batch := unique[start:end]

		resp, err := svc.Videos.List([]string{"contentDetails"}).
			Id(batch...).
			Context(ctx).
			Do()
		if err != nil {
			// Prior batches have already been delivered; stop here.
			log.Printf("durations: videos.list: %v", err)
			return
		}

		for _, item := range resp.Items {
			if item.Id == "" || item.ContentDetails == nil {
				continue
			}
			secs := ParseISODuration(item.ContentDetails.Duration)
			if secs > 0 {
				onEach(item.Id, secs)
			}
		}
	}
}
