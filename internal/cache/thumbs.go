// Package cache downloads and caches video thumbnails on disk and in
// memory so the catalog grid never re-fetches art it has already shown.
package cache

import (
	"crypto/sha256"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// YouTubeThumbnailURL returns the standard thumbnail address for a video id.
// Used when a catalog entry carries no explicit thumbnail URL.
func YouTubeThumbnailURL(videoID string) string {
	return "https://i.ytimg.com/vi/" + videoID + "/hqdefault.jpg"
}

// ThumbCache provides disk + memory caching for thumbnail images.
type ThumbCache struct {
	cacheDir string
	memory   sync.Map // url -> *ebiten.Image
	loading  sync.Map // url -> *loadEntry (in-flight dedup with waiters)
	sem      chan struct{}
}

// loadEntry tracks in-flight downloads and their waiters.
type loadEntry struct {
	mu        sync.Mutex
	callbacks []func(*ebiten.Image)
}

// NewThumbCache creates a thumbnail cache backed by the given directory.
func NewThumbCache(cacheDir string) (*ThumbCache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, err
	}
	return &ThumbCache{
		cacheDir: cacheDir,
		sem:      make(chan struct{}, 6),
	}, nil
}

// Get returns a cached thumbnail if available, or nil.
func (tc *ThumbCache) Get(url string) *ebiten.Image {
	if v, ok := tc.memory.Load(url); ok {
		return v.(*ebiten.Image)
	}
	return nil
}

// LoadAsync starts loading a thumbnail from URL in the background.
// The callback is called with the image when ready (may be called from a goroutine).
func (tc *ThumbCache) LoadAsync(url string, callback func(*ebiten.Image)) {
	if v, ok := tc.memory.Load(url); ok {
		callback(v.(*ebiten.Image))
		return
	}

	// Dedup in-flight requests: add callback to existing entry or create new one
	entry := &loadEntry{}
	entry.callbacks = append(entry.callbacks, callback)

	if existing, loaded := tc.loading.LoadOrStore(url, entry); loaded {
		existingEntry := existing.(*loadEntry)
		existingEntry.mu.Lock()
		existingEntry.callbacks = append(existingEntry.callbacks, callback)
		existingEntry.mu.Unlock()
		return
	}

	go func() {
		defer tc.loading.Delete(url)

		// Limit concurrent downloads
		tc.sem <- struct{}{}
		defer func() { <-tc.sem }()

		img, err := tc.loadImage(url)
		if err != nil {
			return
		}

		eimg := ebiten.NewImageFromImage(img)
		tc.memory.Store(url, eimg)

		entry.mu.Lock()
		cbs := make([]func(*ebiten.Image), len(entry.callbacks))
		copy(cbs, entry.callbacks)
		entry.mu.Unlock()

		for _, cb := range cbs {
			cb(eimg)
		}
	}()
}

func (tc *ThumbCache) loadImage(url string) (image.Image, error) {
	diskPath := tc.diskPath(url)

	// Try disk cache first
	if f, err := os.Open(diskPath); err == nil {
		defer f.Close()
		img, _, err := image.Decode(f)
		if err == nil {
			return img, nil
		}
		// Corrupt cache file, remove and re-download
		os.Remove(diskPath)
	}

	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("thumbnail download failed: %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(diskPath)
	if err != nil {
		return nil, err
	}

	// Tee to disk while decoding
	tee := io.TeeReader(resp.Body, f)
	img, _, err := image.Decode(tee)
	f.Close()
	if err != nil {
		os.Remove(diskPath)
		return nil, err
	}

	return img, nil
}

func (tc *ThumbCache) diskPath(url string) string {
	h := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", h[:16])
	return filepath.Join(tc.cacheDir, name[:2], name)
}

// CacheDir returns the disk cache directory path.
func (tc *ThumbCache) CacheDir() string {
	return tc.cacheDir
}

// Clear drops all in-memory thumbnails. Disk entries stay.
func (tc *ThumbCache) Clear() {
	tc.memory = sync.Map{}
}
