package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/goregular"

	"tubecouch/assets/icon"
	"tubecouch/internal/app"
	"tubecouch/internal/cache"
	"tubecouch/internal/catalog"
	"tubecouch/internal/config"
	"tubecouch/internal/durations"
	"tubecouch/internal/player"
	"tubecouch/internal/session"
	"tubecouch/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := ui.InitFonts(goregular.TTF); err != nil {
		log.Fatalf("Failed to init fonts: %v", err)
	}

	// Thumbnail cache
	cacheDir := filepath.Join(os.TempDir(), "tubecouch", "thumbs")
	configDir, cdErr := config.ConfigDir()
	if cdErr == nil {
		cacheDir = filepath.Join(configDir, "cache", "thumbs")
	}
	thumbs, err := cache.NewThumbCache(cacheDir)
	if err != nil {
		log.Fatalf("Failed to init thumbnail cache: %v", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	durationsPath := filepath.Join(os.TempDir(), "tubecouch", "durations.json")
	if cdErr == nil {
		durationsPath = filepath.Join(configDir, "durations.json")
	}
	store := durations.Open(durationsPath)

	adapter := player.NewAdapter(cfg)
	router := ui.NewRouter()

	ctrl := session.New(cat, store, router, session.Options{
		CountdownSeconds: cfg.Playback.CountdownSeconds,
		SkipSeconds:      float64(cfg.Playback.SkipSeconds),
	})

	game := app.NewGame(cfg, cat, ctrl, adapter, router)

	sf := &screenFactory{cat: cat, store: store, thumbs: thumbs, ctrl: ctrl}
	router.NewHome = sf.newHome
	router.NewWatch = sf.newWatch
	router.Start()

	// Fill in missing durations in the background once the catalog is known.
	go prefetchDurations(cfg, cat, store)

	ebiten.SetWindowSize(cfg.UI.Width, cfg.UI.Height)
	ebiten.SetWindowTitle("TubeCouch")
	ebiten.SetWindowIcon(icon.Generate())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.UI.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// prefetchDurations asks the metadata API for the length of every catalog
// video and persists the results in one batch. A missing API key makes this
// a no-op.
func prefetchDurations(cfg *config.Config, cat *catalog.Catalog, store *durations.Store) {
	fetcher := durations.NewFetcher(cfg.YouTube.APIKey)
	slugsByID := cat.SlugsByYouTubeID()

	updates := make(map[string]int)
	fetcher.FetchDurations(context.Background(), cat.AllYouTubeIDs(), func(videoID string, seconds int) {
		for _, slug := range slugsByID[videoID] {
			updates[slug] = seconds
		}
	})
	if len(updates) > 0 {
		store.SetMany(updates)
		log.Printf("durations: fetched %d entries", len(updates))
	}
}
