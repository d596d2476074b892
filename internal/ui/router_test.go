package ui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type stubScreen struct {
	name   string
	enters int
	exits  int
}

func (s *stubScreen) Update() (*ScreenTransition, error) { return nil, nil }
func (s *stubScreen) Draw(dst *ebiten.Image)             {}
func (s *stubScreen) OnEnter()                           { s.enters++ }
func (s *stubScreen) OnExit()                            { s.exits++ }
func (s *stubScreen) Name() string                       { return s.name }

func testRouter() (*Router, *stubScreen) {
	home := &stubScreen{name: "Home"}
	r := NewRouter()
	r.NewHome = func() Screen { return home }
	r.NewWatch = func(categorySlug, videoSlug string) Screen {
		return &stubScreen{name: "Watch:" + categorySlug + "/" + videoSlug}
	}
	r.Start()
	return r, home
}

func TestParseWatchPath(t *testing.T) {
	tests := []struct {
		path    string
		wantCat string
		wantVid string
		wantOK  bool
	}{
		{"/watch/alpha/dQw4w9WgXcQ", "alpha", "dQw4w9WgXcQ", true},
		{"/watch/alpha/", "", "", false},
		{"/watch/alpha", "", "", false},
		{"/watch//vid", "", "", false},
		{"/other/a/b", "", "", false},
		{"/", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		cat, vid, ok := parseWatchPath(tt.path)
		if cat != tt.wantCat || vid != tt.wantVid || ok != tt.wantOK {
			t.Errorf("parseWatchPath(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.path, cat, vid, ok, tt.wantCat, tt.wantVid, tt.wantOK)
		}
	}
}

func TestRouterStartsAtCatalog(t *testing.T) {
	r, _ := testRouter()
	if r.Path() != "/" {
		t.Fatalf("path = %q, want /", r.Path())
	}
	if r.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", r.Depth())
	}
}

func TestNavigateWatchPushes(t *testing.T) {
	r, _ := testRouter()
	r.Navigate("/watch/alpha/dQw4w9WgXcQ", false)
	if r.Path() != "/watch/alpha/dQw4w9WgXcQ" {
		t.Fatalf("path = %q", r.Path())
	}
	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", r.Depth())
	}
}

func TestNavigateWatchReplaceKeepsDepth(t *testing.T) {
	r, _ := testRouter()
	r.Navigate("/watch/alpha/dQw4w9WgXcQ", false)
	r.Navigate("/watch/alpha/jNQXAC9IVRw", true)
	if r.Path() != "/watch/alpha/jNQXAC9IVRw" {
		t.Fatalf("path = %q", r.Path())
	}
	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2 after replace", r.Depth())
	}
}

func TestNavigateCatalogPopsToRoot(t *testing.T) {
	r, home := testRouter()
	r.Navigate("/watch/alpha/dQw4w9WgXcQ", false)
	r.Navigate("/", true)
	if r.Path() != "/" {
		t.Fatalf("path = %q, want /", r.Path())
	}
	if r.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", r.Depth())
	}
	if home.enters < 2 {
		t.Fatal("home screen must re-enter when the catalog is shown again")
	}
}

func TestNavigateSamePathIsNoop(t *testing.T) {
	r, _ := testRouter()
	r.Navigate("/watch/alpha/dQw4w9WgXcQ", false)
	r.Navigate("/watch/alpha/dQw4w9WgXcQ", false)
	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2 (same path must not re-push)", r.Depth())
	}
}

func TestNavigateUnknownPathIgnored(t *testing.T) {
	r, _ := testRouter()
	r.Navigate("/bogus", false)
	if r.Path() != "/" || r.Depth() != 1 {
		t.Fatalf("unknown path changed router state: %q depth %d", r.Path(), r.Depth())
	}
}

func TestBack(t *testing.T) {
	r, _ := testRouter()
	r.Navigate("/watch/alpha/dQw4w9WgXcQ", false)
	r.Back()
	if r.Path() != "/" || r.Depth() != 1 {
		t.Fatalf("after back: %q depth %d", r.Path(), r.Depth())
	}
	// Back at the root is a no-op.
	r.Back()
	if r.Depth() != 1 {
		t.Fatalf("back at root changed depth to %d", r.Depth())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, ""},
		{-5, ""},
		{9, "0:09"},
		{75, "1:15"},
		{253, "4:13"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.secs); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
