// Package catalog holds the static video catalog: categories in display
// order, each with an ordered list of videos. Order is meaningful: it
// drives both the grid layout and "next video" traversal.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed default_catalog.toml
var defaultCatalogTOML []byte

// Video is a single catalog entry. Immutable after load.
type Video struct {
	Slug            string `toml:"slug"`
	Title           string `toml:"title"`
	ThumbnailURL    string `toml:"thumbnail_url"`
	MediaURL        string `toml:"media_url"`
	DurationSeconds int    `toml:"duration_seconds"`
}

// Category is an ordered group of videos.
type Category struct {
	Slug   string  `toml:"slug"`
	Name   string  `toml:"name"`
	Icon   string  `toml:"icon"`
	Videos []Video `toml:"videos"`
}

// Catalog indexes categories and videos for slug-based lookup.
type Catalog struct {
	Categories []Category

	byCategory map[string]int
	byVideo    map[string]map[string]int // categorySlug -> videoSlug -> index
}

type catalogFile struct {
	Categories []Category `toml:"categories"`
}

// Load reads a catalog TOML file from path. An empty path loads the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	data := defaultCatalogTOML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse builds a Catalog from TOML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("catalog has no categories")
	}

	c := &Catalog{
		Categories: f.Categories,
		byCategory: make(map[string]int),
		byVideo:    make(map[string]map[string]int),
	}
	for i, cat := range c.Categories {
		if cat.Slug == "" {
			return nil, fmt.Errorf("category %d has no slug", i)
		}
		if _, dup := c.byCategory[cat.Slug]; dup {
			return nil, fmt.Errorf("duplicate category slug %q", cat.Slug)
		}
		c.byCategory[cat.Slug] = i
		idx := make(map[string]int, len(cat.Videos))
		for j, v := range cat.Videos {
			if v.Slug == "" {
				return nil, fmt.Errorf("video %d in %q has no slug", j, cat.Slug)
			}
			if _, dup := idx[v.Slug]; dup {
				return nil, fmt.Errorf("duplicate video slug %q in %q", v.Slug, cat.Slug)
			}
			idx[v.Slug] = j
		}
		c.byVideo[cat.Slug] = idx
	}
	return c, nil
}

// CategoryBySlug looks up a category, nil if absent.
func (c *Catalog) CategoryBySlug(slug string) *Category {
	i, ok := c.byCategory[slug]
	if !ok {
		return nil
	}
	return &c.Categories[i]
}

// VideoBySlug looks up a video within a category, nil if either is absent.
func (c *Catalog) VideoBySlug(videoSlug, categorySlug string) *Video {
	idx, ok := c.byVideo[categorySlug]
	if !ok {
		return nil
	}
	j, ok := idx[videoSlug]
	if !ok {
		return nil
	}
	cat := c.CategoryBySlug(categorySlug)
	return &cat.Videos[j]
}

// VideosIn returns the ordered videos of a category, nil if absent.
func (c *Catalog) VideosIn(categorySlug string) []Video {
	cat := c.CategoryBySlug(categorySlug)
	if cat == nil {
		return nil
	}
	return cat.Videos
}

// NextAfter returns the video following v in its category, wrapping to the
// first video when v is last. It returns nil when the category has exactly
// one video or v is not found.
func (c *Catalog) NextAfter(v *Video, categorySlug string) *Video {
	return c.next(v, categorySlug, true)
}

// NextAfterNoWrap is NextAfter without the wrap-around: the last video of a
// category has no successor.
func (c *Catalog) NextAfterNoWrap(v *Video, categorySlug string) *Video {
	return c.next(v, categorySlug, false)
}

func (c *Catalog) next(v *Video, categorySlug string, wrap bool) *Video {
	if v == nil {
		return nil
	}
	cat := c.CategoryBySlug(categorySlug)
	if cat == nil || len(cat.Videos) < 2 {
		return nil
	}
	idx, ok := c.byVideo[categorySlug][v.Slug]
	if !ok {
		return nil
	}
	if idx+1 < len(cat.Videos) {
		return &cat.Videos[idx+1]
	}
	if wrap {
		return &cat.Videos[0]
	}
	return nil
}

// First returns the first video of the first category. Used as the fallback
// when the watch screen is entered without a resolvable pair.
func (c *Catalog) First() (*Video, *Category) {
	cat := &c.Categories[0]
	if len(cat.Videos) == 0 {
		return nil, cat
	}
	return &cat.Videos[0], cat
}

// AllYouTubeIDs enumerates the provider ids of every video, in catalog
// order, de-duplicated. Used by the duration prefetcher.
func (c *Catalog) AllYouTubeIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, cat := range c.Categories {
		for _, v := range cat.Videos {
			id := YouTubeID(&v)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// SlugsByYouTubeID maps each provider id to the catalog slugs carrying it.
// A single id can back several catalog entries.
func (c *Catalog) SlugsByYouTubeID() map[string][]string {
	m := make(map[string][]string)
	for _, cat := range c.Categories {
		for _, v := range cat.Videos {
			if id := YouTubeID(&v); id != "" {
				m[id] = append(m[id], v.Slug)
			}
		}
	}
	return m
}
