package catalog

import "regexp"

// YouTube video ids are exactly 11 characters of this alphabet.
var (
	idPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	urlPattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/|live/)|youtu\.be/)([A-Za-z0-9_-]{11})`)
)

// YouTubeID derives the provider id for a video from its media URL, falling
// back to the slug when the slug itself is a valid id. Returns "" when no id
// can be derived.
func YouTubeID(v *Video) string {
	if v == nil {
		return ""
	}
	if id := ExtractYouTubeID(v.MediaURL); id != "" {
		return id
	}
	return ExtractYouTubeID(v.Slug)
}

// ExtractYouTubeID pulls an 11-character video id out of a YouTube URL in
// any of the common forms (watch, embed, shorts, live, youtu.be), or accepts
// a bare id verbatim.
func ExtractYouTubeID(s string) string {
	if s == "" {
		return ""
	}
	if idPattern.MatchString(s) {
		return s
	}
	if m := urlPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
