package ui

import "image/color"

// Colors: dark theme with a green accent
var (
	ColorBackground    = color.RGBA{R: 0x12, G: 0x14, B: 0x12, A: 0xFF}
	ColorSurface       = color.RGBA{R: 0x1E, G: 0x22, B: 0x1E, A: 0xFF}
	ColorSurfaceHover  = color.RGBA{R: 0x2A, G: 0x30, B: 0x2A, A: 0xFF}
	ColorPrimary       = color.RGBA{R: 0x46, G: 0x9C, B: 0x28, A: 0xFF}
	ColorPrimaryDark   = color.RGBA{R: 0x2E, G: 0x6E, B: 0x1A, A: 0xFF}
	ColorText          = color.RGBA{R: 0xE4, G: 0xE4, B: 0xE0, A: 0xFF}
	ColorTextSecondary = color.RGBA{R: 0x94, G: 0x98, B: 0x90, A: 0xFF}
	ColorTextMuted     = color.RGBA{R: 0x62, G: 0x66, B: 0x60, A: 0xFF}
	ColorFocusBorder   = color.RGBA{R: 0x46, G: 0x9C, B: 0x28, A: 0xFF}
	ColorOverlay       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xC0}
	ColorError         = color.RGBA{R: 0xE0, G: 0x40, B: 0x40, A: 0xFF}
	ColorBadge         = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xB0}
)

// Layout constants
const (
	CardWidth    = 400
	CardHeight   = 225 // 16:9 thumbnails
	CardGap      = 28
	CardFocusPad = 8

	SectionPadding = 40
	SectionGap     = 30
	SectionTitleH  = 36

	HeaderHeight = 60

	FontSizeTitle   = 28
	FontSizeHeading = 22
	FontSizeBody    = 16
	FontSizeSmall   = 13
	FontSizeCaption = 11

	ScrollAnimSpeed = 0.12

	ScreenWidth  = 1920
	ScreenHeight = 1080

	// MiniStripHeight is the docked mini-player bar at the bottom of the
	// catalog while a session is minimized.
	MiniStripHeight = 88

	// SectionFullHeight is one category row including title and gap.
	SectionFullHeight = CardHeight + FontSizeCaption + 24 + CardFocusPad*2 + SectionTitleH + SectionGap
)
