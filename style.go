package vtable

// Spacing constants for consistent layout.
const (
	SpaceXS float32 = 2
	SpaceSM float32 = 4
	SpaceMD float32 = 8
)

// Style defines the visual appearance of a drawn table.
type Style struct {
	// Text
	TextColor       uint32
	HeaderTextColor uint32 // 0 = use TextColor

	// Backgrounds
	BgColor       uint32
	RowBgAltColor uint32 // Odd rows; 0 = no striping
	HeaderBgColor uint32
	FooterBgColor uint32 // 0 = use HeaderBgColor
	BorderColor   uint32

	// Scrollbar
	ScrollbarBgColor   uint32
	ScrollbarGrabColor uint32
	ScrollbarSize      float32
	ScrollbarMinGrab   float32

	// Font
	FontTexture uint32 // Bitmap font texture bound for text (see DrawList.AddText)
	FontScale   float32
	CharWidth   float32
	CharHeight  float32

	CellPadding float32
	BorderSize  float32
}

// DefaultStyle returns the default dark style.
func DefaultStyle() Style {
	return Style{
		TextColor:       ColorWhite,
		HeaderTextColor: 0,

		BgColor:       RGBA(20, 20, 20, 255),
		RowBgAltColor: RGBA(35, 35, 35, 255),
		HeaderBgColor: RGBA(40, 40, 40, 255),
		BorderColor:   RGBA(80, 80, 80, 255),

		ScrollbarBgColor:   RGBA(30, 30, 30, 255),
		ScrollbarGrabColor: RGBA(80, 80, 80, 255),
		ScrollbarSize:      12,
		ScrollbarMinGrab:   16,

		FontScale:  1.0,
		CharWidth:  8,
		CharHeight: 8,

		CellPadding: SpaceSM,
		BorderSize:  1,
	}
}

// GTAStyle returns a dark style with cyan accents.
func GTAStyle() Style {
	s := DefaultStyle()
	s.HeaderTextColor = ColorWhite
	s.BgColor = RGBA(10, 10, 10, 240)
	s.RowBgAltColor = RGBA(20, 30, 40, 255)
	s.HeaderBgColor = RGBA(0, 80, 120, 255)
	s.BorderColor = RGBA(0, 100, 150, 255)
	s.ScrollbarBgColor = RGBA(20, 20, 20, 255)
	s.ScrollbarGrabColor = RGBA(0, 100, 150, 255)
	s.ScrollbarSize = 14
	return s
}

// LightStyle returns a light style.
func LightStyle() Style {
	s := DefaultStyle()
	s.TextColor = RGBA(20, 20, 20, 255)
	s.HeaderTextColor = RGBA(20, 20, 20, 255)
	s.BgColor = ColorWhite
	s.RowBgAltColor = RGBA(245, 245, 245, 255)
	s.HeaderBgColor = RGBA(230, 230, 230, 255)
	s.BorderColor = RGBA(200, 200, 200, 255)
	s.ScrollbarBgColor = RGBA(240, 240, 240, 255)
	s.ScrollbarGrabColor = RGBA(180, 180, 180, 255)
	return s
}
