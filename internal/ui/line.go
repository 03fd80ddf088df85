package ui

// ColorMode says how a Color's channels should be interpreted.
type ColorMode uint8

const (
	// ColorModeDefault uses the terminal's default color.
	ColorModeDefault ColorMode = iota
	// ColorModeIndexed uses the palette index stored in R.
	ColorModeIndexed
	// ColorModeRGB uses the full R/G/B channels.
	ColorModeRGB
)

// Color is a terminal color. The zero value is the terminal default.
type Color struct {
	R, G, B uint8
	Mode    ColorMode
}

// IndexedColor returns a palette color.
func IndexedColor(index uint8) Color {
	return Color{R: index, Mode: ColorModeIndexed}
}

// RGBColor returns a 24-bit color.
func RGBColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Mode: ColorModeRGB}
}

// IsDefault returns true if this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Mode == ColorModeDefault
}

// AttrMask is a bitmask of text attributes.
type AttrMask uint8

const (
	AttrNone      AttrMask = 0
	AttrBold      AttrMask = 1 << iota
	AttrItalic
	AttrUnderline
	AttrReverse
	AttrDim
)

// Has returns true if the mask contains the given attribute.
func (a AttrMask) Has(attr AttrMask) bool {
	return a&attr != 0
}

// Face is a named rendering style: foreground, background, attributes.
// Faces are plain comparable values.
type Face struct {
	Fg    Color
	Bg    Color
	Attrs AttrMask
}

// DisplayAtom is a run of text rendered with a single face.
type DisplayAtom struct {
	Text string
	Face Face
}

// DisplayLine is an ordered sequence of styled atoms.
type DisplayLine []DisplayAtom

// NewDisplayLine builds a single-atom line.
func NewDisplayLine(text string, face Face) DisplayLine {
	return DisplayLine{{Text: text, Face: face}}
}

// Equal reports atom-sequence value equality. This is the comparison the
// redraw reconciler uses to suppress redundant status strip draws.
func (l DisplayLine) Equal(other DisplayLine) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Content returns the concatenated text of all atoms.
func (l DisplayLine) Content() string {
	var s string
	for _, a := range l {
		s += a.Text
	}
	return s
}

// DisplayBuffer is the composed content of a window, ready to draw.
type DisplayBuffer struct {
	Lines []DisplayLine
}

// Coord is a position, either logical (buffer line/column) or on-screen,
// depending on context. Line and Col are zero-based.
type Coord struct {
	Line int
	Col  int
}
