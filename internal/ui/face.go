package ui

// Builtin face names consumed by the client controller.
const (
	FaceDefault        = "Default"
	FaceError          = "Error"
	FaceInformation    = "Information"
	FaceStatusLine     = "StatusLine"
	FaceMenuForeground = "MenuForeground"
	FaceMenuBackground = "MenuBackground"
)

// Palette maps face names to concrete faces. Lookup of an unknown name
// falls back to the default face so callers never render unstyled text
// by accident.
type Palette map[string]Face

// DefaultPalette returns the builtin palette.
func DefaultPalette() Palette {
	return Palette{
		FaceDefault:        {},
		FaceError:          {Fg: IndexedColor(1), Attrs: AttrBold},
		FaceInformation:    {Fg: IndexedColor(3)},
		FaceStatusLine:     {Fg: IndexedColor(7), Bg: IndexedColor(4)},
		FaceMenuForeground: {Fg: IndexedColor(4), Bg: IndexedColor(7)},
		FaceMenuBackground: {Fg: IndexedColor(7), Bg: IndexedColor(4)},
	}
}

// Get returns the face for a name, or the default face if unknown.
func (p Palette) Get(name string) Face {
	if f, ok := p[name]; ok {
		return f
	}
	return p[FaceDefault]
}
