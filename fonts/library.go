package fonts

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/image/font/sfnt"
)

// FallbackFamily is used for any family the library does not know.
const FallbackFamily = "Go"

// ErrUnknownFamily is returned when neither the family nor the fallback is registered.
var ErrUnknownFamily = errors.New("fonts: unknown font family")

// Style selects one face of a family.
type Style int

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

// StyleOf maps the bold/italic flags to a Style.
func StyleOf(bold, italic bool) Style {
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	default:
		return Regular
	}
}

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold italic"
	default:
		return "regular"
	}
}

// Family groups the parsed faces registered under one name.
type Family struct {
	Name  string
	faces [4]*sfnt.Font
}

// Face returns the closest registered face: the exact style, then the face
// that keeps the weight, then the one that keeps the slant, then regular.
func (f *Family) Face(s Style) *sfnt.Font {
	var order []Style
	switch s {
	case BoldItalic:
		order = []Style{BoldItalic, Bold, Italic, Regular}
	case Bold:
		order = []Style{Bold, Regular}
	case Italic:
		order = []Style{Italic, Regular}
	default:
		order = []Style{Regular}
	}
	for _, st := range order {
		if face := f.faces[st]; face != nil {
			return face
		}
	}
	for _, face := range f.faces {
		if face != nil {
			return face
		}
	}
	return nil
}

// Library resolves family names to parsed sfnt fonts. It is safe for concurrent use.
type Library struct {
	mu       sync.RWMutex
	families map[string]*Family
	aliases  map[string]string
}

// NewLibrary returns a library preloaded with the Go font families and the
// usual generic aliases ("Sans Serif", "Monospace", ...).
func NewLibrary() *Library {
	l := &Library{
		families: map[string]*Family{},
		aliases:  map[string]string{},
	}
	builtin := []struct {
		family string
		style  Style
		ttf    []byte
	}{
		{"Go", Regular, goregular.TTF},
		{"Go", Bold, gobold.TTF},
		{"Go", Italic, goitalic.TTF},
		{"Go", BoldItalic, gobolditalic.TTF},
		{"Go Mono", Regular, gomono.TTF},
		{"Go Mono", Bold, gomonobold.TTF},
		{"Go Mono", Italic, gomonoitalic.TTF},
		{"Go Mono", BoldItalic, gomonobolditalic.TTF},
		{"Go Medium", Regular, gomedium.TTF},
		{"Go Medium", Italic, gomediumitalic.TTF},
		{"Go Smallcaps", Regular, gosmallcaps.TTF},
		{"Go Smallcaps", Italic, gosmallcapsitalic.TTF},
	}
	for _, b := range builtin {
		// the embedded Go fonts always parse
		if err := l.Register(b.family, b.style, b.ttf); err != nil {
			panic(fmt.Sprintf("fonts: builtin %s %s: %v", b.family, b.style, err))
		}
	}
	for _, alias := range []string{"Sans Serif", "Sans", "Sans-Serif", "Serif", "Arial", "Helvetica", "System-ui"} {
		l.aliases[normalize(alias)] = "Go"
	}
	for _, alias := range []string{"Monospace", "Mono", "Courier", "Courier New"} {
		l.aliases[normalize(alias)] = "Go Mono"
	}
	return l
}

// Register parses ttf and stores it as the given style of family.
// A later registration of the same family and style replaces the earlier one.
func (l *Library) Register(family string, style Style, ttf []byte) error {
	if strings.TrimSpace(family) == "" {
		return fmt.Errorf("fonts: empty family name")
	}
	f, err := sfnt.Parse(ttf)
	if err != nil {
		return fmt.Errorf("fonts: parse %s (%s): %w", family, style, err)
	}
	key := normalize(family)
	l.mu.Lock()
	defer l.mu.Unlock()
	fam, ok := l.families[key]
	if !ok {
		fam = &Family{Name: family}
		l.families[key] = fam
	}
	fam.faces[style] = f
	return nil
}

// RegisterFile loads a TrueType/OpenType file. The family and style are read
// from the font's name table.
func (l *Library) RegisterFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("fonts: read %s: %w", path, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return "", fmt.Errorf("fonts: parse %s: %w", path, err)
	}
	var buf sfnt.Buffer
	family, err := f.Name(&buf, sfnt.NameIDFamily)
	if err != nil || family == "" {
		return "", fmt.Errorf("fonts: %s has no family name", path)
	}
	sub, _ := f.Name(&buf, sfnt.NameIDSubfamily)
	if err := l.Register(family, parseSubfamily(sub), data); err != nil {
		return "", err
	}
	return family, nil
}

// Lookup returns the family registered under name (or its alias), falling
// back to FallbackFamily. The second result reports whether name matched.
func (l *Library) Lookup(name string) (*Family, bool, error) {
	key := normalize(name)
	l.mu.RLock()
	defer l.mu.RUnlock()
	if fam, ok := l.families[key]; ok {
		return fam, true, nil
	}
	if target, ok := l.aliases[key]; ok {
		if fam, ok := l.families[normalize(target)]; ok {
			return fam, true, nil
		}
	}
	if fam, ok := l.families[normalize(FallbackFamily)]; ok {
		return fam, false, nil
	}
	return nil, false, fmt.Errorf("%w: %s", ErrUnknownFamily, name)
}

// Face resolves family and style to a parsed font.
func (l *Library) Face(family string, bold, italic bool) (*sfnt.Font, error) {
	fam, _, err := l.Lookup(family)
	if err != nil {
		return nil, err
	}
	face := fam.Face(StyleOf(bold, italic))
	if face == nil {
		return nil, fmt.Errorf("%w: %s has no faces", ErrUnknownFamily, family)
	}
	return face, nil
}

// Families lists the registered family names.
func (l *Library) Families() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.families))
	for _, fam := range l.families {
		out = append(out, fam.Name)
	}
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// parseSubfamily maps a name-table subfamily such as "Bold Oblique" to a Style.
func parseSubfamily(sub string) Style {
	s := strings.ToLower(sub)
	bold := strings.Contains(s, "bold") || strings.Contains(s, "black") || strings.Contains(s, "heavy")
	italic := strings.Contains(s, "italic") || strings.Contains(s, "oblique")
	return StyleOf(bold, italic)
}
