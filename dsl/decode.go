package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/textsource/style"
)

// Host font flags, as stored next to the face name.
const (
	FlagBold   = 1
	FlagItalic = 2
)

// Config is one decoded source.
type Config struct {
	Name  string
	Text  string
	Style style.TextStyle

	FromFile    bool
	TextFile    string
	ReadFromEnd bool
}

// Decode turns a parsed document into configs. Unset keys keep the values of
// style.Default(). Unknown keys, wrong value types and invalid styles are
// errors carrying the position of the offending statement.
func Decode(doc *Document) ([]Config, error) {
	if doc == nil {
		return nil, fmt.Errorf("empty document")
	}
	seen := map[string]lexer.Position{}
	out := make([]Config, 0, len(doc.Sources))
	for _, src := range doc.Sources {
		name := string(src.Name)
		if name == "" {
			return nil, participle.Errorf(src.Pos, "source name must not be empty")
		}
		if prev, ok := seen[name]; ok {
			return nil, participle.Errorf(src.Pos, "duplicate source %q (first declared at %s)", name, prev)
		}
		seen[name] = src.Pos

		cfg := Config{Name: name, Style: style.Default()}
		if err := decodeSource(&cfg, src.Block); err != nil {
			return nil, err
		}
		if err := cfg.Style.Validate(); err != nil {
			return nil, participle.Errorf(src.Pos, "source %q: %v", name, err)
		}
		if cfg.FromFile && cfg.TextFile == "" {
			return nil, participle.Errorf(src.Pos, "source %q: from_file requires text_file", name)
		}
		out = append(out, cfg)
	}
	return out, nil
}

// DecodeString parses and decodes in one step.
func DecodeString(input string) ([]Config, error) {
	doc, err := ParseString(input)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}

func decodeSource(cfg *Config, block *Block) error {
	st := &cfg.Style
	for _, stmt := range block.Statements {
		if stmt.Nested != nil {
			if stmt.Nested.Name != "font" {
				return participle.Errorf(stmt.Nested.Pos, "unknown block %q", stmt.Nested.Name)
			}
			if err := decodeFont(st, stmt.Nested.Block); err != nil {
				return err
			}
			continue
		}
		a := stmt.Assignment
		var err error
		switch a.Key {
		case "text":
			cfg.Text, err = stringValue(a.Value)
		case "align":
			st.Align, err = alignValue(a.Value)
		case "color1":
			st.ColorTop, err = colorValue(a.Value)
		case "color2":
			st.ColorBottom, err = colorValue(a.Value)
		case "outline":
			st.Outline.Enabled, err = boolValue(a.Value)
		case "outline_width":
			st.Outline.Width, err = intValue(a.Value)
		case "outline_color":
			st.Outline.Color, err = colorValue(a.Value)
		case "drop_shadow":
			st.Shadow.Enabled, err = boolValue(a.Value)
		case "drop_shadow_offset":
			st.Shadow.Offset, err = intValue(a.Value)
		case "drop_shadow_color":
			st.Shadow.Color, err = colorValue(a.Value)
		case "custom_width":
			st.CustomWidth, err = intValue(a.Value)
		case "word_wrap":
			st.WordWrap, err = boolValue(a.Value)
		case "from_file":
			cfg.FromFile, err = boolValue(a.Value)
		case "text_file":
			cfg.TextFile, err = stringValue(a.Value)
		case "read_from_end":
			cfg.ReadFromEnd, err = boolValue(a.Value)
		default:
			return participle.Errorf(a.Pos, "unknown key %q", a.Key)
		}
		if err != nil {
			return participle.Errorf(a.Value.Pos, "%s: %v", a.Key, err)
		}
	}
	return nil
}

func decodeFont(st *style.TextStyle, block *Block) error {
	for _, stmt := range block.Statements {
		if stmt.Nested != nil {
			return participle.Errorf(stmt.Nested.Pos, "unexpected block %q inside font", stmt.Nested.Name)
		}
		a := stmt.Assignment
		var err error
		switch a.Key {
		case "face":
			st.FontFamily, err = stringValue(a.Value)
		case "size":
			st.FontSize, err = intValue(a.Value)
		case "bold":
			st.Bold, err = boolValue(a.Value)
		case "italic":
			st.Italic, err = boolValue(a.Value)
		case "flags":
			var flags int
			flags, err = intValue(a.Value)
			st.Bold = flags&FlagBold != 0
			st.Italic = flags&FlagItalic != 0
		default:
			return participle.Errorf(a.Pos, "unknown font key %q", a.Key)
		}
		if err != nil {
			return participle.Errorf(a.Value.Pos, "font.%s: %v", a.Key, err)
		}
	}
	return nil
}

func stringValue(v *Value) (string, error) {
	if v.String == nil {
		return "", fmt.Errorf("expected a quoted string, got %q", v.Raw())
	}
	return string(*v.String), nil
}

func intValue(v *Value) (int, error) {
	if v.Number == nil {
		return 0, fmt.Errorf("expected an integer, got %q", v.Raw())
	}
	n, err := strconv.ParseInt(*v.Number, 0, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func boolValue(v *Value) (bool, error) {
	switch strings.ToLower(v.Raw()) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected true or false, got %q", v.Raw())
	}
}

func colorValue(v *Value) (style.Color, error) {
	if v.Ident != nil {
		return 0, fmt.Errorf("expected a color, got %q", v.Raw())
	}
	return style.ParseColor(v.Raw())
}

// alignValue accepts a name or the host's stored integer (0 left, 1 right, 2 center).
func alignValue(v *Value) (style.Align, error) {
	if v.Number != nil {
		n, err := strconv.Atoi(*v.Number)
		if err != nil {
			return style.AlignLeft, err
		}
		a := style.Align(n)
		if !a.Valid() {
			return style.AlignLeft, fmt.Errorf("unknown alignment %d", n)
		}
		return a, nil
	}
	return style.ParseAlign(v.Raw())
}
