package textfile

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// textEncoding is what a byte order mark says about the rest of the file.
type textEncoding struct {
	name    string
	bom     int    // length of the byte order mark
	unit    int    // bytes per code unit
	newline []byte // '\n' in this encoding
	enc     encoding.Encoding
}

var (
	encUTF8    = textEncoding{name: "utf-8", unit: 1, newline: []byte{'\n'}, enc: unicode.UTF8}
	encUTF8BOM = textEncoding{name: "utf-8", bom: 3, unit: 1, newline: []byte{'\n'}, enc: unicode.UTF8}
	encUTF16LE = textEncoding{name: "utf-16le", bom: 2, unit: 2, newline: []byte{'\n', 0},
		enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}
	encUTF16BE = textEncoding{name: "utf-16be", bom: 2, unit: 2, newline: []byte{0, '\n'},
		enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
)

// sniff picks the encoding from the first bytes of a file. Files without a
// byte order mark are read as UTF-8.
func sniff(head []byte) textEncoding {
	switch {
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		return encUTF8BOM
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return encUTF16LE
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return encUTF16BE
	default:
		return encUTF8
	}
}

// decode converts body (without the byte order mark) to UTF-8. Invalid
// sequences become U+FFFD.
func (e textEncoding) decode(body []byte) (string, error) {
	out, err := e.enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
