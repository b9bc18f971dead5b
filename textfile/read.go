// Package textfile reads overlay text from files: the whole file, or only its
// tail. UTF-8 and UTF-16 files are recognized by their byte order mark.
package textfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// TailBreaks is how many newlines ReadTail walks back over. The text after
// the seventh newline from the end is kept, which is the last six lines of a
// file ending in a newline.
const TailBreaks = 7

const chunkSize = 4096

// ReadAll returns the whole file decoded to UTF-8.
func ReadAll(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	enc := sniff(data)
	body := data[enc.bom:]
	if enc.unit == 2 && len(body)%2 == 1 {
		body = body[:len(body)-1]
	}
	text, err := enc.decode(body)
	if err != nil {
		return "", fmt.Errorf("decode %s as %s: %w", path, enc.name, err)
	}
	return text, nil
}

// ReadTail returns the end of the file: everything after the TailBreaks-th
// newline counted from the end, or the whole file if it has fewer newlines.
func ReadTail(path string) (string, error) {
	return readTail(path, TailBreaks)
}

func readTail(path string, breaks int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	size := info.Size()

	head := make([]byte, 3)
	n, err := f.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	enc := sniff(head[:n])
	base := int64(enc.bom)
	if size < base {
		return "", nil
	}
	// ignore a dangling half code unit
	end := base + (size-base)/int64(enc.unit)*int64(enc.unit)

	start, err := tailStart(f, base, end, enc, breaks)
	if err != nil {
		return "", err
	}
	body := make([]byte, end-start)
	if _, err := f.ReadAt(body, start); err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	text, err := enc.decode(body)
	if err != nil {
		return "", fmt.Errorf("decode %s as %s: %w", path, enc.name, err)
	}
	return text, nil
}

// tailStart scans backwards from end in code units and returns the offset just
// past the breaks-th newline, or base when there are not that many.
func tailStart(r io.ReaderAt, base, end int64, enc textEncoding, breaks int) (int64, error) {
	if breaks <= 0 {
		return end, nil
	}
	unit := int64(enc.unit)
	buf := make([]byte, chunkSize)
	count := 0
	pos := end
	for pos > base {
		n := min(int64(len(buf)), pos-base)
		start := pos - n
		if _, err := r.ReadAt(buf[:n], start); err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		for i := n - unit; i >= 0; i -= unit {
			if !isNewline(buf[i:i+unit], enc.newline) {
				continue
			}
			count++
			if count == breaks {
				return start + i + unit, nil
			}
		}
		pos = start
	}
	return base, nil
}

func isNewline(b, nl []byte) bool {
	for i := range nl {
		if b[i] != nl[i] {
			return false
		}
	}
	return true
}

// ModTime returns the modification time of path.
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
