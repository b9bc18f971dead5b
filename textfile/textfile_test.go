package textfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf16"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}
	return path
}

func utf16le(s string, bom bool) []byte {
	var out []byte
	if bom {
		out = append(out, 0xFF, 0xFE)
	}
	for _, u := range utf16.Encode([]rune(s)) {
		out = append(out, byte(u), byte(u>>8))
	}
	return out
}

func utf16be(s string) []byte {
	out := []byte{0xFE, 0xFF}
	for _, u := range utf16.Encode([]rune(s)) {
		out = append(out, byte(u>>8), byte(u))
	}
	return out
}

func numbered(n int, trailing bool) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		b.WriteString("line")
		b.WriteString(string(rune('0' + i%10)))
		if i < n || trailing {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func TestReadAll(t *testing.T) {
	for _, tc := range []struct {
		name string
		data []byte
		want string
	}{
		{"utf-8", []byte("héllo\nworld"), "héllo\nworld"},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "abc"...), "abc"},
		{"utf-16le", utf16le("字幕\nok", true), "字幕\nok"},
		{"utf-16be", utf16be("big"), "big"},
		{"empty", nil, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadAll(writeFile(t, "in.txt", tc.data))
			if err != nil {
				t.Fatalf("ReadAll 失败: %v", err)
			}
			if got != tc.want {
				t.Fatalf("读取结果 %q，期望 %q", got, tc.want)
			}
		})
	}
}

func TestReadTail(t *testing.T) {
	t.Run("trailing newline keeps six lines", func(t *testing.T) {
		got, err := ReadTail(writeFile(t, "a.txt", []byte(numbered(10, true))))
		if err != nil {
			t.Fatalf("ReadTail 失败: %v", err)
		}
		want := "line5\nline6\nline7\nline8\nline9\nline0\n"
		if got != want {
			t.Fatalf("读取结果 %q，期望 %q", got, want)
		}
	})
	t.Run("no trailing newline keeps seven lines", func(t *testing.T) {
		got, err := ReadTail(writeFile(t, "b.txt", []byte(numbered(10, false))))
		if err != nil {
			t.Fatalf("ReadTail 失败: %v", err)
		}
		if n := strings.Count(got, "\n") + 1; n != 7 || !strings.HasPrefix(got, "line4") {
			t.Fatalf("期望 7 行且从 line4 开始，得到 %d 行: %q", n, got)
		}
	})
	t.Run("short file is returned whole", func(t *testing.T) {
		got, err := ReadTail(writeFile(t, "c.txt", []byte("one\ntwo")))
		if err != nil {
			t.Fatalf("ReadTail 失败: %v", err)
		}
		if got != "one\ntwo" {
			t.Fatalf("读取结果 %q", got)
		}
	})
	t.Run("utf-16le", func(t *testing.T) {
		got, err := ReadTail(writeFile(t, "d.txt", utf16le(numbered(10, true), true)))
		if err != nil {
			t.Fatalf("ReadTail 失败: %v", err)
		}
		if !strings.HasPrefix(got, "line5\n") || strings.Count(got, "\n") != 6 {
			t.Fatalf("UTF-16 尾部读取结果异常: %q", got)
		}
	})
}

func TestTailStartAcrossChunks(t *testing.T) {
	long := strings.Repeat("x", chunkSize+10)
	data := []byte(long + "\n" + long + "\nend")
	got, err := readTail(writeFile(t, "big.txt", data), 2)
	if err != nil {
		t.Fatalf("readTail 失败: %v", err)
	}
	if want := long + "\nend"; got != want {
		t.Fatalf("跨块扫描结果长度 %d，期望 %d", len(got), len(want))
	}
}

func TestFileStickyFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	f := NewFile(path, false)

	_, err := f.Load()
	var le *LoadError
	if !errors.As(err, &le) || !le.First {
		t.Fatalf("第一次失败应标记 First，得到 %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("应能解包出底层错误: %v", err)
	}
	_, err = f.Load()
	if !errors.As(err, &le) || le.First {
		t.Fatalf("连续失败不应再标记 First: %+v", le)
	}
	if !f.Failed() || f.Changed() {
		t.Fatalf("文件不存在时应保持失败且不报告变化")
	}

	if err := os.WriteFile(path, []byte("now here"), 0o644); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	if !f.Changed() {
		t.Fatalf("失败后出现的文件应被视为变化")
	}
	text, err := f.Load()
	if err != nil || text != "now here" {
		t.Fatalf("Load 失败: %q %v", text, err)
	}
	if f.Failed() || f.ModTime().IsZero() {
		t.Fatalf("成功读取后应清除失败标记并记录时间戳")
	}
	if f.Changed() {
		t.Fatalf("未修改的文件不应报告变化")
	}

	// 再次失败时重新标记 First
	if err := os.Remove(path); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	_, err = f.Load()
	if !errors.As(err, &le) || !le.First {
		t.Fatalf("成功之后的失败应重新标记 First，得到 %v", err)
	}
}

func TestFileTimestampSetForTailReads(t *testing.T) {
	path := writeFile(t, "tail.txt", utf16le("a\nb\n", true))
	f := NewFile(path, true)
	if _, err := f.Load(); err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if f.ModTime().IsZero() {
		t.Fatalf("UTF-16 尾部读取也应记录时间戳")
	}

	later := f.ModTime().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("修改时间戳失败: %v", err)
	}
	if !f.Changed() {
		t.Fatalf("时间戳变化后应报告变化")
	}
}
