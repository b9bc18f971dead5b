package main

import (
	"bytes"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/ByLCY/textsource/source"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Now Playing":   "now-playing",
		"  Chat  Box! ": "chat-box",
		"弹幕":            "弹幕",
		"***":           "source",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Fatalf("slug(%q) = %q，期望 %q", in, got, want)
		}
	}
}

func TestResolvePath(t *testing.T) {
	abs := filepath.Join(string(filepath.Separator), "tmp", "chat.log")
	if got := resolvePath("cfg", abs); got != abs {
		t.Fatalf("绝对路径不应改变: %s", got)
	}
	if got := resolvePath("cfg", "chat.log"); got != filepath.Join("cfg", "chat.log") {
		t.Fatalf("相对路径应相对配置目录: %s", got)
	}
	if got := resolvePath("cfg", ""); got != "" {
		t.Fatalf("空路径应保持为空: %s", got)
	}
}

func TestUnresolvedPlaceholders(t *testing.T) {
	data := map[string]any{"track": map[string]any{"title": "Intro"}}
	got := unresolved("${track.title} by ${track.artist}, $${literal} ${queue[0]}", data)
	if diff := cmp.Diff([]string{"track.artist", "queue[0]"}, got); diff != "" {
		t.Fatalf("未解析占位符不符 (-want +got):\n%s", diff)
	}
	if got := unresolved("plain text", nil); len(got) != 0 {
		t.Fatalf("没有占位符时不应报告: %v", got)
	}
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "overlay.textsource")
	settings := `
source "Title" {
  text: "Hello ${name}"
  font { face: "Go" size: 24 }
  outline: true
  outline_width: 2
}
source "Empty" {
  text: ""
  font { face: "Go" size: 24 }
}
source "Log" {
  font { face: "Go Mono" size: 12 }
  from_file: true
  text_file: "chat.log"
  read_from_end: true
}
`
	if err := os.WriteFile(input, []byte(settings), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "chat.log"), []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := options{
		input:  input,
		outDir: filepath.Join(dir, "out"),
		pdf:    filepath.Join(dir, "proof", "proof.pdf"),
		debug:  filepath.Join(dir, "layout.json"),
		data:   map[string]any{"name": "World"},
	}
	written, err := run(opts)
	if err != nil {
		t.Fatalf("run 失败: %v", err)
	}
	want := []string{
		filepath.Join(opts.outDir, "title.png"),
		filepath.Join(opts.outDir, "log.png"),
		opts.pdf,
		opts.debug,
	}
	if len(written) != len(want) {
		t.Fatalf("期望输出 %v，实际 %v", want, written)
	}
	for i := range want {
		if written[i] != want[i] {
			t.Fatalf("第 %d 个输出期望 %s，实际 %s", i, want[i], written[i])
		}
	}

	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("PNG 无法解码: %v", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		t.Fatalf("PNG 尺寸为空: %v", b)
	}
	pdf, err := os.ReadFile(opts.pdf)
	if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("PDF 预览无效: %v", err)
	}
}

func TestRunRejectsBadSettings(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.textsource")
	if err := os.WriteFile(input, []byte(`source "A" { from_file: true }`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(options{input: input, outDir: filepath.Join(dir, "out")}); err == nil {
		t.Fatalf("缺少 text_file 时应返回错误")
	}
}

func TestRunLogsRegisteredFonts(t *testing.T) {
	var buf bytes.Buffer
	source.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { source.SetLogger(nil) })

	dir := t.TempDir()
	fontPath := filepath.Join(dir, "mono.ttf")
	if err := os.WriteFile(fontPath, gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(dir, "overlay.textsource")
	if err := os.WriteFile(input, []byte(`source "A" { text: "x" }`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(options{input: input, outDir: filepath.Join(dir, "out"), fonts: []string{fontPath}}); err != nil {
		t.Fatalf("run 失败: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "registered font") || !strings.Contains(out, "Go Mono") {
		t.Fatalf("注册字体应写入日志，实际: %q", out)
	}
}
