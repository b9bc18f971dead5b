package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ByLCY/textsource/binding"
	"github.com/ByLCY/textsource/dsl"
	"github.com/ByLCY/textsource/fonts"
	"github.com/ByLCY/textsource/layout"
	"github.com/ByLCY/textsource/preview"
	"github.com/ByLCY/textsource/renderer"
	"github.com/ByLCY/textsource/source"
	"github.com/ByLCY/textsource/texture"
)

// fontList 收集可重复的 -font 参数。
type fontList []string

func (f *fontList) String() string     { return strings.Join(*f, ",") }
func (f *fontList) Set(v string) error { *f = append(*f, v); return nil }

type options struct {
	input   string
	outDir  string
	pdf     string
	debug   string
	data    any
	fonts   []string
	verbose bool
}

func main() {
	var fontPaths fontList
	input := flag.String("in", "examples/overlay.textsource", "文本源配置文件路径")
	outDir := flag.String("out", "output", "PNG 输出目录")
	pdfPath := flag.String("pdf", "", "PDF 预览输出路径（可选）")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到文本占位符的 JSON 数据")
	verbose := flag.Bool("v", false, "输出详细日志")
	flag.Var(&fontPaths, "font", "额外注册的 TTF/OTF 字体文件，可重复")
	flag.Parse()

	opts := options{
		input:   *input,
		outDir:  *outDir,
		pdf:     *pdfPath,
		debug:   *debug,
		fonts:   fontPaths,
		verbose: *verbose,
	}
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &opts.data); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	source.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	written, err := run(opts)
	if err != nil {
		log.Fatalf("渲染失败: %v", err)
	}
	for _, path := range written {
		fmt.Printf("已生成：%s\n", path)
	}
}

// run 串联解析、排版、绘制与纹理上传，返回写出的文件列表。
func run(opts options) ([]string, error) {
	file, err := os.Open(opts.input)
	if err != nil {
		return nil, fmt.Errorf("无法打开配置文件 %s: %w", opts.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(opts.input, file)
	if err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	configs, err := dsl.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	lib := fonts.NewLibrary()
	for _, path := range opts.fonts {
		family, err := lib.RegisterFile(path)
		if err != nil {
			return nil, fmt.Errorf("注册字体 %s 失败: %w", path, err)
		}
		source.Logger().Debug("registered font", "family", family, "path", path)
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	dev := texture.NewMemoryDevice()
	gfx := texture.NewGraphics(dev)
	r := renderer.New(layout.NewAdapter(lib))
	baseDir := filepath.Dir(opts.input)

	var (
		written []string
		proofs  []preview.Entry
		dumps   []layout.DebugEntry
	)
	for _, cfg := range configs {
		for _, name := range unresolved(cfg.Text, opts.data) {
			log.Printf("文本源 %q 的占位符 ${%s} 没有对应数据，保留原样", cfg.Name, name)
		}
		settings := source.Settings{
			Text:        binding.Interpolate(cfg.Text, opts.data),
			Style:       cfg.Style,
			FromFile:    cfg.FromFile,
			TextFile:    resolvePath(baseDir, cfg.TextFile),
			ReadFromEnd: cfg.ReadFromEnd,
		}
		src := source.New(cfg.Name, gfx, r)
		src.Update(settings)
		if err := src.Err(); err != nil {
			src.Destroy()
			return written, fmt.Errorf("文本源 %q: %w", cfg.Name, err)
		}
		tex := src.Texture()
		if tex == nil {
			log.Printf("文本源 %q 没有可绘制的内容，已跳过", cfg.Name)
			continue
		}

		img, ok := dev.Image(tex.Handle())
		if !ok {
			src.Destroy()
			return written, fmt.Errorf("文本源 %q: 纹理不存在", cfg.Name)
		}
		path := filepath.Join(opts.outDir, slug(cfg.Name)+".png")
		if err := writePNG(path, img); err != nil {
			src.Destroy()
			return written, err
		}
		written = append(written, path)
		proofs = append(proofs, preview.Entry{
			Name:    cfg.Name,
			Caption: fmt.Sprintf("%s  %dx%d  %s", cfg.Name, tex.Width(), tex.Height(), cfg.Style.FontFamily),
			Image:   img,
		})

		if opts.debug != "" {
			res, g, err := r.Layout(src.Text(), cfg.Style)
			if err == nil {
				dumps = append(dumps, layout.DebugEntry{
					Source: cfg.Name,
					Canvas: [2]int{g.Width, g.Height},
					Offset: [2]int{g.XOffset, g.YOffset},
					Layout: res,
				})
			}
		}
		src.Destroy()
	}

	if opts.pdf != "" && len(proofs) > 0 {
		if err := writeProof(opts.pdf, opts.input, proofs); err != nil {
			return written, err
		}
		written = append(written, opts.pdf)
	}
	if opts.debug != "" && len(dumps) > 0 {
		if err := writeDebug(dumps, opts.debug); err != nil {
			return written, err
		}
		written = append(written, opts.debug)
	}
	return written, nil
}

func writePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建 PNG 文件失败: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return f.Close()
}

func writeProof(path, input string, proofs []preview.Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建 PDF 目录失败: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建 PDF 文件失败: %w", err)
	}
	meta := preview.Meta{Title: filepath.Base(input), Subject: "text source proof", Creator: "textsource"}
	if err := preview.WritePDF(f, proofs, meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeDebug(entries []layout.DebugEntry, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(entries, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// unresolved 返回 text 中在 data 里找不到的占位符路径。
func unresolved(text string, data any) []string {
	var missing []string
	for _, name := range binding.Placeholders(text) {
		if _, ok := binding.Resolve(data, name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// slug 把源名称转换为文件名：小写字母数字，其余字符替换为 '-'。
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "source"
	}
	return s
}
