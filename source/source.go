// Package source ties text, style and texture together for one overlay.
package source

import (
	"errors"
	"sync"
	"time"

	"github.com/ByLCY/textsource/style"
	"github.com/ByLCY/textsource/texture"
	"github.com/ByLCY/textsource/textfile"
)

// PollInterval is how often Tick looks at the text file's modification time.
const PollInterval = time.Second

// State is where a source is in its render cycle.
type State int

const (
	Idle State = iota
	Measuring
	Painting
	Uploaded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Measuring:
		return "measuring"
	case Painting:
		return "painting"
	case Uploaded:
		return "uploaded"
	default:
		return "unknown"
	}
}

// Settings is everything a host stores for one text source.
type Settings struct {
	Text  string
	Style style.TextStyle

	// FromFile reads the text from TextFile instead of Text.
	FromFile bool
	TextFile string
	// ReadFromEnd keeps only the last lines of TextFile.
	ReadFromEnd bool
}

// Source is one text overlay. Update and Tick render synchronously; calls on
// the same source never overlap. Textures are created and destroyed through
// the shared Graphics.
type Source struct {
	name string
	gfx  *texture.Graphics
	r    Renderer

	mu       sync.Mutex
	settings Settings
	text     string
	file     *textfile.File
	elapsed  time.Duration
	tex      *texture.Texture
	state    State
	err      error
	failing  bool
}

func New(name string, gfx *texture.Graphics, r Renderer) *Source {
	return &Source{name: name, gfx: gfx, r: r}
}

func (s *Source) Name() string { return s.name }

// Update applies new settings and re-renders. The previous texture is
// destroyed before anything else happens.
func (s *Source) Update(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.elapsed = 0
	if settings.FromFile && settings.TextFile != "" {
		if s.file == nil || s.file.Path() != settings.TextFile || s.file.Tail() != settings.ReadFromEnd {
			s.file = textfile.NewFile(settings.TextFile, settings.ReadFromEnd)
		}
		s.text = s.loadLocked()
	} else {
		s.file = nil
		s.text = settings.Text
	}
	s.renderLocked()
}

// Tick advances the file poll clock. Once per PollInterval it checks the text
// file and re-renders when its modification time changed.
func (s *Source) Tick(elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return
	}
	s.elapsed += elapsed
	if s.elapsed < PollInterval {
		return
	}
	s.elapsed = 0
	if !s.file.Changed() {
		return
	}
	Logger().Debug("text file changed", "source", s.name, "path", s.file.Path())
	s.text = s.loadLocked()
	s.renderLocked()
}

// Destroy releases the texture. The source may be updated again afterwards.
func (s *Source) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gfx.Destroy(s.tex)
	s.tex = nil
	s.state = Idle
}

// Texture is the current texture, or nil when nothing is shown.
func (s *Source) Texture() *texture.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tex
}

// Width is the texture width, 0 when nothing is shown.
func (s *Source) Width() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tex.Width()
}

// Height is the texture height, 0 when nothing is shown.
func (s *Source) Height() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tex.Height()
}

func (s *Source) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Text is the text of the last render attempt.
func (s *Source) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Err is the error of the last render, nil after a success or a skip.
func (s *Source) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Source) loadLocked() string {
	text, err := s.file.Load()
	if err == nil {
		return text
	}
	var le *textfile.LoadError
	if errors.As(err, &le) && !le.First {
		return ""
	}
	Logger().Warn("failed to open text file", "source", s.name, "path", s.file.Path(), "err", err)
	return ""
}

func (s *Source) renderLocked() {
	prev := s.tex
	s.tex = nil
	tex, err := run(s.gfx, s.r, s.name, s.text, s.settings.Style, prev, func(st State) { s.state = st })
	switch {
	case err == nil:
		s.tex, s.err, s.failing = tex, nil, false
	case isSkip(err):
		s.err = nil
		Logger().Debug("nothing to render", "source", s.name)
	default:
		s.err = err
		if !s.failing {
			Logger().Warn("render failed", "source", s.name, "err", err)
			s.failing = true
		}
	}
}
