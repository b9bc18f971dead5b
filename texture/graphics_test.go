package texture

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/gputypes"
)

type testImage struct {
	w, h, stride int
	pix          []byte
}

func (i *testImage) Width() int  { return i.w }
func (i *testImage) Height() int { return i.h }
func (i *testImage) Stride() int { return i.stride }
func (i *testImage) Pix() []byte { return i.pix }

func newTestImage(w, h, stride int) *testImage {
	pix := make([]byte, stride*h)
	for i := range pix {
		pix[i] = byte(i)
	}
	return &testImage{w: w, h: h, stride: stride, pix: pix}
}

func TestNewDescriptor(t *testing.T) {
	d := NewDescriptor("text", 30, 20)
	if d.Size.Width != 30 || d.Size.Height != 20 || d.Size.DepthOrArrayLayers != 1 {
		t.Fatalf("unexpected size %+v", d.Size)
	}
	if d.Format != gputypes.TextureFormatRGBA8Unorm || d.Dimension != gputypes.TextureDimension2D {
		t.Fatalf("unexpected format %v / dimension %v", d.Format, d.Dimension)
	}
	if d.MipLevelCount != 1 || d.SampleCount != 1 {
		t.Fatalf("overlay textures must have a single level and sample")
	}
	if d.ByteSize() != 30*20*4 {
		t.Fatalf("unexpected byte size %d", d.ByteSize())
	}
}

func TestReplaceDestroysBeforeCreate(t *testing.T) {
	dev := NewMemoryDevice()
	g := NewGraphics(dev)

	first, err := g.Replace(nil, newTestImage(4, 4, 16), "a")
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	second, err := g.Replace(first, newTestImage(2, 2, 8), "b")
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if !first.IsDestroyed() {
		t.Fatalf("previous texture must be destroyed")
	}
	if dev.Live() != 1 {
		t.Fatalf("exactly one texture must be alive, got %d", dev.Live())
	}
	if second.Width() != 2 || second.Height() != 2 || second.Label() != "b" {
		t.Fatalf("unexpected texture %+v", second.Descriptor())
	}
}

func TestReplaceCopiesPixels(t *testing.T) {
	dev := NewMemoryDevice()
	g := NewGraphics(dev)
	img := newTestImage(3, 2, 12)
	want := bytes.Clone(img.pix)

	tex, err := g.Replace(nil, img, "copy")
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	for i := range img.pix {
		img.pix[i] = 0
	}
	got, ok := dev.Pixels(tex.Handle())
	if !ok {
		t.Fatalf("texture not found on device")
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("device must keep its own copy of the pixels")
	}
}

func TestReplacePacksStridedRows(t *testing.T) {
	dev := NewMemoryDevice()
	g := NewGraphics(dev)
	img := newTestImage(2, 3, 12) // 4 padding bytes per row

	tex, err := g.Replace(nil, img, "strided")
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	got, _ := dev.Pixels(tex.Handle())
	if len(got) != 2*3*4 {
		t.Fatalf("unexpected packed size %d", len(got))
	}
	if !bytes.Equal(got[8:16], img.pix[12:20]) {
		t.Fatalf("second row misplaced: %v", got[8:16])
	}
}

func TestReplaceFailureLeavesNoTexture(t *testing.T) {
	dev := NewMemoryDevice()
	g := NewGraphics(dev)
	prev, err := g.Replace(nil, newTestImage(2, 2, 8), "old")
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}

	boom := errors.New("out of video memory")
	dev.FailCreate = boom
	tex, err := g.Replace(prev, newTestImage(2, 2, 8), "new")
	if !errors.Is(err, boom) {
		t.Fatalf("expected device error, got %v", err)
	}
	if tex != nil {
		t.Fatalf("no texture may be returned on failure")
	}
	if !prev.IsDestroyed() || dev.Live() != 0 {
		t.Fatalf("old texture must stay destroyed after a failed upload")
	}
}

func TestReplaceRejectsOversize(t *testing.T) {
	dev := NewMemoryDevice()
	dev.MaxSize = 8
	g := NewGraphics(dev)
	if _, err := g.Replace(nil, newTestImage(9, 1, 36), "big"); !errors.Is(err, ErrTextureTooLarge) {
		t.Fatalf("expected ErrTextureTooLarge, got %v", err)
	}
	if _, err := g.Replace(nil, &testImage{w: 2, h: 2, stride: 8, pix: make([]byte, 4)}, "short"); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	dev := NewMemoryDevice()
	g := NewGraphics(dev)
	tex, err := g.Replace(nil, newTestImage(1, 1, 4), "x")
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	g.Destroy(tex)
	g.Destroy(tex)
	g.Destroy(nil)
	if dev.Live() != 0 {
		t.Fatalf("texture still alive")
	}
}

func TestGraphicsSerializesAccess(t *testing.T) {
	dev := NewMemoryDevice()
	g := NewGraphics(dev)

	var (
		wg     sync.WaitGroup
		inside int
		peak   int
		mu     sync.Mutex
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Do(func(Device) error {
				mu.Lock()
				inside++
				peak = max(peak, inside)
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	if peak != 1 {
		t.Fatalf("graphics lock must be exclusive, saw %d holders", peak)
	}
}

func TestNilDevice(t *testing.T) {
	g := NewGraphics(nil)
	if _, err := g.Replace(nil, newTestImage(1, 1, 4), "x"); !errors.Is(err, ErrNilDevice) {
		t.Fatalf("expected ErrNilDevice, got %v", err)
	}
}
