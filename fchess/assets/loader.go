package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

type Quality int

const (
	QualityHigh Quality = iota
	QualityLow
)

func (q Quality) String() string {
	if q == QualityLow {
		return "low"
	}
	return "high"
}

func (q Quality) Toggle() Quality {
	if q == QualityLow {
		return QualityHigh
	}
	return QualityLow
}

func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "":
		return QualityHigh, nil
	case "low":
		return QualityLow, nil
	default:
		return QualityHigh, fmt.Errorf("unknown texture quality %q", s)
	}
}

type TextureId string

func makeTextureId() TextureId {
	return TextureId(uuid.NewString())
}

type TextureRequest struct {
	Path string
	Name string
}

type Texture struct {
	Id    TextureId
	Name  string
	Image *image.RGBA
	// Placeholder is set when the file was missing.
	Placeholder bool
}

func (t Texture) Size() (int, int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

// SceneTextures lists the material maps of every textured scene object.
func SceneTextures(dir string) []TextureRequest {
	var reqs []TextureRequest
	objects := []struct{ folder, prefix string }{
		{"floor", "Floor"},
		{"table", "Table"},
		{"board", "Board"},
		{"black_pieces", "BlackPieces"},
		{"white_pieces", "WhitePieces"},
	}
	maps := []struct{ file, suffix string }{
		{"diffuse", "Image"},
		{"ambient", "Ambient"},
		{"roughness", "Roughness"},
		{"normal", "Normal"},
	}
	for _, o := range objects {
		for _, m := range maps {
			reqs = append(reqs, TextureRequest{
				Path: filepath.Join(dir, "textures", o.folder, m.file+"_high.jpg"),
				Name: o.prefix + m.suffix,
			})
		}
	}
	return reqs
}

type Progress struct {
	Decoded  int
	Uploaded int
	Total    int
}

// Percent is the share of textures already handed over for upload.
func (p Progress) Percent() float32 {
	if p.Total == 0 {
		return 100
	}
	return float32(p.Uploaded) * 100 / float32(p.Total)
}

// Loader decodes textures in the background. Decoded textures are handed
// over with Drain; the loader is complete once everything has been drained.
type Loader struct {
	Quality      Quality
	Parallelism  int
	Placeholders bool

	mu       sync.Mutex
	ready    []Texture
	progress Progress
	finished bool
	err      error
	cancel   context.CancelFunc
}

func NewLoader(quality Quality) *Loader {
	return &Loader{
		Quality:      quality,
		Parallelism:  runtime.NumCPU(),
		Placeholders: true,
	}
}

// Start begins decoding reqs and returns immediately.
func (l *Loader) Start(ctx context.Context, reqs []TextureRequest) {
	ctx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	l.cancel = cancel
	l.progress = Progress{Total: len(reqs)}
	l.ready = nil
	l.finished = false
	l.err = nil
	l.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	if l.Parallelism > 0 {
		g.SetLimit(l.Parallelism)
	}

	go func() {
		for _, req := range reqs {
			req := req
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				tex, err := l.load(req)
				if err != nil {
					return err
				}
				l.mu.Lock()
				l.ready = append(l.ready, tex)
				l.progress.Decoded++
				l.mu.Unlock()
				return nil
			})
		}
		err := g.Wait()
		l.mu.Lock()
		l.finished = true
		l.err = err
		l.mu.Unlock()
		cancel()
	}()
}

func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
}

func (l *Loader) load(req TextureRequest) (Texture, error) {
	img, err := decodeFile(req.Path)
	if errors.Is(err, fs.ErrNotExist) && l.Placeholders {
		return Texture{Id: makeTextureId(), Name: req.Name, Image: placeholder(), Placeholder: true}, nil
	}
	if err != nil {
		return Texture{}, fmt.Errorf("texture %s: %w", req.Name, err)
	}
	var rgba *image.RGBA
	if l.Quality == QualityLow {
		rgba = Downscale(img, 2)
	} else {
		rgba = toRGBA(img)
	}
	return Texture{Id: makeTextureId(), Name: req.Name, Image: rgba}, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Drain hands over every texture decoded since the last call.
func (l *Loader) Drain() []Texture {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.ready
	l.ready = nil
	l.progress.Uploaded += len(out)
	return out
}

// Poll reports progress and whether loading is complete. Loading is complete
// when decoding has finished and every texture has been drained, or when
// decoding failed.
func (l *Loader) Poll() (Progress, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.progress, true, l.err
	}
	done := l.finished && len(l.ready) == 0 && l.progress.Uploaded == l.progress.Total
	return l.progress, done, nil
}

// Downscale shrinks img by factor in both directions.
func Downscale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx()/factor, b.Dy()/factor
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func placeholder() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	magenta := color.RGBA{R: 255, B: 255, A: 255}
	img.Set(0, 0, magenta)
	img.Set(1, 1, magenta)
	img.Set(1, 0, color.Black)
	img.Set(0, 1, color.Black)
	return img
}
