// Package imageload fetches profile photos from a URL or from the public
// directory and normalizes them to a bounded-size JPEG before they are
// placed on a page.
package imageload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	// ErrUnsupportedSource is returned for sources that are neither http(s) URLs nor paths inside the public directory.
	ErrUnsupportedSource = errors.New("imageload: unsupported image source")
	// ErrTooLarge is returned when the encoded image exceeds Options.MaxBytes.
	ErrTooLarge = errors.New("imageload: image exceeds size limit")
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBytes     = 5 << 20
	DefaultMaxDimension = 1600
	DefaultQuality      = 88
)

var httpURL = regexp.MustCompile(`(?i)^https?://`)

// Options configures a Loader. Zero values fall back to the defaults above.
type Options struct {
	PublicDir    string
	Timeout      time.Duration
	MaxBytes     int64
	MaxDimension int
	Quality      int
	Client       *http.Client
}

// Loader resolves photo sources into decoded images.
type Loader struct {
	opts   Options
	client *http.Client
}

// New returns a Loader with defaults applied.
func New(opts Options) *Loader {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = DefaultMaxDimension
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{opts: opts, client: client}
}

// Load fetches src and normalizes it. A blank source yields a nil image and no error.
func (l *Loader) Load(ctx context.Context, src string) (image.Image, error) {
	data, err := l.Fetch(ctx, src)
	if err != nil || data == nil {
		return nil, err
	}
	return Normalize(data, l.opts.MaxDimension, l.opts.Quality)
}

// Fetch returns the raw bytes behind src without decoding them.
func (l *Loader) Fetch(ctx context.Context, src string) ([]byte, error) {
	s := strings.TrimSpace(src)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(strings.ToLower(s), "www.") {
		s = "https://" + s
	}
	if httpURL.MatchString(s) {
		return l.fetchURL(ctx, s)
	}
	return l.readLocal(s)
}

func (l *Loader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("imageload: build request for %s: %w", url, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imageload: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("imageload: fetch %s: unexpected status %s", url, resp.Status)
	}
	return l.readLimited(resp.Body)
}

func (l *Loader) readLocal(src string) ([]byte, error) {
	rel := filepath.FromSlash(strings.TrimPrefix(src, "/"))
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, src)
	}
	f, err := os.Open(filepath.Join(l.opts.PublicDir, rel))
	if err != nil {
		return nil, fmt.Errorf("imageload: open %s: %w", src, err)
	}
	defer f.Close()
	return l.readLimited(f)
}

func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.opts.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("imageload: read: %w", err)
	}
	if int64(len(data)) > l.opts.MaxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// Normalize decodes data (JPEG, PNG, GIF, BMP, TIFF or WebP), applies the
// EXIF orientation of camera photos, flattens it onto white, shrinks it so
// the longest side is at most maxDim pixels and round-trips it through JPEG
// so every photo reaches the page in the same format.
func Normalize(data []byte, maxDim, quality int) (image.Image, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imageload: decode: %w", err)
	}
	b := src.Bounds()
	w, h := scaledSize(b.Dx(), b.Dy(), maxDim)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("imageload: empty image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Over)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("imageload: encode jpeg: %w", err)
	}
	out, err := jpeg.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("imageload: decode jpeg: %w", err)
	}
	return out, nil
}

func scaledSize(w, h, maxDim int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}
