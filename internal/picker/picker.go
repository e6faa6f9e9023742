// Package picker turns an image file chosen by the user into cover bytes.
package picker

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// CoverWidth and CoverHeight bound the stored cover thumbnail.
	CoverWidth  = 300
	CoverHeight = 450

	jpegQuality = 85
)

// ErrUnsupportedFormat is returned for files imaging cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// imageExts lists the accepted extensions in display order.
var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff"}

var extensions = func() map[string]bool {
	m := make(map[string]bool, len(imageExts))
	for _, ext := range imageExts {
		m[ext] = true
	}
	return m
}()

// IsImage reports whether path has an image extension the picker accepts.
func IsImage(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Extensions returns the accepted file extensions.
func Extensions() []string {
	return slices.Clone(imageExts)
}

// Result is the outcome of one pick: cover bytes, or a cancellation that
// leaves the current cover unchanged.
type Result struct {
	Path     string
	Data     []byte
	Canceled bool
}

// Pick loads path as a cover. An empty path is a cancelled pick.
func Pick(path string) (Result, error) {
	if strings.TrimSpace(path) == "" {
		return Result{Canceled: true}, nil
	}
	data, err := Load(path)
	if err != nil {
		return Result{}, err
	}
	return Result{Path: path, Data: data}, nil
}

// Load decodes an image file and returns it as a JPEG cover that fits in
// CoverWidth x CoverHeight.
func Load(path string) ([]byte, error) {
	if !IsImage(path) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	return Encode(src)
}

// Decode reads cover bytes back into an image.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding cover: %w", err)
	}
	return img, nil
}

// Encode fits img into the cover bounds and encodes it as JPEG.
// Transparent areas are flattened onto white.
func Encode(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() > CoverWidth || b.Dy() > CoverHeight {
		img = imaging.Fit(img, CoverWidth, CoverHeight, imaging.Lanczos)
	}
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
	img = imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encoding cover: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail scales cover bytes to fit w x h, centred on a dark canvas of
// exactly that size. It is used for inline terminal previews.
func Thumbnail(data []byte, w, h int) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	fitted := imaging.Fit(img, w, h, imaging.Lanczos)
	canvas := imaging.New(w, h, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	out := imaging.PasteCenter(canvas, fitted)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
