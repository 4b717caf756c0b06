package output

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names an image encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
	FormatBMP  Format = "bmp"
)

// Sink consumes finished images
type Sink interface {
	Write(img image.Image) error
}

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".bmp":
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("unsupported output extension %q (use .ppm, .png, .tiff or .bmp)", filepath.Ext(path))
	}
}

// PPMSink writes plain-text PPM (P3): one "r g b" line per pixel, rows top to bottom
type PPMSink struct {
	w io.Writer
}

// NewPPMSink creates a PPM sink writing to w
func NewPPMSink(w io.Writer) *PPMSink {
	return &PPMSink{w: w}
}

// Write implements Sink
func (s *PPMSink) Write(img image.Image) error {
	bw := bufio.NewWriter(s.w)
	b := img.Bounds()

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ImageSink encodes images as PNG, TIFF or BMP
type ImageSink struct {
	w      io.Writer
	format Format
}

// NewImageSink creates a binary image sink. PPM is served by NewPPMSink instead.
func NewImageSink(w io.Writer, format Format) (*ImageSink, error) {
	switch format {
	case FormatPNG, FormatTIFF, FormatBMP:
		return &ImageSink{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
}

// Write implements Sink
func (s *ImageSink) Write(img image.Image) error {
	switch s.format {
	case FormatTIFF:
		return tiff.Encode(s.w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatBMP:
		return bmp.Encode(s.w, img)
	default:
		return png.Encode(s.w, img)
	}
}

// NewSink creates the sink for a format
func NewSink(w io.Writer, format Format) (Sink, error) {
	if format == FormatPPM {
		return NewPPMSink(w), nil
	}
	return NewImageSink(w, format)
}

// WriteFile encodes img to path, choosing the format by extension. A leading ~ is expanded
// and missing parent directories are created. It returns the path actually written.
func WriteFile(path string, img image.Image) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand output path: %w", err)
	}

	format, err := FormatFromPath(expanded)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(expanded); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	sink, err := NewSink(file, format)
	if err != nil {
		file.Close()
		return "", err
	}
	if err := sink.Write(img); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close output file: %w", err)
	}
	return expanded, nil
}
