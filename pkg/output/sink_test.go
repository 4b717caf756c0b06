package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{12, 34, 56, 255})
	return img
}

func TestPPMSink_PlainText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPPMSink(&buf).Write(testImage()))

	expected := "P3\n2 2\n255\n" +
		"255 0 0\n" +
		"0 255 0\n" +
		"0 0 255\n" +
		"12 34 56\n"
	assert.Equal(t, expected, buf.String())
}

func TestPPMSink_OffsetBounds(t *testing.T) {
	img := testImage().SubImage(image.Rect(1, 1, 2, 2))

	var buf bytes.Buffer
	require.NoError(t, NewPPMSink(&buf).Write(img))
	assert.Equal(t, "P3\n1 1\n255\n12 34 56\n", buf.String())
}

func TestImageSink_Encodings(t *testing.T) {
	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		FormatPNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		FormatTIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
		FormatBMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
	}

	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			sink, err := NewImageSink(&buf, format)
			require.NoError(t, err)
			require.NoError(t, sink.Write(testImage()))

			decoded, err := decode(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 2, 2), decoded.Bounds())

			r, g, b, _ := decoded.At(1, 1).RGBA()
			assert.Equal(t, []uint32{12, 34, 56}, []uint32{r >> 8, g >> 8, b >> 8})
		})
	}
}

func TestNewImageSink_RejectsPPM(t *testing.T) {
	_, err := NewImageSink(&bytes.Buffer{}, FormatPPM)
	assert.Error(t, err)

	sink, err := NewSink(&bytes.Buffer{}, FormatPPM)
	require.NoError(t, err)
	assert.IsType(t, &PPMSink{}, sink)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"out.ppm", FormatPPM, false},
		{"dir/render.PNG", FormatPNG, false},
		{"a.tif", FormatTIFF, false},
		{"a.tiff", FormatTIFF, false},
		{"a.bmp", FormatBMP, false},
		{"a.jpg", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "render.ppm")

	written, err := WriteFile(path, testImage())
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("P3\n2 2\n255\n")))

	_, err = WriteFile(filepath.Join(dir, "render.gif"), testImage())
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "render.gif"))
	assert.True(t, os.IsNotExist(statErr))
}
