package graphics

import (
	"fmt"
	"image"
	"io"
	"os"

	// Decoders for texture files.
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/bmp"
)

// EncodeBMP writes img as an uncompressed BMP.
func EncodeBMP(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}

// SaveBMP writes the framebuffer to path as a BMP file.
func SaveBMP(path string, fb *Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot %s: %w", path, err)
	}
	if err := EncodeBMP(f, fb); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return f.Close()
}

// DecodeTexture decodes any registered image format (PNG, JPEG, BMP).
func DecodeTexture(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return NewTextureFromImage(img)
}
