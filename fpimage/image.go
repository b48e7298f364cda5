// Package fpimage converts the sensor's raw image stream to and from
// standard library images.
//
// The sensor streams its 256x288 pixel image as packed 4-bit grayscale,
// two pixels per byte, high nibble first, row major. Decode expands that
// stream into an 8-bit image.Gray; Encode packs one back for upload.
package fpimage

import (
	"fmt"
	"image"
	"io"

	"github.com/cwichel/fpsensor/protocol"
)

// Decode expands a raw sensor image stream into an 8-bit grayscale image.
// Each 4-bit pixel is scaled to the full 8-bit range.
func Decode(raw []byte) (*image.Gray, error) {
	if len(raw) != protocol.ImageStreamSize {
		return nil, fmt.Errorf("image stream must be exactly %d bytes, got %d", protocol.ImageStreamSize, len(raw))
	}

	img := image.NewGray(image.Rect(0, 0, protocol.ImageWidth, protocol.ImageHeight))
	for i, b := range raw {
		img.Pix[2*i] = b & 0xF0
		img.Pix[2*i+1] = (b & 0x0F) << 4
	}
	return img, nil
}

// Encode packs an 8-bit grayscale image into the sensor's raw stream
// format. The image must have the sensor's exact geometry.
func Encode(img *image.Gray) ([]byte, error) {
	bounds := img.Bounds()
	if bounds.Dx() != protocol.ImageWidth || bounds.Dy() != protocol.ImageHeight {
		return nil, fmt.Errorf("image must be %dx%d pixels, got %dx%d",
			protocol.ImageWidth, protocol.ImageHeight, bounds.Dx(), bounds.Dy())
	}

	raw := make([]byte, protocol.ImageStreamSize)
	for y := 0; y < protocol.ImageHeight; y++ {
		for x := 0; x < protocol.ImageWidth; x += 2 {
			hi := img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
			lo := img.GrayAt(bounds.Min.X+x+1, bounds.Min.Y+y).Y
			raw[(y*protocol.ImageWidth+x)/2] = (hi & 0xF0) | (lo >> 4)
		}
	}
	return raw, nil
}

// WritePGM writes the image as a binary PGM (P5) file, the traditional
// container for raw fingerprint captures.
func WritePGM(w io.Writer, img *image.Gray) error {
	bounds := img.Bounds()
	if _, err := fmt.Fprintf(w, "P5\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[(y-bounds.Min.Y)*img.Stride : (y-bounds.Min.Y)*img.Stride+bounds.Dx()]
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
