package ticket

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	goqrcode "github.com/skip2/go-qrcode"

	"cart-ticketing-service/internal/models"
)

// Codec renders opaque text as a QR raster and recovers it again. The text
// handed to Encode is the cipher's base64 blob, so the symbol only ever
// carries printable characters; medium error correction is plenty for blobs
// of a few dozen bytes.
type Codec struct {
	size     int
	recovery goqrcode.RecoveryLevel
}

// NewCodec creates a ticket codec rendering symbols of the given pixel size.
func NewCodec(size int) *Codec {
	if size <= 0 {
		size = 256
	}
	return &Codec{size: size, recovery: goqrcode.Medium}
}

// Encode renders text as a QR code PNG.
func (c *Codec) Encode(text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot encode empty text")
	}
	png, err := goqrcode.Encode(text, c.recovery, c.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// Decode scans raster for a QR symbol and returns its text. It performs no
// cryptography; the result is the same opaque blob Encode was given. When
// the bytes are not an image, or the image holds no recoverable symbol, it
// returns models.ErrUnreadableImage.
func (c *Codec) Decode(raster []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(raster))
	if err != nil {
		return "", models.ErrUnreadableImage
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", models.ErrUnreadableImage
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", models.ErrUnreadableImage
	}
	return result.GetText(), nil
}
