package barcode

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	bcode "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"
)

// ErrGenerationFailed wraps every failure from the underlying renderers so
// callers can distinguish a rendering problem from a missing product.
var ErrGenerationFailed = errors.New("image generation failed")

const (
	code128Width  = 300
	code128Height = 120
	qrSize        = 200
)

// Code128PNG renders data as a Code 128 linear barcode and returns the PNG
// bytes. An empty input or a renderer error surfaces as ErrGenerationFailed;
// no partial image is ever returned.
func Code128PNG(data string) ([]byte, error) {
	if data == "" {
		return nil, fmt.Errorf("%w: empty barcode data", ErrGenerationFailed)
	}

	code, err := code128.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	scaled, err := bcode.Scale(code, code128Width, code128Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return buf.Bytes(), nil
}

// QRCodePNG renders data as a QR code with medium error recovery and returns
// the PNG bytes.
func QRCodePNG(data string) ([]byte, error) {
	if data == "" {
		return nil, fmt.Errorf("%w: empty QR code data", ErrGenerationFailed)
	}

	img, err := qrcode.Encode(data, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return img, nil
}
