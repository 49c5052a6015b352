package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// ImagePNG renders the payload as a QR code PNG.
func ImagePNG(data []byte) ([]byte, error) {
	png, err := qrcode.Encode(string(data), qrcode.Medium, defaultSize)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}
	return png, nil
}

// DataURI renders the payload as a data: URI suitable for embedding in a
// pass email.
func DataURI(data []byte) (string, error) {
	png, err := ImagePNG(data)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
