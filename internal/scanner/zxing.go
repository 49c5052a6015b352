package scanner

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

// ZXingDecoder decodes QR codes from camera frames.
type ZXingDecoder struct {
	reader gozxing.Reader
}

func NewZXingDecoder() *ZXingDecoder {
	return &ZXingDecoder{reader: zxqrcode.NewQRCodeReader()}
}

func (d *ZXingDecoder) Decode(img image.Image) ([]byte, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("prepare frame: %w", err)
	}
	result, err := d.reader.Decode(bmp, nil)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return []byte(result.GetText()), nil
}
