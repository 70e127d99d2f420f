package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/prasetyowira/qrforge/constant"
	appLogger "github.com/prasetyowira/qrforge/infrastructure/logger"
)

// Symbology selects the encoding scheme for a generated code.
type Symbology string

const (
	SymbologyQR      Symbology = "QR"
	SymbologyBarcode Symbology = "Barcode128"
	SymbologyWifiQR  Symbology = "WifiQR"
)

// Wifi holds the credential fields for a Wi-Fi QR code.
type Wifi struct {
	SSID     string
	Password string
	Security string
}

// Request describes one code to render.
type Request struct {
	Payload   string
	Symbology Symbology
	Wifi      Wifi
}

const (
	// modulePixels fixes the raster scale per QR module; the overall image
	// size tracks the version chosen to fit the payload.
	modulePixels = 10

	barcodeWidth   = 400
	barcodeHeight  = 160
	textBandHeight = 24
)

// WifiPayload builds the field-delimited Wi-Fi credential payload. Delimiter
// characters (';', ':') in the SSID or password are not escaped and will
// corrupt the encoded format.
func WifiPayload(ssid, password, security string) string {
	if security == "" {
		security = constant.SecurityWPA
	}
	return fmt.Sprintf("WIFI:S:%s;T:%s;P:%s;;", ssid, security, password)
}

// Render turns a request into a base raster image ready for compositing.
func Render(ctx context.Context, req Request) (image.Image, error) {
	switch req.Symbology {
	case SymbologyQR:
		return renderQR(ctx, req.Payload)
	case SymbologyWifiQR:
		return renderQR(ctx, WifiPayload(req.Wifi.SSID, req.Wifi.Password, req.Wifi.Security))
	case SymbologyBarcode:
		return renderBarcode(ctx, req.Payload)
	default:
		return nil, errors.New(constant.ErrUnknownSymbology)
	}
}

// renderQR encodes the payload at the highest error-correction level and
// flattens the matrix to an opaque raster.
func renderQR(ctx context.Context, payload string) (image.Image, error) {
	code, err := qrcode.New(payload, qrcode.Highest)
	if err != nil {
		appLogger.CtxWarn(ctx, "Failed to encode QR payload", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRender,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeEncodingFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataPayloadLen: len(payload),
			},
		})
		return nil, err
	}

	src := code.Image(-modulePixels)

	return flatten(src), nil
}

// renderBarcode encodes the payload as Code 128 with the human-readable text
// drawn beneath the bars.
func renderBarcode(ctx context.Context, payload string) (image.Image, error) {
	encoded, err := code128.Encode(payload)
	if err != nil {
		appLogger.CtxWarn(ctx, "Payload not encodable as Code 128", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRender,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeEncodingFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataPayloadLen: len(payload),
			},
		})
		return nil, errors.New(constant.ErrUnsupportedPayload)
	}

	// Long payloads need more than the default width for whole-pixel modules
	width := barcodeWidth
	if min := encoded.Bounds().Dx() * 2; min > width {
		width = min
	}

	scaled, err := barcode.Scale(encoded, width, barcodeHeight)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, barcodeHeight+textBandHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(img, scaled.Bounds(), scaled, scaled.Bounds().Min, draw.Over)

	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	textWidth := drawer.MeasureString(payload)
	drawer.Dot = fixed.Point26_6{
		X: (fixed.I(width) - textWidth) / 2,
		Y: fixed.I(barcodeHeight + textBandHeight - 8),
	}
	drawer.DrawString(payload)

	return img, nil
}

// flatten converts any decoded image to an opaque RGBA raster so downstream
// compositing never has to deal with source alpha.
func flatten(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(img, bounds, src, bounds.Min, draw.Over)
	return img
}
