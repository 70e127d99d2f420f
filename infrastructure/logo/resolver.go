package logo

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prasetyowira/qrforge/constant"
	appLogger "github.com/prasetyowira/qrforge/infrastructure/logger"
)

const (
	fetchTimeout = 5 * time.Second

	// maxFetchBytes caps remote logo downloads
	maxFetchBytes = 8 << 20
)

// Resolver produces at most one usable logo image per request, trying
// candidate sources in priority order. Every failure falls through silently;
// absence is a valid outcome.
type Resolver struct {
	client      *http.Client
	defaultPath string
}

// NewResolver creates a resolver with an optional default logo file used as
// the last fallback.
func NewResolver(defaultPath string) *Resolver {
	return &Resolver{
		client:      &http.Client{Timeout: fetchTimeout},
		defaultPath: defaultPath,
	}
}

// Resolve tries, in order: uploaded bytes, ref as base64 image data, ref as a
// remote URL, the configured default file. Returns nil when no source yields
// a decodable image.
func (r *Resolver) Resolve(ctx context.Context, upload []byte, ref string) image.Image {
	if len(upload) > 0 {
		if img, err := decode(upload); err == nil {
			return img
		} else {
			appLogger.CtxWarn(ctx, "Uploaded logo not decodable", appLogger.LoggerInfo{
				ContextFunction: constant.CtxLogo,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeLogoDecode,
					Message: err.Error(),
					Type:    constant.ErrTypeLogo,
				},
				Data: map[string]interface{}{
					constant.DataLogoSource: "upload",
					constant.DataSize:       len(upload),
				},
			})
		}
	}

	if ref != "" {
		if raw, err := base64.StdEncoding.DecodeString(ref); err == nil {
			if img, err := decode(raw); err == nil {
				return img
			}
		}

		// A ref that is not base64 image data may still be a fetchable URL
		if img := r.fetch(ctx, ref); img != nil {
			return img
		}
	}

	if r.defaultPath != "" {
		if raw, err := os.ReadFile(r.defaultPath); err == nil {
			if img, err := decode(raw); err == nil {
				return img
			}
		}
	}

	return nil
}

// fetch retrieves and decodes a remote logo with a bounded timeout. Any
// network error, non-200 status or decode failure yields nil.
func (r *Resolver) fetch(ctx context.Context, url string) image.Image {
	reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}

	resp, err := r.client.Do(req)
	if err != nil {
		appLogger.CtxDebug(ctx, "Logo fetch failed", appLogger.LoggerInfo{
			ContextFunction: constant.CtxLogo,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeLogoFetch,
				Message: err.Error(),
				Type:    constant.ErrTypeLogo,
			},
		})
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		appLogger.CtxDebug(ctx, "Logo fetch returned non-200 status", appLogger.LoggerInfo{
			ContextFunction: constant.CtxLogo,
			Data: map[string]interface{}{
				constant.DataStatus: resp.StatusCode,
			},
		})
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil
	}

	img, err := decode(raw)
	if err != nil {
		return nil
	}
	return img
}

// decode parses image bytes and converts them to RGBA.
func decode(raw []byte) (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	return rgba, nil
}
