// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package editor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/danielhkuo/polycanvas/canvas"
)

// maxBackgroundBytes caps how much of a remote image is read.
const maxBackgroundBytes = 32 << 20

// LoadBackground reads a PNG, JPEG or WebP image from a file path or an
// http(s) URL and scales it to the logical canvas size. Callers render the
// fallback fill when it returns an error.
func LoadBackground(ctx context.Context, src string) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("no background image configured")
	}

	var raw []byte
	var err error
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		raw, err = fetchBackground(ctx, src)
	} else {
		raw, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load background %s: %w", src, err)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode background %s: %w", src, err)
	}

	slog.Debug("background loaded",
		"source", src,
		"format", format,
		"size", humanize.Bytes(uint64(len(raw))),
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
	)

	return scaleToCanvas(img), nil
}

func fetchBackground(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBackgroundBytes))
}

func scaleToCanvas(img image.Image) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, canvas.Width, canvas.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
