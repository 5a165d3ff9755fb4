// Package qrcode renders provisioning URIs as PNG images.
package qrcode

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	MinSize     = 128
	MaxSize     = 1024
)

// ErrEmptyContent is returned when there is nothing to encode.
var ErrEmptyContent = errors.New("qrcode: empty content")

// PNG encodes content at medium error correction. size is clamped to
// [MinSize, MaxSize]; zero means DefaultSize.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	if size == 0 {
		size = DefaultSize
	}
	size = min(max(size, MinSize), MaxSize)

	return qrcode.Encode(content, qrcode.Medium, size)
}
