package utils

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var ErrInvalidDataURL = errors.New("invalid data url")

// MaxImageBytes caps decoded portfolio images.
const MaxImageBytes = 8 << 20

var imageExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// DecodedImage is the payload of a base64 image data URL.
type DecodedImage struct {
	Data        []byte
	ContentType string
	Ext         string
}

// DecodeImageDataURL parses "data:image/<type>;base64,<payload>". The
// declared type must agree with the sniffed content.
func DecodeImageDataURL(s string) (DecodedImage, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return DecodedImage{}, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return DecodedImage{}, ErrInvalidDataURL
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return DecodedImage{}, ErrInvalidDataURL
	}
	ext, ok := imageExt[strings.ToLower(mediaType)]
	if !ok {
		return DecodedImage{}, ErrInvalidDataURL
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes {
		return DecodedImage{}, ErrInvalidDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return DecodedImage{}, ErrInvalidDataURL
	}
	if sniffed := http.DetectContentType(data); sniffed != strings.ToLower(mediaType) {
		return DecodedImage{}, ErrInvalidDataURL
	}
	return DecodedImage{Data: data, ContentType: strings.ToLower(mediaType), Ext: ext}, nil
}
