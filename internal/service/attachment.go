package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const genericContentType = "application/octet-stream"

// ObjectStore uploads and removes attachment blobs.
// Delete is best-effort: it logs failures instead of returning them.
type ObjectStore interface {
	Put(ctx context.Context, prefix, fileName string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, objectURL string)
}

// Upload is a file received from a client.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// MediaType returns the declared content type, sniffing the bytes when the
// client sent none or a generic one.
func (u *Upload) MediaType() string {
	ct := strings.TrimSpace(u.ContentType)
	if ct == "" || ct == genericContentType {
		ct = mimetype.Detect(u.Data).String()
	}
	return ct
}

// imageFileName names a note image {unixMillis}-image.{subtype}.
func imageFileName(now time.Time, contentType string) string {
	return fmt.Sprintf("%d-image.%s", now.UnixMilli(), mimeSubtype(contentType))
}

// audioFileName names a note recording; recordings are always stored as .wav.
func audioFileName(now time.Time) string {
	return fmt.Sprintf("%d-audio.wav", now.UnixMilli())
}

// profileFileName names a profile picture {ownerID}_{originalName}.
// Two uploads with the same original name overwrite each other.
func profileFileName(ownerID, original string) string {
	name := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "profile"
	}
	return ownerID + "_" + name
}

// mimeSubtype returns "png" for "image/png; charset=x".
func mimeSubtype(contentType string) string {
	ct := contentType
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	_, sub, ok := strings.Cut(strings.TrimSpace(ct), "/")
	if !ok || sub == "" {
		return "bin"
	}
	return sub
}
