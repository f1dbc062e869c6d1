package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentFileNames(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	assert.Equal(t, "1700000000123-image.png", imageFileName(now, "image/png"))
	assert.Equal(t, "1700000000123-image.svg+xml", imageFileName(now, "image/svg+xml"))
	assert.Equal(t, "1700000000123-image.jpeg", imageFileName(now, "image/jpeg; charset=binary"))
	assert.Equal(t, "1700000000123-image.bin", imageFileName(now, "garbage"))
	assert.Equal(t, "1700000000123-audio.wav", audioFileName(now))

	assert.Equal(t, "u1_avatar.png", profileFileName("u1", "avatar.png"))
	assert.Equal(t, "u1_avatar.png", profileFileName("u1", `C:\Users\me\avatar.png`))
	assert.Equal(t, "u1_passwd", profileFileName("u1", "../../etc/passwd"))
	assert.Equal(t, "u1_profile", profileFileName("u1", ""))
}

func TestUpload_MediaType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	assert.Equal(t, "audio/webm", (&Upload{ContentType: "audio/webm", Data: png}).MediaType())
	assert.Equal(t, "image/png", (&Upload{Data: png}).MediaType())
	assert.Equal(t, "image/png", (&Upload{ContentType: "application/octet-stream", Data: png}).MediaType())
}
