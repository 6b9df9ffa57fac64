package s3

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		disableSSL bool
		region     string
		want       string
	}{
		{"minio plain", "http://localhost:9000", true, "us-east-1", "http://localhost:9000/media/a.mp4"},
		{"minio tls", "minio.local", false, "", "https://minio.local/media/a.mp4"},
		{"aws default region", "", false, "", "https://media.s3.us-east-1.amazonaws.com/a.mp4"},
		{"aws region", "", false, "eu-west-1", "https://media.s3.eu-west-1.amazonaws.com/a.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectURL(tt.endpoint, tt.disableSSL, tt.region, "media", "a.mp4"))
		})
	}
}

func TestMediaKey(t *testing.T) {
	key := MediaKey("alice@example.com", "video", "Clip.MP4")
	assert.True(t, strings.HasPrefix(key, "media/video/alice_at_example.com/"))
	assert.True(t, strings.HasSuffix(key, ".mp4"))
	assert.NotEqual(t, key, MediaKey("alice@example.com", "video", "Clip.MP4"))
}
