package s3

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPhotoKey(t *testing.T) {
	id := uuid.MustParse("4a8f1a4e-7d5f-4c1e-9a55-0c2a7f3d9b11")
	assert.Equal(t, "photos/42/4a8f1a4e-7d5f-4c1e-9a55-0c2a7f3d9b11.jpg", PhotoKey(42, id))
}

func TestConfigEnabled(t *testing.T) {
	assert.False(t, (&Config{}).Enabled())
	assert.True(t, (&Config{Host: "localhost:9000"}).Enabled())
}
