package s3

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/chungjai123/food-bot/internal/ports/storage"
)

// Client архив фото поверх minio.Client
type Client struct {
	client *minio.Client
	bucket string
	log    *slog.Logger
}

// NewClient создаёт новый S3 клиент
func NewClient(client *minio.Client, bucket string, log *slog.Logger) storage.IPhotoArchive {
	return &Client{
		client: client,
		bucket: bucket,
		log:    log,
	}
}

// PhotoKey ключ объекта: photos/<user_id>/<analysis_id>.jpg
func PhotoKey(userID int64, analysisID uuid.UUID) string {
	return fmt.Sprintf("photos/%d/%s.jpg", userID, analysisID)
}

// PutPhoto загружает фото в бакет
func (c *Client) PutPhoto(ctx context.Context, userID int64, analysisID uuid.UUID, data []byte) (string, error) {
	key := PhotoKey(userID, analysisID)

	info, err := c.client.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "image/jpeg",
		UserMetadata: map[string]string{
			"user-id":     fmt.Sprintf("%d", userID),
			"analysis-id": analysisID.String(),
		},
	})
	if err != nil {
		c.log.Error("failed to put photo",
			"error", err,
			"bucket", c.bucket,
			"key", key)
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	c.log.Debug("photo archived", "key", key, "size", info.Size)
	return key, nil
}
