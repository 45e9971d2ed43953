package storage

import (
	"context"

	"github.com/google/uuid"
)

// IPhotoArchive архив присланных фото в S3-совместимом хранилище (MinIO)
type IPhotoArchive interface {
	// PutPhoto сохраняет jpeg и возвращает ключ объекта
	PutPhoto(ctx context.Context, userID int64, analysisID uuid.UUID, data []byte) (string, error)
}
