package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/chungjai123/food-bot/internal/domain"
)

// maxDownloadSize лимит Bot API на скачивание файлов
const maxDownloadSize = 20 << 20

// GetFile получает путь файла по file_id
func (c *Client) GetFile(ctx context.Context, fileID string) (*domain.File, error) {
	req := struct {
		FileID string `json:"file_id"`
	}{
		FileID: fileID,
	}

	var file domain.File
	if err := c.call(ctx, "getFile", req, &file); err != nil {
		return nil, err
	}
	if file.FilePath == "" {
		return nil, fmt.Errorf("telegram returned empty file_path for file %s", fileID)
	}
	return &file, nil
}

// DownloadFile скачивает содержимое файла по file_path из GetFile
func (c *Client) DownloadFile(ctx context.Context, filePath string) ([]byte, error) {
	url := c.apiURL + "/file/bot" + c.token + "/" + filePath

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("file download failed",
			"status_code", resp.StatusCode,
			"file_path", filePath,
		)
		return nil, fmt.Errorf("file download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file body: %w", err)
	}
	if len(data) > maxDownloadSize {
		return nil, fmt.Errorf("file %s exceeds %d bytes", filePath, maxDownloadSize)
	}

	c.log.Debug("file downloaded", "file_path", filePath, "size", len(data))
	return data, nil
}
