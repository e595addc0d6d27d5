package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"coursemarket-be/internal/logger"

	"go.uber.org/zap"
)

// lookupTimeout bounds every cross-service query feeding order construction.
const lookupTimeout = 10 * time.Second

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrUserNotFound   = errors.New("user not found")
)

func get(ctx context.Context, httpClient *http.Client, url string, notFound error, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		logger.FromCtx(ctx).Error("lookup request failed",
			zap.String("url", url),
			zap.Error(err),
		)
		return fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return notFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read lookup response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.FromCtx(ctx).Error("lookup returned non-success status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", body),
		)
		return fmt.Errorf("lookup error: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("malformed lookup response: %w", err)
	}
	return nil
}
