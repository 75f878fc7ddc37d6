package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quiltshop-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Save(ctx context.Context, file io.Reader, originalName string) (string, error)
}

type service struct {
	dir          string
	publicOrigin string
}

func NewService(dir, publicOrigin string) (Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	return &service{dir: dir, publicOrigin: publicOrigin}, nil
}

// Save stores the image under a generated name and returns its public URL.
func (s *service) Save(ctx context.Context, file io.Reader, originalName string) (string, error) {
	log := logger.FromCtx(ctx)

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".png"
	}

	name := fmt.Sprintf("img_%s%s", uuid.New().String(), ext)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		log.Error("failed to create upload file", zap.String("path", path), zap.Error(err))
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Error("failed to write upload file", zap.String("path", path), zap.Error(err))
		return "", err
	}

	return s.publicOrigin + "/uploads/" + name, nil
}
