package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/client"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/dmitrijs2005/dessertcatalog/internal/common"
	"github.com/dmitrijs2005/dessertcatalog/internal/logging"
)

var (
	ErrFileTooLarge = errors.New("file is too large (max 10 MB)")
	ErrNotAnImage   = errors.New("file is not a supported image (jpg, jpeg, png, webp, gif)")
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadService moves dessert images to and from the service. Files are
// checked locally before anything is sent.
type UploadService interface {
	UploadImage(ctx context.Context, path string) (*models.UploadedImage, error)
	DeleteImage(ctx context.Context, filename string) error
}

type uploadService struct {
	client client.Client
	log    logging.Logger
}

func NewUploadService(c client.Client, log logging.Logger) UploadService {
	return &uploadService{client: c, log: log}
}

func (s *uploadService) UploadImage(ctx context.Context, path string) (*models.UploadedImage, error) {
	if !imageExtensions[strings.ToLower(filepath.Ext(path))] {
		return nil, ErrNotAnImage
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if fi.Size() > common.MaxImageSize {
		return nil, ErrFileTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return nil, ErrNotAnImage
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind image: %w", err)
	}

	// the limit guards against the file growing after Stat
	img, err := s.client.UploadImage(ctx, filepath.Base(path), io.LimitReader(f, common.MaxImageSize))
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	s.log.Info(ctx, "image uploaded", "file", filepath.Base(path), "url", img.URL)
	return img, nil
}

func (s *uploadService) DeleteImage(ctx context.Context, filename string) error {
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return fmt.Errorf("%w: invalid image name %q", models.ErrInvalid, filename)
	}
	if err := s.client.DeleteImage(ctx, filename); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
