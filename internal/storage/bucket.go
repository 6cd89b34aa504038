package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const objectNameRandomBytes = 16

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidName    = errors.New("invalid object name")
)

// Bucket - публичный бакет фотографий на локальном диске
type Bucket struct {
	root      string
	name      string
	publicURL string
}

// NewBucket создает каталог бакета. publicBaseURL - адрес сервиса без завершающего слеша.
func NewBucket(dir, name, publicBaseURL string) (*Bucket, error) {
	root := filepath.Join(dir, name)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bucket dir: %w", err)
	}
	return &Bucket{
		root:      root,
		name:      name,
		publicURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (b *Bucket) Name() string {
	return b.name
}

// Upload сохраняет объект под случайным именем с расширением исходного файла
func (b *Bucket) Upload(ctx context.Context, originalName string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	objectName, err := generateObjectName(filepath.Ext(originalName))
	if err != nil {
		return "", fmt.Errorf("failed to generate object name: %w", err)
	}

	path := filepath.Join(b.root, objectName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create object: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close object: %w", err)
	}
	return objectName, nil
}

// PublicURL возвращает адрес, по которому объект отдается без авторизации
func (b *Bucket) PublicURL(objectName string) string {
	return fmt.Sprintf("%s/api/v1/storage/%s/%s", b.publicURL, b.name, objectName)
}

// Object - открытый объект бакета
type Object struct {
	io.ReadSeekCloser
	Size        int64
	ContentType string
}

// Open открывает объект и определяет его тип по содержимому
func (b *Bucket) Open(objectName string) (*Object, error) {
	if objectName == "" || objectName != filepath.Base(objectName) || strings.HasPrefix(objectName, ".") {
		return nil, ErrInvalidName
	}

	f, err := os.Open(filepath.Join(b.root, objectName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to open object: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to detect content type: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rewind object: %w", err)
	}

	return &Object{ReadSeekCloser: f, Size: info.Size(), ContentType: mtype.String()}, nil
}

func generateObjectName(ext string) (string, error) {
	buffer := make([]byte, objectNameRandomBytes)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer) + strings.ToLower(ext), nil
}
