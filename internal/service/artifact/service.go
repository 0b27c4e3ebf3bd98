package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"bidproposal-backend/internal/config"
)

var (
	ErrNotFound = errors.New("artifact not found")
	ErrWrite    = errors.New("artifact write failed")
	ErrTimeout  = errors.New("artifact store request timed out")
)

const folderMarker = ".folder"

type Item struct {
	Name     string `json:"name"`
	IsFolder bool   `json:"is_folder"`
}

// Service is the uniform artifact-store surface. Folders map to object key
// prefixes; version files live under their document's folder.
type Service interface {
	CreateFolder(ctx context.Context, name string) (string, error)
	PutFile(ctx context.Context, folder, fileName string, data []byte) error
	GetFile(ctx context.Context, folder, fileName string) ([]byte, error)
	ListChildren(ctx context.Context, folder string) ([]Item, error)
	DeleteItem(ctx context.Context, path string) error
	UpdateFile(ctx context.Context, path string, data []byte) error
}

type service struct {
	client  *minio.Client
	bucket  string
	timeout time.Duration
}

func NewService(client *minio.Client, cfg *config.Config) Service {
	return &service{
		client:  client,
		bucket:  cfg.MinIOBucket,
		timeout: cfg.StorageTimeout,
	}
}

// CreateFolder provisions a folder prefix, renaming on conflict the way the
// upstream provider does: "name" becomes "name-2", "name-3", and so on until
// a free prefix is found.
func (s *service) CreateFolder(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	candidate := name
	for i := 2; ; i++ {
		exists, err := s.prefixExists(ctx, candidate)
		if err != nil {
			return "", s.wrap(ctx, err)
		}
		if !exists {
			break
		}
		candidate = fmt.Sprintf("%s-%d", name, i)
	}

	_, err := s.client.PutObject(ctx, s.bucket, candidate+"/"+folderMarker,
		bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	if err != nil {
		return "", s.wrapWrite(ctx, err)
	}

	return candidate, nil
}

func (s *service) PutFile(ctx context.Context, folder, fileName string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := folder + "/" + fileName
	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: contentTypeFor(fileName),
		})
	if err != nil {
		return s.wrapWrite(ctx, err)
	}
	return nil
}

func (s *service) GetFile(ctx context.Context, folder, fileName string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	obj, err := s.client.GetObject(ctx, s.bucket, folder+"/"+fileName, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(ctx, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrap(ctx, err)
	}
	return data, nil
}

func (s *service) ListChildren(ctx context.Context, folder string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prefix := strings.TrimSuffix(folder, "/") + "/"
	items := make([]Item, 0)

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, s.wrap(ctx, obj.Err)
		}

		name := strings.TrimPrefix(obj.Key, prefix)
		if name == folderMarker {
			continue
		}
		if isFolder := strings.HasSuffix(name, "/"); isFolder {
			items = append(items, Item{Name: strings.TrimSuffix(name, "/"), IsFolder: true})
			continue
		}
		items = append(items, Item{Name: name})
	}

	return items, nil
}

func (s *service) DeleteItem(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		return s.wrap(ctx, err)
	}
	return nil
}

func (s *service) UpdateFile(ctx context.Context, path string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, s.bucket, path,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: contentTypeFor(path),
		})
	if err != nil {
		return s.wrapWrite(ctx, err)
	}
	return nil
}

func (s *service) prefixExists(ctx context.Context, prefix string) (bool, error) {
	opts := minio.ListObjectsOptions{Prefix: prefix + "/", MaxKeys: 1}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return false, obj.Err
		}
		return true, nil
	}
	return false, nil
}

func (s *service) wrap(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
		return ErrNotFound
	}
	return err
}

func (s *service) wrapWrite(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrWrite, err)
}

func contentTypeFor(name string) string {
	if strings.HasSuffix(name, ".json") {
		return "application/json"
	}
	return "application/octet-stream"
}
