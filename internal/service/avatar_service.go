package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"

	"tawsila/internal/config"
	"tawsila/internal/media/sniffer"
	"tawsila/internal/models"
)

const maxAvatarBytes = 2 << 20 // 2 MiB

var ErrAvatarTooLarge = errors.New("avatar too large")

// ObjectPutter is the slice of the object store the avatar path needs. The
// minio-backed storage.ObjectStore satisfies it; tests use a fake.
type ObjectPutter interface {
	Put(ctx context.Context, bucket string, objectKey string, data []byte, contentType string) (string, error)
}

type AvatarService struct {
	users UserStore
	store ObjectPutter
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAvatarService(users UserStore, store ObjectPutter, cfg *config.AppConfig, log zerolog.Logger) *AvatarService {
	return &AvatarService{users: users, store: store, cfg: cfg, log: log}
}

// Upload replaces the user's avatar. The content type is sniffed from the
// payload; a declared type that disagrees is rejected.
func (s *AvatarService) Upload(ctx context.Context, user models.User, file multipart.File, header *multipart.FileHeader) (models.User, error) {
	if file == nil || header == nil {
		return models.User{}, errors.New("invalid file payload")
	}
	if header.Size > maxAvatarBytes {
		return models.User{}, ErrAvatarTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		return models.User{}, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > maxAvatarBytes {
		return models.User{}, ErrAvatarTooLarge
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := sniffer.DetectHead(head)
	if err != nil {
		return models.User{}, fmt.Errorf("detect type: %w", err)
	}

	declared := sniffer.MimeTypeFromHTTP(http.Header(header.Header))
	if declared != "" && declared != result.MIME {
		return models.User{}, fmt.Errorf("content type mismatch: declared %s, actual %s", declared, result.MIME)
	}

	objectKey := fmt.Sprintf("avatars/%s.%s", user.ID, result.Type)

	url, err := s.store.Put(ctx, s.cfg.Storage.BucketAvatars, objectKey, data, result.MIME)
	if err != nil {
		return models.User{}, fmt.Errorf("put object: %w", err)
	}

	user.AvatarURL = &url
	if err := s.users.Update(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Str("object_key", objectKey).Msg("avatar updated")
	return user, nil
}
