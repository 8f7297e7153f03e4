package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tawsila/internal/config"
	"tawsila/internal/ids"
	"tawsila/internal/models"
	"tawsila/internal/repository"
)

var pngHead = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

type fakeObjectStore struct {
	bucket      string
	objectKey   string
	contentType string
	data        []byte
}

func (s *fakeObjectStore) Put(_ context.Context, bucket string, objectKey string, data []byte, contentType string) (string, error) {
	s.bucket = bucket
	s.objectKey = objectKey
	s.contentType = contentType
	s.data = data
	return "http://storage.local/" + bucket + "/" + objectKey, nil
}

func avatarFixture() (*AvatarService, *repository.MemoryUserStore, *fakeObjectStore) {
	users := repository.NewMemoryUserStore()
	store := &fakeObjectStore{}
	cfg := &config.AppConfig{
		Storage: config.StorageConfig{BucketAvatars: "tawsila-avatars"},
	}
	return NewAvatarService(users, store, cfg, zerolog.Nop()), users, store
}

func avatarUpload(data []byte, declaredType string) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: "avatar",
		Size:     int64(len(data)),
		Header:   textproto.MIMEHeader{},
	}
	if declaredType != "" {
		header.Header.Set("Content-Type", declaredType)
	}
	return memFile{bytes.NewReader(data)}, header
}

func TestAvatarUploadStoresSniffedType(t *testing.T) {
	svc, users, store := avatarFixture()
	ctx := context.Background()

	user := models.User{ID: ids.New(), Email: "u@b.dz", Roles: []models.Role{models.RoleBuyer}, ActiveRole: models.RoleBuyer}
	require.NoError(t, users.Create(ctx, user))

	file, header := avatarUpload(pngHead, "image/png")
	updated, err := svc.Upload(ctx, user, file, header)
	require.NoError(t, err)

	assert.Equal(t, "tawsila-avatars", store.bucket)
	assert.Equal(t, "avatars/"+user.ID+".png", store.objectKey)
	assert.Equal(t, "image/png", store.contentType)

	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, "http://storage.local/tawsila-avatars/avatars/"+user.ID+".png", *updated.AvatarURL)

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AvatarURL)
	assert.Equal(t, *updated.AvatarURL, *stored.AvatarURL)
}

func TestAvatarUploadRejectsDeclaredTypeMismatch(t *testing.T) {
	svc, _, _ := avatarFixture()

	user := models.User{ID: ids.New(), Roles: []models.Role{models.RoleBuyer}, ActiveRole: models.RoleBuyer}
	file, header := avatarUpload(pngHead, "image/jpeg")

	_, err := svc.Upload(context.Background(), user, file, header)
	assert.ErrorContains(t, err, "content type mismatch")
}

func TestAvatarUploadRejectsUnknownFormat(t *testing.T) {
	svc, _, _ := avatarFixture()

	user := models.User{ID: ids.New(), Roles: []models.Role{models.RoleBuyer}, ActiveRole: models.RoleBuyer}
	file, header := avatarUpload([]byte("<svg xmlns='http://www.w3.org/2000/svg'/>"), "")

	_, err := svc.Upload(context.Background(), user, file, header)
	assert.Error(t, err, "only raster formats are accepted")
}

func TestAvatarUploadRejectsOversizedFile(t *testing.T) {
	svc, _, _ := avatarFixture()

	user := models.User{ID: ids.New(), Roles: []models.Role{models.RoleBuyer}, ActiveRole: models.RoleBuyer}
	file, header := avatarUpload(pngHead, "image/png")
	header.Size = maxAvatarBytes + 1

	_, err := svc.Upload(context.Background(), user, file, header)
	assert.ErrorIs(t, err, ErrAvatarTooLarge)
}
