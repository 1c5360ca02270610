package user

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillfolio/internal/domain/mock"
	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type fakeUploader struct {
	uploads int
	deleted []string
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	f.uploads++
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.Copy(io.Discard, file)
	return "https://cdn.example.com/" + folder + "/" + publicID + ".png", nil
}

func (f *fakeUploader) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return f.err
}

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func seedUser(t *testing.T, repo user.Repository) *user.User {
	t.Helper()
	u := &user.User{ID: uuid.New(), Email: "u@example.com", Name: "U", Role: user.RoleStudent, IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, repo.Save(context.Background(), u))
	return u
}

func TestUploadAvatar_Success(t *testing.T) {
	store := mock.NewStore()
	u := seedUser(t, store.Users())
	up := &fakeUploader{}
	uc := NewUploadAvatarUseCase(store.Users(), up, logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), UploadAvatarInput{
		UserID:      u.ID,
		File:        bytes.NewReader(pngHeader),
		ContentType: "image/png",
	})
	require.NoError(t, err)
	require.NotNil(t, got.AvatarURL)
	assert.Contains(t, *got.AvatarURL, u.ID.String())

	stored, err := store.Users().FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, got.AvatarURL, stored.AvatarURL)
}

func TestUploadAvatar_Rejections(t *testing.T) {
	store := mock.NewStore()
	u := seedUser(t, store.Users())

	cases := []struct {
		name        string
		body        []byte
		contentType string
	}{
		{"declared non-image", pngHeader, "application/pdf"},
		{"sniffed non-image", []byte("%PDF-1.7 not an image"), ""},
		{"too large", append(append([]byte{}, pngHeader...), make([]byte, MaxAvatarBytes)...), "image/png"},
		{"empty", nil, "image/png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			up := &fakeUploader{}
			uc := NewUploadAvatarUseCase(store.Users(), up, logger.NewNopLogger())

			_, err := uc.Execute(context.Background(), UploadAvatarInput{
				UserID: u.ID, File: bytes.NewReader(tc.body), ContentType: tc.contentType,
			})
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
			assert.Zero(t, up.uploads, "nothing may reach storage")
		})
	}
}

func TestUploadAvatar_StorageFailure(t *testing.T) {
	store := mock.NewStore()
	u := seedUser(t, store.Users())
	uc := NewUploadAvatarUseCase(store.Users(), &fakeUploader{err: errors.New("down")}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), UploadAvatarInput{UserID: u.ID, File: bytes.NewReader(pngHeader)})
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

func TestDeactivate(t *testing.T) {
	store := mock.NewStore()
	u := seedUser(t, store.Users())
	up := &fakeUploader{}
	uc := NewDeactivateUseCase(store.Users(), up, logger.NewNopLogger())

	require.NoError(t, uc.Execute(context.Background(), u.ID))
	stored, err := store.Users().FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Empty(t, up.deleted, "no avatar was ever uploaded")

	assert.ErrorIs(t, uc.Execute(context.Background(), uuid.New()), apperror.ErrNotFound)
}

func TestDeactivate_RemovesAvatar(t *testing.T) {
	store := mock.NewStore()
	u := seedUser(t, store.Users())
	require.NoError(t, store.Users().UpdateAvatar(context.Background(), u.ID, "https://cdn.example.com/a.png"))

	up := &fakeUploader{err: errors.New("storage down")}
	uc := NewDeactivateUseCase(store.Users(), up, logger.NewNopLogger())

	require.NoError(t, uc.Execute(context.Background(), u.ID))
	assert.Equal(t, []string{"users/" + u.ID.String() + "/avatar/avatar"}, up.deleted)
}
