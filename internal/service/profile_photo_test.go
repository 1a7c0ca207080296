package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type fakeFileAPI struct {
	photos    *models.UserProfilePhotos
	photosErr error
	file      *models.File
	fileErr   error

	gotLimit  int
	gotFileID string
}

func (f *fakeFileAPI) GetUserProfilePhotos(ctx context.Context, params *bot.GetUserProfilePhotosParams) (*models.UserProfilePhotos, error) {
	f.gotLimit = params.Limit
	return f.photos, f.photosErr
}

func (f *fakeFileAPI) GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error) {
	f.gotFileID = params.FileID
	return f.file, f.fileErr
}

func (f *fakeFileAPI) FileDownloadLink(file *models.File) string {
	return "https://api.telegram.org/file/bot123/" + file.FilePath
}

func TestProfilePhotoFetcher_PicksLargestSize(t *testing.T) {
	api := &fakeFileAPI{
		photos: &models.UserProfilePhotos{
			TotalCount: 1,
			Photos: [][]models.PhotoSize{
				{
					{FileID: "small", Width: 160},
					{FileID: "medium", Width: 320},
					{FileID: "big", Width: 640},
				},
			},
		},
		file: &models.File{FileID: "big", FilePath: "photos/file_1.jpg"},
	}

	f := NewProfilePhotoFetcher(api, zap.NewNop())

	url := f.Fetch(context.Background(), 42)
	if url != "https://api.telegram.org/file/bot123/photos/file_1.jpg" {
		t.Errorf("Fetch() = %q", url)
	}
	if api.gotFileID != "big" {
		t.Errorf("resolved file id = %q, want %q", api.gotFileID, "big")
	}
	if api.gotLimit != 1 {
		t.Errorf("limit = %d, want 1", api.gotLimit)
	}
}

func TestProfilePhotoFetcher_NoPhotos(t *testing.T) {
	api := &fakeFileAPI{
		photos: &models.UserProfilePhotos{TotalCount: 0},
	}

	f := NewProfilePhotoFetcher(api, zap.NewNop())

	if url := f.Fetch(context.Background(), 42); url != "" {
		t.Errorf("Fetch() = %q, want empty", url)
	}
}

func TestProfilePhotoFetcher_ListFails(t *testing.T) {
	api := &fakeFileAPI{photosErr: errors.New("network down")}

	f := NewProfilePhotoFetcher(api, zap.NewNop())

	if url := f.Fetch(context.Background(), 42); url != "" {
		t.Errorf("Fetch() = %q, want empty", url)
	}
}

func TestProfilePhotoFetcher_ResolveFails(t *testing.T) {
	api := &fakeFileAPI{
		photos: &models.UserProfilePhotos{
			TotalCount: 1,
			Photos:     [][]models.PhotoSize{{{FileID: "only"}}},
		},
		fileErr: errors.New("file not found"),
	}

	f := NewProfilePhotoFetcher(api, zap.NewNop())

	if url := f.Fetch(context.Background(), 42); url != "" {
		t.Errorf("Fetch() = %q, want empty", url)
	}
}
