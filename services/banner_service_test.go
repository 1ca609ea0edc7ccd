package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/repositories"
)

type bannerFixture struct {
	store  *failingStore
	files  *fakeFileStore
	events *recordingPublisher
	svc    *BannerService
}

func newBannerFixture() *bannerFixture {
	store := newFailingStore(repositories.NewMemoryStore())
	files := newFakeFileStore()
	events := &recordingPublisher{}
	return &bannerFixture{
		store:  store,
		files:  files,
		events: events,
		svc:    NewBannerService(repositories.NewBannerRepository(store), files, events),
	}
}

func TestBannerService_Create(t *testing.T) {
	f := newBannerFixture()

	banner, err := f.svc.Create(context.Background(), models.BannerRequest{Title: " Sale ", Subtitle: "Up to 50%"}, pngImage(t))
	require.NoError(t, err)
	assert.Equal(t, "Sale", banner.Title)
	assert.NotEmpty(t, banner.ImageID)
	assert.Equal(t, "https://files.test/"+banner.ImageID+"/preview", banner.ImageURL)
	assert.True(t, f.files.has(banner.ImageID))
	assert.Equal(t, []string{EventBannersChanged}, f.events.types())
}

func TestBannerService_CreateValidation(t *testing.T) {
	f := newBannerFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, models.BannerRequest{Title: "", Subtitle: "x"}, pngImage(t))
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = f.svc.Create(ctx, models.BannerRequest{Title: "x", Subtitle: "x"}, nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = f.svc.Create(ctx, models.BannerRequest{Title: "x", Subtitle: "x"}, &ImageUpload{Name: "a.txt", Data: []byte("hi")})
	assert.ErrorIs(t, err, models.ErrUnsupportedFile)

	_, err = f.svc.Create(ctx, models.BannerRequest{Title: "x", Subtitle: "x"}, &ImageUpload{Name: "a.png", Data: []byte("not a png")})
	assert.ErrorIs(t, err, models.ErrUnsupportedFile)
	assert.Equal(t, 0, f.files.uploads)
}

func TestBannerService_CreateRollsBackUpload(t *testing.T) {
	f := newBannerFixture()
	f.store.failOn("create", repositories.BannersCollection, errors.New("insert failed"))

	_, err := f.svc.Create(context.Background(), models.BannerRequest{Title: "a", Subtitle: "b"}, pngImage(t))
	require.Error(t, err)
	assert.Equal(t, 1, f.files.uploads)
	assert.Equal(t, []string{"file-1"}, f.files.deleted)
	assert.Empty(t, f.events.types())
}

func TestBannerService_UpdateReplacesImage(t *testing.T) {
	f := newBannerFixture()
	ctx := context.Background()
	created, err := f.svc.Create(ctx, models.BannerRequest{Title: "a", Subtitle: "b"}, pngImage(t))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, created.ID, models.BannerRequest{Title: "new", Subtitle: "b"}, pngImage(t))
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.NotEqual(t, created.ImageID, updated.ImageID)
	assert.False(t, f.files.has(created.ImageID))
	assert.True(t, f.files.has(updated.ImageID))

	// texts only
	textOnly, err := f.svc.Update(ctx, created.ID, models.BannerRequest{Title: "newer", Subtitle: "c"}, nil)
	require.NoError(t, err)
	assert.Equal(t, updated.ImageID, textOnly.ImageID)
}

func TestBannerService_Delete(t *testing.T) {
	f := newBannerFixture()
	ctx := context.Background()
	created, err := f.svc.Create(ctx, models.BannerRequest{Title: "a", Subtitle: "b"}, pngImage(t))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.ID))
	assert.False(t, f.files.has(created.ImageID))
	_, err = f.svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBannerService_ListPages(t *testing.T) {
	f := newBannerFixture()
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		seedDocs(t, f.store, repositories.BannersCollection, repositories.Document{"title": title, "subtitle": "s"})
	}

	page, err := f.svc.List(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, page.Banners, 2)
	assert.True(t, page.HasMore)

	next, err := f.svc.List(ctx, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, next.Banners, 1)
	assert.Equal(t, "c", next.Banners[0].Title)
	assert.False(t, next.HasMore)
	assert.Empty(t, next.Banners[0].ImageURL)
}
