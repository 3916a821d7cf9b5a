package storage_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/nursultantorobaev/selfhub-services/internal/storage"
	"github.com/nursultantorobaev/selfhub-services/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestManagerUpload(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("oversized payload is rejected before any network call", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewObjectStore(t)
		manager := storage.NewManager(store, logger)

		_, err := manager.Upload(ctx, storage.UploadInput{
			Data:        make([]byte, 6*1024*1024),
			ContentType: "image/png",
			Category:    storage.CategoryCover,
			OwnerID:     "user-1",
		})

		require.ErrorIs(t, err, storage.ErrPayloadTooLarge)
		store.AssertNotCalled(t, "Upload")
	})

	t.Run("unsupported media type is rejected before any network call", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewObjectStore(t)
		manager := storage.NewManager(store, logger)

		_, err := manager.Upload(ctx, storage.UploadInput{
			Data:        []byte("GIF89a"),
			ContentType: "image/gif",
			Category:    storage.CategoryAvatar,
			OwnerID:     "user-1",
		})

		require.ErrorIs(t, err, storage.ErrUnsupportedMediaType)
		store.AssertNotCalled(t, "Upload")
	})

	t.Run("missing owner is rejected", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewObjectStore(t)
		manager := storage.NewManager(store, logger)

		_, err := manager.Upload(ctx, storage.UploadInput{
			Data:        []byte("png bytes"),
			ContentType: "image/png",
			Category:    storage.CategoryLogo,
		})

		require.ErrorIs(t, err, storage.ErrUnauthenticated)
		store.AssertNotCalled(t, "Upload")
	})

	t.Run("successful upload returns the public URL", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewObjectStore(t)
		manager := storage.NewManager(store, logger)

		var key string
		store.On("Upload", ctx, "business-logos", mock.AnythingOfType("string"), "image/webp", []byte("webp bytes")).
			Run(func(args mock.Arguments) { key = args.String(2) }).
			Return(nil).Once()
		store.On("PublicURL", "business-logos", mock.AnythingOfType("string")).
			Return("https://store.example.com/storage/v1/object/public/business-logos/k").Once()

		url, err := manager.Upload(ctx, storage.UploadInput{
			Data:        []byte("webp bytes"),
			ContentType: "image/webp",
			Category:    storage.CategoryLogo,
			OwnerID:     "user-1",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://store.example.com/storage/v1/object/public/business-logos/k", url)
		assert.True(t, strings.HasPrefix(key, "user-1/"))
		assert.True(t, strings.HasSuffix(key, ".webp"))
		store.AssertExpectations(t)
	})

	t.Run("keys stay distinct for back-to-back uploads", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewObjectStore(t)
		manager := storage.NewManager(store, logger)

		keys := make(map[string]bool)
		store.On("Upload", ctx, "avatars", mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
			Run(func(args mock.Arguments) { keys[args.String(2)] = true }).
			Return(nil).Times(2)
		store.On("PublicURL", "avatars", mock.AnythingOfType("string")).Return("url").Times(2)

		for range 2 {
			_, err := manager.Upload(ctx, storage.UploadInput{
				Data:        []byte("jpeg bytes"),
				ContentType: "image/jpeg",
				Category:    storage.CategoryAvatar,
				OwnerID:     "user-1",
			})
			require.NoError(t, err)
		}

		assert.Len(t, keys, 2)
		store.AssertExpectations(t)
	})

	t.Run("remote failure is wrapped as upload failure", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewObjectStore(t)
		manager := storage.NewManager(store, logger)

		store.On("Upload", ctx, "service-images", mock.AnythingOfType("string"), "image/png", mock.Anything).
			Return(assert.AnError).Once()

		_, err := manager.Upload(ctx, storage.UploadInput{
			Data:        []byte("png bytes"),
			ContentType: "image/png",
			Category:    storage.CategoryService,
			OwnerID:     "user-2",
		})

		require.ErrorIs(t, err, storage.ErrUploadFailed)
		require.ErrorIs(t, err, assert.AnError)
		store.AssertExpectations(t)
	})
}

func TestManagerRemove(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("extracts the key from the bucket segment", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewObjectStore(t)
		manager := storage.NewManager(store, logger)

		store.On("Remove", ctx, "business-covers", "user-1/1717240000-ab12cd34.jpg").Return(nil).Once()

		err := manager.Remove(ctx,
			"https://store.example.com/storage/v1/object/public/business-covers/user-1/1717240000-ab12cd34.jpg",
			storage.CategoryCover)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("query string is not part of the key", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewObjectStore(t)
		manager := storage.NewManager(store, logger)

		store.On("Remove", ctx, "avatars", "user-1/5-aa.png").Return(nil).Once()

		err := manager.Remove(ctx,
			"https://store.example.com/storage/v1/object/public/avatars/user-1/5-aa.png?width=100",
			storage.CategoryAvatar)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("URL without the bucket segment is invalid", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewObjectStore(t)
		manager := storage.NewManager(store, logger)

		err := manager.Remove(ctx, "https://elsewhere.example.com/some/path.jpg", storage.CategoryLogo)

		require.ErrorIs(t, err, storage.ErrInvalidAssetURL)
		store.AssertNotCalled(t, "Remove")
	})

	t.Run("store failure is reported, not swallowed", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewObjectStore(t)
		manager := storage.NewManager(store, logger)

		store.On("Remove", ctx, "avatars", "user-1/5-aa.png").Return(assert.AnError).Once()

		err := manager.Remove(ctx,
			"https://store.example.com/storage/v1/object/public/avatars/user-1/5-aa.png",
			storage.CategoryAvatar)

		require.ErrorIs(t, err, assert.AnError)
		store.AssertExpectations(t)
	})
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	t.Run("known categories map to their buckets", func(t *testing.T) {
		t.Parallel()

		expected := map[string]string{
			"logo":    "business-logos",
			"cover":   "business-covers",
			"avatar":  "avatars",
			"service": "service-images",
		}
		for name, bucket := range expected {
			category, err := storage.ParseCategory(name)
			require.NoError(t, err)
			assert.Equal(t, bucket, category.Bucket())
		}
	})

	t.Run("unknown category fails", func(t *testing.T) {
		t.Parallel()

		_, err := storage.ParseCategory("banner")

		require.ErrorIs(t, err, storage.ErrUnknownCategory)
	})
}
