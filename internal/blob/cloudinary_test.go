package blob_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NovaAI-innovation/backend12/internal/blob"
	"github.com/NovaAI-innovation/backend12/internal/config"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			"versioned url",
			"https://res.cloudinary.com/demo/image/upload/v1712345678/gallery/sunset.jpg",
			"gallery/sunset",
		},
		{
			"unversioned url",
			"https://res.cloudinary.com/demo/image/upload/gallery/sunset.jpg",
			"gallery/sunset",
		},
		{
			"no extension",
			"https://res.cloudinary.com/demo/image/upload/v1/gallery/sunset",
			"gallery/sunset",
		},
		{
			"dot in folder name",
			"https://res.cloudinary.com/demo/image/upload/v1/gallery.2024/sunset.png",
			"gallery.2024/sunset",
		},
		{
			"top level asset",
			"https://res.cloudinary.com/demo/image/upload/sunset.webp",
			"sunset",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := blob.PublicIDFromURL(tc.url)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPublicIDFromURLRejectsForeignURLs(t *testing.T) {
	for _, url := range []string{
		"",
		"https://example.com/sunset.jpg",
		"https://res.cloudinary.com/demo/video/stream/sunset.mp4",
	} {
		_, err := blob.PublicIDFromURL(url)
		require.Error(t, err, "url %q", url)
	}
}

func TestStoreRequiresConfiguration(t *testing.T) {
	store := blob.NewCloudinaryStore(config.CloudinaryConfig{}, nil)
	require.False(t, store.Configured())

	_, err := store.Upload(context.Background(), []byte("data"), "a.jpg")
	require.ErrorIs(t, err, blob.ErrNotConfigured)

	err = store.Delete(context.Background(), "https://res.cloudinary.com/demo/image/upload/gallery/a.jpg")
	require.ErrorIs(t, err, blob.ErrNotConfigured)
}
