package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/NovaAI-innovation/backend12/internal/http/handler"
	"github.com/NovaAI-innovation/backend12/internal/service"
)

func newGalleryRouter(repo *galleryRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewGalleryService(repo, &blobStoreStub{}, nil)
	r := gin.New()
	r.GET("/api/gallery-images", handler.NewGalleryHandler(svc).List)
	return r
}

func getImages(r *gin.Engine, path string) (*httptest.ResponseRecorder, handler.GalleryImagesPageResponse) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var page handler.GalleryImagesPageResponse
	_ = json.Unmarshal(w.Body.Bytes(), &page)
	return w, page
}

func TestGalleryListDefaults(t *testing.T) {
	repo := newGalleryRepoStub()
	for i := 0; i < 15; i++ {
		repo.add(fmt.Sprintf("https://cdn/img%d.jpg", i), nil, i)
	}
	r := newGalleryRouter(repo)

	w, page := getImages(r, "/api/gallery-images")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, page.Images, 12)
	require.True(t, page.Pagination.HasMore)
	require.NotNil(t, page.Pagination.NextCursor)
	require.Equal(t, 11, *page.Pagination.NextCursor)
	require.Equal(t, int64(15), page.Pagination.TotalCount)
}

func TestGalleryListCursorWalk(t *testing.T) {
	repo := newGalleryRepoStub()
	for i := 0; i < 5; i++ {
		repo.add(fmt.Sprintf("https://cdn/img%d.jpg", i), nil, i)
	}
	r := newGalleryRouter(repo)

	w, page := getImages(r, "/api/gallery-images?limit=3")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, page.Images, 3)
	require.True(t, page.Pagination.HasMore)

	w, page = getImages(r, fmt.Sprintf("/api/gallery-images?limit=3&cursor=%d", *page.Pagination.NextCursor))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, page.Images, 2)
	require.False(t, page.Pagination.HasMore)
	require.Nil(t, page.Pagination.NextCursor)
	require.Equal(t, 3, page.Images[0].DisplayOrder)
}

func TestGalleryListEmpty(t *testing.T) {
	r := newGalleryRouter(newGalleryRepoStub())

	w, page := getImages(r, "/api/gallery-images")
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, page.Images)
	require.False(t, page.Pagination.HasMore)
	require.Equal(t, int64(0), page.Pagination.TotalCount)
}

func TestGalleryListBadParams(t *testing.T) {
	r := newGalleryRouter(newGalleryRepoStub())

	for _, path := range []string{
		"/api/gallery-images?limit=abc",
		"/api/gallery-images?limit=0",
		"/api/gallery-images?limit=-1",
		"/api/gallery-images?limit=101",
		"/api/gallery-images?cursor=abc",
	} {
		w, _ := getImages(r, path)
		require.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}
