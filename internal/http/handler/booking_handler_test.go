package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/NovaAI-innovation/backend12/internal/http/handler"
	"github.com/NovaAI-innovation/backend12/internal/service"
)

func newBookingRouter(repo *bookingRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/bookings", handler.NewBookingHandler(service.NewBookingService(repo, nil)).Submit)
	return r
}

func postBooking(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestBookingSubmit(t *testing.T) {
	repo := &bookingRepoStub{}
	r := newBookingRouter(repo)

	w := postBooking(r, `{"name":"Ada","email":"ada@example.com","event_date":"2026-09-12","message":"Evening ceremony"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"event_date":"2026-09-12"`)
	require.Len(t, repo.bookings, 1)
	require.Equal(t, "ada@example.com", repo.bookings[0].Email)
}

func TestBookingSubmitMissingFields(t *testing.T) {
	r := newBookingRouter(&bookingRepoStub{})

	for _, body := range []string{
		`{}`,
		`{"name":"Ada"}`,
		`{"name":"Ada","email":"ada@example.com"}`,
		`not json`,
	} {
		w := postBooking(r, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestBookingSubmitBadDate(t *testing.T) {
	r := newBookingRouter(&bookingRepoStub{})

	w := postBooking(r, `{"name":"Ada","email":"ada@example.com","event_date":"12/09/2026"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "YYYY-MM-DD")
}

func TestBookingSubmitInvalidEmail(t *testing.T) {
	r := newBookingRouter(&bookingRepoStub{})

	w := postBooking(r, `{"name":"Ada","email":"not-an-email","event_date":"2026-09-12"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
