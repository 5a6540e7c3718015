package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oti-labs/studify-api/internal/dto"
)

type fakeOverlayManager struct {
	hiddenKeys []string
	cancelled  []string
	hideKey    string
	hideErr    error
	unhidden   []string
	cancelledK []string
	uncancelK  []string
}

func (f *fakeOverlayManager) Hide(_ context.Context, _ *dto.HideLessonRequest) (string, error) {
	if f.hideErr != nil {
		return "", f.hideErr
	}
	return f.hideKey, nil
}

func (f *fakeOverlayManager) Unhide(_ context.Context, key string) error {
	f.unhidden = append(f.unhidden, key)
	return nil
}

func (f *fakeOverlayManager) HiddenKeys(context.Context) ([]string, error) {
	return f.hiddenKeys, nil
}

func (f *fakeOverlayManager) Cancel(key string)   { f.cancelledK = append(f.cancelledK, key) }
func (f *fakeOverlayManager) Uncancel(key string) { f.uncancelK = append(f.uncancelK, key) }
func (f *fakeOverlayManager) Cancelled() []string { return f.cancelled }

func TestOverlayHandlerHide(t *testing.T) {
	manager := &fakeOverlayManager{hideKey: "deadbeef"}
	handler := NewOverlayHandler(manager)

	rec := performJSON(t, handler.Hide, http.MethodPost, "/api/v1/overlays/hidden", dto.HideLessonRequest{
		Day: "MONDAY", TimeRange: "09:00-10:30", Subject: "Databases",
	}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "deadbeef")
}

func TestOverlayHandlerHideRejectsMalformedBody(t *testing.T) {
	handler := NewOverlayHandler(&fakeOverlayManager{})

	rec := performRequest(t, handler.Hide, http.MethodPost, "/api/v1/overlays/hidden", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOverlayHandlerUnhide(t *testing.T) {
	manager := &fakeOverlayManager{}
	handler := NewOverlayHandler(manager)

	rec := performRequest(t, handler.Unhide, http.MethodDelete, "/api/v1/overlays/hidden/abc",
		gin.Params{{Key: "key", Value: "abc"}})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"abc"}, manager.unhidden)
}

func TestOverlayHandlerListHidden(t *testing.T) {
	handler := NewOverlayHandler(&fakeOverlayManager{hiddenKeys: []string{"k1", "k2"}})

	rec := performRequest(t, handler.ListHidden, http.MethodGet, "/api/v1/overlays/hidden", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "k1")
	assert.Contains(t, rec.Body.String(), "k2")
}

func TestOverlayHandlerCancelRoundTrip(t *testing.T) {
	manager := &fakeOverlayManager{cancelled: []string{"k1"}}
	handler := NewOverlayHandler(manager)

	rec := performRequest(t, handler.Cancel, http.MethodPost, "/api/v1/overlays/cancelled/k1",
		gin.Params{{Key: "key", Value: "k1"}})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = performRequest(t, handler.ListCancelled, http.MethodGet, "/api/v1/overlays/cancelled", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "k1")

	rec = performRequest(t, handler.Uncancel, http.MethodDelete, "/api/v1/overlays/cancelled/k1",
		gin.Params{{Key: "key", Value: "k1"}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"k1"}, manager.cancelledK)
	assert.Equal(t, []string{"k1"}, manager.uncancelK)
}
