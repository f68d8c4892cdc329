package placements

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bread-partners-sdk/internal/common/cache"
	sdkerrors "bread-partners-sdk/internal/common/errors"
	"bread-partners-sdk/internal/common/httpx"
	"bread-partners-sdk/internal/common/logger"
	"bread-partners-sdk/internal/models"
)

func newTestClient(t *testing.T, server *httptest.Server, c *cache.Cache) *Client {
	t.Helper()
	http := httpx.NewClient(5*time.Second, "key-123", logger.NewTestLogger(t))
	return NewClient(http, server.URL, c, logger.NewTestLogger(t))
}

func TestFetchPlacements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generatePlacements", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get(httpx.HeaderClientKey))
		assert.Equal(t, "XMLHttpRequest", r.Header.Get(httpx.HeaderRequestedWith))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"placements": [{"id": "p1", "content": {"contentId": "c1"}}],
			"placementContent": [{"id": "c1", "contentType": "HTML", "contentData": {"htmlContent": "<div></div>"}}]
		}`))
	}))
	defer server.Close()

	response, err := newTestClient(t, server, nil).FetchPlacements(context.Background(), models.PlacementRequest{BrandID: "b"})
	require.NoError(t, err)

	require.Len(t, response.Placements, 1)
	assert.Equal(t, "c1", response.Placements[0].Content.ContentID)
	require.Len(t, response.PlacementContent, 1)
	assert.Equal(t, "<div></div>", response.PlacementContent[0].ContentData.HTMLContent)
}

func TestFetchPlacementsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error": "upstream down"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server, nil).FetchPlacements(context.Background(), models.PlacementRequest{BrandID: "b"})
	require.Error(t, err)
	assert.True(t, sdkerrors.IsCode(err, sdkerrors.ErrCodeNetwork))
}

func TestFetchBrandConfigCaches(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	brandCache := cache.NewWithClient(redisClient, time.Minute)

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/brands/brand-9/config", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"config": {"clientName": "acme", "recaptchaSiteKeyQA": "qa-key"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, brandCache)

	first, err := client.FetchBrandConfig(context.Background(), "brand-9")
	require.NoError(t, err)
	assert.Equal(t, "acme", first.Config.ClientName)

	second, err := client.FetchBrandConfig(context.Background(), "brand-9")
	require.NoError(t, err)
	assert.Equal(t, "qa-key", second.Config.RecaptchaSiteKeyQA)

	assert.Equal(t, 1, hits)
}

func TestFirstPopupContent(t *testing.T) {
	t.Run("returns first renderable content", func(t *testing.T) {
		response := &models.PlacementsResponse{
			PlacementContent: []models.PlacementContent{
				{ID: "empty"},
				{ID: "popup", ContentData: &models.ContentData{HTMLContent: "<div class=\"epjs-css-overlay\"></div>"}},
			},
		}

		content, err := FirstPopupContent(response)
		require.NoError(t, err)
		assert.Equal(t, "popup", content.ID)
	})

	t.Run("empty envelope is an extraction error", func(t *testing.T) {
		_, err := FirstPopupContent(&models.PlacementsResponse{})
		require.Error(t, err)
		assert.True(t, sdkerrors.IsCode(err, sdkerrors.ErrCodeExtraction))
	})
}
