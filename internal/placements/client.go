package placements

import (
	"context"
	"fmt"

	"bread-partners-sdk/internal/common/cache"
	sdkerrors "bread-partners-sdk/internal/common/errors"
	"bread-partners-sdk/internal/common/httpx"
	"bread-partners-sdk/internal/common/logger"
	"bread-partners-sdk/internal/common/metrics"
	"bread-partners-sdk/internal/models"
)

// Client speaks to the brand service.
type Client struct {
	http    *httpx.Client
	baseURL string
	cache   *cache.Cache
	logger  logger.Logger
}

func NewClient(http *httpx.Client, baseURL string, c *cache.Cache, log logger.Logger) *Client {
	return &Client{
		http:    http,
		baseURL: baseURL,
		cache:   c,
		logger:  log,
	}
}

// FetchBrandConfig retrieves the brand configuration, served from cache
// when a fresh entry exists.
func (c *Client) FetchBrandConfig(ctx context.Context, brandID string) (*models.BrandConfig, error) {
	cacheKey := "brand_config:" + brandID

	var cached models.BrandConfig
	if c.cache.Get(ctx, cacheKey, &cached) {
		c.logger.Debug("brand config served from cache", map[string]interface{}{
			"brand_id": brandID,
		})
		return &cached, nil
	}

	url := fmt.Sprintf("%s/brands/%s/config", c.baseURL, brandID)
	var brandConfig models.BrandConfig
	if err := c.http.GetJSON(ctx, url, &brandConfig); err != nil {
		return nil, err
	}

	c.cache.Set(ctx, cacheKey, brandConfig)
	return &brandConfig, nil
}

// FetchPlacements posts the placement request and returns the decoded
// envelope.
func (c *Client) FetchPlacements(ctx context.Context, request models.PlacementRequest) (*models.PlacementsResponse, error) {
	url := c.baseURL + "/generatePlacements"

	var response models.PlacementsResponse
	if err := c.http.PostJSON(ctx, url, request, &response); err != nil {
		metrics.PlacementFetches.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.PlacementFetches.WithLabelValues("success").Inc()
	return &response, nil
}

// FirstPopupContent returns the first popup fragment in the envelope. The
// drill-down and open-experience paths expect exactly one.
func FirstPopupContent(response *models.PlacementsResponse) (*models.PlacementContent, error) {
	for i := range response.PlacementContent {
		content := &response.PlacementContent[i]
		if content.ContentData != nil && content.ContentData.HTMLContent != "" {
			return content, nil
		}
	}
	return nil, sdkerrors.NewExtractionError("placement response carried no renderable content")
}
