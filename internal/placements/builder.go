// Package placements builds and issues placement requests against the
// brand service and exposes the brand configuration fetch.
package placements

import (
	"github.com/google/uuid"

	"bread-partners-sdk/internal/models"
)

// fallbackChannel is sent when neither the merchant configuration nor the
// location type yields a channel code.
const fallbackChannel = "X"

// ChannelFor resolves the wire channel: an explicit merchant channel wins,
// then the location's channel code, then the fallback.
func ChannelFor(merchant *models.MerchantConfiguration, location models.LocationType) string {
	if merchant != nil && merchant.Channel != "" {
		return merchant.Channel
	}
	if code := location.ChannelCode(); code != "" {
		return code
	}
	return fallbackChannel
}

// BuildRequest assembles the placement request for one placement
// selection. Every call carries a fresh SDK transaction id.
func BuildRequest(brandID string, merchant *models.MerchantConfiguration, placement models.PlacementData) models.PlacementRequest {
	return models.PlacementRequest{
		BrandID: brandID,
		Placements: []models.PlacementRequestBody{
			{
				ID:      placement.PlacementID,
				Context: buildContext(merchant, placement),
			},
		},
	}
}

// BuildContentFetchRequest assembles the follow-up request used to fetch a
// drill-down popup by its content-fetch id, reusing the original
// selection's context.
func BuildContentFetchRequest(brandID, contentFetchID string, merchant *models.MerchantConfiguration, placement models.PlacementData) models.PlacementRequest {
	return models.PlacementRequest{
		BrandID: brandID,
		Placements: []models.PlacementRequestBody{
			{
				ID:      contentFetchID,
				Context: buildContext(merchant, placement),
			},
		},
	}
}

func buildContext(merchant *models.MerchantConfiguration, placement models.PlacementData) *models.PlacementContext {
	pc := &models.PlacementContext{
		SDKTID:        uuid.NewString(),
		Location:      string(placement.LocationType),
		AllowCheckout: placement.AllowCheckout,
	}

	if placement.Order != nil && placement.Order.TotalPrice != nil {
		price := placement.Order.TotalPrice.Value
		pc.Price = &price
	}

	if merchant != nil {
		pc.Env = string(merchant.Env)
		existing := merchant.ExistingCardHolder
		pc.ExistingCardholder = &existing
		pc.CardholderTier = merchant.CardholderTier
		pc.StoreNumber = merchant.StoreNumber
		pc.LoyaltyID = merchant.LoyaltyID
		pc.OverrideKey = merchant.OverrideKey
		pc.ClientVar1 = merchant.ClientVariable1
		pc.ClientVar2 = merchant.ClientVariable2
		pc.ClientVar3 = merchant.ClientVariable3
		pc.ClientVar4 = merchant.ClientVariable4
		pc.DepartmentID = merchant.DepartmentID
		pc.Subchannel = merchant.Subchannel
		pc.CampaignID = merchant.CampaignID
	}

	pc.Channel = ChannelFor(merchant, placement.LocationType)

	return pc
}
