// Package rtps runs the silent real-time pre-screen flow: security check,
// lookup call, result mapping and, on approval, the embedded offer fetch.
package rtps

import (
	"strconv"

	"bread-partners-sdk/internal/models"
)

// BuildLookupRequest assembles the POST body for the lookup endpoint. A
// run without a prior prescreen id sends the full buyer identity for the
// prescreen endpoint; a run with one sends only the id and routing fields
// for the virtual lookup.
func BuildLookupRequest(merchant *models.MerchantConfiguration, data models.RTPSData, token string) models.RTPSRequest {
	request := models.RTPSRequest{
		URLPath:        data.ScreenName,
		Location:       string(data.LocationType),
		MockResponse:   string(data.MockResponse),
		OverrideConfig: &models.OverrideConfig{EnhancedPresentment: true},
	}
	if merchant != nil {
		request.Channel = merchant.Channel
		request.Subchannel = merchant.Subchannel
	}

	if data.PrescreenID != nil {
		request.PrescreenID = strconv.FormatInt(*data.PrescreenID, 10)
		return request
	}

	request.ReCaptchaToken = token
	if merchant != nil {
		request.StoreNumber = merchant.StoreNumber
		if buyer := merchant.Buyer; buyer != nil {
			request.FirstName = buyer.GivenName
			request.LastName = buyer.FamilyName
			if addr := buyer.BillingAddress; addr != nil {
				request.Address1 = addr.Address1
				request.City = addr.Locality
				request.State = addr.Region
				request.Zip = addr.PostalCode
			}
		}
	}
	return request
}
