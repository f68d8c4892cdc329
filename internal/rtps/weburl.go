package rtps

import (
	"net/url"
	"strconv"

	"bread-partners-sdk/internal/models"
)

// offerPath is the approval web experience served by the acquisition
// host.
const offerPath = "/prescreen/offer"

// BuildWebURL builds the embedded approval experience URL. Empty values
// are omitted rather than sent as blank parameters; a known prescreen id
// is always carried so the web experience resumes the same lookup.
func BuildWebURL(baseURL, integrationKey string, merchant *models.MerchantConfiguration, data models.RTPSData, prescreenID *int64) (string, error) {
	u, err := url.Parse(baseURL + offerPath)
	if err != nil {
		return "", err
	}

	params := map[string]string{
		"mockMO":    string(data.MockResponse),
		"mockPA":    string(data.MockResponse),
		"mockVL":    string(data.MockResponse),
		"embedded":  "true",
		"clientKey": integrationKey,
		"cardType":  data.CardType,
		"urlPath":   data.ScreenName,
		"location":  string(data.LocationType),
		"channel":   data.Channel,
	}
	if merchant != nil {
		params["storeNumber"] = merchant.StoreNumber
		if buyer := merchant.Buyer; buyer != nil {
			params["firstName"] = buyer.GivenName
			params["lastName"] = buyer.FamilyName
			if addr := buyer.BillingAddress; addr != nil {
				params["address1"] = addr.Address1
				params["city"] = addr.Locality
				params["state"] = addr.Region
				params["zip"] = addr.PostalCode
			}
		}
	}
	if prescreenID != nil {
		params["prescreenId"] = strconv.FormatInt(*prescreenID, 10)
	}

	query := url.Values{}
	for key, value := range params {
		if value != "" {
			query.Set(key, value)
		}
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}
