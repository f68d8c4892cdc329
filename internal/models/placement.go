package models

// LocationType identifies where in the host experience a placement is
// rendered.
type LocationType string

const (
	LocationBag       LocationType = "bag"
	LocationBanner    LocationType = "banner"
	LocationCart      LocationType = "cart"
	LocationCategory  LocationType = "category"
	LocationCheckout  LocationType = "checkout"
	LocationDashboard LocationType = "dashboard"
	LocationFooter    LocationType = "footer"
	LocationHomepage  LocationType = "homepage"
	LocationLanding   LocationType = "landing"
	LocationLoyalty   LocationType = "loyalty"
	LocationMobile    LocationType = "mobile"
	LocationProduct   LocationType = "product"
	LocationHeader    LocationType = "header"
	LocationSearch    LocationType = "search"
	LocationMyAccount LocationType = "myaccount"
)

// locationChannelMap maps location types to their wire channel codes.
var locationChannelMap = map[LocationType]string{
	LocationHomepage:  "H",
	LocationLanding:   "L",
	LocationSearch:    "S",
	LocationProduct:   "P",
	LocationCategory:  "C",
	LocationBanner:    "U",
	LocationCheckout:  "O",
	LocationCart:      "A",
	LocationMobile:    "E",
	LocationLoyalty:   "D",
	LocationFooter:    "F",
	LocationBag:       "2",
	LocationDashboard: "5",
	LocationMyAccount: "5",
	LocationHeader:    "R",
}

// ChannelCode returns the channel code for the location, or empty when the
// location has no mapping.
func (l LocationType) ChannelCode() string {
	return locationChannelMap[l]
}

// FinancingType selects the financing product a placement advertises.
type FinancingType string

const (
	FinancingCard         FinancingType = "card"
	FinancingInstallments FinancingType = "installments"
	FinancingVersatile    FinancingType = "versatile"
)

// PlacementData is the host-provided placement selection.
type PlacementData struct {
	FinancingType FinancingType
	LocationType  LocationType
	PlacementID   string
	AllowCheckout bool
	Order         *Order
}
