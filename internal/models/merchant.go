package models

// Environment selects the endpoint set used for all outbound calls.
type Environment string

const (
	EnvStage Environment = "stage"
	EnvProd  Environment = "prod"
)

// PaymentMode indicates how the order is paid.
type PaymentMode string

const (
	PaymentModeFull  PaymentMode = "full"
	PaymentModeSplit PaymentMode = "split"
)

// MerchantConfiguration carries the buyer identity and the store-side
// context fields assembled into placement and prescreen requests.
type MerchantConfiguration struct {
	Buyer              *Buyer
	LoyaltyID          string
	CampaignID         string
	StoreNumber        string
	DepartmentID       string
	ExistingCardHolder bool
	CardholderTier     string
	Env                Environment
	Channel            string
	Subchannel         string
	ClerkID            string
	OverrideKey        string
	ClientVariable1    string
	ClientVariable2    string
	ClientVariable3    string
	ClientVariable4    string
	AccountID          string
	ApplicationID      string
	InvoiceNumber      string
	PaymentMode        PaymentMode
}

// Buyer describes the customer the prescreen lookup runs against.
type Buyer struct {
	GivenName        string
	FamilyName       string
	AdditionalName   string
	BirthDate        string
	Email            string
	Phone            string
	AlternativePhone string
	BillingAddress   *Address
	ShippingAddress  *Address
}

type Address struct {
	Address1   string
	Address2   string
	Locality   string
	Region     string
	PostalCode string
	Country    string
}

// Order is the pricing context attached to a placement selection.
type Order struct {
	SubTotal       *CurrencyValue
	TotalDiscounts *CurrencyValue
	TotalPrice     *CurrencyValue
	TotalShipping  *CurrencyValue
	TotalTax       *CurrencyValue
	DiscountCode   string
}

type CurrencyValue struct {
	Currency string
	Value    float64
}
