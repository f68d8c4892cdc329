package models

// PlacementsResponse is the JSON envelope returned by the placement
// endpoint: an ordered list of server-side placements plus the content
// items their fragments live in.
type PlacementsResponse struct {
	Placements       []Placement        `json:"placements"`
	PlacementContent []PlacementContent `json:"placementContent"`
}

type Placement struct {
	ID            string            `json:"id,omitempty"`
	Content       *ContentReference `json:"content,omitempty"`
	RenderContext *RenderContext    `json:"renderContext,omitempty"`
}

type ContentReference struct {
	ContentID string `json:"contentId,omitempty"`
}

// RenderContext is the server-assigned rendering context for a placement.
type RenderContext struct {
	Location           string `json:"LOCATION,omitempty"`
	Subchannel         string `json:"subchannel,omitempty"`
	RTPSID             string `json:"RTPS_ID,omitempty"`
	PrequalID          string `json:"PREQUAL_ID,omitempty"`
	Price              int    `json:"PRICE,omitempty"`
	Datetime           string `json:"DATETIME,omitempty"`
	SDKTID             string `json:"SDK_TID,omitempty"`
	BuyerID            string `json:"BUYER_ID,omitempty"`
	Channel            string `json:"channel,omitempty"`
	PrequalCreditLimit string `json:"PREQUAL_CREDIT_LIMIT,omitempty"`
	Env                string `json:"ENV,omitempty"`
	AllowCheckout      bool   `json:"ALLOW_CHECKOUT,omitempty"`
	EmbeddedURL        string `json:"embeddedUrl,omitempty"`
}

type PlacementContent struct {
	ID          string       `json:"id,omitempty"`
	ContentType string       `json:"contentType,omitempty"`
	ContentData *ContentData `json:"contentData,omitempty"`
	Metadata    *Metadata    `json:"metadata,omitempty"`
}

type ContentData struct {
	HTMLContent string `json:"htmlContent,omitempty"`
}

type Metadata struct {
	PlacementID string `json:"placementId,omitempty"`
	ProductType string `json:"productType,omitempty"`
	MessageID   string `json:"messageId,omitempty"`
	TemplateID  string `json:"templateId,omitempty"`
}

// PlacementRequest is the POST body for the placement endpoint.
type PlacementRequest struct {
	Placements []PlacementRequestBody `json:"placements"`
	BrandID    string                 `json:"brandId"`
}

type PlacementRequestBody struct {
	ID      string            `json:"id,omitempty"`
	Context *PlacementContext `json:"context,omitempty"`
}

// PlacementContext carries the per-placement request context. Empty-string
// fields are omitted from the wire rather than sent as "".
type PlacementContext struct {
	SDKTID             string   `json:"SDK_TID,omitempty"`
	Env                string   `json:"ENV,omitempty"`
	RTPSID             string   `json:"RTPS_ID,omitempty"`
	BuyerID            string   `json:"BUYER_ID,omitempty"`
	PrequalID          string   `json:"PREQUAL_ID,omitempty"`
	PrequalCreditLimit string   `json:"PREQUAL_CREDIT_LIMIT,omitempty"`
	Location           string   `json:"LOCATION,omitempty"`
	Price              *float64 `json:"PRICE,omitempty"`
	ExistingCardholder *bool    `json:"EXISTING_CH,omitempty"`
	CardholderTier     string   `json:"CARDHOLDER_TIER,omitempty"`
	StoreNumber        string   `json:"STORE_NUMBER,omitempty"`
	LoyaltyID          string   `json:"LOYALTY_ID,omitempty"`
	OverrideKey        string   `json:"OVERRIDE_KEY,omitempty"`
	ClientVar1         string   `json:"CLIENT_VAR_1,omitempty"`
	ClientVar2         string   `json:"CLIENT_VAR_2,omitempty"`
	ClientVar3         string   `json:"CLIENT_VAR_3,omitempty"`
	ClientVar4         string   `json:"CLIENT_VAR_4,omitempty"`
	DepartmentID       string   `json:"DEPARTMENT_ID,omitempty"`
	Channel            string   `json:"channel,omitempty"`
	Subchannel         string   `json:"subchannel,omitempty"`
	CampaignID         string   `json:"CMP,omitempty"`
	AllowCheckout      bool     `json:"ALLOW_CHECKOUT"`
	EmbeddedURL        string   `json:"embeddedUrl,omitempty"`
}
