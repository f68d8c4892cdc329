package models

// MockOption selects a canned backend response for integration testing.
type MockOption string

const (
	MockNone            MockOption = ""
	MockSuccess         MockOption = "success"
	MockNoHit           MockOption = "noHit"
	MockMakeOffer       MockOption = "makeOffer"
	MockAcknowledge     MockOption = "ackknowledge"
	MockExistingAccount MockOption = "existingAccount"
	MockExistingOffer   MockOption = "existingOffer"
	MockNewOffer        MockOption = "newOffer"
	MockError           MockOption = "error"
)

// RTPSData is the host-provided configuration for a real-time pre-screen
// run.
type RTPSData struct {
	FinancingType         FinancingType
	Order                 *Order
	LocationType          LocationType
	ScreenName            string
	CardType              string
	Country               string
	PrescreenID           *int64
	CorrelationData       string
	CustomerAcceptedOffer bool
	Channel               string
	Subchannel            string
	MockResponse          MockOption
}

// RTPSRequest is the POST body shared by the prescreen and virtual-lookup
// endpoints. Empty fields are omitted from the wire.
type RTPSRequest struct {
	URLPath        string          `json:"urlPath,omitempty"`
	FirstName      string          `json:"firstName,omitempty"`
	LastName       string          `json:"lastName,omitempty"`
	Address1       string          `json:"address1,omitempty"`
	City           string          `json:"city,omitempty"`
	State          string          `json:"state,omitempty"`
	Zip            string          `json:"zip,omitempty"`
	StoreNumber    string          `json:"storeNumber,omitempty"`
	Location       string          `json:"location,omitempty"`
	Channel        string          `json:"channel,omitempty"`
	Subchannel     string          `json:"subchannel,omitempty"`
	ReCaptchaToken string          `json:"reCaptchaToken,omitempty"`
	MockResponse   string          `json:"mockResponse,omitempty"`
	OverrideConfig *OverrideConfig `json:"overrideConfig,omitempty"`
	PrescreenID    string          `json:"prescreenId,omitempty"`
}

type OverrideConfig struct {
	EnhancedPresentment bool `json:"enhancedPresentment"`
}

// RTPSResponse is the lookup endpoint's reply. Both fields are optional on
// the wire.
type RTPSResponse struct {
	ReturnCode  string `json:"returnCode"`
	PrescreenID *int64 `json:"prescreenId"`
}

// PrescreenResult is the mapped outcome of a prescreen lookup.
type PrescreenResult string

const (
	PrescreenAccountFound PrescreenResult = "accountFound"
	// Has been pre-approved.
	PrescreenApproved PrescreenResult = "approved"
	PrescreenNoHit    PrescreenResult = "noHit"
	// Not pre-approved but should / could apply.
	PrescreenMakeOffer   PrescreenResult = "makeOffer"
	PrescreenAcknowledge PrescreenResult = "acknowledge"
)

var prescreenResultMap = map[string]PrescreenResult{
	"0":  PrescreenAccountFound,
	"01": PrescreenApproved,
	"10": PrescreenNoHit,
	"11": PrescreenMakeOffer,
	"12": PrescreenAcknowledge,
}

// GetPrescreenResult maps a wire return code to its result. Unrecognized
// codes fall back to noHit; the lookup is invisible to the user and must
// never fail on an unknown code.
func GetPrescreenResult(returnCode string) PrescreenResult {
	if result, ok := prescreenResultMap[returnCode]; ok {
		return result
	}
	return PrescreenNoHit
}
