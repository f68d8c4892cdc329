package models

// BrandConfig is the brand configuration served by the brand endpoint.
// Absent keys decode to empty strings; nothing here is individually
// required at decode time.
type BrandConfig struct {
	Config BrandConfigBody `json:"config"`
}

type BrandConfigBody struct {
	AEMContent           string `json:"AEMContent"`
	OverrideKey          string `json:"OVERRIDE_KEY"`
	ClientName           string `json:"clientName"`
	ProdAdServerURL      string `json:"prodAdServerUrl"`
	QAAdServerURL        string `json:"qaAdServerUrl"`
	RecaptchaEnabledQA   string `json:"recaptchaEnabledQA"`
	RecaptchaSiteKeyQA   string `json:"recaptchaSiteKeyQA"`
	RecaptchaEnabledProd string `json:"recaptchaEnabledPROD"`
	RecaptchaSiteKeyProd string `json:"recaptchaSiteKeyPROD"`
}

// RecaptchaSiteKey returns the site key for the given environment.
func (b BrandConfigBody) RecaptchaSiteKey(env Environment) string {
	if env == EnvStage {
		return b.RecaptchaSiteKeyQA
	}
	return b.RecaptchaSiteKeyProd
}
