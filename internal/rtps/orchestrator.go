package rtps

import (
	"context"
	"fmt"
	"time"

	sdkerrors "bread-partners-sdk/internal/common/errors"
	"bread-partners-sdk/internal/common/httpx"
	"bread-partners-sdk/internal/common/logger"
	"bread-partners-sdk/internal/common/metrics"
	"bread-partners-sdk/internal/common/observability"
	"bread-partners-sdk/internal/events"
	"bread-partners-sdk/internal/models"
)

const (
	prescreenPath     = "/api/prescreen"
	virtualLookupPath = "/api/virtual_lookup"

	// approvalLocation marks the offer fetch that follows an approved
	// lookup.
	approvalLocation = "RTPS-Approval"
)

// Flow outcomes recorded per run. The not-approved outcome is silent by
// contract: the run emits no events at all.
const (
	outcomeDelivered   = "delivered"
	outcomeNotApproved = "not_approved"
	outcomeFailed      = "failed"
	outcomeCancelled   = "cancelled"
)

// placementFetcher is the slice of the brand client the offer fetch
// needs.
type placementFetcher interface {
	FetchPlacements(ctx context.Context, request models.PlacementRequest) (*models.PlacementsResponse, error)
}

// Config carries the orchestrator's fixed parameters.
type Config struct {
	RTPSBaseURL         string
	IntegrationKey      string
	RecaptchaTimeout    time.Duration
	MaxChallengeRetries int
}

// Orchestrator runs one silent pre-screen flow per Run call. It holds no
// per-run state; concurrent runs on separate sinks are safe.
type Orchestrator struct {
	cfg        Config
	http       *httpx.Client
	placements placementFetcher
	tokens     TokenProvider
	obs        *observability.Observability
	logger     logger.Logger
}

func New(cfg Config, http *httpx.Client, placements placementFetcher, tokens TokenProvider, obs *observability.Observability, log logger.Logger) *Orchestrator {
	if tokens == nil {
		tokens = fallbackTokenProvider{}
	}
	return &Orchestrator{
		cfg:        cfg,
		http:       http,
		placements: placements,
		tokens:     tokens,
		obs:        obs,
		logger:     log,
	}
}

// Run executes the flow end to end. A not-approved lookup returns without
// emitting anything; every failure emits exactly one SDKError event; an
// approved lookup ends with exactly one RenderPopup carrying the embedded
// offer.
func (o *Orchestrator) Run(ctx context.Context, merchant *models.MerchantConfiguration, data models.RTPSData, siteKey string, sink *events.Sink) {
	start := time.Now()

	outcome := o.run(ctx, merchant, data, siteKey, sink)

	metrics.RTPSFlows.WithLabelValues(outcome).Inc()
	metrics.FlowDuration.WithLabelValues("rtps").Observe(time.Since(start).Seconds())
	if o.obs != nil {
		o.obs.RecordFlow(ctx, "rtps", outcome)
		o.obs.RecordFlowDuration(ctx, "rtps", time.Since(start))
	}
}

func (o *Orchestrator) run(ctx context.Context, merchant *models.MerchantConfiguration, data models.RTPSData, siteKey string, sink *events.Sink) string {
	o.logger.Debug("starting security check", map[string]interface{}{
		"has_site_key": siteKey != "",
	})

	token, err := o.acquireToken(ctx, siteKey)
	if err != nil {
		if ctx.Err() != nil {
			return outcomeCancelled
		}
		return o.fail(sink, sdkerrors.NewSecurityCheckError(err))
	}

	response, err := o.lookup(ctx, merchant, data, siteKey, token, sink)
	if err != nil {
		if ctx.Err() != nil {
			return outcomeCancelled
		}
		return o.fail(sink, err)
	}

	result := models.GetPrescreenResult(response.ReturnCode)
	metrics.PrescreenResults.WithLabelValues(string(result)).Inc()
	o.logger.Info("prescreen lookup mapped", map[string]interface{}{
		"return_code":       response.ReturnCode,
		"result":            string(result),
		"has_prescreen_id":  response.PrescreenID != nil,
	})

	// The lookup runs without user interaction. Anything short of an
	// approval with a usable prescreen id ends the flow silently.
	if result != models.PrescreenApproved || response.PrescreenID == nil {
		return outcomeNotApproved
	}

	if err := o.deliverOffer(ctx, merchant, data, response.PrescreenID, sink); err != nil {
		if ctx.Err() != nil {
			return outcomeCancelled
		}
		return o.fail(sink, err)
	}
	return outcomeDelivered
}

func (o *Orchestrator) acquireToken(ctx context.Context, siteKey string) (string, error) {
	tctx, cancel := context.WithTimeout(ctx, o.cfg.RecaptchaTimeout)
	defer cancel()
	return o.tokens.Token(tctx, siteKey)
}

// lookup posts the lookup request, resolving bot-challenge interstitials
// by surfacing them to the host and retrying with a fresh token, up to
// the configured ceiling.
func (o *Orchestrator) lookup(ctx context.Context, merchant *models.MerchantConfiguration, data models.RTPSData, siteKey, token string, sink *events.Sink) (*models.RTPSResponse, error) {
	path := prescreenPath
	if data.PrescreenID != nil {
		path = virtualLookupPath
	}
	url := o.cfg.RTPSBaseURL + path

	attempts := 0
	for {
		request := BuildLookupRequest(merchant, data, token)

		var response models.RTPSResponse
		err := o.http.PostJSON(ctx, url, request, &response)
		if err == nil {
			return &response, nil
		}

		challenge, ok := err.(*httpx.Challenge)
		if !ok {
			return nil, err
		}

		if attempts >= o.cfg.MaxChallengeRetries {
			return nil, sdkerrors.NewChallengeError(
				fmt.Sprintf("challenge persisted after %d retries", attempts))
		}
		attempts++
		metrics.ChallengeRetries.Inc()

		o.logger.Warn("bot challenge intercepted, retrying with fresh token", map[string]interface{}{
			"attempt": attempts,
			"url":     challenge.TargetURL,
		})
		sink.Emit(events.RenderPopup{Challenge: &events.ChallengeSurface{
			HTML:        challenge.HTML,
			OriginalURL: challenge.TargetURL,
		}})

		token, err = o.acquireToken(ctx, siteKey)
		if err != nil {
			return nil, sdkerrors.NewSecurityCheckError(err)
		}
	}
}

// deliverOffer fetches the approval placement and emits the embedded
// offer popup.
func (o *Orchestrator) deliverOffer(ctx context.Context, merchant *models.MerchantConfiguration, data models.RTPSData, prescreenID *int64, sink *events.Sink) error {
	webURL, err := BuildWebURL(o.cfg.RTPSBaseURL, o.cfg.IntegrationKey, merchant, data, prescreenID)
	if err != nil {
		return sdkerrors.NewConfigurationError(err.Error())
	}

	env := ""
	if merchant != nil {
		env = string(merchant.Env)
	}
	request := models.PlacementRequest{
		BrandID: o.cfg.IntegrationKey,
		Placements: []models.PlacementRequestBody{
			{
				Context: &models.PlacementContext{
					Env:         env,
					Location:    approvalLocation,
					EmbeddedURL: webURL,
				},
			},
		},
	}

	response, err := o.placements.FetchPlacements(ctx, request)
	if err != nil {
		return err
	}
	if len(response.Placements) == 0 {
		return sdkerrors.NewExtractionError("approval fetch returned no placements")
	}

	sink.Emit(events.RenderPopup{Popup: approvalPopup(response.Placements[0])})
	return nil
}

// approvalPopup synthesizes the popup model for the embedded approval
// experience. The fragment carries no overlay markup; the web surface
// renders everything, so only the embedding fields are set.
func approvalPopup(placement models.Placement) *models.PopupPlacementModel {
	popup := &models.PopupPlacementModel{
		OverlayType: string(models.OverlayEmbedded),
		DynamicBody: models.DynamicBodyModel{BodyDiv: map[string]models.DynamicBodyContent{}},
	}
	if rc := placement.RenderContext; rc != nil {
		popup.Location = rc.Location
		popup.WebViewURL = rc.EmbeddedURL
	}
	return popup
}

func (o *Orchestrator) fail(sink *events.Sink, err error) string {
	o.logger.WithError(err).Error("pre-screen flow failed", nil)
	sink.Emit(events.SDKError{Err: err})
	return outcomeFailed
}
