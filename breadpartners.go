// Package breadpartners is the host-facing entry point of the SDK. A
// handle created with New owns its configuration, network clients and
// brand state; nothing is process-global, so independent handles can run
// against different brands side by side.
//
// Flows report exclusively through the event stream: each entry point
// takes a consumer, and all results, errors and web-surface interactions
// arrive as events on it. Entry points return an error only when the flow
// could not start at all.
package breadpartners

import (
	"context"
	"sync"

	"bread-partners-sdk/internal/bridge"
	"bread-partners-sdk/internal/common/cache"
	"bread-partners-sdk/internal/common/config"
	sdkerrors "bread-partners-sdk/internal/common/errors"
	"bread-partners-sdk/internal/common/httpx"
	"bread-partners-sdk/internal/common/logger"
	"bread-partners-sdk/internal/common/observability"
	"bread-partners-sdk/internal/events"
	"bread-partners-sdk/internal/extract"
	"bread-partners-sdk/internal/models"
	"bread-partners-sdk/internal/placements"
	"bread-partners-sdk/internal/rtps"
)

// Options configures a new SDK handle. IntegrationKey is the only
// required field.
type Options struct {
	IntegrationKey string

	// Config overrides the defaults; nil uses config.Default().
	Config *config.Config

	// Logger overrides the zap logger built from Config.Logging.
	Logger logger.Logger

	// TokenProvider plugs a real bot-verification client. Nil falls back
	// to opaque per-call tokens.
	TokenProvider rtps.TokenProvider

	// Extraction tunes fragment extraction.
	Extraction extract.Options
}

// RenderOptions selects how a registered text placement is surfaced.
type RenderOptions struct {
	// SplitTextAndAction renders the text and its action as two separate
	// elements instead of a single text with an embedded link.
	SplitTextAndAction bool

	// OpenExperience skips the text rendering and opens the placement's
	// popup directly, as if the user had already tapped it.
	OpenExperience bool
}

// SDK is one brand-scoped handle. At most one flow runs on a handle at a
// time; starting a second one fails with FLOW_IN_PROGRESS.
type SDK struct {
	cfg            *config.Config
	log            logger.Logger
	integrationKey string
	env            models.Environment

	http         *httpx.Client
	cache        *cache.Cache
	placements   *placements.Client
	orchestrator *rtps.Orchestrator
	bridge       *bridge.Handler
	extractor    *extract.Extractor
	obs          *observability.Observability

	mu          sync.Mutex
	flowActive  bool
	brandConfig *models.BrandConfig
}

func New(opts Options) (*SDK, error) {
	if opts.IntegrationKey == "" {
		return nil, sdkerrors.NewConfigurationError("integration key is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewZapAdapter(logger.New(cfg.Logging.Level, cfg.Logging.Format))
	}

	env := models.EnvProd
	if cfg.App.Environment == "stage" {
		env = models.EnvStage
	}
	endpoints := cfg.Endpoints.ForEnvironment(cfg.App.Environment)

	httpClient := httpx.NewClient(cfg.HTTP.Timeout, opts.IntegrationKey, log)
	brandCache := cache.New(cfg.Cache)
	placementClient := placements.NewClient(httpClient, endpoints.BrandBaseURL, brandCache, log)
	obs := observability.New(cfg.App.Name)

	orchestrator := rtps.New(
		rtps.Config{
			RTPSBaseURL:         endpoints.RTPSBaseURL,
			IntegrationKey:      opts.IntegrationKey,
			RecaptchaTimeout:    cfg.Security.RecaptchaTimeout,
			MaxChallengeRetries: cfg.Security.MaxChallengeRetries,
		},
		httpClient, placementClient, opts.TokenProvider, obs, log,
	)

	bridgeHandler, err := bridge.NewHandler(log)
	if err != nil {
		return nil, sdkerrors.NewConfigurationError(err.Error())
	}

	return &SDK{
		cfg:            cfg,
		log:            log,
		integrationKey: opts.IntegrationKey,
		env:            env,
		http:           httpClient,
		cache:          brandCache,
		placements:     placementClient,
		orchestrator:   orchestrator,
		bridge:         bridgeHandler,
		extractor:      extract.NewWithOptions(opts.Extraction),
		obs:            obs,
	}, nil
}

// Setup fetches the brand configuration ahead of the first flow. Flows
// call it lazily, so Setup is an optimization, not a requirement.
func (s *SDK) Setup(ctx context.Context) error {
	_, err := s.ensureBrandConfig(ctx)
	return err
}

// Close releases the handle's resources.
func (s *SDK) Close() error {
	s.obs.Shutdown()
	return s.cache.Close()
}

func (s *SDK) ensureBrandConfig(ctx context.Context) (*models.BrandConfig, error) {
	s.mu.Lock()
	if s.brandConfig != nil {
		defer s.mu.Unlock()
		return s.brandConfig, nil
	}
	s.mu.Unlock()

	brandConfig, err := s.placements.FetchBrandConfig(ctx, s.integrationKey)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.brandConfig = brandConfig
	s.mu.Unlock()
	return brandConfig, nil
}

func (s *SDK) beginFlow() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flowActive {
		return sdkerrors.NewFlowInProgressError()
	}
	s.flowActive = true
	return nil
}

func (s *SDK) endFlow() {
	s.mu.Lock()
	s.flowActive = false
	s.mu.Unlock()
}

// RegisterPlacements fetches and surfaces the placement for the given
// selection. On success the returned session carries the fetched state
// for follow-up interactions; events flow to consumer.
func (s *SDK) RegisterPlacements(ctx context.Context, merchant *models.MerchantConfiguration, placement models.PlacementData, render RenderOptions, consumer events.Consumer) (*PlacementSession, error) {
	if err := s.beginFlow(); err != nil {
		return nil, err
	}
	defer s.endFlow()

	sink := events.NewSink(ctx, consumer)
	session := &PlacementSession{
		sdk:       s,
		sink:      sink,
		merchant:  merchant,
		placement: placement,
	}

	// The flow cannot run without the brand configuration.
	if _, err := s.ensureBrandConfig(ctx); err != nil {
		sink.Emit(events.SDKError{Err: sdkerrors.NewConfigurationError(err.Error())})
		return session, nil
	}

	request := placements.BuildRequest(s.integrationKey, merchant, placement)
	response, err := s.placements.FetchPlacements(ctx, request)
	if err != nil {
		sink.Emit(events.SDKError{Err: err})
		return session, nil
	}
	session.response = response

	if render.OpenExperience {
		s.openExperience(session)
		return session, nil
	}

	html, err := firstHTMLContent(response)
	if err != nil {
		sink.Emit(events.SDKError{Err: err})
		return session, nil
	}

	model, err := s.extractor.ExtractText(html)
	if err != nil {
		sink.Emit(events.SDKError{Err: err})
		return session, nil
	}
	session.text = model

	if render.SplitTextAndAction {
		sink.Emit(events.RenderSplitTextAndButton{Model: *model})
	} else {
		sink.Emit(events.RenderTextWithLink{Model: *model})
	}
	return session, nil
}

// openExperience opens the placement's popup directly, simulating the tap
// the user would otherwise make.
func (s *SDK) openExperience(session *PlacementSession) {
	content, err := placements.FirstPopupContent(session.response)
	if err != nil {
		session.sink.Emit(events.SDKError{Err: err})
		return
	}

	popup, err := s.extractor.ExtractPopup(content.ContentData.HTMLContent)
	if err != nil {
		session.sink.Emit(events.SDKError{Err: err})
		return
	}

	session.sink.Emit(events.TextClicked{})
	session.sink.Emit(events.RenderPopup{Popup: popup})
}

// SilentRTPSRequest runs the real-time pre-screen flow. A buyer who is
// not approved produces no events at all; the caller must not surface
// anything in that case.
func (s *SDK) SilentRTPSRequest(ctx context.Context, merchant *models.MerchantConfiguration, data models.RTPSData, consumer events.Consumer) (*RTPSSession, error) {
	if err := s.beginFlow(); err != nil {
		return nil, err
	}
	defer s.endFlow()

	sink := events.NewSink(ctx, consumer)
	session := &RTPSSession{sdk: s, sink: sink}

	brandConfig, err := s.ensureBrandConfig(ctx)
	if err != nil {
		sink.Emit(events.SDKError{Err: sdkerrors.NewConfigurationError(err.Error())})
		return session, nil
	}

	s.orchestrator.Run(ctx, merchant, data, brandConfig.Config.RecaptchaSiteKey(s.env), sink)
	return session, nil
}

func firstHTMLContent(response *models.PlacementsResponse) (string, error) {
	if len(response.PlacementContent) == 0 ||
		response.PlacementContent[0].ContentData == nil ||
		response.PlacementContent[0].ContentData.HTMLContent == "" {
		return "", sdkerrors.NewExtractionError("placement response carried no text content")
	}
	return response.PlacementContent[0].ContentData.HTMLContent, nil
}
