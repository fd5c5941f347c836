package news

import (
	"context"
	"time"

	"GoldPulse/internal/domain/models"
	domsvc "GoldPulse/internal/domain/service"
	"GoldPulse/pkg/config"
	xhttp "GoldPulse/pkg/http"
	applogger "GoldPulse/pkg/logger"
)

// HTTPNewsService asks the calendar/headline API for scheduled-event risk
// and fundamental bias. Every failure degrades to neutral: news can veto a
// signal but must never block one from being computed.
type HTTPNewsService struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
	l       *applogger.Logger
}

func NewHTTPNewsService(cfg *config.Config) *HTTPNewsService {
	timeout := cfg.News.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPNewsService{
		baseURL: cfg.News.BaseURL,
		apiKey:  cfg.News.APIKey,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// SetLogger injects a structured logger.
func (s *HTTPNewsService) SetLogger(l *applogger.Logger) { s.l = l }

type riskResponse struct {
	Level  string `json:"level"`
	Avoid  bool   `json:"avoid"`
	Reason string `json:"reason"`
}

type biasResponse struct {
	Bias  string  `json:"bias"`
	Score float64 `json:"score"`
}

func (s *HTTPNewsService) Risk(ctx context.Context, symbol string) models.NewsRisk {
	if s.baseURL == "" {
		return neutralRisk()
	}
	var rr riskResponse
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     s.baseURL + "/api/v1/calendar/risk",
		Headers: map[string]string{"X-API-Key": s.apiKey},
		QueryParams: map[string][]string{
			"symbol": {symbol},
		},
	}, &rr)
	if err != nil {
		if s.l != nil {
			s.l.Warn("news risk fetch failed, using neutral",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return neutralRisk()
	}
	return models.NewsRisk{Level: rr.Level, Avoid: rr.Avoid, Reason: rr.Reason}
}

func (s *HTTPNewsService) Bias(ctx context.Context, symbol string) models.NewsBias {
	if s.baseURL == "" {
		return neutralBias()
	}
	var br biasResponse
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     s.baseURL + "/api/v1/headlines/bias",
		Headers: map[string]string{"X-API-Key": s.apiKey},
		QueryParams: map[string][]string{
			"symbol": {symbol},
		},
	}, &br)
	if err != nil {
		if s.l != nil {
			s.l.Warn("news bias fetch failed, using neutral",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return neutralBias()
	}
	switch br.Bias {
	case models.NewsBiasBullishGold, models.NewsBiasBearishGold, models.NewsBiasNeutral:
		return models.NewsBias{Bias: br.Bias, Score: br.Score}
	default:
		return neutralBias()
	}
}

func neutralRisk() models.NewsRisk {
	return models.NewsRisk{Level: "LOW", Avoid: false}
}

func neutralBias() models.NewsBias {
	return models.NewsBias{Bias: models.NewsBiasNeutral}
}

var _ domsvc.NewsService = (*HTTPNewsService)(nil)
