package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"GoldPulse/internal/domain/models"
	domsvc "GoldPulse/internal/domain/service"
	"GoldPulse/pkg/config"
	xhttp "GoldPulse/pkg/http"
	applogger "GoldPulse/pkg/logger"
)

// HTTPNarrativeService posts the typed context snapshot to the summarizer
// service. On any failure it falls back to the deterministic offline
// template, so a narrative is always returned.
type HTTPNarrativeService struct {
	enabled bool
	baseURL string
	client  *xhttp.Client
	l       *applogger.Logger
}

func NewHTTPNarrativeService(cfg *config.Config) *HTTPNarrativeService {
	timeout := cfg.Narrative.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &HTTPNarrativeService{
		enabled: cfg.Narrative.Enabled && cfg.Narrative.BaseURL != "",
		baseURL: cfg.Narrative.BaseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// SetLogger injects a structured logger.
func (s *HTTPNarrativeService) SetLogger(l *applogger.Logger) { s.l = l }

type summarizeResponse struct {
	Text string `json:"text"`
}

func (s *HTTPNarrativeService) Summarize(ctx context.Context, nc models.NarrativeContext) string {
	if !s.enabled {
		return OfflineSummary(nc)
	}
	var resp summarizeResponse
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     s.baseURL + "/api/v1/summarize",
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    nc,
	}, &resp)
	if err != nil || resp.Text == "" {
		if s.l != nil && err != nil {
			s.l.Warn("narrative service failed, using offline template",
				applogger.String("symbol", nc.Symbol),
				applogger.Error(err),
			)
		}
		return OfflineSummary(nc)
	}
	return resp.Text
}

// OfflineSummary renders the deterministic template narrative. It reads
// only the snapshot, so identical contexts yield identical text.
func OfflineSummary(nc models.NarrativeContext) string {
	var b strings.Builder

	sig := nc.Signal
	switch sig.Action {
	case models.ActionWait:
		fmt.Fprintf(&b, "%s %s: no trade. ", nc.Symbol, nc.Interval)
	default:
		fmt.Fprintf(&b, "%s %s: %s at %.2f (confidence %.0f). ",
			nc.Symbol, nc.Interval, sig.Action, sig.Entry, sig.Confidence)
	}

	fmt.Fprintf(&b, "Market phase is %s with a %s bias", nc.Phase.Phase, nc.Phase.Bias)
	if nc.Phase.Description != "" {
		fmt.Fprintf(&b, " (%s)", strings.ToLower(nc.Phase.Description[:1])+nc.Phase.Description[1:])
	}
	b.WriteString(". ")

	if n := len(nc.Zones.OrderBlocks); n > 0 {
		fmt.Fprintf(&b, "%d order block(s) are in play. ", n)
	}
	if n := activeGaps(nc.Zones.Gaps); n > 0 {
		fmt.Fprintf(&b, "%d imbalance gap(s) remain unmitigated. ", n)
	}
	if len(nc.Candles) > 0 {
		names := make([]string, 0, len(nc.Candles))
		for _, p := range nc.Candles {
			names = append(names, p.Name)
		}
		fmt.Fprintf(&b, "Recent candles printed: %s. ", strings.Join(names, ", "))
	}

	if sig.Action != models.ActionWait {
		fmt.Fprintf(&b, "Stop %.2f, targets %.2f / %.2f / %.2f. ",
			sig.StopLoss, sig.TP1, sig.TP2, sig.TP3)
	}
	if nc.News.Avoid {
		fmt.Fprintf(&b, "Standing aside for news: %s.", nc.News.Reason)
	}

	return strings.TrimSpace(b.String())
}

func activeGaps(gaps []models.FairValueGap) int {
	n := 0
	for _, g := range gaps {
		if !g.Mitigated {
			n++
		}
	}
	return n
}

var _ domsvc.NarrativeService = (*HTTPNarrativeService)(nil)
