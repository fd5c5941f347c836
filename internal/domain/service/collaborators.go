package service

import (
	"context"

	"GoldPulse/internal/domain/models"
)

// NewsService supplies scheduled-news risk and fundamental bias. Both calls
// must degrade to neutral values on upstream failure, never error out of
// signal computation.
type NewsService interface {
	Risk(ctx context.Context, symbol string) models.NewsRisk
	Bias(ctx context.Context, symbol string) models.NewsBias
}

// SpotService supplies dealing-quality context for the modifier stage.
type SpotService interface {
	Insights(ctx context.Context, symbol string) models.SpotInsights
}

// NarrativeService renders a human-readable summary of a finished signal.
// Implementations must offer a deterministic offline fallback; narrative
// generation is never a hard dependency of signal computation.
type NarrativeService interface {
	Summarize(ctx context.Context, nc models.NarrativeContext) string
}
