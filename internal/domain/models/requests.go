package models

// Requests for the signal HTTP endpoints. Defined in domain for consistency and reuse.

type SignalRequest struct {
	Symbol   string `query:"symbol" json:"symbol" default:"XAUUSD" validate:"required"`
	Interval string `query:"interval" json:"interval" default:"1h" validate:"oneof=5m 15m 1h 4h 1d"`
	N        int    `query:"n" json:"n" default:"200" validate:"gte=10,lte=2000"`
}

type PhaseRequest struct {
	Symbol   string `query:"symbol" json:"symbol" default:"XAUUSD" validate:"required"`
	Interval string `query:"interval" json:"interval" default:"1h" validate:"oneof=5m 15m 1h 4h 1d"`
	N        int    `query:"n" json:"n" default:"100" validate:"gte=10,lte=2000"`
}

type ZonesRequest struct {
	Symbol   string `query:"symbol" json:"symbol" default:"XAUUSD" validate:"required"`
	Interval string `query:"interval" json:"interval" default:"1h" validate:"oneof=5m 15m 1h 4h 1d"`
	N        int    `query:"n" json:"n" default:"200" validate:"gte=10,lte=2000"`
}

type PatternsRequest struct {
	Symbol   string `query:"symbol" json:"symbol" default:"XAUUSD" validate:"required"`
	Interval string `query:"interval" json:"interval" default:"1h" validate:"oneof=5m 15m 1h 4h 1d"`
	N        int    `query:"n" json:"n" default:"100" validate:"gte=10,lte=2000"`
}

type CandlesRequest struct {
	Symbol   string `query:"symbol" json:"symbol" default:"XAUUSD" validate:"required"`
	Interval string `query:"interval" json:"interval" default:"1h" validate:"oneof=5m 15m 1h 4h 1d"`
	N        int    `query:"n" json:"n" default:"200" validate:"gte=1,lte=5000"`
}
