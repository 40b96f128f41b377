package domain

// TradeTotal holds the aggregated value of one trade.
type TradeTotal struct {
	TradeID string
	Name    string
	RCV     float64
	ACV     float64
}

// PaymentSchedule is the two-stage collection plan derived from the
// whole-claim totals: an upfront amount, a substantial-completion
// remainder, and the bucket released with the insurer's final
// depreciation payment.
type PaymentSchedule struct {
	DueToday                   float64
	DueOnCompletion            float64
	DepreciationPlusDeductible float64
}

// PaymentSplit is the simpler insurer-vs-homeowner framing shown on the
// review page. It is intentionally independent of PaymentSchedule; the
// two are different views over the same totals.
type PaymentSplit struct {
	InsurancePays float64
	HomeownerPays float64
}

// Totals is the output of one aggregation pass over a ClaimRecord.
type Totals struct {
	TotalRCV         float64
	TotalACV         float64
	TotalSupplements float64
	LeftoverACV      float64
	Depreciation     float64 // TotalRCV - TotalACV, display when TotalACV > 0
	PerTrade         []TradeTotal
	Schedule         PaymentSchedule
	Split            PaymentSplit
}

// TradeTotalByID returns the aggregated total for one trade.
func (t Totals) TradeTotalByID(tradeID string) (TradeTotal, bool) {
	for _, tt := range t.PerTrade {
		if tt.TradeID == tradeID {
			return tt, true
		}
	}
	return TradeTotal{}, false
}
