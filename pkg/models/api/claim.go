package api

// ClaimAdjuster mirrors the adjuster block of the extraction contract.
type ClaimAdjuster struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LineItem is the wire shape of one scope line. The json names match
// the extraction contract exactly; the same shape is served back to
// the review page.
type LineItem struct {
	ID                 string   `json:"id"`
	DocumentLineNumber string   `json:"documentLineNumber,omitempty"`
	Quantity           string   `json:"quantity"`
	Description        string   `json:"description"`
	RCV                float64  `json:"rcv"`
	ACV                *float64 `json:"acv,omitempty"`
	Checked            bool     `json:"checked"`
	Notes              string   `json:"notes"`
}

type SupplementItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Quantity string  `json:"quantity"`
	Amount   float64 `json:"amount"`
}

type Trade struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Checked     bool             `json:"checked"`
	LineItems   []LineItem       `json:"lineItems"`
	Supplements []SupplementItem `json:"supplements"`
}

type ClaimRecord struct {
	ID          string        `json:"id"`
	Deductible  float64       `json:"deductible"`
	ClaimNumber string        `json:"claimNumber"`
	Adjuster    ClaimAdjuster `json:"claimAdjuster"`
	Trades      []Trade       `json:"trades"`
	Finalized   bool          `json:"finalized"`
	Exclusions  []string      `json:"exclusions,omitempty"`
}

type TradeTotal struct {
	TradeID string  `json:"tradeId"`
	Name    string  `json:"name"`
	RCV     float64 `json:"rcv"`
	ACV     float64 `json:"acv"`
}

type PaymentSchedule struct {
	DueToday                   float64 `json:"dueToday"`
	DueOnCompletion            float64 `json:"dueOnCompletion"`
	DepreciationPlusDeductible float64 `json:"depreciationPlusDeductible"`
}

type PaymentSplit struct {
	InsurancePays float64 `json:"insurancePays"`
	HomeownerPays float64 `json:"homeownerPays"`
}

type Totals struct {
	TotalRCV         float64         `json:"totalRcv"`
	TotalACV         float64         `json:"totalAcv"`
	TotalSupplements float64         `json:"totalSupplements"`
	LeftoverACV      float64         `json:"leftoverAcv"`
	Depreciation     float64         `json:"depreciation"`
	PerTrade         []TradeTotal    `json:"perTrade"`
	Schedule         PaymentSchedule `json:"schedule"`
	Split            PaymentSplit    `json:"split"`
}

// ClaimResponse pairs the record with its freshly computed totals;
// every mutation endpoint returns one.
type ClaimResponse struct {
	Claim  ClaimRecord `json:"claim"`
	Totals Totals      `json:"totals"`
}

// SummaryResponse is the finalized view served to the summary page.
type SummaryResponse struct {
	Claim      ClaimRecord `json:"claim"`
	Totals     Totals      `json:"totals"`
	Exclusions []string    `json:"exclusions"`
}

// ExtractRequest carries the pasted or OCR'd document text.
type ExtractRequest struct {
	Text string `json:"text"`
}

type DeductibleRequest struct {
	Deductible float64 `json:"deductible"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type AddSupplementRequest struct {
	Title    string  `json:"title"`
	Quantity string  `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// ExportResponse reports the delivery outcome inline; failures carry
// the raw upstream status so the user can simply re-trigger.
type ExportResponse struct {
	Delivered      bool   `json:"delivered"`
	Filename       string `json:"filename"`
	UpstreamStatus int    `json:"upstreamStatus,omitempty"`
	Message        string `json:"message,omitempty"`
}

// Error is the uniform error envelope. Retryable marks upstream
// failures the client may resubmit; Redirect points the wizard back to
// the entry stage when no record exists for the session.
type Error struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
	Redirect  string `json:"redirect,omitempty"`
	Preview   string `json:"preview,omitempty"`
}
