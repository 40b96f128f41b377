package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/restoreco/claimscope/pkg/models/domain"
)

// previewLimit bounds the cleaned-text excerpt attached to terminal
// parse failures.
const previewLimit = 500

// Generator produces the raw model response for a document. strict
// asks for a re-generation with tighter formatting instructions; the
// zero-regeneration pipeline never sets it.
type Generator interface {
	GenerateExtraction(ctx context.Context, documentText string, strict bool) (string, error)
}

// Pipeline turns raw model output into a validated ClaimRecord. It
// performs in-process repair retries only; network retries belong to
// the caller.
type Pipeline struct {
	gen              Generator
	maxRegenerations int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRegenerations allows up to n re-asks with stricter instructions
// after a structural parse failure. Default is 0.
func WithRegenerations(n int) Option {
	return func(p *Pipeline) { p.maxRegenerations = n }
}

func NewPipeline(gen Generator, opts ...Option) *Pipeline {
	p := &Pipeline{gen: gen}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Extract runs one extraction attempt: model call, repair, parse,
// validation. Upstream failures pass through as *UpstreamError;
// structural failures surface as *MalformedError or *ShapeError.
func (p *Pipeline) Extract(ctx context.Context, documentText string) (domain.ClaimRecord, error) {
	logger := zerolog.Ctx(ctx)

	raw, err := p.gen.GenerateExtraction(ctx, documentText, false)
	if err != nil {
		return domain.ClaimRecord{}, err
	}

	record, err := Parse(raw)
	for attempt := 0; err != nil && attempt < p.maxRegenerations; attempt++ {
		var malformed *MalformedError
		if !errors.As(err, &malformed) {
			break
		}
		logger.Warn().Int("attempt", attempt+1).Msg("regenerating extraction with stricter instructions")

		raw, err = p.gen.GenerateExtraction(ctx, documentText, true)
		if err != nil {
			return domain.ClaimRecord{}, err
		}
		record, err = Parse(raw)
	}
	if err != nil {
		return domain.ClaimRecord{}, err
	}

	logger.Info().
		Str("claim_number", record.ClaimNumber).
		Int("trades", len(record.Trades)).
		Msg("extraction parsed")

	return record, nil
}

// payload is the tolerant wire shape of a model response. Trades stays
// raw so its presence and arrayness can be checked before decoding.
type payload struct {
	Deductible  float64 `json:"deductible"`
	ClaimNumber string  `json:"claimNumber"`
	Adjuster    struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"claimAdjuster"`
	Trades json.RawMessage `json:"trades"`
}

type tradePayload struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Checked     bool                `json:"checked"`
	LineItems   []lineItemPayload   `json:"lineItems"`
	Supplements []supplementPayload `json:"supplements"`
}

type lineItemPayload struct {
	ID                 string   `json:"id"`
	DocumentLineNumber string   `json:"documentLineNumber"`
	Quantity           string   `json:"quantity"`
	Description        string   `json:"description"`
	RCV                float64  `json:"rcv"`
	ACV                *float64 `json:"acv"`
	Checked            bool     `json:"checked"`
	Notes              string   `json:"notes"`
}

type supplementPayload struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Quantity string  `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// Parse coerces raw model text into a validated ClaimRecord. Repair
// stages run in order: fence strip + structural repair, parse, then a
// first-brace-to-last-brace fallback over the original text.
func Parse(raw string) (domain.ClaimRecord, error) {
	cleaned := Repair(StripFence(raw))

	var pl payload
	err := json.Unmarshal([]byte(cleaned), &pl)
	if err != nil {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start >= 0 && end > start {
			fallback := Repair(raw[start : end+1])
			if ferr := json.Unmarshal([]byte(fallback), &pl); ferr == nil {
				return validate(pl)
			}
		}
		return domain.ClaimRecord{}, &MalformedError{Preview: preview(cleaned), Err: err}
	}

	return validate(pl)
}

// validate enforces the single required-shape invariant (trades must
// be an array) and applies defaults for missing optional fields.
func validate(pl payload) (domain.ClaimRecord, error) {
	if len(pl.Trades) == 0 || string(pl.Trades) == "null" {
		return domain.ClaimRecord{}, &ShapeError{Reason: "missing trades array"}
	}

	var trades []tradePayload
	if err := json.Unmarshal(pl.Trades, &trades); err != nil {
		return domain.ClaimRecord{}, &ShapeError{Reason: fmt.Sprintf("trades is not an array: %v", err)}
	}

	record := domain.ClaimRecord{
		ID:          uuid.NewString(),
		Deductible:  pl.Deductible,
		ClaimNumber: pl.ClaimNumber,
		Adjuster: domain.ClaimAdjuster{
			Name:  pl.Adjuster.Name,
			Email: pl.Adjuster.Email,
		},
		Trades: make([]domain.Trade, 0, len(trades)),
	}

	for _, tp := range trades {
		trade := domain.Trade{
			ID:          tp.ID,
			Name:        tp.Name,
			Checked:     tp.Checked,
			LineItems:   make([]domain.LineItem, 0, len(tp.LineItems)),
			Supplements: make([]domain.SupplementItem, 0, len(tp.Supplements)),
		}
		if trade.ID == "" {
			trade.ID = uuid.NewString()
		}
		for _, lp := range tp.LineItems {
			li := domain.LineItem{
				ID:                 lp.ID,
				DocumentLineNumber: lp.DocumentLineNumber,
				Quantity:           lp.Quantity,
				Description:        lp.Description,
				RCV:                lp.RCV,
				ACV:                lp.ACV,
				Checked:            lp.Checked,
				Notes:              lp.Notes,
			}
			if li.ID == "" {
				li.ID = uuid.NewString()
			}
			trade.LineItems = append(trade.LineItems, li)
		}
		for _, sp := range tp.Supplements {
			s := domain.SupplementItem{
				ID:       sp.ID,
				Title:    sp.Title,
				Quantity: sp.Quantity,
				Amount:   sp.Amount,
			}
			if s.ID == "" {
				s.ID = uuid.NewString()
			}
			trade.Supplements = append(trade.Supplements, s)
		}
		record.Trades = append(record.Trades, trade)
	}

	return record, nil
}

func preview(s string) string {
	if len(s) <= previewLimit {
		return s
	}
	return s[:previewLimit]
}
