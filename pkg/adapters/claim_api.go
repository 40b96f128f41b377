package adapters

import (
	"github.com/restoreco/claimscope/pkg/models/api"
	"github.com/restoreco/claimscope/pkg/models/domain"
)

func MapClaimRecordApiToDomain(c api.ClaimRecord) domain.ClaimRecord {
	res := domain.ClaimRecord{
		ID:          c.ID,
		Deductible:  c.Deductible,
		ClaimNumber: c.ClaimNumber,
		Adjuster: domain.ClaimAdjuster{
			Name:  c.Adjuster.Name,
			Email: c.Adjuster.Email,
		},
		Trades:     make([]domain.Trade, 0, len(c.Trades)),
		Finalized:  c.Finalized,
		Exclusions: c.Exclusions,
	}
	for _, t := range c.Trades {
		res.Trades = append(res.Trades, MapTradeApiToDomain(t))
	}
	return res
}

func MapTradeApiToDomain(t api.Trade) domain.Trade {
	res := domain.Trade{
		ID:          t.ID,
		Name:        t.Name,
		Checked:     t.Checked,
		LineItems:   make([]domain.LineItem, 0, len(t.LineItems)),
		Supplements: make([]domain.SupplementItem, 0, len(t.Supplements)),
	}
	for _, li := range t.LineItems {
		res.LineItems = append(res.LineItems, domain.LineItem{
			ID:                 li.ID,
			DocumentLineNumber: li.DocumentLineNumber,
			Quantity:           li.Quantity,
			Description:        li.Description,
			RCV:                li.RCV,
			ACV:                li.ACV,
			Checked:            li.Checked,
			Notes:              li.Notes,
		})
	}
	for _, s := range t.Supplements {
		res.Supplements = append(res.Supplements, domain.SupplementItem{
			ID:       s.ID,
			Title:    s.Title,
			Quantity: s.Quantity,
			Amount:   s.Amount,
		})
	}
	return res
}
