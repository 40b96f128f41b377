package adapters

import (
	"github.com/restoreco/claimscope/pkg/models/api"
	"github.com/restoreco/claimscope/pkg/models/domain"
)

func MapLineItemDomainToApi(li domain.LineItem) api.LineItem {
	return api.LineItem{
		ID:                 li.ID,
		DocumentLineNumber: li.DocumentLineNumber,
		Quantity:           li.Quantity,
		Description:        li.Description,
		RCV:                li.RCV,
		ACV:                li.ACV,
		Checked:            li.Checked,
		Notes:              li.Notes,
	}
}

func MapSupplementDomainToApi(s domain.SupplementItem) api.SupplementItem {
	return api.SupplementItem{
		ID:       s.ID,
		Title:    s.Title,
		Quantity: s.Quantity,
		Amount:   s.Amount,
	}
}

func MapTradeDomainToApi(t domain.Trade) api.Trade {
	res := api.Trade{
		ID:          t.ID,
		Name:        t.Name,
		Checked:     t.Checked,
		LineItems:   make([]api.LineItem, 0, len(t.LineItems)),
		Supplements: make([]api.SupplementItem, 0, len(t.Supplements)),
	}
	for _, li := range t.LineItems {
		res.LineItems = append(res.LineItems, MapLineItemDomainToApi(li))
	}
	for _, s := range t.Supplements {
		res.Supplements = append(res.Supplements, MapSupplementDomainToApi(s))
	}
	return res
}

func MapClaimRecordDomainToApi(c domain.ClaimRecord) api.ClaimRecord {
	res := api.ClaimRecord{
		ID:          c.ID,
		Deductible:  c.Deductible,
		ClaimNumber: c.ClaimNumber,
		Adjuster: api.ClaimAdjuster{
			Name:  c.Adjuster.Name,
			Email: c.Adjuster.Email,
		},
		Trades:     make([]api.Trade, 0, len(c.Trades)),
		Finalized:  c.Finalized,
		Exclusions: c.Exclusions,
	}
	for _, t := range c.Trades {
		res.Trades = append(res.Trades, MapTradeDomainToApi(t))
	}
	return res
}

func MapTotalsDomainToApi(t domain.Totals) api.Totals {
	res := api.Totals{
		TotalRCV:         t.TotalRCV,
		TotalACV:         t.TotalACV,
		TotalSupplements: t.TotalSupplements,
		LeftoverACV:      t.LeftoverACV,
		Depreciation:     t.Depreciation,
		PerTrade:         make([]api.TradeTotal, 0, len(t.PerTrade)),
		Schedule: api.PaymentSchedule{
			DueToday:                   t.Schedule.DueToday,
			DueOnCompletion:            t.Schedule.DueOnCompletion,
			DepreciationPlusDeductible: t.Schedule.DepreciationPlusDeductible,
		},
		Split: api.PaymentSplit{
			InsurancePays: t.Split.InsurancePays,
			HomeownerPays: t.Split.HomeownerPays,
		},
	}
	for _, tt := range t.PerTrade {
		res.PerTrade = append(res.PerTrade, api.TradeTotal{
			TradeID: tt.TradeID,
			Name:    tt.Name,
			RCV:     tt.RCV,
			ACV:     tt.ACV,
		})
	}
	return res
}
