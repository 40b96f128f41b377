package scope

import (
	"github.com/restoreco/claimscope/pkg/models/domain"
)

// Compute is the aggregation pass over a claim record. It is a pure
// function: no state, no side effects, identical output for identical
// input. It runs in one pass over line items and supplements, so it is
// cheap enough to re-run on every reviewer edit.
func Compute(c domain.ClaimRecord) domain.Totals {
	totals := domain.Totals{
		PerTrade: make([]domain.TradeTotal, 0, len(c.Trades)),
	}

	for _, t := range c.Trades {
		var tradeRCV, tradeACV float64

		for _, li := range t.LineItems {
			if li.Checked {
				tradeRCV += li.RCV
				if li.ACV != nil {
					tradeACV += *li.ACV
				}
			} else if li.ACV != nil {
				// Unchecked value counts as leftover regardless of the
				// parent trade's flag; line items are the source of
				// truth for inclusion.
				totals.LeftoverACV += *li.ACV
			}
		}

		// Supplements carry no depreciation split: their amount lands
		// on both RCV and ACV.
		for _, s := range t.Supplements {
			tradeRCV += s.Amount
			tradeACV += s.Amount
			totals.TotalSupplements += s.Amount
		}

		totals.TotalRCV += tradeRCV
		totals.TotalACV += tradeACV
		totals.PerTrade = append(totals.PerTrade, domain.TradeTotal{
			TradeID: t.ID,
			Name:    t.Name,
			RCV:     tradeRCV,
			ACV:     tradeACV,
		})
	}

	totals.Depreciation = totals.TotalRCV - totals.TotalACV
	totals.Schedule = schedule(totals.TotalRCV, totals.TotalACV, c.Deductible)
	totals.Split = split(totals.TotalRCV, c.Deductible)

	return totals
}

// schedule derives the two-stage collection plan. When the ACV payout
// falls under half the replacement value, the full ACV plus the
// deductible is collected upfront; otherwise the upfront amount is
// capped at half the RCV so work is not over-collected before
// substantial completion.
func schedule(totalRCV, totalACV, deductible float64) domain.PaymentSchedule {
	var dueToday float64
	if totalACV < totalRCV*0.5 {
		dueToday = totalACV + deductible
	} else {
		dueToday = totalRCV * 0.5
	}

	dueOnCompletion := totalACV - dueToday
	if dueOnCompletion < 0 {
		dueOnCompletion = 0
	}

	return domain.PaymentSchedule{
		DueToday:                   dueToday,
		DueOnCompletion:            dueOnCompletion,
		DepreciationPlusDeductible: (totalRCV - totalACV) + deductible,
	}
}

// split is the simpler insurer-vs-homeowner framing shown alongside
// the schedule. The two computations intentionally coexist; they are
// different financial views over the same totals.
func split(totalRCV, deductible float64) domain.PaymentSplit {
	insurancePays := totalRCV - deductible
	if insurancePays < 0 {
		insurancePays = 0
	}
	return domain.PaymentSplit{
		InsurancePays: insurancePays,
		HomeownerPays: deductible,
	}
}
