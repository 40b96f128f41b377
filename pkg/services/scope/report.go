package scope

import (
	"fmt"

	"github.com/restoreco/claimscope/pkg/models/domain"
)

// BuildReport projects a finalized record and its totals into the
// renderable summary consumed by the terminal reporter and the PDF
// export.
func BuildReport(c domain.ClaimRecord, totals domain.Totals) domain.Report {
	report := domain.Report{
		Title:       "Scope of Work Summary",
		ClaimNumber: c.ClaimNumber,
		Adjuster:    c.Adjuster,
		TotalRCV:    totals.TotalRCV,
		TotalACV:    totals.TotalACV,
		Currency:    "USD",
	}

	for _, t := range c.Trades {
		tt, _ := totals.TradeTotalByID(t.ID)
		section := domain.ReportSection{
			Title: t.Name,
			Summary: map[string]string{
				"RCV": money(tt.RCV),
				"ACV": money(tt.ACV),
			},
		}
		for _, li := range t.LineItems {
			if !li.Checked {
				continue
			}
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        li.Description,
				Value:       money(li.RCV),
				Description: li.Quantity,
			})
		}
		for _, s := range t.Supplements {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        s.Title + " (supplement)",
				Value:       money(s.Amount),
				Description: s.Quantity,
			})
		}
		report.Sections = append(report.Sections, section)
	}

	schedule := domain.ReportSection{
		Title: "Payment Schedule",
		Summary: map[string]string{
			"Due today":                    money(totals.Schedule.DueToday),
			"Due on completion":            money(totals.Schedule.DueOnCompletion),
			"Depreciation plus deductible": money(totals.Schedule.DepreciationPlusDeductible),
			"Insurance pays":               money(totals.Split.InsurancePays),
			"Homeowner pays":               money(totals.Split.HomeownerPays),
		},
	}
	report.Sections = append(report.Sections, schedule)

	if len(c.Exclusions) > 0 {
		excluded := domain.ReportSection{
			Title:   "Work Not Being Done",
			Summary: map[string]string{},
		}
		for _, line := range c.Exclusions {
			excluded.Details = append(excluded.Details, domain.ReportDetail{Name: line})
		}
		report.Sections = append(report.Sections, excluded)
	}

	return report
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
