package export

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restoreco/claimscope/pkg/models/domain"
)

func testReport() domain.Report {
	return domain.Report{
		Title:       "Scope of Work Summary",
		ClaimNumber: "CLM-2026-014",
		Adjuster:    domain.ClaimAdjuster{Name: "Pat Reyes", Email: "pat.reyes@example.com"},
		TotalRCV:    8912.25,
		TotalACV:    6612.5,
		Currency:    "USD",
		Sections: []domain.ReportSection{
			{
				Title:   "Roofing",
				Summary: map[string]string{"RCV": "$8400.25", "ACV": "$6100.50"},
				Details: []domain.ReportDetail{
					{Name: "Remove and replace shingles", Value: "$8400.25", Description: "24.5 SQ"},
				},
			},
			{
				Title: "Work Not Being Done",
				Details: []domain.ReportDetail{
					{Name: "Siding: North face"},
				},
			},
		},
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		claimNumber string
		want        string
	}{
		{
			name:        "claim number is slugged",
			claimNumber: "CLM-2026-014",
			want:        "scope_summary_clm_2026_014_2026-08-25.pdf",
		},
		{
			name:        "punctuation collapses",
			claimNumber: "A/B #7",
			want:        "scope_summary_a_b_7_2026-08-25.pdf",
		},
		{
			name:        "empty claim number falls back",
			claimNumber: "",
			want:        "scope_summary_claim_2026-08-25.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.claimNumber, now))
		})
	}
}

func TestFlatten(t *testing.T) {
	lines := flatten(testReport())

	require.NotEmpty(t, lines)
	assert.Equal(t, "Scope of Work Summary", lines[0].value)
	assert.Equal(t, 18, lines[0].size)
	assert.Equal(t, "Claim CLM-2026-014", lines[1].value)
	assert.Equal(t, "Adjuster: Pat Reyes <pat.reyes@example.com>", lines[2].value)

	var values []string
	for _, l := range lines {
		values = append(values, l.value)
	}
	assert.Contains(t, values, "Roofing")
	assert.Contains(t, values, "  ACV: $6100.50")
	assert.Contains(t, values, "  RCV: $8400.25")
	assert.Contains(t, values, "  - Remove and replace shingles  $8400.25  (24.5 SQ)")
	assert.Contains(t, values, "  - Siding: North face")
}

func TestFlatten_SummaryKeysSorted(t *testing.T) {
	report := domain.Report{
		Title: "Scope of Work Summary",
		Sections: []domain.ReportSection{{
			Title:   "Payment Schedule",
			Summary: map[string]string{"Due today": "$450.00", "Due on completion": "$0.00"},
		}},
	}

	first := flatten(report)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, flatten(report), "map iteration must not leak into output order")
	}
}

func TestPageDescription_Pagination(t *testing.T) {
	report := domain.Report{Title: "Scope of Work Summary"}
	section := domain.ReportSection{Title: "Roofing"}
	for i := 0; i < 80; i++ {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:  fmt.Sprintf("Line item %d", i),
			Value: "$1.00",
		})
	}
	report.Sections = []domain.ReportSection{section}

	desc := pageDescription(report)

	assert.Equal(t, "Letter", desc["paper"])
	pages, ok := desc["pages"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, pages, 2, "80 detail lines overflow one 44-line page")
	require.Contains(t, pages, "1")
	require.Contains(t, pages, "2")
}

func TestPageDescription_PositionsStayOnPage(t *testing.T) {
	desc := pageDescription(testReport())

	pages := desc["pages"].(map[string]any)
	for _, page := range pages {
		text := page.(map[string]any)["content"].(map[string]any)["text"].([]map[string]any)
		for _, line := range text {
			pos := line["position"].([]float64)
			assert.Equal(t, leftMargin, pos[0])
			assert.Greater(t, pos[1], 0.0)
			assert.LessOrEqual(t, pos[1], pageHeight-topMargin)
		}
	}
}
