package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restoreco/claimscope/pkg/models/domain"
)

func acv(v float64) *float64 { return &v }

func sampleClaim() domain.ClaimRecord {
	return domain.ClaimRecord{
		ID:          "claim-1",
		Deductible:  50,
		ClaimNumber: "CLM-2026-014",
		Trades: []domain.Trade{
			{
				ID:      "t-roofing",
				Name:    "Roofing",
				Checked: true,
				LineItems: []domain.LineItem{
					{ID: "li-1", Description: "Remove and replace shingles", Quantity: "24.5 SQ", RCV: 100, ACV: acv(60), Checked: true},
					{ID: "li-2", Description: "Ridge cap", Quantity: "38 LF", RCV: 50, ACV: acv(30), Checked: false},
				},
			},
			{
				ID:      "t-siding",
				Name:    "Siding",
				Checked: true,
				LineItems: []domain.LineItem{
					{ID: "li-3", Description: "Vinyl siding north face", Quantity: "320 SF", RCV: 200, ACV: acv(150), Checked: true},
				},
				Supplements: []domain.SupplementItem{
					{ID: "s-1", Title: "Drip edge", Quantity: "60 LF", Amount: 25},
				},
			},
		},
	}
}

func TestCompute_Idempotent(t *testing.T) {
	claim := sampleClaim()

	first := Compute(claim)
	second := Compute(claim)

	assert.Equal(t, first, second)
}

func TestCompute_PerTradeTotals(t *testing.T) {
	totals := Compute(sampleClaim())

	roofing, ok := totals.TradeTotalByID("t-roofing")
	require.True(t, ok)
	assert.Equal(t, 100.0, roofing.RCV)
	assert.Equal(t, 60.0, roofing.ACV)

	siding, ok := totals.TradeTotalByID("t-siding")
	require.True(t, ok)
	assert.Equal(t, 225.0, siding.RCV, "supplement amount lands on RCV")
	assert.Equal(t, 175.0, siding.ACV, "supplement amount lands on ACV identically")

	assert.Equal(t, 325.0, totals.TotalRCV)
	assert.Equal(t, 235.0, totals.TotalACV)
	assert.Equal(t, 25.0, totals.TotalSupplements)
	assert.Equal(t, 90.0, totals.Depreciation)
}

func TestCompute_LeftoverConservation(t *testing.T) {
	claim := domain.ClaimRecord{
		Trades: []domain.Trade{{
			ID:   "t-1",
			Name: "Roofing",
			LineItems: []domain.LineItem{
				{ID: "a", RCV: 100, ACV: acv(60), Checked: true},
				{ID: "b", RCV: 50, ACV: acv(30), Checked: false},
			},
		}},
	}

	totals := Compute(claim)

	tt, ok := totals.TradeTotalByID("t-1")
	require.True(t, ok)
	assert.Equal(t, 100.0, tt.RCV)
	assert.Equal(t, 60.0, tt.ACV)
	assert.Equal(t, 30.0, totals.LeftoverACV)
}

func TestCompute_LeftoverIgnoresTradeFlag(t *testing.T) {
	// The leftover pool counts unchecked items even when the parent
	// trade is still flagged as included.
	claim := domain.ClaimRecord{
		Trades: []domain.Trade{{
			ID:      "t-1",
			Name:    "Painting",
			Checked: true,
			LineItems: []domain.LineItem{
				{ID: "a", RCV: 80, ACV: acv(40), Checked: false},
			},
		}},
	}

	totals := Compute(claim)
	assert.Equal(t, 40.0, totals.LeftoverACV)
	assert.Equal(t, 0.0, totals.TotalRCV)
}

func TestCompute_MissingACVContributesNothing(t *testing.T) {
	claim := domain.ClaimRecord{
		Trades: []domain.Trade{{
			ID:   "t-1",
			Name: "Drywall",
			LineItems: []domain.LineItem{
				{ID: "a", RCV: 100, Checked: true},
				{ID: "b", RCV: 75, Checked: false},
			},
		}},
	}

	totals := Compute(claim)
	assert.Equal(t, 100.0, totals.TotalRCV)
	assert.Equal(t, 0.0, totals.TotalACV)
	assert.Equal(t, 0.0, totals.LeftoverACV, "absent ACV never defaults to RCV")
}

func TestCompute_ToggleChangesTradeRCVByExactlyThatItem(t *testing.T) {
	claim := sampleClaim()
	before := Compute(claim)

	toggled, err := ToggleLineItem(claim, "li-2")
	require.NoError(t, err)
	after := Compute(toggled)

	beforeRoofing, _ := before.TradeTotalByID("t-roofing")
	afterRoofing, _ := after.TradeTotalByID("t-roofing")
	assert.Equal(t, 50.0, afterRoofing.RCV-beforeRoofing.RCV)

	beforeSiding, _ := before.TradeTotalByID("t-siding")
	afterSiding, _ := after.TradeTotalByID("t-siding")
	assert.Equal(t, beforeSiding, afterSiding, "other trades are untouched")
}

func TestCompute_DuplicateTradeNamesDoNotCollide(t *testing.T) {
	claim := domain.ClaimRecord{
		Trades: []domain.Trade{
			{
				ID:        "t-1",
				Name:      "Roofing",
				LineItems: []domain.LineItem{{ID: "a", RCV: 100, Checked: true}},
			},
			{
				ID:        "t-2",
				Name:      "Roofing",
				LineItems: []domain.LineItem{{ID: "b", RCV: 40, Checked: true}},
			},
		},
	}

	totals := Compute(claim)

	require.Len(t, totals.PerTrade, 2)
	first, ok := totals.TradeTotalByID("t-1")
	require.True(t, ok)
	second, ok := totals.TradeTotalByID("t-2")
	require.True(t, ok)
	assert.Equal(t, 100.0, first.RCV)
	assert.Equal(t, 40.0, second.RCV)
	assert.Equal(t, 140.0, totals.TotalRCV)
}

func TestSchedule_BranchBoundary(t *testing.T) {
	tests := []struct {
		name                string
		totalRCV            float64
		totalACV            float64
		deductible          float64
		wantDueToday        float64
		wantDueOnCompletion float64
	}{
		{
			name:                "acv under half of rcv collects full acv plus deductible",
			totalRCV:            1000,
			totalACV:            400,
			deductible:          50,
			wantDueToday:        450,
			wantDueOnCompletion: 0,
		},
		{
			name:                "acv at or above half of rcv caps upfront at half rcv",
			totalRCV:            1000,
			totalACV:            700,
			deductible:          50,
			wantDueToday:        500,
			wantDueOnCompletion: 200,
		},
		{
			name:                "exactly half takes the cap branch",
			totalRCV:            1000,
			totalACV:            500,
			deductible:          50,
			wantDueToday:        500,
			wantDueOnCompletion: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := schedule(tt.totalRCV, tt.totalACV, tt.deductible)
			assert.Equal(t, tt.wantDueToday, s.DueToday)
			assert.Equal(t, tt.wantDueOnCompletion, s.DueOnCompletion)
			assert.Equal(t, (tt.totalRCV-tt.totalACV)+tt.deductible, s.DepreciationPlusDeductible)
		})
	}
}

func TestSplit_IndependentOfSchedule(t *testing.T) {
	s := split(1000, 50)
	assert.Equal(t, 950.0, s.InsurancePays)
	assert.Equal(t, 50.0, s.HomeownerPays)

	clamped := split(30, 50)
	assert.Equal(t, 0.0, clamped.InsurancePays, "subtraction clamps at zero in payment displays")
	assert.Equal(t, 50.0, clamped.HomeownerPays)
}
