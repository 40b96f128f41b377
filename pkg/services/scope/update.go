package scope

import (
	"errors"

	"github.com/google/uuid"

	"github.com/restoreco/claimscope/pkg/models/domain"
)

var (
	// ErrNotFound is returned when a trade, line item or supplement id
	// does not exist on the record.
	ErrNotFound = errors.New("not found on claim record")
	// ErrFinalized is returned when a mutation targets a finalized
	// record; finalized records are read-only input to the summary
	// stage.
	ErrFinalized = errors.New("claim record is finalized")
)

// Update functions are copy-on-write: each takes a record by value,
// clones it, applies one reviewer action and returns the new record.
// The stored record is never mutated in place, which keeps Compute
// referentially transparent over any snapshot a caller holds.

func ToggleLineItem(c domain.ClaimRecord, itemID string) (domain.ClaimRecord, error) {
	if c.Finalized {
		return domain.ClaimRecord{}, ErrFinalized
	}
	out := c.Clone()
	for ti := range out.Trades {
		for li := range out.Trades[ti].LineItems {
			if out.Trades[ti].LineItems[li].ID == itemID {
				out.Trades[ti].LineItems[li].Checked = !out.Trades[ti].LineItems[li].Checked
				return out, nil
			}
		}
	}
	return domain.ClaimRecord{}, ErrNotFound
}

// ToggleTrade flips the trade-level flag and propagates it to every
// line item in the trade, mirroring the select-all checkbox on the
// review page.
func ToggleTrade(c domain.ClaimRecord, tradeID string) (domain.ClaimRecord, error) {
	if c.Finalized {
		return domain.ClaimRecord{}, ErrFinalized
	}
	out := c.Clone()
	for ti := range out.Trades {
		if out.Trades[ti].ID != tradeID {
			continue
		}
		out.Trades[ti].Checked = !out.Trades[ti].Checked
		for li := range out.Trades[ti].LineItems {
			out.Trades[ti].LineItems[li].Checked = out.Trades[ti].Checked
		}
		return out, nil
	}
	return domain.ClaimRecord{}, ErrNotFound
}

func SetDeductible(c domain.ClaimRecord, amount float64) (domain.ClaimRecord, error) {
	if c.Finalized {
		return domain.ClaimRecord{}, ErrFinalized
	}
	out := c.Clone()
	out.Deductible = amount
	return out, nil
}

func SetLineItemNotes(c domain.ClaimRecord, itemID, notes string) (domain.ClaimRecord, error) {
	if c.Finalized {
		return domain.ClaimRecord{}, ErrFinalized
	}
	out := c.Clone()
	for ti := range out.Trades {
		for li := range out.Trades[ti].LineItems {
			if out.Trades[ti].LineItems[li].ID == itemID {
				out.Trades[ti].LineItems[li].Notes = notes
				return out, nil
			}
		}
	}
	return domain.ClaimRecord{}, ErrNotFound
}

// AddSupplement appends a reviewer-typed addition to a trade and
// returns the new record together with the generated supplement id.
func AddSupplement(c domain.ClaimRecord, tradeID, title, quantity string, amount float64) (domain.ClaimRecord, string, error) {
	if c.Finalized {
		return domain.ClaimRecord{}, "", ErrFinalized
	}
	out := c.Clone()
	for ti := range out.Trades {
		if out.Trades[ti].ID != tradeID {
			continue
		}
		s := domain.SupplementItem{
			ID:       uuid.NewString(),
			Title:    title,
			Quantity: quantity,
			Amount:   amount,
		}
		out.Trades[ti].Supplements = append(out.Trades[ti].Supplements, s)
		return out, s.ID, nil
	}
	return domain.ClaimRecord{}, "", ErrNotFound
}

func RemoveSupplement(c domain.ClaimRecord, tradeID, supplementID string) (domain.ClaimRecord, error) {
	if c.Finalized {
		return domain.ClaimRecord{}, ErrFinalized
	}
	out := c.Clone()
	for ti := range out.Trades {
		if out.Trades[ti].ID != tradeID {
			continue
		}
		for si, s := range out.Trades[ti].Supplements {
			if s.ID == supplementID {
				out.Trades[ti].Supplements = append(out.Trades[ti].Supplements[:si], out.Trades[ti].Supplements[si+1:]...)
				return out, nil
			}
		}
		return domain.ClaimRecord{}, ErrNotFound
	}
	return domain.ClaimRecord{}, ErrNotFound
}

// Finalize freezes the record and stores the work-not-doing lines on
// it. Finalizing twice is a no-op on an already frozen record.
func Finalize(c domain.ClaimRecord) domain.ClaimRecord {
	if c.Finalized {
		return c
	}
	out := c.Clone()
	out.Finalized = true
	out.Exclusions = Exclusions(out)
	return out
}
