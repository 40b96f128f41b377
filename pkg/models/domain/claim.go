package domain

// ClaimAdjuster identifies the carrier-side adjuster on a claim.
// Pass-through metadata, never interpreted.
type ClaimAdjuster struct {
	Name  string
	Email string
}

// LineItem is a single scope line extracted from the claim document.
type LineItem struct {
	ID                 string
	DocumentLineNumber string // original reference label, display only
	Quantity           string // free-text magnitude+unit, not used in arithmetic
	Description        string
	RCV                float64  // replacement cost value, always present
	ACV                *float64 // actual cash value; nil means no depreciation-adjusted component
	Checked            bool
	Notes              string
}

// SupplementItem is a reviewer-added addition to a trade. Supplements
// always count toward totals; they carry no checked flag.
type SupplementItem struct {
	ID       string
	Title    string
	Quantity string
	Amount   float64
}

// Trade groups the line items for one construction trade. Order of
// trades and of line items follows the source document.
type Trade struct {
	ID          string
	Name        string
	Checked     bool
	LineItems   []LineItem
	Supplements []SupplementItem
}

// ClaimRecord is the root aggregate for one wizard session. It is
// mutated only through the update functions in services/scope, which
// copy on write; once Finalized is set the record is read-only input
// to the summary and export stages.
type ClaimRecord struct {
	ID          string
	Deductible  float64
	ClaimNumber string
	Adjuster    ClaimAdjuster
	Trades      []Trade
	Finalized   bool
	Exclusions  []string // work-not-doing lines, set at finalization
}

// Clone returns a deep copy of the record. Update functions operate on
// clones so a stored record is never aliased by handler responses.
func (c ClaimRecord) Clone() ClaimRecord {
	out := c
	out.Trades = make([]Trade, len(c.Trades))
	for i, t := range c.Trades {
		nt := t
		nt.LineItems = make([]LineItem, len(t.LineItems))
		for j, li := range t.LineItems {
			nli := li
			if li.ACV != nil {
				v := *li.ACV
				nli.ACV = &v
			}
			nt.LineItems[j] = nli
		}
		nt.Supplements = append([]SupplementItem(nil), t.Supplements...)
		out.Trades[i] = nt
	}
	out.Exclusions = append([]string(nil), c.Exclusions...)
	return out
}
