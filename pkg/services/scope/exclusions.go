package scope

import (
	"fmt"

	"github.com/restoreco/claimscope/pkg/models/domain"
)

// Exclusions produces the itemized work-not-doing list: one line per
// fully unchecked trade, and one line per unchecked item within a
// trade that still has checked work. The text is deterministic; an
// external summarizer may rephrase it downstream but consumes exactly
// these lines.
func Exclusions(c domain.ClaimRecord) []string {
	var lines []string

	for _, t := range c.Trades {
		if len(t.LineItems) == 0 {
			continue
		}

		anyChecked := false
		for _, li := range t.LineItems {
			if li.Checked {
				anyChecked = true
				break
			}
		}

		if !anyChecked {
			lines = append(lines, fmt.Sprintf("%s (entire trade)", t.Name))
			continue
		}

		for _, li := range t.LineItems {
			if !li.Checked {
				lines = append(lines, fmt.Sprintf("%s: %s", t.Name, li.Description))
			}
		}
	}

	return lines
}
