package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/restoreco/claimscope/pkg/models/domain"
)

const (
	linesPerPage = 44
	pageHeight   = 792.0 // Letter, points
	topMargin    = 54.0
	leftMargin   = 50.0
	lineHeight   = 16.0
)

// Builder renders the claim summary report into a paginated PDF
// artifact via pdfcpu's create-from-JSON path. Output is deterministic
// for a given report.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// BuildSummary produces the Letter-format PDF for a finalized claim
// report.
func (b *Builder) BuildSummary(report domain.Report) ([]byte, error) {
	desc, err := json.Marshal(pageDescription(report))
	if err != nil {
		return nil, fmt.Errorf("marshal page description: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &buf, nil); err != nil {
		return nil, fmt.Errorf("create summary pdf: %w", err)
	}

	// A summary for a non-empty claim always spans at least one page;
	// a zero-page artifact means the description was rejected.
	pages, err := api.PageCount(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		return nil, fmt.Errorf("validate summary pdf: %w", err)
	}
	if pages == 0 {
		return nil, fmt.Errorf("summary pdf has no pages")
	}

	return buf.Bytes(), nil
}

// pageDescription lays the report lines onto fixed-format pages.
func pageDescription(report domain.Report) map[string]any {
	lines := flatten(report)

	pages := map[string]any{}
	pageNr := 0
	for start := 0; start < len(lines); start += linesPerPage {
		pageNr++
		end := start + linesPerPage
		if end > len(lines) {
			end = len(lines)
		}

		var text []map[string]any
		for i, line := range lines[start:end] {
			if line.value == "" {
				continue
			}
			text = append(text, map[string]any{
				"value":    line.value,
				"position": []float64{leftMargin, pageHeight - topMargin - float64(i)*lineHeight},
				"font": map[string]any{
					"name": "Helvetica",
					"size": line.size,
				},
			})
		}
		pages[fmt.Sprintf("%d", pageNr)] = map[string]any{
			"content": map[string]any{"text": text},
		}
	}

	return map[string]any{
		"paper": "Letter",
		"pages": pages,
	}
}

type renderedLine struct {
	value string
	size  int
}

func flatten(report domain.Report) []renderedLine {
	var lines []renderedLine
	add := func(size int, format string, args ...any) {
		lines = append(lines, renderedLine{value: fmt.Sprintf(format, args...), size: size})
	}

	add(18, "%s", report.Title)
	if report.ClaimNumber != "" {
		add(11, "Claim %s", report.ClaimNumber)
	}
	if report.Adjuster.Name != "" {
		add(11, "Adjuster: %s <%s>", report.Adjuster.Name, report.Adjuster.Email)
	}
	add(11, "Total RCV: %s %.2f    Total ACV: %s %.2f", report.Currency, report.TotalRCV, report.Currency, report.TotalACV)
	add(11, "")

	for _, section := range report.Sections {
		add(14, "%s", section.Title)
		for _, key := range sortedKeys(section.Summary) {
			add(11, "  %s: %s", key, section.Summary[key])
		}
		for _, d := range section.Details {
			switch {
			case d.Value == "" && d.Description == "":
				add(11, "  - %s", d.Name)
			case d.Description == "":
				add(11, "  - %s  %s", d.Name, d.Value)
			default:
				add(11, "  - %s  %s  (%s)", d.Name, d.Value, d.Description)
			}
		}
		add(11, "")
	}

	return lines
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var unsafeFilenameRe = regexp.MustCompile(`[^a-z0-9]+`)

// Filename derives the delivery filename from the claim number and the
// export date.
func Filename(claimNumber string, now time.Time) string {
	slug := unsafeFilenameRe.ReplaceAllString(strings.ToLower(claimNumber), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "claim"
	}
	return fmt.Sprintf("scope_summary_%s_%s.pdf", slug, now.Format("2006-01-02"))
}
