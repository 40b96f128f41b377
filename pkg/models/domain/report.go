package domain

// Report is the renderable summary of a finalized claim: one section
// per trade plus the payment schedule and exclusions. It is consumed
// by the terminal reporter and the PDF export.
type Report struct {
	Title       string
	ClaimNumber string
	Adjuster    ClaimAdjuster
	Sections    []ReportSection
	TotalRCV    float64
	TotalACV    float64
	Currency    string
}

// ReportSection represents a logical section in the report.
type ReportSection struct {
	Title   string
	Summary map[string]string
	Details []ReportDetail
}

// ReportDetail represents a single line within a section.
type ReportDetail struct {
	Name        string
	Value       string
	Description string
}
