package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restoreco/claimscope/pkg/runtime/terminal/export"
)

func TestTotalsCmd_PrintsBreakdown(t *testing.T) {
	record := `{
		"id": "c-1",
		"deductible": 50,
		"claimNumber": "CLM-9",
		"trades": [{
			"id": "t-1",
			"name": "Roofing",
			"checked": true,
			"lineItems": [
				{"id": "li-1", "description": "Shingles", "quantity": "24.5 SQ", "rcv": 100, "acv": 60, "checked": true}
			],
			"supplements": [
				{"id": "s-1", "title": "Drip edge", "quantity": "60 LF", "amount": 25}
			]
		}]
	}`

	var out bytes.Buffer
	cmd := NewTotalsCmd(export.NewReporter(&out))
	cmd.SetArgs([]string{"--input", writeTempFile(t, record)})
	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "Scope of Work Summary (Claim CLM-9)")
	assert.Contains(t, output, "Total RCV: USD 125.00")
	assert.Contains(t, output, "=== Roofing ===")
	assert.Contains(t, output, "Shingles")
	assert.Contains(t, output, "Drip edge (supplement)")
	assert.Contains(t, output, "=== Payment Schedule ===")
}

func TestTotalsCmd_RejectsInvalidJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := NewTotalsCmd(export.NewReporter(&out))
	cmd.SetArgs([]string{"--input", writeTempFile(t, "not a record")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse claim record")
}
