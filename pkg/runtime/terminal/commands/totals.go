package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restoreco/claimscope/pkg/adapters"
	"github.com/restoreco/claimscope/pkg/models/api"
	"github.com/restoreco/claimscope/pkg/runtime/terminal/export"
	"github.com/restoreco/claimscope/pkg/services/scope"
)

type TotalsCmd struct {
	inputPath string
	reporter  *export.Reporter
}

// NewTotalsCmd aggregates a claim record JSON file and prints the
// breakdown report.
func NewTotalsCmd(reporter *export.Reporter) *cobra.Command {
	tc := &TotalsCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Compute the scope breakdown for a claim record",
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.inputPath, "input", "", "Path to the claim record JSON file (defaults to stdin)")

	return cmd
}

func (tc *TotalsCmd) run(cmd *cobra.Command, args []string) error {
	data, err := readInput(tc.inputPath)
	if err != nil {
		return err
	}

	var apiRecord api.ClaimRecord
	if err := json.Unmarshal(data, &apiRecord); err != nil {
		return fmt.Errorf("failed to parse claim record: %w", err)
	}

	record := adapters.MapClaimRecordApiToDomain(apiRecord)
	totals := scope.Compute(record)
	report := scope.BuildReport(record, totals)

	return tc.reporter.Handle(&report)
}
