package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/restoreco/claimscope/pkg/adapters"
	"github.com/restoreco/claimscope/pkg/services/extraction"
)

type ParseCmd struct {
	inputPath string
	output    io.Writer
}

// NewParseCmd runs the repair pipeline offline: raw model output in a
// file (or stdin), validated claim record JSON out. Useful for
// diagnosing extraction failures without touching the model service.
func NewParseCmd(output io.Writer) *cobra.Command {
	pc := &ParseCmd{output: output}
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Repair and validate a raw model response",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.inputPath, "input", "", "Path to the raw response file (defaults to stdin)")

	return cmd
}

func (pc *ParseCmd) run(cmd *cobra.Command, args []string) error {
	raw, err := readInput(pc.inputPath)
	if err != nil {
		return err
	}

	record, err := extraction.Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	enc := json.NewEncoder(pc.output)
	enc.SetIndent("", "  ")
	return enc.Encode(adapters.MapClaimRecordDomainToApi(record))
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}
