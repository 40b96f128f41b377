package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/restoreco/claimscope/pkg/runtime/terminal/commands"
	"github.com/restoreco/claimscope/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	output   io.Writer
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		output:   opts.Output,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claimscope",
		Short: "Claim scope-of-work tooling",
	}

	cmd.AddCommand(commands.NewParseCmd(cli.output))
	cmd.AddCommand(commands.NewTotalsCmd(cli.reporter))

	return cmd
}
