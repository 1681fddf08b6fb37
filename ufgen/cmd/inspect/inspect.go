// Package inspect implements the workload inspection sub-command.
package inspect

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ufbench/ufgen/common/logging"
	cmdCommon "github.com/ufbench/ufgen/ufgen/cmd/common"
	"github.com/ufbench/ufgen/workload"
)

// CfgInput is the path of the workload file to inspect.
const CfgInput = "input"

var (
	logger = logging.GetLogger("cmd/inspect")

	inspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "validate and tally an existing workload file",
		RunE:  doRun,
	}
)

func doRun(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if err := cmdCommon.Init(); err != nil {
		cmdCommon.EarlyLogAndExit(err)
	}

	input := viper.GetString(CfgInput)
	if input == "" {
		return fmt.Errorf("inspect: no input file specified")
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("inspect: failed to open input file: %w", err)
	}
	defer f.Close()

	dec, err := workload.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	logger.Debug("inspecting workload",
		"input", input,
		"elements", dec.NumElements(),
		"operations", dec.NumOps(),
	)

	summary, err := workload.Tally(dec)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	logger.Info("workload valid",
		"input", input,
		"elements", summary.NumElements,
		"operations", summary.TotalOps,
	)
	cmdCommon.PrintSummary(os.Stdout, summary)

	return nil
}

// Register registers the inspect sub-command.
func Register(parentCmd *cobra.Command) {
	parentCmd.AddCommand(inspectCmd)
}

func init() {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.String(CfgInput, "", "path of the workload file to inspect")
	_ = viper.BindPFlags(fs)
	inspectCmd.Flags().AddFlagSet(fs)
}
