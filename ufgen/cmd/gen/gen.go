// Package gen implements the workload generation sub-command.
package gen

import (
	"crypto"
	cryptoRand "crypto/rand"
	"crypto/sha512"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ufbench/ufgen/common/crypto/drbg"
	"github.com/ufbench/ufgen/common/crypto/mathrand"
	"github.com/ufbench/ufgen/common/logging"
	cmdCommon "github.com/ufbench/ufgen/ufgen/cmd/common"
	"github.com/ufbench/ufgen/workload"
)

const (
	// CfgOutput is the path of the output workload file.
	CfgOutput = "output"
	// CfgElements is the number of elements in the universe.
	CfgElements = "elements"
	// CfgOperations is the number of operations to generate.
	CfgOperations = "operations"
	// CfgFindRatio is the target fraction of FIND operations.
	CfgFindRatio = "ratio.find"
	// CfgSameSetRatio is the target fraction of SAMESET operations
	// among non-FIND operations.
	CfgSameSetRatio = "ratio.sameset"
	// CfgMode is the contention mode.
	CfgMode = "contention.mode"
	// CfgHotIndex is the hot element index for focused mode.
	CfgHotIndex = "contention.hot_index"
	// CfgFocusLevel is the contention level for focused mode.
	CfgFocusLevel = "contention.level"
	// CfgMaxFocusProb is the hot element probability at level 1.
	CfgMaxFocusProb = "contention.max_focus_prob"
	// CfgSeed is the seed for deterministic output.
	CfgSeed = "seed"

	rngPersonalization = "ufgen workload generator v1"
)

var (
	logger = logging.GetLogger("cmd/gen")

	genCmd = &cobra.Command{
		Use:   "gen",
		Short: "generate a workload file",
		RunE:  doRun,
	}
)

func doRun(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if err := cmdCommon.Init(); err != nil {
		cmdCommon.EarlyLogAndExit(err)
	}

	output := viper.GetString(CfgOutput)
	if output == "" {
		return fmt.Errorf("gen: no output file specified")
	}

	var mode workload.Mode
	if err := mode.Set(viper.GetString(CfgMode)); err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	params := workload.Params{
		NumElements:  viper.GetInt(CfgElements),
		NumOps:       viper.GetInt(CfgOperations),
		FindRatio:    viper.GetFloat64(CfgFindRatio),
		SameSetRatio: viper.GetFloat64(CfgSameSetRatio),
		Mode:         mode,
		HotIndex:     viper.GetInt(CfgHotIndex),
		FocusLevel:   viper.GetFloat64(CfgFocusLevel),
		MaxFocusProb: viper.GetFloat64(CfgMaxFocusProb),
	}

	// Fail fast on invalid parameters, before any output side effects.
	if err := params.Validate(); err != nil {
		return fmt.Errorf("gen: invalid parameters: %w", err)
	}

	rng, err := newRng(viper.GetString(CfgSeed))
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("gen: failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("gen: failed to create output file: %w", err)
	}

	logger.Debug("generating workload",
		"output", output,
		"elements", params.NumElements,
		"operations", params.NumOps,
		"mode", mode.String(),
	)

	summary, err := workload.Generate(rng, params, f)
	if err != nil {
		// A partially written file must not masquerade as a usable
		// workload; discard it.
		_ = f.Close()
		_ = os.Remove(output)
		return fmt.Errorf("gen: %w", err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(output)
		return fmt.Errorf("gen: failed to close output file: %w", err)
	}

	logger.Info("workload generated",
		"output", output,
		"operations", summary.TotalOps,
	)
	cmdCommon.PrintSummary(os.Stdout, summary)

	return nil
}

// newRng builds the run's random source.  A non-empty seed string
// yields a fully deterministic source, an empty one draws fresh
// entropy from the system.
func newRng(seed string) (*rand.Rand, error) {
	var entropy []byte
	if seed != "" {
		sum := sha512.Sum512([]byte(seed))
		entropy = sum[:]
	} else {
		entropy = make([]byte, 32)
		if _, err := cryptoRand.Read(entropy); err != nil {
			return nil, fmt.Errorf("failed to read system entropy: %w", err)
		}
	}

	src, err := drbg.New(crypto.SHA512, entropy, nil, []byte(rngPersonalization))
	if err != nil {
		return nil, fmt.Errorf("drbg.New: %w", err)
	}

	return rand.New(mathrand.New(src)), nil
}

// Register registers the gen sub-command.
func Register(parentCmd *cobra.Command) {
	parentCmd.AddCommand(genCmd)
}

func init() {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.String(CfgOutput, "", "path of the output workload file")
	fs.Int(CfgElements, 1000, "number of elements in the universe")
	fs.Int(CfgOperations, 10000, "number of operations to generate")
	fs.Float64(CfgFindRatio, 0.5, "target fraction of FIND operations")
	fs.Float64(CfgSameSetRatio, 0.0, "target fraction of SAMESET operations among non-FIND operations")
	fs.String(CfgMode, "uniform", "contention mode [uniform,focused,extreme]")
	fs.Int(CfgHotIndex, 0, "hot element index (focused mode)")
	fs.Float64(CfgFocusLevel, 0.5, "contention level in [0,1] (focused mode)")
	fs.Float64(CfgMaxFocusProb, workload.DefaultMaxFocusProb, "hot element probability at contention level 1 (focused mode)")
	fs.String(CfgSeed, "", "seed for deterministic output (empty for a random seed)")
	_ = viper.BindPFlags(fs)
	genCmd.Flags().AddFlagSet(fs)
}
