package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/crillab/cnfuzz/batch"
)

func newBatchCmd(log *logrus.Logger) *cobra.Command {
	var (
		configPath string
		firstSeed  int64
		flagCfg    = batch.DefaultConfig()
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate many formulas, one file per seed",
		Long: `Generate formulas into cnf_0001.cnf, cnf_0002.cnf, ... with consecutive seeds.

Settings come from the YAML file given with --config, if any; flags given on
the command line take precedence over the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flagCfg
			if configPath != "" {
				var err error
				if cfg, err = batch.LoadConfig(configPath); err != nil {
					return err
				}
				overrideConfig(cmd, &cfg, flagCfg)
			}
			if cmd.Flags().Changed("first-seed") {
				cfg.FirstSeed = &firstSeed
			}
			sum, err := batch.NewDriver(log).Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"files":      len(sum.Files),
				"first_seed": sum.FirstSeed,
				"vars":       sum.Vars,
				"clauses":    sum.Clauses,
			}).Infof("generated %d formulas in %s", len(sum.Files), cfg.Out)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML batch configuration file")
	flags.IntVarP(&flagCfg.Count, "count", "n", flagCfg.Count, "number of formulas")
	flags.StringVarP(&flagCfg.Out, "out", "o", flagCfg.Out, "output directory")
	flags.Int64Var(&firstSeed, "first-seed", 0, "seed of the first formula (derived from the clock if not given)")
	flags.BoolVarP(&flagCfg.QBF, "qbf", "q", false, "generate quantified CNF in QDIMACS format")
	flags.StringVar(&flagCfg.Options, "options", "", "option file to fuzz")
	flags.IntVarP(&flagCfg.Workers, "workers", "j", flagCfg.Workers, "number of formulas generated concurrently")
	return cmd
}

// overrideConfig copies into cfg the settings explicitly given as flags.
func overrideConfig(cmd *cobra.Command, cfg *batch.Config, flagCfg batch.Config) {
	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Count = flagCfg.Count
	}
	if flags.Changed("out") {
		cfg.Out = flagCfg.Out
	}
	if flags.Changed("qbf") {
		cfg.QBF = flagCfg.QBF
	}
	if flags.Changed("options") {
		cfg.Options = flagCfg.Options
	}
	if flags.Changed("workers") {
		cfg.Workers = flagCfg.Workers
	}
}
