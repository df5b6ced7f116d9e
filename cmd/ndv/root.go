package main

import (
	"github.com/spf13/cobra"

	"github.com/arborist/ndverify/internal/config"
	"github.com/arborist/ndverify/internal/debug"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ndv",
	Short: "Verify natural-deduction proofs in first-order logic with equality",
	Long: "ndv checks a flat, numbered-line natural-deduction proof against the\n" +
		"Lemmon-style dependency and eigenvariable discipline: every line's rule\n" +
		"citations, discharged assumptions, and structural side conditions are\n" +
		"checked, and each line reports valid or invalid.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		verbose, _ := cmd.Flags().GetBool("verbose")
		quiet, _ := cmd.Flags().GetBool("quiet")
		debug.SetVerbose(verbose)
		debug.SetQuiet(quiet)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ndv.yaml in the working directory or $HOME/.ndv)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug tracing of rule checks")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress normal (non-error) output")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(explainCmd)
}
