package main

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arborist/ndverify/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively write an ndv.yaml config file in the working directory",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	c := config.Config{Color: "auto", StoreDriver: "mysql", ExplainModel: "claude-3-5-sonnet-latest"}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color output").
				Options(huh.NewOption("auto", "auto"), huh.NewOption("always", "always"), huh.NewOption("never", "never")).
				Value(&c.Color),
			huh.NewSelect[string]().
				Title("Proof store driver").
				Options(huh.NewOption("mysql", "mysql"), huh.NewOption("dolt", "dolt")).
				Value(&c.StoreDriver),
			huh.NewInput().
				Title("Proof store DSN (blank to skip)").
				Value(&c.StoreDSN),
			huh.NewConfirm().
				Title("Enable OpenTelemetry stdout tracing/metrics?").
				Value(&c.Telemetry),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	f, err := os.Create("ndv.yaml")
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	return enc.Encode(c)
}
