package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arborist/ndverify/internal/debug"
	"github.com/arborist/ndverify/internal/decode"
	"github.com/arborist/ndverify/internal/report"
	"github.com/arborist/ndverify/internal/telemetry"
)

var (
	prettyFlag bool
	formatFlag string
)

// osExit is indirected so tests can observe a failing verify run without
// terminating the test process.
var osExit = os.Exit

var verifyCmd = &cobra.Command{
	Use:   "verify <file>...",
	Short: "Verify one or more proof files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&prettyFlag, "pretty", false, "render results as a glamour-styled markdown table")
	verifyCmd.Flags().StringVar(&formatFlag, "format", "text", "machine output format: text, yaml, toml")
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	handle, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer handle.Shutdown(ctx)

	results := make([]report.Result, len(args))
	anyInvalid := make([]bool, len(args))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			result, invalid, err := verifyFile(gctx, handle, path)
			if err != nil {
				return err
			}
			results[i] = result
			anyInvalid[i] = invalid
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for i, path := range args {
		if len(args) > 1 {
			debug.PrintlnNormal(path + ":")
		}
		if err := renderResult(results[i]); err != nil {
			return err
		}
		if anyInvalid[i] {
			failed = true
		}
	}

	if failed {
		osExit(1)
	}
	return nil
}

func verifyFile(ctx context.Context, handle *telemetry.Handle, path string) (report.Result, bool, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return report.Result{}, false, fmt.Errorf("reading %s: %w", path, err)
	}

	p, err := decode.BuildProof(string(text))
	if err != nil {
		return report.Result{}, false, fmt.Errorf("%s: %w", path, err)
	}

	for _, l := range p.Lines() {
		valid := l.IsValid()
		handle.RecordLine(ctx, l.Label, string(l.Rule.Symbol), valid)
	}

	result := report.FromProof(p)
	return result, !result.AllValid, nil
}

func renderResult(result report.Result) error {
	switch formatFlag {
	case "yaml":
		return result.EncodeYAML(os.Stdout)
	case "toml":
		return result.EncodeTOML(os.Stdout)
	}

	if prettyFlag {
		pretty, err := result.Pretty()
		if err != nil {
			return err
		}
		fmt.Print(pretty)
		return nil
	}

	for _, l := range result.Lines {
		debug.PrintlnNormal(renderOutcome(l.Label, l.Formula, l.Rule, l.Valid))
	}
	return nil
}
