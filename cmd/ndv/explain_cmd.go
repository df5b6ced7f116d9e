package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arborist/ndverify/internal/decode"
	"github.com/arborist/ndverify/internal/explain"
)

var explainCmd = &cobra.Command{
	Use:   "explain <file> <label>",
	Short: "Ask the configured model why a proof line failed validation",
	Args:  cobra.ExactArgs(2),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	path, label := args[0], args[1]

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	p, err := decode.BuildProof(string(text))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	l, ok := p.Lookup(label)
	if !ok {
		return fmt.Errorf("no line labeled %q in %s", label, path)
	}
	if l.IsValid() {
		fmt.Printf("line %s is valid; nothing to explain\n", label)
		return nil
	}

	cited := make([]string, len(l.Rule.Cited))
	for i, c := range l.Rule.Cited {
		cited[i] = c.Label
	}

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	explanation, err := explain.Explain(cmd.Context(), apiKey, cfg.ExplainModel, explain.Request{
		Label:      l.Label,
		Formula:    l.Formula.String(),
		RuleSymbol: string(l.Rule.Symbol),
		CitedLines: cited,
		ProofText:  string(text),
	})
	if err != nil {
		return err
	}

	fmt.Println(explanation)
	return nil
}
