package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arborist/ndverify/internal/decode"
	"github.com/arborist/ndverify/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Persist or retrieve verified proofs from the configured SQL store",
}

var storeSaveCmd = &cobra.Command{
	Use:   "save <name> <file>",
	Short: "Verify a proof file and save its text and outcome under name",
	Args:  cobra.ExactArgs(2),
	RunE:  runStoreSave,
}

var storeLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Print a previously saved proof's source text",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreLoad,
}

func init() {
	storeCmd.AddCommand(storeSaveCmd)
	storeCmd.AddCommand(storeLoadCmd)
}

func runStoreSave(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	p, err := decode.BuildProof(string(text))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	allValid := true
	for _, l := range p.Lines() {
		if !l.IsValid() {
			allValid = false
		}
	}

	s, err := store.Open(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.Init(ctx); err != nil {
		return err
	}
	if err := s.Save(ctx, name, string(text), allValid); err != nil {
		return err
	}

	fmt.Printf("saved %s (all_valid=%v)\n", name, allValid)
	return nil
}

func runStoreLoad(cmd *cobra.Command, args []string) error {
	name := args[0]

	s, err := store.Open(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return err
	}
	defer s.Close()

	source, err := s.Load(cmd.Context(), name)
	if err != nil {
		return err
	}
	fmt.Print(source)
	return nil
}
