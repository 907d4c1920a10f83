package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/category"
	"github.com/cleared-dev/smsledger/internal/config"
	"github.com/cleared-dev/smsledger/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("repo")
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, owner); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized smsledger repo at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "ledger owner name")

	return cmd
}

func runInit(dir, owner string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	dirs := []string{
		"ledger",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, config.Default(owner)); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// An empty ledger is just the header row.
	if err := ledger.NewService(dir, category.Default(), nil).Save(); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}

	gitignore := ".env\nimport/processed/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	return nil
}
