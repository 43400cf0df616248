// init.go implements the "parley init" command which writes a default
// .parley/config.yaml into the working directory.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/parley-dev/parley/internal/config"
)

var forceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .parley/config.yaml",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	path := filepath.Join(dir, ".parley", "config.yaml")
	if _, err := os.Stat(path); err == nil && !forceFlag {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if urlFlag != "" {
		cfg.API.BaseURL = urlFlag
	}

	if err := config.WriteConfig(dir, cfg); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
