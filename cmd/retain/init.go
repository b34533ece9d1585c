package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/retain/internal/config"
	"github.com/vango-dev/retain/internal/errors"
)

func initCmd(dir *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.ConfigFileName,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(*dir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.CategoryConfig, "%s already exists", path).
					WithSuggestion("Pass --force to overwrite it")
			}
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}
