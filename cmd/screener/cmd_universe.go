package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpatel-labs/niftyscan/config"
	"github.com/rpatel-labs/niftyscan/internal/universe"
)

var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Print the current Nifty-100 constituents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(scanConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		timeout := time.Duration(cfg.Data.RequestTimeout) * time.Second
		symbols, err := universe.NewClient(cfg.Universe.URL, timeout, cfg.Data.RequestsPerSec).Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch universe: %w", err)
		}
		for _, s := range symbols {
			fmt.Println(s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(universeCmd)
}
