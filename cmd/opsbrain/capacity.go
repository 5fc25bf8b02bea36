// Copyright Crestline Operations Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crestline/opsbrain/internal/intelligence"
	"github.com/crestline/opsbrain/pkg/types"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity [n]",
	Short: "Show or set the intelligence index capacity",
	Long: fmt.Sprintf(`Capacity prints the configured intelligence index capacity, or sets it
when given a value. Values outside [%d, %d] are clamped rather than
rejected. Shrinking the capacity evicts the oldest items immediately,
and the new limit is persisted with the snapshot so restarts keep it.`,
		types.MinCapacity, types.MaxCapacity),
	Args: cobra.MaximumNArgs(1),
	RunE: runCapacity,
}

func runCapacity(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	store, err := intelligence.LoadStore(cfg.Intelligence.DataDir, 0)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Printf("capacity: %d (%d items indexed)\n", store.Capacity(), store.Len())
		return nil
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid capacity %q: %w", args[0], err)
	}

	applied := store.SetCapacity(n)
	if err := intelligence.SaveStore(cfg.Intelligence.DataDir, store); err != nil {
		return err
	}

	if applied != n {
		fmt.Printf("capacity clamped to %d (%d items indexed)\n", applied, store.Len())
	} else {
		fmt.Printf("capacity set to %d (%d items indexed)\n", applied, store.Len())
	}
	return nil
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
