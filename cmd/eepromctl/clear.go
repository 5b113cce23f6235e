package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashee/eeprom"
	"github.com/moffa90/go-flashee/flash"
)

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the store to the erased pattern and commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd.Context())
		},
	}
	return cmd
}

func runClear(ctx context.Context) error {
	err := withSession(ctx, func(store *eeprom.Store, _ *flash.Memory) error {
		return store.Clear()
	})
	if err != nil {
		return err
	}
	printInfo("Store cleared\n")
	return nil
}
