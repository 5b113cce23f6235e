package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashee/eeprom"
	"github.com/moffa90/go-flashee/flash"
	"github.com/moffa90/go-flashee/image"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the store with a hex record dump and commit",
		Long: `The import command parses a dump written by export, verifies its record
checksums and CRC16, and commits it as the new store contents. The dump
capacity must match the store capacity.

Example:
  eepromctl import settings.hex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), args)
		},
	}
	return cmd
}

func runImport(ctx context.Context, args []string) error {
	inputPath := args[0]

	img, err := image.ParseFile(appFs, inputPath)
	if err != nil {
		return err
	}
	data, err := img.Bytes()
	if err != nil {
		return err
	}
	if len(data) != capacity {
		return fmt.Errorf("dump holds %d bytes, store capacity is %d", len(data), capacity)
	}

	err = withSession(ctx, func(store *eeprom.Store, _ *flash.Memory) error {
		pos := 0
		return store.WriteData(&pos, data, len(data), nil)
	})
	if err != nil {
		return err
	}

	printInfo("Imported %d records from %s\n", len(img.Records), inputPath)
	return nil
}
