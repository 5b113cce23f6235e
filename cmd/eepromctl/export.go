package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashee/eeprom"
	"github.com/moffa90/go-flashee/flash"
	"github.com/moffa90/go-flashee/image"
)

var exportRecordSize int

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the store as a hex record dump",
		Long: `The export command writes the store contents as a text dump. Ranges that
hold only the erase byte are left out.

Example:
  eepromctl export settings.hex
  eepromctl export settings.hex --record-size 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args)
		},
	}
	cmd.Flags().IntVar(&exportRecordSize, "record-size", image.DefaultRecordSize, "Bytes per record")
	return cmd
}

func runExport(ctx context.Context, args []string) error {
	outputPath := args[0]

	var img *image.Image
	err := withSession(ctx, func(store *eeprom.Store, _ *flash.Memory) error {
		var err error
		img, err = image.FromBytes(store.Mirror(), flash.ErasedByte, exportRecordSize)
		return err
	})
	if err != nil {
		return err
	}

	f, err := appFs.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := img.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}

	printInfo("Exported %d records to %s\n", len(img.Records), outputPath)
	return nil
}
