package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashee/checksum"
	"github.com/moffa90/go-flashee/eeprom"
	"github.com/moffa90/go-flashee/flash"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Report store capacity, page status and checksum",
		Long: `The info command probes both reserved pages and reports the store
capacity, whether each page is blank, and the CRC16 of the store contents.

Example:
  eepromctl info --image eeprom.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context())
		},
	}
	return cmd
}

func runInfo(ctx context.Context) error {
	printVerbose("Opening image: %s\n", imagePath)

	return withSession(ctx, func(store *eeprom.Store, mem *flash.Memory) error {
		pages, err := store.ProbePages()
		if err != nil {
			return err
		}
		geom := mem.Geometry()

		printInfo("\nStore Information:\n")
		printInfo("  Image: %s\n", imagePath)
		printInfo("  Capacity: %d bytes\n", store.Capacity())
		printInfo("  Page size: %d bytes\n", geom.PageSize)
		for i, status := range pages {
			printInfo("  Page %d at 0x%08X: %s\n", i, geom.PageBase(i), status)
		}

		var crc checksum.CRC16
		pos := 0
		if err := store.ReadData(&pos, nil, store.Capacity(), &crc, false); err != nil {
			return err
		}
		printInfo("  CRC16: 0x%04X\n", crc.Sum16())
		return nil
	})
}
