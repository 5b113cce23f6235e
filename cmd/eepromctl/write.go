package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashee/checksum"
	"github.com/moffa90/go-flashee/eeprom"
	"github.com/moffa90/go-flashee/flash"
)

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <offset> <hex>",
		Short: "Write hex bytes into the store and commit",
		Long: `The write command writes the given bytes at offset and commits the store
to the image. Both reserved pages are erased and reprogrammed.

Example:
  eepromctl write 0 01020304`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd.Context(), args)
		},
	}
	return cmd
}

func runWrite(ctx context.Context, args []string) error {
	offset, err := strconv.ParseInt(args[0], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", args[0], err)
	}
	data, err := hex.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("invalid hex data: %w", err)
	}

	var crc checksum.CRC16
	err = withSession(ctx, func(store *eeprom.Store, _ *flash.Memory) error {
		pos := int(offset)
		return store.WriteData(&pos, data, len(data), &crc)
	})
	if err != nil {
		return err
	}

	printInfo("Wrote %d bytes at offset %d (CRC16 0x%04X)\n", len(data), offset, crc.Sum16())
	return nil
}
