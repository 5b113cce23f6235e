package main

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashee/eeprom"
	"github.com/moffa90/go-flashee/flash"
)

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <offset> <length>",
		Short: "Print a range of the store as hex",
		Long: `The read command prints length bytes starting at offset as a single hex
string, suitable for feeding back into write.

Example:
  eepromctl read 0 4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd.Context(), args)
		},
	}
	return cmd
}

func runRead(ctx context.Context, args []string) error {
	offset, size, err := parseRange(args)
	if err != nil {
		return err
	}

	return withSession(ctx, func(store *eeprom.Store, _ *flash.Memory) error {
		data := make([]byte, size)
		pos := offset
		if err := store.ReadData(&pos, data, size, nil, true); err != nil {
			return err
		}
		printInfo("%s\n", strings.ToUpper(hex.EncodeToString(data)))
		return nil
	})
}
