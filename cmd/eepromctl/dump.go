package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashee/eeprom"
	"github.com/moffa90/go-flashee/flash"
)

const dumpWidth = 16

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [offset] [length]",
		Short: "Hex dump the store",
		Long: `The dump command prints the store as a hex dump. With no arguments the
whole store is printed.

Example:
  eepromctl dump
  eepromctl dump 0x100 64`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.Context(), args)
		},
	}
	return cmd
}

func runDump(ctx context.Context, args []string) error {
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
		printInfo("%s", hexDump(offset, data))
		return nil
	})
}

// hexDump formats data as offset, hex bytes and printable characters.
func hexDump(offset int, data []byte) string {
	var sb strings.Builder
	for i := 0; i < len(data); i += dumpWidth {
		line := data[i:min(i+dumpWidth, len(data))]
		fmt.Fprintf(&sb, "%04X  ", offset+i)
		for j := 0; j < dumpWidth; j++ {
			if j < len(line) {
				fmt.Fprintf(&sb, "%02X ", line[j])
			} else {
				sb.WriteString("   ")
			}
		}
		sb.WriteString(" |")
		for _, b := range line {
			if b >= 0x20 && b < 0x7F {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}
