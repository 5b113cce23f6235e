package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashee/eeprom"
	"github.com/moffa90/go-flashee/flash"
)

var (
	// Global flags
	imagePath    string
	capacity     int
	pageSize     int
	baseAddr     string
	useMmap      bool
	envFile      string
	verbose      bool
	legacyStatus bool
)

// Swapped out by tests.
var (
	appFs  afero.Fs  = afero.NewOsFs()
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// envFlags maps environment variables to the global flags they default.
var envFlags = map[string]string{
	"EEPROM_IMAGE":     "image",
	"EEPROM_CAPACITY":  "capacity",
	"EEPROM_PAGE_SIZE": "page-size",
	"EEPROM_BASE":      "base",
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eepromctl",
		Short: "Inspect and edit emulated EEPROM flash images",
		Long: `eepromctl opens a flash image holding the two reserved EEPROM pages
and reads, writes, clears, exports or imports the emulated store. Every
change goes through a full session, so the image ends up exactly as the
firmware would have written it.

Flag defaults can be set with EEPROM_IMAGE, EEPROM_CAPACITY,
EEPROM_PAGE_SIZE and EEPROM_BASE, either in the environment or in a
.env file.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyEnv(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&imagePath, "image", "eeprom.bin", "Flash image file")
	flags.IntVar(&capacity, "capacity", eeprom.DefaultEndAddress+1, "Store capacity in bytes")
	flags.IntVar(&pageSize, "page-size", flash.DefaultPageSize, "Reserved page size in bytes")
	flags.StringVar(&baseAddr, "base", fmt.Sprintf("0x%08X", flash.DefaultPage0Base), "Flash address of the first reserved page")
	flags.BoolVar(&useMmap, "mmap", false, "Map the image file instead of loading it")
	flags.StringVar(&envFile, "env", ".env", "File with default settings")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&legacyStatus, "legacy-status", false, "Report success even when a commit fails")

	cmd.AddCommand(
		newInfoCmd(),
		newDumpCmd(),
		newReadCmd(),
		newWriteCmd(),
		newClearCmd(),
		newExportCmd(),
		newImportCmd(),
	)
	return cmd
}

func execute(ctx context.Context, args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// applyEnv fills flags the user did not set from the environment, then from
// the env file. A missing default env file is not an error.
func applyEnv(cmd *cobra.Command) error {
	fileValues, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("env") {
			return fmt.Errorf("load env file: %w", err)
		}
		fileValues = nil
	}

	for key, name := range envFlags {
		if cmd.Flags().Changed(name) {
			continue
		}
		value, ok := os.LookupEnv(key)
		if !ok {
			value, ok = fileValues[key]
		}
		if !ok {
			continue
		}
		if err := cmd.Flags().Set(name, value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func geometry() (flash.Geometry, error) {
	base, err := strconv.ParseUint(baseAddr, 0, 32)
	if err != nil {
		return flash.Geometry{}, fmt.Errorf("invalid base address %q: %w", baseAddr, err)
	}
	geom := flash.Geometry{Base: uint32(base), PageSize: pageSize, PageCount: 2}
	if !geom.Valid() {
		return flash.Geometry{}, fmt.Errorf("invalid page size %d", pageSize)
	}
	return geom, nil
}

func openMemory(geom flash.Geometry) (*flash.Memory, error) {
	if useMmap {
		return flash.OpenMapped(imagePath, geom)
	}
	return flash.OpenImage(appFs, imagePath, geom)
}

// withSession opens the image, runs fn inside a store session and writes the
// image back. Changes made by fn are committed when the session finishes.
func withSession(ctx context.Context, fn func(store *eeprom.Store, mem *flash.Memory) error) (err error) {
	geom, err := geometry()
	if err != nil {
		return err
	}
	mem, err := openMemory(geom)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer func() {
		if closeErr := mem.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close image: %w", closeErr))
		}
	}()

	store, err := eeprom.New(mem,
		eeprom.WithGeometry(geom),
		eeprom.WithCapacity(capacity),
		eeprom.WithLogger(newLogger()),
		eeprom.WithLegacyFinishStatus(legacyStatus),
	)
	if err != nil {
		return err
	}

	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	if err := fn(store, mem); err != nil {
		return err
	}
	if err := store.Finish(ctx); err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	return nil
}

// printInfo prints a message to stdout
func printInfo(format string, args ...any) {
	fmt.Fprintf(stdout, format, args...)
}

// printVerbose prints a message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(stdout, format, args...)
	}
}

// parseRange parses an offset and length pair, defaulting missing values to
// the whole store. Ranges outside the store are rejected.
func parseRange(args []string) (int, int, error) {
	offset, size := 0, capacity
	if len(args) > 0 {
		v, err := strconv.ParseInt(args[0], 0, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid offset %q: %w", args[0], err)
		}
		offset = int(v)
		size = capacity - offset
	}
	if len(args) > 1 {
		v, err := strconv.ParseInt(args[1], 0, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid length %q: %w", args[1], err)
		}
		size = int(v)
	}
	if offset < 0 || size < 0 || offset > capacity-size {
		return 0, 0, &eeprom.OutOfRangeError{Pos: offset, Size: size, Capacity: capacity}
	}
	return offset, size, nil
}
