// Package eeprom emulates a byte-addressable, persistent settings store on
// page-erasable flash.
//
// # Overview
//
// Flash can only be erased a page at a time and programmed in half-words, so
// the store keeps a RAM mirror of its contents:
//   - Start loads the mirror from the reserved pages, or fills it with 0xFF
//     when both pages are blank
//   - ReadData and WriteData walk the mirror with a caller-owned cursor and
//     fold every byte into a caller-owned checksum
//   - Finish erases both pages and programs the mirror back, only if a write
//     happened during the session
//
// # Basic Usage
//
//	mem := flash.NewMemory(flash.DefaultGeometry())
//	store, err := eeprom.New(mem)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := store.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	pos := 0
//	var crc checksum.CRC16
//	_ = store.WriteData(&pos, []byte{1, 2, 3, 4}, 4, &crc)
//
//	if err := store.Finish(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Commit Failures
//
// A failed erase or program aborts the commit with a *CommitError whose Result
// is ResultEraseFailed or ResultProgramFailed. A program failure can leave a
// partially written image. Nothing is retried.
//
//	var commitErr *eeprom.CommitError
//	if errors.As(err, &commitErr) {
//	    fmt.Println(commitErr.Result, commitErr.Addr)
//	}
//
// WithLegacyFinishStatus(true) restores the behaviour of firmware whose
// Finish always reports success.
//
// # Layout
//
// The store occupies Capacity() bytes from the active base address (the
// first reserved page by default). With the default 4 KiB store and 2 KiB
// pages it spans both pages; a smaller store only uses the first, but both
// are probed and erased.
package eeprom
