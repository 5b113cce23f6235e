// Package flash defines the flash driver contract used by the EEPROM emulation
// layer and provides simulated page-erasable flash devices for hosts and tests.
//
// # Driver Contract
//
// A Driver exposes the handful of operations an STM32F1-class flash controller
// offers:
//
//	drv.Unlock()
//	status := drv.ErasePage(0x0807F000)
//	status = drv.ProgramHalfWord(0x0807F000, 0x0201)
//	drv.Lock()
//
// Erase and program report a Status; anything other than StatusComplete means
// the operation did not finish. Reads go through ReadAt with absolute flash
// addresses used as offsets.
//
// # Simulated Devices
//
// Memory models NOR flash in RAM with the controller's rules: pages erase to
// 0xFF, a half-word can only be programmed once after an erase, and erase or
// program while locked fails with StatusErrorWRP.
//
//	mem := flash.NewMemory(flash.DefaultGeometry())
//
// Images can be persisted through an afero.Fs:
//
//	mem, err := flash.LoadImage(afero.NewOsFs(), "eeprom.bin", geom)
//	// ... use mem ...
//	err = flash.SaveImage(afero.NewOsFs(), "eeprom.bin", mem)
//
// or mapped directly into memory on unix systems:
//
//	mem, err := flash.OpenMapped("eeprom.bin", geom)
//	defer mem.Close()
package flash
