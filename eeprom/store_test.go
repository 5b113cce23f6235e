package eeprom

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/moffa90/go-flashee/checksum"
	"github.com/moffa90/go-flashee/flash"
)

var testGeometry = flash.Geometry{Base: 0x08000000, PageSize: 256, PageCount: 2}

// MockLogger records logged messages.
type MockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	errorMsgs []string
}

func (l *MockLogger) Debug(msg string, kv ...any) {
	l.debugMsgs = append(l.debugMsgs, msg)
}

func (l *MockLogger) Info(msg string, kv ...any) {
	l.infoMsgs = append(l.infoMsgs, msg)
}

func (l *MockLogger) Error(msg string, kv ...any) {
	l.errorMsgs = append(l.errorMsgs, msg)
}

var _ = Describe("Store commit protocol", func() {
	var (
		mockCtrl *gomock.Controller
		drv      *MockDriver
		mem      *flash.Memory
		logger   *MockLogger
		store    *Store
		ctx      context.Context
	)

	page0 := testGeometry.PageBase(0)
	page1 := testGeometry.PageBase(1)

	newStore := func(opts ...Option) *Store {
		opts = append([]Option{WithGeometry(testGeometry), WithCapacity(512), WithLogger(logger)}, opts...)
		s, err := New(drv, opts...)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Start(ctx)).To(Succeed())
		return s
	}

	writeOnce := func() {
		pos := 0
		Expect(store.WriteData(&pos, []byte{0xAB}, 1, nil)).To(Succeed())
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		drv = NewMockDriver(mockCtrl)
		mem = flash.NewMemory(testGeometry)
		logger = &MockLogger{}
		ctx = context.Background()

		drv.EXPECT().ReadAt(gomock.Any(), gomock.Any()).DoAndReturn(mem.ReadAt).AnyTimes()
		store = newStore()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should not touch flash when finishing a clean session", func() {
		Expect(store.Finish(ctx)).To(Succeed())
		Expect(store.Open()).To(BeFalse())
	})

	It("should be a no-op to finish twice", func() {
		Expect(store.Finish(ctx)).To(Succeed())
		Expect(store.Finish(ctx)).To(Succeed())
	})

	It("should not commit writes discarded by a restart", func() {
		writeOnce()
		Expect(store.Start(ctx)).To(Succeed())
		Expect(store.Dirty()).To(BeFalse())
		Expect(store.Finish(ctx)).To(Succeed())
	})

	It("should erase both pages then program every half-word in order", func() {
		gomock.InOrder(
			drv.EXPECT().Unlock(),
			drv.EXPECT().ErasePage(page0).Return(flash.StatusComplete),
			drv.EXPECT().ErasePage(page1).Return(flash.StatusComplete),
			drv.EXPECT().ProgramHalfWord(page0, uint16(0xFFAB)).Return(flash.StatusComplete),
			drv.EXPECT().ProgramHalfWord(gomock.Any(), uint16(0xFFFF)).
				Return(flash.StatusComplete).Times(255),
			drv.EXPECT().Lock(),
		)

		writeOnce()
		Expect(store.Finish(ctx)).To(Succeed())
		Expect(store.Dirty()).To(BeFalse())
		Expect(store.Open()).To(BeFalse())
		Expect(logger.infoMsgs).To(ContainElement("mirror committed"))
	})

	It("should program consecutive addresses from the active base", func() {
		var addrs []uint32
		drv.EXPECT().Unlock()
		drv.EXPECT().ErasePage(gomock.Any()).Return(flash.StatusComplete).Times(2)
		drv.EXPECT().ProgramHalfWord(gomock.Any(), gomock.Any()).
			DoAndReturn(func(addr uint32, _ uint16) flash.Status {
				addrs = append(addrs, addr)
				return flash.StatusComplete
			}).Times(256)
		drv.EXPECT().Lock()

		writeOnce()
		Expect(store.Finish(ctx)).To(Succeed())
		Expect(addrs).To(HaveLen(256))
		for i, addr := range addrs {
			Expect(addr).To(Equal(page0 + uint32(2*i)))
		}
	})

	It("should abort and relock when the first erase fails", func() {
		gomock.InOrder(
			drv.EXPECT().Unlock(),
			drv.EXPECT().ErasePage(page0).Return(flash.StatusTimeout),
			drv.EXPECT().Lock(),
		)

		writeOnce()
		err := store.Finish(ctx)

		var commitErr *CommitError
		Expect(errors.As(err, &commitErr)).To(BeTrue())
		Expect(commitErr.Result).To(Equal(ResultEraseFailed))
		Expect(commitErr.Addr).To(Equal(page0))
		Expect(commitErr.Status).To(Equal(flash.StatusTimeout))
		Expect(flash.IsError(err)).To(BeTrue())
		Expect(store.Dirty()).To(BeTrue())
		Expect(store.Open()).To(BeTrue())
		Expect(logger.errorMsgs).To(ConsistOf("commit failed"))
	})

	It("should abort and relock when the second erase fails", func() {
		gomock.InOrder(
			drv.EXPECT().Unlock(),
			drv.EXPECT().ErasePage(page0).Return(flash.StatusComplete),
			drv.EXPECT().ErasePage(page1).Return(flash.StatusErrorWRP),
			drv.EXPECT().Lock(),
		)

		writeOnce()
		err := store.Finish(ctx)

		var commitErr *CommitError
		Expect(errors.As(err, &commitErr)).To(BeTrue())
		Expect(commitErr.Result).To(Equal(ResultEraseFailed))
		Expect(commitErr.Addr).To(Equal(page1))
	})

	It("should leave the remaining words unwritten when a program fails", func() {
		gomock.InOrder(
			drv.EXPECT().Unlock(),
			drv.EXPECT().ErasePage(page0).Return(flash.StatusComplete),
			drv.EXPECT().ErasePage(page1).Return(flash.StatusComplete),
			drv.EXPECT().ProgramHalfWord(gomock.Any(), gomock.Any()).
				Return(flash.StatusComplete).Times(3),
			drv.EXPECT().ProgramHalfWord(page0+6, gomock.Any()).Return(flash.StatusErrorPG),
			drv.EXPECT().Lock(),
		)

		writeOnce()
		err := store.Finish(ctx)

		var commitErr *CommitError
		Expect(errors.As(err, &commitErr)).To(BeTrue())
		Expect(commitErr.Result).To(Equal(ResultProgramFailed))
		Expect(commitErr.WordsWritten).To(Equal(3))
		Expect(commitErr.Error()).To(ContainSubstring("program failed at 0x08000006"))
	})

	It("should retry the commit on the next Finish after a failure", func() {
		gomock.InOrder(
			drv.EXPECT().Unlock(),
			drv.EXPECT().ErasePage(page0).Return(flash.StatusBusy),
			drv.EXPECT().Lock(),
			drv.EXPECT().Unlock(),
			drv.EXPECT().ErasePage(gomock.Any()).Return(flash.StatusComplete).Times(2),
			drv.EXPECT().ProgramHalfWord(gomock.Any(), gomock.Any()).
				Return(flash.StatusComplete).Times(256),
			drv.EXPECT().Lock(),
		)

		writeOnce()
		Expect(store.Finish(ctx)).NotTo(Succeed())
		Expect(store.Finish(ctx)).To(Succeed())
		Expect(store.Dirty()).To(BeFalse())
	})

	It("should report success on failure in legacy mode", func() {
		store = newStore(WithLegacyFinishStatus(true))
		gomock.InOrder(
			drv.EXPECT().Unlock(),
			drv.EXPECT().ErasePage(page0).Return(flash.StatusTimeout),
			drv.EXPECT().Lock(),
		)

		writeOnce()
		Expect(store.Finish(ctx)).To(Succeed())
		Expect(store.Open()).To(BeFalse())
		Expect(store.Dirty()).To(BeTrue())
		Expect(logger.errorMsgs).To(ConsistOf("commit failed"))
	})

	It("should not commit when the context is already cancelled", func() {
		writeOnce()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := store.Finish(cancelled)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(store.Dirty()).To(BeTrue())
	})

	It("should report commit progress", func() {
		var phases []string
		store = newStore(WithCommitCallback(func(p CommitProgress) {
			phases = append(phases, p.Phase)
			Expect(p.TotalWords).To(Equal(256))
		}))
		drv.EXPECT().Unlock()
		drv.EXPECT().ErasePage(gomock.Any()).Return(flash.StatusComplete).Times(2)
		drv.EXPECT().ProgramHalfWord(gomock.Any(), gomock.Any()).Return(flash.StatusComplete).Times(256)
		drv.EXPECT().Lock()

		writeOnce()
		Expect(store.Finish(ctx)).To(Succeed())
		Expect(phases).To(Equal([]string{PhaseErasing, PhaseProgramming, PhaseComplete}))
	})
})

var _ = Describe("Store on simulated flash", func() {
	var (
		mem   *flash.Memory
		store *Store
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mem = flash.NewMemory(testGeometry)

		var err error
		store, err = New(mem, WithGeometry(testGeometry), WithCapacity(512))
		Expect(err).NotTo(HaveOccurred())
	})

	It("should fill the mirror with the erase byte on a blank device", func() {
		Expect(store.Start(ctx)).To(Succeed())

		for _, b := range store.Mirror() {
			Expect(b).To(Equal(byte(0xFF)))
		}
		Expect(store.Dirty()).To(BeFalse())
	})

	It("should bring back committed bytes in a fresh session", func() {
		Expect(store.Start(ctx)).To(Succeed())

		pos := 0
		var crc checksum.CRC16
		Expect(store.WriteData(&pos, []byte{1, 2, 3, 4}, 4, &crc)).To(Succeed())
		Expect(store.Finish(ctx)).To(Succeed())

		Expect(mem.Stats()).To(Equal(flash.Stats{Unlocks: 1, Locks: 1, Erases: 2, Programs: 256}))
		Expect(mem.Locked()).To(BeTrue())

		reopened, err := New(mem, WithGeometry(testGeometry), WithCapacity(512))
		Expect(err).NotTo(HaveOccurred())
		Expect(reopened.Start(ctx)).To(Succeed())

		mirror := reopened.Mirror()
		Expect(mirror[:4]).To(Equal([]byte{1, 2, 3, 4}))
		Expect(mirror[4]).To(Equal(byte(0xFF)))
	})

	It("should load from flash when only the second page is in use", func() {
		image := make([]byte, testGeometry.Size())
		for i := range image {
			image[i] = 0xFF
		}
		image[testGeometry.PageSize] = 0x00
		Expect(mem.Load(image)).To(Succeed())

		Expect(store.Start(ctx)).To(Succeed())
		mirror := store.Mirror()
		Expect(mirror[testGeometry.PageSize]).To(Equal(byte(0x00)))
	})

	It("should leave the store blank after Clear and a commit", func() {
		Expect(store.Start(ctx)).To(Succeed())
		pos := 10
		Expect(store.WriteData(&pos, []byte{0x55, 0x66}, 2, nil)).To(Succeed())
		Expect(store.Finish(ctx)).To(Succeed())

		Expect(store.Start(ctx)).To(Succeed())
		Expect(store.Mirror()[10]).To(Equal(byte(0x55)))
		Expect(store.Clear()).To(Succeed())
		Expect(store.Finish(ctx)).To(Succeed())

		status, err := store.ProbePages()
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal([2]PageStatus{PageOK, PageOK}))
	})

	It("should use the configured erase byte for a blank store", func() {
		s, err := New(mem, WithGeometry(testGeometry), WithCapacity(512), WithEraseByte(0x00))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Start(ctx)).To(Succeed())
		Expect(s.Mirror()[100]).To(Equal(byte(0x00)))
	})

	It("should surface a program fault from the device", func() {
		Expect(store.Start(ctx)).To(Succeed())
		pos := 0
		Expect(store.WriteData(&pos, []byte{1}, 1, nil)).To(Succeed())
		mem.FailProgramAfter(10, flash.StatusErrorPG)

		err := store.Finish(ctx)
		var commitErr *CommitError
		Expect(errors.As(err, &commitErr)).To(BeTrue())
		Expect(commitErr.WordsWritten).To(Equal(10))
		Expect(mem.Locked()).To(BeTrue())
	})

	It("should refuse to start with a cancelled context", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		Expect(store.Start(cancelled)).NotTo(Succeed())
		Expect(store.Open()).To(BeFalse())
	})
})
