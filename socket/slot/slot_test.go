package slot_test

import (
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/0-ACS-0/dmserver-go/socket/config"
	"github.com/0-ACS-0/dmserver-go/socket/slot"
)

var _ = Describe("Slot", func() {
	It("starts in Standby and moves to Established when bound without TLS", func() {
		s := slot.New(slot.Location{Worker: 0, Slot: 0})
		Expect(s.State()).To(Equal(slot.Standby))

		c1, c2 := net.Pipe()
		defer func() { _ = c1.Close(); _ = c2.Close() }()

		s.Bind(c1, false)
		Expect(s.State()).To(Equal(slot.Established))
		Expect(s.Conn()).To(Equal(c1))
	})

	It("moves to Establishing when bound with TLS required", func() {
		s := slot.New(slot.Location{Worker: 0, Slot: 1})
		c1, c2 := net.Pipe()
		defer func() { _ = c1.Close(); _ = c2.Close() }()

		s.Bind(c1, true)
		Expect(s.State()).To(Equal(slot.Establishing))
	})

	It("resets back to Standby and clears queued output", func() {
		s := slot.New(slot.Location{Worker: 0, Slot: 2})
		c1, c2 := net.Pipe()
		defer func() { _ = c1.Close(); _ = c2.Close() }()

		s.Bind(c1, false)
		s.QueuePending([]byte("hello"))
		Expect(s.HasPending()).To(BeTrue())

		s.Reset()
		Expect(s.State()).To(Equal(slot.Standby))
		Expect(s.HasPending()).To(BeFalse())
	})

	It("tracks idle duration from the last Touch", func() {
		s := slot.New(slot.Location{Worker: 0, Slot: 3})
		c1, c2 := net.Pipe()
		defer func() { _ = c1.Close(); _ = c2.Close() }()

		s.Bind(c1, false)
		time.Sleep(10 * time.Millisecond)
		Expect(s.IdleFor(time.Now())).To(BeNumerically(">=", 10*time.Millisecond))

		s.Touch()
		Expect(s.IdleFor(time.Now())).To(BeNumerically("<", 10*time.Millisecond))
	})

	It("queues and drains pending output as a single buffer", func() {
		s := slot.New(slot.Location{Worker: 0, Slot: 4})
		s.QueuePending([]byte("abc"))
		s.QueuePending([]byte("def"))

		b := s.TakePending()
		Expect(string(b)).To(Equal("abcdef"))
		Expect(s.HasPending()).To(BeFalse())
	})
})

var _ = Describe("Table", func() {
	It("sizes W*S slots and addresses them by Location", func() {
		t := slot.NewTable(config.Worker{Count: 2, SlotsPerWorker: 3, IdleTimeout: time.Second})
		Expect(t.Workers()).To(Equal(2))
		Expect(t.Slots()).To(Equal(3))
		Expect(t.Total()).To(Equal(6))

		loc := slot.Location{Worker: 1, Slot: 2}
		s := t.At(loc)
		Expect(s).ToNot(BeNil())
		Expect(s.Location()).To(Equal(loc))
	})

	It("picks the least-loaded worker for placement", func() {
		t := slot.NewTable(config.Worker{Count: 3, SlotsPerWorker: 2, IdleTimeout: time.Second})
		t.IncLive(0)
		t.IncLive(0)
		t.IncLive(1)

		Expect(t.LeastLoadedWorker()).To(Equal(2))
	})

	It("finds the first free slot in a row", func() {
		t := slot.NewTable(config.Worker{Count: 1, SlotsPerWorker: 2, IdleTimeout: time.Second})
		c1, c2 := net.Pipe()
		defer func() { _ = c1.Close(); _ = c2.Close() }()

		t.Row(0)[0].Bind(c1, false)

		free := t.FirstFreeSlot(0)
		Expect(free).ToNot(BeNil())
		Expect(free.Location().Slot).To(Equal(1))
	})

	It("returns nil when a row is full", func() {
		t := slot.NewTable(config.Worker{Count: 1, SlotsPerWorker: 1, IdleTimeout: time.Second})
		c1, c2 := net.Pipe()
		defer func() { _ = c1.Close(); _ = c2.Close() }()

		t.Row(0)[0].Bind(c1, false)
		Expect(t.FirstFreeSlot(0)).To(BeNil())
	})
})
