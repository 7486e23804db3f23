package engine_test

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/0-ACS-0/dmserver-go/socket"
	"github.com/0-ACS-0/dmserver-go/socket/config"
	"github.com/0-ACS-0/dmserver-go/socket/engine"
	"github.com/0-ACS-0/dmserver-go/socket/slot"
)

func testConfig(addr string) config.Config {
	c := config.Default()
	c.Listener.Address = "127.0.0.1"
	c.Listener.Port = mustPort(addr)
	c.Worker.Count = 2
	c.Worker.SlotsPerWorker = 2
	c.Worker.IdleTimeout = 0
	c.Client.IOTimeout = 20 * time.Millisecond
	return c
}

func mustPort(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	Expect(err).ToNot(HaveOccurred())
	p, err := strconv.Atoi(portStr)
	Expect(err).ToNot(HaveOccurred())
	return p
}

var _ = Describe("Server", func() {
	var (
		srv *engine.Server
		ctx context.Context
		cnl context.CancelFunc
		adr string
	)

	BeforeEach(func() {
		adr = freeAddr()
		ctx, cnl = context.WithCancel(context.Background())
	})

	AfterEach(func() {
		cnl()
		time.Sleep(20 * time.Millisecond)
	})

	It("echoes bytes back to the sender", func() {
		cfg := testConfig(adr)
		srv = engine.New()
		Expect(srv.Init()).To(Succeed())
		Expect(srv.Configure(cfg, socket.Handlers{
			OnReceive: func(c socket.Context, data []byte) { _ = c.Send(data) },
		})).To(Succeed())
		Expect(srv.Open()).To(Succeed())

		go func() { _ = srv.Run(ctx) }()
		Eventually(srv.IsRunning, 2*time.Second, 10*time.Millisecond).Should(BeTrue())

		conn := connectTo(adr)
		defer func() { _ = conn.Close() }()

		msg := []byte("hello, engine")
		Expect(sendAndReceive(conn, msg)).To(Equal(msg))
	})

	It("rejects connections once every slot is in use", func() {
		cfg := testConfig(adr)
		srv = engine.New()
		Expect(srv.Init()).To(Succeed())
		Expect(srv.Configure(cfg, socket.Handlers{
			OnReceive: func(c socket.Context, data []byte) { _ = c.Send(data) },
		})).To(Succeed())
		Expect(srv.Open()).To(Succeed())

		go func() { _ = srv.Run(ctx) }()
		Eventually(srv.IsRunning, 2*time.Second, 10*time.Millisecond).Should(BeTrue())

		total := cfg.Worker.Count * cfg.Worker.SlotsPerWorker
		conns := make([]interface{ Close() error }, 0, total)
		for i := 0; i < total; i++ {
			c := connectTo(adr)
			conns = append(conns, c)
		}
		defer func() {
			for _, c := range conns {
				_ = c.Close()
			}
		}()

		Eventually(srv.OpenConnections, 2*time.Second, 10*time.Millisecond).Should(Equal(int64(total)))

		overflow := connectTo(adr)
		defer func() { _ = overflow.Close() }()

		buf := make([]byte, 1)
		_ = overflow.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		_, err := overflow.Read(buf)
		Expect(err).To(HaveOccurred())
	})

	It("broadcasts to every connection except the excluded one", func() {
		cfg := testConfig(adr)
		var mu sync.Mutex
		locs := map[string]slot.Location{}

		srv = engine.New()
		Expect(srv.Init()).To(Succeed())
		Expect(srv.Configure(cfg, socket.Handlers{
			OnConnect: func(c socket.Context) {
				mu.Lock()
				defer mu.Unlock()
				locs[c.RemoteAddr().String()] = locationOf(c)
			},
		})).To(Succeed())
		Expect(srv.Open()).To(Succeed())

		go func() { _ = srv.Run(ctx) }()
		Eventually(srv.IsRunning, 2*time.Second, 10*time.Millisecond).Should(BeTrue())

		a := connectTo(adr)
		defer func() { _ = a.Close() }()
		b := connectTo(adr)
		defer func() { _ = b.Close() }()

		Eventually(srv.OpenConnections, 2*time.Second, 10*time.Millisecond).Should(Equal(int64(2)))

		mu.Lock()
		excludeLoc := locs[a.LocalAddr().String()]
		mu.Unlock()

		msg := []byte("broadcast")
		Expect(srv.Broadcast(msg, &excludeLoc)).To(Succeed())

		buf := make([]byte, len(msg))
		_ = b.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, err := readFull(b, buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(buf[:n]).To(Equal(msg))

		_ = a.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		_, err = a.Read(buf)
		Expect(err).To(HaveOccurred())
	})

	It("disconnects an idle slot once idleTimeout elapses", func() {
		cfg := testConfig(adr)
		cfg.Worker.IdleTimeout = 80 * time.Millisecond

		disconnected := make(chan struct{}, 1)
		srv = engine.New()
		Expect(srv.Init()).To(Succeed())
		Expect(srv.Configure(cfg, socket.Handlers{
			OnDisconnect: func(c socket.Context, err error) {
				select {
				case disconnected <- struct{}{}:
				default:
				}
			},
		})).To(Succeed())
		Expect(srv.Open()).To(Succeed())

		go func() { _ = srv.Run(ctx) }()
		Eventually(srv.IsRunning, 2*time.Second, 10*time.Millisecond).Should(BeTrue())

		conn := connectTo(adr)
		defer func() { _ = conn.Close() }()

		Eventually(disconnected, 2*time.Second).Should(Receive())
	})

	It("rejects a unicast payload wider than the write buffer and queues nothing", func() {
		cfg := testConfig(adr)
		cfg.Client.WriteBufferSize = 8

		srv = engine.New()
		Expect(srv.Init()).To(Succeed())
		Expect(srv.Configure(cfg, socket.Handlers{
			OnReceive: func(c socket.Context, data []byte) { _ = c.Send(data) },
		})).To(Succeed())
		Expect(srv.Open()).To(Succeed())

		go func() { _ = srv.Run(ctx) }()
		Eventually(srv.IsRunning, 2*time.Second, 10*time.Millisecond).Should(BeTrue())

		conn := connectTo(adr)
		defer func() { _ = conn.Close() }()

		msg := []byte("hello, engine")
		Expect(sendAndReceive(conn, msg)).To(Equal(msg))

		loc := slot.Location{Worker: 0, Slot: 0}
		oversized := []byte("this payload is far wider than the buffer")
		Expect(srv.Unicast(loc, oversized)).To(HaveOccurred())

		_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		buf := make([]byte, len(oversized))
		_, err := conn.Read(buf)
		Expect(err).To(HaveOccurred())
	})

	It("shuts down without leaving workers running", func() {
		cfg := testConfig(adr)
		srv = engine.New()
		Expect(srv.Init()).To(Succeed())
		Expect(srv.Configure(cfg, socket.Handlers{
			OnReceive: func(c socket.Context, data []byte) { _ = c.Send(data) },
		})).To(Succeed())
		Expect(srv.Open()).To(Succeed())

		runDone := make(chan error, 1)
		go func() { runDone <- srv.Run(ctx) }()
		Eventually(srv.IsRunning, 2*time.Second, 10*time.Millisecond).Should(BeTrue())

		Expect(srv.Stop(context.Background())).To(Succeed())
		Eventually(runDone, 2*time.Second).Should(Receive(BeNil()))
		Expect(srv.IsRunning()).To(BeFalse())
	})
})

func locationOf(c socket.Context) slot.Location {
	type located interface{ Location() slot.Location }
	if l, ok := c.(located); ok {
		return l.Location()
	}
	return slot.Location{}
}
