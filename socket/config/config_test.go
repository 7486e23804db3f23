package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/0-ACS-0/dmserver-go/certificates"
	"github.com/0-ACS-0/dmserver-go/certificates/tlsversion"
	"github.com/0-ACS-0/dmserver-go/network/protocol"
	"github.com/0-ACS-0/dmserver-go/socket/config"
)

var _ = Describe("Listener", func() {
	It("defaults to TCP on the default port", func() {
		l := config.DefaultListener()
		Expect(l.Network).To(Equal(protocol.NetworkTCP))
		Expect(l.Port).To(Equal(config.DefaultPort))
		Expect(l.Validate()).To(Succeed())
	})

	It("rejects a non-stream network", func() {
		l := config.Listener{Network: protocol.NetworkUDP, Port: 8080}
		Expect(l.Validate()).To(MatchError(config.ErrInvalidListener))
	})

	It("rejects a port outside [1024, 49151]", func() {
		l := config.Listener{Network: protocol.NetworkTCP, Port: 80}
		Expect(l.Validate()).To(MatchError(config.ErrInvalidListener))

		l = config.Listener{Network: protocol.NetworkTCP, Port: 65000}
		Expect(l.Validate()).To(MatchError(config.ErrInvalidListener))
	})

	It("defaults an unset port rather than rejecting it", func() {
		l := config.Listener{Network: protocol.NetworkTCP}
		Expect(l.Validate()).To(Succeed())
		Expect(l.Port).To(Equal(config.DefaultPort))
	})

	It("validates the embedded TLS config when HasTLS", func() {
		l := config.Listener{
			Network: protocol.NetworkTCP,
			Port:    config.DefaultPort,
			TLS: &certificates.Config{
				CertPath: "./does-not-exist.crt",
				KeyPath:  "./does-not-exist.key",
				Version:  tlsversion.VersionTLS10,
			},
		}
		Expect(l.HasTLS()).To(BeTrue())
		Expect(l.Validate()).To(MatchError(certificates.ErrInvalidVersion))
	})

	It("renders a dialable bind address", func() {
		l := config.Listener{Address: "127.0.0.1", Port: 9000}
		Expect(l.BindAddress()).To(Equal("127.0.0.1:9000"))
	})
})

var _ = Describe("Worker", func() {
	It("defaults to 8 workers of 200 slots and a 120s idle timeout", func() {
		w := config.DefaultWorker()
		Expect(w.Validate()).To(Succeed())
		Expect(w.Count).To(Equal(8))
		Expect(w.SlotsPerWorker).To(Equal(200))
		Expect(w.IdleTimeout).To(Equal(120 * time.Second))
		Expect(w.Capacity()).To(Equal(1600))
	})

	It("derives the sweep interval as idleTimeout/8", func() {
		w := config.Worker{Count: 1, SlotsPerWorker: 1, IdleTimeout: 80 * time.Second}
		Expect(w.SweepInterval()).To(Equal(10 * time.Second))
	})

	It("rejects a negative idle timeout", func() {
		w := config.Worker{Count: 1, SlotsPerWorker: 1, IdleTimeout: -1}
		Expect(w.Validate()).To(MatchError(config.ErrInvalidWorker))
	})
})

var _ = Describe("Client", func() {
	It("defaults to 4096-byte buffers", func() {
		c := config.DefaultClient()
		Expect(c.Validate()).To(Succeed())
		Expect(c.ReadBufferSize).To(Equal(4096))
		Expect(c.WriteBufferSize).To(Equal(4096))
	})

	It("rejects a negative io timeout", func() {
		c := config.Client{IOTimeout: -1}
		Expect(c.Validate()).To(MatchError(config.ErrInvalidClient))
	})
})

var _ = Describe("Config", func() {
	It("validates all three sub-configs together", func() {
		c := config.Default()
		Expect(c.Validate()).To(Succeed())
	})
})
