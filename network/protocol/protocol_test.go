package protocol_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	. "github.com/0-ACS-0/dmserver-go/network/protocol"
)

var allProtocols = []NetworkProtocol{
	NetworkUnix, NetworkTCP, NetworkTCP4, NetworkTCP6,
	NetworkUDP, NetworkUDP4, NetworkUDP6,
	NetworkIP, NetworkIP4, NetworkIP6, NetworkUnixGram,
}

var _ = Describe("NetworkProtocol", func() {
	It("renders the net.Listen/net.Dial string for every known value", func() {
		Expect(NetworkTCP.String()).To(Equal("tcp"))
		Expect(NetworkTCP4.String()).To(Equal("tcp4"))
		Expect(NetworkTCP6.String()).To(Equal("tcp6"))
		Expect(NetworkUnix.String()).To(Equal("unix"))
		Expect(NetworkEmpty.String()).To(Equal(""))
	})

	It("reports Stream() only for the TCP family", func() {
		Expect(NetworkTCP.Stream()).To(BeTrue())
		Expect(NetworkTCP4.Stream()).To(BeTrue())
		Expect(NetworkTCP6.Stream()).To(BeTrue())
		Expect(NetworkUDP.Stream()).To(BeFalse())
		Expect(NetworkUnix.Stream()).To(BeFalse())
	})

	It("round-trips String()/Code() through Parse() for every value", func() {
		for _, p := range allProtocols {
			Expect(Parse(p.String())).To(Equal(p))
			Expect(Parse(p.Code())).To(Equal(p))
		}
	})

	It("parses case-insensitively, trimmed, and unquoted", func() {
		Expect(Parse("TCP")).To(Equal(NetworkTCP))
		Expect(Parse("  udp  ")).To(Equal(NetworkUDP))
		Expect(Parse(`"unix"`)).To(Equal(NetworkUnix))
		Expect(Parse("bogus")).To(Equal(NetworkEmpty))
		Expect(Parse("")).To(Equal(NetworkEmpty))
	})

	It("maps ParseInt64 back onto the enumeration and rejects out-of-range values", func() {
		Expect(ParseInt64(int64(NetworkTCP))).To(Equal(NetworkTCP))
		Expect(ParseInt64(0)).To(Equal(NetworkEmpty))
		Expect(ParseInt64(-1)).To(Equal(NetworkEmpty))
		Expect(ParseInt64(256)).To(Equal(NetworkEmpty))
	})

	It("marshals and unmarshals through encoding/json", func() {
		data, err := json.Marshal(NetworkTCP)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(Equal(`"tcp"`))

		var p NetworkProtocol
		Expect(json.Unmarshal(data, &p)).To(Succeed())
		Expect(p).To(Equal(NetworkTCP))
	})

	It("marshals and unmarshals through yaml.v3", func() {
		data, err := yaml.Marshal(NetworkTCP6)
		Expect(err).ToNot(HaveOccurred())

		var p NetworkProtocol
		Expect(yaml.Unmarshal(data, &p)).To(Succeed())
		Expect(p).To(Equal(NetworkTCP6))
	})
})
