package certificates_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/0-ACS-0/dmserver-go/certificates"
	"github.com/0-ACS-0/dmserver-go/certificates/tlsversion"
)

// writeSelfSigned writes a throwaway self-signed cert/key pair to dir and
// returns their paths, for exercising Context without a real CA.
func writeSelfSigned(dir string) (certPath, keyPath string) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	Expect(err).ToNot(HaveOccurred())

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	Expect(err).ToNot(HaveOccurred())

	certPath = filepath.Join(dir, "server.crt")
	keyPath = filepath.Join(dir, "server.key")

	certOut, err := os.Create(certPath)
	Expect(err).ToNot(HaveOccurred())
	Expect(pem.Encode(certOut, &pem.Block{Type: "CERTIFICATE", Bytes: der})).To(Succeed())
	Expect(certOut.Close()).To(Succeed())

	keyBytes, err := x509.MarshalECPrivateKey(priv)
	Expect(err).ToNot(HaveOccurred())

	keyOut, err := os.Create(keyPath)
	Expect(err).ToNot(HaveOccurred())
	Expect(pem.Encode(keyOut, &pem.Block{Type: "EC PRIVATE KEY", Bytes: keyBytes})).To(Succeed())
	Expect(keyOut.Close()).To(Succeed())

	return certPath, keyPath
}

var _ = Describe("Context", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "certificates-test-*")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(func() { _ = os.RemoveAll(dir) })
	})

	It("builds a tls.Config forcing a single modern version", func() {
		certPath, keyPath := writeSelfSigned(dir)

		ctx, err := certificates.NewContext(certificates.Config{
			CertPath: certPath,
			KeyPath:  keyPath,
			Version:  tlsversion.VersionTLS13,
		})
		Expect(err).ToNot(HaveOccurred())

		tc := ctx.TLSConfig()
		Expect(tc.MinVersion).To(Equal(tc.MaxVersion))
		Expect(tc.MinVersion).To(Equal(tlsversion.VersionTLS13.Uint16()))
		Expect(tc.Certificates).To(HaveLen(1))
		Expect(tc.Renegotiation).To(Equal(tls.RenegotiateNever))
	})

	It("rejects a non-modern TLS version", func() {
		certPath, keyPath := writeSelfSigned(dir)

		_, err := certificates.NewContext(certificates.Config{
			CertPath: certPath,
			KeyPath:  keyPath,
			Version:  tlsversion.VersionTLS10,
		})
		Expect(err).To(MatchError(certificates.ErrInvalidVersion))
	})

	It("rejects a missing certificate file", func() {
		_, keyPath := writeSelfSigned(dir)

		_, err := certificates.NewContext(certificates.Config{
			CertPath: filepath.Join(dir, "does-not-exist.crt"),
			KeyPath:  keyPath,
			Version:  tlsversion.VersionTLS13,
		})
		Expect(err).To(HaveOccurred())
		Expect(err).To(MatchError(certificates.ErrTlsConfig))
	})

	It("rejects a key that does not match the certificate", func() {
		certPath, _ := writeSelfSigned(dir)
		_, otherKeyPath := writeSelfSigned(dir)

		_, err := certificates.NewContext(certificates.Config{
			CertPath: certPath,
			KeyPath:  otherKeyPath,
			Version:  tlsversion.VersionTLS13,
		})
		Expect(err).To(HaveOccurred())
		Expect(err).To(MatchError(certificates.ErrTlsConfig))
	})
})
