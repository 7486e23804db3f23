package engine_test

import (
	"fmt"
	"net"
	"time"

	. "github.com/onsi/gomega"
)

// getFreePort retries until the OS hands back an ephemeral port that also
// satisfies this engine's [1024, 49151] listener range.
func getFreePort() int {
	for {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		port := l.Addr().(*net.TCPAddr).Port
		_ = l.Close()
		if port >= 1024 && port <= 49151 {
			return port
		}
	}
}

func connectTo(addr string) net.Conn {
	var conn net.Conn
	var err error
	Eventually(func() error {
		conn, err = net.DialTimeout("tcp", addr, 200*time.Millisecond)
		return err
	}, 2*time.Second, 20*time.Millisecond).Should(Succeed())
	return conn
}

func sendAndReceive(conn net.Conn, msg []byte) []byte {
	_, err := conn.Write(msg)
	Expect(err).ToNot(HaveOccurred())

	buf := make([]byte, len(msg))
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := readFull(conn, buf)
	Expect(err).ToNot(HaveOccurred())
	return buf[:n]
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func freeAddr() string {
	return fmt.Sprintf("127.0.0.1:%d", getFreePort())
}
