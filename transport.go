package unitelway

import (
	"net"
	"time"
)

// transport is the minimal byte-oriented duplex channel the engine and
// poll state machine consume. It is deliberately narrow: this library owns
// framing and turn-taking, not socket management.
type transport interface {
	// send writes buf in its entirety.
	send(buf []byte) error
	// recv performs a single underlying read of up to n bytes, returning
	// whatever came back (which may be fewer than n bytes).
	recv(n int) ([]byte, error)
	// setDeadline arms (or, with a zero Time, disarms) the I/O deadline
	// applied to subsequent send/recv calls.
	setDeadline(time.Time) error
	// Close releases the underlying connection.
	Close() error
}

// tcpTransport adapts a net.Conn to the transport interface. It is the
// only transport this client supports: the physical serial line is
// bridged by a vendor TCP-to-serial adapter and is opaque on this side.
type tcpTransport struct {
	conn net.Conn
}

// newTCPTransport dials addr and optionally sends an opaque "connection
// query" blob immediately afterwards. The semantics of that blob are not
// documented anywhere upstream; it is passed through verbatim with no
// reply expected.
func newTCPTransport(addr string, dialTimeout time.Duration, connectionQuery []byte) (*tcpTransport, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, err
	}

	tt := &tcpTransport{conn: conn}

	if len(connectionQuery) > 0 {
		if err := tt.send(connectionQuery); err != nil {
			conn.Close()
			return nil, err
		}
	}

	return tt, nil
}

func (tt *tcpTransport) send(buf []byte) error {
	_, err := tt.conn.Write(buf)
	return err
}

func (tt *tcpTransport) recv(n int) ([]byte, error) {
	buf := make([]byte, n)
	cnt, err := tt.conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:cnt], nil
}

func (tt *tcpTransport) setDeadline(deadline time.Time) error {
	return tt.conn.SetDeadline(deadline)
}

func (tt *tcpTransport) Close() error {
	return tt.conn.Close()
}
