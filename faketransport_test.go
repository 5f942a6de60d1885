package unitelway

import (
	"io"
	"time"
)

// fakeTransport is an in-memory stand-in for the transport interface,
// feeding recv() from a pre-loaded byte queue and recording everything
// passed to send().
type fakeTransport struct {
	inbound  []byte
	sent     [][]byte
	deadline time.Time
	closed   bool
}

func (f *fakeTransport) send(buf []byte) error {
	cp := append([]byte(nil), buf...)
	f.sent = append(f.sent, cp)
	return nil
}

func (f *fakeTransport) recv(n int) ([]byte, error) {
	if len(f.inbound) == 0 {
		return nil, io.EOF
	}
	if n > len(f.inbound) {
		n = len(f.inbound)
	}
	out := f.inbound[:n]
	f.inbound = f.inbound[n:]
	return out, nil
}

func (f *fakeTransport) setDeadline(t time.Time) error {
	f.deadline = t
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}
