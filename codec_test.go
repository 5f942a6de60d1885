package unitelway

import (
	"bytes"
	"errors"
	"testing"
)

func testConfig() *Configuration {
	return &Configuration{
		SlaveAddress: 2,
		CategoryCode: 0,
		XWay: XWayAddress{
			Network: 0,
			Station: 1,
			Gate:    0,
			Ext1:    0,
			Ext2:    0,
		},
	}
}

func TestBuildAndParseFrameRoundTrip(t *testing.T) {
	cfg := testConfig()
	unite := []byte{0x04, 0x00, 0x0A, 0x00}

	wire := buildFrame(cfg, unite)

	got, err := parseFrame(wire)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, unite) {
		t.Errorf("round trip: got %x, want %x", got, unite)
	}
}

func TestBuildFrameStuffsInternalDLE(t *testing.T) {
	cfg := testConfig()
	unite := []byte{0x04, 0x00, DLE, 0x00}

	wire := buildFrame(cfg, unite)

	got, err := parseFrame(wire)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, unite) {
		t.Errorf("round trip with embedded DLE: got %x, want %x", got, unite)
	}

	// the DLE must appear doubled somewhere past the 3-byte header.
	found, _ := findSubsequence(wire[3:], []byte{DLE, DLE})
	if !found {
		t.Errorf("expected a doubled DLE in the stuffed wire frame: %x", wire)
	}
}

func TestBuildFrameLengthFieldStuffingBoundary(t *testing.T) {
	cfg := testConfig()

	// xway = [0x20, net, sta, gate, e1, e2] + unite; want len(xway) == 0x10.
	unite := make([]byte, 0x10-6)
	wire := buildFrame(cfg, unite)

	if wire[3] != DLE || wire[4] != DLE {
		t.Fatalf("expected doubled length byte at offset 3-4, got % x", wire[:6])
	}

	got, err := parseFrame(wire)
	if err != nil {
		t.Fatalf("unexpected error parsing a length==0x10 frame: %v", err)
	}
	if !bytes.Equal(got, unite) {
		t.Errorf("round trip at the length==0x10 boundary: got %x, want %x", got, unite)
	}
}

func TestParseFrameBadChecksum(t *testing.T) {
	cfg := testConfig()
	wire := buildFrame(cfg, []byte{0x14, 0x00, 0x0A, 0x00, 0xFF, 0xFF})

	wire[len(wire)-1] ^= 0xFF

	_, err := parseFrame(wire)
	var bad *BadChecksumError
	if err == nil {
		t.Fatal("expected a checksum error")
	}
	if !errors.As(err, &bad) {
		t.Errorf("expected *BadChecksumError, got %T: %v", err, err)
	}
}

func TestParseFrameRefused(t *testing.T) {
	// [DLE, STX, addr, length, xwayType(refused), net, sta, gate, e1, e2, bcc]
	header := []byte{DLE, STX, 0x02, 0x06, xwayTypeRefused, 0x00, 0x01, 0x00, 0x00, 0x00}
	wire := append(append([]byte{}, header...), bcc(header))

	_, err := parseFrame(wire)
	if err != ErrRefusedByPeer {
		t.Errorf("expected ErrRefusedByPeer, got %v", err)
	}
}

func TestParseFrameRequestFailed(t *testing.T) {
	cfg := testConfig()
	wire := buildFrame(cfg, []byte{respRequestFailed})

	_, err := parseFrame(wire)
	if err != ErrRequestFailed {
		t.Errorf("expected ErrRequestFailed, got %v", err)
	}
}

func TestResponseLengthShortFrame(t *testing.T) {
	if _, err := responseLength([]byte{DLE, STX}); err != ErrShortFrame {
		t.Errorf("expected ErrShortFrame, got %v", err)
	}
}

