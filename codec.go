package unitelway

// xwayTypeStandard is the fixed first byte of every X-WAY header emitted by
// this client.
const xwayTypeStandard uint8 = 0x20

// xwayTypeRefused is the X-WAY type byte a peer sends back when it refuses
// a UNI-TELWAY message outright.
const xwayTypeRefused uint8 = 0x22

// buildFrame wraps a UNI-TE payload into a complete UNI-TELWAY wire frame:
// X-WAY header, UNI-TELWAY header, length (stuffed if it equals DLE),
// DLE-stuffed payload, and a trailing BCC.
func buildFrame(cfg *Configuration, uniteBytes []byte) []byte {
	xway := make([]byte, 0, 6+len(uniteBytes))
	xway = append(xway, xwayTypeStandard,
		cfg.XWay.Network, cfg.XWay.Station, cfg.XWay.Gate, cfg.XWay.Ext1, cfg.XWay.Ext2)
	xway = append(xway, uniteBytes...)

	length := uint8(len(xway))

	frame := make([]byte, 0, 4+len(xway)+4)
	frame = append(frame, DLE, STX, cfg.SlaveAddress)

	// the length field participates in stuffing too: if it happens to
	// equal DLE, a leading DLE is inserted before it.
	if length == DLE {
		frame = append(frame, DLE)
	}
	frame = append(frame, length)

	payloadStart := len(frame)
	frame = append(frame, xway...)

	frame = stuffDLE(frame, payloadStart)
	frame = append(frame, bcc(frame))

	return frame
}

// responseLength walks a raw (still-stuffed) UNI-TELWAY frame starting at
// the length field and returns the index one past the frame's last byte
// (the BCC). It treats any adjacent DLE,DLE pair in the payload (or in the
// length field itself, if the length value is DLE) as one logical byte,
// since those are stuffing duplicates rather than two distinct bytes.
func responseLength(wire []byte) (int, error) {
	if len(wire) < 4 {
		return 0, ErrShortFrame
	}

	i := 3
	length := int(wire[i])
	if wire[i] == DLE {
		i++
		if i >= len(wire) {
			return 0, ErrShortFrame
		}
		length = int(wire[i])
	}
	i++

	for count := 0; count < length; count++ {
		if i+1 >= len(wire) {
			return 0, ErrShortFrame
		}

		// a doubled DLE is one logical payload byte spread over two wire
		// bytes; anything else is one wire byte per logical byte.
		if wire[i] == DLE && wire[i+1] == DLE {
			i += 2
		} else {
			i++
		}
	}

	if i >= len(wire) {
		return 0, ErrShortFrame
	}

	return i + 1, nil
}

// parseFrame validates and unwraps a raw UNI-TELWAY frame, returning the
// UNI-TE bytes it carries.
func parseFrame(wire []byte) (uniteBytes []byte, err error) {
	frameLen, err := responseLength(wire)
	if err != nil {
		return nil, err
	}

	frame := wire[:frameLen]

	got := bcc(frame[:len(frame)-1])
	want := frame[len(frame)-1]
	if got != want {
		return nil, &BadChecksumError{Expected: want, Got: got}
	}

	unstuffed := unstuffDLE(frame)

	xwayLength := int(unstuffed[3])
	if 4+xwayLength > len(unstuffed) {
		return nil, ErrShortFrame
	}
	xway := unstuffed[4 : 4+xwayLength]

	if xway[0] == xwayTypeRefused {
		return nil, ErrRefusedByPeer
	}

	unite := xway[6:]
	if len(unite) > 0 && unite[0] == respRequestFailed {
		return nil, ErrRequestFailed
	}

	return unite, nil
}
