package unitelway

import "encoding/binary"

// BitState is the value/forcing pair carried by an internal-memory (%M)
// bit read. Forcing is always false for system (%S) bit reads, which have
// no forcing byte on the wire.
type BitState struct {
	Value   bool
	Forcing bool
}

// --- request builders --------------------------------------------------

func buildMirrorRequest(cat uint8, data []byte) []byte {
	req := make([]byte, 0, 2+len(data))
	req = append(req, reqMirror, cat)
	return append(req, data...)
}

func buildAddrRequest(code, cat uint8, addr uint16) []byte {
	req := make([]byte, 4)
	req[0], req[1] = code, cat
	binary.LittleEndian.PutUint16(req[2:4], addr)
	return req
}

func buildWriteBitRequest(code, cat uint8, addr uint16, value bool) []byte {
	req := buildAddrRequest(code, cat, addr)
	if value {
		return append(req, 0x01)
	}
	return append(req, 0x00)
}

func buildWriteWordRequest(code, cat uint8, addr uint16, value int16) []byte {
	req := buildAddrRequest(code, cat, addr)
	return append(req, toLEBytes(int64(value), 2, true)...)
}

func buildWriteDwordRequest(code, cat uint8, addr uint16, value int32) []byte {
	req := buildAddrRequest(code, cat, addr)
	return append(req, toLEBytes(int64(value), 4, true)...)
}

func buildReadObjectsRequest(cat, segment, objType uint8, addr, count uint16) []byte {
	req := make([]byte, 8)
	req[0], req[1] = reqReadObjects, cat
	req[2], req[3] = segment, objType
	binary.LittleEndian.PutUint16(req[4:6], addr)
	binary.LittleEndian.PutUint16(req[6:8], count)
	return req
}

func buildWriteObjectsRequest(cat, segment, objType uint8, addr, count uint16, data []byte) []byte {
	req := make([]byte, 0, 8+len(data))
	req = append(req, reqWriteObjects, cat, segment, objType)
	req = append(req, toLEBytes(int64(addr), 2, false)...)
	req = append(req, toLEBytes(int64(count), 2, false)...)
	return append(req, data...)
}

// --- response parsers ----------------------------------------------------

func checkResponseCode(response []byte, expected uint8) error {
	if len(response) == 0 {
		return ErrShortFrame
	}
	if response[0] != expected {
		return &UnexpectedResponseError{Expected: expected, Got: response[0]}
	}
	return nil
}

func expandBitByte(startAddr uint16, valueByte uint8) map[uint16]bool {
	out := make(map[uint16]bool, 8)
	for i := uint16(0); i < 8; i++ {
		out[startAddr+i] = valueByte&(1<<i) != 0
	}
	return out
}

func expandBitByteWithForcing(startAddr uint16, valueByte, forcingByte uint8) map[uint16]BitState {
	out := make(map[uint16]BitState, 8)
	for i := uint16(0); i < 8; i++ {
		out[startAddr+i] = BitState{
			Value:   valueByte&(1<<i) != 0,
			Forcing: forcingByte&(1<<i) != 0,
		}
	}
	return out
}

// parseReadBitsResult parses a READ_OBJECTS response carrying `count` bits
// starting at startAddr, with an object-type echo and optional forcing
// section.
func parseReadBitsResult(expectedObjType uint8, startAddr, count uint16, payload []byte, hasForcing bool) (map[uint16]BitState, error) {
	if len(payload) == 0 {
		return nil, ErrShortFrame
	}
	if payload[0] != expectedObjType {
		return nil, &UnexpectedObjectTypeError{Expected: expectedObjType, Got: payload[0]}
	}
	payload = payload[1:]

	byteCount := int(count) / 8
	needed := byteCount
	if hasForcing {
		needed += byteCount
	}
	if len(payload) < needed {
		return nil, ErrShortFrame
	}

	out := make(map[uint16]BitState, count)
	for i := uint16(0); i < count; i++ {
		vByteIdx := int(i) / 8
		off := i % 8
		value := payload[vByteIdx]&(1<<off) != 0

		var forcing bool
		if hasForcing {
			forcing = payload[byteCount+vByteIdx]&(1<<off) != 0
		}

		out[startAddr+i] = BitState{Value: value, Forcing: forcing}
	}

	return out, nil
}

func parseReadWordResult(payload []byte) int16 {
	return int16(fromLEBytes(payload, true))
}

func parseReadDwordResult(payload []byte) int32 {
	return int32(fromLEBytes(payload, true))
}

// parseReadWordsResult parses a READ_OBJECTS response carrying a
// repeated-word/dword payload with an object-type echo.
func parseReadWordsResult(expectedObjType uint8, objSize int, payload []byte) ([]int64, error) {
	if len(payload) == 0 {
		return nil, ErrShortFrame
	}
	if payload[0] != expectedObjType {
		return nil, &UnexpectedObjectTypeError{Expected: expectedObjType, Got: payload[0]}
	}

	chunks, err := splitChunks(payload[1:], objSize)
	if err != nil {
		return nil, err
	}

	values := make([]int64, len(chunks))
	for i, c := range chunks {
		values[i] = fromLEBytes(c, true)
	}

	return values, nil
}
