package unitelway

import (
	"errors"
	"net"
	"time"
)

// maxUniTelwayFrameLength bounds how long a reply frame is allowed to grow
// while it's being assembled, mirroring the fixed 256-byte response window
// the state machine reads once it recognizes its own frame start.
const maxUniTelwayFrameLength = 256 + 8

// runUnite drives one UNI-TE request to completion: it waits for its turn
// to transmit (unless the turn policy is immediate), sends the frame, waits
// for the matching response, and resends on a per-attempt timeout. It
// never gives up on its own; the caller's outer context/timeout discipline
// bounds how long this can run.
func runUnite(tp transport, cfg *Configuration, lg *logger, uniteBytes []byte, timeout time.Duration) ([]byte, error) {
	frame := buildFrame(cfg, uniteBytes)
	policy := selectTurnPolicy(cfg.VPNMode)

	for {
		if err := policy.awaitTurn(tp, cfg.SlaveAddress); err != nil {
			return nil, err
		}

		if err := tp.send(frame); err != nil {
			return nil, err
		}

		if err := tp.setDeadline(policy.responseDeadline(timeout)); err != nil {
			return nil, err
		}

		respFrame, err := awaitResponse(tp, cfg.SlaveAddress)
		if err != nil {
			if isTimeout(err) {
				lg.Warningf("timed out waiting for a response, resending request")
				continue
			}
			return nil, err
		}

		return parseFrame(respFrame)
	}
}

// awaitResponse implements the "Awaiting-response" state: it reads bytes
// incrementally, discarding foreign poll tokens and foreign frame starts,
// until it recognizes the start of a frame addressed to myAddr.
func awaitResponse(tp transport, myAddr uint8) ([]byte, error) {
	pollToken := []byte{DLE, ENQ}
	frameToken := []byte{DLE, STX}

	var buf []byte

	for {
		chunk, err := tp.recv(3)
		if err != nil {
			return nil, err
		}
		buf = append(buf, chunk...)

		if found, idx := findSubsequence(buf, pollToken); found {
			end := idx + 3
			if end > len(buf) {
				end = len(buf)
			}
			buf = append(buf[:idx], buf[end:]...)
			continue
		}

		found, idx := findSubsequence(buf, frameToken)
		if !found {
			continue
		}

		if idx+2 >= len(buf) {
			more, err := tp.recv(1)
			if err != nil {
				return nil, err
			}
			buf = append(buf, more...)
		}

		if buf[idx+2] != myAddr {
			// not our frame: drop the three-byte token and keep scanning
			buf = append(buf[:idx], buf[idx+3:]...)
			continue
		}

		return readOwnFrame(tp, buf[idx:])
	}
}

// readOwnFrame completes the assembly of a frame whose [DLE, STX, myAddr]
// start has already been recognized, reading further bytes until the
// codec's length-walk can determine the frame is complete.
func readOwnFrame(tp transport, start []byte) ([]byte, error) {
	frame := append([]byte(nil), start...)

	for {
		if length, err := responseLength(frame); err == nil && length <= len(frame) {
			return frame[:length], nil
		}

		more, err := tp.recv(256)
		if err != nil {
			return nil, err
		}
		if len(more) == 0 {
			return nil, ErrShortFrame
		}

		frame = append(frame, more...)
		if len(frame) > maxUniTelwayFrameLength {
			return nil, ErrShortFrame
		}
	}
}

// isTimeout reports whether err is a network deadline-exceeded error, as
// opposed to some other transport failure.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
