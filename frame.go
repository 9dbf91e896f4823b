package mycobot

import "encoding/binary"

// buildFrame wraps a command payload in the wire envelope:
// [header, header, length, command, payload..., footer] where length covers
// the command byte plus the payload.
func buildFrame(cmd command, payload []byte) []byte {
	frame := make([]byte, 0, len(payload)+5)
	frame = append(frame, frameHeader, frameHeader, byte(len(payload)+2), byte(cmd))
	frame = append(frame, payload...)
	return append(frame, frameFooter)
}

// parseFrame locates the first frame in raw and returns its payload. The
// scan is not anchored at index zero; half-duplex links routinely deliver
// stray bytes before the header. A missing header, a reply tagged with a
// different command (stale or cross-talk), or a declared length that
// overruns the buffer all yield nil, which callers treat as "no data".
func parseFrame(raw []byte, cmd command) []byte {
	for i := 0; i+1 < len(raw); i++ {
		if raw[i] != frameHeader || raw[i+1] != frameHeader {
			continue
		}
		if i+3 >= len(raw) {
			return nil
		}
		dataLen := int(raw[i+2]) - 2
		if dataLen < 0 || i+4+dataLen > len(raw) {
			return nil
		}
		if command(raw[i+3]) != cmd {
			return nil
		}
		return raw[i+4 : i+4+dataLen]
	}
	return nil
}

// decodePayload converts a reply payload to signed 16-bit values. Shape is
// dispatched on byte length: 12 bytes is a six-element angle or pose vector,
// 2 bytes is a single int16 scalar, and anything else is a one-byte int8
// scalar. The servo-enabled query is the firmware's one oddity: its 2-byte
// reply carries the flag as an int8 in the second byte.
func decodePayload(payload []byte, cmd command) []int16 {
	switch len(payload) {
	case 0:
		return nil
	case 12:
		vals := make([]int16, 0, 6)
		for i := 0; i+1 < len(payload); i += 2 {
			vals = append(vals, int16(binary.BigEndian.Uint16(payload[i:i+2])))
		}
		return vals
	case 2:
		if cmd == cmdIsServoEnabled {
			return []int16{int16(int8(payload[1]))}
		}
		return []int16{int16(binary.BigEndian.Uint16(payload))}
	default:
		return []int16{int16(int8(payload[0]))}
	}
}

// int16sToBytes encodes values big-endian, two bytes each.
func int16sToBytes(vals []int16) []byte {
	buf := make([]byte, 0, len(vals)*2)
	for _, v := range vals {
		buf = binary.BigEndian.AppendUint16(buf, uint16(v))
	}
	return buf
}
