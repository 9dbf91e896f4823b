package mycobot

import (
	"bytes"
	"testing"

	"go.viam.com/test"
)

func TestBuildFrame(t *testing.T) {
	frame := buildFrame(cmdSendAngle, []byte{0x01, 0x11, 0x94, 0x32})
	test.That(t, frame, test.ShouldResemble,
		[]byte{0xfe, 0xfe, 0x06, 0x21, 0x01, 0x11, 0x94, 0x32, 0xfa})

	frame = buildFrame(cmdPowerOn, nil)
	test.That(t, frame, test.ShouldResemble, []byte{0xfe, 0xfe, 0x02, 0x10, 0xfa})
}

func TestParseFrameRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 2, 3, 12, 14, 100, 252} {
		payload := make([]byte, size)
		for i := range payload {
			// consecutive values, so no adjacent sentinel pair
			payload[i] = byte(i % 251)
		}
		got := parseFrame(buildFrame(cmdGetAngles, payload), cmdGetAngles)
		test.That(t, bytes.Equal(got, payload), test.ShouldBeTrue)
	}
}

func TestParseFrameLeadingNoise(t *testing.T) {
	payload := []byte{0x00, 0x00, 0x13, 0x88}
	raw := append([]byte{0x07, 0xfa, 0xfe, 0x19}, buildFrame(cmdGetEncoder, payload)...)
	got := parseFrame(raw, cmdGetEncoder)
	test.That(t, got, test.ShouldResemble, payload)
}

func TestParseFrameMismatchedCommand(t *testing.T) {
	raw := buildFrame(cmdGetAngles, make([]byte, 12))
	test.That(t, parseFrame(raw, cmdGetCoords), test.ShouldBeNil)
}

func TestParseFrameNoHeader(t *testing.T) {
	test.That(t, parseFrame(nil, cmdIsPowerOn), test.ShouldBeNil)
	test.That(t, parseFrame([]byte{0xfe}, cmdIsPowerOn), test.ShouldBeNil)
	test.That(t, parseFrame([]byte{0x01, 0x02, 0x03, 0x04}, cmdIsPowerOn), test.ShouldBeNil)
	// single sentinel bytes scattered around do not form a header
	test.That(t, parseFrame([]byte{0xfe, 0x01, 0xfe, 0x02, 0xfe}, cmdIsPowerOn), test.ShouldBeNil)
}

func TestParseFrameUndersized(t *testing.T) {
	full := buildFrame(cmdGetAngles, make([]byte, 12))
	// cut off mid-payload; the declared length overruns what arrived
	test.That(t, parseFrame(full[:8], cmdGetAngles), test.ShouldBeNil)
	// header only
	test.That(t, parseFrame([]byte{0xfe, 0xfe}, cmdGetAngles), test.ShouldBeNil)
	test.That(t, parseFrame([]byte{0xfe, 0xfe, 0x0e}, cmdGetAngles), test.ShouldBeNil)
}

func TestDecodePayloadVector(t *testing.T) {
	payload := []byte{
		0x00, 0x00,
		0x11, 0x94, // 4500
		0xec, 0x78, // -5000
		0x00, 0x01,
		0xff, 0xff, // -1
		0x00, 0x00,
	}
	vals := decodePayload(payload, cmdGetAngles)
	test.That(t, vals, test.ShouldResemble, []int16{0, 4500, -5000, 1, -1, 0})
}

func TestDecodePayloadScalars(t *testing.T) {
	// 2 bytes: one big-endian int16
	test.That(t, decodePayload([]byte{0x13, 0x88}, cmdGetEncoder), test.ShouldResemble, []int16{5000})
	test.That(t, decodePayload([]byte{0xff, 0xff}, cmdGetEncoder), test.ShouldResemble, []int16{-1})

	// the servo-enabled query carries its flag as an int8 in the second byte
	test.That(t, decodePayload([]byte{0x03, 0x01}, cmdIsServoEnabled), test.ShouldResemble, []int16{1})
	test.That(t, decodePayload([]byte{0x03, 0x00}, cmdIsServoEnabled), test.ShouldResemble, []int16{0})

	// any other length: first byte as int8
	test.That(t, decodePayload([]byte{0x01}, cmdIsPowerOn), test.ShouldResemble, []int16{1})
	test.That(t, decodePayload([]byte{0xff}, cmdIsPowerOn), test.ShouldResemble, []int16{-1})
	test.That(t, decodePayload([]byte{0x01, 0x02, 0x03}, cmdIsPowerOn), test.ShouldResemble, []int16{1})

	test.That(t, decodePayload(nil, cmdIsPowerOn), test.ShouldBeNil)
}

func TestInt16sToBytes(t *testing.T) {
	test.That(t, int16sToBytes([]int16{4500, -5000}), test.ShouldResemble,
		[]byte{0x11, 0x94, 0xec, 0x78})
}
