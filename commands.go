package mycobot

// command identifies one operation in the controller's wire vocabulary. The
// byte values are fixed by the myCobot firmware and must not be derived or
// renumbered; command tables published at
// https://github.com/elephantrobotics/pymycobot
type command byte

// Frame boundary sentinels. Header and footer frame every command and reply;
// the header byte appears twice in a row at the start of a frame.
const (
	frameHeader byte = 0xfe
	frameFooter byte = 0xfa
)

const (
	cmdVersion command = 0x00

	cmdPowerOn               command = 0x10
	cmdPowerOff              command = 0x11
	cmdIsPowerOn             command = 0x12
	cmdReleaseAllServos      command = 0x13
	cmdIsControllerConnected command = 0x14

	cmdGetAngles    command = 0x20
	cmdSendAngle    command = 0x21
	cmdSendAngles   command = 0x22
	cmdGetCoords    command = 0x23
	cmdSendCoord    command = 0x24
	cmdSendCoords   command = 0x25
	cmdPause        command = 0x26
	cmdIsPaused     command = 0x27
	cmdResume       command = 0x28
	cmdStop         command = 0x29
	cmdIsInPosition command = 0x2a
	cmdIsMoving     command = 0x2b

	cmdJogAngle command = 0x30
	cmdJogCoord command = 0x32
	cmdJogStop  command = 0x34

	cmdSetEncoder  command = 0x3a
	cmdGetEncoder  command = 0x3b
	cmdSetEncoders command = 0x3c

	cmdGetSpeed command = 0x40
	cmdSetSpeed command = 0x41

	cmdIsServoEnabled    command = 0x50
	cmdIsAllServoEnabled command = 0x51
	cmdReleaseServo      command = 0x56
	cmdFocusServo        command = 0x57

	cmdSetColor command = 0x6a
)

// Joint identifies one of the six arm joints, base first. On the wire a
// joint is its byte value.
type Joint byte

// The six joints.
const (
	Joint1 Joint = iota + 1
	Joint2
	Joint3
	Joint4
	Joint5
	Joint6
)

// Axis identifies one of the six pose axes: three translations followed by
// three rotations.
type Axis byte

// The six pose axes. SendCoord encodes an axis as its value minus one; jog
// commands use the value as is.
const (
	AxisX Axis = iota + 1
	AxisY
	AxisZ
	AxisRX
	AxisRY
	AxisRZ
)

// JogDirection selects which way a jog command moves a joint or axis.
type JogDirection byte

// Jog directions.
const (
	JogDecrease JogDirection = 0
	JogIncrease JogDirection = 1
)
