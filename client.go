package mycobot

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// A Connection is a half-duplex byte channel to the controller, typically a
// serial port. Write sends a full frame. WriteAndRead sends a full frame and
// then blocks for one read, returning whatever bytes arrived; partial or
// noisy replies are fine, the frame codec tolerates them. Implementations
// own any blocking and timeout behavior.
type Connection interface {
	Write(data []byte) error
	WriteAndRead(data []byte) ([]byte, error)
	Close() error
}

const (
	numJoints = 6

	syncPollInterval = 50 * time.Millisecond
)

// Client issues commands to one arm controller over a Connection it owns
// exclusively. Calls are serialized internally; the link is half-duplex and
// the firmware handles one command at a time. Callers sharing one physical
// device across multiple Clients must synchronize externally.
//
// Status queries return -1 when the controller sent nothing usable back: a
// missing reply, a reply to a different command, and a corrupted frame are
// indistinguishable on this protocol.
type Client struct {
	mu     sync.Mutex
	conn   Connection
	clock  clock.Clock
	logger golog.Logger
}

// NewClient wraps an open Connection. The Client takes ownership; Close
// closes the underlying connection.
func NewClient(conn Connection, logger golog.Logger) *Client {
	return &Client{conn: conn, clock: clock.New(), logger: logger}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// send issues a write-only command.
func (c *Client) send(cmd command, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Write(buildFrame(cmd, payload))
}

// transact issues a write-then-read command and decodes the reply. A nil
// result with a nil error means the reply was absent, stale, or mangled.
func (c *Client) transact(cmd command, payload []byte) ([]int16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := c.conn.WriteAndRead(buildFrame(cmd, payload))
	if err != nil {
		return nil, err
	}
	vals := decodePayload(parseFrame(raw, cmd), cmd)
	if vals == nil {
		c.logger.Debugw("reply discarded", "command", uint8(cmd), "raw_len", len(raw))
	}
	return vals, nil
}

// statusQuery runs a scalar query, mapping an empty decode to -1.
func (c *Client) statusQuery(cmd command, payload []byte) (int, error) {
	vals, err := c.transact(cmd, payload)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return -1, nil
	}
	return int(vals[0]), nil
}

// Version reads the firmware version string. The raw reply is taken one
// character per byte with no unframing or length validation.
func (c *Client) Version() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := c.conn.WriteAndRead(buildFrame(cmdVersion, nil))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// PowerOn energizes the arm.
func (c *Client) PowerOn() error {
	return c.send(cmdPowerOn, nil)
}

// PowerOff de-energizes the arm.
func (c *Client) PowerOff() error {
	return c.send(cmdPowerOff, nil)
}

// IsPowerOn reports 1 if the arm is powered, 0 if not, -1 if unknown.
func (c *Client) IsPowerOn() (int, error) {
	return c.statusQuery(cmdIsPowerOn, nil)
}

// ReleaseAllServos lets every joint go limp.
func (c *Client) ReleaseAllServos() error {
	return c.send(cmdReleaseAllServos, nil)
}

// IsControllerConnected reports 1 if the controller board answers, 0 if
// not, -1 if unknown.
func (c *Client) IsControllerConnected() (int, error) {
	return c.statusQuery(cmdIsControllerConnected, nil)
}

// GetAngles reads all six joint angles in degrees. The slice is empty when
// no usable reply arrived.
func (c *Client) GetAngles() ([]float64, error) {
	vals, err := c.transact(cmdGetAngles, nil)
	if err != nil {
		return nil, err
	}
	degrees := make([]float64, len(vals))
	for i, v := range vals {
		degrees[i] = intToAngle(v)
	}
	return degrees, nil
}

// SendAngle moves a single joint to the given angle in degrees at the given
// speed (1-100).
func (c *Client) SendAngle(joint Joint, degrees float64, speed uint8) error {
	payload := []byte{byte(joint)}
	payload = binary.BigEndian.AppendUint16(payload, uint16(angleToInt(degrees)))
	payload = append(payload, speed)
	return c.send(cmdSendAngle, payload)
}

// SendAngles moves all six joints to the given angles in degrees.
func (c *Client) SendAngles(degrees []float64, speed uint8) error {
	if len(degrees) != numJoints {
		return errors.Errorf("expected %d joint angles, got %d", numJoints, len(degrees))
	}
	vals := make([]int16, len(degrees))
	for i, d := range degrees {
		vals[i] = angleToInt(d)
	}
	payload := append(int16sToBytes(vals), speed)
	return c.send(cmdSendAngles, payload)
}

// GetCoords reads the pose of the tool head: x, y, z in millimeters followed
// by rx, ry, rz in degrees. The slice is empty when no usable reply arrived.
func (c *Client) GetCoords() ([]float64, error) {
	vals, err := c.transact(cmdGetCoords, nil)
	if err != nil {
		return nil, err
	}
	return intsToCoords(vals), nil
}

// SendCoord moves the tool head along a single axis to the given value in
// coordinate units (tenths on the wire).
func (c *Client) SendCoord(axis Axis, value float64, speed uint8) error {
	payload := []byte{byte(axis) - 1}
	payload = binary.BigEndian.AppendUint16(payload, uint16(coordToInt(value)))
	payload = append(payload, speed)
	return c.send(cmdSendCoord, payload)
}

// SendCoords moves the tool head to a full pose. Mode 0 moves each axis
// independently, mode 1 moves in a straight line.
func (c *Client) SendCoords(coords []float64, speed, mode uint8) error {
	if len(coords) != numJoints {
		return errors.Errorf("expected %d pose values, got %d", numJoints, len(coords))
	}
	payload := append(int16sToBytes(coordsToInts(coords)), speed, mode)
	return c.send(cmdSendCoords, payload)
}

// IsInAnglePosition reports 1 if the joints sit at the given angles, 0 if
// not, -1 if unknown.
func (c *Client) IsInAnglePosition(degrees []float64) (int, error) {
	if len(degrees) != numJoints {
		return 0, errors.Errorf("expected %d joint angles, got %d", numJoints, len(degrees))
	}
	vals := make([]int16, len(degrees))
	for i, d := range degrees {
		vals[i] = angleToInt(d)
	}
	payload := append(int16sToBytes(vals), 0)
	return c.statusQuery(cmdIsInPosition, payload)
}

// IsInCoordPosition reports 1 if the tool head sits at the given pose, 0 if
// not, -1 if unknown.
func (c *Client) IsInCoordPosition(coords []float64) (int, error) {
	if len(coords) != numJoints {
		return 0, errors.Errorf("expected %d pose values, got %d", numJoints, len(coords))
	}
	payload := append(int16sToBytes(coordsToInts(coords)), 1)
	return c.statusQuery(cmdIsInPosition, payload)
}

// IsMoving reports 1 while the arm is moving, 0 when settled, -1 if unknown.
func (c *Client) IsMoving() (int, error) {
	return c.statusQuery(cmdIsMoving, nil)
}

// JogAngle starts a continuous move of one joint; it runs until JogStop.
func (c *Client) JogAngle(joint Joint, direction JogDirection, speed uint8) error {
	return c.send(cmdJogAngle, []byte{byte(joint), byte(direction), speed})
}

// JogCoord starts a continuous move along one axis; it runs until JogStop.
func (c *Client) JogCoord(axis Axis, direction JogDirection, speed uint8) error {
	return c.send(cmdJogCoord, []byte{byte(axis), byte(direction), speed})
}

// JogStop halts a jog in progress.
func (c *Client) JogStop() error {
	return c.send(cmdJogStop, nil)
}

// Pause suspends the current motion.
func (c *Client) Pause() error {
	return c.send(cmdPause, nil)
}

// IsPaused reports 1 if motion is paused, 0 if not, -1 if unknown.
func (c *Client) IsPaused() (int, error) {
	return c.statusQuery(cmdIsPaused, nil)
}

// Resume continues a paused motion.
func (c *Client) Resume() error {
	return c.send(cmdResume, nil)
}

// Stop aborts the current motion.
func (c *Client) Stop() error {
	return c.send(cmdStop, nil)
}

// SetEncoder drives a single joint servo to a raw encoder potential.
func (c *Client) SetEncoder(joint Joint, encoder int16) error {
	payload := []byte{byte(joint)}
	payload = binary.BigEndian.AppendUint16(payload, uint16(encoder))
	return c.send(cmdSetEncoder, payload)
}

// GetEncoder reads a joint servo's raw encoder potential, -1 if unknown.
func (c *Client) GetEncoder(joint Joint) (int, error) {
	return c.statusQuery(cmdGetEncoder, []byte{byte(joint)})
}

// SetEncoders drives all six joint servos to raw encoder potentials.
func (c *Client) SetEncoders(encoders []int16, speed uint8) error {
	if len(encoders) != numJoints {
		return errors.Errorf("expected %d encoder values, got %d", numJoints, len(encoders))
	}
	payload := append(int16sToBytes(encoders), speed)
	return c.send(cmdSetEncoders, payload)
}

// GetSpeed reads the controller's configured speed, -1 if unknown.
func (c *Client) GetSpeed() (int, error) {
	return c.statusQuery(cmdGetSpeed, nil)
}

// SetSpeed configures the controller's speed (1-100).
func (c *Client) SetSpeed(speed uint8) error {
	return c.send(cmdSetSpeed, []byte{speed})
}

// IsServoEnabled reports 1 if the joint's servo is connected and enabled, 0
// if not, -1 if unknown.
func (c *Client) IsServoEnabled(joint Joint) (int, error) {
	return c.statusQuery(cmdIsServoEnabled, []byte{byte(joint)})
}

// IsAllServoEnabled reports 1 if every servo is connected and enabled, 0 if
// not, -1 if unknown.
func (c *Client) IsAllServoEnabled() (int, error) {
	return c.statusQuery(cmdIsAllServoEnabled, nil)
}

// ReleaseServo lets a single joint go limp.
func (c *Client) ReleaseServo(joint Joint) error {
	return c.send(cmdReleaseServo, []byte{byte(joint)})
}

// FocusServo re-engages a released joint.
func (c *Client) FocusServo(joint Joint) error {
	return c.send(cmdFocusServo, []byte{byte(joint)})
}

// SetColor sets the RGB LED on the arm's Atom head.
func (c *Client) SetColor(r, g, b uint8) error {
	return c.send(cmdSetColor, []byte{r, g, b})
}

// SyncSendAngles moves all joints and polls until the arm reports it reached
// the target, the context is done, or timeout elapses.
func (c *Client) SyncSendAngles(ctx context.Context, degrees []float64, speed uint8, timeout time.Duration) error {
	if err := c.SendAngles(degrees, speed); err != nil {
		return err
	}
	return c.waitInPosition(ctx, timeout, func() (int, error) {
		return c.IsInAnglePosition(degrees)
	})
}

// SyncSendCoords moves the tool head and polls until the arm reports it
// reached the target pose, the context is done, or timeout elapses.
func (c *Client) SyncSendCoords(ctx context.Context, coords []float64, speed, mode uint8, timeout time.Duration) error {
	if err := c.SendCoords(coords, speed, mode); err != nil {
		return err
	}
	return c.waitInPosition(ctx, timeout, func() (int, error) {
		return c.IsInCoordPosition(coords)
	})
}

func (c *Client) waitInPosition(ctx context.Context, timeout time.Duration, inPosition func() (int, error)) error {
	deadline := c.clock.Now().Add(timeout)
	for {
		reached, err := inPosition()
		if err != nil {
			return err
		}
		if reached == 1 {
			return nil
		}
		if !c.clock.Now().Before(deadline) {
			return errors.Errorf("arm did not reach target within %s", timeout)
		}
		if !goutils.SelectContextOrWait(ctx, syncPollInterval) {
			return ctx.Err()
		}
	}
}
