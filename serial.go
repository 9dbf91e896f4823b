package mycobot

import (
	"io"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	slib "github.com/jacobsa/go-serial/serial"
	"github.com/pkg/errors"
)

// DefaultBaudRate is the rate the stock controller firmware listens at.
const DefaultBaudRate uint = 115200

const (
	// The controller needs a beat between receiving a command and having
	// the reply on the wire.
	replySettleDelay = 100 * time.Millisecond

	// Replies are at most a full frame plus whatever noise preceded it.
	replyBufferSize = 256

	// Milliseconds of silence after which a read returns with whatever
	// arrived, possibly nothing.
	interCharacterTimeoutMs = 100
)

type serialConnection struct {
	mu     sync.Mutex
	port   io.ReadWriteCloser
	clock  clock.Clock
	logger golog.Logger
}

// OpenSerialConnection opens the serial device at path (e.g. /dev/ttyUSB0 or
// /dev/ttyAMA0) at the given baud rate, 8N1. A quiet port yields an empty
// read rather than blocking forever, which the protocol layer reports as
// "no data".
func OpenSerialConnection(path string, baudRate uint, logger golog.Logger) (Connection, error) {
	options := slib.OpenOptions{
		PortName:              path,
		BaudRate:              baudRate,
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       0,
		InterCharacterTimeout: interCharacterTimeoutMs,
	}
	port, err := slib.Open(options)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open serial port %q", path)
	}
	logger.Debugw("opened serial connection", "path", path, "baud_rate", baudRate)
	return &serialConnection{port: port, clock: clock.New(), logger: logger}, nil
}

func (sc *serialConnection) Write(data []byte) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	_, err := sc.port.Write(data)
	return err
}

func (sc *serialConnection) WriteAndRead(data []byte) ([]byte, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if _, err := sc.port.Write(data); err != nil {
		return nil, err
	}
	sc.clock.Sleep(replySettleDelay)
	buf := make([]byte, replyBufferSize)
	n, err := sc.port.Read(buf)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

func (sc *serialConnection) Close() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.port.Close()
}
