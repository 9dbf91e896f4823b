// Package main contains a command to exercise a myCobot arm: it lights the
// LED, runs a synchronized move to a target pose, and reads the joint angles
// back.
package main

import (
	"context"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/mycobot"
)

var logger = golog.NewDevelopmentLogger("mycobot_client")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	DevicePath string `flag:"device,usage=path to serial device"`
	BaudRate   uint   `flag:"baud,default=115200,usage=serial baud rate"`
	Speed      uint   `flag:"speed,default=50,usage=movement speed (1-100)"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.DevicePath == "" {
		return errors.New("must specify -device")
	}

	return runArm(ctx, argsParsed, logger)
}

func runArm(ctx context.Context, args Arguments, logger golog.Logger) (err error) {
	conn, err := mycobot.OpenSerialConnection(args.DevicePath, args.BaudRate, logger)
	if err != nil {
		return err
	}
	arm := mycobot.NewClient(conn, logger)
	defer func() {
		err = multierr.Combine(err, arm.Close())
	}()

	version, err := arm.Version()
	if err != nil {
		return err
	}
	logger.Infow("connected", "version", version)

	if err := arm.SetColor(255, 0, 0); err != nil {
		return err
	}

	target := []float64{0, 0, 0, 0, 50, 0}
	speed := uint8(args.Speed)
	if err := arm.SyncSendAngles(ctx, target, speed, 10*time.Second); err != nil {
		return err
	}

	angles, err := arm.GetAngles()
	if err != nil {
		return err
	}
	logger.Infow("arm at target", "angles", angles)

	return arm.SetColor(0, 255, 0)
}
