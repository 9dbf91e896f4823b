// Package mycobot implements the serial wire protocol of the Elephant
// Robotics myCobot arm controller.
//
// The controller speaks a request/response byte protocol over a half-duplex
// link: every command is a framed payload tagged with a one-byte opcode, and
// replies reuse the same envelope. Client issues commands over any Connection;
// OpenSerialConnection provides one for a local serial port.
package mycobot
