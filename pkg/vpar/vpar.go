// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package vpar

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

func New(ch Channel, opts ...Option) *Port {
	p := &Port{
		Channel: ch,
		log:     zerolog.Nop(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Open opens the channel and discards whatever a previous session left
// buffered in it.
func (p *Port) Open() error {
	p.State = PortState{}

	if err := p.Channel.Open(); err != nil {
		return err
	}

	return p.drain()
}

func (p *Port) Close() error {
	p.State = PortState{}
	return p.Channel.Close()
}

func (p *Port) drain() error {
	var scratch [1]byte
	count := 0

	for p.Channel.Ready(Read, 0) {
		n, err := p.Channel.Read(scratch[:])

		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("vpar: drain: %w", err)
		} else if n == 0 {
			break
		}

		count++
	}

	if count > 0 {
		p.log.Debug().Int("bytes", count).Msg("drained stale input")
	}

	return nil
}

// PollState reads one frame if the channel has one within timeout and folds
// it into the port state. It reports whether a frame was received.
func (p *Port) PollState(timeout time.Duration) (bool, error) {
	return p.receive(timeout, "RX")
}

func (p *Port) receive(timeout time.Duration, tag string) (bool, error) {
	if !p.Channel.Ready(Read, timeout) {
		return false, nil
	}

	var raw [FRAME_SIZE]byte

	if _, err := io.ReadFull(p.Channel, raw[:]); err != nil {
		return false, fmt.Errorf("vpar: read frame: %w", err)
	}

	frame := Decode(raw[0], raw[1])
	p.apply(frame)

	p.log.Debug().
		Str("dir", tag).
		Hex("frame", raw[:]).
		Uint8("ctl", p.State.Control).
		Uint8("dat", p.State.Data).
		Str("decoded", FormatControl(frame.Raw, false)).
		Msg("frame")

	return true, nil
}

// Control and data are overwritten, event flags only ever get set here.
func (p *Port) apply(frame Frame) {
	p.State.Control = frame.Control
	p.State.Data = frame.Data

	flags := &p.State.Flags
	flags.Init = flags.Init || frame.Flags.Init
	flags.Exit = flags.Exit || frame.Flags.Exit
	flags.Reply = flags.Reply || frame.Flags.Reply
	flags.Strobe = flags.Strobe || frame.Flags.Strobe
}

// Send writes a command frame and reads frames until one carries the reply
// flag. Update frames arriving first are applied to the port state. Each wait
// gets the full timeout unless a handshake limit is configured.
func (p *Port) Send(cmd [FRAME_SIZE]byte, timeout time.Duration) error {
	if !p.Channel.Ready(Write, timeout) {
		return ErrNotWritable
	}

	if _, err := p.Channel.Write(cmd[:]); err != nil {
		return fmt.Errorf("vpar: write command: %w", err)
	}

	var deadline time.Time
	if p.handshakeLimit > 0 {
		deadline = p.now().Add(p.handshakeLimit)
	}

	for num := 0; ; num++ {
		wait, clipped := timeout, false

		if !deadline.IsZero() {
			remaining := deadline.Sub(p.now())
			if remaining <= 0 {
				return ErrHandshakeLimit
			}

			if wait < 0 || remaining < wait {
				wait, clipped = remaining, true
			}
		}

		ok, err := p.receive(wait, fmt.Sprintf("R%d", num))

		if err != nil {
			return err
		} else if !ok {
			if clipped {
				return ErrHandshakeLimit
			}
			return ErrNoReply
		}

		if p.CheckReplyFlag() {
			return nil
		}
	}
}

// RequestState asks the remote side to push its full state.
func (p *Port) RequestState(timeout time.Duration) error {
	p.log.Info().Msg("tx: request")
	return p.Send(RequestFrame(), timeout)
}

// TriggerAck pulses the ACK line of the remote port.
func (p *Port) TriggerAck(timeout time.Duration) error {
	cmd := AckFrame()
	p.log.Info().Hex("frame", cmd[:]).Msg("tx: ACK")
	return p.Send(cmd, timeout)
}

func (p *Port) SetControlMask(mask byte, timeout time.Duration) error {
	cmd := SetMaskFrame(mask)
	p.log.Info().
		Uint8("mask", mask).
		Hex("frame", cmd[:]).
		Str("decoded", FormatControl(mask, true)).
		Msg("tx: SET")
	return p.Send(cmd, timeout)
}

func (p *Port) ClearControlMask(mask byte, timeout time.Duration) error {
	cmd := ClearMaskFrame(mask)
	p.log.Info().
		Uint8("mask", mask).
		Hex("frame", cmd[:]).
		Str("decoded", FormatControl(mask, true)).
		Msg("tx: CLEAR")
	return p.Send(cmd, timeout)
}

// SetData writes the data lines. The remote side only honours it while its
// data port is configured as input.
func (p *Port) SetData(value byte, timeout time.Duration) error {
	cmd := DataFrame(value)
	p.log.Info().Uint8("value", value).Hex("frame", cmd[:]).Msg("tx: DATA")
	return p.Send(cmd, timeout)
}

func (p *Port) Control() byte {
	return p.State.Control
}

func (p *Port) Data() byte {
	return p.State.Data
}

func (p *Port) CheckInitFlag() bool {
	return consume(&p.State.Flags.Init)
}

func (p *Port) CheckExitFlag() bool {
	return consume(&p.State.Flags.Exit)
}

func (p *Port) CheckReplyFlag() bool {
	return consume(&p.State.Flags.Reply)
}

func (p *Port) CheckStrobeFlag() bool {
	return consume(&p.State.Flags.Strobe)
}

func consume(flag *bool) bool {
	v := *flag
	*flag = false
	return v
}
