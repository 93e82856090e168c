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

// Package remote plays the emulator side of the vpar protocol. It keeps its
// own parallel port state, answers every command with a reply frame and can
// push unsolicited state updates.
package remote

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lassandro/govpar/pkg/vpar"
)

type Port struct {
	Log zerolog.Logger

	mu      sync.Mutex
	control byte
	data    byte
	acks    int
}

func New(log zerolog.Logger) *Port {
	return &Port{Log: log}
}

// State returns the current control lines and data value.
func (p *Port) State() (byte, byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.control, p.data
}

// Acks counts the ACK pulses received so far.
func (p *Port) Acks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acks
}

// Apply executes one command frame and returns the reply frame.
func (p *Port) Apply(cmd [vpar.FRAME_SIZE]byte) [vpar.FRAME_SIZE]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.apply(cmd)
}

func (p *Port) apply(cmd [vpar.FRAME_SIZE]byte) [vpar.FRAME_SIZE]byte {
	sel := cmd[0]

	switch {
	case sel&vpar.CMD_CLEAR == vpar.CMD_CLEAR:
		p.control &^= sel & vpar.CTL_MASK
	case sel&vpar.CMD_SET == vpar.CMD_SET:
		p.control |= sel & vpar.CTL_MASK
	case sel == vpar.CMD_DATA:
		p.data = cmd[1]
	case sel == vpar.CMD_ACK:
		p.acks++
	case sel == vpar.CMD_REQUEST:
	default:
		p.Log.Warn().Hex("frame", cmd[:]).Msg("unknown command")
	}

	p.Log.Debug().
		Hex("frame", cmd[:]).
		Str("state", vpar.FormatControl(p.control, false)).
		Uint8("dat", p.data).
		Msg("command")

	return [vpar.FRAME_SIZE]byte{p.control | vpar.EVT_REPLY, p.data}
}

// Serve answers commands read from rw until it reaches end of input.
func (p *Port) Serve(rw io.ReadWriter) error {
	var cmd [vpar.FRAME_SIZE]byte

	for {
		if _, err := io.ReadFull(rw, cmd[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("remote: read command: %w", err)
		}

		p.mu.Lock()
		reply := p.apply(cmd)
		_, err := rw.Write(reply[:])
		p.mu.Unlock()

		if err != nil {
			return fmt.Errorf("remote: write reply: %w", err)
		}
	}
}

// Push changes the port state and sends it as an update frame carrying the
// given event bits (STROBE, INIT, EXIT).
func (p *Port) Push(w io.Writer, control, data, events byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.control = control & vpar.CTL_MASK
	p.data = data

	frame := [vpar.FRAME_SIZE]byte{p.control | events&^vpar.EVT_REPLY, p.data}

	if _, err := w.Write(frame[:]); err != nil {
		return fmt.Errorf("remote: push update: %w", err)
	}

	return nil
}
