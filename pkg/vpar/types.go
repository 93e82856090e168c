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
	"errors"
	"time"

	"github.com/rs/zerolog"
)

type Direction uint

const (
	Read Direction = iota
	Write
)

func (d Direction) String() string {
	if d == Write {
		return "write"
	}
	return "read"
}

// Forever disables the timeout of a readiness wait.
const Forever time.Duration = -1

var (
	ErrNotWritable    = errors.New("vpar: channel not writable")
	ErrNoReply        = errors.New("vpar: no reply from remote")
	ErrHandshakeLimit = errors.New("vpar: handshake limit exceeded")
)

// Channel is the byte stream carrying frames in both directions. Ready must
// report false instead of failing when the channel is not open or the wait is
// interrupted.
type Channel interface {
	Open() error
	Close() error
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Ready(dir Direction, timeout time.Duration) bool
}

// PortState is the last state observed from the remote side.
type PortState struct {
	Control byte
	Data    byte
	Flags   Flags
}

type Port struct {
	Channel Channel
	State   PortState

	log            zerolog.Logger
	handshakeLimit time.Duration
	now            func() time.Time
}
