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

package vpar_test

import (
	"io"
	"time"

	"github.com/lassandro/govpar/pkg/vpar"
)

// fakeChannel serves scripted input. Whatever respond returns for a written
// command is appended to the input.
type fakeChannel struct {
	open       bool
	notWriting bool
	input      []byte
	output     []byte
	respond    func(cmd []byte) []byte
	readWaits  []time.Duration
	onReady    func()
}

func (ch *fakeChannel) Open() error {
	ch.open = true
	return nil
}

func (ch *fakeChannel) Close() error {
	ch.open = false
	return nil
}

func (ch *fakeChannel) Read(p []byte) (int, error) {
	if len(ch.input) == 0 {
		return 0, io.EOF
	}

	n := copy(p, ch.input)
	ch.input = ch.input[n:]
	return n, nil
}

func (ch *fakeChannel) Write(p []byte) (int, error) {
	ch.output = append(ch.output, p...)

	if ch.respond != nil {
		ch.input = append(ch.input, ch.respond(p)...)
	}

	return len(p), nil
}

func (ch *fakeChannel) Ready(dir vpar.Direction, timeout time.Duration) bool {
	if !ch.open {
		return false
	}

	if dir == vpar.Write {
		return !ch.notWriting
	}

	ch.readWaits = append(ch.readWaits, timeout)

	if ch.onReady != nil {
		ch.onReady()
	}

	return len(ch.input) > 0
}

func reply(frames ...byte) func([]byte) []byte {
	return func([]byte) []byte {
		return frames
	}
}
