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

//go:build linux || darwin || freebsd || netbsd || openbsd

// Package channel carries vpar frames over a character device such as the
// slave side of a pseudo terminal.
package channel

import (
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sys/unix"

	"github.com/lassandro/govpar/pkg/vpar"
)

var ErrNotOpen = errors.New("channel: device not open")

var _ vpar.Channel = (*Device)(nil)

type Device struct {
	Path string

	fd      int
	open    bool
	restore *unix.Termios
}

func NewDevice(path string) *Device {
	return &Device{Path: path}
}

func (dev *Device) Open() error {
	if dev.open {
		return nil
	}

	fd, err := unix.Open(dev.Path, unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)

	if err != nil {
		return fmt.Errorf("channel: open %s: %w", dev.Path, err)
	}

	restore, err := makeRaw(fd)

	if err != nil {
		unix.Close(fd)
		return fmt.Errorf("channel: raw mode %s: %w", dev.Path, err)
	}

	dev.fd = fd
	dev.open = true
	dev.restore = restore
	return nil
}

func (dev *Device) Close() error {
	if !dev.open {
		return nil
	}

	fd := dev.fd
	dev.open = false

	err := restoreTerm(fd, dev.restore)
	dev.restore = nil

	if cerr := unix.Close(fd); cerr != nil {
		return cerr
	}

	return err
}

func (dev *Device) Read(p []byte) (int, error) {
	if !dev.open {
		return 0, ErrNotOpen
	}

	for {
		n, err := unix.Read(dev.fd, p)

		if err == unix.EINTR {
			continue
		} else if err != nil {
			return 0, err
		} else if n == 0 && len(p) > 0 {
			return 0, io.EOF
		}

		return n, nil
	}
}

func (dev *Device) Write(p []byte) (int, error) {
	if !dev.open {
		return 0, ErrNotOpen
	}

	written := 0

	for written < len(p) {
		n, err := unix.Write(dev.fd, p[written:])

		if err == unix.EINTR {
			continue
		} else if err != nil {
			return written, err
		}

		written += n
	}

	return written, nil
}

// Ready polls the device for the given direction. A closed device and a
// failed or interrupted poll both report false.
func (dev *Device) Ready(dir vpar.Direction, timeout time.Duration) bool {
	if !dev.open {
		return false
	}

	events := int16(unix.POLLIN)
	if dir == vpar.Write {
		events = unix.POLLOUT
	}

	fds := []unix.PollFd{{Fd: int32(dev.fd), Events: events}}
	n, err := unix.Poll(fds, pollTimeout(timeout))

	if err != nil || n == 0 {
		return false
	}

	return fds[0].Revents&events != 0
}

func pollTimeout(timeout time.Duration) int {
	if timeout < 0 {
		return -1
	}

	ms := (timeout + time.Millisecond - 1) / time.Millisecond
	return int(ms)
}
