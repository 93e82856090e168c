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
	"time"

	"github.com/rs/zerolog"
)

type Option func(*Port)

// WithLogger sets the logger used for frame diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Port) {
		p.log = log
	}
}

// WithHandshakeLimit bounds the total time a command may spend waiting for
// its reply while update frames keep arriving. Zero leaves the wait bounded
// only per frame.
func WithHandshakeLimit(limit time.Duration) Option {
	return func(p *Port) {
		p.handshakeLimit = limit
	}
}

func withClock(now func() time.Time) Option {
	return func(p *Port) {
		p.now = now
	}
}
