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

// Persistent port lines, the low three bits of every control byte.
const (
	BUSY   byte = 1 << 0
	POUT   byte = 1 << 1
	SELECT byte = 1 << 2

	CTL_MASK byte = BUSY | POUT | SELECT
)

// Event markers layered on top of an inbound control byte.
const (
	EVT_STROBE byte = 0x08
	EVT_REPLY  byte = 0x10
	EVT_INIT   byte = 0x40
	EVT_EXIT   byte = 0x80
)

// Command selectors for an outbound control byte. They are mutually
// exclusive.
const (
	CMD_REQUEST byte = 0x00
	CMD_ACK     byte = 0x08
	CMD_DATA    byte = 0x10
	CMD_SET     byte = 0x40
	CMD_CLEAR   byte = 0x80

	// Only the low six bits of a set/clear mask are carried.
	CMD_MASK_BITS byte = 0x3F
)

const FRAME_SIZE = 2
