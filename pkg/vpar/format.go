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

import "strings"

type lineName struct {
	bit       byte
	set       string
	clear     string
	undefined string
}

var lineNames = [...]lineName{
	{BUSY, "BUSY", "busy", "----"},
	{POUT, "POUT", "pout", "----"},
	{SELECT, "SELECT", "select", "------"},
}

var eventNames = [...]struct {
	bit  byte
	name string
}{
	{EVT_STROBE, "STROBE"},
	{EVT_INIT, "INIT"},
	{EVT_EXIT, "EXIT"},
	{EVT_REPLY, "REPLY"},
}

// FormatControl renders a control byte for diagnostics. Set lines are upper
// case and clear lines lower case. With maskOnly the byte is read as a
// set/clear mask and lines outside the mask render as dashes.
func FormatControl(ctl byte, maskOnly bool) string {
	var parts []string

	for _, line := range lineNames {
		switch {
		case ctl&line.bit == line.bit:
			parts = append(parts, line.set)
		case maskOnly:
			parts = append(parts, line.undefined)
		default:
			parts = append(parts, line.clear)
		}
	}

	for _, evt := range eventNames {
		if ctl&evt.bit == evt.bit {
			parts = append(parts, evt.name)
		}
	}

	return strings.Join(parts, " ")
}
