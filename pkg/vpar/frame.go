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

// Flags are the edge-triggered events carried by an inbound frame.
type Flags struct {
	Init   bool
	Exit   bool
	Reply  bool
	Strobe bool
}

// Frame is one decoded 2-byte message.
type Frame struct {
	Raw     byte
	Control byte
	Data    byte
	Flags   Flags
}

// Decode splits a control/data byte pair into the persistent control bits,
// the event flags and the data value. Every byte pair is a valid frame.
func Decode(ctl, dat byte) Frame {
	return Frame{
		Raw:     ctl,
		Control: ctl & CTL_MASK,
		Data:    dat,
		Flags: Flags{
			Init:   ctl&EVT_INIT == EVT_INIT,
			Exit:   ctl&EVT_EXIT == EVT_EXIT,
			Reply:  ctl&EVT_REPLY == EVT_REPLY,
			Strobe: ctl&EVT_STROBE == EVT_STROBE,
		},
	}
}

// Bytes returns the wire form of the frame as it was received.
func (f Frame) Bytes() [FRAME_SIZE]byte {
	return [FRAME_SIZE]byte{f.Raw, f.Data}
}

func Encode(selector, payload byte) [FRAME_SIZE]byte {
	return [FRAME_SIZE]byte{selector, payload}
}

func RequestFrame() [FRAME_SIZE]byte {
	return Encode(CMD_REQUEST, 0)
}

func AckFrame() [FRAME_SIZE]byte {
	return Encode(CMD_ACK, 0)
}

func SetMaskFrame(mask byte) [FRAME_SIZE]byte {
	return Encode(CMD_SET|mask&CMD_MASK_BITS, 0)
}

func ClearMaskFrame(mask byte) [FRAME_SIZE]byte {
	return Encode(CMD_CLEAR|mask&CMD_MASK_BITS, 0)
}

func DataFrame(value byte) [FRAME_SIZE]byte {
	return Encode(CMD_DATA, value)
}
