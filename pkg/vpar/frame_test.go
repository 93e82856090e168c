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
	"testing"

	"github.com/lassandro/govpar/pkg/vpar"
)

func TestDecodeControlBits(t *testing.T) {
	for c := 0; c < 256; c++ {
		frame := vpar.Decode(byte(c), 0x5A)

		if frame.Control != byte(c)&0x07 {
			t.Fatalf("ctl %#02x: control = %#02x", c, frame.Control)
		}

		if frame.Data != 0x5A {
			t.Fatalf("ctl %#02x: data = %#02x", c, frame.Data)
		}
	}
}

func TestDecodeFlags(t *testing.T) {
	tests := []struct {
		Name  string
		Ctl   byte
		Flags vpar.Flags
	}{
		{"None", 0x07, vpar.Flags{}},
		{"Strobe", 0x08, vpar.Flags{Strobe: true}},
		{"Reply", 0x11, vpar.Flags{Reply: true}},
		{"Init", 0x44, vpar.Flags{Init: true}},
		{"Exit", 0x80, vpar.Flags{Exit: true}},
		{"Bit5Ignored", 0x20, vpar.Flags{}},
		{"All", 0xFF, vpar.Flags{Init: true, Exit: true, Reply: true, Strobe: true}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			if got := vpar.Decode(test.Ctl, 0).Flags; got != test.Flags {
				t.Errorf("Expected %+v, got %+v", test.Flags, got)
			}
		})
	}
}

func TestCommandFrames(t *testing.T) {
	tests := []struct {
		Name  string
		Frame [2]byte
		Want  [2]byte
	}{
		{"Request", vpar.RequestFrame(), [2]byte{0x00, 0x00}},
		{"Ack", vpar.AckFrame(), [2]byte{0x08, 0x00}},
		{"Set", vpar.SetMaskFrame(5), [2]byte{0x45, 0x00}},
		{"Clear", vpar.ClearMaskFrame(5), [2]byte{0x85, 0x00}},
		{"SetHighBitsDropped", vpar.SetMaskFrame(0xC1), [2]byte{0x41, 0x00}},
		{"Data", vpar.DataFrame(0x30), [2]byte{0x10, 0x30}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			if test.Frame != test.Want {
				t.Errorf("Expected % x, got % x", test.Want, test.Frame)
			}
		})
	}
}

func TestFormatControl(t *testing.T) {
	tests := []struct {
		Name     string
		Ctl      byte
		MaskOnly bool
		Want     string
	}{
		{"Clear", 0x00, false, "busy pout select"},
		{"State", 0x05, false, "BUSY pout SELECT"},
		{"Events", 0xDA, false, "busy POUT select STROBE INIT EXIT REPLY"},
		{"Mask", 0x05, true, "BUSY ---- SELECT"},
		{"EmptyMask", 0x00, true, "---- ---- ------"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			if got := vpar.FormatControl(test.Ctl, test.MaskOnly); got != test.Want {
				t.Errorf("Expected %q, got %q", test.Want, got)
			}
		})
	}
}
