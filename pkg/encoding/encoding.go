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

package encoding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lassandro/govpar/pkg/vpar"
)

var lineNames = map[string]byte{
	"busy":   vpar.BUSY,
	"pout":   vpar.POUT,
	"select": vpar.SELECT,
	"sel":    vpar.SELECT,
}

// Decodes a hexidecimal string in the formats: 0xFF, xFF
func DecodeHex(s string) (byte, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i == -1 || i != 1 {
		return 0, errors.New("Invalid hex string")
	}

	result, err := strconv.ParseUint(s, 0, 8)

	if err != nil {
		return 0, err
	}

	return byte(result), nil
}

// Decodes a base-10 string in the formats: #123, 123
func DecodeInt(s string) (byte, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	result, err := strconv.ParseUint(s, 10, 8)

	if err != nil {
		return 0, err
	}

	return byte(result), nil
}

// Decodes a byte value given in hex or decimal notation.
func DecodeByte(s string) (byte, error) {
	if strings.ContainsAny(s, "xX") {
		return DecodeHex(s)
	}

	return DecodeInt(s)
}

// Decodes a control mask given either as a number or as line names joined
// by '|' or ',', e.g. "busy|select".
func DecodeMask(s string) (byte, error) {
	if value, err := DecodeByte(s); err == nil {
		return value, nil
	}

	var mask byte

	for _, name := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == '+'
	}) {
		bit, exists := lineNames[strings.ToLower(strings.TrimSpace(name))]

		if !exists {
			return 0, fmt.Errorf("Invalid control line '%s'", name)
		}

		mask |= bit
	}

	if mask == 0 {
		return 0, fmt.Errorf("Invalid control mask '%s'", s)
	}

	return mask, nil
}
