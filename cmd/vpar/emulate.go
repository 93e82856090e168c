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

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/creack/pty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lassandro/govpar/pkg/encoding"
	"github.com/lassandro/govpar/pkg/remote"
	"github.com/lassandro/govpar/pkg/vpar"
)

const emulateUsage = `commands:
  strobe | init | exit     push the current state with that event
  state CTL DAT            push a new state
  show                     print the emulated port
  quit`

func emulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emulate",
		Short: "Serve a simulated emulator port on a new pty linked at the device path",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, log, err := loadSettings()

			if err != nil {
				return err
			}

			ptmx, tty, err := pty.Open()

			if err != nil {
				return err
			}

			defer ptmx.Close()
			defer tty.Close()

			if _, err := term.MakeRaw(int(tty.Fd())); err != nil {
				return err
			}

			if info, err := os.Lstat(cfg.Device); err == nil {
				if info.Mode()&os.ModeSymlink == 0 {
					return fmt.Errorf("%s exists and is not a symlink", cfg.Device)
				}
				os.Remove(cfg.Device)
			}

			if err := os.Symlink(tty.Name(), cfg.Device); err != nil {
				return err
			}

			defer os.Remove(cfg.Device)

			emu := remote.New(log)

			go func() {
				if err := emu.Serve(ptmx); err != nil {
					log.Debug().Err(err).Msg("serve stopped")
				}
			}()

			fmt.Printf("emulating on %s -> %s\n", cfg.Device, tty.Name())
			fmt.Println(emulateUsage)

			return emulateREPL(emu, ptmx)
		},
	}
}

func emulateREPL(emu *remote.Port, out *os.File) error {
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		args := strings.Fields(scanner.Text())

		if len(args) == 0 {
			continue
		}

		ctl, dat := emu.State()
		var events byte

		switch args[0] {
		case "strobe":
			events = vpar.EVT_STROBE
		case "init":
			events = vpar.EVT_INIT
		case "exit":
			events = vpar.EVT_EXIT
		case "state":
			if len(args) != 3 {
				fmt.Println("state CTL DAT")
				continue
			}

			var err error

			if ctl, err = encoding.DecodeMask(args[1]); err != nil {
				fmt.Println(err)
				continue
			}

			if dat, err = encoding.DecodeByte(args[2]); err != nil {
				fmt.Println(err)
				continue
			}
		case "show":
			fmt.Printf("ctl=%#02x dat=%#02x [%s] acks=%d\n",
				ctl, dat, vpar.FormatControl(ctl, false), emu.Acks())
			continue
		case "q", "quit":
			return nil
		default:
			fmt.Println(emulateUsage)
			continue
		}

		if err := emu.Push(out, ctl, dat, events); err != nil {
			return err
		}
	}

	return scanner.Err()
}
