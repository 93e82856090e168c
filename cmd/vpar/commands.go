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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lassandro/govpar/pkg/encoding"
)

// command runs fn against a freshly opened session and prints the resulting
// state.
func command(fn func(s *session) error) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		s, err := openSession()

		if err != nil {
			return err
		}

		defer s.port.Close()

		if err := fn(s); err != nil {
			return err
		}

		s.printState()
		return nil
	}
}

func requestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request",
		Short: "Ask the emulator for its current port state",
		Args:  cobra.NoArgs,
		RunE: command(func(s *session) error {
			return s.port.RequestState(s.cfg.Timeout.Duration)
		}),
	}
}

func ackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ack",
		Short: "Pulse the ACK line",
		Args:  cobra.NoArgs,
		RunE: command(func(s *session) error {
			return s.port.TriggerAck(s.cfg.Timeout.Duration)
		}),
	}
}

func maskCmd(use, short string, send func(*session, byte) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " MASK",
		Short: short,
		Long:  short + ". MASK is a number (5, 0x05, #5) or line names such as busy|select.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mask, err := encoding.DecodeMask(args[0])

			if err != nil {
				return err
			}

			return command(func(s *session) error {
				return send(s, mask)
			})(cmd, args)
		},
	}
}

func setCmd() *cobra.Command {
	return maskCmd("set", "Set control lines", func(s *session, mask byte) error {
		return s.port.SetControlMask(mask, s.cfg.Timeout.Duration)
	})
}

func clearCmd() *cobra.Command {
	return maskCmd("clear", "Clear control lines", func(s *session, mask byte) error {
		return s.port.ClearControlMask(mask, s.cfg.Timeout.Duration)
	})
}

func dataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "data VALUE",
		Short: "Write the data lines (emulator port must be configured as input)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := encoding.DecodeByte(args[0])

			if err != nil {
				return err
			}

			return command(func(s *session) error {
				return s.port.SetData(value, s.cfg.Timeout.Duration)
			})(cmd, args)
		},
	}
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print state updates until the emulator exits or on interrupt",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s, err := openSession()

			if err != nil {
				return err
			}

			defer s.port.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			if err := s.port.RequestState(s.cfg.Timeout.Duration); err != nil {
				s.log.Warn().Err(err).Msg("initial state request failed")
			} else {
				s.printState()
			}

			return watch(ctx, s)
		},
	}
}

func watch(ctx context.Context, s *session) error {
	for ctx.Err() == nil {
		ok, err := s.port.PollState(s.cfg.Timeout.Duration)

		if err != nil {
			return err
		} else if !ok {
			continue
		}

		s.printState()

		if s.port.CheckStrobeFlag() {
			fmt.Println("strobe")
		}

		if s.port.CheckInitFlag() {
			fmt.Println("init")
		}

		if s.port.CheckExitFlag() {
			fmt.Println("exit")
			return nil
		}
	}

	return nil
}
