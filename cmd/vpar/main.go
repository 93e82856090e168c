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
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lassandro/govpar/pkg/channel"
	"github.com/lassandro/govpar/pkg/config"
	"github.com/lassandro/govpar/pkg/logging"
	"github.com/lassandro/govpar/pkg/vpar"
)

var (
	configFlag  string
	deviceFlag  string
	timeoutFlag time.Duration
	debugFlag   bool
)

type session struct {
	cfg  config.Config
	log  zerolog.Logger
	port *vpar.Port
}

func loadSettings() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configFlag)

	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}

	if deviceFlag != "" {
		cfg.Device = deviceFlag
	}

	if timeoutFlag != 0 {
		cfg.Timeout.Duration = timeoutFlag
	}

	if debugFlag {
		cfg.Log.Level = "debug"
	}

	return cfg, logging.New(os.Stderr, cfg.Log.Level, cfg.Log.NoColor), nil
}

// openSession opens the configured device and drains it.
func openSession() (*session, error) {
	cfg, log, err := loadSettings()

	if err != nil {
		return nil, err
	}

	port := vpar.New(
		channel.NewDevice(cfg.Device),
		vpar.WithLogger(log),
		vpar.WithHandshakeLimit(cfg.HandshakeLimit.Duration),
	)

	if err := port.Open(); err != nil {
		return nil, err
	}

	return &session{cfg: cfg, log: log, port: port}, nil
}

func (s *session) printState() {
	ctl := s.port.Control()
	fmt.Printf("ctl=%#02x dat=%#02x [%s]\n", ctl, s.port.Data(), vpar.FormatControl(ctl, false))
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vpar",
		Short:         "Drive the virtual parallel port of an emulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "TOML config file")
	root.PersistentFlags().StringVarP(&deviceFlag, "device", "d", "", "vpar character device (default "+config.DefaultDevice+")")
	root.PersistentFlags().DurationVarP(&timeoutFlag, "timeout", "t", 0, "per frame timeout, negative waits forever")
	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log every frame")

	root.AddCommand(
		requestCmd(),
		ackCmd(),
		setCmd(),
		clearCmd(),
		dataCmd(),
		watchCmd(),
		emulateCmd(),
	)

	return root
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vpar: %v\n", err)
		os.Exit(1)
	}
}
