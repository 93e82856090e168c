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

// Package config loads the harness settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	EnvDevice   = "VPAR_DEVICE"
	EnvTimeout  = "VPAR_TIMEOUT"
	EnvLogLevel = "VPAR_LOG_LEVEL"
	EnvNoColor  = "VPAR_LOG_NOCOLOR"
)

const (
	DefaultDevice  = "/tmp/vpar"
	DefaultTimeout = 2 * time.Second
)

// Duration wraps time.Duration so it can be written as "250ms" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type LogConfig struct {
	Level   string `toml:"level"`
	NoColor bool   `toml:"no_color"`
}

type Config struct {
	// Character device carrying the frames, usually a pty slave or a
	// symlink to one.
	Device string `toml:"device"`
	// Wait applied to each readiness check of a command.
	Timeout Duration `toml:"timeout"`
	// Total time a command may spend skipping update frames. Zero means no
	// limit.
	HandshakeLimit Duration `toml:"handshake_limit"`

	Log LogConfig `toml:"log"`
}

func Default() Config {
	return Config{
		Device:  DefaultDevice,
		Timeout: Duration{DefaultTimeout},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads path on top of the defaults. A missing file is not an error when
// path is empty or the file does not exist; environment overrides are applied
// last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvDevice)); v != "" {
		cfg.Device = v
	}

	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		cfg.Timeout.Duration = d
	}

	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}

	if v := strings.TrimSpace(os.Getenv(EnvNoColor)); v != "" {
		cfg.Log.NoColor = v != "0" && !strings.EqualFold(v, "false")
	}

	return nil
}

func Validate(cfg Config) error {
	if cfg.Device == "" {
		return errors.New("config: device must not be empty")
	}
	if cfg.HandshakeLimit.Duration < 0 {
		return errors.New("config: handshake_limit must not be negative")
	}
	return nil
}
