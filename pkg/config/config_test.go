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

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lassandro/govpar/pkg/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vpar.toml")

	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")

	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Device != config.DefaultDevice || cfg.Timeout.Duration != config.DefaultTimeout {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}

	if cfg.HandshakeLimit.Duration != 0 {
		t.Errorf("Expected unbounded handshake, got %v", cfg.HandshakeLimit)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
device = "/dev/pts/7"
timeout = "250ms"
handshake_limit = "3s"

[log]
level = "debug"
no_color = true
`)

	cfg, err := config.Load(path)

	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Device != "/dev/pts/7" {
		t.Errorf("Expected device /dev/pts/7, got %s", cfg.Device)
	}

	if cfg.Timeout.Duration != 250*time.Millisecond || cfg.HandshakeLimit.Duration != 3*time.Second {
		t.Errorf("Unexpected durations: %v %v", cfg.Timeout, cfg.HandshakeLimit)
	}

	if cfg.Log.Level != "debug" || !cfg.Log.NoColor {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `device = "/dev/pts/7"`)
	t.Setenv(config.EnvDevice, "/tmp/other")
	t.Setenv(config.EnvTimeout, "5s")

	cfg, err := config.Load(path)

	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Device != "/tmp/other" || cfg.Timeout.Duration != 5*time.Second {
		t.Errorf("Env overrides not applied: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		Name string
		Body string
	}{
		{"BadDuration", `timeout = "soon"`},
		{"NegativeLimit", `handshake_limit = "-1s"`},
		{"EmptyDevice", `device = ""`},
		{"Syntax", `device = `},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			if _, err := config.Load(writeConfig(t, test.Body)); err == nil {
				t.Errorf("Expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "none.toml")); err != nil {
		t.Errorf("Expected missing file to fall back to defaults, got %v", err)
	}
}
