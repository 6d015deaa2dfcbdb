// Copyright (c) 2025, Geowitness Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads geowitness configuration from a YAML file with
// environment variable overrides. A .env file in the working directory is
// loaded first, so deployments can keep overrides next to the binary.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/geowitness/geowitness/pkg/defaults"
)

// GPSConfig configures the serial NMEA location probe.
type GPSConfig struct {
	// Port is the serial device path, e.g. /dev/ttyUSB0. Empty disables GPS.
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// GeoIPConfig configures the network location fallback.
type GeoIPConfig struct {
	// DBPath points at a MaxMind City mmdb file. Empty disables the fallback.
	DBPath string `yaml:"dbPath"`
}

// WifiConfig configures the wireless association probe.
type WifiConfig struct {
	// Interface is the wireless interface name. Empty means autodetect
	// from /proc/net/wireless.
	Interface string `yaml:"interface"`
}

// ModemConfig configures the cellular modem probe.
type ModemConfig struct {
	// Device is the AT command port, e.g. /dev/ttyUSB2. Empty disables cell.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

// LedgerConfig configures the custody ledger.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig configures where captured snapshots are written.
type OutputConfig struct {
	// Format is json, yaml, or table.
	Format string `yaml:"format"`
	// Destination is empty or "-" for stdout, an mqtt://host:port/topic
	// URI, or a file path.
	Destination string `yaml:"destination"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// Config is the full geowitness configuration.
type Config struct {
	GPS    GPSConfig    `yaml:"gps"`
	GeoIP  GeoIPConfig  `yaml:"geoip"`
	Wifi   WifiConfig   `yaml:"wifi"`
	Modem  ModemConfig  `yaml:"modem"`
	Ledger LedgerConfig `yaml:"ledger"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
}

// Default returns the configuration used when no file or overrides are given.
func Default() *Config {
	return &Config{
		GPS:    GPSConfig{Baud: defaults.GPSBaudRate},
		Modem:  ModemConfig{Baud: defaults.ModemBaudRate},
		Ledger: LedgerConfig{Path: "geowitness.db"},
		Output: OutputConfig{Format: "json"},
		Server: ServerConfig{Port: 8080},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is empty, the file is optional and looked up at ./geowitness.yaml),
// then environment variable overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := Default()

	required := path != ""
	if path == "" {
		path = "geowitness.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !required:
		// No config file, run on defaults and env.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.GPS.Port, "GEOWITNESS_GPS_PORT")
	setInt(&c.GPS.Baud, "GEOWITNESS_GPS_BAUD")
	setString(&c.GeoIP.DBPath, "GEOWITNESS_GEOIP_DB")
	setString(&c.Wifi.Interface, "GEOWITNESS_WIFI_INTERFACE")
	setString(&c.Modem.Device, "GEOWITNESS_MODEM_DEVICE")
	setInt(&c.Modem.Baud, "GEOWITNESS_MODEM_BAUD")
	setString(&c.Ledger.Path, "GEOWITNESS_LEDGER_PATH")
	setString(&c.Output.Format, "GEOWITNESS_OUTPUT_FORMAT")
	setString(&c.Output.Destination, "GEOWITNESS_OUTPUT")
	setString(&c.Server.Address, "GEOWITNESS_SERVER_ADDRESS")
	setInt(&c.Server.Port, "PORT")
}

// Validate checks value ranges. Empty device paths are valid; they disable
// the corresponding probe.
func (c *Config) Validate() error {
	if c.GPS.Baud <= 0 {
		return fmt.Errorf("invalid GPS baud rate: %d", c.GPS.Baud)
	}
	if c.Modem.Baud <= 0 {
		return fmt.Errorf("invalid modem baud rate: %d", c.Modem.Baud)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger path must not be empty")
	}
	switch c.Output.Format {
	case "json", "yaml", "table":
	default:
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
