/*
 * config.go, part of goccd.
 *
 * Copyright 2024 The goccd Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config loads the settings shared by the goccd commands from
// defaults, an optional YAML file and GOCCD_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ccd "github.com/pdbe-tools/goccd"
	"github.com/pdbe-tools/goccd/mogul"
	"github.com/pdbe-tools/goccd/pubchem"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to the environment variables read, so mogul.command
// is GOCCD_MOGUL_COMMAND.
const EnvPrefix = "GOCCD"

type Config struct {
	Mogul   MogulConfig   `mapstructure:"mogul" json:"mogul" yaml:"mogul"`
	PubChem PubChemConfig `mapstructure:"pubchem" json:"pubchem" yaml:"pubchem"`
}

type MogulConfig struct {
	Command     string           `mapstructure:"command" json:"command" yaml:"command"`
	WorkDir     string           `mapstructure:"workdir" json:"workdir" yaml:"workdir"`
	Keep        bool             `mapstructure:"keep" json:"keep" yaml:"keep"`
	Coordinates string           `mapstructure:"coordinates" json:"coordinates" yaml:"coordinates"`
	Thresholds  mogul.Thresholds `mapstructure:"thresholds" json:"thresholds" yaml:"thresholds"`
}

// CoordSet returns the coordinate set named in the configuration.
func (M MogulConfig) CoordSet() (ccd.CoordSet, error) {
	return ccd.ParseCoordSet(M.Coordinates)
}

type PubChemConfig struct {
	BaseURL   string        `mapstructure:"base_url" json:"base_url" yaml:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" json:"user_agent" yaml:"user_agent"`
}

func setDefaults(v *viper.Viper) {
	th := mogul.DefaultThresholds()
	v.SetDefault("mogul.command", mogul.NewCSDHandle().Command())
	v.SetDefault("mogul.workdir", "")
	v.SetDefault("mogul.keep", false)
	v.SetDefault("mogul.coordinates", ccd.AutoCoords.String())
	v.SetDefault("mogul.thresholds.z", th.Z)
	v.SetDefault("mogul.thresholds.torsion_dmin", th.TorsionDMin)
	v.SetDefault("mogul.thresholds.ring_dmin", th.RingDMin)
	v.SetDefault("mogul.thresholds.min_hits", th.MinHits)
	v.SetDefault("pubchem.base_url", pubchem.DefaultBaseURL)
	v.SetDefault("pubchem.timeout", 60*time.Second)
	v.SetDefault("pubchem.user_agent", "goccd")
}

// Load returns the configuration. If path is not empty the YAML file it names
// must exist and is read on top of the defaults. Environment variables take
// precedence over both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func (C *Config) validate() error {
	var errs []error
	if _, err := C.Mogul.CoordSet(); err != nil {
		errs = append(errs, err)
	}
	if C.Mogul.Thresholds.Z <= 0 {
		errs = append(errs, fmt.Errorf("mogul.thresholds.z must be positive, got %g", C.Mogul.Thresholds.Z))
	}
	if C.Mogul.Thresholds.MinHits < 0 {
		errs = append(errs, fmt.Errorf("mogul.thresholds.min_hits cannot be negative"))
	}
	if C.PubChem.Timeout < 0 {
		errs = append(errs, fmt.Errorf("pubchem.timeout cannot be negative"))
	}
	return errors.Join(errs...)
}

// WriteYAML writes C to w in the format read by Load.
func (C *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(C); err != nil {
		return fmt.Errorf("WriteYAML: %w", err)
	}
	return enc.Close()
}
