// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package board

import (
	"errors"
	"fmt"
	"os"

	"clklib/pkg/regs"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

var ErrUnknownChip = errors.New("unknown chip")
var ErrUnknownConsumer = errors.New("unknown consumer")
var ErrBadDTB = errors.New("bad devicetree blob")

// Instance is one controller block of the board: its compatible string and register window.
type Instance struct {
	Compatible string `yaml:"compatible"`
	Base       uint64 `yaml:"base"`
	Size       uint64 `yaml:"size"`
}

// Config describes a board. XtalRate overrides the chip's crystal rate when nonzero.
type Config struct {
	Chip      string     `yaml:"chip"`
	XtalRate  uint64     `yaml:"xtal_rate,omitempty"`
	Instances []Instance `yaml:"instances"`
}

// ParseConfig decodes a YAML board description.
func ParseConfig(b []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("board config: %w", err)
	}
	if cfg.Chip == "" {
		return nil, fmt.Errorf("board config: no chip: %w", ErrUnknownChip)
	}
	return cfg, nil
}

// LoadConfig reads the YAML board description at path.
func LoadConfig(path string) (*Config, error) {
	klog.V(regs.DBG_LVL_BASIC).InfoS("board.LoadConfig", "path", path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(b)
}

// Instance returns the instance with the given compatible string.
func (c *Config) Instance(compatible string) (Instance, bool) {
	for _, inst := range c.Instances {
		if inst.Compatible == compatible {
			return inst, true
		}
	}
	return Instance{}, false
}
