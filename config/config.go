// Package config loads an Integrator's Config from an INI-style file
// using gcfg, which reads the hand-editable file into a Go struct
// before validation.
package config

import (
	"fmt"

	"github.com/phil-mansfield/mercurana"
	"github.com/phil-mansfield/mercurana/eos"
	"gopkg.in/gcfg.v1"
)

// section is the raw [mercurana] block of a config file; all fields
// are optional and default to mercurana.DefaultConfig()'s values when
// left unset.
type section struct {
	PhiOuter    string
	PhiInner    string
	N           int
	WHSplitting *bool
	SafeMode    *bool
	DtFrac      float64
	SMax        int
}

// file is the top-level gcfg document shape: one [mercurana] section.
type file struct {
	Mercurana section
}

// Load reads path as an INI file with a single [mercurana] section and
// returns the Config it describes, starting from
// mercurana.DefaultConfig() and overriding only the fields present in
// the file.
func Load(path string) (mercurana.Config, error) {
	var f file
	if err := gcfg.ReadFileInto(&f, path); err != nil {
		return mercurana.Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return fromSection(f.Mercurana)
}

func fromSection(s section) (mercurana.Config, error) {
	cfg := mercurana.DefaultConfig()

	if s.PhiOuter != "" {
		name, err := eos.ParseName(s.PhiOuter)
		if err != nil {
			return mercurana.Config{}, fmt.Errorf("config: PhiOuter: %w", err)
		}
		cfg.PhiOuter = name
	}
	if s.PhiInner != "" {
		name, err := eos.ParseName(s.PhiInner)
		if err != nil {
			return mercurana.Config{}, fmt.Errorf("config: PhiInner: %w", err)
		}
		cfg.PhiInner = name
	}
	if s.N != 0 {
		cfg.N = s.N
	}
	if s.DtFrac != 0 {
		cfg.DtFrac = s.DtFrac
	}
	if s.SMax != 0 {
		cfg.SMax = s.SMax
	}
	if s.WHSplitting != nil {
		cfg.WHSplitting = *s.WHSplitting
	}
	if s.SafeMode != nil {
		cfg.SafeMode = *s.SafeMode
	}

	return cfg, nil
}
