package config

import (
	"testing"

	"github.com/phil-mansfield/mercurana"
	"github.com/phil-mansfield/mercurana/eos"
	"github.com/stretchr/testify/assert"
)

func TestFromSectionDefaultsUnsetFields(t *testing.T) {
	cfg, err := fromSection(section{})
	assert.NoError(t, err)
	assert.Equal(t, mercurana.DefaultConfig(), cfg)
}

func TestFromSectionOverridesExplicitFields(t *testing.T) {
	whOff := false
	cfg, err := fromSection(section{
		PhiOuter:    "LF4",
		PhiInner:    "PMLF4",
		N:           20,
		SMax:        5,
		DtFrac:      0.2,
		WHSplitting: &whOff,
	})
	assert.NoError(t, err)
	assert.Equal(t, eos.LF4, cfg.PhiOuter)
	assert.Equal(t, eos.PMLF4, cfg.PhiInner)
	assert.Equal(t, 20, cfg.N)
	assert.Equal(t, 5, cfg.SMax)
	assert.InDelta(t, 0.2, cfg.DtFrac, 1e-12)
	assert.False(t, cfg.WHSplitting)
	// SafeMode left unset: stays at the default.
	assert.True(t, cfg.SafeMode)
}

func TestFromSectionRejectsUnknownSchedule(t *testing.T) {
	_, err := fromSection(section{PhiOuter: "NOT_A_SCHEDULE"})
	assert.Error(t, err)
}
