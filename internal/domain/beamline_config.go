package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BeamlineConfig is a snapshot of instrument configuration attached to a
// run. The parameter payload is opaque to this layer.
type BeamlineConfig struct {
	ID           primitive.ObjectID
	HeaderID     primitive.ObjectID
	ConfigParams map[string]any
}

// BeamlineConfigParams carries caller-supplied fields for NewBeamlineConfig.
// A nil ConfigParams selects a fresh empty map.
type BeamlineConfigParams struct {
	HeaderID     primitive.ObjectID
	ConfigParams map[string]any
}

// NewBeamlineConfig builds a validated beamline configuration snapshot.
func NewBeamlineConfig(p BeamlineConfigParams) (*BeamlineConfig, error) {
	c := &BeamlineConfig{
		HeaderID:     p.HeaderID,
		ConfigParams: defaultMap(p.ConfigParams),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the snapshot invariants.
func (c *BeamlineConfig) Validate() error {
	if fe := validateRef("header_id", c.HeaderID); fe != nil {
		return NewValidationErrors([]FieldError{*fe})
	}
	return nil
}
