package config

import (
	"fmt"

	"github.com/mattermost/calls-opus/opus"
)

type DecoderOptions struct {
	// Gain in Q8 dB units (1/256 dB).
	Gain                   int
	PhaseInversionDisabled bool
}

func (o *DecoderOptions) IsValid() error {
	if o.Gain < -32768 || o.Gain > 32767 {
		return fmt.Errorf("Gain should be in the range [-32768, 32767]")
	}
	return nil
}

func (o *DecoderOptions) IsEmpty() bool {
	return o == nil || *o == DecoderOptions{}
}

func (o *DecoderOptions) SetDefaults() {
	o.Gain = 0
	o.PhaseInversionDisabled = false
}

func (o *DecoderOptions) Apply(dec *opus.Decoder) error {
	if err := dec.SetGain(o.Gain); err != nil {
		return fmt.Errorf("failed to set gain: %w", err)
	}

	if err := dec.SetPhaseInversionDisabled(o.PhaseInversionDisabled); err != nil {
		return fmt.Errorf("failed to set phase inversion disabled: %w", err)
	}

	return nil
}

func (o *DecoderOptions) FromEnv() error {
	var err error
	if o.Gain, err = intFromEnv("OPUS_GAIN"); err != nil {
		return err
	}
	if o.PhaseInversionDisabled, err = boolFromEnv("OPUS_DECODER_PHASE_INVERSION_DISABLED"); err != nil {
		return err
	}
	return nil
}

func (o *DecoderOptions) ToEnv() []string {
	return []string{
		fmt.Sprintf("OPUS_GAIN=%d", o.Gain),
		fmt.Sprintf("OPUS_DECODER_PHASE_INVERSION_DISABLED=%t", o.PhaseInversionDisabled),
	}
}

func (o *DecoderOptions) FromMap(m map[string]any) {
	o.Gain = intFromMap(m, "gain")
	o.PhaseInversionDisabled, _ = m["decoder_phase_inversion_disabled"].(bool)
}

func (o *DecoderOptions) ToMap() map[string]any {
	return map[string]any{
		"gain":                             o.Gain,
		"decoder_phase_inversion_disabled": o.PhaseInversionDisabled,
	}
}
