package config

import (
	"fmt"
	"os"

	"github.com/mattermost/calls-opus/opus"
)

const (
	ComplexityDefault = 9
	LSBDepthDefault   = 24
)

// EncoderOptions holds the encoder control settings. Bitrate, MaxBandwidth,
// Signal and LSBDepth keep the libopus default when left at zero, Complexity
// when nil.
type EncoderOptions struct {
	Bitrate                int
	Complexity             *int
	CBR                    bool
	UnconstrainedVBR       bool
	MaxBandwidth           opus.Bandwidth
	Signal                 opus.Signal
	InbandFEC              bool
	PacketLossPerc         int
	DTX                    bool
	LSBDepth               int
	PredictionDisabled     bool
	PhaseInversionDisabled bool
}

func (o *EncoderOptions) IsValid() error {
	if o.Bitrate != 0 && o.Bitrate != opus.BitrateAuto && o.Bitrate != opus.BitrateMax &&
		(o.Bitrate < 500 || o.Bitrate > 512000) {
		return fmt.Errorf("Bitrate should be in the range [500, 512000]")
	}

	if o.Complexity != nil && (*o.Complexity < 0 || *o.Complexity > 10) {
		return fmt.Errorf("Complexity should be in the range [0, 10]")
	}

	switch o.MaxBandwidth {
	case 0, opus.Narrowband, opus.Mediumband, opus.Wideband, opus.SuperWideband, opus.Fullband:
	default:
		return fmt.Errorf("MaxBandwidth value is not valid")
	}

	switch o.Signal {
	case 0, opus.SignalAuto, opus.SignalVoice, opus.SignalMusic:
	default:
		return fmt.Errorf("Signal value is not valid")
	}

	if o.PacketLossPerc < 0 || o.PacketLossPerc > 100 {
		return fmt.Errorf("PacketLossPerc should be in the range [0, 100]")
	}

	if o.LSBDepth != 0 && (o.LSBDepth < 8 || o.LSBDepth > 24) {
		return fmt.Errorf("LSBDepth should be in the range [8, 24]")
	}

	return nil
}

func (o *EncoderOptions) IsEmpty() bool {
	return o == nil || *o == EncoderOptions{}
}

// SetDefaults fills every unset field, leaving explicit values alone.
func (o *EncoderOptions) SetDefaults() {
	if o.Bitrate == 0 {
		o.Bitrate = opus.BitrateAuto
	}
	if o.Complexity == nil {
		o.Complexity = IntPtr(ComplexityDefault)
	}
	if o.MaxBandwidth == 0 {
		o.MaxBandwidth = opus.Fullband
	}
	if o.Signal == 0 {
		o.Signal = opus.SignalAuto
	}
	if o.LSBDepth == 0 {
		o.LSBDepth = LSBDepthDefault
	}
}

// Apply pushes the options to enc through its control requests.
func (o *EncoderOptions) Apply(enc *opus.Encoder) error {
	if o.Bitrate != 0 {
		if err := enc.SetBitrate(o.Bitrate); err != nil {
			return fmt.Errorf("failed to set bitrate: %w", err)
		}
	}

	if o.Complexity != nil {
		if err := enc.SetComplexity(*o.Complexity); err != nil {
			return fmt.Errorf("failed to set complexity: %w", err)
		}
	}

	if err := enc.SetVBR(!o.CBR); err != nil {
		return fmt.Errorf("failed to set vbr: %w", err)
	}

	if err := enc.SetVBRConstraint(!o.UnconstrainedVBR); err != nil {
		return fmt.Errorf("failed to set vbr constraint: %w", err)
	}

	if o.MaxBandwidth != 0 {
		if err := enc.SetMaxBandwidth(o.MaxBandwidth); err != nil {
			return fmt.Errorf("failed to set max bandwidth: %w", err)
		}
	}

	if o.Signal != 0 {
		if err := enc.SetSignal(o.Signal); err != nil {
			return fmt.Errorf("failed to set signal: %w", err)
		}
	}

	if err := enc.SetInbandFEC(o.InbandFEC); err != nil {
		return fmt.Errorf("failed to set inband fec: %w", err)
	}

	if err := enc.SetPacketLossPerc(o.PacketLossPerc); err != nil {
		return fmt.Errorf("failed to set packet loss percentage: %w", err)
	}

	if err := enc.SetDTX(o.DTX); err != nil {
		return fmt.Errorf("failed to set dtx: %w", err)
	}

	if o.LSBDepth != 0 {
		if err := enc.SetLSBDepth(o.LSBDepth); err != nil {
			return fmt.Errorf("failed to set lsb depth: %w", err)
		}
	}

	if err := enc.SetPredictionDisabled(o.PredictionDisabled); err != nil {
		return fmt.Errorf("failed to set prediction disabled: %w", err)
	}

	if err := enc.SetPhaseInversionDisabled(o.PhaseInversionDisabled); err != nil {
		return fmt.Errorf("failed to set phase inversion disabled: %w", err)
	}

	return nil
}

func (o *EncoderOptions) FromEnv() error {
	var err error

	if o.Bitrate, err = intFromEnv("OPUS_BITRATE"); err != nil {
		return err
	}
	if o.Complexity, err = intPtrFromEnv("OPUS_COMPLEXITY"); err != nil {
		return err
	}
	if o.CBR, err = boolFromEnv("OPUS_CBR"); err != nil {
		return err
	}
	if o.UnconstrainedVBR, err = boolFromEnv("OPUS_UNCONSTRAINED_VBR"); err != nil {
		return err
	}
	if val := os.Getenv("OPUS_MAX_BANDWIDTH"); val != "" {
		if o.MaxBandwidth, err = opus.ParseBandwidth(val); err != nil {
			return fmt.Errorf("failed to parse OPUS_MAX_BANDWIDTH: %w", err)
		}
	}
	if val := os.Getenv("OPUS_SIGNAL"); val != "" {
		if o.Signal, err = opus.ParseSignal(val); err != nil {
			return fmt.Errorf("failed to parse OPUS_SIGNAL: %w", err)
		}
	}
	if o.InbandFEC, err = boolFromEnv("OPUS_INBAND_FEC"); err != nil {
		return err
	}
	if o.PacketLossPerc, err = intFromEnv("OPUS_PACKET_LOSS_PERC"); err != nil {
		return err
	}
	if o.DTX, err = boolFromEnv("OPUS_DTX"); err != nil {
		return err
	}
	if o.LSBDepth, err = intFromEnv("OPUS_LSB_DEPTH"); err != nil {
		return err
	}
	if o.PredictionDisabled, err = boolFromEnv("OPUS_PREDICTION_DISABLED"); err != nil {
		return err
	}
	if o.PhaseInversionDisabled, err = boolFromEnv("OPUS_PHASE_INVERSION_DISABLED"); err != nil {
		return err
	}

	return nil
}

func (o *EncoderOptions) ToEnv() []string {
	vars := []string{
		fmt.Sprintf("OPUS_BITRATE=%d", o.Bitrate),
	}
	if o.Complexity != nil {
		vars = append(vars, fmt.Sprintf("OPUS_COMPLEXITY=%d", *o.Complexity))
	}
	vars = append(vars,
		fmt.Sprintf("OPUS_CBR=%t", o.CBR),
		fmt.Sprintf("OPUS_UNCONSTRAINED_VBR=%t", o.UnconstrainedVBR),
	)
	if o.MaxBandwidth != 0 {
		vars = append(vars, fmt.Sprintf("OPUS_MAX_BANDWIDTH=%s", o.MaxBandwidth))
	}
	if o.Signal != 0 {
		vars = append(vars, fmt.Sprintf("OPUS_SIGNAL=%s", o.Signal))
	}
	return append(vars,
		fmt.Sprintf("OPUS_INBAND_FEC=%t", o.InbandFEC),
		fmt.Sprintf("OPUS_PACKET_LOSS_PERC=%d", o.PacketLossPerc),
		fmt.Sprintf("OPUS_DTX=%t", o.DTX),
		fmt.Sprintf("OPUS_LSB_DEPTH=%d", o.LSBDepth),
		fmt.Sprintf("OPUS_PREDICTION_DISABLED=%t", o.PredictionDisabled),
		fmt.Sprintf("OPUS_PHASE_INVERSION_DISABLED=%t", o.PhaseInversionDisabled),
	)
}

func (o *EncoderOptions) FromMap(m map[string]any) {
	o.Bitrate = intFromMap(m, "bitrate")
	o.Complexity = intPtrFromMap(m, "complexity")
	o.CBR, _ = m["cbr"].(bool)
	o.UnconstrainedVBR, _ = m["unconstrained_vbr"].(bool)
	if bw, ok := m["max_bandwidth"].(string); ok {
		o.MaxBandwidth, _ = opus.ParseBandwidth(bw)
	}
	if s, ok := m["signal"].(string); ok {
		o.Signal, _ = opus.ParseSignal(s)
	}
	o.InbandFEC, _ = m["inband_fec"].(bool)
	o.PacketLossPerc = intFromMap(m, "packet_loss_perc")
	o.DTX, _ = m["dtx"].(bool)
	o.LSBDepth = intFromMap(m, "lsb_depth")
	o.PredictionDisabled, _ = m["prediction_disabled"].(bool)
	o.PhaseInversionDisabled, _ = m["phase_inversion_disabled"].(bool)
}

func (o *EncoderOptions) ToMap() map[string]any {
	m := map[string]any{
		"bitrate":                  o.Bitrate,
		"cbr":                      o.CBR,
		"unconstrained_vbr":        o.UnconstrainedVBR,
		"inband_fec":               o.InbandFEC,
		"packet_loss_perc":         o.PacketLossPerc,
		"dtx":                      o.DTX,
		"lsb_depth":                o.LSBDepth,
		"prediction_disabled":      o.PredictionDisabled,
		"phase_inversion_disabled": o.PhaseInversionDisabled,
	}
	if o.Complexity != nil {
		m["complexity"] = *o.Complexity
	}
	if o.MaxBandwidth != 0 {
		m["max_bandwidth"] = o.MaxBandwidth.String()
	}
	if o.Signal != 0 {
		m["signal"] = o.Signal.String()
	}
	return m
}
