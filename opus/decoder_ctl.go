package opus

// #include "ctl.h"
import "C"

// SetGain scales the decoded output by gain/256 dB, -32768 to 32767.
func (d *Decoder) SetGain(gain int) error {
	if d.state() == nil {
		return errDecoderNotInitialized
	}
	return checkStatus(C.opus_decoder_set_gain(d.dec, C.opus_int32(gain)))
}

// Gain returns the output gain in Q8 dB.
func (d *Decoder) Gain() (int, error) {
	if d.state() == nil {
		return 0, errDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_decoder_get_gain(d.dec, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// LastPacketDuration returns the duration in samples per channel of the last
// decoded or concealed packet.
func (d *Decoder) LastPacketDuration() (int, error) {
	if d.state() == nil {
		return 0, errDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_decoder_get_last_packet_duration(d.dec, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// Pitch returns the pitch period of the last decoded frame, or zero when
// it is not available.
func (d *Decoder) Pitch() (int, error) {
	if d.state() == nil {
		return 0, errDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_decoder_get_pitch(d.dec, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// Bandwidth returns the bandpass of the last decoded packet.
func (d *Decoder) Bandwidth() (Bandwidth, error) {
	if d.state() == nil {
		return 0, errDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_decoder_get_bandwidth(d.dec, &v)); err != nil {
		return 0, err
	}
	return Bandwidth(v), nil
}

func (d *Decoder) SampleRate() (int, error) {
	if d.state() == nil {
		return 0, errDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_decoder_get_sample_rate(d.dec, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (d *Decoder) SetPhaseInversionDisabled(disabled bool) error {
	if d.state() == nil {
		return errDecoderNotInitialized
	}
	return checkStatus(C.opus_decoder_set_phase_inversion_disabled(d.dec, boolToInt32(disabled)))
}

func (d *Decoder) PhaseInversionDisabled() (bool, error) {
	if d.state() == nil {
		return false, errDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_decoder_get_phase_inversion_disabled(d.dec, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

// ResetState resets the decoder to a freshly initialized state without
// reallocating it.
func (d *Decoder) ResetState() error {
	if d.state() == nil {
		return errDecoderNotInitialized
	}
	return checkStatus(C.opus_decoder_reset_state(d.dec))
}

// FinalRange returns the final state of the range coder after the last
// frame, which both sides of a link can compare to detect corruption.
func (d *Decoder) FinalRange() (uint32, error) {
	if d.state() == nil {
		return 0, errDecoderNotInitialized
	}
	var v C.opus_uint32
	if err := checkStatus(C.opus_decoder_get_final_range(d.dec, &v)); err != nil {
		return 0, err
	}
	return uint32(v), nil
}
