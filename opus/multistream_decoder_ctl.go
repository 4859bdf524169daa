package opus

// #include "ctl.h"
import "C"

// Requests on a multistream decoder are applied to, or read back from, the
// streams it owns. Status codes are passed through as for the single
// stream decoder.

func (d *MultistreamDecoder) SetGain(gain int) error {
	if d.dec == nil {
		return errMSDecoderNotInitialized
	}
	return checkStatus(C.opus_ms_decoder_set_gain(d.dec, C.opus_int32(gain)))
}

func (d *MultistreamDecoder) Gain() (int, error) {
	if d.dec == nil {
		return 0, errMSDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_decoder_get_gain(d.dec, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (d *MultistreamDecoder) LastPacketDuration() (int, error) {
	if d.dec == nil {
		return 0, errMSDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_decoder_get_last_packet_duration(d.dec, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (d *MultistreamDecoder) Pitch() (int, error) {
	if d.dec == nil {
		return 0, errMSDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_decoder_get_pitch(d.dec, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (d *MultistreamDecoder) Bandwidth() (Bandwidth, error) {
	if d.dec == nil {
		return 0, errMSDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_decoder_get_bandwidth(d.dec, &v)); err != nil {
		return 0, err
	}
	return Bandwidth(v), nil
}

func (d *MultistreamDecoder) SampleRate() (int, error) {
	if d.dec == nil {
		return 0, errMSDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_decoder_get_sample_rate(d.dec, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (d *MultistreamDecoder) SetPhaseInversionDisabled(disabled bool) error {
	if d.dec == nil {
		return errMSDecoderNotInitialized
	}
	return checkStatus(C.opus_ms_decoder_set_phase_inversion_disabled(d.dec, boolToInt32(disabled)))
}

func (d *MultistreamDecoder) PhaseInversionDisabled() (bool, error) {
	if d.dec == nil {
		return false, errMSDecoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_decoder_get_phase_inversion_disabled(d.dec, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

// ResetState resets the decoder and all its streams to a freshly initialized state without
// reallocating it.
func (d *MultistreamDecoder) ResetState() error {
	if d.dec == nil {
		return errMSDecoderNotInitialized
	}
	return checkStatus(C.opus_ms_decoder_reset_state(d.dec))
}

// FinalRange returns the final state of the range coder after the last
// frame, which both sides of a link can compare to detect corruption.
func (d *MultistreamDecoder) FinalRange() (uint32, error) {
	if d.dec == nil {
		return 0, errMSDecoderNotInitialized
	}
	var v C.opus_uint32
	if err := checkStatus(C.opus_ms_decoder_get_final_range(d.dec, &v)); err != nil {
		return 0, err
	}
	return uint32(v), nil
}
