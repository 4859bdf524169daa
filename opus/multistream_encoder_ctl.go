package opus

// #include "ctl.h"
import "C"

// Requests on a multistream encoder are applied to, or read back from, the
// streams it owns. Status codes are passed through as for the single
// stream encoder.

func (e *MultistreamEncoder) SetComplexity(complexity int) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_complexity(e.enc, C.opus_int32(complexity)))
}

func (e *MultistreamEncoder) Complexity() (int, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_complexity(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (e *MultistreamEncoder) SetBitrate(bitrate int) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_bitrate(e.enc, C.opus_int32(bitrate)))
}

func (e *MultistreamEncoder) Bitrate() (int, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_bitrate(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (e *MultistreamEncoder) SetVBR(vbr bool) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_vbr(e.enc, boolToInt32(vbr)))
}

func (e *MultistreamEncoder) VBR() (bool, error) {
	if e.enc == nil {
		return false, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_vbr(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

func (e *MultistreamEncoder) SetVBRConstraint(constrained bool) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_vbr_constraint(e.enc, boolToInt32(constrained)))
}

func (e *MultistreamEncoder) VBRConstraint() (bool, error) {
	if e.enc == nil {
		return false, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_vbr_constraint(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

func (e *MultistreamEncoder) SetForceChannels(channels int) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_force_channels(e.enc, C.opus_int32(channels)))
}

func (e *MultistreamEncoder) ForceChannels() (int, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_force_channels(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (e *MultistreamEncoder) SetMaxBandwidth(bandwidth Bandwidth) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_max_bandwidth(e.enc, C.opus_int32(bandwidth)))
}

func (e *MultistreamEncoder) MaxBandwidth() (Bandwidth, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_max_bandwidth(e.enc, &v)); err != nil {
		return 0, err
	}
	return Bandwidth(v), nil
}

func (e *MultistreamEncoder) SetBandwidth(bandwidth Bandwidth) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_bandwidth(e.enc, C.opus_int32(bandwidth)))
}

func (e *MultistreamEncoder) SetSignal(signal Signal) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_signal(e.enc, C.opus_int32(signal)))
}

func (e *MultistreamEncoder) Signal() (Signal, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_signal(e.enc, &v)); err != nil {
		return 0, err
	}
	return Signal(v), nil
}

func (e *MultistreamEncoder) SetApplication(app Application) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_application(e.enc, C.opus_int32(app)))
}

func (e *MultistreamEncoder) Application() (Application, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_application(e.enc, &v)); err != nil {
		return 0, err
	}
	return Application(v), nil
}

func (e *MultistreamEncoder) Lookahead() (int, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_lookahead(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (e *MultistreamEncoder) SetInbandFEC(fec bool) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_inband_fec(e.enc, boolToInt32(fec)))
}

func (e *MultistreamEncoder) InbandFEC() (bool, error) {
	if e.enc == nil {
		return false, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_inband_fec(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

func (e *MultistreamEncoder) SetPacketLossPerc(lossPerc int) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_packet_loss_perc(e.enc, C.opus_int32(lossPerc)))
}

func (e *MultistreamEncoder) PacketLossPerc() (int, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_packet_loss_perc(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (e *MultistreamEncoder) SetDTX(dtx bool) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_dtx(e.enc, boolToInt32(dtx)))
}

func (e *MultistreamEncoder) DTX() (bool, error) {
	if e.enc == nil {
		return false, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_dtx(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

func (e *MultistreamEncoder) SetLSBDepth(depth int) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_lsb_depth(e.enc, C.opus_int32(depth)))
}

func (e *MultistreamEncoder) LSBDepth() (int, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_lsb_depth(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (e *MultistreamEncoder) SetExpertFrameDuration(duration FrameDuration) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_expert_frame_duration(e.enc, C.opus_int32(duration)))
}

func (e *MultistreamEncoder) ExpertFrameDuration() (FrameDuration, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_expert_frame_duration(e.enc, &v)); err != nil {
		return 0, err
	}
	return FrameDuration(v), nil
}

func (e *MultistreamEncoder) SetPredictionDisabled(disabled bool) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_set_prediction_disabled(e.enc, boolToInt32(disabled)))
}

func (e *MultistreamEncoder) PredictionDisabled() (bool, error) {
	if e.enc == nil {
		return false, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_get_prediction_disabled(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

func (e *MultistreamEncoder) Bandwidth() (Bandwidth, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_encoder_get_bandwidth(e.enc, &v)); err != nil {
		return 0, err
	}
	return Bandwidth(v), nil
}

func (e *MultistreamEncoder) SampleRate() (int, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_encoder_get_sample_rate(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

func (e *MultistreamEncoder) SetPhaseInversionDisabled(disabled bool) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_encoder_set_phase_inversion_disabled(e.enc, boolToInt32(disabled)))
}

func (e *MultistreamEncoder) PhaseInversionDisabled() (bool, error) {
	if e.enc == nil {
		return false, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_encoder_get_phase_inversion_disabled(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

func (e *MultistreamEncoder) InDTX() (bool, error) {
	if e.enc == nil {
		return false, errMSEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_ms_encoder_get_in_dtx(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

// ResetState resets the encoder and all its streams to a freshly initialized state without
// reallocating it.
func (e *MultistreamEncoder) ResetState() error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	return checkStatus(C.opus_ms_encoder_reset_state(e.enc))
}

// FinalRange returns the final state of the range coder after the last
// frame, which both sides of a link can compare to detect corruption.
func (e *MultistreamEncoder) FinalRange() (uint32, error) {
	if e.enc == nil {
		return 0, errMSEncoderNotInitialized
	}
	var v C.opus_uint32
	if err := checkStatus(C.opus_ms_encoder_get_final_range(e.enc, &v)); err != nil {
		return 0, err
	}
	return uint32(v), nil
}
