package opus

// #include "ctl.h"
import "C"

// SetComplexity sets the encoder's computational complexity, 0 to 10.
func (e *Encoder) SetComplexity(complexity int) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_complexity(e.enc, C.opus_int32(complexity)))
}

// Complexity returns the encoder's computational complexity.
func (e *Encoder) Complexity() (int, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_complexity(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// SetBitrate sets the target bitrate in bits per second. BitrateAuto and
// BitrateMax are accepted as well.
func (e *Encoder) SetBitrate(bitrate int) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_bitrate(e.enc, C.opus_int32(bitrate)))
}

// Bitrate returns the target bitrate in bits per second.
func (e *Encoder) Bitrate() (int, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_bitrate(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// SetVBR switches between variable (true) and constant bitrate.
func (e *Encoder) SetVBR(vbr bool) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_vbr(e.enc, boolToInt32(vbr)))
}

// VBR reports whether variable bitrate is enabled.
func (e *Encoder) VBR() (bool, error) {
	if e.state() == nil {
		return false, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_vbr(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

// SetVBRConstraint enables constrained VBR. It has no effect in CBR mode.
func (e *Encoder) SetVBRConstraint(constrained bool) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_vbr_constraint(e.enc, boolToInt32(constrained)))
}

func (e *Encoder) VBRConstraint() (bool, error) {
	if e.state() == nil {
		return false, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_vbr_constraint(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

// SetForceChannels forces mono (1) or stereo (2) output, or lets the encoder
// decide with ForceChannelsAuto.
func (e *Encoder) SetForceChannels(channels int) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_force_channels(e.enc, C.opus_int32(channels)))
}

func (e *Encoder) ForceChannels() (int, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_force_channels(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// SetMaxBandwidth caps the bandpass the encoder may pick.
func (e *Encoder) SetMaxBandwidth(bandwidth Bandwidth) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_max_bandwidth(e.enc, C.opus_int32(bandwidth)))
}

// MaxBandwidth returns the bandpass cap.
func (e *Encoder) MaxBandwidth() (Bandwidth, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_max_bandwidth(e.enc, &v)); err != nil {
		return 0, err
	}
	return Bandwidth(v), nil
}

// SetBandwidth forces the encoded bandpass. BandwidthAuto restores the
// automatic choice.
func (e *Encoder) SetBandwidth(bandwidth Bandwidth) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_bandwidth(e.enc, C.opus_int32(bandwidth)))
}

// SetSignal hints the type of content being encoded.
func (e *Encoder) SetSignal(signal Signal) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_signal(e.enc, C.opus_int32(signal)))
}

func (e *Encoder) Signal() (Signal, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_signal(e.enc, &v)); err != nil {
		return 0, err
	}
	return Signal(v), nil
}

// SetApplication changes the coding mode. It is only allowed before the
// first frame is encoded or after ResetState.
func (e *Encoder) SetApplication(app Application) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_application(e.enc, C.opus_int32(app)))
}

// Application returns the coding mode.
func (e *Encoder) Application() (Application, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_application(e.enc, &v)); err != nil {
		return 0, err
	}
	return Application(v), nil
}

// Lookahead returns the number of samples of delay the encoder adds.
func (e *Encoder) Lookahead() (int, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_lookahead(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// SetInbandFEC enables in-band forward error correction.
func (e *Encoder) SetInbandFEC(fec bool) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_inband_fec(e.enc, boolToInt32(fec)))
}

// InbandFEC reports whether in-band FEC is enabled.
func (e *Encoder) InbandFEC() (bool, error) {
	if e.state() == nil {
		return false, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_inband_fec(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

// SetPacketLossPerc sets the expected packet loss percentage, 0 to 100.
func (e *Encoder) SetPacketLossPerc(lossPerc int) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_packet_loss_perc(e.enc, C.opus_int32(lossPerc)))
}

func (e *Encoder) PacketLossPerc() (int, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_packet_loss_perc(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// SetDTX enables discontinuous transmission.
func (e *Encoder) SetDTX(dtx bool) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_dtx(e.enc, boolToInt32(dtx)))
}

// DTX reports whether discontinuous transmission is enabled.
func (e *Encoder) DTX() (bool, error) {
	if e.state() == nil {
		return false, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_dtx(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

// SetLSBDepth sets the signal depth of the input in bits, 8 to 24.
func (e *Encoder) SetLSBDepth(depth int) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_lsb_depth(e.enc, C.opus_int32(depth)))
}

func (e *Encoder) LSBDepth() (int, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_lsb_depth(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// SetExpertFrameDuration fixes the frame duration regardless of the size
// passed to Encode.
func (e *Encoder) SetExpertFrameDuration(duration FrameDuration) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_expert_frame_duration(e.enc, C.opus_int32(duration)))
}

func (e *Encoder) ExpertFrameDuration() (FrameDuration, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_expert_frame_duration(e.enc, &v)); err != nil {
		return 0, err
	}
	return FrameDuration(v), nil
}

// SetPredictionDisabled makes every frame decodable on its own.
func (e *Encoder) SetPredictionDisabled(disabled bool) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_set_prediction_disabled(e.enc, boolToInt32(disabled)))
}

func (e *Encoder) PredictionDisabled() (bool, error) {
	if e.state() == nil {
		return false, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_get_prediction_disabled(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

// Bandwidth returns the bandpass of the last encoded frame.
func (e *Encoder) Bandwidth() (Bandwidth, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_encoder_get_bandwidth(e.enc, &v)); err != nil {
		return 0, err
	}
	return Bandwidth(v), nil
}

// SampleRate returns the sample rate the encoder was created with.
func (e *Encoder) SampleRate() (int, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_encoder_get_sample_rate(e.enc, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// SetPhaseInversionDisabled disables the phase inversion used by intensity
// stereo, which improves mono downmixes.
func (e *Encoder) SetPhaseInversionDisabled(disabled bool) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_encoder_set_phase_inversion_disabled(e.enc, boolToInt32(disabled)))
}

func (e *Encoder) PhaseInversionDisabled() (bool, error) {
	if e.state() == nil {
		return false, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_encoder_get_phase_inversion_disabled(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

// InDTX reports whether the last encoded frame was a DTX frame.
func (e *Encoder) InDTX() (bool, error) {
	if e.state() == nil {
		return false, errEncoderNotInitialized
	}
	var v C.opus_int32
	if err := checkStatus(C.opus_encoder_get_in_dtx(e.enc, &v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

// ResetState resets the encoder to a freshly initialized state without
// reallocating it.
func (e *Encoder) ResetState() error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	return checkStatus(C.opus_encoder_reset_state(e.enc))
}

// FinalRange returns the final state of the range coder after the last
// frame, which both sides of a link can compare to detect corruption.
func (e *Encoder) FinalRange() (uint32, error) {
	if e.state() == nil {
		return 0, errEncoderNotInitialized
	}
	var v C.opus_uint32
	if err := checkStatus(C.opus_encoder_get_final_range(e.enc, &v)); err != nil {
		return 0, err
	}
	return uint32(v), nil
}
