package opus

// #include "ctl.h"
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

var errEncoderNotInitialized = errors.New("encoder is not initialized")

// Encoder owns a libopus OpusEncoder.
type Encoder struct {
	enc      *C.OpusEncoder
	channels int
	// owner is set for per-stream states handed out by a multistream
	// encoder, which keeps ownership of the memory.
	owner *MultistreamEncoder
}

// NewEncoder creates an encoder for interleaved PCM at sampleRate
// (8000, 12000, 16000, 24000 or 48000) with one or two channels.
func NewEncoder(sampleRate, channels int, app Application) (*Encoder, error) {
	var e Encoder
	var errCode C.int

	e.enc = C.opus_encoder_create(C.opus_int32(sampleRate), C.int(channels), C.int(app), &errCode)
	e.channels = channels

	if err := checkStatus(errCode); err != nil {
		return nil, fmt.Errorf("failed to create opus encoder: %w", err)
	}

	return &e, nil
}

// state returns nil once the encoder, or the multistream encoder owning it,
// has been destroyed.
func (e *Encoder) state() *C.OpusEncoder {
	if e.owner != nil && e.owner.enc == nil {
		return nil
	}
	return e.enc
}

// Channels returns the channel count the encoder was created with.
func (e *Encoder) Channels() int {
	return e.channels
}

// Encode encodes one frame of interleaved int16 PCM into data and returns
// the packet length in bytes. len(samples)/Channels() must be a valid Opus
// frame size for the encoder's sample rate.
func (e *Encoder) Encode(samples []int16, data []byte) (int, error) {
	if err := e.checkEncodeArgs(len(samples), len(data)); err != nil {
		return 0, err
	}

	ret := C.opus_encode(e.enc, (*C.opus_int16)(unsafe.Pointer(&samples[0])), C.int(len(samples)/e.channels),
		(*C.uchar)(&data[0]), C.opus_int32(len(data)))
	if err := checkStatus(ret); err != nil {
		return 0, err
	}

	return int(ret), nil
}

// EncodeFloat32 is Encode for float PCM in the [-1, 1] range.
func (e *Encoder) EncodeFloat32(samples []float32, data []byte) (int, error) {
	if err := e.checkEncodeArgs(len(samples), len(data)); err != nil {
		return 0, err
	}

	ret := C.opus_encode_float(e.enc, (*C.float)(&samples[0]), C.int(len(samples)/e.channels),
		(*C.uchar)(&data[0]), C.opus_int32(len(data)))
	if err := checkStatus(ret); err != nil {
		return 0, err
	}

	return int(ret), nil
}

func (e *Encoder) checkEncodeArgs(samples, data int) error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	if samples == 0 {
		return fmt.Errorf("samples should not be empty")
	}
	if data == 0 {
		return fmt.Errorf("data should not be empty")
	}
	if samples%e.channels != 0 {
		return fmt.Errorf("invalid samples length")
	}
	return nil
}

// Destroy frees the underlying libopus state. The encoder cannot be used
// afterwards.
func (e *Encoder) Destroy() error {
	if e.state() == nil {
		return errEncoderNotInitialized
	}
	if e.owner != nil {
		return fmt.Errorf("encoder is owned by a multistream encoder")
	}
	C.opus_encoder_destroy(e.enc)
	e.enc = nil
	return nil
}
