package opus

// #include "ctl.h"
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

var errDecoderNotInitialized = errors.New("decoder is not initialized")

// Decoder owns a libopus OpusDecoder.
type Decoder struct {
	dec      *C.OpusDecoder
	channels int
	// owner is set for per-stream states of a multistream decoder.
	owner *MultistreamDecoder
}

// NewDecoder creates a decoder producing interleaved PCM at sampleRate with
// one or two channels.
func NewDecoder(sampleRate, channels int) (*Decoder, error) {
	var d Decoder
	var errCode C.int

	d.dec = C.opus_decoder_create(C.opus_int32(sampleRate), C.int(channels), &errCode)
	d.channels = channels

	if err := checkStatus(errCode); err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}

	return &d, nil
}

func (d *Decoder) state() *C.OpusDecoder {
	if d.owner != nil && d.owner.dec == nil {
		return nil
	}
	return d.dec
}

func (d *Decoder) Channels() int {
	return d.channels
}

// Decode decodes one packet into samples and returns the number of samples
// per channel written. samples must hold at least one full frame for every
// channel.
func (d *Decoder) Decode(data []byte, samples []int16) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("data should not be empty")
	}
	return d.decode(data, samples, false)
}

// DecodeFloat32 is Decode with float output.
func (d *Decoder) DecodeFloat32(data []byte, samples []float32) (int, error) {
	if d.state() == nil {
		return 0, errDecoderNotInitialized
	}

	if len(data) == 0 {
		return 0, fmt.Errorf("data should not be empty")
	}

	if len(samples) == 0 {
		return 0, fmt.Errorf("samples should not be empty")
	}

	if len(samples)%d.channels != 0 {
		return 0, fmt.Errorf("invalid samples length")
	}

	ret := C.opus_decode_float(d.dec, (*C.uchar)(&data[0]), C.opus_int32(len(data)),
		(*C.float)(&samples[0]), C.int(len(samples)/d.channels), 0)
	if err := checkStatus(ret); err != nil {
		return 0, err
	}

	return int(ret), nil
}

// DecodeFEC recovers the frame preceding data from the in-band forward error
// correction data data carries. len(samples)/Channels() must be exactly the
// duration of the lost audio.
func (d *Decoder) DecodeFEC(data []byte, samples []int16) error {
	if len(data) == 0 {
		return fmt.Errorf("data should not be empty")
	}
	_, err := d.decode(data, samples, true)
	return err
}

// DecodePLC fills samples with concealment audio for a lost packet.
// len(samples)/Channels() must be a multiple of 2.5ms at the decoder rate.
func (d *Decoder) DecodePLC(samples []int16) error {
	_, err := d.decode(nil, samples, false)
	return err
}

func (d *Decoder) decode(data []byte, samples []int16, fec bool) (int, error) {
	if d.state() == nil {
		return 0, errDecoderNotInitialized
	}

	if len(samples) == 0 {
		return 0, fmt.Errorf("samples should not be empty")
	}

	if len(samples)%d.channels != 0 {
		return 0, fmt.Errorf("invalid samples length")
	}

	var ptr *C.uchar
	if len(data) > 0 {
		ptr = (*C.uchar)(&data[0])
	}

	decodeFEC := C.int(0)
	if fec {
		decodeFEC = 1
	}

	ret := C.opus_decode(d.dec, ptr, C.opus_int32(len(data)),
		(*C.opus_int16)(unsafe.Pointer(&samples[0])), C.int(len(samples)/d.channels), decodeFEC)
	if err := checkStatus(ret); err != nil {
		return 0, err
	}

	return int(ret), nil
}

func (d *Decoder) Destroy() error {
	if d.state() == nil {
		return errDecoderNotInitialized
	}
	if d.owner != nil {
		return fmt.Errorf("decoder is owned by a multistream decoder")
	}
	C.opus_decoder_destroy(d.dec)
	d.dec = nil
	return nil
}
