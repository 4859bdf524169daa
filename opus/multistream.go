package opus

// #include "ctl.h"
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

var (
	errMSEncoderNotInitialized = errors.New("multistream encoder is not initialized")
	errMSDecoderNotInitialized = errors.New("multistream decoder is not initialized")
)

// Layout describes how input channels map onto coded streams. The first
// CoupledStreams streams are stereo, the rest mono. Mapping[i] is the
// decoded channel index feeding output channel i, 255 meaning silence.
type Layout struct {
	Streams        int
	CoupledStreams int
	Mapping        []byte
}

func (l Layout) streamChannels(stream int) int {
	if stream < l.CoupledStreams {
		return 2
	}
	return 1
}

func (l Layout) isValid(channels int) error {
	if len(l.Mapping) != channels {
		return fmt.Errorf("mapping should have %d entries, got %d", channels, len(l.Mapping))
	}
	if l.Streams < 1 {
		return fmt.Errorf("streams should be positive")
	}
	return nil
}

// MultistreamEncoder owns a libopus OpusMSEncoder.
type MultistreamEncoder struct {
	enc      *C.OpusMSEncoder
	channels int
	layout   Layout
}

// NewMultistreamEncoder creates an encoder for channels interleaved input
// channels packed into layout.Streams streams.
func NewMultistreamEncoder(sampleRate, channels int, layout Layout, app Application) (*MultistreamEncoder, error) {
	if err := layout.isValid(channels); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	var errCode C.int
	st := C.opus_multistream_encoder_create(C.opus_int32(sampleRate), C.int(channels),
		C.int(layout.Streams), C.int(layout.CoupledStreams),
		(*C.uchar)(&layout.Mapping[0]), C.int(app), &errCode)
	if err := checkStatus(errCode); err != nil {
		return nil, fmt.Errorf("failed to create opus multistream encoder: %w", err)
	}

	return &MultistreamEncoder{
		enc:      st,
		channels: channels,
		layout:   layout,
	}, nil
}

// NewSurroundEncoder creates a multistream encoder with the standard layout
// for the given channel mapping family (0 for mono/stereo, 1 for Vorbis
// surround orders up to 8 channels) and returns the layout libopus chose.
func NewSurroundEncoder(sampleRate, channels, family int, app Application) (*MultistreamEncoder, error) {
	if channels < 1 || channels > 255 {
		return nil, fmt.Errorf("invalid channels count %d", channels)
	}

	var errCode, streams, coupled C.int
	mapping := make([]byte, channels)
	st := C.opus_multistream_surround_encoder_create(C.opus_int32(sampleRate), C.int(channels), C.int(family),
		&streams, &coupled, (*C.uchar)(&mapping[0]), C.int(app), &errCode)
	if err := checkStatus(errCode); err != nil {
		return nil, fmt.Errorf("failed to create opus surround encoder: %w", err)
	}

	return &MultistreamEncoder{
		enc:      st,
		channels: channels,
		layout: Layout{
			Streams:        int(streams),
			CoupledStreams: int(coupled),
			Mapping:        mapping,
		},
	}, nil
}

func (e *MultistreamEncoder) Channels() int {
	return e.channels
}

// Layout returns a copy of the stream layout.
func (e *MultistreamEncoder) Layout() Layout {
	l := e.layout
	l.Mapping = append([]byte(nil), e.layout.Mapping...)
	return l
}

// Encode encodes one frame of interleaved int16 PCM into a multistream
// packet and returns its length.
func (e *MultistreamEncoder) Encode(samples []int16, data []byte) (int, error) {
	if err := e.checkEncodeArgs(len(samples), len(data)); err != nil {
		return 0, err
	}

	ret := C.opus_multistream_encode(e.enc, (*C.opus_int16)(unsafe.Pointer(&samples[0])), C.int(len(samples)/e.channels),
		(*C.uchar)(&data[0]), C.opus_int32(len(data)))
	if err := checkStatus(ret); err != nil {
		return 0, err
	}

	return int(ret), nil
}

func (e *MultistreamEncoder) EncodeFloat32(samples []float32, data []byte) (int, error) {
	if err := e.checkEncodeArgs(len(samples), len(data)); err != nil {
		return 0, err
	}

	ret := C.opus_multistream_encode_float(e.enc, (*C.float)(&samples[0]), C.int(len(samples)/e.channels),
		(*C.uchar)(&data[0]), C.opus_int32(len(data)))
	if err := checkStatus(ret); err != nil {
		return 0, err
	}

	return int(ret), nil
}

func (e *MultistreamEncoder) checkEncodeArgs(samples, data int) error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
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

// EncoderState returns the encoder of a single stream. The returned Encoder
// stays owned by e: once e is destroyed every call on it fails, and its own
// Destroy always fails.
func (e *MultistreamEncoder) EncoderState(stream int) (*Encoder, error) {
	if e.enc == nil {
		return nil, errMSEncoderNotInitialized
	}

	var st *C.OpusEncoder
	if err := checkStatus(C.opus_ms_get_encoder_state(e.enc, C.opus_int32(stream), &st)); err != nil {
		return nil, err
	}

	return &Encoder{
		enc:      st,
		channels: e.layout.streamChannels(stream),
		owner:    e,
	}, nil
}

func (e *MultistreamEncoder) Destroy() error {
	if e.enc == nil {
		return errMSEncoderNotInitialized
	}
	C.opus_multistream_encoder_destroy(e.enc)
	e.enc = nil
	return nil
}

// MultistreamDecoder owns a libopus OpusMSDecoder.
type MultistreamDecoder struct {
	dec      *C.OpusMSDecoder
	channels int
	layout   Layout
}

// NewMultistreamDecoder creates a decoder for packets produced with the same
// layout by a MultistreamEncoder.
func NewMultistreamDecoder(sampleRate, channels int, layout Layout) (*MultistreamDecoder, error) {
	if err := layout.isValid(channels); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	var errCode C.int
	st := C.opus_multistream_decoder_create(C.opus_int32(sampleRate), C.int(channels),
		C.int(layout.Streams), C.int(layout.CoupledStreams),
		(*C.uchar)(&layout.Mapping[0]), &errCode)
	if err := checkStatus(errCode); err != nil {
		return nil, fmt.Errorf("failed to create opus multistream decoder: %w", err)
	}

	return &MultistreamDecoder{
		dec:      st,
		channels: channels,
		layout:   layout,
	}, nil
}

func (d *MultistreamDecoder) Channels() int {
	return d.channels
}

// Decode decodes a multistream packet into interleaved samples and returns
// the number of samples per channel. A nil packet runs loss concealment.
func (d *MultistreamDecoder) Decode(data []byte, samples []int16) (int, error) {
	if err := d.checkDecodeArgs(len(samples)); err != nil {
		return 0, err
	}

	var ptr *C.uchar
	if len(data) > 0 {
		ptr = (*C.uchar)(&data[0])
	}

	ret := C.opus_multistream_decode(d.dec, ptr, C.opus_int32(len(data)),
		(*C.opus_int16)(unsafe.Pointer(&samples[0])), C.int(len(samples)/d.channels), 0)
	if err := checkStatus(ret); err != nil {
		return 0, err
	}

	return int(ret), nil
}

func (d *MultistreamDecoder) DecodeFloat32(data []byte, samples []float32) (int, error) {
	if err := d.checkDecodeArgs(len(samples)); err != nil {
		return 0, err
	}

	var ptr *C.uchar
	if len(data) > 0 {
		ptr = (*C.uchar)(&data[0])
	}

	ret := C.opus_multistream_decode_float(d.dec, ptr, C.opus_int32(len(data)),
		(*C.float)(&samples[0]), C.int(len(samples)/d.channels), 0)
	if err := checkStatus(ret); err != nil {
		return 0, err
	}

	return int(ret), nil
}

func (d *MultistreamDecoder) checkDecodeArgs(samples int) error {
	if d.dec == nil {
		return errMSDecoderNotInitialized
	}
	if samples == 0 {
		return fmt.Errorf("samples should not be empty")
	}
	if samples%d.channels != 0 {
		return fmt.Errorf("invalid samples length")
	}
	return nil
}

// DecoderState returns the decoder of a single stream, owned by d.
func (d *MultistreamDecoder) DecoderState(stream int) (*Decoder, error) {
	if d.dec == nil {
		return nil, errMSDecoderNotInitialized
	}

	var st *C.OpusDecoder
	if err := checkStatus(C.opus_ms_get_decoder_state(d.dec, C.opus_int32(stream), &st)); err != nil {
		return nil, err
	}

	return &Decoder{
		dec:      st,
		channels: d.layout.streamChannels(stream),
		owner:    d,
	}, nil
}

func (d *MultistreamDecoder) Destroy() error {
	if d.dec == nil {
		return errMSDecoderNotInitialized
	}
	C.opus_multistream_decoder_destroy(d.dec)
	d.dec = nil
	return nil
}
