package stream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jonas747/ogg"
	"github.com/pion/interceptor"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4/pkg/media/oggreader"
	"github.com/pion/webrtc/v4/pkg/media/oggwriter"
)

// WritePackets stores every packet from pkts in w until pkts is closed, then
// closes w. pkts is drained even after a write failure and the first error is
// returned.
func WritePackets(w *oggwriter.OggWriter, pkts <-chan *rtp.Packet) (int, error) {
	var written int
	var writeErr error
	for pkt := range pkts {
		if writeErr != nil {
			continue
		}
		if err := w.WriteRTP(pkt); err != nil {
			writeErr = fmt.Errorf("failed to write packet: %w", err)
			continue
		}
		written++
	}

	if err := w.Close(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("failed to close ogg writer: %w", err)
	}

	return written, writeErr
}

const (
	opusHeadSignature = "OpusHead"
	opusTagsSignature = "OpusTags"
	opusHeadMinLength = 19
)

// OggReader returns the Opus packets of an Ogg stream, following packet
// boundaries across and within pages.
type OggReader struct {
	decoder *ogg.PacketDecoder
	header  *oggreader.OggHeader
}

// NewOggReader reads the OpusHead and OpusTags header packets of in.
func NewOggReader(in io.Reader) (*OggReader, error) {
	r := &OggReader{
		decoder: ogg.NewPacketDecoder(ogg.NewDecoder(in)),
	}

	head, _, err := r.decoder.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to read ogg id header: %w", err)
	}
	if r.header, err = parseOpusHead(head); err != nil {
		return nil, err
	}

	tags, _, err := r.decoder.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to read ogg comment header: %w", err)
	}
	if !bytes.HasPrefix(tags, []byte(opusTagsSignature)) {
		return nil, errors.New("bad comment header signature")
	}

	return r, nil
}

func parseOpusHead(data []byte) (*oggreader.OggHeader, error) {
	if len(data) < opusHeadMinLength {
		return nil, errors.New("id header is too short")
	}
	if !bytes.HasPrefix(data, []byte(opusHeadSignature)) {
		return nil, errors.New("bad id header signature")
	}

	return &oggreader.OggHeader{
		Version:    data[8],
		Channels:   data[9],
		PreSkip:    binary.LittleEndian.Uint16(data[10:12]),
		SampleRate: binary.LittleEndian.Uint32(data[12:16]),
		OutputGain: binary.LittleEndian.Uint16(data[16:18]),
		ChannelMap: data[18],
	}, nil
}

// Header returns the OpusHead fields of the stream.
func (r *OggReader) Header() *oggreader.OggHeader {
	return r.header
}

// ReadPacket returns the next audio packet. io.EOF is returned at the end of
// the stream.
func (r *OggReader) ReadPacket() ([]byte, error) {
	for {
		packet, _, err := r.decoder.Decode()
		if err != nil {
			return nil, err
		}
		if len(packet) == 0 {
			continue
		}

		// The decoder reuses its page buffer.
		return append([]byte(nil), packet...), nil
	}
}

// OggTrack replays the packets of an Ogg stream as an RTP track.
type OggTrack struct {
	id         string
	reader     *OggReader
	packetizer *Packetizer
	pending    []*rtp.Packet
}

// NewOggTrack returns a track reading from r. frameDuration sets the RTP
// timestamp increment between packets.
func NewOggTrack(id string, r *OggReader, frameDuration time.Duration) *OggTrack {
	return &OggTrack{
		id:         id,
		reader:     r,
		packetizer: NewPacketizer(frameDuration),
	}
}

func (t *OggTrack) ID() string {
	return t.id
}

func (t *OggTrack) ReadRTP() (*rtp.Packet, interceptor.Attributes, error) {
	for len(t.pending) == 0 {
		data, err := t.reader.ReadPacket()
		if err != nil {
			return nil, nil, err
		}
		t.pending = t.packetizer.Packetize(data)
	}

	pkt := t.pending[0]
	t.pending = t.pending[1:]

	return pkt, interceptor.Attributes{}, nil
}
