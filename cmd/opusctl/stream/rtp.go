package stream

import (
	"time"

	"github.com/mattermost/calls-opus/opus"

	"github.com/pion/randutil"
	"github.com/pion/rtp"
	"github.com/pion/rtp/codecs"
)

const (
	sendMTU = 1200
	// RTP clock rate for Opus is 48kHz whatever the coded sample rate.
	opusClockRate = 48000
	// PayloadTypeOpus is the dynamic payload type browsers commonly
	// negotiate for Opus.
	PayloadTypeOpus = 111
)

// Packetizer wraps Opus packets into RTP packets.
type Packetizer struct {
	packetizer rtp.Packetizer
	samples    uint32
	ssrc       uint32
}

// NewPacketizer returns a Packetizer for frames of the given duration, with a
// random SSRC and initial sequence number.
func NewPacketizer(frameDuration time.Duration) *Packetizer {
	ssrc := randutil.NewMathRandomGenerator().Uint32()
	return &Packetizer{
		packetizer: rtp.NewPacketizer(
			sendMTU,
			PayloadTypeOpus,
			ssrc,
			&codecs.OpusPayloader{},
			rtp.NewRandomSequencer(),
			opusClockRate,
		),
		samples: uint32(opus.FrameSize(opusClockRate, frameDuration)),
		ssrc:    ssrc,
	}
}

func (p *Packetizer) SSRC() uint32 {
	return p.ssrc
}

// Packetize returns the RTP packets carrying frame.
func (p *Packetizer) Packetize(frame []byte) []*rtp.Packet {
	return p.packetizer.Packetize(frame, p.samples)
}

// PacketizeAll packetizes every frame from framesCh. The returned channel is
// closed once framesCh is closed.
func (p *Packetizer) PacketizeAll(framesCh <-chan []byte) <-chan *rtp.Packet {
	pktsCh := make(chan *rtp.Packet, encodedChSize)

	go func() {
		defer close(pktsCh)
		for frame := range framesCh {
			for _, pkt := range p.Packetize(frame) {
				pktsCh <- pkt
			}
		}
	}()

	return pktsCh
}
