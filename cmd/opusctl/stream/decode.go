package stream

import (
	"log/slog"

	"github.com/mattermost/calls-opus/opus"

	"github.com/pion/rtp"
	"github.com/pion/rtp/codecs"
)

const (
	decodedChSize = 10
	// Gaps larger than this are treated as a stream restart and not concealed.
	maxConcealedPkts = 10
)

// DecodePackets depacketizes and decodes the Opus RTP packets received on
// pkts. Each decoded packet is sent as a slice of interleaved samples.
//
// Sequence number gaps are concealed: the packet right before the one
// received is recovered from its in-band FEC data, earlier ones go through
// packet loss concealment. frameSize is the number of samples per channel
// concealed when no packet has been decoded yet. A packet repeating the
// sequence number of the previous one is dropped. dec is not destroyed.
func DecodePackets(dec *opus.Decoder, frameSize int, pkts <-chan *rtp.Packet) <-chan []int16 {
	decodedCh := make(chan []int16, decodedChSize)
	channels := dec.Channels()

	go func() {
		defer close(decodedCh)

		// 120ms at 48kHz is the largest Opus packet.
		pcm := make([]int16, 5760*channels)

		concealSize := func() int {
			n, err := dec.LastPacketDuration()
			if err != nil || n <= 0 {
				return frameSize
			}
			return n
		}

		var lastSeq uint16
		var started bool
		for pkt := range pkts {
			if started && pkt.SequenceNumber == lastSeq {
				slog.Debug("dropping duplicate packet", slog.Int("seq", int(pkt.SequenceNumber)))
				continue
			}

			var opusPkt codecs.OpusPacket
			payload, err := opusPkt.Unmarshal(pkt.Payload)
			if err != nil {
				slog.Error("failed to unmarshal packet", slog.String("err", err.Error()))
				continue
			}

			if started {
				if lost := pkt.SequenceNumber - lastSeq - 1; lost > 0 && lost <= maxConcealedPkts {
					slog.Debug("concealing lost packets", slog.Int("lost", int(lost)))
					for i := 1; i < int(lost); i++ {
						samples := pcm[:concealSize()*channels]
						if err := dec.DecodePLC(samples); err != nil {
							slog.Error("failed to conceal packet", slog.String("err", err.Error()))
							continue
						}
						decodedCh <- append([]int16(nil), samples...)
					}

					samples := pcm[:concealSize()*channels]
					if err := dec.DecodeFEC(payload, samples); err != nil {
						slog.Error("failed to recover packet", slog.String("err", err.Error()))
					} else {
						decodedCh <- append([]int16(nil), samples...)
					}
				}
			}
			lastSeq = pkt.SequenceNumber
			started = true

			n, err := dec.Decode(payload, pcm)
			if err != nil {
				slog.Error("failed to decode packet", slog.String("err", err.Error()))
				continue
			}

			decodedCh <- append([]int16(nil), pcm[:n*channels]...)
		}
	}()

	return decodedCh
}
