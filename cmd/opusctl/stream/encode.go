package stream

import (
	"log/slog"

	"github.com/mattermost/calls-opus/opus"
)

const (
	encodedChSize = 1000
	maxPacketSize = 1500
)

// EncodeAudio cuts the interleaved samples received on samplesCh into frames
// of frameSize samples per channel and encodes them with enc. The last
// partial frame is padded with silence. The returned channel is closed once
// samplesCh is closed and drained. enc is not destroyed.
func EncodeAudio(enc *opus.Encoder, frameSize int, samplesCh <-chan []int16) <-chan []byte {
	encodedCh := make(chan []byte, encodedChSize)
	frameLen := frameSize * enc.Channels()

	go func() {
		defer close(encodedCh)

		encode := func(frame []int16) {
			data := make([]byte, maxPacketSize)
			n, err := enc.Encode(frame, data)
			if err != nil {
				slog.Error("failed to encode samples", slog.String("err", err.Error()))
				return
			}
			encodedCh <- data[:n]
		}

		var pending []int16
		for samples := range samplesCh {
			pending = append(pending, samples...)
			for len(pending) >= frameLen {
				encode(pending[:frameLen])
				pending = pending[frameLen:]
			}
		}

		if len(pending) > 0 {
			frame := make([]int16, frameLen)
			copy(frame, pending)
			encode(frame)
		}
	}()

	return encodedCh
}
