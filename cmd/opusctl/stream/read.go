package stream

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/pion/interceptor"
	"github.com/pion/rtp"
)

// TrackRemote is the reading side of an RTP track, e.g. a
// *webrtc.TrackRemote.
type TrackRemote interface {
	ID() string
	ReadRTP() (*rtp.Packet, interceptor.Attributes, error)
}

// ReadTrack reads RTP packets from track until the track ends or ctx is
// done. A truncated stream ends the track. Other read errors are logged and
// retried while ctx is live. Packets with an empty payload are skipped.
func ReadTrack(ctx context.Context, track TrackRemote) <-chan *rtp.Packet {
	trackPktsCh := make(chan *rtp.Packet, 1)

	go func() {
		defer close(trackPktsCh)

		for {
			pkt, _, err := track.ReadRTP()
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return
			} else if err != nil {
				slog.Error("failed to read track", slog.String("trackID", track.ID()), slog.String("err", err.Error()))
				if ctx.Err() != nil {
					return
				}
				continue
			}

			if len(pkt.Payload) == 0 {
				continue
			}

			select {
			case trackPktsCh <- pkt:
			case <-ctx.Done():
				return
			}
		}
	}()

	return trackPktsCh
}
