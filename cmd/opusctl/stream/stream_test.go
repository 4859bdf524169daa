package stream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/mattermost/calls-opus/opus"

	"github.com/pion/interceptor"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4/pkg/media/oggwriter"
	"github.com/stretchr/testify/require"
)

const (
	testRate      = 48000
	testFrameSize = 960
)

func sineSamples(n int) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(8000 * math.Sin(2*math.Pi*440*float64(i)/testRate))
	}
	return samples
}

func encodeFrames(t *testing.T, n int) [][]byte {
	t.Helper()

	enc, err := opus.NewEncoder(testRate, 1, opus.AppAudio)
	require.NoError(t, err)
	defer enc.Destroy()

	samplesCh := make(chan []int16, 1)
	go func() {
		defer close(samplesCh)
		samplesCh <- sineSamples(n * testFrameSize)
	}()

	var frames [][]byte
	for frame := range EncodeAudio(enc, testFrameSize, samplesCh) {
		frames = append(frames, frame)
	}
	require.Len(t, frames, n)

	return frames
}

type chanTrack struct {
	pkts []*rtp.Packet
}

func (t *chanTrack) ID() string {
	return "trackID"
}

func (t *chanTrack) ReadRTP() (*rtp.Packet, interceptor.Attributes, error) {
	if len(t.pkts) == 0 {
		return nil, nil, io.EOF
	}
	pkt := t.pkts[0]
	t.pkts = t.pkts[1:]
	return pkt, interceptor.Attributes{}, nil
}

func TestEncodeAudio(t *testing.T) {
	enc, err := opus.NewEncoder(testRate, 1, opus.AppAudio)
	require.NoError(t, err)
	defer enc.Destroy()

	t.Run("partial chunks", func(t *testing.T) {
		samplesCh := make(chan []int16, 5)
		for i := 0; i < 5; i++ {
			samplesCh <- sineSamples(500)
		}
		close(samplesCh)

		var frames [][]byte
		for frame := range EncodeAudio(enc, testFrameSize, samplesCh) {
			require.NotEmpty(t, frame)
			frames = append(frames, frame)
		}
		// 2500 samples make two full frames plus a padded one.
		require.Len(t, frames, 3)
	})

	t.Run("no samples", func(t *testing.T) {
		samplesCh := make(chan []int16)
		close(samplesCh)

		_, ok := <-EncodeAudio(enc, testFrameSize, samplesCh)
		require.False(t, ok)
	})
}

func TestPacketizer(t *testing.T) {
	p := NewPacketizer(20 * time.Millisecond)
	frames := encodeFrames(t, 3)

	var pkts []*rtp.Packet
	for _, frame := range frames {
		out := p.Packetize(frame)
		require.Len(t, out, 1)
		pkts = append(pkts, out[0])
	}

	for i, pkt := range pkts {
		require.Equal(t, uint8(PayloadTypeOpus), pkt.PayloadType)
		require.Equal(t, p.SSRC(), pkt.SSRC)
		require.Equal(t, frames[i], pkt.Payload)
		if i > 0 {
			require.Equal(t, pkts[i-1].SequenceNumber+1, pkt.SequenceNumber)
			require.Equal(t, pkts[i-1].Timestamp+testFrameSize, pkt.Timestamp)
		}
	}
}

func TestReadTrack(t *testing.T) {
	track := &chanTrack{
		pkts: []*rtp.Packet{
			{Header: rtp.Header{SequenceNumber: 1}, Payload: []byte{0x01}},
			{Header: rtp.Header{SequenceNumber: 2}},
			{Header: rtp.Header{SequenceNumber: 3}, Payload: []byte{0x03}},
		},
	}

	var seqs []uint16
	for pkt := range ReadTrack(context.Background(), track) {
		seqs = append(seqs, pkt.SequenceNumber)
	}
	require.Equal(t, []uint16{1, 3}, seqs)
}

type errTrack struct {
	reads int
}

func (t *errTrack) ID() string {
	return "errTrack"
}

func (t *errTrack) ReadRTP() (*rtp.Packet, interceptor.Attributes, error) {
	t.reads++
	return nil, nil, errors.New("read failed")
}

func TestReadTrackErrors(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		track := &errTrack{}
		pktsCh := ReadTrack(ctx, track)

		select {
		case _, ok := <-pktsCh:
			require.False(t, ok)
		case <-time.After(time.Second):
			require.FailNow(t, "track reader did not stop")
		}
		require.Equal(t, 1, track.reads)
	})

	t.Run("cancelled while failing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		track := &errTrack{}
		pktsCh := ReadTrack(ctx, track)

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case _, ok := <-pktsCh:
			require.False(t, ok)
		case <-time.After(time.Second):
			require.FailNow(t, "track reader did not stop")
		}
	})
}

func TestDecodePackets(t *testing.T) {
	frames := encodeFrames(t, 5)
	p := NewPacketizer(20 * time.Millisecond)

	decode := func(t *testing.T, pkts []*rtp.Packet) [][]int16 {
		t.Helper()

		dec, err := opus.NewDecoder(testRate, 1)
		require.NoError(t, err)
		defer dec.Destroy()

		pktsCh := make(chan *rtp.Packet, len(pkts))
		for _, pkt := range pkts {
			pktsCh <- pkt
		}
		close(pktsCh)

		var out [][]int16
		for samples := range DecodePackets(dec, testFrameSize, pktsCh) {
			out = append(out, samples)
		}
		return out
	}

	var pkts []*rtp.Packet
	for _, frame := range frames {
		pkts = append(pkts, p.Packetize(frame)...)
	}

	t.Run("no loss", func(t *testing.T) {
		out := decode(t, pkts)
		require.Len(t, out, 5)
		for _, samples := range out {
			require.Len(t, samples, testFrameSize)
		}
	})

	t.Run("single loss", func(t *testing.T) {
		lossy := []*rtp.Packet{pkts[0], pkts[1], pkts[3], pkts[4]}
		out := decode(t, lossy)
		require.Len(t, out, 5)
		for _, samples := range out {
			require.Len(t, samples, testFrameSize)
		}
	})

	t.Run("multiple losses", func(t *testing.T) {
		lossy := []*rtp.Packet{pkts[0], pkts[4]}
		out := decode(t, lossy)
		require.Len(t, out, 5)
	})

	t.Run("duplicates", func(t *testing.T) {
		dup := []*rtp.Packet{pkts[0], pkts[1], pkts[1], pkts[2], pkts[3], pkts[3], pkts[3], pkts[4]}
		out := decode(t, dup)
		require.Len(t, out, 5)
		require.Equal(t, decode(t, pkts), out)
	})

	t.Run("invalid payload", func(t *testing.T) {
		bad := &rtp.Packet{Header: rtp.Header{SequenceNumber: pkts[0].SequenceNumber - 1}}
		out := decode(t, append([]*rtp.Packet{bad}, pkts...))
		require.Len(t, out, 5)
	})
}

func TestOggRoundTrip(t *testing.T) {
	frames := encodeFrames(t, 10)
	p := NewPacketizer(20 * time.Millisecond)

	var buf bytes.Buffer
	w, err := oggwriter.NewWith(&buf, testRate, 1)
	require.NoError(t, err)

	framesCh := make(chan []byte, len(frames))
	for _, frame := range frames {
		framesCh <- frame
	}
	close(framesCh)

	n, err := WritePackets(w, p.PacketizeAll(framesCh))
	require.NoError(t, err)
	require.Equal(t, len(frames), n)

	t.Run("reader", func(t *testing.T) {
		r, err := NewOggReader(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, uint8(1), r.Header().Channels)
		require.Equal(t, uint32(testRate), r.Header().SampleRate)

		for _, frame := range frames {
			data, err := r.ReadPacket()
			require.NoError(t, err)
			require.Equal(t, frame, data)
		}

		_, err = r.ReadPacket()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("track", func(t *testing.T) {
		r, err := NewOggReader(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)

		track := NewOggTrack("ogg", r, 20*time.Millisecond)
		require.Equal(t, "ogg", track.ID())

		dec, err := opus.NewDecoder(testRate, 1)
		require.NoError(t, err)
		defer dec.Destroy()

		var decoded int
		for samples := range DecodePackets(dec, testFrameSize, ReadTrack(context.Background(), track)) {
			decoded += len(samples)
		}
		require.Equal(t, len(frames)*testFrameSize, decoded)
	})

	t.Run("bad stream", func(t *testing.T) {
		_, err := NewOggReader(bytes.NewReader([]byte("not an ogg stream")))
		require.Error(t, err)
	})
}
