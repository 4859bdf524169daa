package opus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeFrames(t testing.TB, rate, channels, frameSize, count int, setup func(enc *Encoder)) [][]byte {
	t.Helper()

	enc, err := NewEncoder(rate, channels, AppVoIP)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, enc.Destroy())
	}()

	if setup != nil {
		setup(enc)
	}

	packets := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		data := make([]byte, 1500)
		n, err := enc.Encode(sineFrame(rate, channels, frameSize, i*frameSize), data)
		require.NoError(t, err)
		packets = append(packets, data[:n])
	}
	return packets
}

func TestNewDecoder(t *testing.T) {
	t.Run("invalid sample rate", func(t *testing.T) {
		dec, err := NewDecoder(44100, 1)
		require.EqualError(t, err, "failed to create opus decoder: opus: invalid argument")
		require.Nil(t, dec)
	})

	t.Run("invalid channels", func(t *testing.T) {
		dec, err := NewDecoder(48000, 0)
		require.ErrorIs(t, err, ErrBadArg)
		require.Nil(t, dec)
	})

	t.Run("success", func(t *testing.T) {
		dec, err := NewDecoder(16000, 1)
		require.NoError(t, err)
		require.NotNil(t, dec)
		require.Equal(t, 1, dec.Channels())

		err = dec.Destroy()
		require.NoError(t, err)
	})

	t.Run("destroy", func(t *testing.T) {
		dec, err := NewDecoder(16000, 1)
		require.NoError(t, err)

		err = dec.Destroy()
		require.NoError(t, err)

		err = dec.Destroy()
		require.EqualError(t, err, "decoder is not initialized")
	})
}

func TestDecoderDecode(t *testing.T) {
	rate := 48000
	frameSize := 20 * rate / 1000
	packets := encodeFrames(t, rate, 2, frameSize, 5, nil)

	dec, err := NewDecoder(rate, 2)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, dec.Destroy())
	}()

	samples := make([]int16, frameSize*2)

	t.Run("empty data", func(t *testing.T) {
		_, err := dec.Decode(nil, samples)
		require.EqualError(t, err, "data should not be empty")
	})

	t.Run("empty samples", func(t *testing.T) {
		_, err := dec.Decode(packets[0], nil)
		require.EqualError(t, err, "samples should not be empty")
	})

	t.Run("buffer too small", func(t *testing.T) {
		_, err := dec.Decode(packets[0], make([]int16, 2*120))
		require.ErrorIs(t, err, ErrBufferTooSmall)
		require.EqualError(t, err, "opus: buffer too small")
	})

	t.Run("invalid packet", func(t *testing.T) {
		_, err := dec.Decode([]byte{0x03}, samples)
		require.ErrorIs(t, err, ErrInvalidPacket)
	})

	t.Run("int16", func(t *testing.T) {
		for _, pkt := range packets[:3] {
			n, err := dec.Decode(pkt, samples)
			require.NoError(t, err)
			require.Equal(t, frameSize, n)
		}

		duration, err := dec.LastPacketDuration()
		require.NoError(t, err)
		require.Equal(t, frameSize, duration)

		bw, err := dec.Bandwidth()
		require.NoError(t, err)
		require.NotEqual(t, BandwidthAuto, bw)

		_, err = dec.Pitch()
		require.NoError(t, err)

		_, err = dec.FinalRange()
		require.NoError(t, err)
	})

	t.Run("float32", func(t *testing.T) {
		out := make([]float32, frameSize*2)
		n, err := dec.DecodeFloat32(packets[3], out)
		require.NoError(t, err)
		require.Equal(t, frameSize, n)
	})

	t.Run("plc", func(t *testing.T) {
		require.NoError(t, dec.DecodePLC(samples))
		duration, err := dec.LastPacketDuration()
		require.NoError(t, err)
		require.Equal(t, frameSize, duration)
	})

	t.Run("fec", func(t *testing.T) {
		require.NoError(t, dec.DecodeFEC(packets[4], samples))
		_, err := dec.Decode(packets[4], samples)
		require.NoError(t, err)
	})

	t.Run("reset", func(t *testing.T) {
		require.NoError(t, dec.ResetState())
		n, err := dec.Decode(packets[0], samples)
		require.NoError(t, err)
		require.Equal(t, frameSize, n)
	})
}

func TestDecoderCtl(t *testing.T) {
	dec, err := NewDecoder(24000, 1)
	require.NoError(t, err)

	t.Run("gain", func(t *testing.T) {
		require.NoError(t, dec.SetGain(-256))
		v, err := dec.Gain()
		require.NoError(t, err)
		require.Equal(t, -256, v)

		require.ErrorIs(t, dec.SetGain(40000), ErrBadArg)
	})

	t.Run("phase inversion disabled", func(t *testing.T) {
		require.NoError(t, dec.SetPhaseInversionDisabled(true))
		v, err := dec.PhaseInversionDisabled()
		require.NoError(t, err)
		require.True(t, v)
	})

	t.Run("sample rate", func(t *testing.T) {
		v, err := dec.SampleRate()
		require.NoError(t, err)
		require.Equal(t, 24000, v)
	})

	t.Run("destroyed", func(t *testing.T) {
		require.NoError(t, dec.Destroy())
		require.EqualError(t, dec.SetGain(0), "decoder is not initialized")
		_, err := dec.Gain()
		require.EqualError(t, err, "decoder is not initialized")
		require.EqualError(t, dec.ResetState(), "decoder is not initialized")
		require.EqualError(t, dec.DecodePLC(make([]int16, 480)), "decoder is not initialized")
	})
}

func BenchmarkDecode(b *testing.B) {
	packets := encodeFrames(b, 16000, 1, 320, 50, nil)

	dec, err := NewDecoder(16000, 1)
	require.NoError(b, err)
	defer func() {
		_ = dec.Destroy()
	}()

	samples := make([]int16, 320)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n, err := dec.Decode(packets[i%len(packets)], samples)
		require.NoError(b, err)
		require.Equal(b, 320, n)
	}
}
