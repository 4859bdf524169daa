package opus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEncoder(t *testing.T) {
	tcs := []struct {
		name     string
		rate     int
		channels int
		app      Application
		err      string
	}{
		{
			name:     "invalid sample rate",
			rate:     44100,
			channels: 1,
			app:      AppVoIP,
			err:      "failed to create opus encoder: opus: invalid argument",
		},
		{
			name:     "invalid channels",
			rate:     48000,
			channels: 3,
			app:      AppVoIP,
			err:      "failed to create opus encoder: opus: invalid argument",
		},
		{
			name:     "invalid application",
			rate:     48000,
			channels: 2,
			app:      Application(42),
			err:      "failed to create opus encoder: opus: invalid argument",
		},
		{
			name:     "mono voip",
			rate:     16000,
			channels: 1,
			app:      AppVoIP,
		},
		{
			name:     "stereo audio",
			rate:     48000,
			channels: 2,
			app:      AppAudio,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			enc, err := NewEncoder(tc.rate, tc.channels, tc.app)
			if tc.err != "" {
				require.EqualError(t, err, tc.err)
				require.Nil(t, enc)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, enc)
			require.Equal(t, tc.channels, enc.Channels())
			require.NoError(t, enc.Destroy())
		})
	}
}

func TestEncoderCtlRoundTrip(t *testing.T) {
	enc, err := NewEncoder(48000, 2, AppVoIP)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, enc.Destroy())
	}()

	t.Run("complexity", func(t *testing.T) {
		require.NoError(t, enc.SetComplexity(7))
		v, err := enc.Complexity()
		require.NoError(t, err)
		require.Equal(t, 7, v)
	})

	t.Run("bitrate", func(t *testing.T) {
		require.NoError(t, enc.SetBitrate(32000))
		v, err := enc.Bitrate()
		require.NoError(t, err)
		require.Equal(t, 32000, v)
	})

	t.Run("vbr", func(t *testing.T) {
		require.NoError(t, enc.SetVBR(false))
		v, err := enc.VBR()
		require.NoError(t, err)
		require.False(t, v)
		require.NoError(t, enc.SetVBR(true))
		v, err = enc.VBR()
		require.NoError(t, err)
		require.True(t, v)
	})

	t.Run("vbr constraint", func(t *testing.T) {
		require.NoError(t, enc.SetVBRConstraint(false))
		v, err := enc.VBRConstraint()
		require.NoError(t, err)
		require.False(t, v)
	})

	t.Run("force channels", func(t *testing.T) {
		require.NoError(t, enc.SetForceChannels(1))
		v, err := enc.ForceChannels()
		require.NoError(t, err)
		require.Equal(t, 1, v)
		require.NoError(t, enc.SetForceChannels(ForceChannelsAuto))
		v, err = enc.ForceChannels()
		require.NoError(t, err)
		require.Equal(t, ForceChannelsAuto, v)
	})

	t.Run("max bandwidth", func(t *testing.T) {
		require.NoError(t, enc.SetMaxBandwidth(Wideband))
		v, err := enc.MaxBandwidth()
		require.NoError(t, err)
		require.Equal(t, Wideband, v)
	})

	t.Run("bandwidth", func(t *testing.T) {
		require.NoError(t, enc.SetBandwidth(BandwidthAuto))
		require.NoError(t, enc.SetBandwidth(SuperWideband))
	})

	t.Run("signal", func(t *testing.T) {
		require.NoError(t, enc.SetSignal(SignalVoice))
		v, err := enc.Signal()
		require.NoError(t, err)
		require.Equal(t, SignalVoice, v)
	})

	t.Run("application", func(t *testing.T) {
		v, err := enc.Application()
		require.NoError(t, err)
		require.Equal(t, AppVoIP, v)
		require.NoError(t, enc.SetApplication(AppAudio))
		v, err = enc.Application()
		require.NoError(t, err)
		require.Equal(t, AppAudio, v)
	})

	t.Run("inband fec", func(t *testing.T) {
		require.NoError(t, enc.SetInbandFEC(true))
		v, err := enc.InbandFEC()
		require.NoError(t, err)
		require.True(t, v)
	})

	t.Run("packet loss", func(t *testing.T) {
		require.NoError(t, enc.SetPacketLossPerc(15))
		v, err := enc.PacketLossPerc()
		require.NoError(t, err)
		require.Equal(t, 15, v)
	})

	t.Run("dtx", func(t *testing.T) {
		require.NoError(t, enc.SetDTX(true))
		v, err := enc.DTX()
		require.NoError(t, err)
		require.True(t, v)
	})

	t.Run("lsb depth", func(t *testing.T) {
		require.NoError(t, enc.SetLSBDepth(16))
		v, err := enc.LSBDepth()
		require.NoError(t, err)
		require.Equal(t, 16, v)
	})

	t.Run("expert frame duration", func(t *testing.T) {
		require.NoError(t, enc.SetExpertFrameDuration(FrameDuration20))
		v, err := enc.ExpertFrameDuration()
		require.NoError(t, err)
		require.Equal(t, FrameDuration20, v)
	})

	t.Run("prediction disabled", func(t *testing.T) {
		require.NoError(t, enc.SetPredictionDisabled(true))
		v, err := enc.PredictionDisabled()
		require.NoError(t, err)
		require.True(t, v)
	})

	t.Run("phase inversion disabled", func(t *testing.T) {
		require.NoError(t, enc.SetPhaseInversionDisabled(true))
		v, err := enc.PhaseInversionDisabled()
		require.NoError(t, err)
		require.True(t, v)
	})

	t.Run("read only", func(t *testing.T) {
		rate, err := enc.SampleRate()
		require.NoError(t, err)
		require.Equal(t, 48000, rate)

		lookahead, err := enc.Lookahead()
		require.NoError(t, err)
		require.Greater(t, lookahead, 0)

		_, err = enc.InDTX()
		require.NoError(t, err)

		_, err = enc.Bandwidth()
		require.NoError(t, err)

		_, err = enc.FinalRange()
		require.NoError(t, err)
	})
}

func TestEncoderCtlBadArg(t *testing.T) {
	enc, err := NewEncoder(48000, 1, AppAudio)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, enc.Destroy())
	}()

	tcs := []struct {
		name string
		fn   func() error
	}{
		{name: "complexity", fn: func() error { return enc.SetComplexity(11) }},
		{name: "bitrate", fn: func() error { return enc.SetBitrate(0) }},
		{name: "force channels", fn: func() error { return enc.SetForceChannels(2) }},
		{name: "max bandwidth", fn: func() error { return enc.SetMaxBandwidth(Bandwidth(0)) }},
		{name: "signal", fn: func() error { return enc.SetSignal(Signal(1)) }},
		{name: "packet loss", fn: func() error { return enc.SetPacketLossPerc(101) }},
		{name: "lsb depth", fn: func() error { return enc.SetLSBDepth(7) }},
		{name: "expert frame duration", fn: func() error { return enc.SetExpertFrameDuration(FrameDuration(1)) }},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fn()
			require.ErrorIs(t, err, ErrBadArg)

			var opusErr Error
			require.True(t, errors.As(err, &opusErr))
			require.Equal(t, -1, opusErr.Code())
		})
	}
}

func TestEncoderEncode(t *testing.T) {
	enc, err := NewEncoder(48000, 2, AppAudio)
	require.NoError(t, err)

	data := make([]byte, 1500)

	t.Run("empty samples", func(t *testing.T) {
		_, err := enc.Encode(nil, data)
		require.EqualError(t, err, "samples should not be empty")
	})

	t.Run("empty data", func(t *testing.T) {
		_, err := enc.Encode(sineFrame(48000, 2, 960, 0), nil)
		require.EqualError(t, err, "data should not be empty")
	})

	t.Run("odd samples", func(t *testing.T) {
		_, err := enc.Encode(make([]int16, 3), data)
		require.EqualError(t, err, "invalid samples length")
	})

	t.Run("invalid frame size", func(t *testing.T) {
		_, err := enc.Encode(make([]int16, 2*100), data)
		require.ErrorIs(t, err, ErrBadArg)
	})

	t.Run("int16", func(t *testing.T) {
		n, err := enc.Encode(sineFrame(48000, 2, 960, 0), data)
		require.NoError(t, err)
		require.Greater(t, n, 0)

		bw, err := enc.Bandwidth()
		require.NoError(t, err)
		require.NotEqual(t, BandwidthAuto, bw)
	})

	t.Run("float32", func(t *testing.T) {
		n, err := enc.EncodeFloat32(sineFrameFloat32(48000, 2, 480), data)
		require.NoError(t, err)
		require.Greater(t, n, 0)
	})

	t.Run("reset", func(t *testing.T) {
		require.NoError(t, enc.ResetState())
		n, err := enc.Encode(sineFrame(48000, 2, 960, 0), data)
		require.NoError(t, err)
		require.Greater(t, n, 0)
	})

	t.Run("destroy", func(t *testing.T) {
		require.NoError(t, enc.Destroy())
		require.EqualError(t, enc.Destroy(), "encoder is not initialized")

		_, err := enc.Encode(sineFrame(48000, 2, 960, 0), data)
		require.EqualError(t, err, "encoder is not initialized")

		require.EqualError(t, enc.SetBitrate(24000), "encoder is not initialized")
		_, err = enc.Bitrate()
		require.EqualError(t, err, "encoder is not initialized")
	})
}

func BenchmarkEncode(b *testing.B) {
	enc, err := NewEncoder(48000, 1, AppVoIP)
	require.NoError(b, err)
	defer func() {
		_ = enc.Destroy()
	}()

	pcm := sineFrame(48000, 1, 960, 0)
	data := make([]byte, 1500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := enc.Encode(pcm, data)
		require.NoError(b, err)
	}
}
