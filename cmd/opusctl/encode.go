package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mattermost/calls-opus/cmd/opusctl/config"
	"github.com/mattermost/calls-opus/cmd/opusctl/stream"
	"github.com/mattermost/calls-opus/opus"

	"github.com/pion/webrtc/v4/pkg/media/oggwriter"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a WAV file into an Ogg Opus file",
	Long: `Encode a 16 or 24-bit PCM WAV file into an Ogg Opus file. Sample rate and
channels are taken from the WAV header, every other codec setting from the
OPUS_* environment variables.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return encodeFile(cfg, in, out)
	},
}

func init() {
	encodeCmd.Flags().StringP("in", "i", "", "WAV file to encode")
	encodeCmd.Flags().StringP("out", "o", "", "Ogg Opus file to write")
	encodeCmd.MarkFlagRequired("in")
	encodeCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(encodeCmd)
}

func encodeFile(cfg config.Config, in, out string) error {
	src, err := openWAV(in)
	if err != nil {
		return err
	}
	defer src.Close()

	format := src.Format()
	cfg.SampleRate = format.SampleRate
	cfg.Channels = format.NumChannels
	if err := cfg.IsValid(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	enc, err := newEncoder(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := enc.Destroy(); err != nil {
			slog.Error("failed to destroy encoder", slog.String("err", err.Error()))
		}
	}()

	w, err := oggwriter.New(out, uint32(cfg.SampleRate), uint16(cfg.Channels))
	if err != nil {
		return fmt.Errorf("failed to create ogg writer: %w", err)
	}

	slog.Debug("encoding",
		slog.String("in", in),
		slog.String("out", out),
		slog.Any("config", cfg.ToMap()),
	)

	start := time.Now()
	packetizer := stream.NewPacketizer(cfg.FrameDuration)
	framesCh := stream.EncodeAudio(enc, cfg.FrameSize(), src.Samples())
	n, err := stream.WritePackets(w, packetizer.PacketizeAll(framesCh))
	if err != nil {
		return err
	}

	slog.Info("encoding done",
		slog.Int("packets", n),
		slog.Duration("audio", time.Duration(n)*cfg.FrameDuration),
		slog.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// newEncoder returns an encoder tuned by cfg. Frames handed to it must last
// exactly cfg.FrameDuration.
func newEncoder(cfg config.Config) (*opus.Encoder, error) {
	enc, err := opus.NewEncoder(cfg.SampleRate, cfg.Channels, cfg.Application)
	if err != nil {
		return nil, err
	}

	if err := cfg.Encoder.Apply(enc); err != nil {
		enc.Destroy()
		return nil, err
	}

	fd, err := opus.FrameDurationFromDuration(cfg.FrameDuration)
	if err == nil {
		err = enc.SetExpertFrameDuration(fd)
	}
	if err != nil {
		enc.Destroy()
		return nil, fmt.Errorf("failed to set frame duration: %w", err)
	}

	return enc, nil
}
