package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mattermost/calls-opus/cmd/opusctl/config"
	"github.com/mattermost/calls-opus/cmd/opusctl/stream"
	"github.com/mattermost/calls-opus/opus"

	"github.com/spf13/cobra"
)

// Ogg Opus pre-skip is always expressed at 48kHz.
const preSkipRate = 48000

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode an Ogg Opus file into a WAV file",
	Long: `Decode an Ogg Opus file into a 16-bit PCM WAV file. Channels are taken from
the Ogg header, the output sample rate and decoder settings from the OPUS_*
environment variables. Lost packets are concealed.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return decodeFile(cmd.Context(), cfg, in, out)
	},
}

func init() {
	decodeCmd.Flags().StringP("in", "i", "", "Ogg Opus file to decode")
	decodeCmd.Flags().StringP("out", "o", "", "WAV file to write")
	decodeCmd.MarkFlagRequired("in")
	decodeCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(decodeCmd)
}

func decodeFile(ctx context.Context, cfg config.Config, in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open ogg file: %w", err)
	}
	defer f.Close()

	r, err := stream.NewOggReader(f)
	if err != nil {
		return err
	}

	hdr := r.Header()
	cfg.Channels = int(hdr.Channels)
	if err := cfg.IsValid(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	dec, err := newDecoder(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := dec.Destroy(); err != nil {
			slog.Error("failed to destroy decoder", slog.String("err", err.Error()))
		}
	}()

	slog.Debug("decoding",
		slog.String("in", in),
		slog.String("out", out),
		slog.Int("inputSampleRate", int(hdr.SampleRate)),
		slog.Int("preSkip", int(hdr.PreSkip)),
		slog.Any("config", cfg.ToMap()),
	)

	start := time.Now()
	skip := int(hdr.PreSkip) * cfg.SampleRate / preSkipRate
	track := stream.NewOggTrack(in, r, cfg.FrameDuration)
	samplesCh := stream.DecodePackets(dec, cfg.FrameSize(), stream.ReadTrack(ctx, track))
	n, err := writeWAV(out, cfg.SampleRate, cfg.Channels, skip, samplesCh)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("decoding interrupted after %d samples: %w", n, err)
	}

	slog.Info("decoding done",
		slog.Duration("audio", time.Duration(n)*time.Second/time.Duration(cfg.SampleRate)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return nil
}

func newDecoder(cfg config.Config) (*opus.Decoder, error) {
	dec, err := opus.NewDecoder(cfg.SampleRate, cfg.Channels)
	if err != nil {
		return nil, err
	}

	if err := cfg.Decoder.Apply(dec); err != nil {
		dec.Destroy()
		return nil, err
	}

	return dec, nil
}
