package main

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/mattermost/calls-opus/cmd/opusctl/config"
	"github.com/mattermost/calls-opus/opus"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the codec state resulting from the current configuration",
	Long: `Create an encoder and a decoder from the OPUS_* environment variables,
apply every setting and print what libopus reports back.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.IsValid(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		return inspect(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectTmpl = template.Must(template.New("").Parse(
	`libopus: {{.Version}}

Environment:{{range .Env}}
	{{.}}{{end}}

Encoder:
	Application:             {{.Enc.Application}}
	SampleRate:              {{.Enc.SampleRate}}
	Bitrate:                 {{.Enc.Bitrate}}
	Complexity:              {{.Enc.Complexity}}
	VBR:                     {{.Enc.VBR}}
	VBRConstraint:           {{.Enc.VBRConstraint}}
	ForceChannels:           {{.Enc.ForceChannels}}
	MaxBandwidth:            {{.Enc.MaxBandwidth}}
	Signal:                  {{.Enc.Signal}}
	Lookahead:               {{.Enc.Lookahead}}
	InbandFEC:               {{.Enc.InbandFEC}}
	PacketLossPerc:          {{.Enc.PacketLossPerc}}
	DTX:                     {{.Enc.DTX}}
	InDTX:                   {{.Enc.InDTX}}
	LSBDepth:                {{.Enc.LSBDepth}}
	ExpertFrameDuration:     {{.Enc.ExpertFrameDuration}}
	PredictionDisabled:      {{.Enc.PredictionDisabled}}
	PhaseInversionDisabled:  {{.Enc.PhaseInversionDisabled}}
	Bandwidth:               {{.Enc.Bandwidth}}
	FinalRange:              {{.Enc.FinalRange}}

Decoder:
	SampleRate:              {{.Dec.SampleRate}}
	Gain:                    {{.Dec.Gain}}
	PhaseInversionDisabled:  {{.Dec.PhaseInversionDisabled}}
	Bandwidth:               {{.Dec.Bandwidth}}
	LastPacketDuration:      {{.Dec.LastPacketDuration}}
	Pitch:                   {{.Dec.Pitch}}
	FinalRange:              {{.Dec.FinalRange}}
`,
))

type encoderState struct {
	Application            opus.Application
	SampleRate             int
	Bitrate                int
	Complexity             int
	VBR                    bool
	VBRConstraint          bool
	ForceChannels          int
	MaxBandwidth           opus.Bandwidth
	Signal                 opus.Signal
	Lookahead              int
	InbandFEC              bool
	PacketLossPerc         int
	DTX                    bool
	InDTX                  bool
	LSBDepth               int
	ExpertFrameDuration    time.Duration
	PredictionDisabled     bool
	PhaseInversionDisabled bool
	Bandwidth              opus.Bandwidth
	FinalRange             uint32
}

type decoderState struct {
	SampleRate             int
	Gain                   int
	PhaseInversionDisabled bool
	Bandwidth              opus.Bandwidth
	LastPacketDuration     int
	Pitch                  int
	FinalRange             uint32
}

// getter records the first failing get-verb.
type getter struct {
	err error
}

func get[T any](g *getter, name string, fn func() (T, error)) T {
	v, err := fn()
	if err != nil && g.err == nil {
		g.err = fmt.Errorf("failed to get %s: %w", name, err)
	}
	return v
}

func readEncoderState(enc *opus.Encoder) (encoderState, error) {
	var g getter
	s := encoderState{
		Application:            get(&g, "application", enc.Application),
		SampleRate:             get(&g, "sample rate", enc.SampleRate),
		Bitrate:                get(&g, "bitrate", enc.Bitrate),
		Complexity:             get(&g, "complexity", enc.Complexity),
		VBR:                    get(&g, "vbr", enc.VBR),
		VBRConstraint:          get(&g, "vbr constraint", enc.VBRConstraint),
		ForceChannels:          get(&g, "force channels", enc.ForceChannels),
		MaxBandwidth:           get(&g, "max bandwidth", enc.MaxBandwidth),
		Signal:                 get(&g, "signal", enc.Signal),
		Lookahead:              get(&g, "lookahead", enc.Lookahead),
		InbandFEC:              get(&g, "inband fec", enc.InbandFEC),
		PacketLossPerc:         get(&g, "packet loss perc", enc.PacketLossPerc),
		DTX:                    get(&g, "dtx", enc.DTX),
		InDTX:                  get(&g, "in dtx", enc.InDTX),
		LSBDepth:               get(&g, "lsb depth", enc.LSBDepth),
		PredictionDisabled:     get(&g, "prediction disabled", enc.PredictionDisabled),
		PhaseInversionDisabled: get(&g, "phase inversion disabled", enc.PhaseInversionDisabled),
		Bandwidth:              get(&g, "bandwidth", enc.Bandwidth),
		FinalRange:             get(&g, "final range", enc.FinalRange),
	}
	s.ExpertFrameDuration = get(&g, "expert frame duration", enc.ExpertFrameDuration).Duration()

	return s, g.err
}

func readDecoderState(dec *opus.Decoder) (decoderState, error) {
	var g getter
	s := decoderState{
		SampleRate:             get(&g, "sample rate", dec.SampleRate),
		Gain:                   get(&g, "gain", dec.Gain),
		PhaseInversionDisabled: get(&g, "phase inversion disabled", dec.PhaseInversionDisabled),
		Bandwidth:              get(&g, "bandwidth", dec.Bandwidth),
		LastPacketDuration:     get(&g, "last packet duration", dec.LastPacketDuration),
		Pitch:                  get(&g, "pitch", dec.Pitch),
		FinalRange:             get(&g, "final range", dec.FinalRange),
	}

	return s, g.err
}

func inspect(w io.Writer, cfg config.Config) error {
	enc, err := newEncoder(cfg)
	if err != nil {
		return err
	}
	defer enc.Destroy()

	dec, err := newDecoder(cfg)
	if err != nil {
		return err
	}
	defer dec.Destroy()

	encState, err := readEncoderState(enc)
	if err != nil {
		return err
	}

	decState, err := readDecoderState(dec)
	if err != nil {
		return err
	}

	return inspectTmpl.Execute(w, struct {
		Version string
		Env     []string
		Enc     encoderState
		Dec     decoderState
	}{
		Version: opus.Version(),
		Env:     cfg.ToEnv(),
		Enc:     encState,
		Dec:     decState,
	})
}
