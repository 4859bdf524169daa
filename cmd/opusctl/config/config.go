package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mattermost/calls-opus/opus"
)

const (
	// defaults
	SampleRateDefault    = 48000
	ChannelsDefault      = 2
	ApplicationDefault   = opus.AppAudio
	FrameDurationDefault = 20 * time.Millisecond
)

var validSampleRates = map[int]bool{
	8000:  true,
	12000: true,
	16000: true,
	24000: true,
	48000: true,
}

type Config struct {
	// stream config
	SampleRate    int
	Channels      int
	Application   opus.Application
	FrameDuration time.Duration

	// codec tuning
	Encoder EncoderOptions
	Decoder DecoderOptions
}

func (cfg Config) IsValid() error {
	if cfg == (Config{}) {
		return fmt.Errorf("config cannot be empty")
	}

	if !validSampleRates[cfg.SampleRate] {
		return fmt.Errorf("SampleRate value is not valid")
	}

	if cfg.Channels < 1 || cfg.Channels > 2 {
		return fmt.Errorf("Channels should be in the range [1, 2]")
	}

	if !cfg.Application.IsValid() {
		return fmt.Errorf("Application value is not valid")
	}

	if fd, err := opus.FrameDurationFromDuration(cfg.FrameDuration); err != nil || fd == opus.FrameDurationArg {
		return fmt.Errorf("FrameDuration value is not valid")
	}

	if err := cfg.Encoder.IsValid(); err != nil {
		return err
	}

	return cfg.Decoder.IsValid()
}

func (cfg *Config) SetDefaults() {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = SampleRateDefault
	}

	if cfg.Channels == 0 {
		cfg.Channels = ChannelsDefault
	}

	if cfg.Application == 0 {
		cfg.Application = ApplicationDefault
	}

	if cfg.FrameDuration == 0 {
		cfg.FrameDuration = FrameDurationDefault
	}

	cfg.Encoder.SetDefaults()

	if cfg.Decoder.IsEmpty() {
		cfg.Decoder.SetDefaults()
	}
}

// FrameSize returns the number of samples per channel in one frame.
func (cfg Config) FrameSize() int {
	return opus.FrameSize(cfg.SampleRate, cfg.FrameDuration)
}

func (cfg Config) ToEnv() []string {
	if cfg == (Config{}) {
		return nil
	}

	vars := []string{
		fmt.Sprintf("OPUS_SAMPLE_RATE=%d", cfg.SampleRate),
		fmt.Sprintf("OPUS_CHANNELS=%d", cfg.Channels),
		fmt.Sprintf("OPUS_APPLICATION=%s", cfg.Application),
		fmt.Sprintf("OPUS_FRAME_DURATION_MS=%s", formatMs(cfg.FrameDuration)),
	}

	vars = append(vars, cfg.Encoder.ToEnv()...)
	vars = append(vars, cfg.Decoder.ToEnv()...)

	return vars
}

func (cfg Config) ToMap() map[string]any {
	if cfg == (Config{}) {
		return nil
	}

	m := map[string]any{
		"sample_rate":       cfg.SampleRate,
		"channels":          cfg.Channels,
		"application":       cfg.Application.String(),
		"frame_duration_ms": cfg.FrameDuration.Seconds() * 1000,
	}

	for k, v := range cfg.Encoder.ToMap() {
		m[k] = v
	}
	for k, v := range cfg.Decoder.ToMap() {
		m[k] = v
	}

	return m
}

func (cfg *Config) FromMap(m map[string]any) *Config {
	cfg.SampleRate = intFromMap(m, "sample_rate")
	cfg.Channels = intFromMap(m, "channels")

	if app, ok := m["application"].(string); ok {
		cfg.Application, _ = opus.ParseApplication(app)
	} else {
		cfg.Application, _ = m["application"].(opus.Application)
	}

	if ms, ok := m["frame_duration_ms"].(float64); ok {
		cfg.FrameDuration = time.Duration(ms * float64(time.Millisecond))
	}

	cfg.Encoder.FromMap(m)
	cfg.Decoder.FromMap(m)

	return cfg
}

func FromEnv() (Config, error) {
	var cfg Config
	var err error

	if cfg.SampleRate, err = intFromEnv("OPUS_SAMPLE_RATE"); err != nil {
		return cfg, err
	}

	if cfg.Channels, err = intFromEnv("OPUS_CHANNELS"); err != nil {
		return cfg, err
	}

	if val := os.Getenv("OPUS_APPLICATION"); val != "" {
		if cfg.Application, err = opus.ParseApplication(val); err != nil {
			return cfg, fmt.Errorf("failed to parse OPUS_APPLICATION: %w", err)
		}
	}

	if val := os.Getenv("OPUS_FRAME_DURATION_MS"); val != "" {
		ms, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse OPUS_FRAME_DURATION_MS: %w", err)
		}
		cfg.FrameDuration = time.Duration(ms * float64(time.Millisecond))
	}

	if err := cfg.Encoder.FromEnv(); err != nil {
		return cfg, err
	}

	if err := cfg.Decoder.FromEnv(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func IntPtr(v int) *int {
	return &v
}

func formatMs(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds()*1000, 'f', -1, 64)
}

// intFromMap accepts both int and float64 since values may have gone
// through a JSON round trip.
func intFromMap(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func intPtrFromMap(m map[string]any, key string) *int {
	if _, ok := m[key]; !ok {
		return nil
	}
	return IntPtr(intFromMap(m, key))
}

func intFromEnv(key string) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return n, nil
}

// intPtrFromEnv returns nil when key is unset so that an explicit zero can be
// told apart from a missing value.
func intPtrFromEnv(key string) (*int, error) {
	if os.Getenv(key) == "" {
		return nil, nil
	}
	n, err := intFromEnv(key)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func boolFromEnv(key string) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return b, nil
}
