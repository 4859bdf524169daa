package opus

// #include "ctl.h"
import "C"

import (
	"fmt"
	"time"
)

// Application is the coding mode hint passed at creation time and through
// the application control request.
type Application int

const (
	// AppVoIP favours speech intelligibility.
	AppVoIP = Application(C.OPUS_APPLICATION_VOIP)
	// AppAudio favours faithfulness to the input for music and broadcast.
	AppAudio = Application(C.OPUS_APPLICATION_AUDIO)
	// AppRestrictedLowdelay only allows the lowest-latency modes.
	AppRestrictedLowdelay = Application(C.OPUS_APPLICATION_RESTRICTED_LOWDELAY)
)

func (a Application) String() string {
	switch a {
	case AppVoIP:
		return "voip"
	case AppAudio:
		return "audio"
	case AppRestrictedLowdelay:
		return "restricted_lowdelay"
	default:
		return fmt.Sprintf("application(%d)", int(a))
	}
}

// IsValid reports whether a is one of the applications libopus defines.
func (a Application) IsValid() bool {
	switch a {
	case AppVoIP, AppAudio, AppRestrictedLowdelay:
		return true
	default:
		return false
	}
}

// ParseApplication is the inverse of Application.String.
func ParseApplication(s string) (Application, error) {
	switch s {
	case "voip":
		return AppVoIP, nil
	case "audio":
		return AppAudio, nil
	case "restricted_lowdelay", "lowdelay":
		return AppRestrictedLowdelay, nil
	default:
		return 0, fmt.Errorf("invalid application %q", s)
	}
}

// Bandwidth is an audio bandpass.
type Bandwidth int

const (
	// Auto is the OPUS_AUTO sentinel accepted by several requests.
	Auto = int(C.OPUS_AUTO)

	BandwidthAuto = Bandwidth(C.OPUS_AUTO)
	// Narrowband is 4 kHz.
	Narrowband = Bandwidth(C.OPUS_BANDWIDTH_NARROWBAND)
	// Mediumband is 6 kHz.
	Mediumband = Bandwidth(C.OPUS_BANDWIDTH_MEDIUMBAND)
	// Wideband is 8 kHz.
	Wideband = Bandwidth(C.OPUS_BANDWIDTH_WIDEBAND)
	// SuperWideband is 12 kHz.
	SuperWideband = Bandwidth(C.OPUS_BANDWIDTH_SUPERWIDEBAND)
	// Fullband is 20 kHz.
	Fullband = Bandwidth(C.OPUS_BANDWIDTH_FULLBAND)
)

func (b Bandwidth) String() string {
	switch b {
	case BandwidthAuto:
		return "auto"
	case Narrowband:
		return "narrowband"
	case Mediumband:
		return "mediumband"
	case Wideband:
		return "wideband"
	case SuperWideband:
		return "superwideband"
	case Fullband:
		return "fullband"
	default:
		return fmt.Sprintf("bandwidth(%d)", int(b))
	}
}

// ParseBandwidth is the inverse of Bandwidth.String.
func ParseBandwidth(s string) (Bandwidth, error) {
	for _, b := range []Bandwidth{BandwidthAuto, Narrowband, Mediumband, Wideband, SuperWideband, Fullband} {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("invalid bandwidth %q", s)
}

// Signal is the content type hint.
type Signal int

const (
	SignalAuto  = Signal(C.OPUS_AUTO)
	SignalVoice = Signal(C.OPUS_SIGNAL_VOICE)
	SignalMusic = Signal(C.OPUS_SIGNAL_MUSIC)
)

func (s Signal) String() string {
	switch s {
	case SignalAuto:
		return "auto"
	case SignalVoice:
		return "voice"
	case SignalMusic:
		return "music"
	default:
		return fmt.Sprintf("signal(%d)", int(s))
	}
}

// ParseSignal is the inverse of Signal.String.
func ParseSignal(s string) (Signal, error) {
	switch s {
	case "auto":
		return SignalAuto, nil
	case "voice":
		return SignalVoice, nil
	case "music":
		return SignalMusic, nil
	default:
		return 0, fmt.Errorf("invalid signal %q", s)
	}
}

const (
	// BitrateAuto lets the encoder pick a bitrate from the other settings.
	BitrateAuto = int(C.OPUS_AUTO)
	// BitrateMax uses as many bits as the output buffer allows.
	BitrateMax = int(C.OPUS_BITRATE_MAX)
	// ForceChannelsAuto lets the encoder pick between mono and stereo.
	ForceChannelsAuto = int(C.OPUS_AUTO)
)

// FrameDuration controls the expert frame duration request.
type FrameDuration int

const (
	// FrameDurationArg selects the frame size from the encode call.
	FrameDurationArg = FrameDuration(C.OPUS_FRAMESIZE_ARG)
	FrameDuration2_5 = FrameDuration(C.OPUS_FRAMESIZE_2_5_MS)
	FrameDuration5   = FrameDuration(C.OPUS_FRAMESIZE_5_MS)
	FrameDuration10  = FrameDuration(C.OPUS_FRAMESIZE_10_MS)
	FrameDuration20  = FrameDuration(C.OPUS_FRAMESIZE_20_MS)
	FrameDuration40  = FrameDuration(C.OPUS_FRAMESIZE_40_MS)
	FrameDuration60  = FrameDuration(C.OPUS_FRAMESIZE_60_MS)
	FrameDuration80  = FrameDuration(C.OPUS_FRAMESIZE_80_MS)
	FrameDuration100 = FrameDuration(C.OPUS_FRAMESIZE_100_MS)
	FrameDuration120 = FrameDuration(C.OPUS_FRAMESIZE_120_MS)
)

var frameDurations = map[FrameDuration]time.Duration{
	FrameDuration2_5: 2500 * time.Microsecond,
	FrameDuration5:   5 * time.Millisecond,
	FrameDuration10:  10 * time.Millisecond,
	FrameDuration20:  20 * time.Millisecond,
	FrameDuration40:  40 * time.Millisecond,
	FrameDuration60:  60 * time.Millisecond,
	FrameDuration80:  80 * time.Millisecond,
	FrameDuration100: 100 * time.Millisecond,
	FrameDuration120: 120 * time.Millisecond,
}

// Duration returns the frame length, or zero for FrameDurationArg and
// unknown values.
func (f FrameDuration) Duration() time.Duration {
	return frameDurations[f]
}

// FrameDurationFromDuration maps d to the matching request value. A zero
// duration maps to FrameDurationArg.
func FrameDurationFromDuration(d time.Duration) (FrameDuration, error) {
	if d == 0 {
		return FrameDurationArg, nil
	}
	for f, fd := range frameDurations {
		if fd == d {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unsupported frame duration %s", d)
}

// FrameSize returns the number of samples per channel in a frame of
// duration d at the given sample rate.
func FrameSize(sampleRate int, d time.Duration) int {
	return int(int64(sampleRate) * int64(d) / int64(time.Second))
}
