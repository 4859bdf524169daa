package opus

import (
	"math"
)

// sineFrame returns frameSize samples per channel of a 440Hz tone,
// interleaved over channels.
func sineFrame(sampleRate, channels, frameSize, offset int) []int16 {
	pcm := make([]int16, frameSize*channels)
	for i := 0; i < frameSize; i++ {
		v := int16(math.Sin(2*math.Pi*440*float64(offset+i)/float64(sampleRate)) * 8000)
		for c := 0; c < channels; c++ {
			pcm[i*channels+c] = v
		}
	}
	return pcm
}

func sineFrameFloat32(sampleRate, channels, frameSize int) []float32 {
	pcm := make([]float32, frameSize*channels)
	for i := 0; i < frameSize; i++ {
		v := float32(math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)) * 0.25)
		for c := 0; c < channels; c++ {
			pcm[i*channels+c] = v
		}
	}
	return pcm
}
