package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	ga "github.com/go-audio/audio"
	wav "github.com/go-audio/wav"
)

const (
	wavFormatPCM       = 1
	wavBitDepth        = 16
	wavBitDepth24      = 24
	wavFramesPerBuffer = 4096
	samplesChSize      = 10
)

type wavReader struct {
	file *os.File
	dec  *wav.Decoder
}

func openWAV(path string) (*wavReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wav file: %w", err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, errors.New("invalid WAV file")
	}
	if dec.WavAudioFormat != wavFormatPCM {
		f.Close()
		return nil, fmt.Errorf("unsupported WAV format %d: only integer PCM is supported", dec.WavAudioFormat)
	}
	if dec.BitDepth != wavBitDepth && dec.BitDepth != wavBitDepth24 {
		f.Close()
		return nil, fmt.Errorf("unsupported WAV bit depth %d: only 16 and 24 bits are supported", dec.BitDepth)
	}

	return &wavReader{
		file: f,
		dec:  dec,
	}, nil
}

func (r *wavReader) Format() *ga.Format {
	return r.dec.Format()
}

func (r *wavReader) Close() error {
	return r.file.Close()
}

// Samples streams the file as interleaved 16-bit samples.
func (r *wavReader) Samples() <-chan []int16 {
	samplesCh := make(chan []int16, samplesChSize)
	format := r.dec.Format()
	shift := int(r.dec.BitDepth) - wavBitDepth

	go func() {
		defer close(samplesCh)

		buf := &ga.IntBuffer{
			Data:   make([]int, wavFramesPerBuffer*format.NumChannels),
			Format: format,
		}

		for {
			n, err := r.dec.PCMBuffer(buf)
			if err != nil && !errors.Is(err, io.EOF) {
				slog.Error("failed to read wav samples", slog.String("err", err.Error()))
				return
			}
			if n == 0 {
				return
			}

			samples := make([]int16, n)
			for i, v := range buf.Data[:n] {
				if shift > 0 {
					v >>= shift
				} else if shift < 0 {
					v <<= -shift
				}
				samples[i] = int16(v)
			}
			samplesCh <- samples
		}
	}()

	return samplesCh
}

// writeWAV stores the samples received on samplesCh as a 16-bit PCM file,
// dropping the first skip samples per channel. It returns the number of
// samples per channel written.
func writeWAV(path string, sampleRate, channels, skip int, samplesCh <-chan []int16) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create wav file: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, channels, 1)
	format := &ga.Format{
		SampleRate:  sampleRate,
		NumChannels: channels,
	}

	skip *= channels
	var written int
	var writeErr error
	for samples := range samplesCh {
		if writeErr != nil {
			continue
		}

		if skip > 0 {
			n := min(skip, len(samples))
			samples = samples[n:]
			skip -= n
		}
		if len(samples) == 0 {
			continue
		}

		buf := &ga.IntBuffer{
			Format:         format,
			Data:           make([]int, len(samples)),
			SourceBitDepth: wavBitDepth,
		}
		for i, v := range samples {
			buf.Data[i] = int(v)
		}

		if err := enc.Write(buf); err != nil {
			writeErr = fmt.Errorf("failed to write wav samples: %w", err)
			continue
		}
		written += len(samples) / channels
	}

	if err := enc.Close(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("failed to close wav encoder: %w", err)
	}

	return written, writeErr
}
