package audio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	wavBitsPerSample = 16
	wavChannels      = 1
	wavChunk         = 4096
)

// Renderer produces mono samples.
type Renderer interface {
	Render(buf []float32)
	SampleRate() int
}

// WriteWAV renders seconds of audio from r as 16-bit mono PCM WAV.
func WriteWAV(w io.Writer, r Renderer, seconds float64) error {
	if seconds <= 0 {
		return errors.New("wav: duration must be positive")
	}
	rate := r.SampleRate()
	total := int(math.Round(seconds * float64(rate)))
	dataSize := total * wavChannels * wavBitsPerSample / 8

	bw := bufio.NewWriter(w)
	header := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36 + dataSize),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(1),
		uint16(wavChannels),
		uint32(rate),
		uint32(rate * wavChannels * wavBitsPerSample / 8),
		uint16(wavChannels * wavBitsPerSample / 8),
		uint16(wavBitsPerSample),
		[4]byte{'d', 'a', 't', 'a'},
		uint32(dataSize),
	}
	for _, field := range header {
		if err := binary.Write(bw, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("wav header: %w", err)
		}
	}

	buf := make([]float32, wavChunk)
	pcm := make([]int16, wavChunk)
	for written := 0; written < total; {
		n := min(wavChunk, total-written)
		r.Render(buf[:n])
		for i, v := range buf[:n] {
			pcm[i] = int16(math.Round(float64(v) * math.MaxInt16))
		}
		if err := binary.Write(bw, binary.LittleEndian, pcm[:n]); err != nil {
			return fmt.Errorf("wav data: %w", err)
		}
		written += n
	}
	return bw.Flush()
}
