package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/youpy/go-wav"
)

// DecodeWAV reads a PCM WAV file into a Buffer. Stereo input is
// downmixed by averaging channels. Only 16-bit PCM is accepted; the
// normalizer always produces it.
func DecodeWAV(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	reader := wav.NewReader(f)
	format, err := reader.Format()
	if err != nil {
		return nil, fmt.Errorf("read wav format: %w", err)
	}
	if format.BitsPerSample != 16 {
		return nil, fmt.Errorf("unsupported wav bit depth: %d", format.BitsPerSample)
	}
	if format.NumChannels != 1 && format.NumChannels != 2 {
		return nil, fmt.Errorf("unsupported wav channel count: %d", format.NumChannels)
	}

	var pcm []int16
	for {
		samples, err := reader.ReadSamples(4096)
		for _, s := range samples {
			if format.NumChannels == 2 {
				pcm = append(pcm, int16((s.Values[0]+s.Values[1])/2))
			} else {
				pcm = append(pcm, int16(s.Values[0]))
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read wav samples: %w", err)
		}
	}

	return &Buffer{Samples: pcm, SampleRate: int(format.SampleRate)}, nil
}

// EncodeWAV serializes a buffer as a 16-bit mono PCM WAV stream, the
// shape exec-based collaborators expect on disk.
func EncodeWAV(w io.Writer, buf *Buffer) error {
	writer := wav.NewWriter(w, uint32(len(buf.Samples)), 1, uint32(buf.SampleRate), 16)

	samples := make([]wav.Sample, len(buf.Samples))
	for i, v := range buf.Samples {
		samples[i].Values[0] = int(v)
	}
	if err := writer.WriteSamples(samples); err != nil {
		return fmt.Errorf("write wav samples: %w", err)
	}
	return nil
}

// WriteWAVFile writes the buffer to path as 16-bit mono PCM WAV.
func WriteWAVFile(path string, buf *Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	if err := EncodeWAV(f, buf); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close wav: %w", err)
	}
	return nil
}
