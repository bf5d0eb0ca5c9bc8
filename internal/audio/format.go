package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format describes the recognition parameters detected for an audio file
type Format struct {
	Encoding   string
	SampleRate int
	// DurationSeconds is 0 when the duration cannot be determined
	// (compressed formats are not decoded locally)
	DurationSeconds float64
}

const (
	EncodingLinear16 = "LINEAR16"
	EncodingMP3      = "MP3"
	EncodingFLAC     = "FLAC"
)

// Probe detects encoding and sample rate from the file extension. WAV
// files additionally get their actual sample rate and duration read
// from the RIFF header; a malformed header falls back to 44100.
func Probe(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return Format{Encoding: EncodingMP3, SampleRate: 44100}
	case ".flac":
		return Format{Encoding: EncodingFLAC, SampleRate: 44100}
	case ".wav":
		sampleRate, duration, err := probeWAV(path)
		if err != nil {
			return Format{Encoding: EncodingLinear16, SampleRate: 44100}
		}
		return Format{Encoding: EncodingLinear16, SampleRate: sampleRate, DurationSeconds: duration}
	default:
		return Format{Encoding: EncodingLinear16, SampleRate: 16000}
	}
}

// probeWAV reads the sample rate and duration out of a RIFF/WAVE header
func probeWAV(path string) (int, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return 0, 0, fmt.Errorf("failed to read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return 0, 0, fmt.Errorf("not a WAVE file")
	}

	var (
		sampleRate uint32
		byteRate   uint32
		dataSize   uint32
	)

	// Walk the chunk list for "fmt " and "data"
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(f, chunk[:]); err != nil {
			break
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			var format [16]byte
			if size < 16 {
				return 0, 0, fmt.Errorf("fmt chunk too small: %d bytes", size)
			}
			if _, err := io.ReadFull(f, format[:]); err != nil {
				return 0, 0, fmt.Errorf("failed to read fmt chunk: %w", err)
			}
			sampleRate = binary.LittleEndian.Uint32(format[4:8])
			byteRate = binary.LittleEndian.Uint32(format[8:12])
			if size > 16 {
				if _, err := f.Seek(int64(size-16), io.SeekCurrent); err != nil {
					return 0, 0, err
				}
			}
		case "data":
			dataSize = size
			// data follows the header we care about; no need to read it
			if _, err := f.Seek(int64(size), io.SeekCurrent); err != nil {
				break
			}
		default:
			if _, err := f.Seek(int64(size), io.SeekCurrent); err != nil {
				break
			}
		}

		if sampleRate != 0 && dataSize != 0 {
			break
		}
	}

	if sampleRate == 0 {
		return 0, 0, fmt.Errorf("no fmt chunk found")
	}

	var duration float64
	if byteRate != 0 && dataSize != 0 {
		duration = float64(dataSize) / float64(byteRate)
	}

	return int(sampleRate), duration, nil
}
