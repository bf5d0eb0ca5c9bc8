package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// writeWAV writes a minimal RIFF/WAVE file with the given sample rate
// and the given number of seconds of silence
func writeWAV(t *testing.T, path string, sampleRate uint32, seconds float64) {
	t.Helper()

	const (
		channels      = 1
		bitsPerSample = 16
	)
	byteRate := sampleRate * channels * bitsPerSample / 8
	dataSize := uint32(float64(byteRate) * seconds)

	buf := make([]byte, 44+dataSize)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], 36+dataSize)
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], channels)
	binary.LittleEndian.PutUint32(buf[24:28], sampleRate)
	binary.LittleEndian.PutUint32(buf[28:32], byteRate)
	binary.LittleEndian.PutUint16(buf[32:34], uint16(channels*bitsPerSample/8))
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], dataSize)

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("Failed to write test WAV: %v", err)
	}
}

func TestProbeByExtension(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		encoding   string
		sampleRate int
	}{
		{"mp3", "clip.mp3", EncodingMP3, 44100},
		{"flac", "clip.flac", EncodingFLAC, 44100},
		{"unknown", "clip.raw", EncodingLinear16, 16000},
		{"no extension", "clip", EncodingLinear16, 16000},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.filename)
			if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
				t.Fatalf("Failed to write test file: %v", err)
			}

			format := Probe(path)
			if format.Encoding != tt.encoding {
				t.Errorf("Expected encoding %s, got %s", tt.encoding, format.Encoding)
			}
			if format.SampleRate != tt.sampleRate {
				t.Errorf("Expected sample rate %d, got %d", tt.sampleRate, format.SampleRate)
			}
		})
	}
}

func TestProbeWAVHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speech.wav")
	writeWAV(t, path, 8000, 2.0)

	format := Probe(path)

	if format.Encoding != EncodingLinear16 {
		t.Errorf("Expected LINEAR16, got %s", format.Encoding)
	}

	if format.SampleRate != 8000 {
		t.Errorf("Expected sample rate 8000 from header, got %d", format.SampleRate)
	}

	if format.DurationSeconds < 1.9 || format.DurationSeconds > 2.1 {
		t.Errorf("Expected ~2s duration, got %f", format.DurationSeconds)
	}
}

func TestProbeMalformedWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte("RIFFxxxx"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	format := Probe(path)

	// Fallback when the header cannot be parsed
	if format.SampleRate != 44100 {
		t.Errorf("Expected fallback sample rate 44100, got %d", format.SampleRate)
	}

	if format.DurationSeconds != 0 {
		t.Errorf("Expected unknown duration, got %f", format.DurationSeconds)
	}
}
