package audio

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ConvertToLinear16 re-encodes an audio file to 16kHz mono WAV using
// ffmpeg and returns the path of the converted file. The caller is
// responsible for removing it.
func ConvertToLinear16(ctx context.Context, ffmpegPath, srcPath string) (string, error) {
	dstPath := srcPath + ".converted.wav"

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-y",
		"-i", srcPath,
		"-ar", "16000",
		"-ac", "1",
		"-f", "wav",
		dstPath,
	)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg conversion failed: %w (%s)", err, strings.TrimSpace(lastLine(stderr.String())))
	}

	return dstPath, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
