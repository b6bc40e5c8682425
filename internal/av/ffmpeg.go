// Package av assembles scene clips into a final advertisement with ffmpeg.
package av

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ffmpegBin is overridable for tests
var ffmpegBin = "ffmpeg"

// Available reports whether ffmpeg can be found on the PATH
func Available() bool {
	_, err := exec.LookPath(ffmpegBin)
	return err == nil
}

// ConcatListContent builds the concat demuxer list file for the given inputs.
// Single quotes in paths are escaped per ffmpeg's list file quoting rules.
func ConcatListContent(paths []string) string {
	var sb strings.Builder
	for _, p := range paths {
		escaped := strings.ReplaceAll(p, "'", `'\''`)
		fmt.Fprintf(&sb, "file '%s'\n", escaped)
	}
	return sb.String()
}

// Concat concatenates the input videos into outPath without re-encoding.
// Inputs must share codec parameters, which holds for clips from the same
// Veo model and configuration.
func Concat(ctx context.Context, inputs []string, outPath string) error {
	if len(inputs) < 2 {
		return fmt.Errorf("concat requires at least 2 inputs, got %d", len(inputs))
	}

	workDir := filepath.Dir(outPath)
	listPath := filepath.Join(workDir, "concat.txt")
	if err := os.WriteFile(listPath, []byte(ConcatListContent(inputs)), 0644); err != nil {
		return fmt.Errorf("failed to write concat list: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffmpegBin,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg concat failed: %w: %s", err, tail(stderr.String(), 2048))
	}
	return nil
}

// tail returns at most n trailing bytes of s; ffmpeg puts the useful error last
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
