package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ExtractFrame pulls the first frame of a video as JPEG bytes using the
// ffmpeg binary. Callers decide whether the input is a video; this only
// runs the extraction.
func ExtractFrame(ctx context.Context, video []byte) ([]byte, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("video frame extraction requires ffmpeg on PATH; install ffmpeg or submit an image instead")
	}

	tmpDir, err := os.MkdirTemp("", "verilens-frame-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	in := filepath.Join(tmpDir, "input")
	out := filepath.Join(tmpDir, "frame.jpg")
	if err := os.WriteFile(in, video, 0o600); err != nil {
		return nil, fmt.Errorf("write temp video: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-i", in, "-vframes", "1", "-q:v", "2", out)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed to extract a frame: %w", err)
	}

	frame, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg produced no frame: %w", err)
	}
	return frame, nil
}
