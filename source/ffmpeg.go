package source

import (
	"context"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// File decodes an audio file to mono float64 samples at rate Hz via
// ffmpeg.
func File(ctx context.Context, path string, rate int) ([]float64, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "panic",
		"-i", path,
		"-ar", strconv.Itoa(rate),
		"-ac", "1",
		"-f", "f64le",
		"-",
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrap(err, "decode "+path)
	}
	return parseFloats(out, false), nil
}
