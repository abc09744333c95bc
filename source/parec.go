package source

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/lawl/pulseaudio"
	"github.com/pkg/errors"
)

// Stream captures live mono audio with parec and hands each parsed
// chunk of chunk samples to emit, until ctx ends or the capture stops.
// An empty device selects the default source.
func Stream(ctx context.Context, device string, rate, chunk int, emit func([]float64)) error {
	args := []string{
		"parec",
		"--format=float32le",
		fmt.Sprintf("--rate=%d", rate),
		"--channels=1",
	}
	if device != "" {
		args = append(args, "-d", device)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	o, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stdout pipe")
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start parec")
	}
	defer func() {
		o.Close()
		cmd.Wait()
	}()

	raw := make([]byte, chunk*4)
	for {
		if _, err := io.ReadFull(o, raw); err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return errors.Wrap(err, "failed to read capture")
		}
		emit(parseFloats(raw, true))
	}
}

// ListSources enumerates the PulseAudio capture sources.
func ListSources() ([]string, error) {
	c, err := pulseaudio.NewClient()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}
	defer c.Close()

	s, err := c.Sources()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sources")
	}

	names := make([]string, len(s))
	for i, source := range s {
		names[i] = source.Name
	}
	return names, nil
}
