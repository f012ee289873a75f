package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/jlindh/studiocast/pkg/provider"
)

var (
	// ErrFFmpegNotFound is returned when ffmpeg is not installed.
	ErrFFmpegNotFound = errors.New("ffmpeg not found in PATH")
)

// MixSpec controls how background music is laid under a speech track. The
// fade-out is timed to end at end-of-speech; the mixed output always has the
// speech track's duration (music is truncated, never speech).
type MixSpec struct {
	FadeIn  time.Duration
	FadeOut time.Duration

	MusicVolume float64
}

func DefaultMixSpec() MixSpec {
	return MixSpec{
		FadeIn:  5 * time.Second,
		FadeOut: 5 * time.Second,

		MusicVolume: 0.1,
	}
}

// fadeOutStart computes where the music fade-out begins. Estimated durations
// are approximate, so the start is clamped to zero rather than going
// negative for very short speech.
func (s MixSpec) fadeOutStart(speech time.Duration) time.Duration {
	start := speech - s.FadeOut

	if start < 0 {
		return 0
	}

	return start
}

// Mixer drives ffmpeg to mix speech with looping background music.
type Mixer struct {
	ffmpegPath  string
	ffprobePath string
}

func NewMixer() (*Mixer, error) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, ErrFFmpegNotFound
	}

	// ffprobe is optional; without it durations are estimated from bitrate
	ffprobe, _ := exec.LookPath("ffprobe")

	return &Mixer{
		ffmpegPath:  ffmpeg,
		ffprobePath: ffprobe,
	}, nil
}

func NewMixerWithPaths(ffmpeg, ffprobe string) *Mixer {
	return &Mixer{
		ffmpegPath:  ffmpeg,
		ffprobePath: ffprobe,
	}
}

// Duration returns the track's measured duration via ffprobe, falling back
// to the bitrate estimate when ffprobe is unavailable or fails.
func (m *Mixer) Duration(ctx context.Context, track *Track) time.Duration {
	if m.ffprobePath == "" {
		return track.EstimateDuration()
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		"-f", "mp3",
		"-i", "pipe:0",
	}

	cmd := exec.CommandContext(ctx, m.ffprobePath, args...)
	cmd.Stdin = bytes.NewReader(track.Data)

	out, err := cmd.Output()

	if err != nil {
		return track.EstimateDuration()
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)

	if err != nil || seconds < 0 {
		return track.EstimateDuration()
	}

	return time.Duration(seconds * float64(time.Second))
}

// Mix lays the music file under the speech track. The output duration
// equals the speech duration. A failing or missing ffmpeg aborts
// the operation; the unmixed speech track is never substituted.
func (m *Mixer) Mix(ctx context.Context, speech *Track, musicPath string, spec MixSpec) (*Track, error) {
	if speech == nil || len(speech.Data) == 0 {
		return nil, provider.NewValidationError("empty speech track")
	}

	duration := m.Duration(ctx, speech)

	args := []string{
		"-f", "mp3",
		"-i", "pipe:0",
		"-stream_loop", "-1",
		"-i", musicPath,
		"-filter_complex", buildFilter(spec, duration),
		"-map", "[out]",
		"-f", "mp3",
		"-loglevel", "error",
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, m.ffmpegPath, args...)
	cmd.Stdin = bytes.NewReader(speech.Data)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return nil, provider.NewFatalError("audio mix failed: " + stderr.String())
	}

	return &Track{
		Data: stdout.Bytes(),

		ContentType: "audio/mpeg",
	}, nil
}

func buildFilter(spec MixSpec, speech time.Duration) string {
	fadeIn := spec.FadeIn.Seconds()
	fadeOut := spec.FadeOut.Seconds()
	fadeOutStart := spec.fadeOutStart(speech).Seconds()

	bg := fmt.Sprintf("[1]volume=%s,afade=t=in:ss=0:d=%s,afade=t=out:st=%s:d=%s[bg]",
		formatSeconds(spec.MusicVolume),
		formatSeconds(fadeIn),
		formatSeconds(fadeOutStart),
		formatSeconds(fadeOut),
	)

	return bg + ";[0][bg]amix=inputs=2:duration=first:dropout_transition=2[out]"
}

func formatSeconds(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
