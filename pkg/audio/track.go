package audio

import (
	"time"
)

// Track is an encoded audio buffer. All tracks produced by the pipeline use
// one fixed encoding (MP3), so per-utterance segments can be joined by plain
// byte concatenation.
type Track struct {
	Data []byte

	ContentType string
}

// bitrate assumed when the duration cannot be probed (128 kbit/s MP3)
const estimateBitrate = 128000

// Assemble joins per-utterance segments in their given order into a single
// speech track. An empty segment list yields an empty track.
func Assemble(segments [][]byte) *Track {
	var size int

	for _, s := range segments {
		size += len(s)
	}

	data := make([]byte, 0, size)

	for _, s := range segments {
		data = append(data, s...)
	}

	return &Track{
		Data: data,

		ContentType: "audio/mpeg",
	}
}

// EstimateDuration derives an approximate duration from the byte length and
// the assumed bitrate. Use Mixer.Duration for a measured value when ffprobe
// is available.
func (t *Track) EstimateDuration() time.Duration {
	if t == nil || len(t.Data) == 0 {
		return 0
	}

	seconds := float64(len(t.Data)*8) / estimateBitrate

	return time.Duration(seconds * float64(time.Second))
}
