// Package beepplayer plays WAV and MP3 alarm sounds through the system
// speaker. It is kept apart from package sound so that only the binary that
// opens a sound file links the audio backend.
package beepplayer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/inovacc/clockr/internal/sound"
)

// ErrUnsupportedFormat is returned by Open for files that are neither WAV nor MP3.
var ErrUnsupportedFormat = errors.New("unsupported sound format")

// filePlayer loops a decoded file through a paused control on the speaker.
type filePlayer struct {
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
}

// Open decodes the file at path and prepares it for looping playback.
// The speaker starts paused; nothing is heard until Play.
func Open(path string) (sound.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		_ = f.Close()

		return nil, fmt.Errorf("%s: %w", ext, ErrUnsupportedFormat)
	}

	if err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("failed to decode sound %s: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		_ = streamer.Close()

		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p := &filePlayer{
		streamer: streamer,
		ctrl:     &beep.Ctrl{Streamer: beep.Loop(-1, streamer), Paused: true},
	}

	speaker.Play(p.ctrl)

	return p, nil
}

func (p *filePlayer) Play() error {
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()

	return nil
}

func (p *filePlayer) Pause() error {
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()

	return nil
}

func (p *filePlayer) Rewind() error {
	speaker.Lock()
	defer speaker.Unlock()

	return p.streamer.Seek(0)
}

func (p *filePlayer) Close() error {
	speaker.Clear()

	return p.streamer.Close()
}
