//go:build !ci

package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// Cue names looked up in assets/sounds/<name>.{mp3,wav}.
const (
	CueDeal = "deal"
	CuePlay = "play"
	CueWin  = "win"
	CueLose = "lose"
	CueDraw = "draw"
)

var cueNames = []string{CueDeal, CuePlay, CueWin, CueLose, CueDraw}

type SoundManager struct {
	buffers map[string]*beep.Buffer
	enabled bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		buffers: make(map[string]*beep.Buffer),
		enabled: false,
	}
}

func (sm *SoundManager) Init() error {
	sampleRate := beep.SampleRate(44100)
	// Init speaker with smaller buffer for lower latency
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	sm.enabled = true

	// Missing files are fine, the cue just stays silent
	for _, name := range cueNames {
		if err := sm.loadCue(name, sampleRate); err != nil {
			continue
		}
	}
	return nil
}

// loadCue loads assets/sounds/<name>.mp3 or .wav into a buffer
func (sm *SoundManager) loadCue(name string, sampleRate beep.SampleRate) error {
	var (
		f   *os.File
		ext string
		err error
	)
	for _, ext = range []string{".mp3", ".wav"} {
		path := filepath.Join("assets", "sounds", name+ext)
		f, err = os.Open(filepath.Clean(path))
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return err
	}
	defer func() { _ = streamer.Close() }()

	// Resample if necessary
	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	// Use standard stereo format
	standardFormat := beep.Format{
		SampleRate:  sampleRate,
		NumChannels: 2,
		Precision:   4,
	}

	buffer := beep.NewBuffer(standardFormat)
	buffer.Append(resampled)

	sm.buffers[name] = buffer
	return nil
}

func (sm *SoundManager) Play(name string) {
	if !sm.enabled {
		return
	}

	buffer, ok := sm.buffers[name]
	if !ok {
		// Silent failure if sound not found
		return
	}

	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

func (sm *SoundManager) Close() {
	sm.enabled = false
}
