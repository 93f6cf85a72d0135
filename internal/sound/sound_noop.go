//go:build ci

package sound

// Cue names, kept in sync with the real build.
const (
	CueDeal = "deal"
	CuePlay = "play"
	CueWin  = "win"
	CueLose = "lose"
	CueDraw = "draw"
)

type SoundManager struct{}

func NewSoundManager() *SoundManager {
	return &SoundManager{}
}

func (sm *SoundManager) Init() error {
	return nil
}

func (sm *SoundManager) Play(name string) {
	// No-op
}

func (sm *SoundManager) Close() {
	// No-op
}
