// Package ui implements the terminal front end. All rules live in
// internal/game; this model only renders snapshots and forwards intents.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/crazy-eights/internal/card"
	"github.com/palemoky/crazy-eights/internal/config"
	"github.com/palemoky/crazy-eights/internal/game"
	"github.com/palemoky/crazy-eights/internal/logger"
	"github.com/palemoky/crazy-eights/internal/sound"
	"github.com/palemoky/crazy-eights/internal/stats"
)

// computerTurnMsg 电脑思考延迟结束。seq 用来丢弃重开局之前的旧任务。
type computerTurnMsg struct {
	seq int
}

// statsRecordedMsg 战绩写入完成
type statsRecordedMsg struct {
	stats *stats.PlayerStats
}

// Model is the single Bubble Tea model driving one game.
type Model struct {
	game  *game.Game
	cfg   *config.Config
	sound *sound.SoundManager
	stats *stats.Store // nil when stats are disabled

	width  int
	height int

	cursor      int // selected card in the player hand
	spinner     spinner.Model
	showingHelp bool
	errMsg      string
	statsLine   string

	// Single-flight guard for the computer turn: at most one thinking
	// task may be outstanding, and a restart invalidates it via botSeq.
	botPending bool
	botSeq     int

	recorded bool // result of the current game already written
}

// NewModel creates the game model. store may be nil.
func NewModel(cfg *config.Config, sm *sound.SoundManager, store *stats.Store) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		game:    game.New(),
		cfg:     cfg,
		sound:   sm,
		stats:   store,
		spinner: sp,
	}
}

func (m *Model) Init() tea.Cmd {
	m.sound.Play(sound.CueDeal)
	return m.spinner.Tick
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case computerTurnMsg:
		return m.handleComputerTurn(msg)

	case statsRecordedMsg:
		m.statsLine = formatStatsLine(msg.stats)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "h":
		m.showingHelp = !m.showingHelp
		return m, nil
	}
	if m.showingHelp {
		if msg.String() == "esc" {
			m.showingHelp = false
		}
		return m, nil
	}

	snap := m.game.Snapshot()
	switch snap.Status {
	case game.StatusPlaying:
		return m.handlePlayingKey(msg, snap)
	case game.StatusPickingSuit:
		return m.handlePickingKey(msg)
	case game.StatusGameOver:
		if msg.String() == "r" {
			return m, m.restart()
		}
	}
	return m, nil
}

func (m *Model) handlePlayingKey(msg tea.KeyMsg, snap game.Snapshot) (tea.Model, tea.Cmd) {
	// 牌堆摸空后允许随时重开
	if msg.String() == "r" && snap.StockCount == 0 {
		return m, m.restart()
	}

	if snap.Turn != game.SeatPlayer {
		return m, nil
	}

	switch msg.String() {
	case "left":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor < len(snap.PlayerHand)-1 {
			m.cursor++
		}
	case "d":
		if err := m.game.Draw(game.SeatPlayer); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.sound.Play(sound.CuePlay)
		return m, m.afterTransition()
	case "enter", " ":
		if len(snap.PlayerHand) == 0 {
			return m, nil
		}
		m.clampCursor(len(snap.PlayerHand))
		if err := m.game.Play(game.SeatPlayer, snap.PlayerHand[m.cursor].ID); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.sound.Play(sound.CuePlay)
		return m, m.afterTransition()
	}
	return m, nil
}

func (m *Model) handlePickingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var suit card.Suit
	switch msg.String() {
	case "1":
		suit = card.Spade
	case "2":
		suit = card.Heart
	case "3":
		suit = card.Club
	case "4":
		suit = card.Diamond
	default:
		return m, nil
	}

	if err := m.game.ChooseSuit(suit); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	return m, m.afterTransition()
}

func (m *Model) handleComputerTurn(msg computerTurnMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.botSeq {
		// 过期任务（重开局后才会出现），直接丢弃
		return m, nil
	}
	m.botPending = false

	snap := m.game.Snapshot()
	if snap.Turn != game.SeatComputer || snap.Status != game.StatusPlaying {
		return m, nil
	}
	if err := m.game.ComputerMove(); err != nil {
		logger.LogError("computer move rejected: %v", err)
		return m, nil
	}
	m.sound.Play(sound.CuePlay)
	return m, m.afterTransition()
}

// afterTransition reacts to the new engine state: schedules the computer
// turn after the thinking delay, and handles terminal states once.
func (m *Model) afterTransition() tea.Cmd {
	snap := m.game.Snapshot()
	m.clampCursor(len(snap.PlayerHand))

	if snap.Status == game.StatusGameOver {
		return m.finishGame(snap.Winner)
	}

	if snap.Turn == game.SeatComputer && snap.Status == game.StatusPlaying && !m.botPending {
		m.botPending = true
		seq := m.botSeq
		delay := m.cfg.Game.ThinkDelayDuration()
		return tea.Tick(delay, func(time.Time) tea.Msg {
			return computerTurnMsg{seq: seq}
		})
	}
	return nil
}

func (m *Model) finishGame(winner game.Winner) tea.Cmd {
	if m.recorded {
		return nil
	}
	m.recorded = true

	switch winner {
	case game.WinnerPlayer:
		m.sound.Play(sound.CueWin)
	case game.WinnerComputer:
		m.sound.Play(sound.CueLose)
	case game.WinnerDraw:
		m.sound.Play(sound.CueDraw)
	}

	if m.stats == nil {
		return nil
	}
	store := m.stats
	return func() tea.Msg {
		defer func() {
			if r := recover(); r != nil {
				logger.LogPanic(r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		recorded, err := store.Record(ctx, winner)
		if err != nil {
			logger.LogError("failed to record game result: %v", err)
			return nil
		}
		return statsRecordedMsg{stats: recorded}
	}
}

func (m *Model) restart() tea.Cmd {
	if err := m.game.Restart(); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	// 作废还在飞的电脑思考任务
	m.botSeq++
	m.botPending = false
	m.recorded = false
	m.cursor = 0
	m.statsLine = ""
	m.sound.Play(sound.CueDeal)
	return m.afterTransition()
}

func (m *Model) clampCursor(handSize int) {
	if handSize == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= handSize {
		m.cursor = handSize - 1
	}
}
