package game

import (
	"fmt"
	"sync"

	"github.com/palemoky/crazy-eights/internal/apperrors"
	"github.com/palemoky/crazy-eights/internal/card"
	"github.com/palemoky/crazy-eights/internal/game/rule"
)

// InitialHandSize 开局每方的手牌数
const InitialHandSize = 7

// Seat 定义行动方
type Seat int

const (
	SeatPlayer Seat = iota
	SeatComputer
)

func (s Seat) String() string {
	if s == SeatPlayer {
		return "玩家"
	}
	return "电脑"
}

// Status 定义游戏阶段
type Status int

const (
	StatusDealing Status = iota
	StatusPlaying
	StatusPickingSuit // 玩家打出 8，等待选花色
	StatusGameOver
)

// Winner 定义对局结果
type Winner int

const (
	WinnerNone Winner = iota
	WinnerPlayer
	WinnerComputer
	WinnerDraw
)

// Game 定义游戏状态。所有状态转移都串行化在同一把锁后面，
// 任何时刻牌堆 + 双方手牌 + 弃牌堆恰好是完整的 52 张。
type Game struct {
	mu sync.Mutex

	stock        card.Deck
	playerHand   []card.Card
	computerHand []card.Card
	discard      []card.Card

	// 当前标记：下一张牌必须匹配的 (花色, 点数)。
	// 打出 8 后花色由出牌方指定，点数仍是 8。
	currentSuit card.Suit
	currentRank card.Rank

	turn    Seat
	status  Status
	winner  Winner
	pending *card.Card // 玩家打出的 8，选完花色前留在手牌中
	message string

	newDeck func() card.Deck
}

// Option 配置 Game
type Option func(*Game)

// WithDeck 注入固定顺序的一副牌并跳过洗牌（测试用）
func WithDeck(d card.Deck) Option {
	return func(g *Game) {
		g.newDeck = func() card.Deck {
			deck := make(card.Deck, len(d))
			copy(deck, d)
			return deck
		}
	}
}

// New 创建并发好一局新游戏
func New(opts ...Option) *Game {
	g := &Game{status: StatusDealing}
	for _, opt := range opts {
		opt(g)
	}
	g.deal()
	return g
}

// deal 洗牌、发牌、翻起始牌。调用方需持有锁（或对象尚未共享）。
func (g *Game) deal() {
	var deck card.Deck
	if g.newDeck != nil {
		deck = g.newDeck()
	} else {
		deck = card.NewDeck()
		deck.Shuffle()
	}

	g.playerHand = append([]card.Card(nil), deck[:InitialHandSize]...)
	g.computerHand = append([]card.Card(nil), deck[InitialHandSize:2*InitialHandSize]...)
	stock := append(card.Deck(nil), deck[2*InitialHandSize:]...)

	// 起始牌取牌堆中第一张非 8 的牌，跳过的 8 留在牌堆原位
	first := 0
	for first < len(stock) && stock[first].Rank.IsWild() {
		first++
	}
	if first == len(stock) {
		// 标准 52 张牌发 14 张后不可能发生，属于牌堆配置错误
		panic("crazy-eights: 牌堆中没有非 8 的起始牌")
	}
	starter := stock[first]
	stock = append(stock[:first], stock[first+1:]...)

	g.stock = stock
	g.discard = []card.Card{starter}
	g.currentSuit = starter.Suit
	g.currentRank = starter.Rank
	g.turn = SeatPlayer
	g.status = StatusPlaying
	g.winner = WinnerNone
	g.pending = nil
	g.message = "你的回合"
}

// Restart 重新开局。只有对局结束或牌堆摸空时允许，
// 防止中途弃局破坏 52 张守恒。
func (g *Game) Restart() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusGameOver && len(g.stock) > 0 {
		return apperrors.ErrGameInProgress
	}
	g.deal()
	return nil
}

// Draw 摸牌。从牌堆头部逐张摸入当前手牌，摸到能出的牌为止；
// 牌堆摸空仍无牌可出则弃权换边。玩家摸到能出的牌后仍需自己选择出牌，
// 电脑则立即打出刚摸到的那张。
func (g *Game) Draw(seat Seat) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusPlaying {
		return apperrors.ErrWrongPhase
	}
	if seat != g.turn {
		return apperrors.ErrNotYourTurn
	}

	if seat == SeatComputer {
		g.computerDraw()
		return nil
	}
	g.playerDraw()
	return nil
}

func (g *Game) playerDraw() {
	if len(g.stock) == 0 {
		g.message = "没牌可摸了，跳过回合"
		if g.checkDraw() {
			return
		}
		g.endTurn(SeatComputer, "没牌可摸了，轮到电脑")
		return
	}

	drawn := 0
	found := false
	for len(g.stock) > 0 {
		c := g.stock[0]
		g.stock = g.stock[1:]
		g.playerHand = append(g.playerHand, c)
		drawn++
		if rule.IsPlayable(c, g.currentSuit, g.currentRank) {
			found = true
			break
		}
	}

	if found {
		g.message = fmt.Sprintf("摸了 %d 张牌，现在你可以出牌了", drawn)
		return
	}
	if g.checkDraw() {
		return
	}
	g.endTurn(SeatComputer, "摸完了所有牌仍然无法出牌，轮到电脑")
}

// Play 出牌。牌必须在出牌方手中且符合当前标记。
// 玩家打出 8 时进入选花色阶段，8 留在手牌中等待 ChooseSuit；
// 电脑打出 8 时由策略同步选定花色，没有中间状态。
func (g *Game) Play(seat Seat, cardID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusPlaying {
		return apperrors.ErrWrongPhase
	}
	if seat != g.turn {
		return apperrors.ErrNotYourTurn
	}

	hand := g.hand(seat)
	idx := indexByID(*hand, cardID)
	if idx < 0 {
		return apperrors.ErrCardNotInHand
	}
	c := (*hand)[idx]
	if !rule.IsPlayable(c, g.currentSuit, g.currentRank) {
		return apperrors.ErrCardNotPlayable
	}

	if c.Rank.IsWild() && seat == SeatPlayer {
		g.pending = &c
		g.status = StatusPickingSuit
		g.message = "打出 8，请选择新的花色"
		return nil
	}
	if c.Rank.IsWild() {
		g.executePlay(seat, c, mostCommonSuit(g.computerHand))
		return nil
	}
	g.executePlay(seat, c, c.Suit)
	return nil
}

// ChooseSuit 为玩家打出的 8 指定新花色，完成这次出牌
func (g *Game) ChooseSuit(s card.Suit) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusPickingSuit || g.pending == nil {
		return apperrors.ErrNotPickingSuit
	}
	if !s.Valid() {
		return apperrors.ErrInvalidSuit
	}

	g.executePlay(SeatPlayer, *g.pending, s)
	return nil
}

// executePlay 真正执行一次出牌：手牌 → 弃牌堆，更新标记，
// 然后做终局检查，未终局则换边。
func (g *Game) executePlay(seat Seat, played card.Card, newSuit card.Suit) {
	hand := g.hand(seat)
	idx := indexByID(*hand, played.ID)
	*hand = append((*hand)[:idx], (*hand)[idx+1:]...)

	g.discard = append(g.discard, played)
	g.currentSuit = newSuit
	g.currentRank = played.Rank
	g.status = StatusPlaying
	g.pending = nil

	if len(*hand) == 0 {
		g.status = StatusGameOver
		if seat == SeatPlayer {
			g.winner = WinnerPlayer
			g.message = "你赢了！"
		} else {
			g.winner = WinnerComputer
			g.message = "电脑赢了"
		}
		return
	}
	if g.checkDraw() {
		return
	}
	if seat == SeatPlayer {
		g.endTurn(SeatComputer, "电脑正在思考...")
	} else {
		g.endTurn(SeatPlayer, "你的回合")
	}
}

// checkDraw 平局检查：牌堆已空且双方都无牌可出
func (g *Game) checkDraw() bool {
	if len(g.stock) > 0 {
		return false
	}
	if rule.HasPlayable(g.playerHand, g.currentSuit, g.currentRank) ||
		rule.HasPlayable(g.computerHand, g.currentSuit, g.currentRank) {
		return false
	}
	g.status = StatusGameOver
	g.winner = WinnerDraw
	g.message = "双方都无牌可出，平局"
	return true
}

func (g *Game) endTurn(next Seat, msg string) {
	g.turn = next
	g.message = msg
}

func (g *Game) hand(seat Seat) *[]card.Card {
	if seat == SeatPlayer {
		return &g.playerHand
	}
	return &g.computerHand
}

func indexByID(hand []card.Card, id string) int {
	for i, c := range hand {
		if c.ID == id {
			return i
		}
	}
	return -1
}
