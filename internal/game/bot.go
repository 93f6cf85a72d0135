package game

import (
	"github.com/palemoky/crazy-eights/internal/apperrors"
	"github.com/palemoky/crazy-eights/internal/card"
	"github.com/palemoky/crazy-eights/internal/game/rule"
)

// ComputerMove 执行电脑的一个完整回合：
// 有牌可出时优先出非 8 的牌（8 只在没有别的选择时才出）；
// 无牌可出时逐张摸牌，摸到能出的牌就立即打出，摸空则弃权。
// 思考延迟和防重入由 UI 层负责，引擎本身靠锁保证可重入安全。
func (g *Game) ComputerMove() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusPlaying {
		return apperrors.ErrWrongPhase
	}
	if g.turn != SeatComputer {
		return apperrors.ErrNotYourTurn
	}

	playable := rule.Playable(g.computerHand, g.currentSuit, g.currentRank)
	if len(playable) == 0 {
		g.computerDraw()
		return nil
	}

	pick := playable[0]
	for _, c := range playable {
		if !c.Rank.IsWild() {
			pick = c
			break
		}
	}
	g.playComputerCard(pick)
	return nil
}

func (g *Game) playComputerCard(c card.Card) {
	if c.Rank.IsWild() {
		g.executePlay(SeatComputer, c, mostCommonSuit(g.computerHand))
		return
	}
	g.executePlay(SeatComputer, c, c.Suit)
}

func (g *Game) computerDraw() {
	if len(g.stock) == 0 {
		g.computerForfeit()
		return
	}

	var last card.Card
	found := false
	for len(g.stock) > 0 {
		c := g.stock[0]
		g.stock = g.stock[1:]
		g.computerHand = append(g.computerHand, c)
		last = c
		if rule.IsPlayable(c, g.currentSuit, g.currentRank) {
			found = true
			break
		}
	}

	if found {
		g.playComputerCard(last)
		return
	}
	g.computerForfeit()
}

func (g *Game) computerForfeit() {
	g.message = "电脑摸完了牌仍然无法出牌，轮到你"
	if g.checkDraw() {
		return
	}
	g.turn = SeatPlayer
}

// mostCommonSuit 返回手牌中最多的花色。按花色枚举顺序统计，
// 平局时保留靠前的花色；手牌包含将要打出的那张 8。
func mostCommonSuit(hand []card.Card) card.Suit {
	counts := make(map[card.Suit]int, len(card.Suits))
	for _, c := range hand {
		counts[c.Suit]++
	}

	best := card.Suits[0]
	for _, s := range card.Suits[1:] {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}
