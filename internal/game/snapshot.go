package game

import (
	"github.com/palemoky/crazy-eights/internal/card"
)

// Snapshot 是给 UI 的只读投影。电脑手牌只暴露张数（背面朝上），
// 弃牌堆只暴露顶牌和张数。
type Snapshot struct {
	PlayerHand    []card.Card
	ComputerCount int
	StockCount    int
	DiscardTop    card.Card
	DiscardCount  int

	CurrentSuit card.Suit
	CurrentRank card.Rank

	Turn    Seat
	Status  Status
	Winner  Winner
	Message string

	// PendingEightID 是玩家打出、等待选花色的 8 的 ID，无则为空
	PendingEightID string
}

// Snapshot 返回当前状态的一致性快照
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := Snapshot{
		PlayerHand:    append([]card.Card(nil), g.playerHand...),
		ComputerCount: len(g.computerHand),
		StockCount:    len(g.stock),
		DiscardCount:  len(g.discard),
		CurrentSuit:   g.currentSuit,
		CurrentRank:   g.currentRank,
		Turn:          g.turn,
		Status:        g.status,
		Winner:        g.winner,
		Message:       g.message,
	}
	if len(g.discard) > 0 {
		snap.DiscardTop = g.discard[len(g.discard)-1]
	}
	if g.pending != nil {
		snap.PendingEightID = g.pending.ID
	}
	return snap
}
