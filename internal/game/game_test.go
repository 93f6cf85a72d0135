package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/crazy-eights/internal/apperrors"
	"github.com/palemoky/crazy-eights/internal/card"
	"github.com/palemoky/crazy-eights/internal/game/rule"
)

// mk builds a test card with a readable, unique ID.
func mk(s card.Suit, r card.Rank) card.Card {
	return card.Card{ID: fmt.Sprintf("%s-%s", s.Name(), r), Suit: s, Rank: r}
}

// rigged builds a mid-game state with the given hands, stock and marker.
// The discard pile gets a synthetic top card matching the marker.
func rigged(player, computer []card.Card, stock card.Deck, suit card.Suit, rank card.Rank, turn Seat) *Game {
	top := mk(suit, rank)
	top.ID = "discard-top"
	return &Game{
		stock:        stock,
		playerHand:   player,
		computerHand: computer,
		discard:      []card.Card{top},
		currentSuit:  suit,
		currentRank:  rank,
		turn:         turn,
		status:       StatusPlaying,
	}
}

// checkConservation verifies the 52-card invariant for games built via New.
func checkConservation(t *testing.T, g *Game) {
	t.Helper()

	total := len(g.stock) + len(g.playerHand) + len(g.computerHand) + len(g.discard)
	require.Equal(t, 52, total)

	ids := make(map[string]bool, 52)
	for _, zone := range [][]card.Card{g.stock, g.playerHand, g.computerHand, g.discard} {
		for _, c := range zone {
			require.False(t, ids[c.ID], "card %s appears twice", c.ID)
			ids[c.ID] = true
		}
	}
}

func TestNew_DealsDeterministically(t *testing.T) {
	t.Parallel()

	// 未洗牌的一副牌：黑桃 A..K，红心 A..K，梅花 A..K，方块 A..K
	deck := card.NewDeck()
	g := New(WithDeck(deck))

	require.Len(t, g.playerHand, InitialHandSize)
	require.Len(t, g.computerHand, InitialHandSize)
	for i := 0; i < InitialHandSize; i++ {
		assert.Equal(t, deck[i].ID, g.playerHand[i].ID, "玩家拿洗牌后的前 7 张")
		assert.Equal(t, deck[InitialHandSize+i].ID, g.computerHand[i].ID, "电脑拿接下来的 7 张")
	}

	// 起始牌是剩余牌中第一张非 8 的牌：红心 2
	require.Len(t, g.discard, 1)
	starter := g.discard[0]
	assert.Equal(t, card.Heart, starter.Suit)
	assert.Equal(t, card.Rank2, starter.Rank)
	assert.Equal(t, deck[2*InitialHandSize].ID, starter.ID)

	assert.Equal(t, card.Heart, g.currentSuit)
	assert.Equal(t, card.Rank2, g.currentRank)
	assert.Equal(t, SeatPlayer, g.turn)
	assert.Equal(t, StatusPlaying, g.status)
	assert.Equal(t, WinnerNone, g.winner)
	assert.Len(t, g.stock, 52-2*InitialHandSize-1)
	checkConservation(t, g)
}

func TestNew_SkipsEightsForStarter(t *testing.T) {
	t.Parallel()

	deck := card.NewDeck()
	// 把两张 8 挪到发牌后牌堆的最前面
	heart8 := 13 + 7
	club8 := 26 + 7
	deck[14], deck[heart8] = deck[heart8], deck[14]
	deck[15], deck[club8] = deck[club8], deck[15]

	g := New(WithDeck(deck))

	// 起始牌跳过两张 8，被跳过的 8 留在牌堆头部原有顺序
	starter := g.discard[0]
	assert.Equal(t, card.Rank4, starter.Rank)
	assert.Equal(t, card.Heart, starter.Suit)
	require.True(t, len(g.stock) >= 2)
	assert.Equal(t, card.Rank8, g.stock[0].Rank)
	assert.Equal(t, card.Heart, g.stock[0].Suit)
	assert.Equal(t, card.Rank8, g.stock[1].Rank)
	assert.Equal(t, card.Club, g.stock[1].Suit)
	checkConservation(t, g)
}

func TestNew_ShuffledConservation(t *testing.T) {
	t.Parallel()

	g := New()
	checkConservation(t, g)
	assert.Equal(t, StatusPlaying, g.status)
	assert.Equal(t, SeatPlayer, g.turn)
}

func TestPlay_ByRankEmptiesHandAndWins(t *testing.T) {
	t.Parallel()

	// 玩家只剩黑桃 7，标记是 (红心, 7)：按点数合法
	seven := mk(card.Spade, card.Rank7)
	g := rigged(
		[]card.Card{seven},
		[]card.Card{mk(card.Club, card.Rank2), mk(card.Club, card.Rank3)},
		card.Deck{mk(card.Diamond, card.RankK)}, // 牌堆未空也要立即判胜
		card.Heart, card.Rank7, SeatPlayer,
	)

	require.NoError(t, g.Play(SeatPlayer, seven.ID))

	assert.Equal(t, card.Spade, g.currentSuit)
	assert.Equal(t, card.Rank7, g.currentRank)
	assert.Empty(t, g.playerHand)
	assert.Equal(t, StatusGameOver, g.status)
	assert.Equal(t, WinnerPlayer, g.winner)
}

func TestPlay_BySuitFlipsTurn(t *testing.T) {
	t.Parallel()

	five := mk(card.Heart, card.Rank5)
	g := rigged(
		[]card.Card{five, mk(card.Club, card.Rank4)},
		[]card.Card{mk(card.Spade, card.Rank2)},
		card.Deck{mk(card.Diamond, card.RankK)},
		card.Heart, card.Rank9, SeatPlayer,
	)

	require.NoError(t, g.Play(SeatPlayer, five.ID))

	assert.Equal(t, card.Heart, g.currentSuit)
	assert.Equal(t, card.Rank5, g.currentRank)
	assert.Equal(t, SeatComputer, g.turn)
	assert.Equal(t, StatusPlaying, g.status)
	assert.Equal(t, "discard-top", g.discard[0].ID)
	assert.Equal(t, five.ID, g.discard[len(g.discard)-1].ID)
}

func TestPlay_Rejections(t *testing.T) {
	t.Parallel()

	hearts5 := mk(card.Heart, card.Rank5)
	club4 := mk(card.Club, card.Rank4)
	g := rigged(
		[]card.Card{hearts5, club4},
		[]card.Card{mk(card.Spade, card.Rank2)},
		card.Deck{mk(card.Diamond, card.RankK)},
		card.Heart, card.Rank9, SeatPlayer,
	)

	// 不该电脑行动
	err := g.Play(SeatComputer, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)

	// 手牌中没有这张牌
	err = g.Play(SeatPlayer, "nope")
	assert.ErrorIs(t, err, apperrors.ErrCardNotInHand)

	// 梅花 4 和 (红心, 9) 既不同花色也不同点数
	err = g.Play(SeatPlayer, club4.ID)
	assert.ErrorIs(t, err, apperrors.ErrCardNotPlayable)

	// 被拒绝的调用不得改动状态
	assert.Len(t, g.playerHand, 2)
	assert.Len(t, g.discard, 1)
	assert.Equal(t, SeatPlayer, g.turn)
	assert.Equal(t, card.Heart, g.currentSuit)
	assert.Equal(t, card.Rank9, g.currentRank)
}

func TestPlay_HumanEightGating(t *testing.T) {
	t.Parallel()

	eight := mk(card.Spade, card.Rank8)
	g := rigged(
		[]card.Card{eight, mk(card.Club, card.Rank4)},
		[]card.Card{mk(card.Spade, card.Rank2)},
		card.Deck{mk(card.Diamond, card.RankK)},
		card.Heart, card.Rank9, SeatPlayer,
	)

	require.NoError(t, g.Play(SeatPlayer, eight.ID))

	// 选花色前：状态挂起，回合不变，8 还在手里，标记不变
	assert.Equal(t, StatusPickingSuit, g.status)
	assert.Equal(t, SeatPlayer, g.turn)
	assert.Len(t, g.playerHand, 2)
	assert.Len(t, g.discard, 1)
	assert.Equal(t, card.Heart, g.currentSuit)
	assert.Equal(t, card.Rank9, g.currentRank)

	// 此时其他操作都被拒绝
	assert.ErrorIs(t, g.Play(SeatPlayer, eight.ID), apperrors.ErrWrongPhase)
	assert.ErrorIs(t, g.Draw(SeatPlayer), apperrors.ErrWrongPhase)

	require.NoError(t, g.ChooseSuit(card.Diamond))

	assert.Equal(t, StatusPlaying, g.status)
	assert.Equal(t, card.Diamond, g.currentSuit)
	assert.Equal(t, card.Rank8, g.currentRank)
	assert.Equal(t, SeatComputer, g.turn)
	assert.Len(t, g.playerHand, 1)
	assert.Equal(t, eight.ID, g.discard[len(g.discard)-1].ID)
}

func TestChooseSuit_Rejections(t *testing.T) {
	t.Parallel()

	g := rigged(
		[]card.Card{mk(card.Spade, card.Rank8)},
		[]card.Card{mk(card.Spade, card.Rank2)},
		card.Deck{mk(card.Diamond, card.RankK)},
		card.Heart, card.Rank9, SeatPlayer,
	)

	// 不在选花色阶段
	assert.ErrorIs(t, g.ChooseSuit(card.Heart), apperrors.ErrNotPickingSuit)

	require.NoError(t, g.Play(SeatPlayer, g.playerHand[0].ID))
	require.Equal(t, StatusPickingSuit, g.status)

	// 无效花色
	assert.ErrorIs(t, g.ChooseSuit(card.Suit(9)), apperrors.ErrInvalidSuit)
	assert.Equal(t, StatusPickingSuit, g.status)
}

func TestChooseSuit_WinDetection(t *testing.T) {
	t.Parallel()

	eight := mk(card.Heart, card.Rank8)
	g := rigged(
		[]card.Card{eight},
		[]card.Card{mk(card.Spade, card.Rank2)},
		card.Deck{mk(card.Diamond, card.RankK)},
		card.Club, card.Rank9, SeatPlayer,
	)

	require.NoError(t, g.Play(SeatPlayer, eight.ID))
	require.NoError(t, g.ChooseSuit(card.Spade))

	assert.Equal(t, StatusGameOver, g.status)
	assert.Equal(t, WinnerPlayer, g.winner)
	assert.Equal(t, card.Spade, g.currentSuit)
}

func TestDraw_UntilPlayable(t *testing.T) {
	t.Parallel()

	g := rigged(
		[]card.Card{mk(card.Club, card.Rank7)},
		[]card.Card{mk(card.Spade, card.Rank2)},
		card.Deck{
			mk(card.Spade, card.Rank9),   // 不能出
			mk(card.Club, card.Rank2),    // 不能出
			mk(card.Heart, card.RankJ),   // 能出，停止摸牌
			mk(card.Diamond, card.RankK), // 应留在牌堆
		},
		card.Heart, card.Rank4, SeatPlayer,
	)

	require.NoError(t, g.Draw(SeatPlayer))

	// 摸到能出的牌后由玩家自己决定出牌，回合不换
	assert.Len(t, g.playerHand, 4)
	assert.Len(t, g.stock, 1)
	assert.Equal(t, SeatPlayer, g.turn)
	assert.Equal(t, StatusPlaying, g.status)
	assert.Contains(t, g.message, "3")
}

func TestDraw_ExhaustedForfeitsTurn(t *testing.T) {
	t.Parallel()

	g := rigged(
		[]card.Card{mk(card.Club, card.Rank7)},
		[]card.Card{mk(card.Heart, card.Rank2)}, // 电脑有牌可出，不是平局
		card.Deck{
			mk(card.Spade, card.Rank9),
			mk(card.Club, card.Rank2),
		},
		card.Heart, card.Rank4, SeatPlayer,
	)

	require.NoError(t, g.Draw(SeatPlayer))

	assert.Empty(t, g.stock)
	assert.Len(t, g.playerHand, 3)
	assert.Equal(t, SeatComputer, g.turn)
	assert.Equal(t, StatusPlaying, g.status)
	assert.Equal(t, WinnerNone, g.winner)
}

func TestDraw_EmptyStockForfeit(t *testing.T) {
	t.Parallel()

	g := rigged(
		[]card.Card{mk(card.Club, card.Rank7)},
		[]card.Card{mk(card.Heart, card.Rank2)},
		card.Deck{},
		card.Heart, card.Rank4, SeatPlayer,
	)

	require.NoError(t, g.Draw(SeatPlayer))

	assert.Equal(t, SeatComputer, g.turn)
	assert.Equal(t, StatusPlaying, g.status)
}

func TestDraw_DrawDetection(t *testing.T) {
	t.Parallel()

	// 牌堆空，双方都无牌可出
	g := rigged(
		[]card.Card{mk(card.Club, card.Rank7)},
		[]card.Card{mk(card.Spade, card.Rank5)},
		card.Deck{},
		card.Heart, card.Rank4, SeatPlayer,
	)

	require.NoError(t, g.Draw(SeatPlayer))

	assert.Equal(t, StatusGameOver, g.status)
	assert.Equal(t, WinnerDraw, g.winner)
}

func TestDraw_ExhaustedIntoDrawDetection(t *testing.T) {
	t.Parallel()

	// 摸空牌堆后双方都无牌可出，直接判平局
	g := rigged(
		[]card.Card{mk(card.Club, card.Rank7)},
		[]card.Card{mk(card.Spade, card.Rank5)},
		card.Deck{
			mk(card.Club, card.Rank9),
			mk(card.Spade, card.RankJ),
		},
		card.Heart, card.Rank4, SeatPlayer,
	)

	require.NoError(t, g.Draw(SeatPlayer))

	assert.Empty(t, g.stock)
	assert.Equal(t, StatusGameOver, g.status)
	assert.Equal(t, WinnerDraw, g.winner)
}

func TestDraw_Rejections(t *testing.T) {
	t.Parallel()

	g := rigged(
		[]card.Card{mk(card.Club, card.Rank7)},
		[]card.Card{mk(card.Heart, card.Rank2)},
		card.Deck{mk(card.Spade, card.Rank9)},
		card.Heart, card.Rank4, SeatComputer,
	)

	assert.ErrorIs(t, g.Draw(SeatPlayer), apperrors.ErrNotYourTurn)

	g.status = StatusGameOver
	assert.ErrorIs(t, g.Draw(SeatComputer), apperrors.ErrWrongPhase)
}

func TestRestart_Guard(t *testing.T) {
	t.Parallel()

	g := New(WithDeck(card.NewDeck()))

	// 牌堆未空且对局进行中：拒绝
	assert.ErrorIs(t, g.Restart(), apperrors.ErrGameInProgress)

	// 对局结束后允许
	g.status = StatusGameOver
	g.winner = WinnerComputer
	require.NoError(t, g.Restart())
	assert.Equal(t, StatusPlaying, g.status)
	assert.Equal(t, WinnerNone, g.winner)
	assert.Equal(t, SeatPlayer, g.turn)
	assert.Len(t, g.playerHand, InitialHandSize)
	checkConservation(t, g)

	// 牌堆摸空后即使对局进行中也允许
	g.stock = nil
	require.NoError(t, g.Restart())
	assert.Equal(t, StatusPlaying, g.status)
	checkConservation(t, g)
}

func TestSnapshot_Projection(t *testing.T) {
	t.Parallel()

	g := New(WithDeck(card.NewDeck()))
	snap := g.Snapshot()

	assert.Len(t, snap.PlayerHand, InitialHandSize)
	assert.Equal(t, InitialHandSize, snap.ComputerCount)
	assert.Equal(t, 52-2*InitialHandSize-1, snap.StockCount)
	assert.Equal(t, 1, snap.DiscardCount)
	assert.Equal(t, g.discard[0].ID, snap.DiscardTop.ID)
	assert.Equal(t, SeatPlayer, snap.Turn)
	assert.Equal(t, StatusPlaying, snap.Status)
	assert.Equal(t, WinnerNone, snap.Winner)
	assert.NotEmpty(t, snap.Message)
	assert.Empty(t, snap.PendingEightID)

	// 快照是副本，改它不影响引擎
	snap.PlayerHand[0].ID = "mutated"
	again := g.Snapshot()
	assert.NotEqual(t, "mutated", again.PlayerHand[0].ID)
}

func TestSnapshot_PendingEight(t *testing.T) {
	t.Parallel()

	eight := mk(card.Spade, card.Rank8)
	g := rigged(
		[]card.Card{eight, mk(card.Club, card.Rank4)},
		[]card.Card{mk(card.Spade, card.Rank2)},
		card.Deck{mk(card.Diamond, card.RankK)},
		card.Heart, card.Rank9, SeatPlayer,
	)

	require.NoError(t, g.Play(SeatPlayer, eight.ID))

	snap := g.Snapshot()
	assert.Equal(t, StatusPickingSuit, snap.Status)
	assert.Equal(t, eight.ID, snap.PendingEightID)
}

// 从发牌打到终局，每一步都验证 52 张守恒。
func TestFullGame_Conservation(t *testing.T) {
	t.Parallel()

	g := New()
	for i := 0; i < 500; i++ {
		checkConservation(t, g)
		snap := g.Snapshot()
		if snap.Status == StatusGameOver {
			break
		}

		switch {
		case snap.Status == StatusPickingSuit:
			require.NoError(t, g.ChooseSuit(card.Club))
		case snap.Turn == SeatPlayer:
			playable := rule.Playable(snap.PlayerHand, snap.CurrentSuit, snap.CurrentRank)
			if len(playable) > 0 {
				require.NoError(t, g.Play(SeatPlayer, playable[0].ID))
			} else {
				require.NoError(t, g.Draw(SeatPlayer))
			}
		default:
			require.NoError(t, g.ComputerMove())
		}
	}

	snap := g.Snapshot()
	require.Equal(t, StatusGameOver, snap.Status)
	assert.NotEqual(t, WinnerNone, snap.Winner)
	checkConservation(t, g)
}
