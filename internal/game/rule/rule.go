package rule

import (
	"github.com/palemoky/crazy-eights/internal/card"
)

// IsPlayable 判断一张牌能否压在当前的 (花色, 点数) 标记上。
// 8 是万能牌，任何时候都能出；其余牌需要花色或点数相同。
func IsPlayable(c card.Card, suit card.Suit, rank card.Rank) bool {
	if c.Rank.IsWild() {
		return true
	}
	return c.Suit == suit || c.Rank == rank
}

// Playable 按手牌顺序返回所有能出的牌
func Playable(hand []card.Card, suit card.Suit, rank card.Rank) []card.Card {
	var result []card.Card
	for _, c := range hand {
		if IsPlayable(c, suit, rank) {
			result = append(result, c)
		}
	}
	return result
}

// HasPlayable 判断手牌中是否有能出的牌
func HasPlayable(hand []card.Card, suit card.Suit, rank card.Rank) bool {
	for _, c := range hand {
		if IsPlayable(c, suit, rank) {
			return true
		}
	}
	return false
}
