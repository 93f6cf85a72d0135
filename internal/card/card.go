package card

import (
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

// CardColor 定义牌的颜色
type CardColor int

const (
	Black CardColor = iota
	Red
)

// Card 定义一张牌。ID 在发牌时生成，是这张牌的唯一身份，
// 同花色同点数的牌跨局不混淆。
type Card struct {
	ID    string
	Suit  Suit
	Rank  Rank
	Color CardColor
}

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Club                // 梅花
	Diamond             // 方块
)

// Suits 按枚举顺序列出四种花色，花色统计平局时取靠前者
var Suits = []Suit{Spade, Heart, Club, Diamond}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Club:    "♣",
	Diamond: "♦",
}

// suitNames 花色中文名映射表
var suitNames = map[Suit]string{
	Spade:   "黑桃",
	Heart:   "红心",
	Club:    "梅花",
	Diamond: "方块",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// Name 返回花色的中文名
func (s Suit) Name() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return ""
}

// Valid 判断是否是四种真实花色之一
func (s Suit) Valid() bool {
	return s >= Spade && s <= Diamond
}

const (
	RankA Rank = iota + 1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	RankA:  "A",
	Rank2:  "2",
	Rank3:  "3",
	Rank4:  "4",
	Rank5:  "5",
	Rank6:  "6",
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// IsWild 判断是否是万能牌。8 任何时候都能出，出后重新指定花色。
func (r Rank) IsWild() bool {
	return r == Rank8
}

// Deck 定义一副牌，从头部摸牌
type Deck []Card

// NewDeck 生成一副未洗牌的 52 张牌：
// 按花色枚举顺序，每个花色 A..K。
func NewDeck() Deck {
	deck := make(Deck, 0, 52)
	for _, s := range Suits {
		for r := RankA; r <= RankK; r++ {
			color := Black
			if s == Heart || s == Diamond {
				color = Red
			}
			deck = append(deck, Card{ID: uuid.NewString(), Suit: s, Rank: r, Color: color})
		}
	}
	return deck
}

func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}
