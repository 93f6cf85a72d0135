package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/crazy-eights/internal/card"
	"github.com/palemoky/crazy-eights/internal/game"
	"github.com/palemoky/crazy-eights/internal/game/rule"
	"github.com/palemoky/crazy-eights/internal/stats"
)

func (m *Model) View() string {
	snap := m.game.Snapshot()

	if m.showingHelp {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			renderGameRules(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	var sb strings.Builder

	title := titleStyle("🎴 疯狂 8 点")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	computer := m.renderComputerHand(snap)
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, computer))
	sb.WriteString("\n")

	middle := renderMiddleSection(snap)
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, middle))
	sb.WriteString("\n")

	hand := m.renderPlayerHand(snap)
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hand))
	sb.WriteString("\n")

	prompt := m.renderPrompt(snap)
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, prompt))

	content := sb.String()

	// Overlays
	if snap.Status == game.StatusPickingSuit {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			renderSuitPicker(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}
	if snap.Status == game.StatusGameOver {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.renderGameOver(snap),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderComputerHand(snap game.Snapshot) string {
	title := fmt.Sprintf("电脑 %s (%d张)", ComputerIcon, snap.ComputerCount)
	if snap.Turn == game.SeatComputer && snap.Status == game.StatusPlaying {
		title += "  " + m.spinner.View() + "思考中"
	}

	backs := strings.TrimSpace(strings.Repeat(CardBack+" ", snap.ComputerCount))
	if backs == "" {
		backs = "(无手牌)"
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, title, backs))
}

func renderMiddleSection(snap game.Snapshot) string {
	stockBox := boxStyle.Padding(0, 1).Render(fmt.Sprintf("%s 牌堆\n%d 张", CardBack, snap.StockCount))

	top := snap.DiscardTop
	style := blackStyle
	if top.Color == card.Red {
		style = redStyle
	}
	topCard := style.Padding(0, 1).Render(fmt.Sprintf("%s%s", top.Rank, top.Suit))
	discardBox := boxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Center, "弃牌堆", topCard))

	// 打出 8 之后标记花色可能和顶牌花色不同，单独展示
	marker := fmt.Sprintf("当前花色: %s %s\n当前点数: %s",
		snap.CurrentSuit.String(), snap.CurrentSuit.Name(), snap.CurrentRank)
	markerBox := boxStyle.Padding(0, 1).Render(markerStyle.Render(marker))

	return lipgloss.JoinHorizontal(lipgloss.Top, stockBox, "  ", discardBox, "  ", markerBox)
}

func (m *Model) renderPlayerHand(snap game.Snapshot) string {
	hand := snap.PlayerHand
	if len(hand) == 0 {
		return boxStyle.Render("(无手牌)")
	}

	myTurn := snap.Turn == game.SeatPlayer && snap.Status == game.StatusPlaying

	var rankRow, suitRow, cursorRow strings.Builder
	for i, c := range hand {
		style := blackStyle
		if c.Color == card.Red {
			style = redStyle
		}
		if myTurn && !rule.IsPlayable(c, snap.CurrentSuit, snap.CurrentRank) {
			style = dimStyle
		}
		style = style.Align(lipgloss.Center).Margin(0, 1)
		rankRow.WriteString(style.Render(fmt.Sprintf("%-2s", c.Rank.String())))
		suitRow.WriteString(style.Render(fmt.Sprintf("%-2s", c.Suit.String())))

		if i == m.cursor {
			cursorRow.WriteString(" ▲  ")
		} else {
			cursorRow.WriteString("    ")
		}
	}

	title := fmt.Sprintf("我的手牌 %s (%d张)", PlayerIcon, len(hand))
	content := lipgloss.JoinVertical(lipgloss.Center, title, rankRow.String(), suitRow.String(), cursorRow.String())
	return boxStyle.Render(content)
}

func (m *Model) renderPrompt(snap game.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(snap.Message)
	sb.WriteString("\n")

	if snap.Turn == game.SeatPlayer && snap.Status == game.StatusPlaying {
		sb.WriteString(hintStyle.Render("←/→ 选牌, 回车出牌, D 摸牌, H 帮助, Q 退出"))
	} else {
		hint := "H 帮助, Q 退出"
		if snap.StockCount == 0 {
			hint = "R 重新开始, " + hint
		}
		sb.WriteString(hintStyle.Render(hint))
	}

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.errMsg))
	}

	centered := lipgloss.NewStyle().
		Width(m.width).
		AlignHorizontal(lipgloss.Center).
		Render(sb.String())
	return promptStyle.Render(centered)
}

func renderSuitPicker() string {
	var sb strings.Builder
	sb.WriteString("打出了 8！请选择新的花色:\n\n")
	for i, s := range card.Suits {
		style := blackStyle
		if s == card.Heart || s == card.Diamond {
			style = redStyle
		}
		fmt.Fprintf(&sb, "  %d. %s %s", i+1, style.Render(s.String()), s.Name())
	}
	sb.WriteString("\n\n输入数字 1-4 选择")
	return boxStyle.Padding(1, 2).Render(sb.String())
}

func (m *Model) renderGameOver(snap game.Snapshot) string {
	var result string
	switch snap.Winner {
	case game.WinnerPlayer:
		result = "🎉 你赢了!"
	case game.WinnerComputer:
		result = "💻 电脑赢了"
	case game.WinnerDraw:
		result = "🤝 平局：牌堆摸空，双方都无牌可出"
	}

	msg := fmt.Sprintf("🎮 游戏结束!\n\n%s\n", result)
	if m.statsLine != "" {
		msg += "\n" + m.statsLine + "\n"
	}
	msg += "\n按 R 重新开始, Q 退出"

	return boxStyle.Padding(1, 2).Render(lipgloss.NewStyle().Align(lipgloss.Center).Render(msg))
}

func renderGameRules() string {
	var sb string

	sb += "【游戏目标】\n"
	sb += "先出完手中所有牌的一方获胜\n\n"

	sb += "【出牌规则】\n"
	sb += "• 出的牌必须和当前标记的花色或点数相同\n"
	sb += "• 8 是万能牌：任何时候都能出，并重新指定花色\n"
	sb += "• 无牌可出时从牌堆摸牌，摸到能出的牌为止\n"
	sb += "• 牌堆摸空仍无牌可出，跳过本回合\n"
	sb += "• 牌堆摸空且双方都无牌可出时为平局\n\n"

	sb += "【快捷键】\n"
	sb += "• ←/→：选牌，回车：出牌\n"
	sb += "• D：摸牌\n"
	sb += "• 1-4：打出 8 后选择花色\n"
	sb += "• R：重新开始（对局结束或牌堆摸空后）\n"
	sb += "• H：显示/隐藏帮助，ESC：关闭帮助\n"
	sb += "• Q：退出\n"

	return boxStyle.Render(sb)
}

func formatStatsLine(ps *stats.PlayerStats) string {
	if ps == nil {
		return ""
	}
	line := fmt.Sprintf("战绩: %d胜 %d负 %d平 (胜率 %.1f%%)",
		ps.Wins, ps.Losses, ps.Draws, ps.WinRate()*100)
	if ps.CurrentStreak >= 2 {
		line += fmt.Sprintf("  🔥 %d 连胜", ps.CurrentStreak)
	}
	return line
}
