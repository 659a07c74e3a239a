// Package telegram delivers finished leaderboards to a Telegram chat.
// It formats the top entries into a MarkdownV2 message and retries
// delivery with a linear backoff, since the Bot API rate-limits bursts.
package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shlomota/PolymarketAnalyzer/internal/leaderboard"
)

// Client handles Telegram notifications
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendLeaderboard sends the top entries of a finished analysis.
func (c *Client) SendLeaderboard(marketName string, resolvesTo string, entries []leaderboard.Entry, topN int) error {
	message := formatLeaderboard(marketName, resolvesTo, entries, topN)

	msg := tgbotapi.NewMessage(c.chatID, message)
	msg.ParseMode = "MarkdownV2"
	msg.DisableWebPagePreview = true

	// Send with retry
	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatLeaderboard renders the top entries as a MarkdownV2 message.
func formatLeaderboard(marketName, resolvesTo string, entries []leaderboard.Entry, topN int) string {
	message := fmt.Sprintf("ðŸ† *P\\&L Leaderboard: %s*\n", escapeMarkdownV2(marketName))
	message += fmt.Sprintf("Assumed resolution: *%s*\n\n", escapeMarkdownV2(resolvesTo))

	top := leaderboard.Top(entries, topN)
	for i, e := range top {
		emoji := "ðŸŸ¢"
		if e.PnL < 0 {
			emoji = "ðŸ”´"
		}

		nameLink := fmt.Sprintf("[%s](%s)", escapeMarkdownV2(e.Username), e.ProfileURL())
		pnlStr := escapeMarkdownV2(fmt.Sprintf("$%.2f", e.PnL))
		spentStr := escapeMarkdownV2(fmt.Sprintf("$%.2f", e.TotalSpent))

		message += fmt.Sprintf("%d\\. %s %s\n", i+1, emoji, nameLink)
		message += fmt.Sprintf("   P\\&L: *%s* \\(spent %s, %d trades\\)\n\n",
			pnlStr, spentStr, e.NumTrades)
	}

	summary := leaderboard.Summarize(entries)
	message += fmt.Sprintf("ðŸ‘¥ %d traders, %d winners / %d losers\n",
		summary.TotalUsers, summary.Winners, summary.Losers)
	message += fmt.Sprintf("Net P\\&L: %s", escapeMarkdownV2(fmt.Sprintf("$%.2f", summary.NetPnL)))

	return message
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
