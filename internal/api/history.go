// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/model"
)

// HistoryLimit caps how many past exchanges a single history request
// returns, matching the server-side default.
const HistoryLimit = 50

// Exchange is one stored request/reply pair from the server's chat
// history. Timestamp is RFC 3339 as emitted by the server.
type Exchange struct {
	Message   string `json:"message"`
	Response  string `json:"response"`
	Sentiment string `json:"sentiment,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// History fetches the stored exchanges for the given user from
// GET /chat/history/{user}, newest first, at most HistoryLimit entries.
func (c *Client) History(ctx context.Context, userID string) ([]Exchange, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	endpoint := fmt.Sprintf("%s/chat/history/%s?limit=%d", c.baseURL, url.PathEscape(userID), HistoryLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.attach(req)

	var exchanges []Exchange
	if err := c.do(req, &exchanges); err != nil {
		return nil, err
	}
	return exchanges, nil
}

// HistoryConversation folds a user's server-side exchanges into a
// single local conversation titled after the account. Exchanges arrive
// newest first and are replayed oldest first so the transcript reads
// top to bottom. The conversation id is stable per user so repeated
// imports replace rather than duplicate.
func HistoryConversation(userID string, exchanges []Exchange) *model.Conversation {
	if len(exchanges) == 0 {
		return nil
	}

	conv := model.NewConversation("History: " + userID)
	conv.ID = "server-history-" + userID

	for i := len(exchanges) - 1; i >= 0; i-- {
		ex := exchanges[i]
		ts := parseServerTime(ex.Timestamp)
		if ex.Message != "" {
			conv.Messages = append(conv.Messages, model.Message{
				ID:   fmt.Sprintf("%s-u%d", conv.ID, i),
				Role: model.RoleUser,
				Text: ex.Message,
				Ts:   ts,
			})
		}
		if ex.Response != "" {
			conv.Messages = append(conv.Messages, model.Message{
				ID:   fmt.Sprintf("%s-a%d", conv.ID, i),
				Role: model.RoleAssistant,
				Text: ex.Response,
				Ts:   ts,
			})
		}
	}

	if len(conv.Messages) == 0 {
		return nil
	}

	// Timestamps follow the newest exchange so the imported shelf entry
	// sorts where the server activity actually happened.
	last := conv.Messages[len(conv.Messages)-1].Ts
	if last > 0 {
		conv.CreatedAt = conv.Messages[0].Ts
		conv.UpdatedAt = last
	}
	return conv
}

func parseServerTime(s string) int64 {
	if s == "" {
		return time.Now().UnixMilli()
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return time.Now().UnixMilli()
}
