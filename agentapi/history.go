package agentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	apperrors "enabl-chat/errors"

	"go.uber.org/zap"
)

// RecentChatSummary is a read-only projection of one stored session. It is
// never mutated client-side; refreshes replace the whole list.
type RecentChatSummary struct {
	SessionID       string `json:"session_id"`
	LastMessageTime string `json:"last_message_time"`
	Preview         string `json:"preview"`
	AgentType       string `json:"agent_type"`
	LastActivity    string `json:"last_activity"`
}

// RecentChatsResult is the recent-chats endpoint payload.
type RecentChatsResult struct {
	RecentChats []RecentChatSummary `json:"recent_chats"`
	Count       int                 `json:"count"`
}

// ConversationMessage is one stored message as the backend returns it.
type ConversationMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	AgentType string `json:"agent_type"`
}

// ConversationResult is the conversation-fetch endpoint payload.
type ConversationResult struct {
	SessionID string                `json:"session_id"`
	Messages  []ConversationMessage `json:"messages"`
	Count     int                   `json:"count"`
}

// RecentChats fetches the summary list of past sessions for userID. The
// server determines the order; it is not re-sorted here. Guest
// short-circuiting belongs to the caller.
func (c *Client) RecentChats(ctx context.Context, userID string) (RecentChatsResult, error) {
	endpoint := fmt.Sprintf("%s/chats/recent?userId=%s", c.baseURL, url.QueryEscape(userID))

	var result RecentChatsResult
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return RecentChatsResult{}, err
	}
	if result.RecentChats == nil {
		result.RecentChats = []RecentChatSummary{}
	}
	return result, nil
}

// Conversation fetches the full ordered message list for sessionID. A
// backend "not found" arrives as an empty message list, not an error.
func (c *Client) Conversation(ctx context.Context, sessionID, userID string) (ConversationResult, error) {
	endpoint := fmt.Sprintf("%s/chats/%s?userId=%s", c.baseURL, url.PathEscape(sessionID), url.QueryEscape(userID))

	var result ConversationResult
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return ConversationResult{}, err
	}
	if result.SessionID == "" {
		result.SessionID = sessionID
	}
	if result.Messages == nil {
		result.Messages = []ConversationMessage{}
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create history request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrAgentUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("History endpoint returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("url", endpoint))
		return apperrors.WrapErrorf(apperrors.ErrAgentUnavailable, "history status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.WrapError(apperrors.ErrDecodeResponse, err.Error())
	}
	return nil
}
