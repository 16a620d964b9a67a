package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"enabl-chat/agents"
	"enabl-chat/config"
	apperrors "enabl-chat/errors"

	"go.uber.org/zap"
)

// RoutingDecision records whether the agent category was chosen by the
// caller or inferred from the message text.
type RoutingDecision string

const (
	RoutingExplicit RoutingDecision = "explicit"
	RoutingInferred RoutingDecision = "inferred"
)

// ChatRequest is the payload sent to the agent router.
type ChatRequest struct {
	Message    string      `json:"message"`
	UserID     string      `json:"userId"`
	AgentType  agents.Type `json:"agentType"`
	SessionID  string      `json:"sessionId,omitempty"`
	DocumentID string      `json:"documentId,omitempty"`
}

// ChatResponse is the normalized reply. Both the remote and the offline
// fallback paths produce this exact shape; it is never partial.
type ChatResponse struct {
	Response        string          `json:"response"`
	AgentType       agents.Type     `json:"agentType"`
	SessionID       string          `json:"sessionId"`
	Citations       []string        `json:"citations,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	RoutedTo        string          `json:"routedTo,omitempty"`
	RoutingDecision RoutingDecision `json:"routingDecision,omitempty"`
}

// Client talks to the remote agent router over HTTP. It performs no
// retries and never mutates conversation state; appending replies is the
// caller's job.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    cfg.AgentAPIBaseURL,
		httpClient: &http.Client{Timeout: cfg.AgentRequestTimeout},
		logger:     logger,
	}
}

// SendMessage posts one message to the agent router and normalizes the
// reply. A non-2xx status or network failure yields ErrAgentUnavailable; a
// payload that cannot be normalized yields ErrDecodeResponse. The offline
// fallback policy lives with the caller.
func (c *Client) SendMessage(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("marshal chat request: %w", err)
	}

	url := c.baseURL + "/agents"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return ChatResponse{}, fmt.Errorf("create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ChatResponse{}, apperrors.WrapError(apperrors.ErrAgentUnavailable, err.Error())
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Agent router returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("session_id", req.SessionID))
		return ChatResponse{}, apperrors.WrapErrorf(apperrors.ErrAgentUnavailable, "agent router status %s", resp.Status)
	}

	return normalizeChatResponse(bodyBytes, req)
}
