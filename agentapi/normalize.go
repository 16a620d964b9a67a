package agentapi

import (
	"encoding/json"
	"time"

	"enabl-chat/agents"
	apperrors "enabl-chat/errors"
)

// wireChatResponse mirrors the duck-typed payload the agent router actually
// sends: the reply text arrives as either "response" or "message", and every
// other field is optional. Normalization turns it into a strict ChatResponse
// or a typed decode error at this boundary.
type wireChatResponse struct {
	Response        string   `json:"response"`
	Message         string   `json:"message"`
	AgentType       string   `json:"agentType"`
	SessionID       string   `json:"sessionId"`
	Citations       []string `json:"citations"`
	Timestamp       string   `json:"timestamp"`
	RoutedTo        string   `json:"routedTo"`
	RoutingDecision string   `json:"routingDecision"`
}

func normalizeChatResponse(raw []byte, req ChatRequest) (ChatResponse, error) {
	var wire wireChatResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return ChatResponse{}, apperrors.WrapError(apperrors.ErrDecodeResponse, err.Error())
	}

	text := wire.Response
	if text == "" {
		text = wire.Message
	}
	if text == "" {
		return ChatResponse{}, apperrors.WrapError(apperrors.ErrDecodeResponse, "reply text missing in both response and message fields")
	}

	// Session echo policy: the caller's id stands unless the backend
	// assigned a different one.
	sessionID := wire.SessionID
	if sessionID == "" {
		sessionID = req.SessionID
	}

	agent := agents.Parse(wire.AgentType)
	if agent == agents.Auto {
		agent = agents.Parse(wire.RoutedTo)
	}
	if agent == agents.Auto {
		agent = req.AgentType
	}

	ts := time.Now()
	if wire.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, wire.Timestamp); err == nil {
			ts = parsed
		}
	}

	var decision RoutingDecision
	switch wire.RoutingDecision {
	case string(RoutingExplicit):
		decision = RoutingExplicit
	case string(RoutingInferred):
		decision = RoutingInferred
	}

	return ChatResponse{
		Response:        text,
		AgentType:       agent,
		SessionID:       sessionID,
		Citations:       wire.Citations,
		Timestamp:       ts,
		RoutedTo:        wire.RoutedTo,
		RoutingDecision: decision,
	}, nil
}
