package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"enabl-chat/agentapi"
	"enabl-chat/agents"
	"enabl-chat/chat"
	"enabl-chat/config"
	apperrors "enabl-chat/errors"
	"enabl-chat/web/format"
	"enabl-chat/web/types"

	"go.uber.org/zap"
)

// ErrorReplyContent is appended as an assistant message when the agent
// router fails and offline fallback is disabled. The conversation is never
// left in a pending state.
const ErrorReplyContent = "I apologize, but I encountered an error while processing your message. Please try again."

// AgentSender is the transport the chat service talks through.
type AgentSender interface {
	SendMessage(ctx context.Context, req agentapi.ChatRequest) (agentapi.ChatResponse, error)
}

type ChatService struct {
	sender  AgentSender
	store   *chat.Store
	refresh *chat.RefreshCounter
	cfg     *config.Config
	logger  *zap.Logger
}

func NewChatService(
	sender AgentSender,
	store *chat.Store,
	refresh *chat.RefreshCounter,
	cfg *config.Config,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		sender:  sender,
		store:   store,
		refresh: refresh,
		cfg:     cfg,
		logger:  logger,
	}
}

// SendMessage runs one full exchange: resolve the agent, call the
// transport under the fallback policy, append both sides to the
// conversation, and bump the history refresh counter for signed-in users.
func (cs *ChatService) SendMessage(ctx context.Context, userID string, req types.ChatRequest) (types.ChatReply, error) {
	content := strings.TrimSpace(req.Message)
	if content == "" && req.FileCount == 0 {
		return types.ChatReply{}, apperrors.WrapError(apperrors.ErrInvalidInput, "message cannot be empty")
	}
	if content == "" {
		content = fmt.Sprintf("Uploaded %d file(s) for analysis", req.FileCount)
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = chat.NewSessionID()
	}
	conv := cs.store.GetOrCreate(sessionID)

	requested := agents.Parse(req.AgentType)
	if req.DocumentID != "" || req.FileCount > 0 {
		// Attachments always route to the document agent.
		requested = agents.DocumentAgent
	}
	agent, explicit := agents.Resolve(requested, content)
	decision := agentapi.RoutingInferred
	if explicit {
		decision = agentapi.RoutingExplicit
	}
	conv.SetAgentType(agent)

	userMsg := chat.NewUserMessage(content, sessionID)
	conv.Append(userMsg)

	resp, err := cs.sender.SendMessage(ctx, agentapi.ChatRequest{
		Message:    content,
		UserID:     userID,
		AgentType:  agent,
		SessionID:  sessionID,
		DocumentID: req.DocumentID,
	})
	if err != nil {
		if !cs.cfg.OfflineFallback {
			cs.logger.Error("Agent router call failed",
				zap.Error(err),
				zap.String("session_id", sessionID))
			errorMsg := chat.NewAssistantMessage(ErrorReplyContent, sessionID, agents.HealthAssistant, nil)
			errorMsg.Rendered = format.ConvertToHTML(ErrorReplyContent)
			conv.Append(errorMsg)
			cs.bumpRefresh(userID)
			return types.ChatReply{
				UserMessage:      userMsg,
				AssistantMessage: errorMsg,
				SessionID:        sessionID,
			}, nil
		}

		cs.logger.Warn("Agent router unavailable, synthesizing offline response",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("agent", string(agent)))
		resp = agentapi.ChatResponse{
			Response:        agents.FallbackResponse(content, agent),
			AgentType:       agent,
			SessionID:       sessionID,
			Citations:       agents.FallbackCitations(agent),
			Timestamp:       time.Now(),
			RoutedTo:        string(agent),
			RoutingDecision: decision,
		}
	}

	if resp.RoutingDecision == "" {
		resp.RoutingDecision = decision
	}

	// The backend may assign a different session id on the first exchange.
	if resp.SessionID != "" && resp.SessionID != sessionID {
		cs.store.Delete(sessionID)
		conv.AdoptSessionID(resp.SessionID)
		cs.store.Put(conv)
		sessionID = resp.SessionID
	}

	assistantMsg := chat.NewAssistantMessage(resp.Response, sessionID, resp.AgentType, resp.Citations)
	assistantMsg.Timestamp = resp.Timestamp
	assistantMsg.Rendered = format.ConvertToHTML(resp.Response)
	conv.Append(assistantMsg)

	cs.bumpRefresh(userID)

	return types.ChatReply{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		SessionID:        sessionID,
		RoutedTo:         resp.RoutedTo,
		RoutingDecision:  resp.RoutingDecision,
	}, nil
}

// NewChat discards the previous conversation, mints a fresh session, and
// seeds it with the welcome message.
func (cs *ChatService) NewChat(userID, userName, previousSessionID string) types.NewChatReply {
	if previousSessionID != "" {
		cs.store.Delete(previousSessionID)
	}

	sessionID := chat.NewSessionID()
	conv := chat.NewConversationWithSession(sessionID)

	welcome := chat.NewAssistantMessage(welcomeContent(userID, userName), sessionID, agents.HealthAssistant, nil)
	welcome.ID = "welcome-" + welcome.ID
	conv.Append(welcome)
	cs.store.Put(conv)

	cs.bumpRefresh(userID)

	return types.NewChatReply{
		SessionID:      sessionID,
		WelcomeMessage: welcome,
	}
}

// Conversation returns the in-memory message list for a session, if any.
func (cs *ChatService) Conversation(sessionID string) ([]chat.ChatMessage, bool) {
	conv, ok := cs.store.Get(sessionID)
	if !ok {
		return nil, false
	}
	return conv.Messages(), true
}

func (cs *ChatService) bumpRefresh(userID string) {
	if chat.IsGuest(userID) {
		return
	}
	cs.refresh.Bump(userID)
}

func welcomeContent(userID, userName string) string {
	if chat.IsGuest(userID) {
		return "Welcome to Enabl Health! I'm here to help with your health questions. Note: As a guest, your conversation won't be saved. Sign in to save your chat history."
	}
	if userName == "" {
		userName = "there"
	}
	return fmt.Sprintf("Hello %s! I'm your Enabl Health Assistant. How can I help you with your health questions today?", userName)
}
