package agents

import "strings"

// Type identifies which specialized responder handles a message.
type Type string

const (
	HealthAssistant  Type = "health-assistant"
	CommunityAgent   Type = "community-agent"
	DocumentAgent    Type = "document-agent"
	AppointmentAgent Type = "appointment-agent"

	// Auto is a caller-level default meaning "pick for me". Inference never
	// returns it.
	Auto Type = "auto"
)

// Valid reports whether t is a known agent type, including Auto.
func Valid(t Type) bool {
	switch t {
	case HealthAssistant, CommunityAgent, DocumentAgent, AppointmentAgent, Auto:
		return true
	}
	return false
}

// Parse returns the agent type for s, or Auto when s is empty or unknown.
func Parse(s string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if t == "" || !Valid(t) {
		return Auto
	}
	return t
}

// routingRule pairs a match predicate with the category it selects.
// Rules are evaluated in order; the first match wins.
type routingRule struct {
	keywords []string
	agent    Type
}

// Priority order matters: document beats research beats appointment.
var routingRules = []routingRule{
	{keywords: []string{"document", "report", "result"}, agent: DocumentAgent},
	{keywords: []string{"research", "article", "study"}, agent: CommunityAgent},
	{keywords: []string{
		"appointment", "reminder", "medication", "schedule",
		"checkup", "follow-up", "calendar", "remind me",
	}, agent: AppointmentAgent},
}

// Infer maps free-text input to exactly one concrete agent category using
// case-insensitive keyword matching. It is deterministic and total: empty or
// unmatched input falls back to HealthAssistant, never Auto and never an
// error.
func Infer(message string) Type {
	lower := strings.ToLower(message)
	for _, rule := range routingRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.agent
			}
		}
	}
	return HealthAssistant
}

// Resolve returns requested when it names a concrete agent, otherwise the
// inferred category for message. The second return value is true when the
// routing decision was explicit.
func Resolve(requested Type, message string) (Type, bool) {
	if Valid(requested) && requested != Auto && requested != "" {
		return requested, true
	}
	return Infer(message), false
}
