package agents

import (
	"hash/fnv"
	"strings"
)

// Canned responses used when the agent router is unreachable and offline
// fallback is enabled. Keyed by concrete agent category; Auto callers are
// resolved before lookup.
var fallbackResponses = map[Type][]string{
	HealthAssistant: {
		"I understand your health concern. Based on the symptoms you've described, it's important to monitor how you're feeling. If symptoms persist or worsen, I'd recommend consulting with a healthcare professional for proper evaluation.",
		"Thank you for sharing your health question with me. While I can provide general guidance, please remember that I'm not a substitute for professional medical advice. Here's what I can tell you based on current health guidelines.",
		"I'm here to help with your health questions. Based on reliable medical sources, here's some information that might be helpful. However, for personalized medical advice, please consult with your healthcare provider.",
	},
	CommunityAgent: {
		"I found some interesting recent research and articles that might be relevant to your question. Here are some evidence-based resources from reputable medical institutions.",
		"Based on current health trends and research, here are some valuable resources and community insights I've curated for you.",
		"I've searched through recent medical literature and trusted health sources. Here's what the latest research suggests about your topic.",
	},
	DocumentAgent: {
		"I've analyzed the document you're referring to. Let me explain what these results typically mean in simple terms, while emphasizing that you should discuss these findings with your healthcare provider.",
		"Looking at the information in your document, I can help explain the medical terminology and what these values generally indicate. Remember to review these results with your doctor for proper interpretation.",
		"I can help break down the technical language in your medical document. Here's what these terms and numbers typically mean, though your healthcare provider is the best person to interpret these results in your specific context.",
	},
	AppointmentAgent: {
		"I can help you set up medication reminders and appointment schedules! Let me know when you'd like to be reminded, and I'll make sure you stay on track with your healthcare routine.",
		"Great! I can help you manage your appointments and medication schedule. Would you like me to set up daily reminders for your medications or schedule follow-up appointment notifications?",
		"I'm here to help you stay on top of your health appointments and medication routine. I can set reminders, integrate with your calendar, and send you timely notifications to ensure you never miss important healthcare tasks.",
	},
}

// Keyword-specific replies checked before the generic pool so repeated
// offline sessions don't feel canned. First match wins.
var fallbackKeywordResponses = []struct {
	keyword string
	agent   Type
	reply   string
}{
	{"headache", HealthAssistant, "Headaches can have many causes, from tension and dehydration to lack of sleep. Try resting in a quiet, dark room and staying hydrated. If your headache is severe, sudden, or accompanied by other symptoms like fever or vision changes, please seek medical care promptly."},
	{"sleep", HealthAssistant, "Good sleep hygiene makes a real difference: keep a consistent schedule, limit screens before bed, and avoid caffeine late in the day. If sleep problems persist for more than a few weeks, it's worth discussing with your healthcare provider."},
	{"diet", HealthAssistant, "A balanced diet rich in vegetables, whole grains, and lean protein supports overall health. Small, sustainable changes tend to work better than drastic ones. For guidance tailored to your health conditions, a registered dietitian can help."},
	{"stress", HealthAssistant, "Stress affects both mind and body. Regular exercise, breathing exercises, and maintaining social connections can help manage it. If stress is interfering with your daily life, consider talking to a mental health professional."},
	{"lab", DocumentAgent, "Lab results use reference ranges that vary between laboratories, so a value slightly outside the range isn't automatically a concern. I can help explain what each marker generally measures, but your doctor should interpret the results in your clinical context."},
	{"medication", AppointmentAgent, "Staying consistent with medication matters. I can set up daily reminders at the times that fit your routine, and nudge you when a refill is coming due."},
}

// FallbackResponse synthesizes a reply for the given concrete agent
// category. Selection is deterministic for a given message so offline
// behavior is reproducible.
func FallbackResponse(message string, agent Type) string {
	if agent == Auto || agent == "" {
		agent = HealthAssistant
	}

	lower := strings.ToLower(message)
	for _, kr := range fallbackKeywordResponses {
		if kr.agent == agent && strings.Contains(lower, kr.keyword) {
			return kr.reply
		}
	}

	pool, ok := fallbackResponses[agent]
	if !ok {
		pool = fallbackResponses[HealthAssistant]
	}
	return pool[pickIndex(message, len(pool))]
}

// Mock citations attached to fallback responses, per category.
var fallbackCitations = map[Type][]string{
	HealthAssistant: {
		"CDC Health Guidelines - General Health Information",
		"Mayo Clinic - Symptom Checker",
		"WHO Health Recommendations",
	},
	CommunityAgent: {
		"PubMed - Recent Research Studies",
		"Harvard Health Publishing - Health Articles",
		"NIH National Institute of Health - Research Papers",
	},
	DocumentAgent: {
		"Medical Terminology Reference",
		"Lab Values Interpretation Guide",
		"Clinical Practice Guidelines",
	},
	AppointmentAgent: {
		"Medication Adherence Best Practices",
		"Preventive Care Scheduling Guidelines",
		"Healthcare Appointment Management Systems",
	},
}

// FallbackCitations returns the mock citation set for the agent category.
// The returned slice is a copy; callers may mutate it freely.
func FallbackCitations(agent Type) []string {
	if agent == Auto || agent == "" {
		agent = HealthAssistant
	}
	src, ok := fallbackCitations[agent]
	if !ok {
		src = fallbackCitations[HealthAssistant]
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func pickIndex(message string, n int) int {
	if n <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(message))
	return int(h.Sum32() % uint32(n))
}
