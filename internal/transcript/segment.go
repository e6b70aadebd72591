package transcript

import (
	"regexp"
	"strings"
)

// NotAvailable is the placeholder shown when a speaker never spoke.
// Dashboard rendering matches on this literal.
const NotAvailable = "N/A"

var (
	userPrefix      = regexp.MustCompile(`(?i)^user:\s*`)
	assistantPrefix = regexp.MustCompile(`(?i)^(ai|assistant|bot):\s*`)
)

// Conversation groups utterances by speaker.
// Each slice keeps transcript order; interleaving between speakers is not kept.
type Conversation struct {
	User      []string `json:"user"`
	Assistant []string `json:"assistant"`
}

// Segment splits a raw "Speaker: text" transcript into a Conversation.
// Lines without a recognised speaker prefix are dropped.
func Segment(raw string) Conversation {
	conv := Conversation{User: []string{}, Assistant: []string{}}
	if strings.TrimSpace(raw) == "" {
		return conv
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case userPrefix.MatchString(line):
			conv.User = append(conv.User, userPrefix.ReplaceAllString(line, ""))
		case assistantPrefix.MatchString(line):
			conv.Assistant = append(conv.Assistant, assistantPrefix.ReplaceAllString(line, ""))
		}
	}
	return conv
}

// FirstUser returns the opening user utterance or NotAvailable.
func (c Conversation) FirstUser() string {
	if len(c.User) == 0 {
		return NotAvailable
	}
	return c.User[0]
}

// LastAssistant returns the closing assistant utterance or NotAvailable.
func (c Conversation) LastAssistant() string {
	if len(c.Assistant) == 0 {
		return NotAvailable
	}
	return c.Assistant[len(c.Assistant)-1]
}

// Clone returns a copy that shares no backing arrays with c.
func (c Conversation) Clone() Conversation {
	out := Conversation{
		User:      make([]string, len(c.User)),
		Assistant: make([]string, len(c.Assistant)),
	}
	copy(out.User, c.User)
	copy(out.Assistant, c.Assistant)
	return out
}
