package services

import (
	"context"
	"strings"
	"testing"
)

func TestChatbotReply(t *testing.T) {
	svc := NewChatbotService()

	tests := []struct {
		name         string
		message      string
		wantContains string
	}{
		{name: "sos keyword", message: "SOS please", wantContains: "immediate danger"},
		{name: "keyword inside sentence", message: "what should I do during an earthquake at school?", wantContains: "Drop, Cover, and Hold On"},
		{name: "case insensitive", message: "FLOOD warning in my area", wantContains: "higher ground"},
		{name: "fire", message: "there is smoke in the corridor", wantContains: "Stay low under smoke"},
		{name: "cyclone", message: "a hurricane is coming", wantContains: "go-bag"},
		{name: "shelter", message: "where is the nearest shelter", wantContains: "verified shelters"},
		{name: "helpline", message: "give me the emergency number", wantContains: "112"},
		{name: "first aid", message: "my friend is bleeding", wantContains: "direct pressure"},
		{name: "report damage", message: "how do I report damage to my school", wantContains: "Report Issue page"},
		{name: "exact quick question", message: "What to do during an earthquake?", wantContains: "Drop, Cover, and Hold On"},
		{name: "unmatched falls back", message: "tell me a joke", wantContains: "rephrase your question"},
		{name: "empty falls back", message: "   ", wantContains: "rephrase your question"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := svc.Reply(context.Background(), tt.message)
			if !strings.Contains(reply.Reply, tt.wantContains) {
				t.Errorf("Reply(%q) = %q, want substring %q", tt.message, reply.Reply, tt.wantContains)
			}
		})
	}
}

func TestChatbotEarlierRuleWins(t *testing.T) {
	svc := NewChatbotService()

	// "help" matches the SOS rule before any later rule can.
	reply := svc.Reply(context.Background(), "help, there is a flood")
	if !strings.Contains(reply.Reply, "immediate danger") {
		t.Errorf("Reply() = %q, want the SOS answer (first matching rule)", reply.Reply)
	}
}

func TestChatbotQuickQuestions(t *testing.T) {
	svc := NewChatbotService()

	questions := svc.QuickQuestions()
	if len(questions) != len(qaPairs) {
		t.Fatalf("len(QuickQuestions()) = %d, want %d", len(questions), len(qaPairs))
	}

	// Every quick question routes to its own answer when sent verbatim.
	for _, q := range questions {
		reply := svc.Reply(context.Background(), q)
		if reply.Reply == fallbackReply {
			t.Errorf("quick question %q fell through to the fallback", q)
		}
	}
}
