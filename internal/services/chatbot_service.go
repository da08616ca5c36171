package services

import (
	"context"
	"strings"
)

// qaPair is one rule of the keyword-matched assistance bot.
type qaPair struct {
	keywords []string
	question string
	answer   string
}

// qaPairs is evaluated in order; the first matching pair wins.
var qaPairs = []qaPair{
	{
		keywords: []string{"sos", "help", "emergency", "urgent", "distress"},
		question: "I need urgent help",
		answer:   "If you are in immediate danger, call your local emergency number now (e.g., 112/911). Share your exact location. I can also list emergency contacts below.",
	},
	{
		keywords: []string{"earthquake", "quake", "tremor", "aftershock"},
		question: "What to do during an earthquake?",
		answer:   "Earthquake safety: 1) Drop, Cover, and Hold On. 2) Stay away from windows. 3) If outdoors, move to open space. 4) After shaking stops, check for injuries and hazards, and expect aftershocks.",
	},
	{
		keywords: []string{"flood", "flooding", "water level", "flash flood"},
		question: "How to stay safe in floods?",
		answer:   "Flood safety: 1) Move to higher ground. 2) Avoid walking/driving through flood water. 3) Disconnect power if safe. 4) Prepare clean water and essential supplies. 5) Follow local alerts.",
	},
	{
		keywords: []string{"fire", "wildfire", "smoke", "evacuate"},
		question: "Fire safety tips",
		answer:   "Fire safety: 1) Evacuate early if told. 2) Close doors behind you. 3) Stay low under smoke. 4) Use stairs, not elevators. 5) If trapped, seal doors and call emergency services.",
	},
	{
		keywords: []string{"cyclone", "hurricane", "typhoon", "storm", "winds"},
		question: "Cyclone/hurricane safety",
		answer:   "Cyclone safety: 1) Stay indoors away from windows. 2) Prepare go-bag (water, meds, docs, flashlight). 3) Unplug appliances. 4) Evacuate if ordered. 5) Avoid floodwaters after the storm.",
	},
	{
		keywords: []string{"shelter", "relief camp", "evacuation center", "nearest shelter"},
		question: "Find nearby shelters",
		answer:   "Check official municipal/state disaster portals for verified shelters. If you share your area/locality, I can suggest links to local relief resources and maps.",
	},
	{
		keywords: []string{"helpline", "hotline", "contact", "emergency number"},
		question: "Emergency helplines",
		answer:   "Common helplines: Emergency 112, Fire 101, Ambulance 102/108, Police 100. Check your local/state disaster management authority for location-specific numbers.",
	},
	{
		keywords: []string{"first aid", "injury", "bleeding", "cpr"},
		question: "First aid basics",
		answer:   "First aid: For bleeding, apply direct pressure and elevate if possible. For burns, cool with running water 20 min, do not apply creams. For CPR, call emergency services and begin chest compressions at 100-120/min.",
	},
	{
		keywords: []string{"report damage", "damage", "lost", "missing", "report incident"},
		question: "How to report damage or missing person?",
		answer:   "Use the Report Issue page to submit details with photos and location if possible. For missing persons, contact police and local disaster control room immediately; provide description, last seen, and contact info.",
	},
}

const fallbackReply = "I'm not sure I understand. Could you rephrase your question or select one of the quick questions below?"

type chatbotService struct{}

func NewChatbotService() ChatbotService {
	return &chatbotService{}
}

// Reply matches the message against the rule table: keyword substring match
// first, then exact quick-question text, falling back to a generic prompt.
func (s *chatbotService) Reply(_ context.Context, message string) *ChatReply {
	lower := strings.ToLower(strings.TrimSpace(message))

	for _, pair := range qaPairs {
		for _, keyword := range pair.keywords {
			if strings.Contains(lower, keyword) {
				return &ChatReply{Reply: pair.answer}
			}
		}
		if lower == strings.ToLower(pair.question) {
			return &ChatReply{Reply: pair.answer}
		}
	}

	return &ChatReply{Reply: fallbackReply}
}

func (s *chatbotService) QuickQuestions() []string {
	out := make([]string, len(qaPairs))
	for i, pair := range qaPairs {
		out[i] = pair.question
	}
	return out
}
