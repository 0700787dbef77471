// Package prompts holds the static prompt tables for the travel assistant:
// the system persona, follow-up question tables, and suggestion parsing.
package prompts

import "strings"

// SystemPrompt is the TravelBuddy persona used for memory-free calls.
const SystemPrompt = `You are TravelBuddy, an expert AI travel assistant with deep knowledge of global destinations, travel planning, and tourism. Your personality is friendly, enthusiastic, and helpful.

CORE RESPONSIBILITIES:
- Provide personalized travel recommendations and planning advice
- Help with flight bookings, hotel suggestions, and itinerary creation
- Offer destination guides, local tips, and cultural insights
- Assist with budget planning and cost optimization
- Give packing advice and travel safety tips
- Answer visa, weather, and seasonal travel questions

RESPONSE STYLE:
- Be conversational, warm, and enthusiastic about travel
- Provide specific, actionable advice with details
- Include relevant tips and local insights
- Ask follow-up questions to better understand needs
- Keep responses concise but comprehensive

Always prioritize user safety, budget consciousness, and practical travel advice.`

// FallbackSystemPrompt is the minimal prompt for the stateless fallback tier.
const FallbackSystemPrompt = "You are a helpful travel assistant. Format responses clearly with proper spacing and use bullet points for lists."

// fallbackSuggestions is returned when suggestion generation or parsing fails.
var fallbackSuggestions = []string{
	"What's your approximate budget for this trip?",
	"How many days are you planning to travel?",
	"Are you traveling solo, with family, or friends?",
}

// FallbackSuggestions returns the fixed 3-item follow-up list.
func FallbackSuggestions() []string {
	out := make([]string, len(fallbackSuggestions))
	copy(out, fallbackSuggestions)
	return out
}

// FollowUpQuestions proposes follow-up questions from keyword tables,
// at most three.
func FollowUpQuestions(userMessage string) []string {
	lower := strings.ToLower(userMessage)
	var questions []string

	if strings.Contains(lower, "trip") || strings.Contains(lower, "travel") {
		questions = append(questions,
			"What's your approximate budget for this trip?",
			"How many days are you planning to travel?",
			"Are you traveling solo, with family, or friends?",
		)
	}

	for _, dest := range []string{"paris", "tokyo", "rome", "london"} {
		if strings.Contains(lower, dest) {
			questions = append(questions,
				"What time of year are you planning to visit?",
				"What type of experiences interest you most?",
				"Do you have any specific must-see attractions in mind?",
			)
			break
		}
	}

	if strings.Contains(lower, "hotel") || strings.Contains(lower, "accommodation") {
		questions = append(questions,
			"What's your preferred accommodation type?",
			"Which area of the city would you like to stay in?",
			"Any specific amenities you need?",
		)
	}

	if len(questions) > 3 {
		questions = questions[:3]
	}
	return questions
}

// ParseSuggestionList splits a model's numbered or dash-prefixed list into
// discrete suggestions, at most three. Lines carrying a list marker are
// preferred; if none exist, plain non-empty lines are used instead.
// Returns nil when nothing parses.
func ParseSuggestionList(text string) []string {
	var marked, plain []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if stripped, ok := stripListMarker(line); ok {
			// A bare marker with no content is noise, not a suggestion.
			if stripped != "" {
				marked = append(marked, stripped)
			}
			continue
		}
		plain = append(plain, line)
	}

	out := marked
	if len(out) == 0 {
		out = plain
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// stripListMarker removes a leading "1.", "2)", "-", or "*" marker and
// reports whether one was present.
func stripListMarker(line string) (string, bool) {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
		return strings.TrimSpace(strings.TrimLeft(line, "-* ")), true
	}

	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:]), true
	}
	return line, false
}
