package resolver

import (
	"time"

	"voicetask/pkg/llmprovider"
)

const systemInstruction = `You are a voice command parser for a task planner. Parse the user's spoken command into exactly one JSON object with this shape:

{
  "intent": "task | reminder | note | schedule | findTime | delete | complete | unknown",
  "confidence": 0.0,
  "extractedData": {
    "title": "cleaned task title without command words or time phrases",
    "date": "YYYY-MM-DD or omit",
    "time": "HH:mm 24-hour or omit",
    "priority": "low | medium | high",
    "reminders": [30],
    "applyToLastScheduled": false,
    "attendees": [{"email": "a@b.com", "displayName": "optional"}]
  }
}

Rules:
- "reminders" are minute offsets before the due time. Only phrases like "30 minutes before" or "remind me an hour before" are reminders; durations ("for 30 minutes") are not.
- Set "applyToLastScheduled" to true when the command modifies the most recently mentioned task instead of creating a new one ("remind me before that meeting", "call it the dentist visit").
- Resolve relative dates ("tomorrow", weekday names) against the current date given below.
- Omit fields you cannot determine. Never invent dates.`

const jsonOnlyInstruction = `Respond with the JSON object ONLY. No prose, no markdown fences, no explanation. Your entire response must parse as JSON.`

func (r *Resolver) buildRequest(text string, now time.Time, strict bool) *llmprovider.Request {
	system := systemInstruction + "\n\n" + r.temporal.TimeContext(now)
	if strict {
		system += "\n\n" + jsonOnlyInstruction
	}

	return &llmprovider.Request{
		System: system,
		Messages: []llmprovider.Message{
			{Role: "user", Text: text},
		},
		Temperature: 0.1,
		MaxTokens:   512,
	}
}
