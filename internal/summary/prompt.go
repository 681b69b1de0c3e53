package summary

import "fmt"

const systemPrompt = `You are a professional meeting minutes assistant. Analyse the meeting transcript below and produce structured minutes.

Respond with a single JSON object in exactly this shape and nothing else:

{
  "summary": "meeting summary (100-200 words)",
  "key_decisions": ["decision 1", "decision 2"],
  "action_items": [
    {
      "assignee": "owner name",
      "task": "concrete task",
      "deadline": "deadline if mentioned"
    }
  ],
  "participants": ["participants, if identifiable"],
  "topics_discussed": ["topic 1", "topic 2"],
  "dialogue": [
    {
      "speaker": "speaker label (e.g. Speaker A, the chair, a name)",
      "content": "summary of what was said"
    }
  ]
}

Rules:
1. If a piece of information cannot be identified, return an empty array or "Not mentioned".
2. Every action item must name an owner and a task.
3. Keep the summary concise while covering the main points.
4. For dialogue, infer distinct speakers from semantics, forms of address and tone, and record the main exchanges in order.
5. Use real names as speaker labels when they can be identified from the conversation.
6. Otherwise distinguish speakers as "Speaker A", "Speaker B" and so on.
7. Only record important statements in dialogue, not everything.`

func userPrompt(transcript string) string {
	return "Analyse the following meeting:\n\n" + transcript
}

func briefPrompt(maxLength int) string {
	return fmt.Sprintf("You are a professional summarization assistant. Summarize the key points of the following text concisely in no more than %d characters.", maxLength)
}
