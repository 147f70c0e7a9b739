package api

import (
	"github.com/dost-cli/dost/internal/chat"
	apierrors "github.com/dost-cli/dost/internal/errors"
	"github.com/dost-cli/dost/internal/models"
)

// ModelSelection names the model identifiers the builder chooses
// between.
type ModelSelection struct {
	Text   string
	Vision string
}

// BuildCompletionRequest assembles the outbound payload for one send.
// The fixed system instruction is always the first turn. An image
// selects the vision model and a two-part content array (caption plus
// data-URI image reference); plain text selects the text model. A send
// with neither text nor image fails with ErrEmptyMessage before
// anything reaches the network.
//
// The conversation is single-turn by default: prior history is only
// included when historyTurns > 0, and then capped at the last
// historyTurns visible turns.
func BuildCompletionRequest(sel ModelSelection, text, imageBase64 string, prior []chat.Message, historyTurns int) (*models.CompletionRequest, error) {
	if text == "" && imageBase64 == "" {
		return nil, apierrors.ErrEmptyMessage
	}

	messages := []models.ChatMessage{
		{Role: "system", Content: models.SystemInstruction},
	}
	messages = append(messages, historyMessages(prior, historyTurns)...)

	model := sel.Text
	if imageBase64 != "" {
		model = sel.Vision
		caption := text
		if caption == "" {
			caption = models.DefaultImageCaption
		}
		messages = append(messages, models.ChatMessage{
			Role: "user",
			Content: []models.ContentPart{
				{Type: "text", Text: caption},
				{Type: "image_url", ImageURL: &models.ImageURL{
					URL: models.ImageDataURIPrefix + imageBase64,
				}},
			},
		})
	} else {
		messages = append(messages, models.ChatMessage{
			Role:    "user",
			Content: text,
		})
	}

	return &models.CompletionRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	}, nil
}

// historyMessages maps the last n visible turns into outbound form.
// System turns never leave the device; image-only turns are stood in
// for by a placeholder since the payload is not re-sent.
func historyMessages(prior []chat.Message, n int) []models.ChatMessage {
	if n <= 0 {
		return nil
	}

	visible := make([]chat.Message, 0, len(prior))
	for _, msg := range prior {
		if msg.Role == chat.RoleSystem {
			continue
		}
		visible = append(visible, msg)
	}
	if len(visible) > n {
		visible = visible[len(visible)-n:]
	}

	out := make([]models.ChatMessage, 0, len(visible))
	for _, msg := range visible {
		content := msg.Text
		if content == "" && msg.Image != "" {
			content = "[Image Sent]"
		}
		out = append(out, models.ChatMessage{
			Role:    string(msg.Role),
			Content: content,
		})
	}
	return out
}
