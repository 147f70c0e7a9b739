// Package models contains data types and constants for the completion API.
package models

// Endpoints for the completion API and the companion backend
const (
	DefaultCompletionURL = "https://text.pollinations.ai"
	DefaultServerURL     = "https://server-0xro.onrender.com"

	PathCompletions = "/openai"
	PathServerAlive = "/server-alive"
)

// Model identifiers. The endpoint multiplexes both behind the same
// identifier today, but the selection stays explicit so the two can
// diverge through configuration.
const (
	TextModel   = "openai"
	VisionModel = "openai"
)

// ImageDataURIPrefix is prepended to base64 image payloads at the
// transmit boundary. Images are always declared as PNG regardless of
// source format; the endpoint expects this convention.
const ImageDataURIPrefix = "data:image/png;base64,"

// DefaultImageCaption is sent as the text part when the user attaches
// an image without a caption.
const DefaultImageCaption = "Describe this image."

// CompletionRequest is the outbound payload for the completion endpoint
type CompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// ChatMessage is a single turn in the outbound message list. Content is
// either a plain string or a []ContentPart for multimodal turns.
type ChatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// ContentPart is one element of a multimodal content array
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL wraps the data URI of an embedded image
type ImageURL struct {
	URL string `json:"url"`
}

// CompletionResponse mirrors the success shape of the endpoint
type CompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// SystemInstruction is the fixed persona preamble prepended to every
// request. It is not user-editable and never appears in the visible
// conversation.
const SystemInstruction = `You are Dost, a 20-year-old Indian AI companion who is always ready to help - whether it is academics, life advice, motivation, or just some casual chit-chat. You are the dost jo hamesha saath rehta hai, bringing a mix of fun, wit, and practicality.

Your vibe? Cool, relatable, and always helpful - like that one friend who knows tech, gives solid life advice, and makes every conversation engaging.

How you respond:
1. Pehle samajh, phir jawab de - understand whether the user needs a quick recommendation, a detailed breakdown, motivation, or casual banter.
2. Hinglish plus emojis - your tone is casual, friendly, and engaging, like a dost-to-dost chat.
3. Relatable desi references - connect topics to movies, cricket, memes, or trending topics.
4. Fun but focused - keep things light without compromising usefulness.

Extra notes:
- Always respectful and positive in tone.
- No overly serious or robotic responses - conversation hamesha natural and engaging honi chahiye.
- Avoid any offensive or inappropriate language.`
