package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mediaglot/mediaglot/internal/detector"
	"github.com/mediaglot/mediaglot/internal/postprocess"
)

// visionInstruction asks the multimodal model for a single-key JSON object so
// the extracted text can be recovered mechanically from the reply.
const visionInstruction = `Answer with the text you can see on the image in a JSON format all together without spaces: {"text": <text you can read>}`

// OpenAITranslator covers both OpenAI paths: image text extraction through a
// multimodal chat call, and audio transcription through Whisper. Translation
// of the extracted text is a chat completion in either case.
type OpenAITranslator struct {
	client      *openai.Client
	apiKey      string
	visionModel string
	chatModel   string

	detectOnce sync.Once
	detect     *detector.Detector
}

func NewOpenAITranslator(apiKey string) *OpenAITranslator {
	return NewOpenAITranslatorWithConfig(apiKey, openai.DefaultConfig(apiKey))
}

// NewOpenAITranslatorWithConfig allows overriding the client configuration,
// mainly the base URL in tests.
func NewOpenAITranslatorWithConfig(apiKey string, cfg openai.ClientConfig) *OpenAITranslator {
	return &OpenAITranslator{
		client:      openai.NewClientWithConfig(cfg),
		apiKey:      apiKey,
		visionModel: openai.GPT4VisionPreview,
		chatModel:   openai.GPT3Dot5Turbo,
	}
}

func (o *OpenAITranslator) Name() string {
	return NameOpenAI
}

func (o *OpenAITranslator) ExtractAndTranslate(ctx context.Context, image []byte, sourceLang, targetLang string) (string, string, error) {
	if o.apiKey == "" {
		return "", "", &ProviderError{Provider: NameOpenAI, Op: "vision", Err: fmt.Errorf("OpenAI API key not configured")}
	}

	reply, err := o.describeImage(ctx, image)
	if err != nil {
		return "", "", &ProviderError{Provider: NameOpenAI, Op: "vision", Err: err}
	}

	sourceText, err := recoverText(reply)
	if err != nil {
		return "", "", &ProviderError{Provider: NameOpenAI, Op: "vision", Err: err}
	}

	translated, err := o.translateText(ctx, sourceText, sourceLang, targetLang)
	if err != nil {
		return "", "", &ProviderError{Provider: NameOpenAI, Op: "translation", Err: err}
	}

	return sourceText, translated, nil
}

func (o *OpenAITranslator) TranscribeAndTranslate(ctx context.Context, audioPath string, sourceLang, targetLang string) (string, string, error) {
	if o.apiKey == "" {
		return "", "", &ProviderError{Provider: NameOpenAI, Op: "transcription", Err: fmt.Errorf("OpenAI API key not configured")}
	}

	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return "", "", &ProviderError{Provider: NameOpenAI, Op: "transcription", Err: err}
	}

	translated, err := o.translateText(ctx, resp.Text, sourceLang, targetLang)
	if err != nil {
		return "", "", &ProviderError{Provider: NameOpenAI, Op: "translation", Err: err}
	}

	return resp.Text, translated, nil
}

func (o *OpenAITranslator) describeImage(ctx context.Context, image []byte) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(image)

	req := openai.ChatCompletionRequest{
		Model: o.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: visionInstruction,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: fmt.Sprintf("data:image/jpeg;base64,%s", encoded),
						},
					},
				},
			},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAITranslator) translateText(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if sourceLang == "" || sourceLang == "auto" {
		if code, ok := o.detector().DetectISO(text); ok {
			sourceLang = code
		} else {
			sourceLang = "the detected language"
		}
	}

	req := openai.ChatCompletionRequest{
		Model: o.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("Translate the following text from %s to %s. Answer only with the text translated", sourceLang, targetLang),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return postprocess.Clean(resp.Choices[0].Message.Content), nil
}

// detector builds the language detector on first use; loading the lingua
// models is too expensive to pay for when the source language is explicit.
func (o *OpenAITranslator) detector() *detector.Detector {
	o.detectOnce.Do(func() {
		o.detect = detector.New()
	})
	return o.detect
}

// jsonObjectRe finds the first brace-delimited substring in a reply that did
// not honor the JSON-only instruction.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*?\}`)

// recoverText pulls the extracted text out of the multimodal reply. The
// strict path decodes the whole reply as the requested single-key object; the
// brace-scanning fallback is a compatibility shim for models that wrap the
// object in prose.
func recoverText(reply string) (string, error) {
	if text, err := decodeTextObject(reply); err == nil {
		return text, nil
	}

	candidate := jsonObjectRe.FindString(reply)
	if candidate == "" {
		return "", &ParseError{Provider: NameOpenAI, Reason: "no JSON object in response", Raw: reply}
	}

	text, err := decodeTextObject(candidate)
	if err != nil {
		return "", &ParseError{Provider: NameOpenAI, Reason: err.Error(), Raw: reply}
	}
	return text, nil
}

func decodeTextObject(s string) (string, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return "", fmt.Errorf("invalid JSON object: %w", err)
	}

	v, ok := obj["text"]
	if !ok {
		return "", fmt.Errorf(`JSON object has no "text" field`)
	}

	text, ok := v.(string)
	if !ok {
		return "", fmt.Errorf(`"text" field is not a string`)
	}
	return text, nil
}
