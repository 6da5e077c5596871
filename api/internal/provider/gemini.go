// Package provider fetches the raw upstream answer the engine classifies.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"viz-proxy/api/internal/util"
)

// Provider returns the model's answer for a user query. The value is either a
// decoded JSON structure or the raw reply string.
type Provider interface {
	Ask(ctx context.Context, query string) (any, error)
}

// Gemini asks a Gemini model and hands the reply back as loosely typed data.
type Gemini struct {
	APIKey string
	Model  string
}

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{APIKey: strings.TrimSpace(apiKey), Model: strings.TrimSpace(model)}
}

const systemPrompt = `You are a data assistant. Answer the user's question with concrete
figures whenever possible, using "Label: value" lines, bullet lists, or markdown
sections with bold headers. Do not wrap the answer in code fences.`

// Ask sends the query and returns the decoded reply. Transient failures are
// retried three times with linear backoff.
func (g *Gemini) Ask(ctx context.Context, query string) (any, error) {
	if g.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return nil, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(g.Model)
	if m == nil {
		return nil, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{Temperature: ptrFloat32(0.4)}
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, genai.Text(query))
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		txt := util.StripCodeFences(firstText(resp))
		if txt == "" {
			return nil, fmt.Errorf("gemini: empty response")
		}
		// Models sometimes reply with JSON despite the prompt; pass the
		// structure through so the normalizer can classify it directly.
		if strings.HasPrefix(txt, "{") || strings.HasPrefix(txt, "[") {
			var decoded any
			if err := json.Unmarshal([]byte(txt), &decoded); err == nil {
				return decoded, nil
			}
		}
		return txt, nil
	}
	return nil, lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return strings.TrimSpace(string(t))
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
