// Package openai provides a speech synthesis adapter using OpenAI's
// text-to-speech API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
	"github.com/mindsonic-labs/mindsonic/internal/logger"
)

// Ensure Synthesizer implements the interface.
var _ driven.SpeechSynthesizer = (*Synthesizer)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "tts-1"
	DefaultVoice   = "alloy"
	DefaultTimeout = 120 * time.Second

	// maxSegmentChars is the per-request input limit. Longer texts are
	// split and the audio segments concatenated.
	maxSegmentChars = 4000
)

// languageVoices maps languages to the voice best suited for them.
var languageVoices = map[string]string{
	"english":    "alloy",
	"en":         "alloy",
	"french":     "nova",
	"fr":         "nova",
	"german":     "onyx",
	"de":         "onyx",
	"spanish":    "shimmer",
	"es":         "shimmer",
	"italian":    "echo",
	"it":         "echo",
	"japanese":   "nova",
	"ja":         "nova",
	"chinese":    "shimmer",
	"zh":         "shimmer",
	"portuguese": "alloy",
	"pt":         "alloy",
	"dutch":      "fable",
	"nl":         "fable",
}

// VoiceForLanguage returns the default voice for a language, falling
// back to the neutral default for unknown languages.
func VoiceForLanguage(language string) string {
	if v, ok := languageVoices[strings.ToLower(language)]; ok {
		return v
	}
	return DefaultVoice
}

// Config holds configuration for the OpenAI speech synthesizer.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	BaseURL string

	// Model is the TTS model to use (default: tts-1).
	Model string

	// Speed adjusts playback speed (default 1.0).
	Speed float64

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration
}

// Synthesizer renders text as MP3 audio using OpenAI API.
type Synthesizer struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	speed   float64
}

// speechRequest is the OpenAI /audio/speech request format.
type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed,omitempty"`
}

// NewSynthesizer creates a new OpenAI speech synthesizer.
func NewSynthesizer(cfg Config) (*Synthesizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", domain.ErrMissingAPIKey)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Speed == 0 {
		cfg.Speed = 1.0
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Synthesizer{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		speed:   cfg.Speed,
	}, nil
}

// Synthesize renders text as speech and writes the MP3 to outputPath.
// Text beyond the per-request limit is split by paragraph, then by
// sentence, and the audio segments are concatenated in order.
func (s *Synthesizer) Synthesize(ctx context.Context, text, outputPath, language, voice string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: empty text", domain.ErrInvalidInput)
	}

	if voice == "" {
		voice = VoiceForLanguage(language)
		logger.Debug("tts: selected voice %s for language %q", voice, language)
	}

	segments := splitText(text, maxSegmentChars)
	if len(segments) > 1 {
		logger.Info("tts: input exceeds %d characters, rendering %d segments", maxSegmentChars, len(segments))
	}

	var audio bytes.Buffer
	for i, segment := range segments {
		data, err := s.render(ctx, segment, voice)
		if err != nil {
			return fmt.Errorf("render segment %d/%d: %w", i+1, len(segments), err)
		}
		audio.Write(data)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, audio.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}

	logger.Debug("tts: wrote %d bytes to %s", audio.Len(), outputPath)
	return nil
}

// render performs one /audio/speech request and returns the MP3 bytes.
func (s *Synthesizer) render(ctx context.Context, text, voice string) ([]byte, error) {
	reqBody := speechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          voice,
		ResponseFormat: "mp3",
		Speed:          s.speed,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/audio/speech",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// splitText breaks text into segments of at most max characters.
// Paragraphs are packed greedily; a paragraph that alone exceeds the
// limit is split on sentence boundaries, and a single oversized
// sentence is passed through verbatim.
func splitText(text string, max int) []string {
	if len(text) <= max {
		return []string{text}
	}

	var (
		segments []string
		cur      strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			segments = append(segments, cur.String())
			cur.Reset()
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		if len(para) > max {
			flush()
			segments = append(segments, splitParagraph(para, max)...)
			continue
		}
		if cur.Len() > 0 && cur.Len()+2+len(para) > max {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(para)
	}
	flush()

	return segments
}

// splitParagraph packs sentences into segments of at most max
// characters. Sentence boundaries follow ". " so abbreviations may
// split early; for speech rendering that is harmless.
func splitParagraph(para string, max int) []string {
	var (
		segments []string
		cur      strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			segments = append(segments, cur.String())
			cur.Reset()
		}
	}

	for _, sentence := range strings.SplitAfter(para, ". ") {
		if len(sentence) > max {
			flush()
			segments = append(segments, sentence)
			continue
		}
		if cur.Len()+len(sentence) > max {
			flush()
		}
		cur.WriteString(sentence)
	}
	flush()

	return segments
}
