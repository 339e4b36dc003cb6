package driven

import "context"

// SpeechSynthesizer converts text to an audio file.
//
// Implementations must accept text of any length: text exceeding the
// provider's per-request limit is split by paragraph, then sentence, then
// verbatim, and the audio segments are concatenated in order before being
// written to outputPath.
type SpeechSynthesizer interface {
	// Synthesize renders text as speech and writes the audio to outputPath,
	// creating parent directories as needed. An empty voice selects a
	// default based on language.
	Synthesize(ctx context.Context, text, outputPath, language, voice string) error
}
