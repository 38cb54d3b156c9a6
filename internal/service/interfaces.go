package service

import (
	"context"
	"io"
)

// Embedder produces fixed-dimension text embeddings from the remote encoder.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer generates a completion for a fully formatted prompt string.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Transcriber converts WAV audio bytes to text.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
}

// Synthesizer streams synthesized speech for a text into w.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, w io.Writer) error
}

// Transcoder converts raw PCM samples to WAV bytes. It abstracts the external
// transcoding binary behind a narrow injected capability.
type Transcoder interface {
	ToWAV(ctx context.Context, pcm []byte, sampleRate, channels int) ([]byte, error)
}

// AnswerCache caches LLM answers keyed by a turn fingerprint. Failures are
// soft; callers treat a miss and an error the same way.
type AnswerCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, answer string)
}
