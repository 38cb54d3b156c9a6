package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/cookduck/backend/config"
)

// SpeechService calls the remote speech-to-text and text-to-speech services.
type SpeechService struct {
	stt    *resty.Client
	tts    *resty.Client
	logger *zap.Logger
}

// NewSpeechService creates clients for the STT and TTS endpoints. STT lives on
// the LLM server, TTS on its own host.
func NewSpeechService(cfg config.AIConfig, logger *zap.Logger) *SpeechService {
	return &SpeechService{
		stt:    resty.New().SetBaseURL(cfg.LLMURL).SetTimeout(cfg.Timeout),
		tts:    resty.New().SetBaseURL(cfg.TTSURL).SetTimeout(cfg.Timeout),
		logger: logger,
	}
}

type sttResponse struct {
	Text string `json:"text"`
}

// Transcribe sends WAV bytes to the STT service and returns the recognized text.
func (s *SpeechService) Transcribe(ctx context.Context, wav []byte) (string, error) {
	var out sttResponse
	resp, err := s.stt.R().
		SetContext(ctx).
		SetFileReader("audio", "utterance.wav", bytes.NewReader(wav)).
		SetResult(&out).
		Post("/stt")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: stt service returned %s", ErrTranscription, resp.Status())
	}
	return out.Text, nil
}

// Synthesize streams TTS audio chunks for the text into w.
func (s *SpeechService) Synthesize(ctx context.Context, text string, w io.Writer) error {
	resp, err := s.tts.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": text}).
		SetDoNotParseResponse(true).
		Post("/tts")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.IsError() {
		return fmt.Errorf("%w: tts service returned %s", ErrSynthesis, resp.Status())
	}
	if _, err := io.Copy(w, body); err != nil {
		return fmt.Errorf("%w: streaming audio: %v", ErrSynthesis, err)
	}
	return nil
}

// FFmpegTranscoder converts raw PCM to WAV by piping through the ffmpeg
// binary. It is the production implementation of the Transcoder capability.
type FFmpegTranscoder struct {
	// Binary overrides the ffmpeg executable path; empty means "ffmpeg".
	Binary string
}

// ToWAV converts signed 16-bit little-endian PCM samples to WAV bytes.
func (t *FFmpegTranscoder) ToWAV(ctx context.Context, pcm []byte, sampleRate, channels int) ([]byte, error) {
	bin := t.Binary
	if bin == "" {
		bin = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, bin,
		"-y",
		"-f", "s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"-i", "pipe:0",
		"-f", "wav",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(pcm)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("transcode pcm to wav: %w: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
