package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cookduck/backend/internal/service"
)

// VoiceHandler exposes the speech endpoints: audio in, text out, and the
// reverse.
type VoiceHandler struct {
	transcriber service.Transcriber
	synthesizer service.Synthesizer
	transcoder  service.Transcoder
}

func NewVoiceHandler(transcriber service.Transcriber, synthesizer service.Synthesizer, transcoder service.Transcoder) *VoiceHandler {
	return &VoiceHandler{transcriber: transcriber, synthesizer: synthesizer, transcoder: transcoder}
}

func (h *VoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	voice := router.Group("/voice")
	{
		voice.POST("/transcribe", h.Transcribe)
		voice.POST("/speak", h.Speak)
	}
}

// Transcribe accepts a multipart "audio" upload and returns the recognized
// text. Raw s16le PCM is accepted when format=pcm is set, along with
// sample_rate and channels form fields; it is transcoded to WAV first.
func (h *VoiceHandler) Transcribe(c *gin.Context) {
	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing audio file"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read audio"})
		return
	}
	if len(audio) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty audio"})
		return
	}

	if c.PostForm("format") == "pcm" {
		sampleRate, err := strconv.Atoi(c.DefaultPostForm("sample_rate", "16000"))
		if err != nil || sampleRate <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sample_rate"})
			return
		}
		channels, err := strconv.Atoi(c.DefaultPostForm("channels", "1"))
		if err != nil || channels <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channels"})
			return
		}
		audio, err = h.transcoder.ToWAV(c.Request.Context(), audio, sampleRate, channels)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to transcode audio"})
			return
		}
	}

	text, err := h.transcriber.Transcribe(c.Request.Context(), audio)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "transcription service unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

// Speak streams synthesized WAV audio for the given text.
func (h *VoiceHandler) Speak(c *gin.Context) {
	var req SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "audio/wav")
	c.Status(http.StatusOK)
	if err := h.synthesizer.Synthesize(c.Request.Context(), req.Text, c.Writer); err != nil {
		// Headers are already out; all we can do is cut the stream.
		c.Abort()
	}
}
