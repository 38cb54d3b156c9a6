package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cookduck/backend/internal/mocks"
)

func newVoiceRouter(transcriber *mocks.MockTranscriber, synthesizer *mocks.MockSynthesizer, transcoder *mocks.MockTranscoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewVoiceHandler(transcriber, synthesizer, transcoder).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func multipartAudio(t *testing.T, audio []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("audio", "utterance.wav")
	require.NoError(t, err)
	_, err = fw.Write(audio)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestTranscribeEndpoint(t *testing.T) {
	transcriber := &mocks.MockTranscriber{}
	transcriber.On("Transcribe", mock.Anything, []byte("wav-bytes")).Return("next", nil)
	router := newVoiceRouter(transcriber, &mocks.MockSynthesizer{}, &mocks.MockTranscoder{})

	body, contentType := multipartAudio(t, []byte("wav-bytes"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"text":"next"`)
	transcriber.AssertExpectations(t)
}

func TestTranscribeEndpointPCMTranscodes(t *testing.T) {
	transcoder := &mocks.MockTranscoder{}
	transcoder.On("ToWAV", mock.Anything, []byte("pcm-bytes"), 16000, 1).Return([]byte("wav-bytes"), nil)
	transcriber := &mocks.MockTranscriber{}
	transcriber.On("Transcribe", mock.Anything, []byte("wav-bytes")).Return("다음", nil)
	router := newVoiceRouter(transcriber, &mocks.MockSynthesizer{}, transcoder)

	body, contentType := multipartAudio(t, []byte("pcm-bytes"), map[string]string{"format": "pcm"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	transcoder.AssertExpectations(t)
	transcriber.AssertExpectations(t)
}

func TestTranscribeEndpointMissingAudio(t *testing.T) {
	router := newVoiceRouter(&mocks.MockTranscriber{}, &mocks.MockSynthesizer{}, &mocks.MockTranscoder{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/transcribe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpeakEndpoint(t *testing.T) {
	synthesizer := &mocks.MockSynthesizer{}
	synthesizer.On("Synthesize", mock.Anything, "Chop the kimchi.", mock.Anything).
		Run(func(args mock.Arguments) {
			w := args.Get(2).(io.Writer)
			_, _ = w.Write([]byte("RIFF-audio"))
		}).
		Return(nil)
	router := newVoiceRouter(&mocks.MockTranscriber{}, synthesizer, &mocks.MockTranscoder{})

	w := postJSON(t, router, "/api/v1/voice/speak", gin.H{"text": "Chop the kimchi."})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/wav", w.Header().Get("Content-Type"))
	assert.Equal(t, "RIFF-audio", w.Body.String())
	synthesizer.AssertExpectations(t)
}
