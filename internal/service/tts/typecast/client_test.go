package typecast

import (
	"TypecastClient/internal/config"
	tc "TypecastClient/pkg/typecast"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePlayer struct {
	format string
	audio  []byte
	err    error
}

func (p *fakePlayer) Play(format string, audio []byte) error {
	p.format, p.audio = format, audio
	return p.err
}

func speechConfig(dir string) config.SpeechConfig {
	sc := config.Defaults().Speech
	sc.VoiceID = "tc_1"
	sc.OutputDir = dir
	return sc
}

func newUpstream(t *testing.T, status int, contentType string, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, "tc_1", got["voice_id"])
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Audio-Duration", "0.75")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Synthesize_SavesFile(t *testing.T) {
	dir := t.TempDir()
	srv := newUpstream(t, http.StatusOK, "audio/mpeg", "ID3 fake mp3")
	p := &fakePlayer{}
	c := New(tc.New(tc.Config{BaseHost: srv.URL, APIKey: "k"}), p, zap.NewNop().Sugar())

	res, err := c.Synthesize(context.Background(), "Hello", speechConfig(dir))
	require.NoError(t, err)
	require.Equal(t, "mp3", res.Format)
	require.Equal(t, 0.75, res.Duration)
	require.Equal(t, len("ID3 fake mp3"), res.Size)
	require.Equal(t, dir, filepath.Dir(res.Path))
	require.True(t, strings.HasPrefix(filepath.Base(res.Path), "typecast-"))
	require.Equal(t, ".mp3", filepath.Ext(res.Path))

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	require.Equal(t, "ID3 fake mp3", string(data))
	// без Play плеер не трогаем
	require.Empty(t, p.format)
}

func TestClient_Synthesize_ExplicitFileAndPlay(t *testing.T) {
	dir := t.TempDir()
	srv := newUpstream(t, http.StatusOK, "audio/wav", "RIFF")
	p := &fakePlayer{}
	c := New(tc.New(tc.Config{BaseHost: srv.URL, APIKey: "k"}), p, nil)

	sc := speechConfig(dir)
	sc.OutputFile = filepath.Join(dir, "nested", "output.wav")
	sc.Play = true

	res, err := c.Synthesize(context.Background(), "Hello", sc)
	require.NoError(t, err)
	require.Equal(t, sc.OutputFile, res.Path)
	require.FileExists(t, res.Path)
	require.Equal(t, "wav", p.format)
	require.Equal(t, []byte("RIFF"), p.audio)
}

func TestClient_Synthesize_PlayError(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, "audio/wav", "RIFF")
	p := &fakePlayer{err: errors.New("no audio device")}
	c := New(tc.New(tc.Config{BaseHost: srv.URL, APIKey: "k"}), p, nil)

	sc := speechConfig(t.TempDir())
	sc.Play = true
	res, err := c.Synthesize(context.Background(), "Hello", sc)
	require.ErrorContains(t, err, "no audio device")
	// файл уже сохранён, результат возвращается вместе с ошибкой
	require.NotNil(t, res)
	require.FileExists(t, res.Path)

	c = New(tc.New(tc.Config{BaseHost: srv.URL, APIKey: "k"}), nil, nil)
	_, err = c.Synthesize(context.Background(), "Hello", sc)
	require.ErrorContains(t, err, "no player configured")
}

func TestClient_Synthesize_UpstreamError(t *testing.T) {
	dir := t.TempDir()
	srv := newUpstream(t, http.StatusUnauthorized, "application/json", `{"message":"invalid api key"}`)
	c := New(tc.New(tc.Config{BaseHost: srv.URL, APIKey: "k"}), nil, nil)

	res, err := c.Synthesize(context.Background(), "Hello", speechConfig(dir))
	require.Nil(t, res)
	apiErr, ok := tc.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "invalid api key", apiErr.Message())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestClient_Synthesize_BadConfig(t *testing.T) {
	c := New(nil, nil, nil)
	_, err := c.Synthesize(context.Background(), "Hello", config.Defaults())
	require.ErrorContains(t, err, "unexpected config type")

	sc := speechConfig(t.TempDir())
	sc.Model = "ssfm-v1"
	_, err = c.Synthesize(context.Background(), "Hello", sc)
	require.ErrorContains(t, err, "unknown model")
}

func TestBuildRequest(t *testing.T) {
	sc := speechConfig("")
	sc.Language = "KOR"
	sc.Emotion = "Happy"
	sc.EmotionIntensity = 1.5
	sc.Tempo = 0
	sc.Format = "MP3"

	req, err := BuildRequest("안녕하세요", sc)
	require.NoError(t, err)

	b, err := json.Marshal(req)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"text": "안녕하세요",
		"voice_id": "tc_1",
		"model": "ssfm-v21",
		"language": "kor",
		"prompt": {"emotion_preset": "happy", "emotion_intensity": 1.5, "speed": 1},
		"output": {"volume": 100, "audio_pitch": 0, "audio_format": "mp3"}
	}`, string(b))

	sc.Speed = 5
	_, err = BuildRequest("hi", sc)
	require.ErrorContains(t, err, "speed 5 out of range")
}
