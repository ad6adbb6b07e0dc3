package typecast

import (
	"TypecastClient/internal/config"
	"TypecastClient/internal/service/tts"
	"TypecastClient/internal/service/tts/player"
	tc "TypecastClient/pkg/typecast"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// API — часть клиента Typecast, нужная синтезатору.
type API interface {
	Synthesize(ctx context.Context, req tc.SynthesisRequest) (*tc.SynthesisResponse, error)
}

// Client реализует синтез речи через Typecast, сохраняет результат в файл и при необходимости воспроизводит.
type Client struct {
	api    API
	player player.Player
	logger *zap.SugaredLogger
}

var _ tts.Synthesizer = (*Client)(nil)

// New создаёт синтезатор. Плеер может быть nil, тогда воспроизведение недоступно.
func New(api API, p player.Player, logger *zap.SugaredLogger) *Client {
	return &Client{api: api, player: p, logger: logger}
}

// Synthesize выполняет запрос к Typecast и сохраняет аудио. cfg должен быть config.SpeechConfig.
func (c *Client) Synthesize(ctx context.Context, text string, cfg any) (*tts.Result, error) {
	sc, ok := cfg.(config.SpeechConfig)
	if !ok {
		return nil, errors.New("typecast tts: unexpected config type")
	}
	req, err := BuildRequest(text, sc)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	resp, err := c.api.Synthesize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("typecast tts: %w", err)
	}
	if c.logger != nil {
		c.logger.Infow("Typecast TTS synthesize completed",
			"voice", req.VoiceID,
			"model", req.Model,
			"format", resp.Format,
			"duration", resp.Duration,
			"bytes", len(resp.Audio),
			"took", time.Since(started).String(),
		)
		// файл сохраняем под фактическим форматом ответа
		if req.Output != nil && req.Output.AudioFormat != "" && req.Output.AudioFormat != resp.Format {
			c.logger.Warnw("Typecast returned a different audio format", "requested", req.Output.AudioFormat, "got", resp.Format)
		}
	}

	path := outputPath(sc, string(resp.Format))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("typecast tts: create output dir: %w", err)
	}
	if err := os.WriteFile(path, resp.Audio, 0o644); err != nil {
		return nil, fmt.Errorf("typecast tts: save audio: %w", err)
	}

	res := &tts.Result{Path: path, Format: string(resp.Format), Duration: resp.Duration, Size: len(resp.Audio)}
	if !sc.Play {
		return res, nil
	}
	if c.player == nil {
		return res, errors.New("typecast tts: playback requested but no player configured")
	}
	if err := c.player.Play(res.Format, resp.Audio); err != nil {
		return res, fmt.Errorf("typecast tts: play: %w", err)
	}
	return res, nil
}

// BuildRequest собирает запрос из конфигурации. Нулевые значения скорости и темпа не отправляются.
func BuildRequest(text string, sc config.SpeechConfig) (tc.SynthesisRequest, error) {
	model, err := tc.ParseModel(sc.Model)
	if err != nil {
		return tc.SynthesisRequest{}, err
	}

	opts := []tc.RequestOption{
		tc.WithVolume(sc.Volume),
		tc.WithPitch(sc.Pitch),
	}
	if l := strings.TrimSpace(sc.Language); l != "" {
		opts = append(opts, tc.WithLanguage(tc.Language(strings.ToLower(l))))
	}
	if e := strings.TrimSpace(sc.Emotion); e != "" {
		opts = append(opts, tc.WithEmotion(tc.EmotionPreset(strings.ToLower(e)), sc.EmotionIntensity))
	}
	if sc.Speed != 0 {
		opts = append(opts, tc.WithSpeed(sc.Speed))
	}
	if sc.Tempo != 0 {
		opts = append(opts, tc.WithTempo(sc.Tempo))
	}
	if f := strings.TrimSpace(sc.Format); f != "" {
		opts = append(opts, tc.WithFormat(tc.AudioFormat(strings.ToLower(f))))
	}
	return tc.NewSynthesisRequest(text, sc.VoiceID, model, opts...)
}

// outputPath — явный файл из конфигурации или typecast-<uuid>.<format> в OutputDir.
func outputPath(sc config.SpeechConfig, format string) string {
	if f := strings.TrimSpace(sc.OutputFile); f != "" {
		return f
	}
	dir := sc.OutputDir
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return filepath.Join(dir, fmt.Sprintf("typecast-%s.%s", uuid.NewString(), format))
}
