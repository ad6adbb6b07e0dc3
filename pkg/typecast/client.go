package typecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"go.uber.org/zap"
)

// DefaultBaseHost используется, если хост не задан ни явно, ни через окружение.
const DefaultBaseHost = "https://api.typecast.ai"

const (
	pathTextToSpeech = "/v1/text-to-speech"
	pathVoices       = "/v1/voices"
	pathVoicesV2     = "/v2/voices"

	headerAPIKey = "X-API-KEY"
)

// Config — параметры подключения. Пустые поля берутся из окружения.
type Config struct {
	BaseHost string
	APIKey   string
}

// environment — значения по умолчанию из переменных окружения процесса.
type environment struct {
	BaseHost string `env:"TYPECAST_API_HOST" envDefault:"https://api.typecast.ai"`
	APIKey   string `env:"TYPECAST_API_KEY"`
}

// Client — точка входа в API Typecast. Конфигурация не меняется после создания,
// поэтому один Client можно использовать из нескольких горутин.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.SugaredLogger
}

type Option func(*Client)

// WithHTTPClient подменяет HTTP-клиент: таймауты, пул соединений и прокси — его забота.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger включает отладочное логирование каждого обмена. По умолчанию клиент молчит.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) { c.logger = logger }
}

// New создаёт клиента и никогда не падает: отсутствие ключа обнаружится при первом запросе.
func New(cfg Config, opts ...Option) *Client {
	var e environment
	// Ошибка возможна только при неверных тегах структуры, значения по умолчанию остаются на месте.
	_ = env.Parse(&e)

	host := strings.TrimSpace(cfg.BaseHost)
	if host == "" {
		host = strings.TrimSpace(e.BaseHost)
	}
	if host == "" {
		host = DefaultBaseHost
	}
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		key = strings.TrimSpace(e.APIKey)
	}

	c := &Client{
		baseURL: strings.TrimRight(host, "/"),
		apiKey:  key,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает итоговый адрес сервиса.
func (c *Client) BaseURL() string { return c.baseURL }

// Synthesize отправляет текст на синтез и возвращает аудио с метаданными из заголовков.
// При статусе вне 2xx возвращается *APIError и никакого частичного ответа.
func (c *Client) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResponse, error) {
	body, err := json.Marshal(&req)
	if err != nil {
		return nil, fmt.Errorf("typecast: encode synthesis request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, pathTextToSpeech, nil, bytes.NewReader(body), "audio/wav, audio/mpeg")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &SynthesisResponse{
		Audio:    audio,
		Duration: parseDuration(resp.Header),
		Format:   parseFormat(resp.Header),
	}, nil
}

// ListVoices возвращает каталог голосов. Пустая модель — весь каталог.
// Фильтр не проверяется на стороне клиента: неизвестную модель отклонит сервис.
func (c *Client) ListVoices(ctx context.Context, model Model) ([]Voice, error) {
	var out []Voice
	if err := c.getJSON(ctx, pathVoices, modelQuery(model), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVoice возвращает записи одного голоса; их может быть несколько — по одной на модель.
func (c *Client) GetVoice(ctx context.Context, voiceID string, model Model) ([]Voice, error) {
	if strings.TrimSpace(voiceID) == "" {
		return nil, fmt.Errorf("typecast: empty voice id")
	}
	var out []Voice
	if err := c.getJSON(ctx, pathVoices+"/"+url.PathEscape(voiceID), modelQuery(model), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListVoicesV2 возвращает расширенные описания голосов с фильтрами по модели, полу, возрасту и сценариям.
func (c *Client) ListVoicesV2(ctx context.Context, f VoicesV2Filter) ([]VoiceV2, error) {
	q := modelQuery(f.Model)
	if f.Gender != "" {
		q.Set("gender", string(f.Gender))
	}
	if f.Age != "" {
		q.Set("age", string(f.Age))
	}
	for _, uc := range f.UseCases {
		if uc = strings.TrimSpace(uc); uc != "" {
			q.Add("use_cases", uc)
		}
	}
	var out []VoiceV2
	if err := c.getJSON(ctx, pathVoicesV2, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func modelQuery(model Model) url.Values {
	q := url.Values{}
	if m := strings.TrimSpace(string(model)); m != "" {
		q.Set("model", m)
	}
	return q
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, q, nil, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("typecast: decode %s response: %w", path, err)
	}
	return nil
}

// do выполняет один обмен. Возвращает ответ только со статусом 2xx, тело закрывает вызывающий.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body io.Reader, accept string) (*http.Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("typecast: build request: %w", err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Debugw("Typecast request failed", "method", method, "path", path, "error", err, "took", time.Since(started).String())
		}
		return nil, err
	}
	if c.logger != nil {
		c.logger.Debugw("Typecast request completed", "method", method, "path", path, "status", resp.StatusCode, "took", time.Since(started).String())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, errorFromResponse(resp)
	}
	return resp, nil
}
