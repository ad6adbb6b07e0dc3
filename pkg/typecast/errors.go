package typecast

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMissingAPIKey возвращается при запросе, если ключ не задан ни в конфигурации, ни в окружении.
var ErrMissingAPIKey = errors.New("typecast: api key is not set (pass Config.APIKey or set TYPECAST_API_KEY)")

// maxErrorBody ограничивает чтение тела ответа с ошибкой.
const maxErrorBody = 64 << 10

// APIError — сервис получил запрос, но ответил статусом вне 2xx.
// Ошибки транспорта (DNS, соединение, TLS) сюда не попадают и возвращаются без изменений.
type APIError struct {
	StatusCode int
	Status     string // текст статуса без кода, напр. "Unprocessable Entity"
	Body       []byte // тело ответа как есть: JSON или произвольный текст
}

func (e *APIError) Error() string {
	body := bytes.TrimSpace(e.Body)
	if len(body) == 0 {
		return fmt.Sprintf("typecast api error: status=%d %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("typecast api error: status=%d %s, body=%s", e.StatusCode, e.Status, body)
}

// messagePaths — где сервис обычно кладёт текст ошибки.
var messagePaths = []string{"message", "error.message", "error", "detail.0.msg", "detail"}

// Message возвращает читаемое сообщение об ошибке: из JSON-тела, если оно структурировано,
// иначе — само тело.
func (e *APIError) Message() string {
	if gjson.ValidBytes(e.Body) {
		for _, p := range messagePaths {
			if r := gjson.GetBytes(e.Body, p); r.Exists() && r.Type == gjson.String && r.Str != "" {
				return r.Str
			}
		}
	}
	if body := strings.TrimSpace(string(e.Body)); body != "" {
		return body
	}
	return e.Status
}

// AsAPIError извлекает *APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// newAPIError — единственное место, где создаётся APIError.
func newAPIError(code int, statusText string, body []byte) *APIError {
	statusText = strings.TrimSpace(statusText)
	if statusText == "" {
		statusText = http.StatusText(code)
	}
	b := make([]byte, len(body))
	copy(b, body)
	return &APIError{StatusCode: code, Status: statusText, Body: b}
}

func errorFromResponse(resp *http.Response) *APIError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	// resp.Status приходит как "422 Unprocessable Entity"
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	return newAPIError(resp.StatusCode, text, b)
}
