package typecast

import (
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

const (
	headerAudioDuration = "X-Audio-Duration"
	headerContentType   = "Content-Type"
)

// parseDuration читает длительность в секундах. Отсутствующее или битое значение — 0.
func parseDuration(h http.Header) float64 {
	v := strings.TrimSpace(h.Get(headerAudioDuration))
	if v == "" {
		return 0
	}
	d, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0
	}
	return d
}

// parseFormat сводит Content-Type к одному из двух форматов, всё неизвестное считается wav.
func parseFormat(h http.Header) AudioFormat {
	ct := strings.TrimSpace(h.Get(headerContentType))
	if ct == "" {
		return FormatWAV
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mt = strings.ToLower(strings.SplitN(ct, ";", 2)[0])
	}
	_, sub, _ := strings.Cut(mt, "/")
	switch strings.TrimSpace(sub) {
	case "mpeg", "mp3", "mpeg3", "x-mpeg-3", "x-mp3":
		return FormatMP3
	default:
		return FormatWAV
	}
}
