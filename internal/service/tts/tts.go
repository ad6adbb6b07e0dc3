package tts

import "context"

// Synthesizer абстракция TTS. Синтезирует речь, сохраняет аудио и при необходимости воспроизводит его.
// cfg — провайдер-специфичная конфигурация (для Typecast — config.SpeechConfig).
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, cfg any) (*Result, error)
}

// Result описывает сохранённый результат синтеза.
type Result struct {
	Path     string  // Путь к файлу с аудио
	Format   string  // wav|mp3
	Duration float64 // Длительность в секундах, 0 если сервис не сообщил
	Size     int     // Размер в байтах
}
