package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode bool           `env:"DEBUG_MODE"` // Режим дебага: development-логгер и отладочные логи клиента
	Typecast  TypecastConfig // Подключение к API Typecast
	Speech    SpeechConfig   // Параметры синтеза по умолчанию для команды speak
}

// TypecastConfig параметры подключения к API. Пустые значения клиент сам добирает из окружения.
type TypecastConfig struct {
	APIHost string `env:"TYPECAST_API_HOST"` // Хост API, по умолчанию https://api.typecast.ai
	APIKey  string `env:"TYPECAST_API_KEY"`  // Ключ берём из .env/ENV. Если пуст — ошибка будет при первом запросе
}

// SpeechConfig параметры синтеза речи через Typecast.
type SpeechConfig struct {
	VoiceID          string  `env:"TYPECAST_VOICE_ID"`          // Голос, tc_... или uc_...
	Model            string  `env:"TYPECAST_MODEL"`             // ssfm-v21|ssfm-v30
	Language         string  `env:"TYPECAST_LANGUAGE"`          // ISO 639-3; пусто — язык определяет сервис
	Emotion          string  `env:"TYPECAST_EMOTION"`           // normal|happy|sad|angry|tonemid|toneup
	EmotionIntensity float64 `env:"TYPECAST_EMOTION_INTENSITY"` // 0..2
	Speed            float64 `env:"TYPECAST_SPEED"`             // 0.5..2
	Volume           int     `env:"TYPECAST_VOLUME"`            // 0..200, 100 — без изменений
	Pitch            int     `env:"TYPECAST_PITCH"`             // Полутоны, -12..12
	Tempo            float64 `env:"TYPECAST_TEMPO"`             // 0.5..2
	Format           string  `env:"TYPECAST_AUDIO_FORMAT"`      // wav|mp3
	OutputDir        string  `env:"TYPECAST_OUTPUT_DIR"`        // Куда сохранять аудио
	OutputFile       string  // Явный путь к файлу (только из флага); пусто — имя генерируется в OutputDir
	Play             bool    `env:"TYPECAST_PLAY"`              // Сразу воспроизвести результат
	PlayerVolumeDB   float64 `env:"PLAYER_VOLUME_DB"`           // Громкость локального плеера, dB (отрицательные — тише)
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode: false,
		Speech: SpeechConfig{
			Model:            "ssfm-v21",
			Emotion:          "normal",
			EmotionIntensity: 1.0,
			Speed:            1.0,
			Volume:           100,
			Pitch:            0,
			Tempo:            1.0,
			Format:           "wav",
			OutputDir:        ".",
			Play:             false,
			PlayerVolumeDB:   0,
		},
	}
}

// NewConfig загружает конфигурацию: дефолты, затем .env (если есть), затем окружение.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}
