// Package typecast — клиент HTTP API Typecast для синтеза речи и получения списка голосов.
//
// Клиент ничего не кэширует, не повторяет запросы и не декодирует аудио: каждый вызов —
// ровно один HTTP-обмен, результат или ошибка возвращаются вызывающему как есть.
package typecast

import (
	"fmt"
	"strings"
)

// Model — идентификатор движка синтеза.
type Model string

const (
	ModelSSFMV21 Model = "ssfm-v21"
	ModelSSFMV30 Model = "ssfm-v30"
)

var models = []Model{ModelSSFMV21, ModelSSFMV30}

// Models возвращает список поддерживаемых моделей.
func Models() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

func (m Model) Valid() bool {
	for _, v := range models {
		if m == v {
			return true
		}
	}
	return false
}

// ParseModel разбирает идентификатор модели, регистр и пробелы по краям не важны.
func ParseModel(s string) (Model, error) {
	m := Model(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("typecast: unknown model %q", s)
	}
	return m, nil
}

// Language — код языка ISO 639-3 из поддерживаемого подмножества.
type Language string

const (
	LanguageEnglish    Language = "eng"
	LanguageKorean     Language = "kor"
	LanguageJapanese   Language = "jpn"
	LanguageChinese    Language = "zho"
	LanguageSpanish    Language = "spa"
	LanguageGerman     Language = "deu"
	LanguageFrench     Language = "fra"
	LanguageItalian    Language = "ita"
	LanguagePortuguese Language = "por"
	LanguageRussian    Language = "rus"
	LanguageUkrainian  Language = "ukr"
	LanguagePolish     Language = "pol"
	LanguageDutch      Language = "nld"
	LanguageGreek      Language = "ell"
	LanguageFinnish    Language = "fin"
	LanguageSwedish    Language = "swe"
	LanguageDanish     Language = "dan"
	LanguageCzech      Language = "ces"
	LanguageSlovak     Language = "slk"
	LanguageCroatian   Language = "hrv"
	LanguageBulgarian  Language = "bul"
	LanguageRomanian   Language = "ron"
	LanguageArabic     Language = "ara"
	LanguageIndonesian Language = "ind"
	LanguageMalay      Language = "msa"
	LanguageTagalog    Language = "tgl"
	LanguageTamil      Language = "tam"
)

// iso6391 — двухбуквенные коды (ISO 639-1) поддерживаемых языков.
var iso6391 = map[string]Language{
	"en": LanguageEnglish,
	"ko": LanguageKorean,
	"ja": LanguageJapanese,
	"zh": LanguageChinese,
	"es": LanguageSpanish,
	"de": LanguageGerman,
	"fr": LanguageFrench,
	"it": LanguageItalian,
	"pt": LanguagePortuguese,
	"ru": LanguageRussian,
	"uk": LanguageUkrainian,
	"pl": LanguagePolish,
	"nl": LanguageDutch,
	"el": LanguageGreek,
	"fi": LanguageFinnish,
	"sv": LanguageSwedish,
	"da": LanguageDanish,
	"cs": LanguageCzech,
	"sk": LanguageSlovak,
	"hr": LanguageCroatian,
	"bg": LanguageBulgarian,
	"ro": LanguageRomanian,
	"ar": LanguageArabic,
	"id": LanguageIndonesian,
	"ms": LanguageMalay,
	"tl": LanguageTagalog,
	"ta": LanguageTamil,
}

func (l Language) Valid() bool {
	for _, v := range iso6391 {
		if l == v {
			return true
		}
	}
	return false
}

// ParseLanguage принимает код ISO 639-3.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("typecast: unsupported language %q", s)
	}
	return l, nil
}

// EmotionPreset — готовый эмоциональный пресет.
type EmotionPreset string

const (
	EmotionNormal  EmotionPreset = "normal"
	EmotionHappy   EmotionPreset = "happy"
	EmotionSad     EmotionPreset = "sad"
	EmotionAngry   EmotionPreset = "angry"
	EmotionToneMid EmotionPreset = "tonemid"
	EmotionToneUp  EmotionPreset = "toneup"
)

func (e EmotionPreset) Valid() bool {
	switch e {
	case EmotionNormal, EmotionHappy, EmotionSad, EmotionAngry, EmotionToneMid, EmotionToneUp:
		return true
	}
	return false
}

// AudioFormat — формат аудио в ответе.
type AudioFormat string

const (
	FormatWAV AudioFormat = "wav"
	FormatMP3 AudioFormat = "mp3"
)

func (f AudioFormat) Valid() bool {
	return f == FormatWAV || f == FormatMP3
}

// Prompt — настройки просодии. Незаданные поля не отправляются, значения по умолчанию решает сервис.
type Prompt struct {
	EmotionPreset    EmotionPreset `json:"emotion_preset,omitempty"`
	EmotionIntensity *float64      `json:"emotion_intensity,omitempty"` // 0..2
	Speed            *float64      `json:"speed,omitempty"`             // 0.5..2
	Intonation       *float64      `json:"intonation,omitempty"`        // -2..2
}

// Output — параметры итогового аудио.
type Output struct {
	Volume      *int        `json:"volume,omitempty"`      // 0..200
	AudioPitch  *int        `json:"audio_pitch,omitempty"` // полутоны, -12..12
	AudioTempo  *float64    `json:"audio_tempo,omitempty"` // 0.5..2
	AudioFormat AudioFormat `json:"audio_format,omitempty"`
}

// SynthesisRequest — тело запроса POST /v1/text-to-speech.
type SynthesisRequest struct {
	Text     string   `json:"text"`
	VoiceID  string   `json:"voice_id"`
	Model    Model    `json:"model"`
	Language Language `json:"language,omitempty"`
	Prompt   *Prompt  `json:"prompt,omitempty"`
	Output   *Output  `json:"output,omitempty"`
	Seed     *int     `json:"seed,omitempty"`
}

// SynthesisResponse — нормализованный результат синтеза.
type SynthesisResponse struct {
	Audio    []byte
	Duration float64 // секунды, 0 если сервис не сообщил длительность
	Format   AudioFormat
}

// Voice — описание голоса из /v1/voices.
type Voice struct {
	VoiceID   string   `json:"voice_id"`
	VoiceName string   `json:"voice_name"`
	Model     Model    `json:"model"`
	Emotions  []string `json:"emotions"`
}

// VoiceModel — модель, доступная голосу, и её эмоции (v2).
type VoiceModel struct {
	Version  Model    `json:"version"`
	Emotions []string `json:"emotions"`
}

// VoiceV2 — расширенное описание голоса из /v2/voices.
type VoiceV2 struct {
	VoiceID   string       `json:"voice_id"`
	VoiceName string       `json:"voice_name"`
	Models    []VoiceModel `json:"models"`
	Gender    Gender       `json:"gender,omitempty"`
	Age       Age          `json:"age,omitempty"`
	UseCases  []string     `json:"use_cases,omitempty"`
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Age string

const (
	AgeChild      Age = "child"
	AgeTeenager   Age = "teenager"
	AgeYoungAdult Age = "young_adult"
	AgeMiddleAge  Age = "middle_age"
	AgeElder      Age = "elder"
)

// VoicesV2Filter — необязательные фильтры /v2/voices. Пустые поля в запрос не попадают.
type VoicesV2Filter struct {
	Model    Model
	Gender   Gender
	Age      Age
	UseCases []string
}
