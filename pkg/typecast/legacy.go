package typecast

import (
	"fmt"
	"strings"
)

// LegacyRequest — плоская форма запроса из ранних версий API, где просодия и параметры
// вывода лежали на верхнем уровне, а голос назывался character_id.
type LegacyRequest struct {
	Text            string   `json:"text"`
	CharacterID     string   `json:"character_id,omitempty"`
	VoiceID         string   `json:"voice_id,omitempty"`
	Model           string   `json:"model"`
	Language        string   `json:"language,omitempty"`
	Emotion         string   `json:"emotion,omitempty"`
	EmotionStrength *float64 `json:"emotion_strength,omitempty"`
	EmotionScale    *float64 `json:"emotion_scale,omitempty"`
	Speed           *float64 `json:"speed,omitempty"`
	Tempo           *float64 `json:"tempo,omitempty"`
	Pitch           *float64 `json:"pitch,omitempty"`
	Volume          *int     `json:"volume,omitempty"`
	AudioFormat     string   `json:"audio_format,omitempty"`
	Seed            *int     `json:"seed,omitempty"`
}

// legacyModels — старые написания идентификаторов моделей.
var legacyModels = map[string]Model{
	"ssfm-v2.1": ModelSSFMV21,
	"ssfm-v3.0": ModelSSFMV30,
}

// FromLegacy переводит запрос старой формы в текущую и проверяет его.
func FromLegacy(l LegacyRequest) (SynthesisRequest, error) {
	voice := strings.TrimSpace(l.VoiceID)
	if voice == "" {
		voice = strings.TrimSpace(l.CharacterID)
	}

	raw := strings.ToLower(strings.TrimSpace(l.Model))
	model, ok := legacyModels[raw]
	if !ok {
		model = Model(raw)
	}

	var opts []RequestOption
	if s := strings.ToLower(strings.TrimSpace(l.Language)); s != "" {
		lang, ok := iso6391[s]
		if !ok {
			lang = Language(s)
		}
		opts = append(opts, WithLanguage(lang))
	}

	// emotion_scale пришёл на смену emotion_strength, при наличии обоих берём новый.
	intensity := l.EmotionScale
	if intensity == nil {
		intensity = l.EmotionStrength
	}
	if e := strings.ToLower(strings.TrimSpace(l.Emotion)); e != "" || intensity != nil {
		opts = append(opts, func(r *SynthesisRequest) {
			p := r.prompt()
			p.EmotionPreset = EmotionPreset(e)
			p.EmotionIntensity = intensity
		})
	}
	if l.Speed != nil {
		opts = append(opts, WithSpeed(*l.Speed))
	}
	if l.Tempo != nil {
		opts = append(opts, WithTempo(*l.Tempo))
	}
	if l.Pitch != nil {
		// В старой форме pitch допускал дробные значения, сервис принимает целые полутоны.
		semitones := int(*l.Pitch)
		if float64(semitones) != *l.Pitch {
			return SynthesisRequest{}, fmt.Errorf("typecast: legacy pitch %g is not a whole number of semitones", *l.Pitch)
		}
		opts = append(opts, WithPitch(semitones))
	}
	if l.Volume != nil {
		opts = append(opts, WithVolume(*l.Volume))
	}
	if f := strings.ToLower(strings.TrimSpace(l.AudioFormat)); f != "" {
		opts = append(opts, WithFormat(AudioFormat(f)))
	}
	if l.Seed != nil {
		opts = append(opts, WithSeed(*l.Seed))
	}

	return NewSynthesisRequest(l.Text, voice, model, opts...)
}
