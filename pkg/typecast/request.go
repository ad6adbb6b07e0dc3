package typecast

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// MaxTextLength — максимальная длина текста одного запроса в символах.
const MaxTextLength = 5000

// Префиксы идентификаторов голосов по происхождению.
const (
	OriginTypecast = "tc_" // голоса библиотеки Typecast
	OriginCustom   = "uc_" // пользовательские голоса
)

// VoiceOrigin возвращает префикс происхождения голоса или пустую строку, если префикс неизвестен.
func VoiceOrigin(voiceID string) string {
	for _, p := range []string{OriginTypecast, OriginCustom} {
		if strings.HasPrefix(voiceID, p) {
			return p
		}
	}
	return ""
}

// RequestOption задаёт необязательный параметр запроса синтеза.
type RequestOption func(*SynthesisRequest)

func WithLanguage(l Language) RequestOption {
	return func(r *SynthesisRequest) { r.Language = l }
}

// WithEmotion задаёт пресет и его интенсивность.
func WithEmotion(preset EmotionPreset, intensity float64) RequestOption {
	return func(r *SynthesisRequest) {
		p := r.prompt()
		p.EmotionPreset = preset
		p.EmotionIntensity = &intensity
	}
}

func WithSpeed(speed float64) RequestOption {
	return func(r *SynthesisRequest) { r.prompt().Speed = &speed }
}

func WithIntonation(v float64) RequestOption {
	return func(r *SynthesisRequest) { r.prompt().Intonation = &v }
}

func WithVolume(v int) RequestOption {
	return func(r *SynthesisRequest) { r.output().Volume = &v }
}

// WithPitch сдвигает высоту тона на заданное число полутонов.
func WithPitch(semitones int) RequestOption {
	return func(r *SynthesisRequest) { r.output().AudioPitch = &semitones }
}

func WithTempo(v float64) RequestOption {
	return func(r *SynthesisRequest) { r.output().AudioTempo = &v }
}

func WithFormat(f AudioFormat) RequestOption {
	return func(r *SynthesisRequest) { r.output().AudioFormat = f }
}

// WithSeed фиксирует seed для воспроизводимого результата.
func WithSeed(seed int) RequestOption {
	return func(r *SynthesisRequest) { r.Seed = &seed }
}

func (r *SynthesisRequest) prompt() *Prompt {
	if r.Prompt == nil {
		r.Prompt = &Prompt{}
	}
	return r.Prompt
}

func (r *SynthesisRequest) output() *Output {
	if r.Output == nil {
		r.Output = &Output{}
	}
	return r.Output
}

// NewSynthesisRequest собирает и проверяет запрос синтеза.
func NewSynthesisRequest(text, voiceID string, model Model, opts ...RequestOption) (SynthesisRequest, error) {
	r := SynthesisRequest{Text: text, VoiceID: strings.TrimSpace(voiceID), Model: model}
	for _, opt := range opts {
		opt(&r)
	}
	if err := r.Validate(); err != nil {
		return SynthesisRequest{}, err
	}
	return r, nil
}

// Validate проверяет обязательные поля и диапазоны. Все нарушения возвращаются одной ошибкой.
func (r SynthesisRequest) Validate() error {
	var errs []error
	switch n := utf8.RuneCountInString(r.Text); {
	case strings.TrimSpace(r.Text) == "":
		errs = append(errs, errors.New("text is required"))
	case n > MaxTextLength:
		errs = append(errs, fmt.Errorf("text is %d characters, max %d", n, MaxTextLength))
	}
	if r.VoiceID == "" {
		errs = append(errs, errors.New("voice_id is required"))
	}
	if !r.Model.Valid() {
		errs = append(errs, fmt.Errorf("unknown model %q", r.Model))
	}
	if r.Language != "" && !r.Language.Valid() {
		errs = append(errs, fmt.Errorf("unsupported language %q", r.Language))
	}
	if p := r.Prompt; p != nil {
		if p.EmotionPreset != "" && !p.EmotionPreset.Valid() {
			errs = append(errs, fmt.Errorf("unknown emotion preset %q", p.EmotionPreset))
		}
		errs = appendRange(errs, "emotion_intensity", p.EmotionIntensity, 0, 2)
		errs = appendRange(errs, "speed", p.Speed, 0.5, 2)
		errs = appendRange(errs, "intonation", p.Intonation, -2, 2)
	}
	if o := r.Output; o != nil {
		if o.Volume != nil && (*o.Volume < 0 || *o.Volume > 200) {
			errs = append(errs, fmt.Errorf("volume %d out of range [0, 200]", *o.Volume))
		}
		if o.AudioPitch != nil && (*o.AudioPitch < -12 || *o.AudioPitch > 12) {
			errs = append(errs, fmt.Errorf("audio_pitch %d out of range [-12, 12]", *o.AudioPitch))
		}
		errs = appendRange(errs, "audio_tempo", o.AudioTempo, 0.5, 2)
		if o.AudioFormat != "" && !o.AudioFormat.Valid() {
			errs = append(errs, fmt.Errorf("unsupported audio_format %q", o.AudioFormat))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("typecast: invalid synthesis request: %w", errors.Join(errs...))
}

func appendRange(errs []error, name string, v *float64, lo, hi float64) []error {
	if v == nil {
		return errs
	}
	if math.IsNaN(*v) || *v < lo || *v > hi {
		return append(errs, fmt.Errorf("%s %g out of range [%g, %g]", name, *v, lo, hi))
	}
	return errs
}
