package player

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Player воспроизводит аудио в зависимости от формата.
type Player interface {
	Play(format string, audio []byte) error
}

type decodeFunc func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	"wav": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(rc) },
	"mp3": mp3.Decode,
}

// Supported сообщает, умеет ли плеер воспроизводить формат.
func Supported(format string) bool {
	_, ok := decoders[strings.ToLower(format)]
	return ok
}

// Default воспроизводит wav и mp3 через системный аудиовывод.
type Default struct {
	volumeDB float64

	mu         sync.Mutex
	sampleRate beep.SampleRate // частота, с которой инициализирован speaker; 0 — ещё не инициализирован
}

// New создаёт плеер с громкостью в dB (0 — без изменений, отрицательные — тише).
func New(volumeDB float64) *Default { return &Default{volumeDB: volumeDB} }

// Play блокируется до конца воспроизведения.
func (d *Default) Play(format string, audio []byte) error {
	decode, ok := decoders[strings.ToLower(format)]
	if !ok {
		return fmt.Errorf("player: unsupported format %q for direct playback; use mp3 or wav", format)
	}
	streamer, f, err := decode(io.NopCloser(bytes.NewReader(audio)))
	if err != nil {
		return fmt.Errorf("player: decode %s: %w", format, err)
	}
	defer streamer.Close()

	sr, err := d.initSpeaker(f.SampleRate)
	if err != nil {
		return err
	}

	var s beep.Streamer = streamer
	if sr != f.SampleRate {
		s = beep.Resample(4, f.SampleRate, sr, streamer)
	}
	vol := &effects.Volume{Streamer: s, Base: 2, Volume: d.volumeDB}

	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	<-done
	return nil
}

// initSpeaker инициализирует speaker один раз; повторная инициализация в beep пересоздаёт устройство.
func (d *Default) initSpeaker(sr beep.SampleRate) (beep.SampleRate, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sampleRate != 0 {
		return d.sampleRate, nil
	}
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return 0, fmt.Errorf("player: init speaker: %w", err)
	}
	d.sampleRate = sr
	return sr, nil
}
