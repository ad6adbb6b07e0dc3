package main

import (
	"TypecastClient/internal/config"
	ttstypecast "TypecastClient/internal/service/tts/typecast"
	"TypecastClient/internal/service/tts/player"
	tc "TypecastClient/pkg/typecast"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

// version перезаписывается при сборке через -ldflags "-X main.version=...".
var version = "dev"

type (
	cmd struct {
		Debug   bool      `help:"Enable debug logging (overrides DEBUG_MODE)."`
		Version struct{}  `cmd:"" help:"Show version."`
		Speak   cmdSpeak  `cmd:"" help:"Synthesize text and save the audio file."`
		Voices  cmdVoices `cmd:"" help:"List available voices."`
		Voice   cmdVoice  `cmd:"" help:"Show all entries of a single voice."`
	}
	cmdSpeak struct {
		Text      string  `arg:"" help:"Text to synthesize."`
		Voice     string  `help:"Voice id (tc_... or uc_...)." default:"${voice}"`
		Model     string  `help:"Model: ssfm-v21|ssfm-v30." default:"${model}"`
		Language  string  `help:"ISO 639-3 language code, empty lets the service decide." default:"${language}"`
		Emotion   string  `help:"Emotion preset: normal|happy|sad|angry|tonemid|toneup." default:"${emotion}"`
		Intensity float64 `help:"Emotion intensity, 0..2." default:"${intensity}"`
		Speed     float64 `help:"Speech speed, 0.5..2." default:"${speed}"`
		Volume    int     `help:"Output volume, 0..200." default:"${volume}"`
		Pitch     int     `help:"Pitch shift in semitones, -12..12." default:"${pitch}"`
		Tempo     float64 `help:"Output tempo, 0.5..2." default:"${tempo}"`
		Format    string  `help:"Audio format: wav|mp3." default:"${format}"`
		OutDir    string  `help:"Directory for generated files." default:"${outdir}" type:"path"`
		Out       string  `help:"Explicit output file; overrides --out-dir." type:"path"`
		Play      bool    `help:"Play the result after saving." default:"${play}" negatable:""`
	}
	cmdVoices struct {
		Model   string   `help:"Filter by model; unknown models are rejected by the service."`
		V2      bool     `name:"v2" help:"Use /v2/voices with extended metadata."`
		Gender  string   `help:"v2 only: male|female."`
		Age     string   `help:"v2 only: child|teenager|young_adult|middle_age|elder."`
		UseCase []string `name:"use-case" help:"v2 only: use case filter, repeatable."`
	}
	cmdVoice struct {
		ID    string `arg:"" name:"voice-id" help:"Voice id."`
		Model string `help:"Filter by model."`
	}
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := doMain(ctx, os.Stdout, os.Stderr, os.Args[1:], cfg); err != nil {
		stop()
		os.Exit(1)
	}
}

func vars(cfg *config.Config) kong.Vars {
	s := cfg.Speech
	ff := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return kong.Vars{
		"voice":     s.VoiceID,
		"model":     s.Model,
		"language":  s.Language,
		"emotion":   s.Emotion,
		"intensity": ff(s.EmotionIntensity),
		"speed":     ff(s.Speed),
		"volume":    strconv.Itoa(s.Volume),
		"pitch":     strconv.Itoa(s.Pitch),
		"tempo":     ff(s.Tempo),
		"format":    s.Format,
		"outdir":    s.OutputDir,
		"play":      strconv.FormatBool(s.Play),
	}
}

func doMain(ctx context.Context, stdout, stderr io.Writer, args []string, cfg *config.Config) error {
	var c cmd
	parser, err := kong.New(&c,
		kong.Name("typecast"),
		kong.Description("Typecast text-to-speech CLI"),
		kong.Writers(stdout, stderr),
		vars(cfg),
	)
	if err != nil {
		return fmt.Errorf("create parser: %w", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "typecast: %v\n", err)
		return err
	}

	logger, err := newLogger(cfg.DebugMode || c.Debug)
	if err != nil {
		return err
	}
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() { _ = logger.Sync() }()

	opts := []tc.Option{}
	if cfg.DebugMode || c.Debug {
		opts = append(opts, tc.WithLogger(sugar))
	}
	api := tc.New(tc.Config{BaseHost: cfg.Typecast.APIHost, APIKey: cfg.Typecast.APIKey}, opts...)

	switch kctx.Command() {
	case "version":
		_, err = fmt.Fprintf(stdout, "Typecast CLI: %s\n", version)
	case "speak <text>":
		err = speak(ctx, stdout, api, sugar, c.Speak, cfg.Speech)
	case "voices":
		err = voices(ctx, stdout, api, c.Voices)
	case "voice <voice-id>":
		err = printJSON[[]tc.Voice](stdout)(api.GetVoice(ctx, c.Voice.ID, tc.Model(c.Voice.Model)))
	default:
		panic("unreachable")
	}
	if err != nil {
		logError(sugar, kctx.Command(), err)
	}
	return err
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func logError(sugar *zap.SugaredLogger, command string, err error) {
	if apiErr, ok := tc.AsAPIError(err); ok {
		sugar.Errorw("Typecast API rejected the request",
			"command", command,
			"status", apiErr.StatusCode,
			"statusText", apiErr.Status,
			"message", apiErr.Message(),
		)
		return
	}
	sugar.Errorw("Command failed", "command", command, "error", err)
}

func speak(ctx context.Context, stdout io.Writer, api *tc.Client, sugar *zap.SugaredLogger, s cmdSpeak, sc config.SpeechConfig) error {
	sc.VoiceID = s.Voice
	sc.Model = s.Model
	sc.Language = s.Language
	sc.Emotion = s.Emotion
	sc.EmotionIntensity = s.Intensity
	sc.Speed = s.Speed
	sc.Volume = s.Volume
	sc.Pitch = s.Pitch
	sc.Tempo = s.Tempo
	sc.Format = s.Format
	sc.OutputDir = s.OutDir
	sc.OutputFile = s.Out
	sc.Play = s.Play

	var p player.Player
	if sc.Play {
		p = player.New(sc.PlayerVolumeDB)
	}
	res, err := ttstypecast.New(api, p, sugar).Synthesize(ctx, s.Text, sc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\t%s\t%.2fs\t%d bytes\n", res.Path, res.Format, res.Duration, res.Size)
	return err
}

func voices(ctx context.Context, stdout io.Writer, api *tc.Client, v cmdVoices) error {
	if v.V2 {
		return printJSON[[]tc.VoiceV2](stdout)(api.ListVoicesV2(ctx, tc.VoicesV2Filter{
			Model:    tc.Model(v.Model),
			Gender:   tc.Gender(v.Gender),
			Age:      tc.Age(v.Age),
			UseCases: v.UseCase,
		}))
	}
	return printJSON[[]tc.Voice](stdout)(api.ListVoices(ctx, tc.Model(v.Model)))
}

// printJSON печатает результат вызова API в человекочитаемом виде.
func printJSON[T any](w io.Writer) func(T, error) error {
	return func(v T, err error) error {
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
}
