package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// inTempDir переходит во временный каталог, чтобы godotenv не подхватил чужой .env.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestNewConfig_Defaults(t *testing.T) {
	inTempDir(t)
	for _, k := range []string{"DEBUG_MODE", "TYPECAST_API_HOST", "TYPECAST_API_KEY", "TYPECAST_MODEL", "TYPECAST_VOLUME"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestNewConfig_Environment(t *testing.T) {
	inTempDir(t)
	t.Setenv("DEBUG_MODE", "true")
	t.Setenv("TYPECAST_API_HOST", "https://api.example.com")
	t.Setenv("TYPECAST_API_KEY", "secret")
	t.Setenv("TYPECAST_VOICE_ID", "tc_1")
	t.Setenv("TYPECAST_MODEL", "ssfm-v30")
	t.Setenv("TYPECAST_SPEED", "1.3")
	t.Setenv("TYPECAST_VOLUME", "150")
	t.Setenv("TYPECAST_PLAY", "true")

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.True(t, cfg.DebugMode)
	require.Equal(t, TypecastConfig{APIHost: "https://api.example.com", APIKey: "secret"}, cfg.Typecast)
	require.Equal(t, "tc_1", cfg.Speech.VoiceID)
	require.Equal(t, "ssfm-v30", cfg.Speech.Model)
	require.Equal(t, 1.3, cfg.Speech.Speed)
	require.Equal(t, 150, cfg.Speech.Volume)
	require.True(t, cfg.Speech.Play)
	// не заданное в окружении остаётся дефолтом
	require.Equal(t, "wav", cfg.Speech.Format)
}

func TestNewConfig_DotEnv(t *testing.T) {
	dir := inTempDir(t)
	t.Setenv("TYPECAST_API_KEY", "")
	require.NoError(t, os.Unsetenv("TYPECAST_API_KEY"))
	t.Setenv("TYPECAST_AUDIO_FORMAT", "")
	require.NoError(t, os.Unsetenv("TYPECAST_AUDIO_FORMAT"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TYPECAST_API_KEY=from-dotenv\nTYPECAST_AUDIO_FORMAT=mp3\n"), 0o600))
	// godotenv выставляет переменные процесса, убираем их после теста
	t.Cleanup(func() {
		_ = os.Unsetenv("TYPECAST_API_KEY")
		_ = os.Unsetenv("TYPECAST_AUDIO_FORMAT")
	})

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.Typecast.APIKey)
	require.Equal(t, "mp3", cfg.Speech.Format)
}

func TestNewConfig_InvalidValue(t *testing.T) {
	inTempDir(t)
	t.Setenv("TYPECAST_VOLUME", "loud")

	_, err := NewConfig()
	require.ErrorContains(t, err, "config: parse environment")
}
