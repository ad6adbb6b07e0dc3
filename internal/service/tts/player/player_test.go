package player

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSupported(t *testing.T) {
	require.True(t, Supported("wav"))
	require.True(t, Supported("MP3"))
	require.False(t, Supported("oggopus"))
}

func TestDefault_Play_Errors(t *testing.T) {
	p := New(-3)

	err := p.Play("oggopus", []byte("data"))
	require.ErrorContains(t, err, `unsupported format "oggopus"`)

	// до инициализации speaker дело не доходит: битый wav отсекается декодером
	err = p.Play("wav", []byte("definitely not a wav file"))
	require.ErrorContains(t, err, "player: decode wav")
	require.Zero(t, p.sampleRate)
}
