//go:build !windows

package stderr

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCaptureLogsLines(t *testing.T) {
	var out syncBuffer
	prev := zlog.Logger
	zlog.Logger = zerolog.New(&out)
	t.Cleanup(func() { zlog.Logger = prev })

	c, err := Start()
	require.NoError(t, err)

	fmt.Fprintln(os.Stderr, "ALSA lib pcm.c:8545: underrun occurred")
	fmt.Fprintln(os.Stderr, "   ")
	c.Stop()

	logged := out.String()
	assert.Contains(t, logged, "underrun occurred")
	assert.Contains(t, logged, `"source":"stderr"`)
	assert.Equal(t, 1, bytes.Count([]byte(logged), []byte("\n")), "blank lines are skipped")
}

func TestStopRestoresStderr(t *testing.T) {
	before, err := os.Stderr.Stat()
	require.NoError(t, err)

	c, err := Start()
	require.NoError(t, err)
	c.Stop()

	after, err := os.Stderr.Stat()
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after))
}
