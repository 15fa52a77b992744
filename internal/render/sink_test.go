package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSink_UnloadEndsStream(t *testing.T) {
	s := NewLogSink()
	done, err := s.Load(context.Background(), "stream://a")
	require.NoError(t, err)

	select {
	case <-done:
		t.Fatal("stream ended before unload")
	default:
	}

	s.Unload()
	<-done
	assert.NoError(t, s.Close())
}

func TestLogSink_LoadReplacesPrevious(t *testing.T) {
	s := NewLogSink()
	first, err := s.Load(context.Background(), "stream://a")
	require.NoError(t, err)
	second, err := s.Load(context.Background(), "stream://b")
	require.NoError(t, err)

	<-first
	select {
	case <-second:
		t.Fatal("second stream ended")
	default:
	}
	require.NoError(t, s.Close())
	<-second
}
