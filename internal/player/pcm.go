package player

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"sync/atomic"

	"github.com/gopxl/beep/v2"
)

const (
	channels  = 2
	frameSize = channels * 2 // s16le

	chunkFrames = 2048
	chunkQueue  = 64 // about three seconds at 44.1 kHz
)

// pcmStream is a beep.Streamer over interleaved signed 16-bit little-endian
// stereo PCM. Decoding happens on its own goroutine so Stream never blocks
// the speaker: while the decoder is behind, silence is played.
type pcmStream struct {
	chunks <-chan [][2]float64
	cur    [][2]float64
	ended  bool

	// played counts decoded frames handed to the speaker, excluding padding.
	played atomic.Int64
}

// newPCMStream starts reading r until EOF or ctx ends, then calls onEnd.
func newPCMStream(ctx context.Context, r io.Reader, onEnd func()) *pcmStream {
	ch := make(chan [][2]float64, chunkQueue)
	s := &pcmStream{chunks: ch}
	go func() {
		defer func() {
			close(ch)
			if onEnd != nil {
				onEnd()
			}
		}()
		br := bufio.NewReaderSize(r, chunkFrames*frameSize)
		buf := make([]byte, chunkFrames*frameSize)
		for {
			n, err := io.ReadFull(br, buf)
			if frames := n / frameSize; frames > 0 {
				select {
				case ch <- decodeFrames(buf[:frames*frameSize]):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return s
}

func decodeFrames(b []byte) [][2]float64 {
	out := make([][2]float64, len(b)/frameSize)
	for i := range out {
		l := int16(binary.LittleEndian.Uint16(b[i*frameSize:]))
		r := int16(binary.LittleEndian.Uint16(b[i*frameSize+2:]))
		out[i][0] = float64(l) / 32768
		out[i][1] = float64(r) / 32768
	}
	return out
}

// Stream implements beep.Streamer.
func (s *pcmStream) Stream(samples [][2]float64) (int, bool) {
	if s.ended {
		return 0, false
	}
	n := 0
	for n < len(samples) {
		if len(s.cur) == 0 {
			select {
			case chunk, ok := <-s.chunks:
				if !ok {
					s.ended = true
					return n, n > 0
				}
				s.cur = chunk
			default:
				// Decoder is behind: pad with silence.
				clear(samples[n:])
				return len(samples), true
			}
		}
		c := copy(samples[n:], s.cur)
		s.cur = s.cur[c:]
		s.played.Add(int64(c))
		n += c
	}
	return n, true
}

// Err implements beep.Streamer. Decoder failures surface as end of stream.
func (s *pcmStream) Err() error {
	return nil
}

var _ beep.Streamer = (*pcmStream)(nil)
