// Package lyrics parses time-tagged lyrics and looks them up.
package lyrics

import (
	"bufio"
	"cmp"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Line represents a single timestamped lyric line.
type Line struct {
	Time time.Duration `json:"time"`
	Text string        `json:"text"`
}

// Lyrics contains parsed lyrics with optional metadata.
type Lyrics struct {
	Lines  []Line `json:"lines"`
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
}

// IsSynced returns true if the lyrics have timestamps.
func (l *Lyrics) IsSynced() bool {
	if l == nil {
		return false
	}
	return slices.ContainsFunc(l.Lines, func(line Line) bool { return line.Time > 0 })
}

// LineAt returns the index of the line active at pos: the last line whose
// timestamp is at or before pos. Returns -1 before the first line and for
// unsynced lyrics.
func (l *Lyrics) LineAt(pos time.Duration) int {
	if !l.IsSynced() {
		return -1
	}
	// Lines are sorted, so find the first line strictly after pos.
	i, _ := slices.BinarySearchFunc(l.Lines, pos, func(line Line, target time.Duration) int {
		if line.Time <= target {
			return -1
		}
		return 1
	})
	return i - 1
}

var (
	// Matches timestamps like [00:12.34], [00:12:34] or [00:12]
	timestampRe = regexp.MustCompile(`\[(\d+):(\d{1,2})(?:[.:](\d{1,3}))?\]`)

	// Matches metadata tags like [ar:Artist Name]
	metadataRe = regexp.MustCompile(`^\[([a-zA-Z]+):(.*)\]$`)
)

// ParseLRC parses LRC lyrics. Lines are returned sorted by timestamp;
// lines sharing a timestamp keep their file order. An [offset:ms] tag
// shifts every timestamp (positive values make lyrics appear earlier).
func ParseLRC(r io.Reader) (*Lyrics, error) {
	lyrics := &Lyrics{}
	var offset time.Duration

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// A line can carry several timestamps: [00:12.34][00:45.67]Text
		stamps := timestampRe.FindAllStringSubmatchIndex(line, -1)
		if len(stamps) == 0 || stamps[0][0] != 0 {
			if meta := metadataRe.FindStringSubmatch(line); meta != nil {
				applyTag(lyrics, &offset, strings.ToLower(meta[1]), strings.TrimSpace(meta[2]))
			}
			continue
		}

		text := strings.TrimSpace(line[stamps[len(stamps)-1][1]:])
		for _, m := range stamps {
			ts, ok := timestamp(line, m)
			if !ok {
				continue
			}
			lyrics.Lines = append(lyrics.Lines, Line{Time: ts, Text: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if offset != 0 {
		for i := range lyrics.Lines {
			lyrics.Lines[i].Time = max(lyrics.Lines[i].Time-offset, 0)
		}
	}
	slices.SortStableFunc(lyrics.Lines, func(a, b Line) int {
		return cmp.Compare(a.Time, b.Time)
	})

	return lyrics, nil
}

// ParsePlain turns plain text into unsynced lyrics, one line per
// non-empty input line.
func ParsePlain(text string) *Lyrics {
	lyrics := &Lyrics{}
	for line := range strings.SplitSeq(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lyrics.Lines = append(lyrics.Lines, Line{Text: line})
		}
	}
	return lyrics
}

func applyTag(l *Lyrics, offset *time.Duration, tag, value string) {
	switch tag {
	case "ar":
		l.Artist = value
	case "ti":
		l.Title = value
	case "al":
		l.Album = value
	case "offset":
		if ms, err := strconv.Atoi(value); err == nil {
			*offset = time.Duration(ms) * time.Millisecond
		}
	}
}

// timestamp decodes the submatch m of timestampRe found in line.
func timestamp(line string, m []int) (time.Duration, bool) {
	group := func(n int) string {
		if m[2*n] < 0 {
			return ""
		}
		return line[m[2*n]:m[2*n+1]]
	}

	minutes, err := strconv.Atoi(group(1))
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.Atoi(group(2))
	if err != nil || seconds >= 60 {
		return 0, false
	}

	var frac time.Duration
	if f := group(3); f != "" {
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, false
		}
		// .x is tenths, .xx hundredths, .xxx milliseconds
		switch len(f) {
		case 1:
			frac = time.Duration(n) * 100 * time.Millisecond
		case 2:
			frac = time.Duration(n) * 10 * time.Millisecond
		default:
			frac = time.Duration(n) * time.Millisecond
		}
	}

	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second + frac, true
}
