// Package srt reads SubRip and WebVTT subtitle files into timed cues
package srt

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"scribe/internal/core/normalize"
	perr "scribe/internal/platform/errors"
)

// Cue is one subtitle block
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

const arrow = "-->"

// Parse reads every cue from r
// SRT index lines, the WEBVTT header, NOTE/STYLE/REGION blocks and cue settings are ignored;
// multi-line cue text is joined with a single space and cues with no text are dropped
func Parse(r io.Reader) ([]Cue, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	var (
		out    []Cue
		cur    *Cue
		lines  []string
		lineNo int
		skip   bool // inside a VTT metadata block
	)
	flush := func() {
		if cur != nil {
			if text := normalize.Line(strings.Join(lines, " ")); text != "" {
				cur.Text = text
				out = append(out, *cur)
			}
		}
		cur, lines, skip = nil, nil, false
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			continue
		}
		if skip {
			continue
		}
		if cur == nil {
			if lineNo == 1 && strings.HasPrefix(trimmed, "WEBVTT") {
				skip = true
				continue
			}
			if isVTTBlock(trimmed) {
				skip = true
				continue
			}
			if !strings.Contains(trimmed, arrow) {
				// SRT counter or VTT cue identifier
				continue
			}
			start, end, err := parseTiming(trimmed)
			if err != nil {
				return nil, perr.WithOp(perr.InvalidArgf("line %d: %v", lineNo, err), "srt.Parse")
			}
			cur = &Cue{Start: start, End: end}
			continue
		}
		lines = append(lines, trimmed)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read subtitles")
	}
	flush()
	return out, nil
}

func isVTTBlock(s string) bool {
	return s == "NOTE" || strings.HasPrefix(s, "NOTE ") || s == "STYLE" || s == "REGION"
}

// parseTiming reads "start --> end [settings]"
func parseTiming(s string) (time.Duration, time.Duration, error) {
	left, right, _ := strings.Cut(s, arrow)
	fields := strings.Fields(right)
	if len(fields) == 0 {
		return 0, 0, perr.InvalidArgf("missing end timestamp")
	}
	start, err := ParseTimestamp(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(fields[0])
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, perr.InvalidArgf("cue ends before it starts")
	}
	return start, end, nil
}

// ParseTimestamp accepts hh:mm:ss,mmm, hh:mm:ss.mmm and the VTT short form mm:ss.mmm
func ParseTimestamp(s string) (time.Duration, error) {
	s = strings.Replace(s, ",", ".", 1)
	clock, frac, _ := strings.Cut(s, ".")
	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, perr.InvalidArgf("bad timestamp %q", s)
	}
	var h, m, sec int
	var err error
	if len(parts) == 3 {
		if h, err = atoi(parts[0], -1); err != nil {
			return 0, perr.InvalidArgf("bad hours in %q", s)
		}
		parts = parts[1:]
	}
	if m, err = atoi(parts[0], 59); err != nil {
		return 0, perr.InvalidArgf("bad minutes in %q", s)
	}
	if sec, err = atoi(parts[1], 59); err != nil {
		return 0, perr.InvalidArgf("bad seconds in %q", s)
	}
	ms := 0
	if frac != "" {
		if len(frac) > 3 {
			frac = frac[:3]
		}
		for len(frac) < 3 {
			frac += "0"
		}
		if ms, err = atoi(frac, 999); err != nil {
			return 0, perr.InvalidArgf("bad milliseconds in %q", s)
		}
	}
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// atoi parses a non-negative integer no larger than limit; limit < 0 means unbounded
func atoi(s string, limit int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || (limit >= 0 && n > limit) {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// Seconds rounds d to the nearest whole second
func Seconds(d time.Duration) int {
	return int(d.Round(time.Second) / time.Second)
}
