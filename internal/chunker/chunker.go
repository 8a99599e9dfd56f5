// Package chunker splits transcripts into pieces small enough for a single
// model call.
package chunker

import (
	"iter"
	"math"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
	"github.com/nguyentantai21042004/genai-workshop/internal/validator"
)

// tokensPerWord approximates tokenizer output from a word count.
const tokensPerWord = 1.3

// WordsPerChunk is the number of words that fit in maxTokens, at least 1.
func WordsPerChunk(maxTokens int) int {
	return max(1, int(float64(maxTokens)/tokensPerWord))
}

// ByTokens yields word-boundary chunks of text of at most
// WordsPerChunk(maxTokens) words. The sequence can be ranged over repeatedly.
func ByTokens(text string, maxTokens int) iter.Seq[string] {
	words := strings.Fields(text)
	size := WordsPerChunk(maxTokens)

	return func(yield func(string) bool) {
		for i := 0; i < len(words); i += size {
			end := min(i+size, len(words))
			if !yield(strings.Join(words[i:end], " ")) {
				return
			}
		}
	}
}

// ByDuration packs consecutive segments into groups whose summed duration
// stays within maxSeconds. A segment longer than maxSeconds forms its own
// group; it is never split.
func ByDuration(segments []transcribe.Segment, maxSeconds float64) iter.Seq[[]transcribe.Segment] {
	return func(yield func([]transcribe.Segment) bool) {
		var group []transcribe.Segment
		var total float64

		for _, seg := range segments {
			d := seg.Duration()
			if total+d > maxSeconds && len(group) > 0 {
				if !yield(group) {
					return
				}
				group, total = nil, 0
			}
			group = append(group, seg)
			total += d
		}

		if len(group) > 0 {
			yield(group)
		}
	}
}

// Window is a time range of an audio file in seconds. End is +Inf when the
// length is unknown.
type Window struct {
	Path  string
	Start float64
	End   float64
}

// AudioWindows splits a WAV file into consecutive windows of windowSeconds.
// Formats whose length cannot be read locally yield one open-ended window.
func AudioWindows(path string, windowSeconds int) ([]Window, error) {
	if !strings.EqualFold(filepath.Ext(path), ".wav") || windowSeconds <= 0 {
		return []Window{{Path: path, Start: 0, End: math.Inf(1)}}, nil
	}

	d, err := validator.AudioDuration(path)
	if err != nil {
		return nil, err
	}
	total := d.Seconds()
	step := float64(windowSeconds)

	var windows []Window
	for start := 0.0; start < total; start += step {
		windows = append(windows, Window{Path: path, Start: start, End: math.Min(start+step, total)})
	}
	return windows, nil
}
