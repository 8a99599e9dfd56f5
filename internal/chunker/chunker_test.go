package chunker

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
)

func TestWordsPerChunk(t *testing.T) {
	tests := []struct {
		maxTokens int
		want      int
	}{
		{2000, 1538},
		{100, 76},
		{3, 2},
		{1, 1},
		{0, 1},
		{-5, 1},
	}

	for _, tt := range tests {
		if got := WordsPerChunk(tt.maxTokens); got != tt.want {
			t.Errorf("WordsPerChunk(%d) = %d, want %d", tt.maxTokens, got, tt.want)
		}
	}
}

func TestByTokensRoundTrip(t *testing.T) {
	text := "  the quick\tbrown fox\n jumps over the   lazy dog again and again "
	normalized := strings.Join(strings.Fields(text), " ")
	wordCount := len(strings.Fields(text))

	for _, maxTokens := range []int{1, 3, 5, 13, 100} {
		chunks := slices.Collect(ByTokens(text, maxTokens))

		if got := strings.Join(chunks, " "); got != normalized {
			t.Errorf("maxTokens=%d: joined = %q, want %q", maxTokens, got, normalized)
		}

		per := WordsPerChunk(maxTokens)
		want := int(math.Ceil(float64(wordCount) / float64(per)))
		if len(chunks) != want {
			t.Errorf("maxTokens=%d: %d chunks, want %d", maxTokens, len(chunks), want)
		}
		for _, c := range chunks {
			if n := len(strings.Fields(c)); n > per {
				t.Errorf("chunk %q has %d words, limit %d", c, n, per)
			}
		}
	}
}

func TestByTokensRestartableAndEmpty(t *testing.T) {
	seq := ByTokens("a b c d e", 3)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}

	if got := slices.Collect(ByTokens("   ", 10)); len(got) != 0 {
		t.Errorf("empty text yielded %v", got)
	}
}

func seg(start, end float64) transcribe.Segment {
	return transcribe.Segment{Start: start, End: end, Text: "s"}
}

func TestByDuration(t *testing.T) {
	segments := []transcribe.Segment{
		seg(0, 10), seg(10, 20), seg(20, 25), // 25s
		seg(25, 100), // oversized, alone
		seg(100, 110), seg(110, 115),
	}

	groups := slices.Collect(ByDuration(segments, 30))

	want := [][]transcribe.Segment{
		{seg(0, 10), seg(10, 20), seg(20, 25)},
		{seg(25, 100)},
		{seg(100, 110), seg(110, 115)},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Fatalf("ByDuration() mismatch (-want +got):\n%s", diff)
	}

	var flat []transcribe.Segment
	for _, g := range groups {
		var total float64
		for _, s := range g {
			total += s.Duration()
		}
		if total > 30 && len(g) != 1 {
			t.Errorf("group %v exceeds the limit with %d segments", g, len(g))
		}
		flat = append(flat, g...)
	}
	if diff := cmp.Diff(segments, flat); diff != "" {
		t.Errorf("segments lost or reordered (-want +got):\n%s", diff)
	}
}

func TestByDurationEdgeCases(t *testing.T) {
	if got := slices.Collect(ByDuration(nil, 30)); len(got) != 0 {
		t.Errorf("no segments yielded %v", got)
	}

	groups := slices.Collect(ByDuration([]transcribe.Segment{seg(0, 100), seg(100, 200)}, 30))
	if len(groups) != 2 {
		t.Errorf("two oversized segments should form two groups, got %d", len(groups))
	}

	for range ByDuration([]transcribe.Segment{seg(0, 40), seg(40, 80)}, 30) {
		break
	}
}

func TestAudioWindows(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "clip.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	if err := enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           make([]int, 8000*5),
		SourceBitDepth: 16,
	}); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	windows, err := AudioWindows(path, 2)
	if err != nil {
		t.Fatalf("AudioWindows() error = %v", err)
	}
	want := []Window{
		{path, 0, 2},
		{path, 2, 4},
		{path, 4, 5},
	}
	if diff := cmp.Diff(want, windows); diff != "" {
		t.Errorf("AudioWindows() mismatch (-want +got):\n%s", diff)
	}

	mp3 := filepath.Join(dir, "talk.mp3")
	windows, err = AudioWindows(mp3, 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 1 || windows[0].Start != 0 || !math.IsInf(windows[0].End, 1) {
		t.Errorf("non-WAV input should give one open window, got %+v", windows)
	}
}
