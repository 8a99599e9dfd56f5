package output

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	fontColor = "000000"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockBullet
)

type block struct {
	kind  blockKind
	level int
	text  string
}

type run struct {
	text string
	bold bool
}

// parseMarkdown splits markdown into the line blocks the renderer knows.
// Blank lines and horizontal rules are dropped.
func parseMarkdown(markdown string) []block {
	var blocks []block
	for line := range strings.SplitSeq(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, block{kind: blockHeading, level: len(m[1]), text: m[2]})
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, block{kind: blockBullet, text: "• " + m[1]})
			continue
		}
		blocks = append(blocks, block{kind: blockParagraph, text: trimmed})
	}
	return blocks
}

// splitBold breaks text into runs on **bold** markers.
func splitBold(text string) []run {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	var runs []run
	for i, part := range parts {
		if part != "" {
			runs = append(runs, run{text: cleanMarkdownInline(part)})
		}
		if i < len(matches) {
			runs = append(runs, run{text: cleanMarkdownInline(matches[i][1]), bold: true})
		}
	}
	return runs
}

// markdownToDocx converts markdown text to a styled docx file.
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	if title != "" {
		addStyledRun(doc.AddParagraph(""), title, true, 16)
	}

	for _, b := range parseMarkdown(markdown) {
		p := doc.AddParagraph("")
		if b.kind == blockHeading {
			addStyledRun(p, b.text, true, headingSize(b.level))
			continue
		}
		addRichText(p, b.text)
	}

	return doc.SaveTo(outputPath)
}

// transcriptToDocx writes segment text as paragraphs. Repeated lines, a
// common speech-to-text artifact, are kept once.
func transcriptToDocx(title string, segments []transcribe.Segment, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	for _, t := range transcriptLines(segments) {
		p := doc.AddParagraph("")
		p.AddText(t).Font(fontName).Size(fontSize).Color(fontColor)
	}

	return doc.SaveTo(outputPath)
}

func transcriptLines(segments []transcribe.Segment) []string {
	seen := make(map[string]bool)
	var lines []string
	for _, seg := range segments {
		t := strings.TrimSpace(seg.Text)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		lines = append(lines, t)
	}
	return lines
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	r := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color(fontColor)
	if bold {
		r.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	for _, r := range splitBold(text) {
		styled := p.AddText(r.text).Font(fontName).Size(fontSize).Color(fontColor)
		if r.bold {
			styled.Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
