// Package prompts holds the fixed catalog of (system, user) prompt pairs.
//
// Placeholders use text/template field syntax, e.g. {{.transcript}}.
package prompts

import (
	"bytes"
	"slices"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
)

type Kind string

const (
	Summary            Kind = "summary"
	DetailedSummary    Kind = "detailed_summary"
	ActionItems        Kind = "action_items"
	OCRCleanup         Kind = "ocr_cleanup"
	ReceiptExtraction  Kind = "receipt_extraction"
	ImageDescription   Kind = "image_description"
	DiagramExplanation Kind = "diagram_explanation"
	ScreenQA           Kind = "screen_qa"
	MeetingMinutes     Kind = "meeting_minutes"
)

// TechnicalDetailRequest is appended to a diagram explanation prompt to ask
// for a deeper pass.
const TechnicalDetailRequest = "\n\nProvide a more technical explanation with specific details about the components, relationships, and logic."

// Template is a parsed (system, user) prompt pair.
type Template struct {
	Kind   Kind
	System string
	User   string

	system *template.Template
	user   *template.Template
}

var registry = map[Kind]Template{
	Summary: mustTemplate(Summary,
		"You are a helpful assistant that creates concise, accurate summaries.",
		"Summarize the following transcript in 3-5 bullet points:\n\n{{.transcript}}"),
	DetailedSummary: mustTemplate(DetailedSummary,
		"You are a helpful assistant that creates detailed, comprehensive summaries.",
		"Create a detailed summary of the following transcript. Include key topics, main points, and important details:\n\n{{.transcript}}"),
	ActionItems: mustTemplate(ActionItems,
		"You are a helpful assistant that extracts action items from transcripts.",
		"Extract all action items from the following transcript. Format each as a bullet point with the responsible person (if mentioned) and deadline (if mentioned):\n\n{{.transcript}}"),
	OCRCleanup: mustTemplate(OCRCleanup,
		"You are a helpful assistant that cleans and structures OCR text.",
		"Clean and structure the following OCR text. Fix any obvious errors, remove artifacts, and format it properly:\n\n{{.ocr_text}}"),
	ReceiptExtraction: mustTemplate(ReceiptExtraction,
		"You are a helpful assistant that extracts structured data from receipts. You answer with JSON only.",
		`Extract the following information from this receipt text and return it as a JSON object with exactly these keys:
{
    "vendor": "vendor name",
    "date": "purchase date",
    "total": "total amount",
    "items": [
        {"name": "item name", "price": "item price"}
    ],
    "tax": "tax amount",
    "currency": "currency code"
}
If any information is missing, use null for that key.

Receipt text:
{{.receipt_text}}`),
	ImageDescription: mustTemplate(ImageDescription,
		"You are a helpful assistant that describes images in detail.",
		"Based on this image description: '{{.image_description}}', provide a detailed natural language explanation of what is shown in the image."),
	DiagramExplanation: mustTemplate(DiagramExplanation,
		"You are a helpful assistant that explains diagrams and visual content.",
		"Based on this diagram description: '{{.diagram_description}}', provide a clear explanation of what the diagram shows. If it appears to be code or a flowchart, explain the logic or process step by step."),
	ScreenQA: mustTemplate(ScreenQA,
		"You are a helpful assistant that answers questions about screenshots and UI elements.",
		"Based on this screenshot description: '{{.screenshot_description}}', answer the following question: {{.question}}"),
	MeetingMinutes: mustTemplate(MeetingMinutes,
		"You are a helpful assistant that creates structured meeting minutes.",
		`Create structured meeting minutes from the following transcript. Format the output as JSON with the following structure:
{
    "title": "Meeting title",
    "date": "Date if mentioned",
    "attendees": ["list of attendees"],
    "agenda": ["list of agenda items"],
    "key_points": ["list of key discussion points"],
    "decisions": ["list of decisions made"],
    "action_items": [
        {
            "item": "Action item description",
            "assignee": "Person responsible (if mentioned)",
            "deadline": "Deadline (if mentioned)"
        }
    ]
}

Transcript:
{{.transcript}}`),
}

func mustTemplate(kind Kind, system, user string) Template {
	parseOne := func(name, text string) *template.Template {
		return template.Must(template.New(name).Option("missingkey=error").Parse(text))
	}
	return Template{
		Kind:   kind,
		System: system,
		User:   user,
		system: parseOne(string(kind)+".system", system),
		user:   parseOne(string(kind)+".user", user),
	}
}

// Kinds returns every registered kind in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Get returns the template registered for kind.
func Get(kind Kind) (Template, error) {
	t, ok := registry[kind]
	if !ok {
		names := make([]string, 0, len(registry))
		for _, k := range Kinds() {
			names = append(names, string(k))
		}
		return Template{}, apperr.New(apperr.ErrInvalidPromptKind,
			"unknown prompt type: %q. Available types: %s", kind, strings.Join(names, ", "))
	}
	return t, nil
}

// Placeholders lists the distinct field names referenced by the template.
func (t Template) Placeholders() []string {
	seen := map[string]bool{}
	for _, tmpl := range []*template.Template{t.system, t.user} {
		if tmpl == nil || tmpl.Tree == nil {
			continue
		}
		collectFields(tmpl.Tree.Root, seen)
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectFields(node parse.Node, seen map[string]bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			collectFields(c, seen)
		}
	case *parse.ActionNode:
		collectFields(n.Pipe, seen)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			for _, arg := range cmd.Args {
				collectFields(arg, seen)
			}
		}
	case *parse.FieldNode:
		if len(n.Ident) > 0 {
			seen[n.Ident[0]] = true
		}
	case *parse.IfNode:
		collectBranch(&n.BranchNode, seen)
	case *parse.RangeNode:
		collectBranch(&n.BranchNode, seen)
	case *parse.WithNode:
		collectBranch(&n.BranchNode, seen)
	}
}

func collectBranch(b *parse.BranchNode, seen map[string]bool) {
	collectFields(b.Pipe, seen)
	collectFields(b.List, seen)
	if b.ElseList != nil {
		collectFields(b.ElseList, seen)
	}
}

// Format substitutes values into both halves of the template. Every
// placeholder without a value is reported in a single error.
func (t Template) Format(values map[string]string) (system, user string, err error) {
	var missing []string
	for _, name := range t.Placeholders() {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", "", apperr.New(apperr.ErrMissingPlaceholder,
			"prompt %s is missing values for: %s", t.Kind, strings.Join(missing, ", "))
	}

	system, err = execute(t.system, values)
	if err != nil {
		return "", "", err
	}
	user, err = execute(t.user, values)
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}

func execute(tmpl *template.Template, values map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", apperr.Wrap(apperr.ErrMissingPlaceholder, err, "render prompt %s", tmpl.Name())
	}
	return buf.String(), nil
}

