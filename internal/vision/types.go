package vision

type Detail string

const (
	DetailLow    Detail = "low"
	DetailMedium Detail = "medium"
	DetailHigh   Detail = "high"
)

// ObjectScene is the only object type the vision models report.
const ObjectScene = "scene"

type DetectedObject struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// StructureReceipt is the only structured extraction supported.
const StructureReceipt = "receipt"

const ocrPrompt = "Extract all text visible in this image. Include all words, numbers, and labels exactly as they appear."

var describePrompts = map[Detail]string{
	DetailLow:    "Briefly describe this image in one or two sentences.",
	DetailMedium: "Describe this image in detail.",
	DetailHigh:   "Describe this image in as much detail as possible. Cover every object, any visible text, the layout and how the elements relate to each other.",
}
