package models

// These structs define the JSON payloads for the ocr-server HTTP entry point.
// PDF bytes travel base64-encoded in the Data field, which encoding/json
// handles natively for []byte.

// FilePayload is one uploaded PDF in an OCRBatchRequest.
type FilePayload struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// OCRBatchRequest is the input for the ocr-server function. FormatTemplate,
// when present, applies uniformly to every page of every file in the run.
type OCRBatchRequest struct {
	Files          []FilePayload `json:"files"`
	FormatTemplate string        `json:"formatTemplate,omitempty"`
}

// ReportPayload is the per-document result in an OCRBatchResponse.
type ReportPayload struct {
	Filename string `json:"filename"`
	Pages    int    `json:"pages"`
	FullText string `json:"fullText"`
	Preview  string `json:"preview"`
}

// FailurePayload flags a document whose PDF could not be parsed.
type FailurePayload struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// OCRBatchResponse is the output of the ocr-server function.
type OCRBatchResponse struct {
	Status   string           `json:"status"`
	Reports  []ReportPayload  `json:"reports"`
	Failures []FailurePayload `json:"failures,omitempty"`
	CSV      string           `json:"csv"`
}
