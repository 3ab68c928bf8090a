package entity

import (
	"time"
)

// Ticket Process Status
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusSkipped    = "SKIPPED"
)

// Ticket sources
const (
	SourceOCR = "ocr"
	SourceAI  = "ai"
)

// Ticket is one uploaded travel document awaiting processing. OCR tickets
// carry raw text; AI tickets carry the structured candidate record the
// vision extractor produced.
type Ticket struct {
	ID               string                 `bson:"_id,omitempty"`
	Source           string                 `bson:"source"`
	RawText          string                 `bson:"rawText,omitempty"`
	OCRConfidence    float64                `bson:"ocrConfidence,omitempty"`
	AIRecord         *AIFlightRecord        `bson:"aiRecord,omitempty"`
	ReceivedAt       time.Time              `bson:"receivedAt"`
	ProcessStatus    string                 `bson:"processStatus"`
	ProcessStartedAt time.Time              `bson:"processStartedAt,omitempty"`
	ProcessedAt      time.Time              `bson:"processedAt,omitempty"`
	ErrorDetail      string                 `bson:"errorDetail,omitempty"`
	ExtractedData    map[string]interface{} `bson:"extractedData,omitempty"`
}
