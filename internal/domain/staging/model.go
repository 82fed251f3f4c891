package staging

import "github.com/riskibarqy/sports-dw/internal/platform/document"

// Document is one raw record read from a staging collection. Err is set
// when the record could not be decoded; Body is then null.
type Document struct {
	Collection string
	ID         string
	Body       document.Value
	Err        error
}
