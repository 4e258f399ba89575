package formatter

import (
	"encoding/json"

	"github.com/theoremus-urban-solutions/fleet-tracker/siri"
)

type responseBuilder struct{}

// NewResponseBuilder creates a new response builder for formatting SIRI responses
func NewResponseBuilder() *responseBuilder {
	return &responseBuilder{}
}

// BuildJSON serializes a SIRI response to JSON
func (rb *responseBuilder) BuildJSON(res *siri.SiriResponse) ([]byte, error) {
	return json.Marshal(res)
}
