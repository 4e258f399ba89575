// Package formatter provides serialization for SIRI responses.
//
// This package is organized into:
// - json.go: JSON serialization
// - xml.go: XML serialization with proper escaping
//
// XML is written by hand so element order follows the SIRI schema rather
// than struct field order.
package formatter
