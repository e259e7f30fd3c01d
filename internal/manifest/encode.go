package manifest

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// indent matches the four-space layout of published entry.tp files.
const indent = "    "

// Marshal encodes the document as indented JSON with keys in declaration order.
// HTML characters are written as-is.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", indent)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	return buf.Bytes(), nil
}
