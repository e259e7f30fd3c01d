package manifest

import (
	"regexp"
	"strconv"
)

var placeholderPattern = regexp.MustCompile(`\{([0-9]+)\}`)

// FormatTemplate replaces every {N} placeholder in template with args[N].
// Placeholders without a matching argument are left as they are.
func FormatTemplate(template string, args []string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		index, err := strconv.Atoi(match[1 : len(match)-1])
		if err != nil || index >= len(args) {
			return match
		}

		return args[index]
	})
}

// Reference returns the token the host substitutes with the value of a data field.
func Reference(fieldID string) string {
	return "{$" + fieldID + "$}"
}

// references maps data fields to their reference tokens, in order.
func references(data []DataField) []string {
	refs := make([]string, len(data))
	for i, d := range data {
		refs[i] = Reference(d.ID)
	}

	return refs
}
