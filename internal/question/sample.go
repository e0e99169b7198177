package question

import _ "embed"

//go:embed sample.json
var builtinBank []byte

// Sample returns the built-in starter bank, used when no bank file is
// configured.
func Sample() []Question {
	return Decode(builtinBank)
}
