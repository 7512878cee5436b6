package bank

import (
	_ "embed"

	"ela-quiz-service/internal/domain"
)

//go:embed sample_bank.yaml
var sampleYAML []byte

// SampleYAML returns the embedded sample bank document, used by the `sample`
// command and as the fallback bank when no bank directory is configured.
func SampleYAML() []byte {
	out := make([]byte, len(sampleYAML))
	copy(out, sampleYAML)
	return out
}

// Sample parses the embedded sample bank. It is validated in tests, so the
// panic is unreachable with a healthy build.
func Sample() domain.Bank {
	b, _, err := Parse(sampleYAML)
	if err != nil {
		panic("embedded sample bank is invalid: " + err.Error())
	}
	return b
}
