package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/onboarder.txt
	onboarderRaw string

	//go:embed template/extract.txt
	extractRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Onboarder  string
	Extraction string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Onboarder:  strings.TrimSpace(onboarderRaw),
		Extraction: strings.TrimSpace(extractRaw),
	}
}
