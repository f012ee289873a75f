package transcript

import (
	"regexp"
	"strings"
)

// Utterance is one speaker-attributed line of dialogue. Index reflects the
// position within the parsed transcript and is preserved through synthesis
// and assembly.
type Utterance struct {
	Speaker string
	Text    string

	Index int
}

var (
	labelRegex     = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 .'-]{0,31}):\s*(.*)$`)
	directionRegex = regexp.MustCompile(`\[[^\[\]]*\]`)
	spaceRegex     = regexp.MustCompile(`\s+`)
)

type Parser struct {
	speakers map[string]string

	fallback string
}

// NewParser creates a parser for the given known speaker labels. Lines whose
// label is not in the known set (or that carry no label at all) are assigned
// to the fallback speaker instead of being dropped.
func NewParser(fallback string, speakers ...string) (*Parser, error) {
	known := make(map[string]string, len(speakers))

	for _, s := range speakers {
		known[strings.ToLower(s)] = s
	}

	if _, ok := known[strings.ToLower(fallback)]; !ok {
		speakers = append(speakers, fallback)
		known[strings.ToLower(fallback)] = fallback
	}

	return &Parser{
		speakers: known,

		fallback: fallback,
	}, nil
}

func (p *Parser) Speakers() []string {
	var result []string

	for _, s := range p.speakers {
		result = append(result, s)
	}

	return result
}

func (p *Parser) Fallback() string {
	return p.fallback
}

// Parse turns raw script text into an ordered utterance list. Blank lines and
// bracketed stage directions are discarded. An empty input yields an empty
// list, not an error.
func (p *Parser) Parse(input string) []Utterance {
	var result []Utterance

	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		speaker := p.fallback
		text := line

		if m := labelRegex.FindStringSubmatch(line); m != nil {
			text = m[2]

			if canonical, ok := p.speakers[strings.ToLower(strings.TrimSpace(m[1]))]; ok {
				speaker = canonical
			}
		}

		text = normalize(text)

		if text == "" {
			continue
		}

		result = append(result, Utterance{
			Speaker: speaker,
			Text:    text,

			Index: len(result),
		})
	}

	return result
}

func normalize(text string) string {
	text = directionRegex.ReplaceAllString(text, " ")
	text = spaceRegex.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
