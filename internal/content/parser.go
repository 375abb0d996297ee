package content

import (
	"regexp"
	"strings"
)

const (
	placeholderTitle   = "Artigo sobre Pokémon"
	placeholderExcerpt = "Um artigo gerado automaticamente sobre o universo Pokémon."

	blankTitle   = "Artigo sobre o universo Pokémon"
	blankExcerpt = "Um artigo em português sobre o universo Pokémon."

	defaultExcerpt = "Um artigo em português sobre o universo Pokémon, gerado automaticamente por IA."
)

const (
	thinkOpen  = "<think>"
	thinkClose = "</think>"
)

var (
	thinkBlock    = regexp.MustCompile(`(?s)<think>.*?</think>`)
	headingMarker = regexp.MustCompile(`^#+\s*`)
)

// Parsed is the title/excerpt/body triple extracted from generated text.
type Parsed struct {
	Title   string
	Excerpt string
	Content string
}

// StripReasoning removes <think>...</think> spans from model output.
// Unbalanced delimiters are handled on a best-effort basis: a closing tag
// without an opener drops everything before it, and an opening tag that is
// never closed drops everything after it.
func StripReasoning(text string) string {
	s := thinkBlock.ReplaceAllString(text, "")

	if i := strings.LastIndex(s, thinkClose); i >= 0 {
		s = s[i+len(thinkClose):]
	}
	if i := strings.Index(s, thinkOpen); i >= 0 {
		s = s[:i]
	}

	return strings.TrimSpace(s)
}

// ParseGeneratedArticle derives title, excerpt and body from raw model output
// and guarantees the body ends with a conclusion section about topic.
func ParseGeneratedArticle(raw, topic string) Parsed {
	p := parse(raw)
	p.Content = EnsureConclusion(p.Content, topic)
	return p
}

func parse(raw string) Parsed {
	if raw == "" {
		return Parsed{Title: placeholderTitle, Excerpt: placeholderExcerpt}
	}

	cleaned := StripReasoning(raw)
	lines := nonEmptyLines(cleaned)
	if len(lines) == 0 {
		return Parsed{Title: blankTitle, Excerpt: blankExcerpt}
	}

	var title string
	body := cleaned

	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			title = stripHeading(line)
			break
		}
	}

	// No heading: promote the first line so the body always opens with one.
	if title == "" {
		title = lines[0]
		body = "# " + title + "\n\n" + strings.Join(lines[1:], "\n")
	}

	excerpt := findExcerpt(lines, title)
	if excerpt == "" {
		excerpt = defaultExcerpt
	}

	return Parsed{Title: title, Excerpt: excerpt, Content: body}
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func stripHeading(line string) string {
	return strings.TrimSpace(headingMarker.ReplaceAllString(line, ""))
}

func findExcerpt(lines []string, title string) string {
	titleIndex := -1
	for i, l := range lines {
		if stripHeading(l) == title {
			titleIndex = i
			break
		}
	}
	if titleIndex < 0 {
		return ""
	}

	for _, l := range lines[titleIndex+1:] {
		if strings.HasPrefix(l, "#") {
			continue
		}
		return l
	}
	return ""
}

// HasConclusion reports whether markdown already has a conclusion heading.
func HasConclusion(markdown string) bool {
	lower := strings.ToLower(markdown)
	return strings.Contains(lower, "## conclusão") || strings.Contains(lower, "## conclusao")
}

// EnsureConclusion appends a closing section about topic unless markdown
// already has one. Applying it more than once never duplicates the section.
func EnsureConclusion(markdown, topic string) string {
	if HasConclusion(markdown) {
		return markdown
	}

	subject := strings.TrimSpace(topic)
	if subject == "" {
		subject = "Pokémon"
	}

	conclusion := "## Conclusão\n\n" +
		subject + " é um tema muito importante dentro do universo Pokémon, e entender seus detalhes na prática faz toda a diferença na hora de batalhar. " +
		"Use as ideias e recomendações deste artigo como ponto de partida, faça testes, ajuste seus times e, principalmente, mantenha a curiosidade de aprender um pouco mais a cada partida.\n\n" +
		"Boa sorte nas próximas batalhas e continue evoluindo como treinador!"

	trimmed := strings.TrimSpace(markdown)
	if trimmed == "" {
		return conclusion + "\n"
	}
	return trimmed + "\n\n" + conclusion + "\n"
}
