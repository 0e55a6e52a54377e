package scrape

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

// Rejection reasons from Extract.
var (
	// ErrTooShort indicates the page had fewer words than the minimum.
	ErrTooShort = errors.New("page below minimum word count")
	// ErrNotEnglish indicates the detected language was not English.
	ErrNotEnglish = errors.New("page content is not English")
)

// Page is the distilled content of one documentation page.
type Page struct {
	URL   string
	Title string
	Text  string
	Words int
}

// Extractor distills raw HTML into clean documentation text. Pages that
// are too short or not in English are rejected.
type Extractor struct {
	minWords int
	detector lingua.LanguageDetector
}

// NewExtractor creates an extractor that drops pages shorter than
// minWords.
func NewExtractor(minWords int) *Extractor {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Spanish, lingua.French, lingua.German).
		Build()
	return &Extractor{
		minWords: minWords,
		detector: detector,
	}
}

// Extract runs readability over the HTML, strips residual navigation
// noise, and returns the page text.
func (e *Extractor) Extract(rawURL, html string) (*Page, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", rawURL, err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("distill %s: %w", rawURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("parse distilled content of %s: %w", rawURL, err)
	}
	doc.Find("nav,aside,footer,script,style").Remove()

	var parts []string
	doc.Find("h1,h2,h3,h4,p,li,pre").Each(func(_ int, s *goquery.Selection) {
		text := normalizeText(s.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})
	text := strings.Join(parts, "\n\n")

	words := len(strings.Fields(text))
	if words < e.minWords {
		return nil, fmt.Errorf("%w: %d words (minimum %d)", ErrTooShort, words, e.minWords)
	}

	if lang, ok := e.detector.DetectLanguageOf(text); ok && lang != lingua.English {
		return nil, fmt.Errorf("%w: detected %s", ErrNotEnglish, lang)
	}

	return &Page{
		URL:   rawURL,
		Title: normalizeText(article.Title),
		Text:  text,
		Words: words,
	}, nil
}

// normalizeText collapses a block of text onto one line.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
