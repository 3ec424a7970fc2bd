// Package excerpt shortens the HTML body of HN text posts to a sentence or two.
package excerpt

import (
	"strings"

	"github.com/JesusIslam/tldr"
	"github.com/pkg/errors"
	"gopkg.in/jdkato/prose.v2"
	"jaytaylor.com/html2text"
)

// Plain converts HN item HTML into plain text on a single line
func Plain(html string) (string, error) {
	text, err := html2text.FromString(html)
	if err != nil {
		return "", errors.Wrap(err, "html2text")
	}
	return strings.Join(strings.Fields(text), " "), nil
}

// Sentences splits plain text into sentences
func Sentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return nil, errors.Wrap(err, "prose")
	}

	var out []string
	for _, s := range doc.Sentences() {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// Summarize returns at most n sentences of html as plain text. Short posts
// are returned whole; longer ones are reduced with tldr's ranking.
func Summarize(html string, n int) (string, error) {
	if n < 1 {
		n = 1
	}
	plain, err := Plain(html)
	if err != nil || plain == "" {
		return "", err
	}

	sentences, err := Sentences(plain)
	if err != nil {
		return "", err
	}
	if len(sentences) <= n {
		return strings.Join(sentences, " "), nil
	}

	bag := tldr.New()
	picked, err := bag.Summarize(plain, n)
	if err != nil || len(picked) == 0 {
		return strings.Join(sentences[:n], " "), nil
	}
	return strings.TrimSpace(strings.Join(picked, " ")), nil
}
