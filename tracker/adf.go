package tracker

import "strings"

// adfDocument is the subset of the Atlassian Document Format that
// plain-text issue descriptions need: a doc of paragraphs of text.
type adfDocument struct {
	Version int       `json:"version"`
	Type    string    `json:"type"`
	Content []adfNode `json:"content,omitempty"`
}

type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Content []adfNode `json:"content,omitempty"`
}

// adfFromText builds an ADF document from plain text. Blank lines
// separate paragraphs; single newlines become hard breaks.
func adfFromText(text string) *adfDocument {
	doc := &adfDocument{Version: 1, Type: "doc"}

	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		paragraph := adfNode{Type: "paragraph"}
		for i, line := range strings.Split(block, "\n") {
			if i > 0 {
				paragraph.Content = append(paragraph.Content, adfNode{Type: "hardBreak"})
			}
			paragraph.Content = append(paragraph.Content, adfNode{Type: "text", Text: line})
		}
		doc.Content = append(doc.Content, paragraph)
	}

	return doc
}

// plainText flattens a document back to text, discarding formatting.
func (d *adfDocument) plainText() string {
	var b strings.Builder
	for i, node := range d.Content {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writePlainText(&b, node)
	}
	return strings.TrimSpace(b.String())
}

func writePlainText(b *strings.Builder, node adfNode) {
	switch node.Type {
	case "text":
		b.WriteString(node.Text)
	case "hardBreak":
		b.WriteString("\n")
	default:
		for _, child := range node.Content {
			writePlainText(b, child)
		}
	}
}
