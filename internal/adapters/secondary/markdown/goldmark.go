package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

const notePrefix = "Note:"

// GoldmarkParser turns markdown notes into slide content using Goldmark
type GoldmarkParser struct {
	md goldmark.Markdown
}

// NewGoldmarkParser creates a new Goldmark-based markdown parser
func NewGoldmarkParser() *GoldmarkParser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables, task lists, strikethrough, autolinks
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	return &GoldmarkParser{md: md}
}

// ParseSlides parses markdown into slides. `---` separates slides, `#` and
// `##` headings start new ones, list items and paragraphs become bullets,
// block quotes become quote slides and `Note:` lines become speaker notes.
func (p *GoldmarkParser) ParseSlides(ctx context.Context, content []byte) ([]entities.SlideContent, error) {
	_, remaining := extractFrontmatter(content)
	return p.parseBody(ctx, remaining)
}

// ParseDeck parses a markdown deck, reading theme, title, format,
// template_path and brand_kit from the YAML frontmatter
func (p *GoldmarkParser) ParseDeck(ctx context.Context, content []byte) (*entities.BuildConfig, error) {
	frontmatter, remaining := extractFrontmatter(content)

	slides, err := p.parseBody(ctx, remaining)
	if err != nil {
		return nil, err
	}

	config := &entities.BuildConfig{
		Theme:        stringValue(frontmatter, "theme"),
		Title:        stringValue(frontmatter, "title"),
		Format:       stringValue(frontmatter, "format"),
		TemplatePath: stringValue(frontmatter, "template_path"),
		Slides:       slides,
	}
	config.BrandKit.Path = stringValue(frontmatter, "brand_kit")
	return config, nil
}

func (p *GoldmarkParser) parseBody(ctx context.Context, content []byte) ([]entities.SlideContent, error) {
	b := &slideBuilder{}
	for i, chunk := range splitSlides(content) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc := p.md.Parser().Parse(text.NewReader(chunk))
		if doc == nil {
			return nil, fmt.Errorf("parsing slide %d: empty document", i)
		}
		b.flush()
		b.walk(doc, chunk)
	}
	b.flush()
	return b.slides, nil
}

// slideBuilder accumulates slides while walking top-level blocks
type slideBuilder struct {
	slides []entities.SlideContent
	cur    *entities.SlideContent
	level  int
}

func (b *slideBuilder) walk(doc ast.Node, source []byte) {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := inlineText(node, source, " ")
			if node.Level > 2 {
				b.addBullet(title)
				continue
			}
			b.flush()
			slideType := entities.SlideTypeContent
			if node.Level == 1 && len(b.slides) == 0 {
				slideType = entities.SlideTypeTitle
			}
			b.cur = &entities.SlideContent{Type: slideType, Title: title}
			b.level = node.Level

		case *ast.Paragraph:
			raw := inlineText(node, source, "\n")
			if strings.HasPrefix(raw, notePrefix) {
				b.addNotes(raw)
				continue
			}
			paragraph := strings.Join(strings.Fields(raw), " ")
			if b.cur != nil && b.cur.Type == entities.SlideTypeTitle && b.cur.Subtitle == "" {
				b.cur.Subtitle = paragraph
				continue
			}
			b.addBullet(paragraph)

		case *ast.List:
			for _, item := range listItems(node, source) {
				b.addBullet(item)
			}

		case *ast.Blockquote:
			b.addQuote(blockquoteText(node, source))

		case *east.Table:
			b.addTable(node, source)

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.addBullet(strings.TrimRight(string(seg.Value(source)), "\r\n"))
			}

		case *ast.ThematicBreak:
			b.flush()
		}
	}
}

func (b *slideBuilder) ensure() *entities.SlideContent {
	if b.cur == nil {
		b.cur = &entities.SlideContent{Type: entities.SlideTypeContent}
		b.level = 0
	}
	return b.cur
}

func (b *slideBuilder) addBullet(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	// Body text after a completed title slide starts an untitled slide
	if b.cur != nil && b.cur.Type == entities.SlideTypeTitle {
		b.flush()
	}
	cur := b.ensure()
	cur.Bullets = append(cur.Bullets, line)
}

func (b *slideBuilder) addNotes(raw string) {
	var notes []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), notePrefix))
		if line != "" {
			notes = append(notes, line)
		}
	}
	if len(notes) == 0 {
		return
	}
	cur := b.ensure()
	if cur.Notes != "" {
		cur.Notes += "\n"
	}
	cur.Notes += strings.Join(notes, "\n")
}

// addQuote turns a heading-only slide into a quote slide, otherwise it
// closes the current slide and emits a separate quote slide
func (b *slideBuilder) addQuote(quote, attribution string) {
	if quote == "" {
		return
	}
	if b.cur != nil && b.cur.Type == entities.SlideTypeContent && len(b.cur.Bullets) == 0 {
		b.cur.Type = entities.SlideTypeQuote
	} else {
		b.flush()
		b.cur = &entities.SlideContent{Type: entities.SlideTypeQuote}
	}
	b.cur.Quote = quote
	b.cur.Attribution = attribution
}

// addTable maps a two-column table onto a two_column slide; any other
// table becomes one bullet per row
func (b *slideBuilder) addTable(table *east.Table, source []byte) {
	var header []string
	var rows [][]string
	for n := table.FirstChild(); n != nil; n = n.NextSibling() {
		var cells []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, inlineText(c, source, " "))
		}
		if _, ok := n.(*east.TableHeader); ok {
			header = cells
			continue
		}
		rows = append(rows, cells)
	}

	if len(header) == 2 && (b.cur == nil || len(b.cur.Bullets) == 0) && (b.cur == nil || b.cur.Type == entities.SlideTypeContent) {
		cur := b.ensure()
		cur.Type = entities.SlideTypeTwoColumn
		cur.LeftHeader, cur.RightHeader = header[0], header[1]
		for _, row := range rows {
			if len(row) > 0 && row[0] != "" {
				cur.LeftItems = append(cur.LeftItems, row[0])
			}
			if len(row) > 1 && row[1] != "" {
				cur.RightItems = append(cur.RightItems, row[1])
			}
		}
		return
	}

	for _, row := range rows {
		b.addBullet(strings.Join(row, " | "))
	}
}

// flush closes the current slide. A level-one heading with no body after
// the opening slide becomes a section divider.
func (b *slideBuilder) flush() {
	cur := b.cur
	b.cur = nil
	if cur == nil {
		return
	}
	if cur.Type == entities.SlideTypeContent && len(cur.Bullets) == 0 {
		if cur.Title == "" {
			if cur.Notes != "" && len(b.slides) > 0 && b.slides[len(b.slides)-1].Notes == "" {
				b.slides[len(b.slides)-1].Notes = cur.Notes
			}
			return
		}
		if b.level == 1 {
			cur.Type = entities.SlideTypeSection
		}
	}
	b.slides = append(b.slides, *cur)
}

// inlineText concatenates the text under n. Soft line breaks become softBreak.
func inlineText(n ast.Node, source []byte, softBreak string) string {
	var buf strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(source))
			if v.HardLineBreak() {
				buf.WriteString("\n")
			} else if v.SoftLineBreak() {
				buf.WriteString(softBreak)
			}
		case *ast.String:
			buf.WriteString(html.UnescapeString(string(v.Value)))
		case *ast.AutoLink:
			buf.Write(v.URL(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *east.TaskCheckBox:
			if v.IsChecked {
				buf.WriteString("[x] ")
			} else {
				buf.WriteString("[ ] ")
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// listItems flattens nested lists into one line per item
func listItems(list *ast.List, source []byte) []string {
	var items []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var parts []string
		var nested []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, listItems(sub, source)...)
				continue
			}
			if t := inlineText(c, source, " "); t != "" {
				parts = append(parts, t)
			}
		}
		if len(parts) > 0 {
			items = append(items, strings.Join(parts, " "))
		}
		items = append(items, nested...)
	}
	return items
}

// blockquoteText returns the quote and an attribution taken from a final
// line starting with an em dash or "--"
func blockquoteText(quote *ast.Blockquote, source []byte) (string, string) {
	var lines []string
	for c := quote.FirstChild(); c != nil; c = c.NextSibling() {
		for _, line := range strings.Split(inlineText(c, source, "\n"), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	}
	if len(lines) == 0 {
		return "", ""
	}

	var attribution string
	last := lines[len(lines)-1]
	for _, dash := range []string{"—", "--"} {
		if strings.HasPrefix(last, dash) && len(lines) > 1 {
			attribution = strings.TrimSpace(strings.TrimPrefix(last, dash))
			lines = lines[:len(lines)-1]
			break
		}
	}
	return strings.Join(lines, " "), attribution
}

// extractFrontmatter extracts YAML frontmatter from markdown content
func extractFrontmatter(content []byte) (map[string]interface{}, []byte) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, content
	}

	lines := bytes.Split(content, []byte("\n"))
	endIndex := -1
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			endIndex = i
			break
		}
	}
	if endIndex == -1 {
		return nil, content
	}

	frontmatterBytes := bytes.Join(lines[1:endIndex], []byte("\n"))

	var frontmatter map[string]interface{}
	if len(bytes.TrimSpace(frontmatterBytes)) == 0 {
		frontmatter = make(map[string]interface{})
	} else if err := yaml.Unmarshal(frontmatterBytes, &frontmatter); err != nil {
		return nil, content
	}

	return frontmatter, bytes.Join(lines[endIndex+1:], []byte("\n"))
}

// splitSlides splits content on `---` lines
func splitSlides(content []byte) [][]byte {
	normalized := strings.ReplaceAll(string(content), "\r\n", "\n")

	var slides [][]byte
	for _, slide := range strings.Split("\n"+normalized+"\n", "\n---\n") {
		if trimmed := strings.TrimSpace(slide); trimmed != "" {
			slides = append(slides, []byte(trimmed))
		}
	}
	return slides
}

func stringValue(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

var _ ports.MarkdownSlideParser = (*GoldmarkParser)(nil)
