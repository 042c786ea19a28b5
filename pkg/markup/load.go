package markup

import (
	"regexp"
	"strconv"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LoadOption customises Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	promote func(key string) bool
	skipSan bool
}

// PromoteBraces upgrades literal "{{ Key }}" text to variable embeds when
// accept returns true for the key. It exists for templates saved before tokens
// were stored as dedicated elements; pass a catalog membership check so
// arbitrary brace text stays literal.
func PromoteBraces(accept func(key string) bool) LoadOption {
	return func(cfg *loadConfig) {
		cfg.promote = accept
	}
}

// SkipSanitize bypasses the whitelist policy. Only for markup produced by
// Serialize.
func SkipSanitize() LoadOption {
	return func(cfg *loadConfig) {
		cfg.skipSan = true
	}
}

var braceKeyPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)

// Load parses stored region markup into a Document. It never fails: markup it
// cannot reconstruct is kept as literal text and reported as a warning.
func Load(raw string, schema *Schema, options ...LoadOption) (Document, []Warning) {
	cfg := loadConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if schema == nil {
		schema = DefaultSchema()
	}

	source := raw
	if !cfg.skipSan {
		source = schema.Sanitize(raw)
	}
	if strings.TrimSpace(source) == "" {
		return Empty(), nil
	}

	nodes, err := nethtml.ParseFragment(strings.NewReader(source), &nethtml.Node{
		Type:     nethtml.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		doc := Empty()
		doc.Lines[0].Runs = []Run{{Text: flatten(raw)}}
		return doc, []Warning{{Err: ErrMalformedTemplate, Detail: err.Error()}}
	}

	b := &builder{schema: schema, cfg: cfg}
	for _, n := range nodes {
		b.walk(n, Marks{}, Block{Type: BlockParagraph})
	}
	b.flush()

	doc := Document{Lines: b.lines}.Normalize()
	return doc, b.warnings
}

type builder struct {
	schema   *Schema
	cfg      loadConfig
	lines    []Line
	cur      *Line
	depth    int
	warnings []Warning
}

func (b *builder) warn(err error, detail string) {
	b.warnings = append(b.warnings, Warning{Err: err, Detail: detail})
}

func (b *builder) open(block Block) *Line {
	if b.cur == nil {
		b.cur = &Line{Block: block}
	}
	return b.cur
}

func (b *builder) flush() {
	if b.cur == nil {
		return
	}
	b.lines = append(b.lines, *b.cur)
	b.cur = nil
}

func (b *builder) appendText(text string, marks Marks, block Block) {
	text = flatten(text)
	if text == "" {
		return
	}
	// Whitespace between block elements is formatting, not content.
	if b.cur == nil && b.depth == 0 && strings.TrimSpace(text) == "" {
		return
	}
	line := b.open(block)
	if b.cfg.promote == nil {
		line.Runs = append(line.Runs, Run{Text: text, Marks: marks})
		return
	}
	last := 0
	for _, loc := range braceKeyPattern.FindAllStringSubmatchIndex(text, -1) {
		key := text[loc[2]:loc[3]]
		if !b.cfg.promote(key) {
			continue
		}
		line.Runs = append(line.Runs, Run{Text: text[last:loc[0]], Marks: marks})
		embed := NewVariable(key, "")
		line.Runs = append(line.Runs, Run{Embed: &embed, Marks: marks})
		last = loc[1]
	}
	line.Runs = append(line.Runs, Run{Text: text[last:], Marks: marks})
}

func (b *builder) appendEmbed(e Embed, marks Marks, block Block) {
	line := b.open(block)
	line.Runs = append(line.Runs, Run{Embed: &e, Marks: marks})
}

func (b *builder) walk(n *nethtml.Node, marks Marks, block Block) {
	switch n.Type {
	case nethtml.TextNode:
		b.appendText(n.Data, marks, block)
		return
	case nethtml.ElementNode:
	default:
		return
	}

	if t, ok := b.schema.match(n); ok {
		embed, err := t.Decode(n)
		if err != nil {
			b.warn(ErrMalformedTemplate, err.Error())
			literal := literalText(n)
			if strings.TrimSpace(literal) == "" {
				literal = "{{ " + attr(n, "data-var") + " }}"
			}
			b.appendText(literal, marks, block)
			return
		}
		b.appendEmbed(embed, marks, block)
		return
	}

	switch n.DataAtom {
	case atom.P, atom.Div, atom.Blockquote,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Li:
		b.walkBlock(n, marks, b.blockFor(n, block))
	case atom.Ul, atom.Ol:
		list := Block{Type: BlockList, List: ListBullet}
		if n.DataAtom == atom.Ol {
			list.List = ListOrdered
		}
		b.flush()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == nethtml.TextNode && strings.TrimSpace(c.Data) == "" {
				continue
			}
			b.walk(c, marks, list)
		}
		b.flush()
	case atom.Br:
		b.open(block)
		b.flush()
	case atom.Strong, atom.B:
		marks.Bold = true
		b.walkChildren(n, marks, block)
	case atom.Em, atom.I:
		marks.Italic = true
		b.walkChildren(n, marks, block)
	case atom.U:
		marks.Underline = true
		b.walkChildren(n, marks, block)
	case atom.S, atom.Strike, atom.Del:
		marks.Strike = true
		b.walkChildren(n, marks, block)
	case atom.Span:
		applyMarkStyle(&marks, attr(n, "style"), func(detail string) {
			b.warn(ErrUnsupportedFormat, detail)
		})
		b.walkChildren(n, marks, block)
	default:
		b.warn(ErrUnsupportedElement, n.Data)
		b.walkChildren(n, marks, block)
	}
}

func (b *builder) walkChildren(n *nethtml.Node, marks Marks, block Block) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c, marks, block)
	}
}

// walkBlock emits at least one line for a block element, so empty paragraphs
// survive as blank lines.
func (b *builder) walkBlock(n *nethtml.Node, marks Marks, block Block) {
	b.flush()
	before := len(b.lines)
	if hasBlockChild(n) {
		// Containers such as <div><p>..</p></div> only group blocks.
		b.walkChildren(n, marks, block)
	} else {
		b.depth++
		b.walkChildren(n, marks, block)
		b.depth--
	}
	if b.cur == nil && len(b.lines) == before {
		b.open(block)
	}
	b.flush()
}

func (b *builder) blockFor(n *nethtml.Node, parent Block) Block {
	block := Block{Type: BlockParagraph}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level, _ := strconv.Atoi(n.Data[1:])
		if level > MaxHeading {
			b.warn(ErrUnsupportedFormat, "heading level "+n.Data[1:])
		}
		block = Block{Type: BlockHeading, Level: level}
	case atom.Li:
		if parent.Type == BlockList {
			block = Block{Type: BlockList, List: parent.List}
		}
	}
	applyBlockClasses(&block, attr(n, "class"))
	applyBlockStyle(&block, attr(n, "style"), func(detail string) {
		b.warn(ErrUnsupportedFormat, detail)
	})
	return block
}

func hasBlockChild(n *nethtml.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != nethtml.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.P, atom.Div, atom.Blockquote, atom.Ul, atom.Ol, atom.Li,
			atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			return true
		}
	}
	return false
}

func attr(n *nethtml.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}

func literalText(n *nethtml.Node) string {
	var b strings.Builder
	var collect func(*nethtml.Node)
	collect = func(node *nethtml.Node) {
		if node.Type == nethtml.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}

// flatten keeps text on a single line; line structure comes from elements.
func flatten(text string) string {
	return CleanText(text)
}
