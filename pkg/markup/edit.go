package markup

// Editing works on a flat sequence of caret units: one per rune, one per
// embed and one per line break. A break carries the block format of the line
// it terminates, so splitting and merging lines moves formats with it.

type unit struct {
	r     rune
	embed *Embed
	brk   bool
	marks Marks
	block Block
}

func toUnits(doc Document) []unit {
	doc = doc.Normalize()
	units := make([]unit, 0, doc.Length())
	for _, l := range doc.Lines {
		for _, r := range l.Runs {
			if r.Embed != nil {
				e := r.Embed.clone()
				units = append(units, unit{embed: &e, marks: r.Marks})
				continue
			}
			for _, ch := range r.Text {
				units = append(units, unit{r: ch, marks: r.Marks})
			}
		}
		units = append(units, unit{brk: true, block: l.Block})
	}
	return units
}

func fromUnits(units []unit) Document {
	var doc Document
	var runs []Run
	for _, u := range units {
		switch {
		case u.brk:
			doc.Lines = append(doc.Lines, Line{Block: u.block, Runs: runs})
			runs = nil
		case u.embed != nil:
			runs = append(runs, Run{Embed: u.embed, Marks: u.marks})
		default:
			runs = append(runs, Run{Text: string(u.r), Marks: u.marks})
		}
	}
	if len(runs) > 0 {
		doc.Lines = append(doc.Lines, Line{Runs: runs})
	}
	return doc.Normalize()
}

// ClampCaret bounds pos to the valid caret range of doc. The caret never sits
// after the final break.
func ClampCaret(doc Document, pos int) int {
	return min(max(pos, 0), doc.Length()-1)
}

// lineBlockAt returns the block of the line containing pos.
func lineBlockAt(units []unit, pos int) Block {
	for i := pos; i < len(units); i++ {
		if units[i].brk {
			return units[i].block
		}
	}
	return Block{Type: BlockParagraph}
}

// InsertText inserts text at pos. Newlines split the current line and both
// halves keep its block format.
func InsertText(doc Document, pos int, text string, marks Marks) (Document, int) {
	pos = ClampCaret(doc, pos)
	units := toUnits(doc)
	block := lineBlockAt(units, pos)
	inserted := make([]unit, 0, len(text))
	for _, ch := range text {
		switch ch {
		case '\r':
			continue
		case '\n':
			inserted = append(inserted, unit{brk: true, block: block})
			continue
		}
		// Dropped controls must not advance the caret.
		if ch = cleanRune(ch); ch < 0 {
			continue
		}
		inserted = append(inserted, unit{r: ch, marks: marks})
	}
	units = splice(units, pos, 0, inserted)
	return fromUnits(units), pos + len(inserted)
}

// InsertEmbed inserts a single embed at pos and returns the caret after it.
func InsertEmbed(doc Document, pos int, e Embed, marks Marks) (Document, int) {
	pos = ClampCaret(doc, pos)
	units := toUnits(doc)
	clone := e.clone()
	units = splice(units, pos, 0, []unit{{embed: &clone, marks: marks}})
	return fromUnits(units), pos + 1
}

// Delete removes n units starting at pos. The final line break is never
// removed; deleting a break merges the two lines under the later line's block.
func Delete(doc Document, pos, n int) Document {
	units := toUnits(doc)
	pos = min(max(pos, 0), len(units)-1)
	end := min(pos+max(n, 0), len(units)-1)
	if end <= pos {
		return doc.Normalize()
	}
	return fromUnits(splice(units, pos, end-pos, nil))
}

// FormatInline applies fn to the marks of every non-break unit in [from, to).
func FormatInline(doc Document, from, to int, fn func(*Marks)) Document {
	units := toUnits(doc)
	from, to = orderedRange(from, to, len(units))
	for i := from; i < to; i++ {
		if !units[i].brk {
			fn(&units[i].marks)
		}
	}
	return fromUnits(units)
}

// FormatLines applies fn to the block of every line touched by [from, to].
// A collapsed range formats the caret's line.
func FormatLines(doc Document, from, to int, fn func(*Block)) Document {
	units := toUnits(doc)
	from, to = orderedRange(from, to, len(units))
	if to == from {
		to = from + 1
	}
	for i := from; i < len(units); i++ {
		if !units[i].brk {
			continue
		}
		fn(&units[i].block)
		if i >= to-1 {
			break
		}
	}
	return fromUnits(units)
}

// MarksAt returns the inline format text typed at pos inherits: the marks of
// the unit before pos on the same line.
func MarksAt(doc Document, pos int) Marks {
	units := toUnits(doc)
	pos = min(max(pos, 0), len(units)-1)
	if pos == 0 || units[pos-1].brk {
		return Marks{}
	}
	return units[pos-1].marks
}

// BlockAt returns the block format of the line containing pos.
func BlockAt(doc Document, pos int) Block {
	units := toUnits(doc)
	return lineBlockAt(units, min(max(pos, 0), len(units)-1))
}

// EmbedAt returns the embed occupying the unit at pos, if any.
func EmbedAt(doc Document, pos int) (Embed, bool) {
	units := toUnits(doc)
	if pos < 0 || pos >= len(units) || units[pos].embed == nil {
		return Embed{}, false
	}
	return units[pos].embed.clone(), true
}

// EmbedRange reports the units in [from, to) that hold embeds, as positions.
func EmbedRange(doc Document, from, to int) []int {
	units := toUnits(doc)
	from, to = orderedRange(from, to, len(units))
	var out []int
	for i := from; i < to; i++ {
		if units[i].embed != nil {
			out = append(out, i)
		}
	}
	return out
}

func orderedRange(from, to, length int) (int, int) {
	if from > to {
		from, to = to, from
	}
	return min(max(from, 0), length), min(max(to, 0), length)
}

func splice(units []unit, at, remove int, insert []unit) []unit {
	out := make([]unit, 0, len(units)-remove+len(insert))
	out = append(out, units[:at]...)
	out = append(out, insert...)
	out = append(out, units[at+remove:]...)
	return out
}
