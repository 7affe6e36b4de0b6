package gdast

// Walk visits b and every descendant block in depth-first, sibling
// order, invoking fn once per block.
func Walk(b *Block, fn func(*Block)) {
	if b == nil {
		return
	}
	fn(b)
	for child := b.FirstChild; child != nil; child = child.Next {
		Walk(child, fn)
	}
}

// BlockForHeader finds the block opened by the given header logical
// line, or nil if header opens no block (e.g. it has an empty body, or
// isn't a header at all).
func BlockForHeader(root *Block, header *LogicalLine) *Block {
	var found *Block
	Walk(root, func(b *Block) {
		if found == nil && b.Header == header {
			found = b
		}
	})
	return found
}

// LineCount returns the number of logical lines in b and all of its
// descendant blocks.
func LineCount(b *Block) int {
	total := 0
	Walk(b, func(blk *Block) {
		total += len(blk.Lines)
	})
	return total
}
