package treebuilder

import (
	"github.com/go-html5-parser/html5parser/dom"
	"github.com/go-html5-parser/html5parser/internal/constants"
)

const adoptionOuterLoopLimit = 8
const adoptionInnerLoopNoahsArkLimit = 3

// adoptionAgency implements the adoption agency algorithm for misnested
// formatting elements (WHATWG §13.2.5.2.5). subject is the end tag name
// that triggered it.
func (tb *TreeBuilder) adoptionAgency(subject string) {
	if tb.currentElement() != nil && tb.currentElement().TagName == subject && !tb.hasActiveFormattingEntry(subject) {
		tb.popUntil(subject)
		return
	}

	for outer := 0; outer < adoptionOuterLoopLimit; outer++ {
		formattingIndex, ok := tb.findActiveFormattingIndex(subject)
		if !ok {
			return
		}
		formattingElement := tb.activeFormatting[formattingIndex].node
		if formattingElement == nil {
			tb.removeFormattingEntry(formattingIndex)
			return
		}

		formattingInOpenIndex, onStack := tb.indexOfOpenElement(formattingElement)
		if !onStack {
			tb.removeFormattingEntry(formattingIndex)
			return
		}
		if !tb.hasElementInScope(formattingElement.TagName, constants.DefaultScope) {
			return
		}

		furthestBlock := tb.firstSpecialElementAfter(formattingInOpenIndex)
		if furthestBlock == nil {
			tb.popThrough(formattingElement)
			tb.removeFormattingEntry(formattingIndex)
			return
		}

		bookmark := formattingIndex + 1
		lastNode := tb.runAdoptionInnerLoop(formattingElement, furthestBlock, &bookmark)

		commonAncestor := tb.openElements[formattingInOpenIndex-1]
		detachFromParent(lastNode)
		lastNode.ParseFlags |= dom.FlagAdoptionReparented
		if shouldFosterParent(commonAncestor) {
			lastNode.ParseFlags |= dom.FlagFosterParented
			tb.insertFosterNode(lastNode)
		} else {
			commonAncestor.AppendChild(lastNode)
		}

		newFormattingElement := tb.cloneFormattingEntry(tb.activeFormatting[formattingIndex])
		tb.activeFormatting[formattingIndex].node = newFormattingElement
		newFormattingElement.ParseFlags |= dom.FlagAdoptionReparented
		adoptAllChildren(newFormattingElement, furthestBlock)
		furthestBlock.AppendChild(newFormattingElement)

		tb.relocateFormattingEntry(formattingIndex, bookmark)

		if idx, ok := tb.indexOfOpenElement(formattingElement); ok {
			tb.removeOpenElementAt(idx)
		}
		tb.insertOpenElementAt(tb.mustIndexOfOpenElement(furthestBlock)+1, newFormattingElement)
	}
}

func (tb *TreeBuilder) firstSpecialElementAfter(openIndex int) *dom.Element {
	for i := openIndex + 1; i < len(tb.openElements); i++ {
		if isSpecialElement(tb.openElements[i]) {
			return tb.openElements[i]
		}
	}
	return nil
}

func (tb *TreeBuilder) popThrough(target *dom.Element) {
	for len(tb.openElements) > 0 {
		if tb.popCurrent() == target {
			return
		}
	}
}

// runAdoptionInnerLoop walks from furthestBlock up toward formattingElement,
// cloning each active-formatting node it passes and relinking the chain
// under the previous clone (WHATWG §13.2.5.2.5 steps 10-10.9). It returns
// the final lastNode and advances *bookmark per step 10.5.
func (tb *TreeBuilder) runAdoptionInnerLoop(formattingElement, furthestBlock *dom.Element, bookmark *int) *dom.Element {
	node, lastNode := furthestBlock, furthestBlock

	for iteration := 0; ; iteration++ {
		nodeIndex, ok := tb.indexOfOpenElement(node)
		if !ok || nodeIndex == 0 {
			return lastNode
		}
		node = tb.openElements[nodeIndex-1]
		if node == formattingElement {
			return lastNode
		}

		nodeFormattingIndex, hasEntry := tb.findActiveFormattingIndexByNode(node)
		if iteration >= adoptionInnerLoopNoahsArkLimit && hasEntry {
			tb.removeFormattingEntry(nodeFormattingIndex)
			if nodeFormattingIndex < *bookmark {
				*bookmark--
			}
			hasEntry = false
		}

		if !hasEntry {
			idx, ok := tb.indexOfOpenElement(node)
			if !ok {
				return lastNode
			}
			tb.removeOpenElementAt(idx)
			if idx < len(tb.openElements) {
				node = tb.openElements[idx]
			}
			continue
		}

		entry := tb.activeFormatting[nodeFormattingIndex]
		replacement := tb.cloneFormattingEntry(entry)
		tb.activeFormatting[nodeFormattingIndex].node = replacement
		tb.openElements[tb.mustIndexOfOpenElement(node)] = replacement
		node = replacement

		if lastNode == furthestBlock {
			*bookmark = nodeFormattingIndex + 1
		}

		detachFromParent(lastNode)
		node.AppendChild(lastNode)
		lastNode = node
	}
}

func (tb *TreeBuilder) cloneFormattingEntry(entry formattingEntry) *dom.Element {
	clone := tb.nodeAlloc.NewElement(entry.name)
	for _, a := range entry.attrs {
		clone.SetAttr(a.Name, a.Value)
	}
	return clone
}

func detachFromParent(node dom.Node) {
	if p := node.Parent(); p != nil {
		p.RemoveChild(node)
	}
}

func adoptAllChildren(dst, src *dom.Element) {
	for {
		children := src.Children()
		if len(children) == 0 {
			return
		}
		child := children[0]
		src.RemoveChild(child)
		dst.AppendChild(child)
	}
}

// relocateFormattingEntry removes the entry at index and reinserts it at
// bookmark (step 14), clamping bookmark to the list's bounds after the
// removal shifts indices down by one.
func (tb *TreeBuilder) relocateFormattingEntry(index, bookmark int) {
	entry := tb.activeFormatting[index]
	tb.removeFormattingEntry(index)
	bookmark--
	switch {
	case bookmark < 0:
		bookmark = 0
	case bookmark > len(tb.activeFormatting):
		bookmark = len(tb.activeFormatting)
	}
	tb.activeFormatting = append(tb.activeFormatting, formattingEntry{})
	copy(tb.activeFormatting[bookmark+1:], tb.activeFormatting[bookmark:])
	tb.activeFormatting[bookmark] = entry
}

func isSpecialElement(el *dom.Element) bool {
	if el == nil || el.Namespace != dom.NamespaceHTML {
		return false
	}
	return constants.SpecialElements[el.TagName]
}

func shouldFosterParent(commonAncestor *dom.Element) bool {
	if commonAncestor == nil {
		return false
	}
	switch commonAncestor.TagName {
	case "table", "tbody", "tfoot", "thead", "tr":
		return true
	default:
		return false
	}
}

// insertFosterNode places node just before the deepest open <table> element,
// or appends to the current node/document when none is open (WHATWG
// §13.2.6.1's "foster parenting", reduced to the cases tree construction
// actually needs here).
func (tb *TreeBuilder) insertFosterNode(node dom.Node) {
	var tableEl *dom.Element
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		if tb.openElements[i].TagName == "table" && tb.openElements[i].Namespace == dom.NamespaceHTML {
			tableEl = tb.openElements[i]
			break
		}
	}
	if tableEl == nil {
		tb.currentNode().AppendChild(node)
		return
	}
	parent := tableEl.Parent()
	if parent == nil {
		tb.document.AppendChild(node)
		return
	}
	parent.InsertBefore(node, tableEl)
}

func (tb *TreeBuilder) indexOfOpenElement(target *dom.Element) (int, bool) {
	for i, el := range tb.openElements {
		if el == target {
			return i, true
		}
	}
	return -1, false
}

func (tb *TreeBuilder) mustIndexOfOpenElement(target *dom.Element) int {
	idx, ok := tb.indexOfOpenElement(target)
	if !ok {
		panic("treebuilder: expected element on open element stack")
	}
	return idx
}

func (tb *TreeBuilder) removeOpenElementAt(index int) {
	if index < 0 || index >= len(tb.openElements) {
		return
	}
	copy(tb.openElements[index:], tb.openElements[index+1:])
	tb.openElements = tb.openElements[:len(tb.openElements)-1]
}

func (tb *TreeBuilder) insertOpenElementAt(index int, el *dom.Element) {
	if index < 0 {
		index = 0
	}
	if index > len(tb.openElements) {
		index = len(tb.openElements)
	}
	tb.openElements = append(tb.openElements, nil)
	copy(tb.openElements[index+1:], tb.openElements[index:])
	tb.openElements[index] = el
}
