package dom

import "github.com/go-html5-parser/html5parser/internal/sourcepos"

// leaf implements the child-management side of Node for node kinds that can
// never have children of their own (text, comment and DOCTYPE nodes).
// Embedding it means Text, Comment and DocumentType only need to supply
// Type, their own fields and Clone.
type leaf struct {
	parent Node
	index  int
}

func (l *leaf) Parent() Node              { return l.parent }
func (l *leaf) SetParent(parent Node)     { l.parent = parent }
func (l *leaf) IndexWithinParent() int    { return l.index }
func (l *leaf) setIndexWithinParent(i int) { l.index = i }
func (l *leaf) Children() []Node         { return nil }
func (l *leaf) HasChildNodes() bool      { return false }
func (l *leaf) AppendChild(_ Node)       {}
func (l *leaf) InsertBefore(_, _ Node)   {}
func (l *leaf) RemoveChild(_ Node)       {}
func (l *leaf) ReplaceChild(_, _ Node) Node { return nil }

// Text is a run of character data between markup.
type Text struct {
	leaf
	Data string

	// Pos is where the run started in the input; OriginalText is the
	// verbatim source it was decoded from (before character-reference and
	// newline normalization).
	Pos          sourcepos.Position
	OriginalText string
}

// NewText returns a text node holding data.
func NewText(data string) *Text {
	return &Text{Data: data}
}

func (t *Text) Type() NodeType { return TextNodeType }

// Clone returns an independent copy of t. Text nodes have no children, so
// deep has no effect.
func (t *Text) Clone(_ bool) Node {
	return &Text{Data: t.Data}
}

// Comment is a comment node, holding the text between "<!--" and "-->".
type Comment struct {
	leaf
	Data string

	Pos          sourcepos.Position
	OriginalText string
}

// NewComment returns a comment node holding data.
func NewComment(data string) *Comment {
	return &Comment{Data: data}
}

func (c *Comment) Type() NodeType { return CommentNodeType }

// Clone returns an independent copy of c. Comment nodes have no children, so
// deep has no effect.
func (c *Comment) Clone(_ bool) Node {
	return &Comment{Data: c.Data}
}
