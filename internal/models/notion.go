package models

// Notion block types written by the sync.
const (
	BlockTypeHeading2  = "heading_2"
	BlockTypeParagraph = "paragraph"
)

// PageUpdate is the body of PATCH /v1/pages/{id}.
type PageUpdate struct {
	Properties map[string]PropertyValue `json:"properties"`
}

// PropertyValue is a page property value. Only rich_text properties are
// written.
type PropertyValue struct {
	RichText []RichText `json:"rich_text"`
}

// RichText is a Notion rich text object of type "text".
type RichText struct {
	Type string   `json:"type,omitempty"`
	Text TextSpan `json:"text"`
}

// TextSpan holds the literal content of a rich text object.
type TextSpan struct {
	Content string `json:"content"`
}

// BlockChildren is the body of PATCH /v1/blocks/{id}/children.
type BlockChildren struct {
	Children []Block `json:"children"`
}

// Block is a Notion block. Exactly one of the typed fields is set,
// matching Type.
type Block struct {
	Object    string        `json:"object"`
	Type      string        `json:"type"`
	Heading2  *BlockContent `json:"heading_2,omitempty"`
	Paragraph *BlockContent `json:"paragraph,omitempty"`
}

// BlockContent is the rich text payload shared by heading and paragraph
// blocks.
type BlockContent struct {
	RichText []RichText `json:"rich_text"`
}

// NotionError is the error object Notion returns with non-2xx responses.
type NotionError struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
