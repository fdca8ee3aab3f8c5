// Package yaml implements the event layer of a YAML 1.1/1.2 reading
// pipeline: a pull parser that turns a scanner's token stream into a flat
// sequence of parse events for a downstream composer.
//
// The scanner is supplied by the caller through the TokenSource contract;
// the parser enforces the YAML grammar on top of it, resolves tag handles
// against %TAG directives, tracks document boundaries, and decodes
// double-quoted escape sequences.
package yaml

import (
	"github.com/cporter/yaml/internal/parserc"
	"github.com/cporter/yaml/internal/yamlh"
)

// Pipeline types shared with the scanner above and the composer below.
type (
	Event        = yamlh.Event
	EventType    = yamlh.EventType
	Token        = yamlh.YamlToken
	TokenType    = yamlh.TokenType
	TokenSource  = yamlh.TokenSource
	Position     = yamlh.Position
	TagDirective = yamlh.TagDirective
	Encoding     = yamlh.Encoding
	ParserError  = parserc.ParserError
)

// Event types.
const (
	NO_EVENT             = yamlh.NO_EVENT
	STREAM_START_EVENT   = yamlh.STREAM_START_EVENT
	STREAM_END_EVENT     = yamlh.STREAM_END_EVENT
	DOCUMENT_START_EVENT = yamlh.DOCUMENT_START_EVENT
	DOCUMENT_END_EVENT   = yamlh.DOCUMENT_END_EVENT
	ALIAS_EVENT          = yamlh.ALIAS_EVENT
	SCALAR_EVENT         = yamlh.SCALAR_EVENT
	SEQUENCE_START_EVENT = yamlh.SEQUENCE_START_EVENT
	SEQUENCE_END_EVENT   = yamlh.SEQUENCE_END_EVENT
	MAPPING_START_EVENT  = yamlh.MAPPING_START_EVENT
	MAPPING_END_EVENT    = yamlh.MAPPING_END_EVENT
)

// Token types.
const (
	NO_TOKEN                   = yamlh.NO_TOKEN
	STREAM_START_TOKEN         = yamlh.STREAM_START_TOKEN
	STREAM_END_TOKEN           = yamlh.STREAM_END_TOKEN
	DIRECTIVE_TOKEN            = yamlh.DIRECTIVE_TOKEN
	DOCUMENT_START_TOKEN       = yamlh.DOCUMENT_START_TOKEN
	DOCUMENT_END_TOKEN         = yamlh.DOCUMENT_END_TOKEN
	BLOCK_SEQUENCE_START_TOKEN = yamlh.BLOCK_SEQUENCE_START_TOKEN
	BLOCK_MAPPING_START_TOKEN  = yamlh.BLOCK_MAPPING_START_TOKEN
	BLOCK_END_TOKEN            = yamlh.BLOCK_END_TOKEN
	FLOW_SEQUENCE_START_TOKEN  = yamlh.FLOW_SEQUENCE_START_TOKEN
	FLOW_SEQUENCE_END_TOKEN    = yamlh.FLOW_SEQUENCE_END_TOKEN
	FLOW_MAPPING_START_TOKEN   = yamlh.FLOW_MAPPING_START_TOKEN
	FLOW_MAPPING_END_TOKEN     = yamlh.FLOW_MAPPING_END_TOKEN
	BLOCK_ENTRY_TOKEN          = yamlh.BLOCK_ENTRY_TOKEN
	FLOW_ENTRY_TOKEN           = yamlh.FLOW_ENTRY_TOKEN
	KEY_TOKEN                  = yamlh.KEY_TOKEN
	VALUE_TOKEN                = yamlh.VALUE_TOKEN
	ALIAS_TOKEN                = yamlh.ALIAS_TOKEN
	ANCHOR_TOKEN               = yamlh.ANCHOR_TOKEN
	TAG_TOKEN                  = yamlh.TAG_TOKEN
	SCALAR_TOKEN               = yamlh.SCALAR_TOKEN
)

// Directive kinds.
const (
	YAML_DIRECTIVE     = yamlh.YAML_DIRECTIVE
	TAG_DIRECTIVE      = yamlh.TAG_DIRECTIVE
	RESERVED_DIRECTIVE = yamlh.RESERVED_DIRECTIVE
)

// Scalar styles.
const (
	ANY_SCALAR_STYLE           = yamlh.ANY_SCALAR_STYLE
	PLAIN_SCALAR_STYLE         = yamlh.PLAIN_SCALAR_STYLE
	SINGLE_QUOTED_SCALAR_STYLE = yamlh.SINGLE_QUOTED_SCALAR_STYLE
	DOUBLE_QUOTED_SCALAR_STYLE = yamlh.DOUBLE_QUOTED_SCALAR_STYLE
	LITERAL_SCALAR_STYLE       = yamlh.LITERAL_SCALAR_STYLE
	FOLDED_SCALAR_STYLE        = yamlh.FOLDED_SCALAR_STYLE
)

// Collection styles.
const (
	BLOCK_SEQUENCE_STYLE = yamlh.BLOCK_SEQUENCE_STYLE
	FLOW_SEQUENCE_STYLE  = yamlh.FLOW_SEQUENCE_STYLE
	BLOCK_MAPPING_STYLE  = yamlh.BLOCK_MAPPING_STYLE
	FLOW_MAPPING_STYLE   = yamlh.FLOW_MAPPING_STYLE
)

// Stream encodings.
const (
	ANY_ENCODING     = yamlh.ANY_ENCODING
	UTF8_ENCODING    = yamlh.UTF8_ENCODING
	UTF16LE_ENCODING = yamlh.UTF16LE_ENCODING
	UTF16BE_ENCODING = yamlh.UTF16BE_ENCODING
	UTF32LE_ENCODING = yamlh.UTF32LE_ENCODING
	UTF32BE_ENCODING = yamlh.UTF32BE_ENCODING
)

// Parser produces parse events on demand from a token source. It keeps at
// most one event pre-computed so the next event can be inspected without
// being consumed.
type Parser struct {
	parser *parserc.YamlParser
}

// NewParser returns a parser reading tokens from src. The parser owns src
// for its lifetime; event payloads stay valid as long as src's buffers do.
func NewParser(src TokenSource) *Parser {
	return &Parser{parser: parserc.New(src)}
}

// CheckEvent reports whether the next event's type is one of types,
// producing it if necessary. With no arguments it reports whether any event
// remains. It returns false, not an error, once STREAM-END has been
// consumed.
func (p *Parser) CheckEvent(types ...EventType) (bool, error) {
	return parserc.Check_event(p.parser, types...)
}

// PeekEvent returns the next event without consuming it. It must not be
// called after the STREAM-END event has been returned by NextEvent.
func (p *Parser) PeekEvent() (*Event, error) {
	return parserc.Peek_event(p.parser)
}

// NextEvent returns the next event and advances past it. It must not be
// called after the STREAM-END event has been returned.
func (p *Parser) NextEvent() (*Event, error) {
	return parserc.Next_event(p.parser)
}
