//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package yamlh

import (
	"fmt"
)

type TagDirective struct {
	Handle []byte // The tag Handle.
	Prefix []byte // The tag Prefix.
}

type Encoding int

// The stream encoding.
const (
	// Let the scanner choose the encoding.
	ANY_ENCODING Encoding = iota

	UTF8_ENCODING    // The default UTF-8 encoding.
	UTF16LE_ENCODING // The UTF-16-LE encoding with BOM.
	UTF16BE_ENCODING // The UTF-16-BE encoding with BOM.
	UTF32LE_ENCODING // The UTF-32-LE encoding with BOM.
	UTF32BE_ENCODING // The UTF-32-BE encoding with BOM.
)

// Position is the pointer position.
type Position struct {
	Index  int // The position Index.
	Line   int // The position Line.
	Column int // The position Column.
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line+1, p.Column+1)
}

type YamlStyle int8

type YamlScalarStyle YamlStyle

// Scalar styles.
const (
	// Let the emitter choose the style.
	ANY_SCALAR_STYLE YamlScalarStyle = 0

	PLAIN_SCALAR_STYLE         YamlScalarStyle = 1 << iota // The plain scalar style.
	SINGLE_QUOTED_SCALAR_STYLE                             // The single-quoted scalar style.
	DOUBLE_QUOTED_SCALAR_STYLE                             // The double-quoted scalar style.
	LITERAL_SCALAR_STYLE                                   // The literal scalar style.
	FOLDED_SCALAR_STYLE                                    // The folded scalar style.
)

type YamlSequenceStyle YamlStyle

// Sequence styles.
const (
	ANY_SEQUENCE_STYLE YamlSequenceStyle = iota

	BLOCK_SEQUENCE_STYLE // The block sequence style.
	FLOW_SEQUENCE_STYLE  // The flow sequence style.
)

type YamlMappingStyle YamlStyle

// Mapping styles.
const (
	ANY_MAPPING_STYLE YamlMappingStyle = iota

	BLOCK_MAPPING_STYLE // The block mapping style.
	FLOW_MAPPING_STYLE  // The flow mapping style.
)

type DirectiveType int

// Directive kinds carried by DIRECTIVE_TOKEN.
const (
	YAML_DIRECTIVE     DirectiveType = iota // A %YAML directive.
	TAG_DIRECTIVE                           // A %TAG directive.
	RESERVED_DIRECTIVE                      // Any other directive name.
)

type TokenType int

// Token types.
const (
	// An empty token.
	NO_TOKEN TokenType = iota

	STREAM_START_TOKEN // A STREAM-START token.
	STREAM_END_TOKEN   // A STREAM-END token.

	DIRECTIVE_TOKEN      // A DIRECTIVE token.
	DOCUMENT_START_TOKEN // A DOCUMENT-START token.
	DOCUMENT_END_TOKEN   // A DOCUMENT-END token.

	BLOCK_SEQUENCE_START_TOKEN // A BLOCK-SEQUENCE-START token.
	BLOCK_MAPPING_START_TOKEN  // A BLOCK-MAPPING-START token.
	BLOCK_END_TOKEN            // A BLOCK-END token.

	FLOW_SEQUENCE_START_TOKEN // A FLOW-SEQUENCE-START token.
	FLOW_SEQUENCE_END_TOKEN   // A FLOW-SEQUENCE-END token.
	FLOW_MAPPING_START_TOKEN  // A FLOW-MAPPING-START token.
	FLOW_MAPPING_END_TOKEN    // A FLOW-MAPPING-END token.

	BLOCK_ENTRY_TOKEN // A BLOCK-ENTRY token.
	FLOW_ENTRY_TOKEN  // A FLOW-ENTRY token.
	KEY_TOKEN         // A KEY token.
	VALUE_TOKEN       // A VALUE token.

	ALIAS_TOKEN  // An ALIAS token.
	ANCHOR_TOKEN // An ANCHOR token.
	TAG_TOKEN    // A TAG token.
	SCALAR_TOKEN // A SCALAR token.
)

func (tt TokenType) String() string {
	switch tt {
	case NO_TOKEN:
		return "NO_TOKEN"
	case STREAM_START_TOKEN:
		return "STREAM_START_TOKEN"
	case STREAM_END_TOKEN:
		return "STREAM_END_TOKEN"
	case DIRECTIVE_TOKEN:
		return "DIRECTIVE_TOKEN"
	case DOCUMENT_START_TOKEN:
		return "DOCUMENT_START_TOKEN"
	case DOCUMENT_END_TOKEN:
		return "DOCUMENT_END_TOKEN"
	case BLOCK_SEQUENCE_START_TOKEN:
		return "BLOCK_SEQUENCE_START_TOKEN"
	case BLOCK_MAPPING_START_TOKEN:
		return "BLOCK_MAPPING_START_TOKEN"
	case BLOCK_END_TOKEN:
		return "BLOCK_END_TOKEN"
	case FLOW_SEQUENCE_START_TOKEN:
		return "FLOW_SEQUENCE_START_TOKEN"
	case FLOW_SEQUENCE_END_TOKEN:
		return "FLOW_SEQUENCE_END_TOKEN"
	case FLOW_MAPPING_START_TOKEN:
		return "FLOW_MAPPING_START_TOKEN"
	case FLOW_MAPPING_END_TOKEN:
		return "FLOW_MAPPING_END_TOKEN"
	case BLOCK_ENTRY_TOKEN:
		return "BLOCK_ENTRY_TOKEN"
	case FLOW_ENTRY_TOKEN:
		return "FLOW_ENTRY_TOKEN"
	case KEY_TOKEN:
		return "KEY_TOKEN"
	case VALUE_TOKEN:
		return "VALUE_TOKEN"
	case ALIAS_TOKEN:
		return "ALIAS_TOKEN"
	case ANCHOR_TOKEN:
		return "ANCHOR_TOKEN"
	case TAG_TOKEN:
		return "TAG_TOKEN"
	case SCALAR_TOKEN:
		return "SCALAR_TOKEN"
	}
	return "<unknown token>"
}

var tokenNames = []string{
	NO_TOKEN:                   "none",
	STREAM_START_TOKEN:         "stream start",
	STREAM_END_TOKEN:           "stream end",
	DIRECTIVE_TOKEN:            "directive",
	DOCUMENT_START_TOKEN:       "document start",
	DOCUMENT_END_TOKEN:         "document end",
	BLOCK_SEQUENCE_START_TOKEN: "block sequence start",
	BLOCK_MAPPING_START_TOKEN:  "block mapping start",
	BLOCK_END_TOKEN:            "block end",
	FLOW_SEQUENCE_START_TOKEN:  "flow sequence start",
	FLOW_SEQUENCE_END_TOKEN:    "flow sequence end",
	FLOW_MAPPING_START_TOKEN:   "flow mapping start",
	FLOW_MAPPING_END_TOKEN:     "flow mapping end",
	BLOCK_ENTRY_TOKEN:          "block entry",
	FLOW_ENTRY_TOKEN:           "flow entry",
	KEY_TOKEN:                  "key",
	VALUE_TOKEN:                "value",
	ALIAS_TOKEN:                "alias",
	ANCHOR_TOKEN:               "anchor",
	TAG_TOKEN:                  "tag",
	SCALAR_TOKEN:               "scalar",
}

// Name returns the human-readable token name used in error messages.
func (tt TokenType) Name() string {
	if tt < 0 || int(tt) >= len(tokenNames) {
		return fmt.Sprintf("unknown token %d", tt)
	}
	return tokenNames[tt]
}

type YamlToken struct {
	// The token type.
	Type TokenType

	// The start/end of the token.
	Start_mark, End_mark Position

	// The stream Encoding (for STREAM_START_TOKEN).
	Encoding Encoding

	// The alias/anchor/scalar value, the tag handle+suffix, or the
	// directive payload (for ALIAS_TOKEN, ANCHOR_TOKEN, SCALAR_TOKEN,
	// TAG_TOKEN, DIRECTIVE_TOKEN).
	Value []byte

	// The index splitting Value into its two halves: handle/suffix for
	// TAG_TOKEN, handle/prefix for a %TAG DIRECTIVE_TOKEN.
	Value_divider int

	// The directive kind (for DIRECTIVE_TOKEN).
	Directive_type DirectiveType

	// The scalar Style (for SCALAR_TOKEN).
	Style YamlScalarStyle
}

// TokenSource is the scanner side of the pipeline. The parser performs
// one-token lookahead through Peek_token and consumes through Get_token.
//
// Byte slices inside a token returned by Get_token belong to the caller.
// Slices of a peeked token stay valid until the token is consumed.
type TokenSource interface {
	// Check_token reports whether the next token's type is one of types
	// without consuming it. With no arguments it reports whether any
	// token remains.
	Check_token(types ...TokenType) bool

	// Peek_token returns the next token without consuming it.
	Peek_token() (*YamlToken, error)

	// Get_token consumes and returns the next token.
	Get_token() (*YamlToken, error)
}

type EventType int8

// Event types.
const (
	NO_EVENT EventType = iota

	STREAM_START_EVENT   // A STREAM-START event.
	STREAM_END_EVENT     // A STREAM-END event.
	DOCUMENT_START_EVENT // A DOCUMENT-START event.
	DOCUMENT_END_EVENT   // A DOCUMENT-END event.
	ALIAS_EVENT          // An ALIAS event.
	SCALAR_EVENT         // A SCALAR event.
	SEQUENCE_START_EVENT // A SEQUENCE-START event.
	SEQUENCE_END_EVENT   // A SEQUENCE-END event.
	MAPPING_START_EVENT  // A MAPPING-START event.
	MAPPING_END_EVENT    // A MAPPING-END event.
)

var eventStrings = []string{
	NO_EVENT:             "none",
	STREAM_START_EVENT:   "stream start",
	STREAM_END_EVENT:     "stream end",
	DOCUMENT_START_EVENT: "document start",
	DOCUMENT_END_EVENT:   "document end",
	ALIAS_EVENT:          "alias",
	SCALAR_EVENT:         "scalar",
	SEQUENCE_START_EVENT: "sequence start",
	SEQUENCE_END_EVENT:   "sequence end",
	MAPPING_START_EVENT:  "mapping start",
	MAPPING_END_EVENT:    "mapping end",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventStrings) {
		return fmt.Sprintf("unknown event %d", e)
	}
	return eventStrings[e]
}

// The Event structure.
type Event struct {
	// The event type.
	Type EventType

	// The start and end of the event.
	Start_mark, End_mark Position

	// The document Encoding (for STREAM_START_EVENT).
	Encoding Encoding

	// The %YAML directive value (for DOCUMENT_START_EVENT).
	Yaml_version []byte

	// The list of tag directives (for DOCUMENT_START_EVENT).
	Tag_directives []TagDirective

	// The Anchor (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT, ALIAS_EVENT).
	Anchor []byte

	// The Tag (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT).
	Tag []byte

	// The scalar Value (for SCALAR_EVENT).
	Value []byte

	// Is the document start/end indicator Implicit, or the Tag optional?
	// (for DOCUMENT_START_EVENT, DOCUMENT_END_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT, SCALAR_EVENT).
	Implicit bool

	// Is the Tag optional for any non-plain style? (for SCALAR_EVENT).
	Quoted_implicit bool

	// The Style (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT).
	Style YamlStyle
}

func (e *Event) Scalar_style() YamlScalarStyle     { return YamlScalarStyle(e.Style) }
func (e *Event) Sequence_style() YamlSequenceStyle { return YamlSequenceStyle(e.Style) }
func (e *Event) Mapping_style() YamlMappingStyle   { return YamlMappingStyle(e.Style) }
