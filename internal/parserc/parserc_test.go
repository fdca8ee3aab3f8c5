package parserc

import (
	"errors"
	"testing"

	"github.com/cporter/yaml/internal/yamlh"
	"github.com/stretchr/testify/require"
)

// tokenStream feeds a fixed token slice to the parser.
type tokenStream struct {
	tokens []yamlh.YamlToken
	head   int
}

func (s *tokenStream) Check_token(types ...yamlh.TokenType) bool {
	if s.head >= len(s.tokens) {
		return false
	}
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if s.tokens[s.head].Type == t {
			return true
		}
	}
	return false
}

func (s *tokenStream) Peek_token() (*yamlh.YamlToken, error) {
	if s.head >= len(s.tokens) {
		return nil, errors.New("no more tokens")
	}
	return &s.tokens[s.head], nil
}

func (s *tokenStream) Get_token() (*yamlh.YamlToken, error) {
	token, err := s.Peek_token()
	if err == nil {
		s.head++
	}
	return token, err
}

func at(line, column int) yamlh.Position {
	return yamlh.Position{Index: line*100 + column, Line: line, Column: column}
}

func tok(t yamlh.TokenType) yamlh.YamlToken {
	return yamlh.YamlToken{Type: t}
}

func tokAt(t yamlh.TokenType, mark yamlh.Position) yamlh.YamlToken {
	return yamlh.YamlToken{Type: t, Start_mark: mark, End_mark: mark}
}

func scalarTok(value string, style yamlh.YamlScalarStyle) yamlh.YamlToken {
	return yamlh.YamlToken{Type: yamlh.SCALAR_TOKEN, Value: []byte(value), Style: style}
}

func aliasTok(anchor string) yamlh.YamlToken {
	return yamlh.YamlToken{Type: yamlh.ALIAS_TOKEN, Value: []byte(anchor)}
}

func anchorTok(anchor string) yamlh.YamlToken {
	return yamlh.YamlToken{Type: yamlh.ANCHOR_TOKEN, Value: []byte(anchor)}
}

func tagTok(handle, suffix string) yamlh.YamlToken {
	return yamlh.YamlToken{
		Type:          yamlh.TAG_TOKEN,
		Value:         []byte(handle + suffix),
		Value_divider: len(handle),
	}
}

func yamlDirectiveTok(version string) yamlh.YamlToken {
	return yamlh.YamlToken{
		Type:           yamlh.DIRECTIVE_TOKEN,
		Directive_type: yamlh.YAML_DIRECTIVE,
		Value:          []byte(version),
	}
}

func tagDirectiveTok(handle, prefix string) yamlh.YamlToken {
	return yamlh.YamlToken{
		Type:           yamlh.DIRECTIVE_TOKEN,
		Directive_type: yamlh.TAG_DIRECTIVE,
		Value:          []byte(handle + prefix),
		Value_divider:  len(handle),
	}
}

// stream wraps tokens with STREAM-START and STREAM-END.
func stream(tokens ...yamlh.YamlToken) []yamlh.YamlToken {
	all := []yamlh.YamlToken{{Type: yamlh.STREAM_START_TOKEN, Encoding: yamlh.UTF8_ENCODING}}
	all = append(all, tokens...)
	return append(all, tok(yamlh.STREAM_END_TOKEN))
}

func parseAll(t *testing.T, tokens []yamlh.YamlToken) []*yamlh.Event {
	t.Helper()
	parser := New(&tokenStream{tokens: tokens})
	var events []*yamlh.Event
	for {
		event, err := Next_event(parser)
		require.NoError(t, err)
		events = append(events, event)
		if event.Type == yamlh.STREAM_END_EVENT {
			require.Empty(t, parser.States)
			require.Empty(t, parser.Marks)
			return events
		}
	}
}

func parseError(t *testing.T, tokens []yamlh.YamlToken) *ParserError {
	t.Helper()
	parser := New(&tokenStream{tokens: tokens})
	for {
		event, err := Next_event(parser)
		if err != nil {
			var perr *ParserError
			require.ErrorAs(t, err, &perr)
			return perr
		}
		require.NotEqual(t, yamlh.STREAM_END_EVENT, event.Type, "stream ended without error")
	}
}

func eventTypes(events []*yamlh.Event) []yamlh.EventType {
	types := make([]yamlh.EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func TestParseEmptyStream(t *testing.T) {
	events := parseAll(t, stream())
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.STREAM_END_EVENT,
	}, eventTypes(events))
	require.Equal(t, yamlh.UTF8_ENCODING, events[0].Encoding)
}

func TestParseImplicitDocumentScalar(t *testing.T) {
	events := parseAll(t, stream(scalarTok("foo", yamlh.PLAIN_SCALAR_STYLE)))
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.SCALAR_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.STREAM_END_EVENT,
	}, eventTypes(events))

	require.True(t, events[1].Implicit)
	require.Nil(t, events[1].Yaml_version)
	require.Empty(t, events[1].Tag_directives)

	scalar := events[2]
	require.Equal(t, "foo", string(scalar.Value))
	require.Equal(t, yamlh.PLAIN_SCALAR_STYLE, scalar.Scalar_style())
	require.True(t, scalar.Implicit)
	require.False(t, scalar.Quoted_implicit)

	require.True(t, events[3].Implicit)
}

func TestParseExplicitEmptyDocument(t *testing.T) {
	events := parseAll(t, stream(
		tok(yamlh.DOCUMENT_START_TOKEN),
		tok(yamlh.DOCUMENT_END_TOKEN),
	))
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.SCALAR_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.STREAM_END_EVENT,
	}, eventTypes(events))

	require.False(t, events[1].Implicit)

	// The missing content is synthesised as an empty plain scalar.
	scalar := events[2]
	require.Empty(t, scalar.Value)
	require.Equal(t, yamlh.PLAIN_SCALAR_STYLE, scalar.Scalar_style())
	require.True(t, scalar.Implicit)
	require.False(t, scalar.Quoted_implicit)

	require.False(t, events[3].Implicit)
}

func TestParseDirectives(t *testing.T) {
	events := parseAll(t, stream(
		yamlDirectiveTok("1.1"),
		tagDirectiveTok("!yaml!", "tag:yaml.org,2002:"),
		tok(yamlh.DOCUMENT_START_TOKEN),
		tagTok("!yaml!", "str"),
		scalarTok("foo", yamlh.PLAIN_SCALAR_STYLE),
	))
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.SCALAR_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.STREAM_END_EVENT,
	}, eventTypes(events))

	doc := events[1]
	require.False(t, doc.Implicit)
	require.Equal(t, "1.1", string(doc.Yaml_version))
	require.Len(t, doc.Tag_directives, 1)
	require.Equal(t, "!yaml!", string(doc.Tag_directives[0].Handle))
	require.Equal(t, "tag:yaml.org,2002:", string(doc.Tag_directives[0].Prefix))

	scalar := events[2]
	require.Equal(t, "tag:yaml.org,2002:str", string(scalar.Tag))
	require.Equal(t, "foo", string(scalar.Value))
	require.False(t, scalar.Implicit)
	require.False(t, scalar.Quoted_implicit)
}

func TestParseDefaultHandlesSurviveTagDirective(t *testing.T) {
	// A %TAG for one handle must not shadow the built-in ! and !! handles.
	events := parseAll(t, stream(
		tagDirectiveTok("!e!", "tag:example.com,2011:"),
		tok(yamlh.DOCUMENT_START_TOKEN),
		tok(yamlh.BLOCK_SEQUENCE_START_TOKEN),
		tok(yamlh.BLOCK_ENTRY_TOKEN),
		tagTok("!!", "str"),
		scalarTok("a", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.BLOCK_ENTRY_TOKEN),
		tagTok("!", "local"),
		scalarTok("b", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.BLOCK_ENTRY_TOKEN),
		tagTok("!e!", "thing"),
		scalarTok("c", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.BLOCK_END_TOKEN),
	))

	require.Equal(t, "tag:yaml.org,2002:str", string(events[3].Tag))
	require.Equal(t, "!local", string(events[4].Tag))
	require.Equal(t, "tag:example.com,2011:thing", string(events[5].Tag))
}

func TestParseTagDirectiveOverridesDefault(t *testing.T) {
	events := parseAll(t, stream(
		tagDirectiveTok("!!", "tag:example.com,2000:app/"),
		tok(yamlh.DOCUMENT_START_TOKEN),
		tagTok("!!", "int"),
		scalarTok("1", yamlh.PLAIN_SCALAR_STYLE),
	))

	doc := events[1]
	require.Len(t, doc.Tag_directives, 1)
	require.Equal(t, "!!", string(doc.Tag_directives[0].Handle))
	require.Equal(t, "tag:example.com,2000:app/int", string(events[2].Tag))
}

func TestParseVerbatimTag(t *testing.T) {
	// !<uri> arrives from the scanner with an empty handle.
	events := parseAll(t, stream(
		tagTok("", "tag:example.com,2011:custom"),
		scalarTok("x", yamlh.PLAIN_SCALAR_STYLE),
	))
	require.Equal(t, "tag:example.com,2011:custom", string(events[2].Tag))
}

func TestParseNonSpecificTag(t *testing.T) {
	// A bare ! resolves to itself and keeps the node implicit.
	events := parseAll(t, stream(
		tagTok("!", ""),
		scalarTok("x", yamlh.DOUBLE_QUOTED_SCALAR_STYLE),
	))
	scalar := events[2]
	require.Equal(t, "!", string(scalar.Tag))
	require.True(t, scalar.Implicit)
	require.False(t, scalar.Quoted_implicit)
}

func TestParseVersion12Accepted(t *testing.T) {
	events := parseAll(t, stream(
		yamlDirectiveTok("1.2"),
		tok(yamlh.DOCUMENT_START_TOKEN),
		scalarTok("x", yamlh.PLAIN_SCALAR_STYLE),
	))
	require.Equal(t, "1.2", string(events[1].Yaml_version))
}

func TestParseReservedDirectiveIgnored(t *testing.T) {
	reserved := yamlh.YamlToken{
		Type:           yamlh.DIRECTIVE_TOKEN,
		Directive_type: yamlh.RESERVED_DIRECTIVE,
		Value:          []byte("FOO bar"),
	}
	events := parseAll(t, stream(
		reserved,
		tok(yamlh.DOCUMENT_START_TOKEN),
		scalarTok("x", yamlh.PLAIN_SCALAR_STYLE),
	))
	require.Nil(t, events[1].Yaml_version)
	require.Empty(t, events[1].Tag_directives)
}

func TestParseDuplicateYamlDirective(t *testing.T) {
	perr := parseError(t, stream(
		yamlDirectiveTok("1.1"),
		yamlDirectiveTok("1.1"),
		tok(yamlh.DOCUMENT_START_TOKEN),
	))
	require.Equal(t, "Duplicate YAML directive", perr.Problem)
}

func TestParseIncompatibleVersion(t *testing.T) {
	perr := parseError(t, stream(
		yamlDirectiveTok("2.0"),
		tok(yamlh.DOCUMENT_START_TOKEN),
	))
	require.Equal(t, "Incompatible document (version 1.x is required)", perr.Problem)
}

func TestParseDuplicateTagHandle(t *testing.T) {
	perr := parseError(t, stream(
		tagDirectiveTok("!a!", "tag:one:"),
		tagDirectiveTok("!a!", "tag:two:"),
		tok(yamlh.DOCUMENT_START_TOKEN),
	))
	require.Equal(t, "Duplicate tag handle: !a!", perr.Problem)
}

func TestParseMissingDocumentStart(t *testing.T) {
	perr := parseError(t, stream(
		yamlDirectiveTok("1.1"),
		scalarTok("x", yamlh.PLAIN_SCALAR_STYLE),
	))
	require.Equal(t, "Expected document start but found: scalar", perr.Problem)
}

func TestParseUndefinedTagHandle(t *testing.T) {
	anchor := anchorTok("a")
	anchor.Start_mark = at(0, 0)
	anchor.End_mark = at(0, 2)
	tag := tagTok("!foo!", "bar")
	tag.Start_mark = at(0, 3)
	tag.End_mark = at(0, 11)

	perr := parseError(t, stream(
		anchor,
		tag,
		scalarTok("baz", yamlh.PLAIN_SCALAR_STYLE),
	))
	require.Equal(t, "While parsing a node", perr.Context)
	require.Equal(t, at(0, 0), perr.Context_mark)
	require.Equal(t, "found undefined tag handle: !foo!", perr.Problem)
	require.Equal(t, at(0, 3), perr.Problem_mark)
}

func TestParseBlockSequenceSparseEntry(t *testing.T) {
	events := parseAll(t, stream(
		tok(yamlh.BLOCK_SEQUENCE_START_TOKEN),
		tok(yamlh.BLOCK_ENTRY_TOKEN),
		scalarTok("a", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.BLOCK_ENTRY_TOKEN),
		tok(yamlh.BLOCK_ENTRY_TOKEN),
		scalarTok("c", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.BLOCK_END_TOKEN),
	))
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.SEQUENCE_START_EVENT,
		yamlh.SCALAR_EVENT,
		yamlh.SCALAR_EVENT,
		yamlh.SCALAR_EVENT,
		yamlh.SEQUENCE_END_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.STREAM_END_EVENT,
	}, eventTypes(events))

	require.Equal(t, yamlh.BLOCK_SEQUENCE_STYLE, events[2].Sequence_style())
	require.Equal(t, "a", string(events[3].Value))
	require.Empty(t, events[4].Value)
	require.True(t, events[4].Implicit)
	require.Equal(t, "c", string(events[5].Value))
}

func TestParseBlockMappingMissingValue(t *testing.T) {
	events := parseAll(t, stream(
		tok(yamlh.BLOCK_MAPPING_START_TOKEN),
		tok(yamlh.KEY_TOKEN),
		scalarTok("k", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.VALUE_TOKEN),
		scalarTok("v", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.KEY_TOKEN),
		scalarTok("k2", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.BLOCK_END_TOKEN),
	))
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.MAPPING_START_EVENT,
		yamlh.SCALAR_EVENT, // k
		yamlh.SCALAR_EVENT, // v
		yamlh.SCALAR_EVENT, // k2
		yamlh.SCALAR_EVENT, // synthesised empty value
		yamlh.MAPPING_END_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.STREAM_END_EVENT,
	}, eventTypes(events))

	require.Equal(t, yamlh.BLOCK_MAPPING_STYLE, events[2].Mapping_style())
	require.Empty(t, events[6].Value)
}

func TestParseIndentlessSequence(t *testing.T) {
	blockEnd := tokAt(yamlh.BLOCK_END_TOKEN, at(3, 0))
	events := parseAll(t, stream(
		tok(yamlh.BLOCK_MAPPING_START_TOKEN),
		tok(yamlh.KEY_TOKEN),
		scalarTok("k", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.VALUE_TOKEN),
		tok(yamlh.BLOCK_ENTRY_TOKEN),
		scalarTok("a", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.BLOCK_ENTRY_TOKEN),
		scalarTok("b", yamlh.PLAIN_SCALAR_STYLE),
		blockEnd,
	))
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.MAPPING_START_EVENT,
		yamlh.SCALAR_EVENT, // k
		yamlh.SEQUENCE_START_EVENT,
		yamlh.SCALAR_EVENT, // a
		yamlh.SCALAR_EVENT, // b
		yamlh.SEQUENCE_END_EVENT,
		yamlh.MAPPING_END_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.STREAM_END_EVENT,
	}, eventTypes(events))

	// The sequence end is zero-width at the boundary token.
	seqEnd := events[7]
	require.Equal(t, at(3, 0), seqEnd.Start_mark)
	require.Equal(t, at(3, 0), seqEnd.End_mark)
}

func TestParseFlowSequenceInlineMapping(t *testing.T) {
	events := parseAll(t, stream(
		tok(yamlh.FLOW_SEQUENCE_START_TOKEN),
		tok(yamlh.KEY_TOKEN),
		scalarTok("a", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.VALUE_TOKEN),
		scalarTok("b", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.FLOW_ENTRY_TOKEN),
		scalarTok("c", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.FLOW_SEQUENCE_END_TOKEN),
	))
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.SEQUENCE_START_EVENT,
		yamlh.MAPPING_START_EVENT,
		yamlh.SCALAR_EVENT, // a
		yamlh.SCALAR_EVENT, // b
		yamlh.MAPPING_END_EVENT,
		yamlh.SCALAR_EVENT, // c
		yamlh.SEQUENCE_END_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.STREAM_END_EVENT,
	}, eventTypes(events))

	mapping := events[3]
	require.Equal(t, yamlh.FLOW_MAPPING_STYLE, mapping.Mapping_style())
	require.True(t, mapping.Implicit)
	require.Nil(t, mapping.Anchor)
	require.Nil(t, mapping.Tag)
	require.Equal(t, yamlh.FLOW_SEQUENCE_STYLE, events[2].Sequence_style())
}

func TestParseFlowMappingSingletonEntry(t *testing.T) {
	events := parseAll(t, stream(
		tok(yamlh.FLOW_MAPPING_START_TOKEN),
		scalarTok("a", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.FLOW_MAPPING_END_TOKEN),
	))
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.MAPPING_START_EVENT,
		yamlh.SCALAR_EVENT, // a
		yamlh.SCALAR_EVENT, // synthesised empty value
		yamlh.MAPPING_END_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.STREAM_END_EVENT,
	}, eventTypes(events))
	require.Empty(t, events[4].Value)
}

func TestParseFlowMappingMissingValue(t *testing.T) {
	events := parseAll(t, stream(
		tok(yamlh.FLOW_MAPPING_START_TOKEN),
		tok(yamlh.KEY_TOKEN),
		scalarTok("a", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.FLOW_MAPPING_END_TOKEN),
	))
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.MAPPING_START_EVENT,
		yamlh.SCALAR_EVENT,
		yamlh.SCALAR_EVENT,
		yamlh.MAPPING_END_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.STREAM_END_EVENT,
	}, eventTypes(events))
}

func TestParseAnchorAndTagEitherOrder(t *testing.T) {
	anchorFirst := parseAll(t, stream(
		anchorTok("a"),
		tagTok("!!", "str"),
		scalarTok("x", yamlh.PLAIN_SCALAR_STYLE),
	))
	tagFirst := parseAll(t, stream(
		tagTok("!!", "str"),
		anchorTok("a"),
		scalarTok("x", yamlh.PLAIN_SCALAR_STYLE),
	))

	for _, events := range [][]*yamlh.Event{anchorFirst, tagFirst} {
		scalar := events[2]
		require.Equal(t, yamlh.SCALAR_EVENT, scalar.Type)
		require.Equal(t, "a", string(scalar.Anchor))
		require.Equal(t, "tag:yaml.org,2002:str", string(scalar.Tag))
	}
}

func TestParsePropertiesWithoutContent(t *testing.T) {
	// An anchor with nothing after it becomes an empty scalar node.
	events := parseAll(t, stream(anchorTok("a")))
	scalar := events[2]
	require.Equal(t, yamlh.SCALAR_EVENT, scalar.Type)
	require.Equal(t, "a", string(scalar.Anchor))
	require.Empty(t, scalar.Value)
	require.True(t, scalar.Implicit)
	require.False(t, scalar.Quoted_implicit)
}

func TestParseAlias(t *testing.T) {
	events := parseAll(t, stream(
		tok(yamlh.FLOW_SEQUENCE_START_TOKEN),
		anchorTok("a"),
		scalarTok("x", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.FLOW_ENTRY_TOKEN),
		aliasTok("a"),
		tok(yamlh.FLOW_SEQUENCE_END_TOKEN),
	))
	require.Equal(t, yamlh.ALIAS_EVENT, events[4].Type)
	require.NotEmpty(t, events[4].Anchor)
	require.Equal(t, "a", string(events[4].Anchor))
}

func TestParseMultipleDocuments(t *testing.T) {
	events := parseAll(t, stream(
		tok(yamlh.DOCUMENT_START_TOKEN),
		scalarTok("one", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.DOCUMENT_END_TOKEN),
		tok(yamlh.DOCUMENT_START_TOKEN),
		scalarTok("two", yamlh.PLAIN_SCALAR_STYLE),
	))
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.SCALAR_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.SCALAR_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.STREAM_END_EVENT,
	}, eventTypes(events))

	require.False(t, events[3].Implicit) // ... was present
	require.True(t, events[6].Implicit)  // final document end is implicit
}

func TestParseDirectivesResetBetweenDocuments(t *testing.T) {
	perr := parseError(t, stream(
		tagDirectiveTok("!e!", "tag:example.com,2011:"),
		tok(yamlh.DOCUMENT_START_TOKEN),
		tagTok("!e!", "one"),
		scalarTok("x", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.DOCUMENT_END_TOKEN),
		tok(yamlh.DOCUMENT_START_TOKEN),
		tagTok("!e!", "two"),
		scalarTok("y", yamlh.PLAIN_SCALAR_STYLE),
	))
	require.Equal(t, "found undefined tag handle: !e!", perr.Problem)
}

func TestParseDoubleQuotedScalarDecoded(t *testing.T) {
	events := parseAll(t, stream(
		scalarTok(`\x41é`, yamlh.DOUBLE_QUOTED_SCALAR_STYLE),
	))
	scalar := events[2]
	require.Equal(t, "Aé", string(scalar.Value))
	require.Equal(t, yamlh.DOUBLE_QUOTED_SCALAR_STYLE, scalar.Scalar_style())
	require.False(t, scalar.Implicit)
	require.True(t, scalar.Quoted_implicit)
}

func TestParseBlockSequenceError(t *testing.T) {
	opener := tokAt(yamlh.BLOCK_SEQUENCE_START_TOKEN, at(0, 0))
	bad := tokAt(yamlh.KEY_TOKEN, at(2, 0))
	perr := parseError(t, stream(
		opener,
		tok(yamlh.BLOCK_ENTRY_TOKEN),
		scalarTok("a", yamlh.PLAIN_SCALAR_STYLE),
		bad,
	))
	require.Equal(t, "While parsing a block collection", perr.Context)
	require.Equal(t, at(0, 0), perr.Context_mark)
	require.Equal(t, "expected block end, but found: key", perr.Problem)
	require.Equal(t, at(2, 0), perr.Problem_mark)
}

func TestParseFlowSequenceMissingComma(t *testing.T) {
	perr := parseError(t, stream(
		tok(yamlh.FLOW_SEQUENCE_START_TOKEN),
		scalarTok("a", yamlh.PLAIN_SCALAR_STYLE),
		scalarTok("b", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.FLOW_SEQUENCE_END_TOKEN),
	))
	require.Equal(t, "While parsing a flow sequence", perr.Context)
	require.Equal(t, "expected ',' or ']', but found: scalar", perr.Problem)
}

func TestParseFlowMappingMissingComma(t *testing.T) {
	perr := parseError(t, stream(
		tok(yamlh.FLOW_MAPPING_START_TOKEN),
		tok(yamlh.KEY_TOKEN),
		scalarTok("a", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.VALUE_TOKEN),
		scalarTok("b", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.KEY_TOKEN),
		tok(yamlh.FLOW_MAPPING_END_TOKEN),
	))
	require.Equal(t, "While parsing a flow mapping", perr.Context)
	require.Equal(t, "expected ',' or '}', but found: key", perr.Problem)
}

func TestParseNodeContentError(t *testing.T) {
	perr := parseError(t, stream(
		tok(yamlh.FLOW_SEQUENCE_START_TOKEN),
		tok(yamlh.VALUE_TOKEN),
	))
	require.Equal(t, "While parsing a node", perr.Context)
	require.Equal(t, "expected node content, but found: value", perr.Problem)
}

func TestParseDeterminism(t *testing.T) {
	tokens := stream(
		tok(yamlh.BLOCK_MAPPING_START_TOKEN),
		tok(yamlh.KEY_TOKEN),
		scalarTok("k", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.VALUE_TOKEN),
		tok(yamlh.FLOW_SEQUENCE_START_TOKEN),
		scalarTok("a", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.FLOW_ENTRY_TOKEN),
		scalarTok("b", yamlh.DOUBLE_QUOTED_SCALAR_STYLE),
		tok(yamlh.FLOW_SEQUENCE_END_TOKEN),
		tok(yamlh.BLOCK_END_TOKEN),
	)
	first := parseAll(t, tokens)
	second := parseAll(t, tokens)
	require.Equal(t, first, second)
}

func TestParseEventNesting(t *testing.T) {
	events := parseAll(t, stream(
		tok(yamlh.BLOCK_MAPPING_START_TOKEN),
		tok(yamlh.KEY_TOKEN),
		scalarTok("k", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.VALUE_TOKEN),
		tok(yamlh.FLOW_SEQUENCE_START_TOKEN),
		tok(yamlh.FLOW_MAPPING_START_TOKEN),
		tok(yamlh.KEY_TOKEN),
		scalarTok("a", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.VALUE_TOKEN),
		scalarTok("b", yamlh.PLAIN_SCALAR_STYLE),
		tok(yamlh.FLOW_MAPPING_END_TOKEN),
		tok(yamlh.FLOW_SEQUENCE_END_TOKEN),
		tok(yamlh.BLOCK_END_TOKEN),
	))

	var nesting []yamlh.EventType
	for _, event := range events {
		switch event.Type {
		case yamlh.STREAM_START_EVENT, yamlh.DOCUMENT_START_EVENT,
			yamlh.SEQUENCE_START_EVENT, yamlh.MAPPING_START_EVENT:
			nesting = append(nesting, event.Type)
		case yamlh.STREAM_END_EVENT, yamlh.DOCUMENT_END_EVENT,
			yamlh.SEQUENCE_END_EVENT, yamlh.MAPPING_END_EVENT:
			require.NotEmpty(t, nesting)
			open := nesting[len(nesting)-1]
			nesting = nesting[:len(nesting)-1]
			require.Equal(t, open+1, event.Type, "mismatched %s closing %s", event.Type, open)
		}
	}
	require.Empty(t, nesting)
}

func TestParseMarkOrdering(t *testing.T) {
	// Tokens laid out on one line, one column apart.
	tokens := []yamlh.YamlToken{
		{Type: yamlh.STREAM_START_TOKEN, Encoding: yamlh.UTF8_ENCODING, Start_mark: at(0, 0), End_mark: at(0, 0)},
		{Type: yamlh.FLOW_SEQUENCE_START_TOKEN, Start_mark: at(0, 0), End_mark: at(0, 1)},
		{Type: yamlh.SCALAR_TOKEN, Value: []byte("a"), Style: yamlh.PLAIN_SCALAR_STYLE, Start_mark: at(0, 1), End_mark: at(0, 2)},
		{Type: yamlh.FLOW_ENTRY_TOKEN, Start_mark: at(0, 2), End_mark: at(0, 3)},
		{Type: yamlh.SCALAR_TOKEN, Value: []byte("b"), Style: yamlh.PLAIN_SCALAR_STYLE, Start_mark: at(0, 3), End_mark: at(0, 4)},
		{Type: yamlh.FLOW_SEQUENCE_END_TOKEN, Start_mark: at(0, 4), End_mark: at(0, 5)},
		{Type: yamlh.STREAM_END_TOKEN, Start_mark: at(0, 5), End_mark: at(0, 5)},
	}
	events := parseAll(t, tokens)
	prev := 0
	for _, event := range events {
		require.LessOrEqual(t, event.Start_mark.Index, event.End_mark.Index, "%s", event.Type)
		require.LessOrEqual(t, prev, event.Start_mark.Index, "%s", event.Type)
		prev = event.Start_mark.Index
	}
}

func TestCheckEventSemantics(t *testing.T) {
	parser := New(&tokenStream{tokens: stream(scalarTok("x", yamlh.PLAIN_SCALAR_STYLE))})

	ok, err := Check_event(parser, yamlh.STREAM_START_EVENT)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Check_event(parser, yamlh.SCALAR_EVENT)
	require.NoError(t, err)
	require.False(t, ok)

	// Checking materialised one pending event; peeking returns it unchanged.
	peeked, err := Peek_event(parser)
	require.NoError(t, err)
	require.Equal(t, yamlh.STREAM_START_EVENT, peeked.Type)

	next, err := Next_event(parser)
	require.NoError(t, err)
	require.Same(t, peeked, next)

	for {
		event, err := Next_event(parser)
		require.NoError(t, err)
		if event.Type == yamlh.STREAM_END_EVENT {
			break
		}
	}

	// A finished stream checks false without failing, and refuses to peek.
	ok, err = Check_event(parser)
	require.NoError(t, err)
	require.False(t, ok)
	require.Panics(t, func() { _, _ = Peek_event(parser) })
	require.Panics(t, func() { _, _ = Next_event(parser) })
}

func TestScannerErrorPropagates(t *testing.T) {
	parser := New(&tokenStream{tokens: []yamlh.YamlToken{}})
	_, err := Next_event(parser)
	require.EqualError(t, err, "no more tokens")
}
