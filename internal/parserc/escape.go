package parserc

import (
	"bytes"
	"errors"

	"github.com/cporter/yaml/internal/yamlh"
)

// Decode the raw contents of a double-quoted scalar. The scanner leaves the
// backslash sequences in place because hex escapes cannot always be expanded
// where they stand; this pass produces the final value. The input is
// returned as-is when it contains no backslash.
func yaml_parser_decode_double_quoted(value []byte) ([]byte, error) {
	if bytes.IndexByte(value, '\\') < 0 {
		return value, nil
	}

	s := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		if value[i] != '\\' {
			s = append(s, value[i])
			continue
		}
		i++
		if i >= len(value) {
			return nil, errors.New("found unterminated escape sequence")
		}

		code_length := 0
		switch value[i] {
		case '\n', '\r':
			// An escaped line break continues the line and emits nothing.
		case '0':
			s = append(s, 0)
		case 'a':
			s = append(s, '\x07')
		case 'b':
			s = append(s, '\x08')
		case 't', '\t':
			s = append(s, '\x09')
		case 'n':
			s = append(s, '\x0A')
		case 'v':
			s = append(s, '\x0B')
		case 'f':
			s = append(s, '\x0C')
		case 'r':
			s = append(s, '\x0D')
		case 'e':
			s = append(s, '\x1B')
		case ' ':
			s = append(s, '\x20')
		case '"':
			s = append(s, '"')
		case '/':
			s = append(s, '/')
		case '\\':
			s = append(s, '\\')
		case 'N': // NEL (#x85)
			s = append(s, '\xC2', '\x85')
		case '_': // #xA0
			s = append(s, '\xC2', '\xA0')
		case 'L': // LS (#x2028)
			s = append(s, '\xE2', '\x80', '\xA8')
		case 'P': // PS (#x2029)
			s = append(s, '\xE2', '\x80', '\xA9')
		case 'x':
			code_length = 2
		case 'u':
			code_length = 4
		case 'U':
			code_length = 8
		default:
			// The scanner validates escapes while scanning; reaching this
			// branch means the token was built by something else.
			return nil, errors.New("found unknown escape character")
		}

		if code_length > 0 {
			if i+code_length >= len(value) {
				return nil, errors.New("found incomplete escape code")
			}
			var code int
			for k := 1; k <= code_length; k++ {
				if !yamlh.Is_hex(value, i+k) {
					return nil, errors.New("did not find expected hexdecimal number")
				}
				code = (code << 4) + yamlh.As_hex(value, i+k)
			}
			i += code_length

			// Check the value and write the character.
			if (code >= 0xD800 && code <= 0xDFFF) || code > 0x10FFFF {
				return nil, errors.New("found invalid Unicode character escape code")
			}
			if code <= 0x7F {
				s = append(s, byte(code))
			} else if code <= 0x7FF {
				s = append(s, byte(0xC0+(code>>6)))
				s = append(s, byte(0x80+(code&0x3F)))
			} else if code <= 0xFFFF {
				s = append(s, byte(0xE0+(code>>12)))
				s = append(s, byte(0x80+((code>>6)&0x3F)))
				s = append(s, byte(0x80+(code&0x3F)))
			} else {
				s = append(s, byte(0xF0+(code>>18)))
				s = append(s, byte(0x80+((code>>12)&0x3F)))
				s = append(s, byte(0x80+((code>>6)&0x3F)))
				s = append(s, byte(0x80+(code&0x3F)))
			}
		}
	}
	return s, nil
}
