// SPDX-License-Identifier: MPL-2.0

package script

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// QuoteArgs shell-quotes each argument so that it survives Split as a
// single word, and joins the results with single spaces.
func QuoteArgs(args []string) (string, error) {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("failed to quote argument %q: %w", arg, err)
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " "), nil
}

// BuildLine appends the quoted args to base. With no args the line is base
// unchanged.
func BuildLine(base string, args []string) (string, error) {
	if len(args) == 0 {
		return base, nil
	}
	joined, err := QuoteArgs(args)
	if err != nil {
		return "", err
	}
	return base + " " + joined, nil
}

// Split tokenizes line into words with POSIX shell-word rules. Quotes
// (including Bash $'...' strings) and backslash escapes are honoured, and
// $VAR and ${VAR} references are expanded from environ, a list of
// "KEY=value" pairs. Everything else a shell would interpret (operators,
// braces, tildes, globs, comments) is kept as literal text. An unquoted word
// that expands to nothing is dropped.
func Split(line string, environ []string) ([]string, error) {
	words, err := lexWords(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split command line: %w", err)
	}

	cfg := &expand.Config{Env: expand.ListEnviron(environ...)}
	parser := syntax.NewParser()

	fields := make([]string, 0, len(words))
	for _, w := range words {
		field, err := expandWord(parser, cfg, w.text)
		if err != nil {
			return nil, fmt.Errorf("failed to split command line: %w", err)
		}
		if field == "" && !w.quoted {
			continue
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// rawWord is one blank-separated word of a command line, rewritten so that
// characters with a shell meaning outside quotes are backslash-escaped.
type rawWord struct {
	text   string
	quoted bool
}

// literalChars are taken literally when they appear unquoted.
const literalChars = ";&|<>(){}[]~*?#`!"

func lexWords(line string) ([]rawWord, error) {
	var (
		words  []rawWord
		cur    strings.Builder
		inWord bool
		quoted bool
	)
	flush := func() {
		if inWord {
			words = append(words, rawWord{text: cur.String(), quoted: quoted})
		}
		cur.Reset()
		inWord, quoted = false, false
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			flush()
		case c == '\\':
			if i+1 == len(line) {
				return nil, errors.New("trailing backslash")
			}
			i++
			if line[i] == '\n' {
				continue
			}
			inWord = true
			cur.WriteByte('\\')
			cur.WriteByte(line[i])
		case c == '\'':
			end := strings.IndexByte(line[i+1:], '\'')
			if end < 0 {
				return nil, errors.New("unterminated single quote")
			}
			inWord, quoted = true, true
			cur.WriteString(line[i : i+end+2])
			i += end + 1
		case c == '"':
			end, err := scanDouble(line, i+1)
			if err != nil {
				return nil, err
			}
			inWord, quoted = true, true
			cur.WriteString(line[i : end+1])
			i = end
		case c == '$' && i+1 < len(line) && line[i+1] == '\'':
			end, err := scanANSI(line, i+2)
			if err != nil {
				return nil, err
			}
			inWord, quoted = true, true
			cur.WriteString(line[i : end+1])
			i = end
		case c == '$' && i+1 < len(line) && line[i+1] == '{':
			end := strings.IndexByte(line[i+2:], '}')
			if end < 0 {
				return nil, errors.New("unterminated ${")
			}
			inWord = true
			cur.WriteString(line[i : i+end+3])
			i += end + 2
		case c == '$' && (i+1 == len(line) || !isNameByte(line[i+1])):
			inWord = true
			cur.WriteString(`\$`)
		case strings.IndexByte(literalChars, c) >= 0:
			inWord = true
			cur.WriteByte('\\')
			cur.WriteByte(c)
		default:
			inWord = true
			cur.WriteByte(c)
		}
	}
	flush()
	return words, nil
}

func isNameByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// scanDouble returns the index of the quote closing a double-quoted string
// whose content starts at i.
func scanDouble(line string, i int) (int, error) {
	for ; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '"':
			return i, nil
		}
	}
	return 0, errors.New("unterminated double quote")
}

// scanANSI returns the index of the quote closing a $'...' string whose
// content starts at i.
func scanANSI(line string, i int) (int, error) {
	for ; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '\'':
			return i, nil
		}
	}
	return 0, errors.New("unterminated $' quote")
}

// expandWord removes quotes and escapes from a single word and expands its
// parameter references.
func expandWord(parser *syntax.Parser, cfg *expand.Config, text string) (string, error) {
	var word *syntax.Word
	err := parser.Words(strings.NewReader(text), func(w *syntax.Word) bool {
		word = w
		return false
	})
	if err != nil {
		return "", err
	}
	if word == nil {
		return "", nil
	}
	return expand.Literal(cfg, word)
}
