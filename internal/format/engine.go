package format

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Kind selects the lexical rules used while formatting.
type Kind int

const (
	KindScript Kind = iota
	KindStyle
)

func (k Kind) String() string {
	if k == KindStyle {
		return "style"
	}
	return "script"
}

// KindFor maps a file extension to a Kind.
func KindFor(ext string) Kind {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "css", "scss", "sass", "less", "styl", "pcss":
		return KindStyle
	default:
		return KindScript
	}
}

// Engine is the pluggable formatting capability.
type Engine interface {
	Format(text string, kind Kind, rules Rules) (string, error)
}

// SyntaxError reports input the engine refuses to format.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// LayoutEngine re-indents text to the configured unit, trims trailing
// whitespace, collapses blank-line runs, normalizes line endings and spacing
// in style declarations. Comment bodies and template literal contents are
// left alone. Output depends only on the tokens and the existing nesting, so
// formatting its own output is a no-op.
type LayoutEngine struct{}

// Format implements Engine.
func (LayoutEngine) Format(text string, kind Kind, rules Rules) (string, error) {
	if rules.TabWidth < 1 {
		rules.TabWidth = DefaultRules().TabWidth
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines, err := scan(text, kind)
	if err != nil {
		return "", err
	}

	unit := indentUnit(lines, rules.TabWidth)
	indent := func(level int) string {
		if rules.UseTabs {
			return strings.Repeat("\t", level)
		}
		return strings.Repeat(" ", level*rules.TabWidth)
	}

	out := make([]string, 0, len(lines))
	pendingBlank := false
	commentLevel := 0
	for _, ln := range lines {
		switch ln.start {
		case stateTemplate:
			out = append(out, ln.text)
			continue
		case stateBlockComment:
			body := strings.TrimSpace(ln.text)
			if strings.HasPrefix(body, "*") {
				out = append(out, indent(commentLevel)+" "+body)
			} else {
				out = append(out, strings.TrimRight(ln.text, " \t"))
			}
			continue
		}

		raw := ln.text
		if ln.end != stateTemplate {
			raw = strings.TrimRight(raw, " \t")
		}
		body := strings.TrimLeft(raw, " \t")
		if body == "" {
			pendingBlank = len(out) > 0
			continue
		}
		if pendingBlank {
			out = append(out, "")
			pendingBlank = false
		}

		level := columns(raw, rules.TabWidth) / unit
		if kind == KindStyle && ln.depth > 0 && ln.end == stateCode {
			body = spaceDeclaration(body)
		}
		out = append(out, indent(level)+body)
		commentLevel = level
	}

	if len(out) == 0 {
		return "", nil
	}
	eol := lineEnding(rules.EndOfLine)
	return strings.Join(out, eol) + eol, nil
}

func lineEnding(setting string) string {
	switch setting {
	case "crlf":
		return "\r\n"
	case "cr":
		return "\r"
	default:
		return "\n"
	}
}

// columns counts leading whitespace, a tab counting as tabWidth columns.
func columns(line string, tabWidth int) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += tabWidth
		default:
			return n
		}
	}
	return n
}

// indentUnit is tabWidth when every indented code line is already a
// multiple of it, otherwise the greatest common divisor of the indents.
func indentUnit(lines []line, tabWidth int) int {
	g := 0
	aligned := true
	for _, ln := range lines {
		if ln.start != stateCode || strings.TrimSpace(ln.text) == "" {
			continue
		}
		c := columns(ln.text, tabWidth)
		if c == 0 {
			continue
		}
		if c%tabWidth != 0 {
			aligned = false
		}
		g = gcd(g, c)
	}
	if aligned || g == 0 {
		return tabWidth
	}
	return g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

var declaration = regexp.MustCompile(`^([A-Za-z-][A-Za-z0-9-]*)\s*:\s*(\S.*;)$`)

// spaceDeclaration rewrites "prop:value;" as "prop: value;".
func spaceDeclaration(body string) string {
	m := declaration.FindStringSubmatch(body)
	if m == nil {
		return body
	}
	return m[1] + ": " + m[2]
}

type lexState int

const (
	stateCode lexState = iota
	stateBlockComment
	stateTemplate
)

type line struct {
	text  string
	start lexState
	end   lexState
	depth int
}

type opener struct {
	char     rune
	line     int
	template bool

	// A brace opened inside JSX resumes that markup when it closes.
	markup      markupState
	markupDepth int
}

// markupState tracks JSX so that apostrophes and brackets in element text
// are not taken for code.
type markupState int

const (
	markupNone markupState = iota
	markupTag
	markupText
)

var closerFor = map[rune]rune{'(': ')', '[': ']', '{': '}'}

// scan splits text into lines annotated with the lexer state at each line
// boundary, and rejects unbalanced brackets outside strings and comments.
func scan(text string, kind Kind) ([]line, error) {
	var (
		lines  []line
		stack  []opener
		state  = stateCode
		quote  rune
		inLine bool

		markup  markupState
		depth   int // open elements in the current markup
		closing bool
		prev    rune
		word    string
	)

	rawLines := strings.Split(text, "\n")
	for i, raw := range rawLines {
		lineNo := i + 1
		ln := line{text: raw, start: state, depth: len(stack)}
		quote = 0
		inLine = false

		runes := []rune(raw)
		for j := 0; j < len(runes); j++ {
			r := runes[j]
			next := rune(0)
			if j+1 < len(runes) {
				next = runes[j+1]
			}

			switch {
			case inLine:
				// rest of the line is a comment
			case state == stateBlockComment:
				if r == '*' && next == '/' {
					state = stateCode
					j++
				}
			case state == stateTemplate:
				switch {
				case r == '\\':
					j++
				case r == '`':
					state = stateCode
				case r == '$' && next == '{':
					stack = append(stack, opener{char: '{', line: lineNo, template: true})
					state = stateCode
					j++
				}
			case quote != 0:
				switch r {
				case '\\':
					j++
				case quote:
					quote = 0
				}
			case markup == markupTag:
				switch {
				case r == '\'' || r == '"':
					quote = r
				case r == '{':
					stack = append(stack, opener{char: r, line: lineNo, markup: markupTag, markupDepth: depth})
					markup, depth, prev, word = markupNone, 0, r, ""
				case r == '/' && next == '>':
					j++
					markup = afterElement(depth)
					prev, word = '>', ""
				case r == '>':
					if closing {
						depth--
					} else {
						depth++
					}
					markup = afterElement(depth)
					prev, word = '>', ""
				}
			case markup == markupText:
				switch r {
				case '<':
					markup = markupTag
					closing = next == '/'
					if closing {
						j++
					}
				case '{':
					stack = append(stack, opener{char: r, line: lineNo, markup: markupText, markupDepth: depth})
					markup, depth, prev, word = markupNone, 0, r, ""
				}
			case kind == KindScript && r == '<' && startsElement(prev, word, next):
				markup = markupTag
				closing = false
			default:
				if r != ' ' && r != '\t' {
					if isIdentRune(r) {
						if !isIdentRune(prev) {
							word = ""
						}
						word += string(r)
					} else {
						word = ""
					}
					prev = r
				}
				switch {
				case r == '/' && next == '*':
					state = stateBlockComment
					j++
				case r == '/' && next == '/' && kind == KindScript:
					inLine = true
				case r == '`' && kind == KindScript:
					state = stateTemplate
				case r == '\'' || r == '"':
					quote = r
				case r == '(' || r == '[' || r == '{':
					stack = append(stack, opener{char: r, line: lineNo})
				case r == ')' || r == ']' || r == '}':
					if len(stack) == 0 {
						return nil, &SyntaxError{Line: lineNo, Message: fmt.Sprintf("unexpected %q", r)}
					}
					top := stack[len(stack)-1]
					if closerFor[top.char] != r {
						return nil, &SyntaxError{Line: lineNo, Message: fmt.Sprintf("unexpected %q, expected %q to close line %d", r, closerFor[top.char], top.line)}
					}
					stack = stack[:len(stack)-1]
					if top.template {
						state = stateTemplate
					}
					if top.markup != markupNone {
						markup, depth = top.markup, top.markupDepth
					}
				}
			}
		}

		ln.end = state
		lines = append(lines, ln)
	}

	switch {
	case state == stateBlockComment:
		return nil, &SyntaxError{Line: len(rawLines), Message: "unterminated block comment"}
	case state == stateTemplate:
		return nil, &SyntaxError{Line: len(rawLines), Message: "unterminated template literal"}
	case len(stack) > 0:
		top := stack[len(stack)-1]
		return nil, &SyntaxError{Line: top.line, Message: fmt.Sprintf("unclosed %q", top.char)}
	}
	return lines, nil
}

// startsElement reports whether a '<' followed by next opens a JSX element.
// That needs an expression position, which rules out comparisons and type
// arguments such as useState<string>.
func startsElement(prev rune, word string, next rune) bool {
	if !unicode.IsLetter(next) && next != '>' {
		return false
	}
	switch {
	case isIdentRune(prev):
		return word == "return" || word == "yield" || word == "default"
	case prev == ')' || prev == ']' || prev == '}':
		return false
	}
	return true
}

func afterElement(depth int) markupState {
	if depth > 0 {
		return markupText
	}
	return markupNone
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
