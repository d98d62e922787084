package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrPlaceholderOutOfRange = errors.New("placeholder index out of range")
	ErrMalformedPlaceholder  = errors.New("malformed placeholder")
)

// Kind is the sequence a placeholder refers to.
type Kind int

const (
	Depends Kind = iota
	Targets
	Args
)

func (k Kind) String() string {
	switch k {
	case Depends:
		return "depends"
	case Targets:
		return "targets"
	case Args:
		return "args"
	default:
		return "unknown"
	}
}

func kindFromString(s string) Kind {
	switch s {
	case "depends":
		return Depends
	case "targets":
		return Targets
	default:
		return Args
	}
}

var (
	placeholderRe = regexp.MustCompile(`\[(depends|targets|args)\[(\d+)\]\]`)
	// markerStartRe finds anything that looks like the start of a placeholder,
	// well-formed or not.
	markerStartRe = regexp.MustCompile(`\[(depends|targets|args)\[`)
)

// Placeholder is a single zero-indexed reference inside a template.
type Placeholder struct {
	Kind  Kind
	Index int
}

func (p Placeholder) String() string {
	return fmt.Sprintf("[%s[%d]]", p.Kind, p.Index)
}

type segment struct {
	literal     string
	placeholder *Placeholder
}

// Template is a parsed command template. It is immutable and safe for
// concurrent use.
type Template struct {
	raw          string
	segments     []segment
	placeholders []Placeholder
}

// Parse tokenises a command template into literal text and placeholders.
func Parse(tmpl string) (*Template, error) {
	matches := placeholderRe.FindAllStringSubmatchIndex(tmpl, -1)

	starts := make(map[int]struct{}, len(matches))
	for _, m := range matches {
		starts[m[0]] = struct{}{}
	}
	for _, loc := range markerStartRe.FindAllStringIndex(tmpl, -1) {
		if _, ok := starts[loc[0]]; !ok {
			end := loc[1] + 8
			if end > len(tmpl) {
				end = len(tmpl)
			}
			return nil, errors.Wrapf(ErrMalformedPlaceholder, "near %q at offset %d", tmpl[loc[0]:end], loc[0])
		}
	}

	tpl := &Template{raw: tmpl}
	last := 0
	for _, m := range matches {
		if m[0] > last {
			tpl.segments = append(tpl.segments, segment{literal: tmpl[last:m[0]]})
		}
		idx, err := strconv.Atoi(tmpl[m[4]:m[5]])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedPlaceholder, "invalid index in %q", tmpl[m[0]:m[1]])
		}
		ph := Placeholder{Kind: kindFromString(tmpl[m[2]:m[3]]), Index: idx}
		tpl.segments = append(tpl.segments, segment{placeholder: &ph})
		tpl.placeholders = append(tpl.placeholders, ph)
		last = m[1]
	}
	if last < len(tmpl) {
		tpl.segments = append(tpl.segments, segment{literal: tmpl[last:]})
	}

	return tpl, nil
}

// MustParse is like Parse but panics on error. It is meant for templates
// declared as package-level constants.
func MustParse(tmpl string) *Template {
	tpl, err := Parse(tmpl)
	if err != nil {
		panic(err)
	}

	return tpl
}

// String returns the raw template.
func (t *Template) String() string {
	return t.raw
}

// Placeholders returns the placeholders in order of appearance.
func (t *Template) Placeholders() []Placeholder {
	out := make([]Placeholder, len(t.placeholders))
	copy(out, t.placeholders)

	return out
}

// Arity returns the minimum length of each sequence the template needs.
func (t *Template) Arity() (depends, targets, args int) {
	for _, ph := range t.placeholders {
		n := ph.Index + 1
		switch ph.Kind {
		case Depends:
			depends = max(depends, n)
		case Targets:
			targets = max(targets, n)
		case Args:
			args = max(args, n)
		}
	}

	return depends, targets, args
}

// Validate checks that every placeholder resolves against sequences of the
// given lengths.
func (t *Template) Validate(depends, targets, args int) error {
	for _, ph := range t.placeholders {
		var size int
		switch ph.Kind {
		case Depends:
			size = depends
		case Targets:
			size = targets
		case Args:
			size = args
		}
		if ph.Index >= size {
			return errors.Wrapf(ErrPlaceholderOutOfRange, "%s: %s has %d item(s)", ph, ph.Kind, size)
		}
	}

	return nil
}

// Render substitutes every placeholder with the string form of the value it
// references.
func (t *Template) Render(depends, targets []string, args []any) (string, error) {
	err := t.Validate(len(depends), len(targets), len(args))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, seg := range t.segments {
		if seg.placeholder == nil {
			b.WriteString(seg.literal)
			continue
		}
		switch seg.placeholder.Kind {
		case Depends:
			b.WriteString(depends[seg.placeholder.Index])
		case Targets:
			b.WriteString(targets[seg.placeholder.Index])
		case Args:
			b.WriteString(fmt.Sprint(args[seg.placeholder.Index]))
		}
	}

	return b.String(), nil
}
