// Package docblock models PHP documentation comments.
//
// A [DocBlock] holds a short description, a long description,
// and an ordered list of tags.
// It renders to a standard multi-line comment:
//
//	/**
//	 * Short description.
//	 *
//	 * Long description.
//	 *
//	 * @param int $x
//	 */
package docblock

import "strings"

// Tag is a single "@name body" annotation.
// Tag syntax is not validated.
type Tag struct {
	Name string // without the leading '@'
	Body string
}

func (t Tag) String() string {
	name := "@" + strings.TrimPrefix(t.Name, "@")
	if t.Body == "" {
		return name
	}
	return name + " " + t.Body
}

// DocBlock is a documentation comment.
type DocBlock struct {
	ShortDescription string
	LongDescription  string
	Tags             []Tag
}

// New builds a DocBlock with the given short description.
func New(short string) *DocBlock {
	return &DocBlock{ShortDescription: short}
}

// SetShortDescription sets the short description.
func (d *DocBlock) SetShortDescription(s string) *DocBlock {
	d.ShortDescription = s
	return d
}

// SetLongDescription sets the long description.
func (d *DocBlock) SetLongDescription(s string) *DocBlock {
	d.LongDescription = s
	return d
}

// AddTag appends a tag.
func (d *DocBlock) AddTag(name, body string) *DocBlock {
	d.Tags = append(d.Tags, Tag{Name: strings.TrimPrefix(name, "@"), Body: body})
	return d
}

// IsEmpty reports whether the DocBlock has no content.
func (d *DocBlock) IsEmpty() bool {
	return d == nil ||
		(strings.TrimSpace(d.ShortDescription) == "" &&
			strings.TrimSpace(d.LongDescription) == "" &&
			len(d.Tags) == 0)
}

// Generate renders the DocBlock with every line prefixed by indent.
// The output ends with a newline.
// A nil DocBlock renders as the empty string.
func (d *DocBlock) Generate(indent string) string {
	if d == nil {
		return ""
	}

	var sections [][]string
	if s := strings.TrimSpace(d.ShortDescription); s != "" {
		sections = append(sections, lines(s))
	}
	if s := strings.TrimSpace(d.LongDescription); s != "" {
		sections = append(sections, lines(s))
	}
	if len(d.Tags) > 0 {
		tags := make([]string, 0, len(d.Tags))
		for _, t := range d.Tags {
			tags = append(tags, lines(t.String())...)
		}
		sections = append(sections, tags)
	}

	var sb strings.Builder
	sb.WriteString(indent)
	sb.WriteString("/**\n")
	for i, sec := range sections {
		if i > 0 {
			sb.WriteString(indent)
			sb.WriteString(" *\n")
		}
		for _, l := range sec {
			sb.WriteString(indent)
			if l == "" {
				sb.WriteString(" *\n")
				continue
			}
			sb.WriteString(" * ")
			sb.WriteString(l)
			sb.WriteString("\n")
		}
	}
	sb.WriteString(indent)
	sb.WriteString(" */\n")
	return sb.String()
}

func lines(s string) []string {
	ls := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range ls {
		ls[i] = strings.TrimRight(l, " \t")
	}
	return ls
}
