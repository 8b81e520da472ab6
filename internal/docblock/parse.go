package docblock

import "strings"

// Parse builds a DocBlock from the text of a documentation comment.
//
// The comment delimiters and leading asterisks are optional.
// The first paragraph becomes the short description,
// text up to the first tag becomes the long description,
// and every line starting with '@' starts a new tag.
// Lines following a tag are appended to its body.
//
// Parse returns nil if the comment has no content.
func Parse(comment string) *DocBlock {
	body := stripDelimiters(comment)

	var (
		doc       DocBlock
		paragraph []string
		long      []string
		inShort   = true
	)
	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") {
			inShort = false
			name, rest, _ := strings.Cut(trimmed[1:], " ")
			doc.Tags = append(doc.Tags, Tag{
				Name: name,
				Body: strings.TrimSpace(rest),
			})
			continue
		}

		if n := len(doc.Tags); n > 0 {
			if trimmed != "" {
				last := &doc.Tags[n-1]
				if last.Body == "" {
					last.Body = trimmed
				} else {
					last.Body += "\n" + trimmed
				}
			}
			continue
		}

		if inShort {
			if trimmed == "" {
				if len(paragraph) > 0 {
					inShort = false
				}
				continue
			}
			paragraph = append(paragraph, trimmed)
			continue
		}

		long = append(long, line)
	}

	doc.ShortDescription = strings.Join(paragraph, "\n")
	doc.LongDescription = strings.TrimSpace(dedent(long))
	if doc.IsEmpty() {
		return nil
	}
	return &doc
}

// stripDelimiters removes "/**", "*/", and leading " * " decorations,
// and returns the remaining lines.
func stripDelimiters(comment string) []string {
	s := strings.TrimSpace(strings.ReplaceAll(comment, "\r\n", "\n"))
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimPrefix(s, "/*")
	s = strings.TrimSuffix(s, "*/")

	ls := strings.Split(s, "\n")
	for i, l := range ls {
		l = strings.TrimLeft(l, " \t")
		if strings.HasPrefix(l, "*") {
			l = strings.TrimPrefix(l, "*")
			l = strings.TrimPrefix(l, " ")
		}
		ls[i] = strings.TrimRight(l, " \t")
	}
	return ls
}

func dedent(ls []string) string {
	prefix := -1
	for _, l := range ls {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if prefix < 0 || n < prefix {
			prefix = n
		}
	}
	if prefix <= 0 {
		return strings.Join(ls, "\n")
	}

	out := make([]string, len(ls))
	for i, l := range ls {
		if len(l) >= prefix {
			out[i] = l[prefix:]
		}
	}
	return strings.Join(out, "\n")
}
