package message

import "strings"

// Tag is one IRCv3 tag with its comma separated values.
type Tag struct {
	ID     string
	Values []string
}

// Tags keeps the tags of a message in wire order. The zero value is an
// empty set.
type Tags struct {
	list  []Tag
	index map[string]int
}

func NewTags(tags ...Tag) Tags {
	var t Tags
	for _, tag := range tags {
		t.add(tag)
	}
	return t
}

func (t *Tags) add(tag Tag) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[tag.ID]; ok {
		t.list[i] = tag
		return
	}
	t.index[tag.ID] = len(t.list)
	t.list = append(t.list, tag)
}

func (t Tags) Get(id string) (Tag, bool) {
	i, ok := t.index[id]
	if !ok {
		return Tag{}, false
	}
	return t.list[i], true
}

// First returns the first value of the tag or an empty string.
func (t Tags) First(id string) string {
	tag, ok := t.Get(id)
	if !ok || len(tag.Values) == 0 {
		return ""
	}
	return tag.Values[0]
}

// Has reports whether the tag exists and one of its values equals value.
func (t Tags) Has(id, value string) bool {
	tag, ok := t.Get(id)
	if !ok {
		return false
	}
	for _, v := range tag.Values {
		if v == value {
			return true
		}
	}
	return false
}

func (t Tags) Len() int {
	return len(t.list)
}

func (t Tags) List() []Tag {
	out := make([]Tag, len(t.list))
	copy(out, t.list)
	return out
}

// Map returns the tags as id -> values.
func (t Tags) Map() map[string][]string {
	out := make(map[string][]string, len(t.list))
	for _, tag := range t.list {
		out[tag.ID] = tag.Values
	}
	return out
}

// UnescapeTagValue reverses the IRCv3 tag value escaping (\s, \:, \\, \r, \n).
// ParseTags keeps raw values; callers that need display text apply this
// themselves.
func UnescapeTagValue(v string) string {
	if !strings.ContainsRune(v, '\\') {
		return v
	}

	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(v) {
			break
		}
		i++
		switch v[i] {
		case 's':
			b.WriteByte(' ')
		case ':':
			b.WriteByte(';')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		default:
			b.WriteByte(v[i])
		}
	}
	return b.String()
}
