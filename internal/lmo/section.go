package lmo

import (
	"bufio"
	"bytes"
	"strings"
)

// Raw parse stage: an LMO file is a sequence of named sections, each holding
// ordered key/value pairs. No type inference happens here — values stay
// strings until the typed projection in parser.go.

// KV is one key/value line inside a section.
type KV struct {
	Key   string
	Value string
}

// Section is a named, ordered key/value list.
type Section struct {
	Name string
	Keys []KV
}

// Get returns the first value for key and whether it was present.
func (s *Section) Get(key string) (string, bool) {
	for _, kv := range s.Keys {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key, appending it if absent.
func (s *Section) Set(key, value string) {
	for i, kv := range s.Keys {
		if kv.Key == key {
			s.Keys[i].Value = value
			return
		}
	}
	s.Keys = append(s.Keys, KV{Key: key, Value: value})
}

// File is the raw section AST of one league file.
type File struct {
	Sections []*Section
}

// Section returns the named section, or nil.
func (f *File) Section(name string) *Section {
	for _, s := range f.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// AddSection appends and returns a new named section.
func (f *File) AddSection(name string) *Section {
	s := &Section{Name: name}
	f.Sections = append(f.Sections, s)
	return s
}

// parseSections splits UTF-8 text into the section AST. Lines are either
// blank, comments (";" or "#"), "[Name]" headers, or "key=value". Anything
// else — including a key/value line before the first header — is a
// FormatError that aborts the whole file.
func parseSections(text string) (*File, error) {
	f := &File{}
	var cur *Section

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNr := 0
	for sc.Scan() {
		lineNr++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}
		if line[0] == '[' {
			if !strings.HasSuffix(line, "]") {
				return nil, &FormatError{Line: lineNr, Msg: "unterminated section header"}
			}
			name := strings.TrimSpace(line[1 : len(line)-1])
			if name == "" {
				return nil, &FormatError{Line: lineNr, Msg: "empty section name"}
			}
			cur = f.AddSection(name)
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 1 {
			return nil, &FormatError{Line: lineNr, Msg: "expected key=value"}
		}
		if cur == nil {
			return nil, &FormatError{Line: lineNr, Msg: "key/value before first section"}
		}
		cur.Keys = append(cur.Keys, KV{
			Key:   strings.TrimSpace(line[:eq]),
			Value: strings.TrimSpace(line[eq+1:]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, &FormatError{Msg: err.Error()}
	}
	if len(f.Sections) == 0 {
		return nil, &FormatError{Msg: "no sections found"}
	}
	return f, nil
}

// marshalSections renders the AST back into section/key/value text.
// Newlines are stripped from values so a value can never break the line
// structure of the format.
func marshalSections(f *File) []byte {
	var buf bytes.Buffer
	for _, s := range f.Sections {
		buf.WriteByte('[')
		buf.WriteString(sanitizeValue(s.Name))
		buf.WriteString("]\n")
		for _, kv := range s.Keys {
			buf.WriteString(sanitizeValue(kv.Key))
			buf.WriteByte('=')
			buf.WriteString(sanitizeValue(kv.Value))
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func sanitizeValue(v string) string {
	v = strings.ReplaceAll(v, "\r", "")
	return strings.ReplaceAll(v, "\n", " ")
}
