// SPDX-License-Identifier: MPL-2.0

package matrixfile

import "strings"

// nameSegment is one piece of a raw environment name: either a literal run
// or a bracketed alternative set.
type nameSegment struct {
	literal string
	alts    []string
}

// ExpandName expands a raw environment name containing bracketed,
// comma-separated alternative sets into the ordered list of concrete names.
//
//	"lint"             → ["lint"]
//	"unit-py3{9,10}"   → ["unit-py39", "unit-py310"]
//	"a{1,2}-b{x,y}"    → ["a1-bx", "a1-by", "a2-bx", "a2-by"]
//
// Alternatives keep their declared order; with multiple groups the leftmost
// group varies slowest. Malformed bracket syntax (unclosed or nested groups,
// stray '}', empty groups or alternatives) returns a *BracketError.
func ExpandName(raw string) ([]string, error) {
	segments, err := tokenizeName(raw)
	if err != nil {
		return nil, err
	}

	names := []string{""}
	for _, seg := range segments {
		if seg.alts == nil {
			for i := range names {
				names[i] += seg.literal
			}
			continue
		}

		expanded := make([]string, 0, len(names)*len(seg.alts))
		for _, prefix := range names {
			for _, alt := range seg.alts {
				expanded = append(expanded, prefix+alt)
			}
		}
		names = expanded
	}

	return names, nil
}

// tokenizeName splits a raw name into literal and bracket-group segments.
// It is a pure function: no side effects, no I/O.
func tokenizeName(raw string) ([]nameSegment, error) {
	var segments []nameSegment
	var literal strings.Builder

	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			end := strings.IndexByte(raw[i:], '}')
			if end == -1 {
				return nil, &BracketError{Name: raw, Reason: "unclosed '{'"}
			}
			group := raw[i+1 : i+end]
			if strings.ContainsRune(group, '{') {
				return nil, &BracketError{Name: raw, Reason: "nested bracket groups are not supported"}
			}
			alts, err := splitAlternatives(raw, group)
			if err != nil {
				return nil, err
			}

			if literal.Len() > 0 {
				segments = append(segments, nameSegment{literal: literal.String()})
				literal.Reset()
			}
			segments = append(segments, nameSegment{alts: alts})
			i += end
		case '}':
			return nil, &BracketError{Name: raw, Reason: "'}' without matching '{'"}
		default:
			literal.WriteByte(raw[i])
		}
	}

	if literal.Len() > 0 {
		segments = append(segments, nameSegment{literal: literal.String()})
	}
	return segments, nil
}

func splitAlternatives(raw, group string) ([]string, error) {
	if group == "" {
		return nil, &BracketError{Name: raw, Reason: "empty bracket group"}
	}
	alts := strings.Split(group, ",")
	for _, alt := range alts {
		if alt == "" {
			return nil, &BracketError{Name: raw, Reason: "empty alternative in bracket group"}
		}
	}
	return alts, nil
}
