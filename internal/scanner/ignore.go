package scanner

import (
	"path/filepath"
	"strings"
)

// IgnorePattern is one line of a .specfactsignore file, gitignore syntax:
// "!" negates, a trailing "/" matches directories, a leading "/" anchors
// the pattern to the ignore file's directory, "**" spans path segments.
type IgnorePattern struct {
	pattern     string // the line as written
	isNegation  bool
	isDirectory bool
	isAbsolute  bool
	segments    []string
}

// ParseIgnorePattern parses one ignore-file line. It never fails; a line
// with no special markers is a plain name match.
func ParseIgnorePattern(pattern string) IgnorePattern {
	p := IgnorePattern{pattern: pattern}

	if strings.HasPrefix(pattern, "!") {
		p.isNegation = true
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") {
		p.isDirectory = true
		pattern = strings.TrimSuffix(pattern, "/")
	}
	if strings.HasPrefix(pattern, "/") {
		p.isAbsolute = true
		pattern = pattern[1:]
	}

	p.segments = strings.Split(pattern, "/")

	return p
}

// Match reports whether path matches the pattern. The caller decides what a
// match means: for a negation pattern a match re-includes the path, so the
// last matching pattern wins.
func (p IgnorePattern) Match(path string) bool {
	path = filepath.ToSlash(path)

	if p.isDirectory {
		return p.matchDirectory(path)
	}

	if strings.ContainsAny(p.pattern, "*?[") {
		return p.matchGlob(path)
	}

	// a non-anchored literal may match starting at any path segment
	pathSegments := strings.Split(path, "/")
	for startIdx := 0; startIdx < len(pathSegments); startIdx++ {
		if p.matchSegments(pathSegments[startIdx:]) {
			return true
		}
	}

	return false
}

// IsNegation reports whether the pattern started with "!".
func (p IgnorePattern) IsNegation() bool {
	return p.isNegation
}

// matchDirectory reports whether path lies inside a directory matching the
// pattern. Anchored patterns compare from the root, others at any depth.
func (p IgnorePattern) matchDirectory(path string) bool {
	pathSegments := strings.Split(path, "/")

	if p.isAbsolute {
		if len(pathSegments) < len(p.segments) {
			return false
		}
		for i, seg := range p.segments {
			if !strings.EqualFold(seg, pathSegments[i]) {
				return false
			}
		}
		return true
	}

	for startIdx := 0; startIdx <= len(pathSegments)-len(p.segments); startIdx++ {
		match := true
		for i, seg := range p.segments {
			if !strings.EqualFold(seg, pathSegments[startIdx+i]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}

	return false
}

// matchGlob handles patterns containing *, ? or [...].
func (p IgnorePattern) matchGlob(path string) bool {
	pattern := p.pattern
	if p.isNegation {
		pattern = pattern[1:]
	}
	pattern = strings.TrimPrefix(pattern, "/")

	segments := strings.Split(pattern, "/")
	pathSegments := strings.Split(path, "/")

	for startIdx := 0; startIdx < len(pathSegments); startIdx++ {
		if p.matchGlobSegments(segments, pathSegments[startIdx:]) {
			return true
		}
	}

	return false
}

// matchGlobSegments matches glob pattern segments against path segments,
// segment by segment. "**" may consume zero or more path segments.
func (p IgnorePattern) matchGlobSegments(patternSegs, pathSegs []string) bool {
	if len(patternSegs) == 0 {
		return len(pathSegs) == 0
	}

	if patternSegs[0] == "**" {
		if len(patternSegs) == 1 {
			return true
		}
		for i := 0; i <= len(pathSegs); i++ {
			if p.matchGlobSegments(patternSegs[1:], pathSegs[i:]) {
				return true
			}
		}
		return false
	}

	if len(pathSegs) == 0 {
		return false
	}

	if !matchGlobSegment(patternSegs[0], pathSegs[0]) {
		return false
	}

	return p.matchGlobSegments(patternSegs[1:], pathSegs[1:])
}

// matchSegments matches the pattern's literal segments against path
// segments, honoring "**".
func (p IgnorePattern) matchSegments(pathSegments []string) bool {
	if len(p.segments) > len(pathSegments) {
		return false
	}

	for i, seg := range p.segments {
		if seg == "**" {
			if i == len(p.segments)-1 {
				return true
			}
			for j := i; j <= len(pathSegments); j++ {
				if p.matchSegmentsAt(pathSegments[j:], p.segments[i+1:]) {
					return true
				}
			}
			return false
		}

		if !strings.EqualFold(seg, pathSegments[i]) {
			return false
		}
	}

	return len(p.segments) == len(pathSegments)
}

// matchSegmentsAt matches the remaining pattern segments at one position.
func (p IgnorePattern) matchSegmentsAt(pathSegments, patternSegments []string) bool {
	if len(patternSegments) > len(pathSegments) {
		return false
	}

	for i, seg := range patternSegments {
		if !strings.EqualFold(seg, pathSegments[i]) {
			return false
		}
	}

	return true
}

// matchGlobSegment matches one glob pattern segment against one path
// segment: *, ? and [...] within a segment, no slash crossing.
func matchGlobSegment(pattern, segment string) bool {
	patternIdx, segmentIdx := 0, 0

	for patternIdx < len(pattern) && segmentIdx < len(segment) {
		p := pattern[patternIdx]
		s := segment[segmentIdx]

		switch p {
		case '*':
			if patternIdx+1 < len(pattern) && pattern[patternIdx+1] == '*' {
				// ** inside a segment degrades to a second *
				return matchGlobSegment(pattern[patternIdx+1:], segment[segmentIdx:])
			}
			if patternIdx+1 == len(pattern) {
				return true
			}
			// scan forward to the first spot the rest of the pattern
			// could resume
			nextChar := pattern[patternIdx+1]
			for segmentIdx < len(segment) && segment[segmentIdx] != nextChar {
				segmentIdx++
			}
			patternIdx++
		case '?':
			patternIdx++
			segmentIdx++
		case '[':
			endIdx := strings.IndexByte(pattern[patternIdx:], ']')
			if endIdx == -1 {
				return false
			}
			charClass := pattern[patternIdx+1 : patternIdx+endIdx]
			if !strings.ContainsRune(charClass, rune(s)) {
				return false
			}
			patternIdx += endIdx + 1
			segmentIdx++
		default:
			if p != s {
				return false
			}
			patternIdx++
			segmentIdx++
		}
	}

	for patternIdx < len(pattern) && pattern[patternIdx] == '*' {
		patternIdx++
	}

	return patternIdx == len(pattern) && segmentIdx == len(segment)
}
