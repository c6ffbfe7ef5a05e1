// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package screenplay implements the screenplay-to-timeline parser core. This
// file defines the DialogueExtractor: the ordered set of stateless attribution
// patterns that assign a spoken line to a roster character. The stateful
// continuation rule (a bare character-name line buffering the speaker for the
// following line) lives in the scan loop, because it needs the line
// classification that only the scan has; the stateless patterns here always
// take priority over it.
//
// Patterns, first match consumed:
//  1. "CHARACTER: text"
//  2. `"text" - CHARACTER` and `CHARACTER says: "text"`
//  3. "CHARACTER (text)" and "(text) CHARACTER"
//  4. "CHARACTER - text"
//
// A pattern only consumes the line when its speaker resolves against the
// roster. An unresolved speaker never produces a fabricated attribution: the
// line falls through to the cue classifiers and the failure is surfaced as an
// UnresolvedAttribution diagnostic when the candidate plausibly was a name.
package screenplay

import (
	"regexp"
	"strings"
)

// Attribution is the outcome of running the stateless dialogue patterns over
// one line.
type Attribution struct {
	Character string // Canonical roster entry.
	Text      string // The spoken text, surrounding quotes stripped.
}

// The candidate-name fragment deliberately requires an upper-case start and
// tolerates the punctuation found in screenplay names. All patterns are
// anchored and free of nested quantifiers to honor the linear-time contract.
var (
	colonDialoguePattern     = regexp.MustCompile(`^([A-Z][A-Z0-9 .,'\-]{0,50}?)\s*:\s*(.+)$`)
	quoteDashPattern         = regexp.MustCompile(`^"(.+)"\s*[-–—]\s*(.+)$`)
	saysQuotePattern         = regexp.MustCompile(`(?i)^(.+?)\s+says\s*:?\s*"(.+)"\s*$`)
	nameParenPattern         = regexp.MustCompile(`^([A-Z][A-Z0-9 .,'\-]{0,50}?)\s*\((.+)\)\s*$`)
	parenNamePattern         = regexp.MustCompile(`^\((.+)\)\s*([A-Z][A-Z0-9 .,'\-]{0,50})$`)
	dashDialoguePattern      = regexp.MustCompile(`^([A-Z][A-Z0-9 .,'\-]{0,50}?)\s*[-–—]\s+(.+)$`)
)

// DialogueExtractor applies the stateless attribution patterns using a shared
// name matcher.
type DialogueExtractor struct {
	matcher *CharacterNameMatcher
}

// NewDialogueExtractor constructs an extractor bound to the given matcher.
func NewDialogueExtractor(matcher *CharacterNameMatcher) *DialogueExtractor {
	return &DialogueExtractor{matcher: matcher}
}

// Extract runs the patterns in priority order against one line. It returns
// the attribution when a pattern matched and its speaker resolved. The
// unresolved result reports that a pattern matched structurally but the
// speaker was not in the roster, which callers count as a diagnostic.
func (d *DialogueExtractor) Extract(line string) (attr Attribution, ok bool, unresolved bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Attribution{}, false, false
	}

	// Pattern 1: colon-delimited.
	if m := colonDialoguePattern.FindStringSubmatch(trimmed); m != nil {
		if canon, resolved := d.matcher.Match(m[1]); resolved {
			return Attribution{Character: canon, Text: StripQuotes(m[2])}, true, false
		}
		return Attribution{}, false, plausibleName(m[1])
	}

	// Pattern 2a: quoted text attributed after a dash.
	if m := quoteDashPattern.FindStringSubmatch(trimmed); m != nil {
		if canon, resolved := d.matcher.Match(m[2]); resolved {
			return Attribution{Character: canon, Text: StripQuotes(m[1])}, true, false
		}
		return Attribution{}, false, plausibleName(m[2])
	}

	// Pattern 2b: "CHARACTER says: ..." with a case-insensitive keyword.
	if m := saysQuotePattern.FindStringSubmatch(trimmed); m != nil {
		if canon, resolved := d.matcher.Match(m[1]); resolved {
			return Attribution{Character: canon, Text: StripQuotes(m[2])}, true, false
		}
		return Attribution{}, false, plausibleName(m[1])
	}

	// Pattern 3: parenthetical attribution, symmetric. Name extensions such
	// as "(V.O.)" are not spoken text; those lines stay character cues.
	if m := nameParenPattern.FindStringSubmatch(trimmed); m != nil && !isNameExtension(m[2]) {
		if canon, resolved := d.matcher.Match(m[1]); resolved {
			return Attribution{Character: canon, Text: StripQuotes(m[2])}, true, false
		}
	}
	if m := parenNamePattern.FindStringSubmatch(trimmed); m != nil {
		if canon, resolved := d.matcher.Match(m[2]); resolved {
			return Attribution{Character: canon, Text: StripQuotes(m[1])}, true, false
		}
	}

	// Pattern 4: dash-delimited.
	if m := dashDialoguePattern.FindStringSubmatch(trimmed); m != nil {
		if canon, resolved := d.matcher.Match(m[1]); resolved {
			return Attribution{Character: canon, Text: StripQuotes(m[2])}, true, false
		}
	}

	return Attribution{}, false, false
}

// StripQuotes removes one pair of surrounding straight or typographic double
// quotes from spoken text. The audio collaborator expects bare sentences.
func StripQuotes(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 2 {
		if (strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`)) ||
			(strings.HasPrefix(text, "“") && strings.HasSuffix(text, "”")) {
			text = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(text, `"`), "“"), `"`)
			text = strings.TrimSuffix(text, "”")
		}
	}
	return strings.TrimSpace(text)
}

// IsPureStageDirection reports whether the line is a parenthetical-only stage
// direction such as "(hesitant)". These are routed to the cue extractor, and
// they do not break a pending dialogue continuation.
func IsPureStageDirection(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 2 {
		return false
	}
	if strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") {
		inner := trimmed[1 : len(trimmed)-1]
		return !strings.ContainsAny(inner, "()")
	}
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		inner := trimmed[1 : len(trimmed)-1]
		return !strings.ContainsAny(inner, "[]")
	}
	return false
}

// isNameExtension reports whether parenthetical content is a screenplay name
// extension ("V.O.", "O.S.", "CONT'D") rather than spoken text.
func isNameExtension(content string) bool {
	switch strings.ToUpper(strings.TrimSpace(content)) {
	case "V.O.", "VO", "V.O", "O.S.", "OS", "O.S", "O.C.", "CONT'D", "CONTD",
		"CONTINUED", "VOICE OVER", "VOICE-OVER", "OFF SCREEN", "OFF-SCREEN":
		return true
	}
	return false
}

// plausibleName reports whether a failed speaker candidate looked like a name
// rather than arbitrary prose, which decides whether the failure is worth an
// UnresolvedAttribution diagnostic.
func plausibleName(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}
	if !IsCharacterCandidate(candidate) {
		return false
	}
	normalized := normalizeCandidate(candidate)
	if _, denied := denyList[normalized]; denied {
		return false
	}
	return !isCueMarkupKeyword(normalized)
}
