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

// Package screenplay_test contains the test suite for the parser core. This
// file tests the character name matcher: the tiered matching policy, the
// deny-list, and the honorific-prefix buffer.
package screenplay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/go-script-timeline/internal/core/model"
	"github.com/jaycherian/go-script-timeline/internal/core/screenplay"
)

func newMatcher(names ...string) *screenplay.CharacterNameMatcher {
	return screenplay.NewCharacterNameMatcher(model.NewRoster(names))
}

// TestMatcherExact verifies tier 1: exact case-insensitive equality returns
// the canonical roster spelling.
func TestMatcherExact(t *testing.T) {
	m := newMatcher("Sarah", "John")

	canon, ok := m.Match("SARAH")
	assert.True(t, ok)
	assert.Equal(t, "Sarah", canon)

	canon, ok = m.Match("john")
	assert.True(t, ok)
	assert.Equal(t, "John", canon)
}

// TestMatcherSubstring verifies tier 2: containment in either direction.
func TestMatcherSubstring(t *testing.T) {
	m := newMatcher("Mrs. Petunia Dursley")

	canon, ok := m.Match("MRS. DURSLEY")
	assert.True(t, ok)
	assert.Equal(t, "Mrs. Petunia Dursley", canon)

	// The short roster entry matched inside a longer candidate.
	m = newMatcher("Sarah")
	canon, ok = m.Match("YOUNG SARAH")
	assert.True(t, ok)
	assert.Equal(t, "Sarah", canon)
}

// TestMatcherWordSubset verifies tier 3: every candidate token appears among
// the roster entry's tokens, title punctuation stripped.
func TestMatcherWordSubset(t *testing.T) {
	m := newMatcher("Professor Albus Dumbledore")

	canon, ok := m.Match("ALBUS PROFESSOR")
	assert.True(t, ok)
	assert.Equal(t, "Professor Albus Dumbledore", canon)
}

// TestMatcherSurname verifies tier 4: final-token equality.
func TestMatcherSurname(t *testing.T) {
	m := newMatcher("Harry Potter")

	canon, ok := m.Match("JAMES POTTER")
	assert.True(t, ok)
	assert.Equal(t, "Harry Potter", canon)
}

// TestMatcherDenyList verifies that structural vocabulary never resolves,
// even when it would overlap a roster entry through the looser tiers.
func TestMatcherDenyList(t *testing.T) {
	m := newMatcher("Night King", "The Crowd Pleaser")

	for _, candidate := range []string{"NIGHT", "CROWD", "CUT TO", "FADE OUT", "INT", "DAY", "EVERYONE"} {
		_, ok := m.Match(candidate)
		assert.False(t, ok, "deny-listed candidate resolved: %s", candidate)
	}

	// The full roster names still resolve normally.
	canon, ok := m.Match("NIGHT KING")
	assert.True(t, ok)
	assert.Equal(t, "Night King", canon)
}

// TestMatcherHonorificAlone verifies that an honorific with no name attached
// never resolves, even as a substring of a roster entry.
func TestMatcherHonorificAlone(t *testing.T) {
	m := newMatcher("Mrs. Petunia Dursley")

	_, ok := m.Match("MRS.")
	assert.False(t, ok)
	_, ok = m.Match("MR")
	assert.False(t, ok)
}

// TestMatcherHonorificBuffer verifies the cross-line buffer: an
// honorific-only line is held and combined with the following candidate.
func TestMatcherHonorificBuffer(t *testing.T) {
	m := newMatcher("Mrs. Petunia Dursley")

	canon, matched, buffered := m.MatchLine("MRS.")
	assert.False(t, matched)
	assert.True(t, buffered)
	assert.Equal(t, "", canon)

	canon, matched, buffered = m.MatchLine("DURSLEY")
	assert.True(t, matched)
	assert.False(t, buffered)
	assert.Equal(t, "Mrs. Petunia Dursley", canon)
}

// TestMatcherHonorificBufferCleared verifies the buffer is dropped by
// ClearPending, matching the scan's behavior on blank lines and scene
// transitions.
func TestMatcherHonorificBufferCleared(t *testing.T) {
	m := newMatcher("Mr. Vernon Dursley")

	_, _, buffered := m.MatchLine("MR.")
	assert.True(t, buffered)
	m.ClearPending()

	// Without the buffer, a bare surname still resolves through tier 2, but
	// the combined-form retry must not have consumed the line.
	canon, matched, buffered := m.MatchLine("VERNON")
	assert.True(t, matched)
	assert.False(t, buffered)
	assert.Equal(t, "Mr. Vernon Dursley", canon)
}

// TestIsCharacterCandidate verifies the pre-filter applied before any roster
// comparison.
func TestIsCharacterCandidate(t *testing.T) {
	assert.True(t, screenplay.IsCharacterCandidate("SARAH"))
	assert.True(t, screenplay.IsCharacterCandidate("JOHN (V.O.)"))
	assert.True(t, screenplay.IsCharacterCandidate("MRS. DURSLEY (CONT'D)"))

	assert.False(t, screenplay.IsCharacterCandidate("Sarah"))          // Mixed case.
	assert.False(t, screenplay.IsCharacterCandidate("SARAH: hello"))   // Colon.
	assert.False(t, screenplay.IsCharacterCandidate(""))               // Empty.
	assert.False(t, screenplay.IsCharacterCandidate("(hesitant)"))     // No letters outside the extension.
	assert.False(t, screenplay.IsCharacterCandidate(makeLongLine(70))) // Too long.
}

func makeLongLine(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = 'A'
	}
	return string(out)
}
