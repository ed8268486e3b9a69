package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

const rawPostFixture = `
{
	"id": "f3b1c7e8-0000-4000-8000-000000000001",
	"user_id": "f3b1c7e8-0000-4000-8000-000000000002",
	"user": {"id": "f3b1c7e8-0000-4000-8000-000000000002", "username": "sarah", "email": "s@example.com"},
	"title": "Breaking: New Climate Study Results",
	"content": "",
	"url": "https://example.com/climate-study-2025",
	"likes": 234,
	"dislikes": 12,
	"real": "true",
	"credibility_score": "87.0",
	"created_at": "2026-08-28T10:00:00Z"
}`

func TestRawPostParsesStringTypedFields(t *testing.T) {
	var raw RawPost
	assert.NoError(t, json.Unmarshal([]byte(rawPostFixture), &raw))

	real, ok := raw.RealValue()
	assert.True(t, ok)
	assert.True(t, real)

	score, ok := raw.ScoreValue()
	assert.True(t, ok)
	assert.Equal(t, 87.0, score)

	post := raw.ToPost()
	assert.Equal(t, "f3b1c7e8-0000-4000-8000-000000000001", post.Id)
	assert.Equal(t, "sarah", post.AuthorName)
	assert.Equal(t, 234, post.Likes)
	assert.Equal(t, 12, post.Dislikes)
	assert.True(t, post.Analyzed())
	assert.Equal(t, VerdictReal, *post.Verdict)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestRawPostDefaults(t *testing.T) {
	var raw RawPost
	assert.NoError(t, json.Unmarshal([]byte(`{"title":"t"}`), &raw))

	post := raw.ToPost()
	assert.Equal(t, 0, post.Likes)
	assert.Equal(t, 0, post.Dislikes)
	assert.Equal(t, "Unknown User", post.AuthorName)
	assert.Nil(t, post.Verdict)
	assert.Nil(t, post.CredibilityScore)
	assert.False(t, post.Analyzed())
	assert.NotNil(t, post.Comments)
	assert.True(t, post.CreatedAt.IsZero())
}

func TestRealValueVariants(t *testing.T) {
	cases := []struct {
		raw   string
		value bool
		ok    bool
	}{
		{`true`, true, true},
		{`false`, false, true},
		{`"true"`, true, true},
		{`"True"`, true, true},
		{`"false"`, false, true},
		{`null`, false, false},
		{``, false, false},
	}
	for _, c := range cases {
		r := RawPost{Real: json.RawMessage(c.raw)}
		value, ok := r.RealValue()
		assert.Equal(t, c.ok, ok, c.raw)
		assert.Equal(t, c.value, value, c.raw)
	}
}

func TestScoreValueVariants(t *testing.T) {
	r := RawPost{CredibilityScore: json.RawMessage(`34`)}
	score, ok := r.ScoreValue()
	assert.True(t, ok)
	assert.Equal(t, 34.0, score)

	r = RawPost{CredibilityScore: json.RawMessage(`"not a number"`)}
	_, ok = r.ScoreValue()
	assert.False(t, ok)

	r = RawPost{CredibilityScore: json.RawMessage(`null`)}
	_, ok = r.ScoreValue()
	assert.False(t, ok)
}

func TestVerdictDerivation(t *testing.T) {
	r := RawPost{Real: json.RawMessage(`false`)}
	assert.Equal(t, VerdictFake, *r.DeriveVerdict())

	// Score without a real flag means the analysis ran but was
	// inconclusive.
	r = RawPost{CredibilityScore: json.RawMessage(`58`)}
	assert.Equal(t, VerdictUncertain, *r.DeriveVerdict())

	r = RawPost{}
	assert.Nil(t, r.DeriveVerdict())
}

func TestIntegerIdsRenderAsStrings(t *testing.T) {
	var raw RawPost
	assert.NoError(t, json.Unmarshal([]byte(`{"id": 42, "user_id": 7}`), &raw))
	post := raw.ToPost()
	assert.Equal(t, "42", post.Id)
	assert.Equal(t, "7", post.AuthorId)
}
