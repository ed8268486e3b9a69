package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/verilab/verifeed/utils"
)

// PostKind is derived from a post's raw url/content fields on every fetch.
// It is never stored server-side.
type PostKind string

const (
	KindUrl   PostKind = "url"
	KindText  PostKind = "text"
	KindImage PostKind = "image"
)

// Verdict is the server-computed judgment of content truthfulness.
type Verdict string

const (
	VerdictReal      Verdict = "real"
	VerdictFake      Verdict = "fake"
	VerdictUncertain Verdict = "uncertain"
)

/*

Post is a single community submission as the client renders it.

Id: string form of the server-assigned identifier
AuthorId/AuthorName: the user who submitted the post
Title: required at creation, non-empty
Content: display payload derived by the classifier, not necessarily the raw
	server content (for url posts the url itself is what gets shown)
ImageUrl: set only when Kind is KindImage
Likes/Dislikes: client-incrementable counters seeded from server values
Comments: session-local only, always empty at fetch time
Kind: derived via classify.Classify, recomputed on every fetch
Verdict/CredibilityScore: nil until the server has analyzed the post
CreatedAt: zero when the server omits it

*/

type Post struct {
	Id               string
	AuthorId         string
	AuthorName       string
	Title            string
	Content          string
	ImageUrl         string
	Likes            int
	Dislikes         int
	Comments         []Comment
	Kind             PostKind
	Verdict          *Verdict
	CredibilityScore *float64
	CreatedAt        time.Time
}

// Analyzed reports whether the server attached any verification result.
func (p *Post) Analyzed() bool {
	return p.Verdict != nil || p.CredibilityScore != nil
}

// RawPost is the wire shape of a post as returned by the posts endpoints.
// The backend is dynamically typed: "real" may arrive as a bool, a string or
// null, and "credibility_score" as a number, a numeric string or null. All
// of that is interpreted here, once, at the boundary.
type RawPost struct {
	Id               json.RawMessage `json:"id"`
	UserId           json.RawMessage `json:"user_id"`
	User             *RawUser        `json:"user"`
	Title            string          `json:"title"`
	Content          string          `json:"content"`
	Url              string          `json:"url"`
	Likes            *int            `json:"likes"`
	Dislikes         *int            `json:"dislikes"`
	Real             json.RawMessage `json:"real"`
	CredibilityScore json.RawMessage `json:"credibility_score"`
	CreatedAt        string          `json:"created_at"`
}

// AuthorName resolves the embedded user record, with the same fallback the
// community view uses when the relation is missing.
func (r *RawPost) AuthorName() string {
	if r.User != nil && r.User.Username != "" {
		return r.User.Username
	}
	return "Unknown User"
}

// RealValue interprets the server's "real" field.
func (r *RawPost) RealValue() (value bool, ok bool) {
	s := strings.TrimSpace(string(r.Real))
	switch s {
	case "", "null":
		return false, false
	case "true":
		return true, true
	case "false":
		return false, true
	}
	var quoted string
	if err := json.Unmarshal(r.Real, &quoted); err == nil {
		return strings.EqualFold(quoted, "true"), true
	}
	return false, false
}

// ScoreValue interprets the server's "credibility_score" field.
func (r *RawPost) ScoreValue() (float64, bool) {
	s := strings.TrimSpace(string(r.CredibilityScore))
	if s == "" || s == "null" {
		return 0, false
	}
	var num float64
	if err := json.Unmarshal(r.CredibilityScore, &num); err == nil {
		return num, true
	}
	var quoted string
	if err := json.Unmarshal(r.CredibilityScore, &quoted); err == nil {
		if parsed, perr := strconv.ParseFloat(quoted, 64); perr == nil {
			return parsed, true
		}
	}
	return 0, false
}

// DeriveVerdict maps the wire fields to a display verdict. An explicit
// "real" boolean wins; otherwise a present score means the analysis ran but
// was inconclusive.
func (r *RawPost) DeriveVerdict() *Verdict {
	if real, ok := r.RealValue(); ok {
		v := VerdictFake
		if real {
			v = VerdictReal
		}
		return &v
	}
	if _, ok := r.ScoreValue(); ok {
		v := VerdictUncertain
		return &v
	}
	return nil
}

// rawId renders a raw identifier field (uuid string or integer) as a string.
func rawId(m json.RawMessage) string {
	s := strings.TrimSpace(string(m))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(m, &str); err == nil {
		return str
	}
	return s
}

// ToPost converts the wire record into the base domain post. Kind, display
// content and image url are left for the classifier to fill in.
func (r *RawPost) ToPost() Post {
	p := Post{
		Id:         rawId(r.Id),
		AuthorId:   rawId(r.UserId),
		AuthorName: r.AuthorName(),
		Title:      r.Title,
		Content:    r.Content,
		Comments:   []Comment{},
		Kind:       KindText,
		Verdict:    r.DeriveVerdict(),
	}
	if r.Likes != nil {
		p.Likes = *r.Likes
	}
	if r.Dislikes != nil {
		p.Dislikes = *r.Dislikes
	}
	if score, ok := r.ScoreValue(); ok {
		p.CredibilityScore = &score
	}
	if t, err := utils.ParseServerTime(r.CreatedAt); err == nil {
		p.CreatedAt = t
	}
	return p
}
