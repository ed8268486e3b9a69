// Package classify derives a post's display kind from its raw url and
// content fields. The backend stores no explicit kind tag, so this runs on
// every record of every fetch.
package classify

import (
	"regexp"

	"github.com/verilab/verifeed/model"
)

// imagePattern matches urls pointing directly at an image resource.
var imagePattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg)$`)

// Result is the derived presentation of a raw post record.
type Result struct {
	Kind           model.PostKind
	DisplayContent string
	DisplayImage   string
}

// Classify applies the classification cascade. The precedence is a policy
// decision and must not be reordered: an image-suffixed url always wins over
// a generic url, and any url wins over free-text content.
func Classify(raw *model.RawPost) Result {
	if raw.Url != "" {
		if imagePattern.MatchString(raw.Url) {
			content := raw.Content
			if content == "" {
				content = raw.Title
			}
			return Result{
				Kind:           model.KindImage,
				DisplayContent: content,
				DisplayImage:   raw.Url,
			}
		}
		// For url posts the url itself is what gets shown; the raw
		// content is discarded for display purposes.
		return Result{Kind: model.KindUrl, DisplayContent: raw.Url}
	}
	return Result{Kind: model.KindText, DisplayContent: raw.Content}
}

// Apply converts a raw record into a domain post with its derived kind and
// display payload filled in.
func Apply(raw *model.RawPost) model.Post {
	post := raw.ToPost()
	res := Classify(raw)
	post.Kind = res.Kind
	post.Content = res.DisplayContent
	post.ImageUrl = res.DisplayImage
	return post
}
