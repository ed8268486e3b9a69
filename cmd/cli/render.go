package main

import (
	"fmt"
	"time"

	"github.com/verilab/verifeed/model"
)

// nowFunc is swappable in tests.
var nowFunc = time.Now

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// credibilityBand buckets a score the same way the post card colors its
// badge: high from 70, medium from 40, low below.
func credibilityBand(score float64) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}

func verdictLabel(p *model.Post) string {
	if p.Verdict == nil {
		return "not analyzed"
	}
	label := string(*p.Verdict)
	if p.CredibilityScore != nil {
		label += fmt.Sprintf(", credibility %.0f/100 (%s)",
			*p.CredibilityScore, credibilityBand(*p.CredibilityScore))
	}
	return label
}

func renderPost(index int, p model.Post) {
	fmt.Printf("[%d] %s — by %s\n", index, p.Title, p.AuthorName)
	fmt.Printf("    verdict: %s\n", verdictLabel(&p))
	switch p.Kind {
	case model.KindUrl:
		fmt.Printf("    link: %s\n", p.Content)
	case model.KindImage:
		fmt.Printf("    image: %s\n", p.ImageUrl)
		if p.Content != "" {
			fmt.Printf("    extracted text: %s\n", truncate(p.Content, 120))
		}
	default:
		fmt.Printf("    %s\n", truncate(p.Content, 160))
	}
	fmt.Printf("    +%d / -%d, %d comments\n", p.Likes, p.Dislikes, len(p.Comments))
}
