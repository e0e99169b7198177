package creative

import (
	"context"
	"strings"

	"github.com/abhisek/tutor/internal/i18n"
)

const (
	// depthThreshold is the trimmed length above which a submission earns
	// the depth badge.
	depthThreshold = 600

	// shortThreshold is the trimmed length below which a submission is
	// asked to expand.
	shortThreshold = 120
)

// Badge identifies an award for a creative submission.
type Badge string

const (
	BadgeDepth            Badge = "Depth"
	BadgeReasoning        Badge = "Reasoning"
	BadgeImagination      Badge = "Imagination"
	BadgeScientificMethod Badge = "ScientificMethod"
	BadgeDesignThinking   Badge = "DesignThinking"
)

// keywordBadges are awarded when any of their keywords appear in the
// lower-cased text. Order is the display order.
var keywordBadges = []struct {
	badge    Badge
	keywords []string
}{
	{BadgeReasoning, []string{"because", "therefore", "hence", "so that"}},
	{BadgeImagination, []string{"imagine", "what if", "suppose", "let's assume"}},
	{BadgeScientificMethod, []string{"experiment", "steps", "hypothesis", "observe", "materials"}},
	{BadgeDesignThinking, []string{"design", "prototype", "sketch", "diagram", "model"}},
}

// Label returns the localized badge name.
func (b Badge) Label(ctx context.Context) string {
	return i18n.T(ctx, "Badge"+string(b))
}

// Feedback is the rubric result for one submission.
type Feedback struct {
	Badges   []Badge
	Comments []string
}

// BadgeLabels returns the localized names of f's badges.
func (f Feedback) BadgeLabels(ctx context.Context) []string {
	out := make([]string, 0, len(f.Badges))
	for _, b := range f.Badges {
		out = append(out, b.Label(ctx))
	}
	return out
}

// Assess applies the fixed length and keyword rubric to text.
func Assess(ctx context.Context, text string) Feedback {
	length := len([]rune(strings.TrimSpace(text)))
	lower := strings.ToLower(text)

	var fb Feedback
	if length > depthThreshold {
		fb.Badges = append(fb.Badges, BadgeDepth)
	}
	for _, kb := range keywordBadges {
		if containsAny(lower, kb.keywords) {
			fb.Badges = append(fb.Badges, kb.badge)
		}
	}

	if length < shortThreshold {
		fb.Comments = append(fb.Comments, i18n.T(ctx, "CommentExpand"))
	} else {
		fb.Comments = append(fb.Comments, i18n.T(ctx, "CommentSummary"))
	}
	if strings.Contains(lower, "experiment") && !strings.Contains(lower, "safety") {
		fb.Comments = append(fb.Comments, i18n.T(ctx, "CommentSafety"))
	}
	if len(fb.Badges) == 0 {
		fb.Comments = append(fb.Comments, i18n.T(ctx, "CommentNoBadges"))
	}
	return fb
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
