package creative

import (
	"context"
	"math/rand/v2"

	"github.com/abhisek/tutor/internal/i18n"
	"github.com/abhisek/tutor/internal/question"
)

// prompts is the static prompt pool, keyed by subject.
var prompts = map[string][]string{
	"Maths": {
		"Invent a real-life situation where quadratic equations naturally arise. Explain how you'd model it.",
		"Design a puzzle using arithmetic progressions that has a surprising twist.",
		"Explain derivatives to a 10-year-old using a story or analogy.",
	},
	"Physics": {
		"Design a home experiment to show Newton's Third Law using kitchen items. Outline steps and observations.",
		"What if gravity were 20% stronger? Predict 3 changes in sports or architecture.",
		"Explain wave-particle duality using a simple metaphor and a drawing plan.",
	},
	"Chemistry": {
		"Create a kitchen-safe experiment to demonstrate an acid-base reaction. Include safety notes.",
		"Imagine a world where hydrogen bonds didn't exist. How would life change?",
		"Explain Le Chatelier's principle with a story about balance and choices.",
	},
	"Biology": {
		"If humans could photosynthesize, how would city life and school schedules change?",
		"Design a simple at-home model to explain DNA replication.",
		"Propose a school garden plan that boosts biodiversity and learning.",
	},
}

// Subjects lists the subjects that have their own prompts.
func Subjects() []string {
	return []string{"Maths", "Physics", "Chemistry", "Biology"}
}

// Prompts returns the prompt pool for subject, or nil when the subject
// has none.
func Prompts(subject string) []string {
	for name, pool := range prompts {
		if question.SameSubject(name, subject) {
			return pool
		}
	}
	return nil
}

// Prompt returns a random prompt for subject. Subjects without a pool get
// the general prompt from the message catalog. A nil rng uses the global
// source.
func Prompt(ctx context.Context, subject string, rng *rand.Rand) string {
	pool := Prompts(subject)
	if len(pool) == 0 {
		return i18n.T(ctx, "GeneralPrompt")
	}
	if rng != nil {
		return pool[rng.IntN(len(pool))]
	}
	return pool[rand.IntN(len(pool))]
}
