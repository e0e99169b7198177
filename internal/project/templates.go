package project

// Template is a guided project with ordered steps.
type Template struct {
	ID      string
	Title   string
	Subject string
	Steps   []string
}

var templates = []Template{
	{
		ID:      "proj_solar_cooker",
		Title:   "Build a Simple Solar Cooker (Physics + Design)",
		Subject: "Physics",
		Steps: []string{
			"Research how solar cookers concentrate sunlight.",
			"Sketch your design (box, foil, plastic wrap).",
			"List materials and cost.",
			"Build a prototype and record temperature over 20 minutes.",
			"Reflect: how would you improve it?",
		},
	},
	{
		ID:      "proj_ecosystem_terrarium",
		Title:   "Create a Closed Terrarium Ecosystem (Biology + Ecology)",
		Subject: "Biology",
		Steps: []string{
			"Plan components: soil, small plants/moss, stones, water.",
			"Explain energy flow and cycles (water, nutrients) inside.",
			"Build the terrarium; add observations for 2 weeks.",
			"Identify any imbalance and propose fixes.",
			"Share photos and a 5-sentence reflection.",
		},
	},
	{
		ID:      "proj_titration_at_home",
		Title:   "Kitchen Acid-Base 'Titration' (Chemistry + Inquiry)",
		Subject: "Chemistry",
		Steps: []string{
			"Create a red-cabbage indicator (or use litmus strips).",
			"Pick two household solutions to compare (vinegar, baking soda solution).",
			"Design a step-by-step neutralization attempt.",
			"Record color changes and estimate relative acidity/basicity.",
			"Reflect on sources of error and how to improve accuracy.",
		},
	},
	{
		ID:      "proj_real_life_quadratics",
		Title:   "Quadratics in Real Life (Maths + Modeling)",
		Subject: "Maths",
		Steps: []string{
			"Find a real problem involving a parabolic path or area optimization.",
			"Model it as a quadratic function.",
			"Solve and interpret the roots/vertex in context.",
			"Validate with a quick simulation or estimates.",
			"Present your model and limitations.",
		},
	},
}

// Templates returns every project template in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Lookup returns the template with the given id.
func Lookup(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
