// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package curation

// Style is one curation perspective. Disabled styles stay in the table so
// re-enabling one is a single-field edit; only enabled styles are run.
type Style struct {
	Name        string
	Enabled     bool
	Instruction string
}

// styles is the full curation catalogue. Only Emotional ships enabled;
// the other perspectives were deemed too slow to run on every post view
// while each one costs a separate LLM round trip.
var styles = []Style{
	{
		Name:    "Emotional",
		Enabled: true,
		Instruction: `Explore the emotions and sentiments contained in this artwork in depth. Write lyrically, including the following elements:
- The main emotions and atmosphere conveyed by the work
- Emotional responses evoked by visual elements
- The special emotions given by the moment in the work
- Empathy and resonance that viewers can feel
- Lyrical characteristics and poetic expressions of the work`,
	},
	{
		Name:    "Interpretive",
		Enabled: false,
		Instruction: `Analyze the meaning and artistic techniques of the work in depth. Interpret it by including the following elements:
- The main visual elements of the work and their symbolism
- The effects of composition and color sense
- The artist's intention and message
- Artistic techniques used and their effects
- Philosophical/conceptual meaning conveyed by the work`,
	},
	{
		Name:    "Historical",
		Enabled: false,
		Instruction: `Analyze the work in depth in its historical and art historical context. Explain it by including the following elements:
- The historical background and characteristics of the era in which the work was produced
- Relationship with similar art trends or works
- Position and significance in modern art history
- Artistic/social impact of the work
- Interpretation of the work in its historical context`,
	},
	{
		Name:    "Critical",
		Enabled: false,
		Instruction: `Provide a professional and balanced critique of the work. Evaluate it by including the following elements:
- Technical completeness and artistry of the work
- Analysis of creativity and innovation
- Strengths and areas for improvement
- Artistic achievement and limitations
- Uniqueness and differentiation of the work`,
	},
	{
		Name:    "Narrative",
		Enabled: false,
		Instruction: `Unravel the work into an attractive story. Describe it by including the following elements:
- Vivid description of the scene in the work
- Relationship and story between the elements of appearance
- Flow and changes in time in the work
- Hidden drama and narrative in the scene
- Context before and after that viewers can imagine`,
	},
	{
		Name:    "Trend",
		Enabled: false,
		Instruction: `Analyze the work from the perspective of contemporary art trends. Evaluate it by including the following elements:
- Relevance to contemporary art trends
- Digital/technological innovation elements
- Meaning in the context of modern society/culture
- Contact with the latest art trends
- Implications for future art development`,
	},
}

// EnabledStyles returns the styles that run on a post view, in catalogue
// order.
func EnabledStyles() []Style {
	var out []Style
	for _, s := range styles {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}
