package recommend

import (
	"fmt"
	"strings"

	"github.com/ecooyster/prediction-service/internal/domain"
)

// systemPrompt steers the model away from narrating its own reasoning. The
// sanitizer still enforces this when the model ignores it.
const systemPrompt = "You are a concise expert. Output ONLY the final recommendations. " +
	"No explanations, no thinking process, no meta-commentary."

// Categories are the fixed recommendation sections, in output order.
var Categories = []string{
	"Farming Technique Optimization",
	"Salinity Management",
	"Weather & Disaster Preparedness",
	"Environmental Monitoring",
	"Production Timing",
	"Best Practices & Sustainability",
}

// EventPhrase formats an event count, e.g. "1 event(s)" or "3 events".
func EventPhrase(n int) string {
	if n == 1 {
		return "1 event(s)"
	}
	return fmt.Sprintf("%d events", n)
}

// BuildPrompt composes the chat-completion prompt for one prediction. The
// optional temperature, storm, and severe-event readings only enrich the input
// summary; the required fields and the estimate drive the instructions.
func BuildPrompt(in domain.PredictionInput, estimate float64) domain.Prompt {
	technique := domain.TechniqueLabel(in.Technique)
	typhoons := EventPhrase(in.TyphoonCount)
	floods := EventPhrase(in.FloodCount)

	var inputData strings.Builder
	fmt.Fprintf(&inputData, "- Predicted production: %.2f metric tons\n", estimate)
	fmt.Fprintf(&inputData, "- Salinity: %g ppt\n", in.Salinity)
	fmt.Fprintf(&inputData, "- Farming Technique: %s\n", technique)
	fmt.Fprintf(&inputData, "- Typhoons: %s\n", typhoons)
	fmt.Fprintf(&inputData, "- Floods: %s", floods)
	if in.Temperature != nil {
		fmt.Fprintf(&inputData, "\n- Water Temperature: %g °C", *in.Temperature)
	}
	if in.StormCount != nil {
		fmt.Fprintf(&inputData, "\n- Storms: %s", EventPhrase(*in.StormCount))
	}
	if in.SevereEventCount != nil {
		fmt.Fprintf(&inputData, "\n- Severe Weather Events: %s", EventPhrase(*in.SevereEventCount))
	}

	user := fmt.Sprintf(`You are an expert aquaculture consultant specializing in oyster farming. Generate AI-driven recommendations that are fully aligned with the predicted oyster production of %.2f metric tons and the specific farming technique (%s) being used.

Input data:
%s

CRITICAL REQUIREMENTS:
1. Every recommendation MUST directly reflect and align with the predicted production value of %.2f metric tons
2. All suggestions must be specific to the %s farming technique
3. Provide actionable guidance to optimize production, improve efficiency, and maintain sustainability
4. Emphasize practical strategies that maximize yield based on the predicted results
5. Consider the local environmental conditions (salinity: %g ppt, weather events)
6. Incorporate best aquaculture practices relevant to the specific conditions
7. Recommendations should help achieve or exceed the predicted %.2f metric tons production
8. Start directly with category headers - NO introductory sentences, NO meta-commentary, NO explanations

Output format (provide specific, actionable recommendations):

**%s**
• [Specific action for %s to optimize production toward %.2f metric tons]
• [Action to improve efficiency with %s]

**%s**
• [Action to manage %g ppt salinity for optimal production]
• [Strategy to maintain ideal salinity conditions]

**%s**
• [Action based on %s typhoons, %s floods]
• [Preparedness strategy for the specific weather conditions]

**%s**
• [Monitoring action for optimal production conditions]
• [Tracking strategy for production optimization]

**%s**
• [Timing strategy to maximize yield toward %.2f metric tons]
• [Schedule optimization based on environmental conditions]

**%s**
• [Sustainable practice to maintain long-term production]
• [Best practice to improve efficiency and yield]

Begin immediately with "**%s**" - no other text before it. All recommendations must be practical, actionable, and directly relevant to achieving the predicted production.`,
		estimate, technique,
		inputData.String(),
		estimate, technique, in.Salinity, estimate,
		Categories[0], technique, estimate, technique,
		Categories[1], in.Salinity,
		Categories[2], typhoons, floods,
		Categories[3],
		Categories[4], estimate,
		Categories[5],
		Categories[0],
	)

	return domain.Prompt{System: systemPrompt, User: user}
}
