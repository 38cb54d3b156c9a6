package service

import (
	"fmt"
	"strings"

	"github.com/cookduck/backend/internal/session"
)

// Turn is one prior exchange in a conversation.
type Turn struct {
	Role    string
	Content string
}

// BuildChatPrompt assembles the final Llama 3.2 format prompt string sent to
// the completion endpoint: role-tagged sections terminated by end-of-turn
// markers, ending with an open assistant header for the model to continue.
func BuildChatPrompt(systemPrompt, userPrompt string, history []Turn) string {
	var b strings.Builder
	b.WriteString("<|begin_of_text|><|start_header_id|>system<|end_header_id|>\n\n")
	b.WriteString(systemPrompt)
	b.WriteString("<|eot_id|>")
	for _, turn := range history {
		role := turn.Role
		if role == "" {
			role = "user"
		}
		fmt.Fprintf(&b, "<|start_header_id|>%s<|end_header_id|>\n\n%s<|eot_id|>", role, turn.Content)
	}
	fmt.Fprintf(&b, "<|start_header_id|>user<|end_header_id|>\n\n%s<|eot_id|>", userPrompt)
	b.WriteString("<|start_header_id|>assistant<|end_header_id|>\n\n")
	return b.String()
}

// RecipeSystemPrompt builds the system prompt for free-form questions,
// constraining answers to the selected recipe and the user's active
// constraints.
func RecipeSystemPrompt(recipe session.Recipe, constraints []session.Constraint) string {
	var b strings.Builder
	b.WriteString("You are a helpful and polite cooking assistant named 'CookDuck'.\n")
	b.WriteString("You must answer strictly based on the [Recipe Info] below.\n")
	b.WriteString("If the user asks about ingredients, check the ingredients list.\n")
	b.WriteString("If the answer is not in the [Recipe Info], politely say you don't know.\n")
	b.WriteString("Do NOT make up information. Never recite the full recipe; the user walks ")
	b.WriteString("through it step by step by saying \"next\".\n")

	if lines := ConstraintLines(constraints); len(lines) > 0 {
		b.WriteString("\n[User Preferences]\n")
		for _, line := range lines {
			b.WriteString("- ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n---------------------\n[Recipe Info]\n")
	fmt.Fprintf(&b, "Title: %s\n", recipe.Title)
	if recipe.Ingredients != "" {
		fmt.Fprintf(&b, "Ingredients: %s\n", recipe.Ingredients)
	}
	b.WriteString("Cooking Steps:\n")
	for i, step := range recipe.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("---------------------\n")
	return b.String()
}

// ConstraintLines renders constraint records as natural-language instruction
// lines for prompt injection.
func ConstraintLines(constraints []session.Constraint) []string {
	var out []string
	for _, c := range constraints {
		if line := constraintLine(c); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func constraintLine(c session.Constraint) string {
	switch c.Type {
	case "spice_level":
		return adjustLine("the spice level", c)
	case "low_salt":
		return adjustLine("the saltiness", c)
	case "oil":
		return adjustLine("the amount of oil", c)
	case "sweetness":
		return adjustLine("the sweetness", c)
	case "sourness":
		return adjustLine("the sourness", c)
	case "vegan":
		return "keep the dish vegan: substitute meat and seafood with tofu, mushrooms, or kelp"
	case "allergy":
		return fmt.Sprintf("the user is allergic to %s; never suggest it", c.Value)
	case "ingredient_remove":
		return fmt.Sprintf("prepare the dish without %s", c.Value)
	case "cooking_method":
		if c.Action == session.ActionRemove {
			return fmt.Sprintf("avoid %s", c.Value)
		}
		return fmt.Sprintf("prefer %s", c.Value)
	case "gluten_free":
		return "keep the dish gluten free"
	case "lactose_free":
		return "keep the dish lactose free"
	case "halal":
		return "keep the dish halal"
	case "kosher":
		return "keep the dish kosher"
	case "low_calorie":
		return "keep the dish low in calories"
	case "low_sugar":
		return "keep the dish low in sugar"
	case "quick_cooking":
		return "keep suggestions quick to cook"
	case "simple_cooking":
		return "keep suggestions simple"
	default:
		return ""
	}
}

func adjustLine(what string, c session.Constraint) string {
	var amount string
	switch c.Degree {
	case session.DegreeLight:
		amount = "slightly"
	case session.DegreeStrong:
		amount = "a lot"
	default:
		amount = "moderately"
	}
	switch c.Action {
	case session.ActionIncrease:
		return fmt.Sprintf("increase %s %s", what, amount)
	case session.ActionDecrease:
		return fmt.Sprintf("reduce %s %s", what, amount)
	default:
		return ""
	}
}

// RecommendQuery builds the natural-language embedding query that emphasizes
// the main ingredients.
func RecommendQuery(main, sub []string) string {
	q := fmt.Sprintf("The main ingredients of this dish are %s.", strings.Join(main, ", "))
	if len(sub) > 0 {
		q += fmt.Sprintf(" The sub ingredients are %s.", strings.Join(sub, ", "))
	}
	return q
}
