// Package ingredient normalizes raw ingredient strings to canonical names and
// classifies them into main ingredients and sub (seasoning/commodity) ingredients.
package ingredient

import (
	"strings"
	"unicode"
)

// descriptivePrefixes are preparation words that carry no identity, stripped
// from the front of a cleaned ingredient name. Order matters: longer or more
// specific forms come before their substrings.
var descriptivePrefixes = []string{
	"minced", "chopped", "sliced", "shredded", "grated", "diced",
	"dried", "fresh", "frozen", "ground", "roasted",
	"다진", "말린", "채썬", "썰은", "썬", "건", "생", "진", "새", "조리",
}

// synonyms maps near-duplicate spellings to one canonical term.
var synonyms = map[string]string{
	// Korean pairs
	"계란":   "달걀",
	"진간장": "간장",
	"백설탕": "설탕",
	"카놀라유": "식용유",
	"대파":   "파",
	"쪽파":   "파",
	"다진마늘": "마늘",
	// English pairs
	"scallion":    "greenonion",
	"springonion": "greenonion",
	"aubergine":   "eggplant",
	"cilantro":    "coriander",
	"courgette":   "zucchini",
	"soysauce":    "soy",
	"cookingoil":  "oil",
	"vegetableoil": "oil",
}

// subKeywords marks seasoning/commodity ingredients. An ingredient containing
// any of these is classified as a sub ingredient, everything else as main.
var subKeywords = []string{
	"salt", "sugar", "pepper", "oil", "water", "garlic", "onion",
	"soy", "vinegar", "sesame",
	"소금", "설탕", "후추", "간장", "된장", "고추장", "식초", "참기름",
	"식용유", "물", "마늘", "파", "양파",
}

// Normalize cleans a raw ingredient string to its canonical form. It keeps
// only Hangul and Latin letters, strips descriptive prefixes, and resolves
// synonym spellings. When cleaning leaves nothing, the raw input is returned
// unchanged rather than an empty token.
func Normalize(raw string) string {
	cleaned := stripNonLetters(raw)
	cleaned = strings.ToLower(cleaned)

	// Strip prefixes until a full pass removes nothing, so that the result
	// of Normalize is itself a fixed point.
	for {
		before := cleaned
		for _, prefix := range descriptivePrefixes {
			if rest, ok := strings.CutPrefix(cleaned, prefix); ok {
				cleaned = rest
			}
		}
		if cleaned == before {
			break
		}
	}

	if cleaned == "" {
		return raw
	}
	if canonical, ok := synonyms[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// Classify splits ingredients into main and sub sets after normalization.
// Ingredients matching a seasoning/commodity keyword become sub ingredients.
func Classify(ingredients []string) (main, sub []string) {
	for _, ing := range ingredients {
		cleaned := Normalize(ing)
		if IsSeasoning(cleaned) {
			sub = append(sub, cleaned)
		} else {
			main = append(main, cleaned)
		}
	}
	return main, sub
}

// IsSeasoning reports whether a normalized ingredient name matches the
// seasoning/commodity keyword set.
func IsSeasoning(name string) bool {
	for _, kw := range subKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// Matches reports whether two normalized ingredient names refer to the same
// ingredient. Containment in either direction counts, so partial-word
// variants ("egg" vs "eggplant" aside, "chili" vs "chilipepper") still match.
func Matches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func stripNonLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) || unicode.Is(unicode.Latin, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
