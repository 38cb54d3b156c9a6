package session

import (
	"regexp"
	"sort"
	"strings"
)

// Constraint is a normalized dietary or preparation preference detected in a
// user utterance. At most one constraint per Type is active in a session.
type Constraint struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Degree string `json:"degree,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Constraint actions.
const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
	ActionEnforce  = "enforce"
	ActionRemove   = "remove"
)

// Constraint degrees.
const (
	DegreeLight  = "light"
	DegreeMedium = "medium"
	DegreeStrong = "strong"
)

// keywordTable maps utterance phrases to constraints. Matching is plain
// substring containment on the lowercased utterance; more specific phrases
// simply coexist with their shorter forms and both may fire.
var keywordTable = map[string]Constraint{
	// spice level
	"spicy":          {Type: "spice_level", Action: ActionIncrease, Degree: DegreeMedium},
	"extra spicy":    {Type: "spice_level", Action: ActionIncrease, Degree: DegreeStrong},
	"less spicy":     {Type: "spice_level", Action: ActionDecrease, Degree: DegreeLight},
	"not spicy":      {Type: "spice_level", Action: ActionDecrease, Degree: DegreeStrong},
	"mild":           {Type: "spice_level", Action: ActionDecrease, Degree: DegreeMedium},
	"can't eat spicy": {Type: "spice_level", Action: ActionDecrease, Degree: DegreeMedium},
	"매운":             {Type: "spice_level", Action: ActionIncrease, Degree: DegreeMedium},
	"더 매운":           {Type: "spice_level", Action: ActionIncrease, Degree: DegreeStrong},
	"덜 매운":           {Type: "spice_level", Action: ActionDecrease, Degree: DegreeLight},
	"안 매운":           {Type: "spice_level", Action: ActionDecrease, Degree: DegreeStrong},

	// oil
	"less oil":   {Type: "oil", Action: ActionDecrease, Degree: DegreeMedium},
	"no oil":     {Type: "oil", Action: ActionDecrease, Degree: DegreeStrong},
	"low fat":    {Type: "oil", Action: ActionDecrease, Degree: DegreeStrong},
	"more oil":   {Type: "oil", Action: ActionIncrease, Degree: DegreeMedium},
	"기름 적게":      {Type: "oil", Action: ActionDecrease, Degree: DegreeStrong},
	"저지방":        {Type: "oil", Action: ActionDecrease, Degree: DegreeStrong},

	// salt
	"less salt":  {Type: "low_salt", Action: ActionDecrease, Degree: DegreeMedium},
	"low sodium": {Type: "low_salt", Action: ActionDecrease, Degree: DegreeStrong},
	"saltier":    {Type: "low_salt", Action: ActionIncrease, Degree: DegreeMedium},
	"저염":         {Type: "low_salt", Action: ActionDecrease, Degree: DegreeStrong},
	"덜 짜게":       {Type: "low_salt", Action: ActionDecrease, Degree: DegreeMedium},

	// sweetness / sourness
	"sweeter":    {Type: "sweetness", Action: ActionIncrease, Degree: DegreeMedium},
	"less sweet": {Type: "sweetness", Action: ActionDecrease, Degree: DegreeMedium},
	"low sugar":  {Type: "low_sugar", Action: ActionDecrease, Degree: DegreeStrong},
	"diabetic":   {Type: "low_sugar", Action: ActionDecrease, Degree: DegreeStrong},
	"more sour":  {Type: "sourness", Action: ActionIncrease, Degree: DegreeMedium},
	"less sour":  {Type: "sourness", Action: ActionDecrease, Degree: DegreeMedium},
	"더 달게":       {Type: "sweetness", Action: ActionIncrease, Degree: DegreeMedium},
	"덜 달게":       {Type: "sweetness", Action: ActionDecrease, Degree: DegreeMedium},

	// vegan / vegetarian
	"vegan":        {Type: "vegan", Action: ActionEnforce, Degree: DegreeStrong},
	"vegetarian":   {Type: "vegan", Action: ActionEnforce, Degree: DegreeStrong},
	"without meat": {Type: "vegan", Action: ActionEnforce, Degree: DegreeStrong},
	"비건":           {Type: "vegan", Action: ActionEnforce, Degree: DegreeStrong},
	"채식":           {Type: "vegan", Action: ActionEnforce, Degree: DegreeStrong},

	// allergies
	"peanut allergy":    {Type: "allergy", Action: ActionRemove, Value: "peanut"},
	"nut allergy":       {Type: "allergy", Action: ActionRemove, Value: "nuts"},
	"shellfish allergy": {Type: "allergy", Action: ActionRemove, Value: "shellfish"},
	"egg allergy":       {Type: "allergy", Action: ActionRemove, Value: "egg"},
	"milk allergy":      {Type: "allergy", Action: ActionRemove, Value: "milk"},
	"lactose":           {Type: "allergy", Action: ActionRemove, Value: "milk"},
	"땅콩":                {Type: "allergy", Action: ActionRemove, Value: "땅콩"},
	"갑각류":               {Type: "allergy", Action: ActionRemove, Value: "갑각류"},
	"계란 알레르기":           {Type: "allergy", Action: ActionRemove, Value: "달걀"},

	// dietary regimes
	"gluten free":  {Type: "gluten_free", Action: ActionEnforce, Degree: DegreeStrong},
	"gluten-free":  {Type: "gluten_free", Action: ActionEnforce, Degree: DegreeStrong},
	"lactose free": {Type: "lactose_free", Action: ActionEnforce, Degree: DegreeStrong},
	"halal":        {Type: "halal", Action: ActionEnforce, Degree: DegreeStrong},
	"kosher":       {Type: "kosher", Action: ActionEnforce, Degree: DegreeStrong},
	"low calorie":  {Type: "low_calorie", Action: ActionDecrease, Degree: DegreeStrong},
	"diet":         {Type: "low_calorie", Action: ActionDecrease, Degree: DegreeStrong},

	// ingredient removal
	"without onion":  {Type: "ingredient_remove", Action: ActionRemove, Value: "onion"},
	"without garlic": {Type: "ingredient_remove", Action: ActionRemove, Value: "garlic"},
	"without pork":   {Type: "ingredient_remove", Action: ActionRemove, Value: "pork"},
	"양파 없이":          {Type: "ingredient_remove", Action: ActionRemove, Value: "양파"},
	"마늘 없이":          {Type: "ingredient_remove", Action: ActionRemove, Value: "마늘"},

	// cooking method
	"no frying":  {Type: "cooking_method", Action: ActionRemove, Value: "frying"},
	"steamed":    {Type: "cooking_method", Action: ActionEnforce, Value: "steaming"},
	"baked":      {Type: "cooking_method", Action: ActionEnforce, Value: "baking"},
	"microwave":  {Type: "cooking_method", Action: ActionEnforce, Value: "microwave"},
	"튀김 없이":      {Type: "cooking_method", Action: ActionRemove, Value: "튀김"},

	// effort
	"quick":  {Type: "quick_cooking", Action: ActionEnforce, Degree: DegreeMedium},
	"simple": {Type: "simple_cooking", Action: ActionEnforce, Degree: DegreeMedium},
	"easy":   {Type: "simple_cooking", Action: ActionEnforce, Degree: DegreeMedium},
	"간단하게":   {Type: "simple_cooking", Action: ActionEnforce, Degree: DegreeMedium},
	"빠르게":    {Type: "quick_cooking", Action: ActionEnforce, Degree: DegreeMedium},
}

// sortedKeywords fixes the scan order. Upserting goes "last match wins", so a
// deterministic key order keeps conflicting matches (say "less spicy" and
// "extra spicy" in one utterance) reproducible across runs.
var sortedKeywords = func() []string {
	keys := make([]string, 0, len(keywordTable))
	for k := range keywordTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// ParseConstraints scans an utterance for constraint keywords. Several
// independent keywords may match and yield several constraints; negation and
// other phrasing subtleties are not modeled.
func ParseConstraints(utterance string) []Constraint {
	lowered := strings.ToLower(utterance)
	var out []Constraint
	for _, kw := range sortedKeywords {
		if strings.Contains(lowered, kw) {
			out = append(out, keywordTable[kw])
		}
	}
	return out
}

var commandStripRe = regexp.MustCompile(`[.\s,，。]+`)

// nextCommands are the accepted spellings of the step-navigation command after
// punctuation and whitespace are stripped.
var nextCommands = map[string]struct{}{
	"next":  {},
	"다음":    {},
	"다음단계":  {},
	"다음단계로": {},
	"다음으로":  {},
	"넥스트":   {},
}

// IsNextCommand reports whether an utterance is a step-navigation command.
func IsNextCommand(utterance string) bool {
	normalized := strings.ToLower(commandStripRe.ReplaceAllString(utterance, ""))
	_, ok := nextCommands[normalized]
	return ok
}
