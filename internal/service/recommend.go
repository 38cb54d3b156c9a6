package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/cookduck/backend/config"
	"github.com/cookduck/backend/internal/ingredient"
	"github.com/cookduck/backend/internal/model"
	"github.com/cookduck/backend/internal/search"
)

// RecommendRequest asks for recipes matching the user's ingredients. Main and
// Sub are optional; when absent the ingredients are classified heuristically.
type RecommendRequest struct {
	Ingredients []string
	Main        []string
	Sub         []string
	MainWeight  float64
	TopK        int
}

// RecommendedRecipe is one ranked recommendation.
type RecommendedRecipe struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Ingredients     string    `json:"ingredients"`
	MainIngredients []string  `json:"main_ingredients"`
	SubIngredients  []string  `json:"sub_ingredients"`
	Content         string    `json:"content"`
	Score           float64   `json:"score"`
	MatchScore      float64   `json:"match_score"`
	MatchedMain     []string  `json:"matched_main_ingredients"`
	MatchedSub      []string  `json:"matched_sub_ingredients"`
	Distance        float64   `json:"distance"`
}

// RecommendService ranks candidate recipes by combining vector similarity with
// a main-weighted ingredient overlap score.
type RecommendService struct {
	db       *gorm.DB
	index    search.Index
	embedder Embedder
	cfg      config.RecommendConfig
	logger   *zap.Logger
}

// NewRecommendService creates the recommender over a similarity index and the
// relational recipe store.
func NewRecommendService(db *gorm.DB, index search.Index, embedder Embedder, cfg config.RecommendConfig, logger *zap.Logger) *RecommendService {
	return &RecommendService{db: db, index: index, embedder: embedder, cfg: cfg, logger: logger}
}

// Recommend runs the full pipeline: classify, embed, search, dedup, fetch,
// score, filter, rank. An empty result is not an error; only a broken index or
// collaborator is.
func (s *RecommendService) Recommend(ctx context.Context, req RecommendRequest) ([]RecommendedRecipe, error) {
	if len(req.Ingredients) == 0 && len(req.Main) == 0 && len(req.Sub) == 0 {
		return nil, ErrEmptyIngredients
	}
	mainWeight := req.MainWeight
	if mainWeight <= 0 {
		mainWeight = s.cfg.MainWeight
	}
	topK := req.TopK
	if topK <= 0 {
		topK = 20
	}

	userMain, userSub := req.Main, req.Sub
	if userMain == nil && userSub == nil {
		userMain, userSub = ingredient.Classify(req.Ingredients)
	} else {
		userMain = normalizeAll(userMain)
		userSub = normalizeAll(userSub)
	}
	s.logger.Debug("recommend request classified",
		zap.Strings("main", userMain),
		zap.Strings("sub", userSub),
	)

	query := RecommendQuery(userMain, userSub)
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := s.index.Search(ctx, vec, s.cfg.SearchK)
	if err != nil {
		return nil, err
	}

	candidates := dedupeByID(hits)

	records, err := s.fetchCandidates(ctx, candidates)
	if err != nil {
		return nil, err
	}

	seenTitles := make(map[string]struct{})
	results := make([]RecommendedRecipe, 0, len(records))
	for i, rec := range records {
		if rec == nil {
			continue // candidate id had no surviving row
		}
		if _, dup := seenTitles[rec.Title]; dup {
			continue
		}
		seenTitles[rec.Title] = struct{}{}

		recipeMain, recipeSub := s.recipeIngredients(ctx, rec)
		dist := candidates[i].Distance

		score := scoreCandidate(userMain, userSub, recipeMain, recipeSub, dist, mainWeight)

		// Minimum match floors: weak overall matches are dropped, and a
		// user with main ingredients gets candidates that either match
		// one of them or clear a higher bar.
		if len(userMain) > 0 && len(score.matchedMain) == 0 && score.weighted < 0.2 {
			continue
		}
		if score.weighted < 0.1 {
			continue
		}

		results = append(results, RecommendedRecipe{
			ID:              rec.ID,
			Title:           rec.Title,
			Ingredients:     rec.IngredientsRaw,
			MainIngredients: recipeMain,
			SubIngredients:  recipeSub,
			Content:         rec.Content,
			Score:           score.final,
			MatchScore:      score.weighted,
			MatchedMain:     score.matchedMain,
			MatchedSub:      score.matchedSub,
			Distance:        dist,
		})
	}

	// Rank: matched-main count dominates, final score breaks ties.
	sort.SliceStable(results, func(i, j int) bool {
		if len(results[i].MatchedMain) != len(results[j].MatchedMain) {
			return len(results[i].MatchedMain) > len(results[j].MatchedMain)
		}
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	s.logger.Info("recommendation complete",
		zap.Int("raw_hits", len(hits)),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// dedupeByID keeps one hit per recipe id, preferring the minimum distance and
// breaking ties by first appearance. Survivors come back sorted by ascending
// distance so later title-dedup is deterministic.
func dedupeByID(hits []search.Hit) []search.Hit {
	best := make(map[uuid.UUID]int, len(hits))
	order := make([]search.Hit, 0, len(hits))
	for _, h := range hits {
		if idx, ok := best[h.RecipeID]; ok {
			if h.Distance < order[idx].Distance {
				order[idx] = h
			}
			continue
		}
		best[h.RecipeID] = len(order)
		order = append(order, h)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Distance < order[j].Distance
	})
	return order
}

// fetchCandidates loads the candidate recipe rows with bounded parallelism.
// The returned slice is parallel to candidates; missing rows stay nil.
func (s *RecommendService) fetchCandidates(ctx context.Context, candidates []search.Hit) ([]*model.Recipe, error) {
	records := make([]*model.Recipe, len(candidates))
	g, gCtx := errgroup.WithContext(ctx)
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 8
	}
	g.SetLimit(workers)

	for i, hit := range candidates {
		i, hit := i, hit
		g.Go(func() error {
			var rec model.Recipe
			err := s.db.WithContext(gCtx).First(&rec, "id = ?", hit.RecipeID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("fetch candidate %s: %w", hit.RecipeID, err)
			}
			records[i] = &rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// recipeIngredients resolves a candidate's main/sub ingredient lists. The
// stored columns are authoritative; the ingredients table is the second
// source; the keyword heuristic over the raw list is the last resort.
func (s *RecommendService) recipeIngredients(ctx context.Context, rec *model.Recipe) (main, sub []string) {
	main = normalizeAll(rec.MainList())
	sub = normalizeAll(rec.SubList())
	if len(main) > 0 || len(sub) > 0 {
		return main, sub
	}

	var rows []model.RecipeIngredient
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", rec.ID).Find(&rows).Error; err == nil && len(rows) > 0 {
		for _, row := range rows {
			name := ingredient.Normalize(row.IngredientName)
			if row.IngredientType == "sub" {
				sub = append(sub, name)
			} else {
				main = append(main, name)
			}
		}
		return main, sub
	}

	return ingredient.Classify(rec.AllList())
}

type candidateScore struct {
	final       float64
	weighted    float64
	matchedMain []string
	matchedSub  []string
}

// scoreCandidate computes the composite score for one candidate.
//
// The weighted match score normalizes main-ingredient overlap (weighted) and
// sub-ingredient overlap (weight 1.0) into [0,1]. When any main ingredient
// matched, the blend leans on the match score (0.2 distance / 0.8 weighted);
// otherwise on the simple ratio (0.4 distance / 0.6 simple), since a recipe
// missing the user's primary ingredient is a poor pick however similar its
// text.
func scoreCandidate(userMain, userSub, recipeMain, recipeSub []string, distance, mainWeight float64) candidateScore {
	const subWeight = 1.0

	matchedMain := matchIngredients(userMain, recipeMain)
	matchedSub := matchIngredients(userSub, recipeSub)

	totalUser := len(userMain) + len(userSub)
	if totalUser == 0 {
		return candidateScore{}
	}

	var mainScore, subScore float64
	if len(userMain) > 0 {
		mainScore = float64(len(matchedMain)) / float64(len(userMain)) * mainWeight
	}
	if len(userSub) > 0 {
		subScore = float64(len(matchedSub)) / float64(len(userSub)) * subWeight
	}
	weighted := (mainScore + subScore) / (mainWeight + subWeight)

	simple := float64(len(matchedMain)+len(matchedSub)) / float64(totalUser)
	distScore := 1.0 / (1.0 + distance)

	var final float64
	if len(matchedMain) > 0 {
		final = 0.2*distScore + 0.8*weighted
	} else {
		final = 0.4*distScore + 0.6*simple
	}

	return candidateScore{
		final:       final,
		weighted:    weighted,
		matchedMain: matchedMain,
		matchedSub:  matchedSub,
	}
}

// matchIngredients returns the user ingredients found in the recipe list,
// using case-normalized containment in either direction.
func matchIngredients(user, recipe []string) []string {
	var matched []string
	for _, u := range user {
		for _, r := range recipe {
			if ingredient.Matches(u, r) {
				matched = append(matched, u)
				break
			}
		}
	}
	return matched
}

func normalizeAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, ingredient.Normalize(s))
	}
	return out
}
