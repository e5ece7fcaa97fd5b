// Package recommend matches a questionnaire response against the program
// catalog and returns ranked recommendations.
//
// A request runs through five stages:
//
//  1. Vectorize: the text of each answer category is embedded in one batch
//     and the non-zero vectors are averaged into a query vector.
//  2. Filter: candidates are narrowed by school type, location and budget.
//  3. Score: cosine similarity between the query and each candidate.
//  4. Blend: the school's category rating is folded into the similarity.
//  5. Classify and assemble: results at or above the threshold are strong
//     matches, the rest are weak; the response falls back to the best weak
//     matches when nothing is strong.
//
// The engine reads the catalog through storage.CatalogRepository and never
// modifies it. Concurrent calls to Recommend share no mutable state.
//
// Example usage:
//
//	engine, err := recommend.NewEngine(cache, provider)
//	if err != nil {
//		return err
//	}
//
//	answers := core.NewUserAnswers().
//		Select(core.CategoryAcademics, "biology", "chemistry").
//		SetCustom(core.CategoryGoals, "become a doctor")
//
//	resp, err := engine.Recommend(ctx, answers, recommend.Filter{SchoolType: "any"})
//	if recommend.IsRetryable(err) {
//		// embedding provider trouble, try again later
//	}
package recommend
