package models

// RecommendationSource tags the three possible recommendation outcomes. The
// fallback flag and display message are derived from the tag, never set
// independently.
type RecommendationSource string

const (
	RecommendationPersonalized RecommendationSource = "personalized"
	RecommendationPopular      RecommendationSource = "popular"
	RecommendationEmpty        RecommendationSource = "empty"
)

type RecommendationResult struct {
	Source   RecommendationSource `json:"source"`
	Fallback bool                 `json:"fallback"`
	Message  string               `json:"message"`
	Books    []Book               `json:"books"`
}

func PersonalizedRecommendations(books []Book) *RecommendationResult {
	return &RecommendationResult{
		Source:   RecommendationPersonalized,
		Fallback: false,
		Message:  "Based on your reading history",
		Books:    books,
	}
}

func FallbackToPopular(books []Book) *RecommendationResult {
	return &RecommendationResult{
		Source:   RecommendationPopular,
		Fallback: true,
		Message:  "We couldn't find readers with similar taste, here are some popular books",
		Books:    books,
	}
}

func EmptyRecommendations() *RecommendationResult {
	return &RecommendationResult{
		Source:   RecommendationEmpty,
		Fallback: false,
		Message:  "No recommendations available",
		Books:    []Book{},
	}
}
