package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/amazinbookstore/bookstore-platform/internal/api/middleware"
	"github.com/amazinbookstore/bookstore-platform/internal/cache"
	appErrors "github.com/amazinbookstore/bookstore-platform/internal/errors"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	repository "github.com/amazinbookstore/bookstore-platform/internal/repositories"
	"github.com/google/uuid"
)

// RecommendationService suggests books through user-user collaborative
// filtering over purchase histories (Jaccard similarity), with a
// deterministic popularity fallback when no similar readers exist.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) (*models.RecommendationResult, error)
}

type recommendationService struct {
	userRepo   repository.UserRepository
	bookRepo   repository.BookRepository
	cache      cache.Cache
	popularTTL time.Duration
}

func NewRecommendationService(userRepo repository.UserRepository, bookRepo repository.BookRepository, popularCache cache.Cache, popularTTL time.Duration) RecommendationService {
	return &recommendationService{
		userRepo:   userRepo,
		bookRepo:   bookRepo,
		cache:      popularCache,
		popularTTL: popularTTL,
	}
}

type similarUser struct {
	userID uuid.UUID
	// purchase list in purchase order, deduplicated on read
	purchases  []uuid.UUID
	similarity float64
}

func (s *recommendationService) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) (*models.RecommendationResult, error) {

	if limit <= 0 {
		return nil, appErrors.ValidationError("Limit must be positive")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("User not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	_, owned := dedupe(user.PurchasedBookIDs)

	// A user with no purchases has nothing to compare against; go straight
	// to the popularity fallback.
	if len(owned) == 0 {
		return s.popularFallback(ctx, owned, limit)
	}

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list users").WithError(err)
	}

	var candidates []similarUser

	for _, other := range users {
		if other.ID == userID {
			continue
		}

		purchases, otherSet := dedupe(other.PurchasedBookIDs)
		if len(otherSet) == 0 {
			continue
		}

		similarity := jaccardSimilarity(owned, otherSet)
		if similarity > 0 {
			candidates = append(candidates, similarUser{userID: other.ID, purchases: purchases, similarity: similarity})
		}
	}

	if len(candidates) == 0 {
		return s.popularFallback(ctx, owned, limit)
	}

	// Most similar reader first; ties broken by user id so the result is
	// deterministic for a fixed input.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].similarity != candidates[j].similarity {
			return candidates[i].similarity > candidates[j].similarity
		}

		return candidates[i].userID.String() < candidates[j].userID.String()
	})

	var recommendedIDs []uuid.UUID

	seen := make(map[uuid.UUID]struct{})

	for _, candidate := range candidates {
		for _, bookID := range candidate.purchases {
			if _, ok := owned[bookID]; ok {
				continue
			}

			if _, ok := seen[bookID]; ok {
				continue
			}

			seen[bookID] = struct{}{}
			recommendedIDs = append(recommendedIDs, bookID)
		}

		if len(recommendedIDs) >= limit {
			break
		}
	}

	books, err := s.resolveBooks(ctx, recommendedIDs, limit)
	if err != nil {
		return nil, err
	}

	// Similar readers exist but every candidate book is owned or deleted.
	if len(books) == 0 {
		return s.popularFallback(ctx, owned, limit)
	}

	return models.PersonalizedRecommendations(books), nil
}

type popularEntry struct {
	BookID uuid.UUID `json:"book_id"`
	Count  int       `json:"count"`
}

// popularFallback ranks books by how many users purchased them, excluding
// books the current user already owns. The global ranking is cached with a
// short TTL; owned-book filtering always happens after the cache read.
func (s *recommendationService) popularFallback(ctx context.Context, owned map[uuid.UUID]struct{}, limit int) (*models.RecommendationResult, error) {

	logger := middleware.LoggerFromContext(ctx)

	var ranking []popularEntry

	hit, err := s.cache.Get(ctx, cache.PopularBooksKey, &ranking)
	if err != nil {
		logger.Warn("Popularity cache read failed", slog.Any("error", err))
	}

	if !hit {
		users, err := s.userRepo.ListUsers(ctx)
		if err != nil {
			return nil, appErrors.DatabaseError("Failed to list users").WithError(err)
		}

		counts := make(map[uuid.UUID]int)

		for _, user := range users {
			purchases, _ := dedupe(user.PurchasedBookIDs)
			for _, bookID := range purchases {
				counts[bookID]++
			}
		}

		ranking = make([]popularEntry, 0, len(counts))
		for bookID, count := range counts {
			ranking = append(ranking, popularEntry{BookID: bookID, Count: count})
		}

		// Count descending; ties by book id, so the ranking is stable for a
		// fixed input.
		sort.Slice(ranking, func(i, j int) bool {
			if ranking[i].Count != ranking[j].Count {
				return ranking[i].Count > ranking[j].Count
			}

			return ranking[i].BookID.String() < ranking[j].BookID.String()
		})

		if err := s.cache.Set(ctx, cache.PopularBooksKey, ranking, s.popularTTL); err != nil {
			logger.Warn("Popularity cache write failed", slog.Any("error", err))
		}
	}

	var candidateIDs []uuid.UUID

	for _, entry := range ranking {
		if _, ok := owned[entry.BookID]; ok {
			continue
		}

		candidateIDs = append(candidateIDs, entry.BookID)

		if len(candidateIDs) >= limit {
			break
		}
	}

	books, err := s.resolveBooks(ctx, candidateIDs, limit)
	if err != nil {
		return nil, err
	}

	if len(books) == 0 {
		return models.EmptyRecommendations(), nil
	}

	return models.FallbackToPopular(books), nil
}

// resolveBooks turns ids into Book records, skipping ids that no longer
// resolve. Recommendation is best-effort about deleted books, unlike
// checkout.
func (s *recommendationService) resolveBooks(ctx context.Context, ids []uuid.UUID, limit int) ([]models.Book, error) {

	books := make([]models.Book, 0, len(ids))

	for _, id := range ids {
		book, err := s.bookRepo.GetBookByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}

			return nil, appErrors.DatabaseError("Failed to fetch book").WithError(err)
		}

		books = append(books, *book)

		if len(books) >= limit {
			break
		}
	}

	return books, nil
}

// dedupe returns the ids in first-seen order plus the same ids as a set.
// The data layer does not guarantee a deduplicated purchase list.
func dedupe(ids []uuid.UUID) ([]uuid.UUID, map[uuid.UUID]struct{}) {

	ordered := make([]uuid.UUID, 0, len(ids))
	set := make(map[uuid.UUID]struct{}, len(ids))

	for _, id := range ids {
		if _, ok := set[id]; ok {
			continue
		}

		set[id] = struct{}{}
		ordered = append(ordered, id)
	}

	return ordered, set
}

// jaccardSimilarity = |A ∩ B| / |A ∪ B|. Two empty sets are defined as 0.0
// so the division can never be by zero.
func jaccardSimilarity(a, b map[uuid.UUID]struct{}) float64 {

	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}

	intersection := 0

	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection

	return float64(intersection) / float64(union)
}
