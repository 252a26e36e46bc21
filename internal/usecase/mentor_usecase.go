package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mentor-match/internal/repository"
)

const (
	mentorPlaceholderImage = "https://placehold.co/500x500.jpg?text=MENTOR"
	menteePlaceholderImage = "https://placehold.co/500x500.jpg?text=MENTEE"

	mentorListCachePrefix = "mentors:list:"
	mentorListCacheTTL    = 5 * time.Minute
)

// MentorCache is the subset of the Redis cache the directory needs. A
// nil cache disables caching entirely.
type MentorCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type MentorItem struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	ImageURL string   `json:"imageUrl"`
	Skills   []string `json:"skills"`
}

type MentorUsecase interface {
	ListMentors(ctx context.Context, skill, orderBy string) ([]MentorItem, error)
}

type Mentor struct {
	repo  repository.MentorRepository
	cache MentorCache
}

func NewMentorUsecase(repo repository.MentorRepository, cache MentorCache) *Mentor {
	return &Mentor{repo: repo, cache: cache}
}

func (u *Mentor) ListMentors(ctx context.Context, skill, orderBy string) ([]MentorItem, error) {
	// Unknown sort keys fall back to id ordering rather than failing.
	if orderBy != "name" && orderBy != "skill" {
		orderBy = ""
	}

	key := mentorListCacheKey(skill, orderBy)
	if u.cache != nil {
		var cached []MentorItem
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := u.repo.ListMentors(ctx, repository.MentorListFilter{Skill: skill, OrderBy: orderBy})
	if err != nil {
		return nil, ErrInternal
	}

	items := make([]MentorItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, MentorItem{
			ID:       row.ID,
			Email:    row.Email,
			Name:     row.Name,
			Bio:      row.Bio,
			ImageURL: mentorImageURL(row.ID, row.HasImage),
			Skills:   splitSkillAggregate(row.Skills),
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, items, mentorListCacheTTL)
	}

	return items, nil
}

func mentorListCacheKey(skill, orderBy string) string {
	return fmt.Sprintf("%s%s:%s", mentorListCachePrefix, skill, orderBy)
}

func invalidateMentorCache(ctx context.Context, cache MentorCache) {
	if cache == nil {
		return
	}
	_ = cache.DeleteByPattern(ctx, mentorListCachePrefix+"*")
}

func mentorImageURL(id int64, hasImage bool) string {
	if hasImage {
		return fmt.Sprintf("/api/images/mentor/%d", id)
	}
	return mentorPlaceholderImage
}

func splitSkillAggregate(agg string) []string {
	if agg == "" {
		return []string{}
	}
	return strings.Split(agg, ",")
}
