package services

import (
	"context"
	"fmt"

	"github.com/Gorani9/matzip-sub000/container"
	"github.com/Gorani9/matzip-sub000/models"
	"github.com/Gorani9/matzip-sub000/repositories"
	"github.com/Gorani9/matzip-sub000/search"
	"github.com/Gorani9/matzip-sub000/utils"
	"github.com/rs/zerolog/log"
)

type SearchService struct {
	container *container.Container
	repo      *repositories.SearchRepository
	planner   *search.Planner
}

func NewSearchService(container *container.Container) (*SearchService, error) {
	strategy, err := search.ParseKeywordStrategy(container.Config.SearchKeywordStrategy)
	if err != nil {
		return nil, fmt.Errorf("failed to configure keyword search: %w", err)
	}

	return &SearchService{
		container: container,
		repo:      repositories.NewSearchRepository(container),
		planner:   search.NewPlanner(search.DefaultRegistry, strategy),
	}, nil
}

// Limits reports the configured page size bounds.
func (s *SearchService) Limits() search.Limits {
	return search.Limits{
		MaxPageSize:     s.container.Config.SearchMaxPageSize,
		DefaultPageSize: s.container.Config.SearchDefaultPageSize,
	}
}

// SearchFollowers lists the visible users following username.
func (s *SearchService) SearchFollowers(ctx context.Context, username string, req *search.SearchRequest) (*utils.Slice[*models.User], error) {
	return run(ctx, s, search.FamilyFollowers, username, req, s.repo.FindUsers)
}

// SearchFollowings lists the visible users username follows.
func (s *SearchService) SearchFollowings(ctx context.Context, username string, req *search.SearchRequest) (*utils.Slice[*models.User], error) {
	return run(ctx, s, search.FamilyFollowings, username, req, s.repo.FindUsers)
}

// SearchReviews lists visible reviews, optionally limited to one reviewer.
func (s *SearchService) SearchReviews(ctx context.Context, username string, req *search.SearchRequest) (*utils.Slice[*models.Review], error) {
	return run(ctx, s, search.FamilyReviews, username, req, s.repo.FindReviews)
}

// SearchComments lists visible comments, optionally limited to one review.
func (s *SearchService) SearchComments(ctx context.Context, reviewUUID string, req *search.SearchRequest) (*utils.Slice[*models.Comment], error) {
	return run(ctx, s, search.FamilyComments, reviewUUID, req, s.repo.FindComments)
}

// SearchScraps lists the visible reviews scrapped by username.
func (s *SearchService) SearchScraps(ctx context.Context, username string, req *search.SearchRequest) (*utils.Slice[*models.Scrap], error) {
	return run(ctx, s, search.FamilyScraps, username, req, s.repo.FindScraps)
}

func run[T any](
	ctx context.Context,
	s *SearchService,
	family search.Family,
	subject string,
	req *search.SearchRequest,
	find func(context.Context, *search.ExecutionPlan) ([]T, error),
) (*utils.Slice[T], error) {
	plan, err := s.planner.Plan(family, subject, req)
	if err != nil {
		log.Error().Err(err).Str("family", string(family)).Msg("Failed to plan search")
		return nil, fmt.Errorf("failed to plan %s search: %w", family, err)
	}

	rows, err := find(ctx, plan)
	if err != nil {
		log.Error().Err(err).Str("family", string(family)).Msg("Failed to execute search")
		return nil, fmt.Errorf("failed to search %s: %w", family, err)
	}

	return utils.BuildSlice(rows, req.Page, req.Size), nil
}
