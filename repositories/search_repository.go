package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Gorani9/matzip-sub000/container"
	"github.com/Gorani9/matzip-sub000/models"
	"github.com/Gorani9/matzip-sub000/search"
	"github.com/Gorani9/matzip-sub000/utils"
	"github.com/rs/zerolog/log"
)

// SearchRepository executes search plans. Each call issues exactly one
// statement, bounded by the configured query timeout.
type SearchRepository struct {
	container *container.Container
}

func NewSearchRepository(container *container.Container) *SearchRepository {
	return &SearchRepository{
		container: container,
	}
}

func (r *SearchRepository) FindUsers(ctx context.Context, plan *search.ExecutionPlan) ([]*models.User, error) {
	return find(ctx, r, plan, scanUser)
}

func (r *SearchRepository) FindReviews(ctx context.Context, plan *search.ExecutionPlan) ([]*models.Review, error) {
	return find(ctx, r, plan, scanReview)
}

func (r *SearchRepository) FindComments(ctx context.Context, plan *search.ExecutionPlan) ([]*models.Comment, error) {
	return find(ctx, r, plan, scanComment)
}

func (r *SearchRepository) FindScraps(ctx context.Context, plan *search.ExecutionPlan) ([]*models.Scrap, error) {
	return find(ctx, r, plan, scanScrap)
}

func find[T any](ctx context.Context, r *SearchRepository, plan *search.ExecutionPlan, scan func(*sql.Rows, ...any) (T, error)) ([]T, error) {
	query, args := plan.SQL()

	log.Debug().
		Str("family", string(plan.Family)).
		Str("sql", query).
		Interface("args", args).
		Msg("Executing search query")

	queryCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.container.Postgres.DB.QueryContext(queryCtx, query, args...)
	if err != nil {
		return nil, persistenceError(queryCtx, "query", err)
	}
	defer rows.Close()

	// The aggregate count only drives ordering; it is scanned and dropped.
	var extra []any
	if plan.Aggregate != nil {
		var sortCount int64
		extra = append(extra, &sortCount)
	}

	results := make([]T, 0, plan.Limit)
	for rows.Next() {
		item, err := scan(rows, extra...)
		if err != nil {
			return nil, persistenceError(queryCtx, "scan", err)
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, persistenceError(queryCtx, "iterate", err)
	}

	return results, nil
}

func (r *SearchRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	var timeout time.Duration
	if r.container.Config != nil {
		timeout = r.container.Config.SearchQueryTimeout
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func persistenceError(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		err = errors.Join(utils.ErrQueryTimeout, err)
	}
	return &utils.PersistenceError{Op: op, Err: err}
}

func userDest(u *models.User) []any {
	return []any{
		&u.ID, &u.UUID, &u.Username, &u.ProfileString, &u.ProfileImageURL, &u.Level, &u.CreatedAt, &u.UpdatedAt,
	}
}

func reviewDest(rv *models.Review) []any {
	return []any{
		&rv.ID, &rv.UUID, &rv.Restaurant, &rv.Content, &rv.Rating, &rv.CreatedAt, &rv.UpdatedAt,
	}
}

func scanUser(rows *sql.Rows, extra ...any) (*models.User, error) {
	var user models.User

	dest := append(userDest(&user), extra...)
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	return &user, nil
}

func scanReview(rows *sql.Rows, extra ...any) (*models.Review, error) {
	review := models.Review{Reviewer: &models.User{}}

	dest := append(reviewDest(&review), userDest(review.Reviewer)...)
	dest = append(dest, extra...)
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("error scanning review: %w", err)
	}

	return &review, nil
}

func scanComment(rows *sql.Rows, extra ...any) (*models.Comment, error) {
	comment := models.Comment{Author: &models.User{}}

	dest := []any{
		&comment.ID, &comment.UUID, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt, &comment.ReviewUUID,
	}
	dest = append(dest, userDest(comment.Author)...)
	dest = append(dest, extra...)
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("error scanning comment: %w", err)
	}

	return &comment, nil
}

func scanScrap(rows *sql.Rows, extra ...any) (*models.Scrap, error) {
	scrap := models.Scrap{Review: &models.Review{Reviewer: &models.User{}}}

	dest := []any{&scrap.ID, &scrap.Description, &scrap.CreatedAt}
	dest = append(dest, reviewDest(scrap.Review)...)
	dest = append(dest, userDest(scrap.Review.Reviewer)...)
	dest = append(dest, extra...)
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("error scanning scrap: %w", err)
	}

	return &scrap, nil
}
