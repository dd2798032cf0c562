package dtos

import (
	"time"

	"github.com/Gorani9/matzip-sub000/models"
	"github.com/Gorani9/matzip-sub000/search"
	"github.com/Gorani9/matzip-sub000/utils"
)

// SearchQuery binds the query string shared by every search endpoint. Values
// stay strings so that malformed input is reported per field.
type SearchQuery struct {
	Page      string `query:"page"`
	Size      string `query:"size"`
	Sort      string `query:"sort"`
	Asc       string `query:"asc"`
	Keyword   string `query:"keyword"`
	PageToken string `query:"page_token"`

	Username string `query:"username"`
	Review   string `query:"review"`
}

func (q *SearchQuery) ToRaw() search.RawRequest {
	return search.RawRequest{
		Page:    q.Page,
		Size:    q.Size,
		Sort:    q.Sort,
		Asc:     q.Asc,
		Keyword: q.Keyword,
	}
}

// PageResponse is the envelope returned by every search endpoint.
type PageResponse[T any] struct {
	Content          []T    `json:"content"`
	NumberOfElements int    `json:"number_of_elements"`
	Size             int    `json:"size"`
	Number           int    `json:"number"`
	First            bool   `json:"first"`
	Last             bool   `json:"last"`
	Empty            bool   `json:"empty"`
	NextPageToken    string `json:"next_page_token,omitempty"`
}

func NewPageResponse[T, R any](slice *utils.Slice[T], convert func(T) R) *PageResponse[R] {
	content := make([]R, len(slice.Content))
	for i, item := range slice.Content {
		content[i] = convert(item)
	}

	return &PageResponse[R]{
		Content:          content,
		NumberOfElements: slice.NumberOfElements(),
		Size:             slice.Size,
		Number:           slice.Page,
		First:            slice.IsFirst(),
		Last:             slice.IsLast(),
		Empty:            slice.IsEmpty(),
	}
}

type UserResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	ProfileString   *string   `json:"profile_string,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	Level           int       `json:"level"`
	CreatedAt       time.Time `json:"created_at"`
}

func FromUser(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:              user.UUID,
		Username:        user.Username,
		ProfileString:   user.ProfileString,
		ProfileImageURL: user.ProfileImageURL,
		Level:           user.Level,
		CreatedAt:       user.CreatedAt,
	}
}

type ReviewResponse struct {
	ID         string        `json:"id"`
	Restaurant string        `json:"restaurant"`
	Content    string        `json:"content"`
	Rating     int           `json:"rating"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Reviewer   *UserResponse `json:"reviewer"`
}

func FromReview(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         review.UUID,
		Restaurant: review.Restaurant,
		Content:    review.Content,
		Rating:     review.Rating,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
		Reviewer:   FromUser(review.Reviewer),
	}
}

type CommentResponse struct {
	ID        string        `json:"id"`
	ReviewID  string        `json:"review_id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Author    *UserResponse `json:"author"`
}

func FromComment(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.UUID,
		ReviewID:  comment.ReviewUUID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Author:    FromUser(comment.Author),
	}
}

type ScrapResponse struct {
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Review      *ReviewResponse `json:"review"`
}

func FromScrap(scrap *models.Scrap) *ScrapResponse {
	return &ScrapResponse{
		Description: scrap.Description,
		CreatedAt:   scrap.CreatedAt,
		Review:      FromReview(scrap.Review),
	}
}
