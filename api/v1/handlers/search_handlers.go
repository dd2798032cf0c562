package handlers

import (
	"fmt"
	"net/http"

	"github.com/Gorani9/matzip-sub000/api/v1/dtos"
	"github.com/Gorani9/matzip-sub000/container"
	"github.com/Gorani9/matzip-sub000/search"
	"github.com/Gorani9/matzip-sub000/services"
	"github.com/Gorani9/matzip-sub000/utils"
	"github.com/labstack/echo/v4"
)

type SearchHandler struct {
	container *container.Container
	service   *services.SearchService
}

func NewSearchHandler(c *container.Container, svc *services.SearchService) *SearchHandler {
	return &SearchHandler{
		container: c,
		service:   svc,
	}
}

func (h *SearchHandler) ListFollowers(c echo.Context) error {
	req, subject, err := h.bind(c, search.FamilyFollowers, c.Param("username"))
	if err != nil {
		return err
	}

	result, err := h.service.SearchFollowers(c.Request().Context(), subject, req)
	if err != nil {
		return err
	}

	return respond(c, h, search.FamilyFollowers, subject, req, result, dtos.FromUser)
}

func (h *SearchHandler) ListFollowings(c echo.Context) error {
	req, subject, err := h.bind(c, search.FamilyFollowings, c.Param("username"))
	if err != nil {
		return err
	}

	result, err := h.service.SearchFollowings(c.Request().Context(), subject, req)
	if err != nil {
		return err
	}

	return respond(c, h, search.FamilyFollowings, subject, req, result, dtos.FromUser)
}

func (h *SearchHandler) ListScraps(c echo.Context) error {
	req, subject, err := h.bind(c, search.FamilyScraps, c.Param("username"))
	if err != nil {
		return err
	}

	result, err := h.service.SearchScraps(c.Request().Context(), subject, req)
	if err != nil {
		return err
	}

	return respond(c, h, search.FamilyScraps, subject, req, result, dtos.FromScrap)
}

func (h *SearchHandler) ListReviews(c echo.Context) error {
	req, subject, err := h.bind(c, search.FamilyReviews, c.QueryParam("username"))
	if err != nil {
		return err
	}

	result, err := h.service.SearchReviews(c.Request().Context(), subject, req)
	if err != nil {
		return err
	}

	return respond(c, h, search.FamilyReviews, subject, req, result, dtos.FromReview)
}

func (h *SearchHandler) ListComments(c echo.Context) error {
	req, subject, err := h.bind(c, search.FamilyComments, c.QueryParam("review"))
	if err != nil {
		return err
	}

	result, err := h.service.SearchComments(c.Request().Context(), subject, req)
	if err != nil {
		return err
	}

	return respond(c, h, search.FamilyComments, subject, req, result, dtos.FromComment)
}

// bind reads the query string into a validated request. A page token, when
// present, replaces the individual paging parameters.
func (h *SearchHandler) bind(c echo.Context, family search.Family, rawSubject string) (*search.SearchRequest, string, error) {
	var query dtos.SearchQuery
	if err := c.Bind(&query); err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "Invalid request parameters")
	}

	subject, err := search.ValidateSubject(family, rawSubject)
	if err != nil {
		return nil, "", err
	}

	if query.PageToken != "" {
		req, err := dtos.ParsePageToken(query.PageToken, family, subject, h.service.Limits(), h.container.Config.EncryptionKey)
		if err != nil {
			return nil, "", err
		}
		return req, subject, nil
	}

	req, err := search.ParseRequest(family, query.ToRaw(), h.service.Limits())
	if err != nil {
		return nil, "", err
	}

	return req, subject, nil
}

func respond[T, R any](
	c echo.Context,
	h *SearchHandler,
	family search.Family,
	subject string,
	req *search.SearchRequest,
	result *utils.Slice[T],
	convert func(T) R,
) error {
	response := dtos.NewPageResponse(result, convert)

	if result.HasNext {
		token, err := dtos.NextPageToken(family, subject, req, h.container.Config.EncryptionKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt page token: %w", err)
		}
		response.NextPageToken = token
	}

	return c.JSON(http.StatusOK, response)
}
