package search

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Gorani9/matzip-sub000/utils"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const (
	DefaultMaxPageSize     = 100
	DefaultDefaultPageSize = 20
)

// Limits bounds the page size a caller may ask for.
type Limits struct {
	MaxPageSize     int
	DefaultPageSize int
}

func (l Limits) normalize() Limits {
	if l.MaxPageSize <= 0 {
		l.MaxPageSize = DefaultMaxPageSize
	}
	if l.DefaultPageSize <= 0 {
		l.DefaultPageSize = DefaultDefaultPageSize
	}
	if l.DefaultPageSize > l.MaxPageSize {
		l.DefaultPageSize = l.MaxPageSize
	}
	return l
}

// RawRequest carries the untyped parameters exactly as received.
type RawRequest struct {
	Page    string
	Size    string
	Sort    string
	Asc     string
	Keyword string
}

// SearchRequest is a validated search over one family.
type SearchRequest struct {
	Keyword   string
	Page      int
	Size      int
	SortKey   SortKey
	Ascending bool
}

// MaxPage is the largest page whose OFFSET plus overfetched LIMIT still fits
// in an int for the given size.
func MaxPage(size int) int {
	if size <= 0 {
		return 0
	}
	return (math.MaxInt-1)/size - 1
}

// Offset is the number of rows skipped before the page starts.
func (r *SearchRequest) Offset() int {
	return r.Page * r.Size
}

// ParseRequest converts raw parameters into a validated SearchRequest.
// Missing values take their defaults: page 0, the default page size,
// creation time ordering, descending.
func ParseRequest(family Family, raw RawRequest, limits Limits) (*SearchRequest, error) {
	if _, err := lookupSchema(family); err != nil {
		return nil, err
	}
	limits = limits.normalize()

	req := &SearchRequest{
		Keyword: strings.TrimSpace(raw.Keyword),
		Size:    limits.DefaultPageSize,
	}

	if v := strings.TrimSpace(raw.Page); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return nil, utils.NewInvalidParameterError("page", raw.Page, "must be an integer")
		}
		req.Page = page
	}

	if v := strings.TrimSpace(raw.Size); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, utils.NewInvalidParameterError("size", raw.Size, "must be an integer")
		}
		req.Size = size
	}

	key, err := DefaultRegistry.Lookup(family, raw.Sort)
	if err != nil {
		return nil, err
	}
	req.SortKey = key

	switch v := strings.TrimSpace(raw.Asc); {
	case v == "" || strings.EqualFold(v, "false"):
		req.Ascending = false
	case strings.EqualFold(v, "true"):
		req.Ascending = true
	default:
		return nil, utils.NewInvalidParameterError("asc", raw.Asc, "must be true or false")
	}

	if err := req.Validate(family, limits); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks a request built outside ParseRequest, such as one decoded
// from a page token.
func (r *SearchRequest) Validate(family Family, limits Limits) error {
	if _, err := lookupSchema(family); err != nil {
		return err
	}
	limits = limits.normalize()

	if err := checkVar("page", strconv.Itoa(r.Page), r.Page, "min=0", ""); err != nil {
		return err
	}

	if err := checkVar("size", strconv.Itoa(r.Size), r.Size, fmt.Sprintf("min=1,max=%d", limits.MaxPageSize), ""); err != nil {
		return err
	}

	if err := checkVar("page", strconv.Itoa(r.Page), r.Page, fmt.Sprintf("max=%d", MaxPage(r.Size)), ""); err != nil {
		return err
	}

	key, err := DefaultRegistry.Lookup(family, string(r.SortKey))
	if err != nil {
		return err
	}
	r.SortKey = key

	r.Keyword = strings.TrimSpace(r.Keyword)
	if err := checkVar("keyword", r.Keyword, r.Keyword, fmt.Sprintf("max=%d", KeywordMaxLength(family)), " characters"); err != nil {
		return err
	}

	return nil
}

// ValidateSubject normalizes the scope value of family. Families that are
// always scoped reject a blank subject; comments accept only a review UUID.
func ValidateSubject(family Family, subject string) (string, error) {
	s, err := lookupSchema(family)
	if err != nil {
		return "", err
	}

	subject = strings.TrimSpace(subject)
	if subject == "" {
		if s.subjectRequired {
			return "", utils.NewInvalidParameterError(s.subjectField, "", "is required")
		}
		return "", nil
	}

	if s.subjectIsUUID {
		if err := checkVar(s.subjectField, subject, subject, "uuid", ""); err != nil {
			return "", err
		}
	}

	return subject, nil
}

func checkVar(field, raw string, value any, tag, unit string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	message := err.Error()
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		message = describe(verrs[0], unit)
	}

	return &utils.InvalidParameterError{
		Field:   field,
		Value:   raw,
		Message: message,
		Err:     err,
	}
}

func describe(fe validator.FieldError, unit string) string {
	switch fe.Tag() {
	case "min":
		return "must be at least " + fe.Param() + unit
	case "max":
		return "must be at most " + fe.Param() + unit
	case "uuid":
		return "must be a UUID"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
