package dtos

import (
	"github.com/Gorani9/matzip-sub000/search"
	"github.com/Gorani9/matzip-sub000/utils"
)

// PageToken is the encrypted continuation handed out with every page that
// has a successor. It pins the family and subject it was minted for.
type PageToken struct {
	Family    search.Family  `json:"f"`
	Subject   string         `json:"s,omitempty"`
	Keyword   string         `json:"k,omitempty"`
	SortKey   search.SortKey `json:"o,omitempty"`
	Ascending bool           `json:"a,omitempty"`
	Page      int            `json:"p"`
	Size      int            `json:"z"`
}

// NextPageToken encodes the request for the page after req.
func NextPageToken(family search.Family, subject string, req *search.SearchRequest, key string) (string, error) {
	return utils.EncryptPageToken(&PageToken{
		Family:    family,
		Subject:   subject,
		Keyword:   req.Keyword,
		SortKey:   req.SortKey,
		Ascending: req.Ascending,
		Page:      req.Page + 1,
		Size:      req.Size,
	}, key)
}

// ParsePageToken decodes token and checks it belongs to family and subject.
// The embedded request is validated again against the current limits.
func ParsePageToken(token string, family search.Family, subject string, limits search.Limits, key string) (*search.SearchRequest, error) {
	var decoded PageToken
	if err := utils.DecryptPageToken(token, key, &decoded); err != nil {
		return nil, &utils.InvalidParameterError{
			Field:   "page_token",
			Message: "is malformed",
			Err:     err,
		}
	}

	if decoded.Family != family || decoded.Subject != subject {
		return nil, &utils.InvalidParameterError{
			Field:   "page_token",
			Message: "was issued for a different search",
			Err:     utils.ErrInvalidPageToken,
		}
	}

	req := &search.SearchRequest{
		Keyword:   decoded.Keyword,
		Page:      decoded.Page,
		Size:      decoded.Size,
		SortKey:   decoded.SortKey,
		Ascending: decoded.Ascending,
	}
	if err := req.Validate(family, limits); err != nil {
		return nil, err
	}

	return req, nil
}
