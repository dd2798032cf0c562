package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/Gorani9/matzip-sub000/api/v1/dtos"
	"github.com/Gorani9/matzip-sub000/search"
	"github.com/Gorani9/matzip-sub000/services"
	"github.com/Gorani9/matzip-sub000/utils"
	"github.com/urfave/cli/v3"
)

func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run a search and print the result page as JSON",
		ArgsUsage: "<followers|followings|reviews|comments|scraps>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "subject",
				Usage: "Username, or review UUID for comments",
			},
			&cli.StringFlag{
				Name:  "keyword",
				Usage: "Keyword filter",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort key",
			},
			&cli.BoolFlag{
				Name:  "asc",
				Usage: "Sort ascending",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Zero-based page number",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Page size (0 uses the configured default)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one family argument")
			}

			family, err := search.ParseFamily(c.Args().First())
			if err != nil {
				return err
			}

			subject, err := search.ValidateSubject(family, c.String("subject"))
			if err != nil {
				return err
			}

			ctr, err := openContainer()
			if err != nil {
				return err
			}
			defer ctr.Close()

			svc, err := services.NewSearchService(ctr)
			if err != nil {
				return err
			}

			raw := rawRequest(c.Int("page"), c.Int("size"), c.String("sort"), c.Bool("asc"), c.String("keyword"))
			req, err := search.ParseRequest(family, raw, svc.Limits())
			if err != nil {
				return err
			}

			key := ctr.Config.EncryptionKey
			switch family {
			case search.FamilyFollowers:
				result, err := svc.SearchFollowers(ctx, subject, req)
				if err != nil {
					return err
				}
				return printPage(family, subject, req, key, result, dtos.FromUser)
			case search.FamilyFollowings:
				result, err := svc.SearchFollowings(ctx, subject, req)
				if err != nil {
					return err
				}
				return printPage(family, subject, req, key, result, dtos.FromUser)
			case search.FamilyReviews:
				result, err := svc.SearchReviews(ctx, subject, req)
				if err != nil {
					return err
				}
				return printPage(family, subject, req, key, result, dtos.FromReview)
			case search.FamilyComments:
				result, err := svc.SearchComments(ctx, subject, req)
				if err != nil {
					return err
				}
				return printPage(family, subject, req, key, result, dtos.FromComment)
			case search.FamilyScraps:
				result, err := svc.SearchScraps(ctx, subject, req)
				if err != nil {
					return err
				}
				return printPage(family, subject, req, key, result, dtos.FromScrap)
			}

			return fmt.Errorf("unsupported family %q", family)
		},
	}
}

// rawRequest converts typed flag values into the string form the request
// parser accepts. Zero size and false asc are left empty so defaults apply.
func rawRequest(page, size int, sort string, asc bool, keyword string) search.RawRequest {
	raw := search.RawRequest{
		Page:    strconv.Itoa(page),
		Sort:    sort,
		Keyword: keyword,
	}
	if size != 0 {
		raw.Size = strconv.Itoa(size)
	}
	if asc {
		raw.Asc = "true"
	}
	return raw
}

func printPage[T, R any](
	family search.Family,
	subject string,
	req *search.SearchRequest,
	key string,
	result *utils.Slice[T],
	convert func(T) R,
) error {
	response := dtos.NewPageResponse(result, convert)
	if result.HasNext {
		token, err := dtos.NextPageToken(family, subject, req, key)
		if err != nil {
			return fmt.Errorf("failed to encrypt page token: %w", err)
		}
		response.NextPageToken = token
	}

	out, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
