package service

import (
	"context"
	"math"

	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/repository"
)

// ListPets validates the window and dispatches to the single or combined listing.
func (s *petService) ListPets(ctx context.Context, petType *model.PetType, limit, page int) (model.PetPage, error) {
	var ferrs []FieldError
	if limit <= 0 {
		ferrs = append(ferrs, FieldError{Field: "limit", Message: "must be > 0"})
	}
	if page < 1 {
		ferrs = append(ferrs, FieldError{Field: "page", Message: "must be >= 1"})
	} else if limit > 0 && page-1 > math.MaxInt32/limit {
		ferrs = append(ferrs, FieldError{Field: "page", Message: "is out of range"})
	}
	if petType != nil && !petType.Valid() {
		ferrs = append(ferrs, FieldError{Field: "type", Message: "must be one of cat, dog"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.PetPage{}, err
	}

	window := repository.Page{Limit: limit, Offset: (page - 1) * limit}
	if petType == nil {
		return s.listCombined(ctx, window, page)
	}

	switch *petType {
	case model.PetTypeCat:
		res, err := s.cats.List(ctx, window)
		if err != nil {
			s.log.Error().Err(err).Int("limit", limit).Int("page", page).Msg("list cats failed")
			return model.PetPage{}, err
		}
		out := pageMeta(res.Total, limit, page)
		out.Docs = appendViews(out.Docs, res.Items, model.CatView)
		return out, nil
	default:
		res, err := s.dogs.List(ctx, window)
		if err != nil {
			s.log.Error().Err(err).Int("limit", limit).Int("page", page).Msg("list dogs failed")
			return model.PetPage{}, err
		}
		out := pageMeta(res.Total, limit, page)
		out.Docs = appendViews(out.Docs, res.Items, model.DogView)
		return out, nil
	}
}

// listCombined treats cats then dogs as one sequence. The dog window starts
// where the cats run out, so no record is skipped or repeated across pages.
func (s *petService) listCombined(ctx context.Context, window repository.Page, page int) (model.PetPage, error) {
	cats, err := s.cats.List(ctx, window)
	if err != nil {
		s.log.Error().Err(err).Int("limit", window.Limit).Int("page", page).Msg("list cats failed")
		return model.PetPage{}, err
	}

	// A page filled by cats alone reports cat-only totals. Clients rely on
	// this shape; do not switch it to combined totals without a versioned API.
	if len(cats.Items) == window.Limit {
		out := pageMeta(cats.Total, window.Limit, page)
		out.Docs = appendViews(out.Docs, cats.Items, model.CatView)
		return out, nil
	}

	dogWindow := repository.Page{
		Limit:  window.Limit - len(cats.Items),
		Offset: max(0, window.Offset-cats.Total),
	}
	dogs, err := s.dogs.List(ctx, dogWindow)
	if err != nil {
		s.log.Error().Err(err).Int("limit", dogWindow.Limit).Int("offset", dogWindow.Offset).Msg("list dogs failed")
		return model.PetPage{}, err
	}

	out := pageMeta(cats.Total+dogs.Total, window.Limit, page)
	out.Docs = appendViews(out.Docs, cats.Items, model.CatView)
	out.Docs = appendViews(out.Docs, dogs.Items, model.DogView)
	return out, nil
}

// pageMeta computes everything but Docs. prevPage/nextPage are nil exactly
// when the matching has-flag is false.
func pageMeta(total, limit, page int) model.PetPage {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	out := model.PetPage{
		Docs:          []model.PetView{},
		TotalDocs:     total,
		Limit:         limit,
		TotalPages:    totalPages,
		Page:          page,
		PagingCounter: (page-1)*limit + 1,
		HasPrevPage:   page > 1,
		HasNextPage:   page < totalPages,
	}
	if out.HasPrevPage {
		prev := page - 1
		out.PrevPage = &prev
	}
	if out.HasNextPage {
		next := page + 1
		out.NextPage = &next
	}
	return out
}

func appendViews[T any](dst []model.PetView, items []T, view func(T) model.PetView) []model.PetView {
	for _, it := range items {
		dst = append(dst, view(it))
	}
	return dst
}
