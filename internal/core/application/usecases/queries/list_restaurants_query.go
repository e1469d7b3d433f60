package queries

import (
	"errors"
	"math"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/identity"
	"ordering/internal/pkg/guard"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps the row offset, (page-1)*limit, within int32.
	MaxPage = math.MaxInt32 / MaxLimit
)

var (
	ErrListRestaurantsQueryIsNotConstructed = errors.New(
		"ListRestaurantsQuery must be created via NewListRestaurantsQuery constructor",
	)
)

// ListRestaurantsQuery pages through the restaurants visible to the caller.
// Paging input is normalized, never rejected: page is clamped into
// [1, MaxPage], limit into [1, MaxLimit], and a zero limit means DefaultLimit.
type ListRestaurantsQuery struct {
	caller identity.Identity
	page   int
	limit  int

	guard guard.ConstructorGuard
}

func NewListRestaurantsQuery(caller identity.Identity, page, limit int) (ListRestaurantsQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListRestaurantsQuery{}, err
	}

	switch {
	case page < 1:
		page = DefaultPage
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 1:
		limit = 1
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return ListRestaurantsQuery{caller: caller, page: page, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListRestaurantsQuery) Validate() error {
	return q.guard.Validate(ErrListRestaurantsQueryIsNotConstructed)
}

func (q ListRestaurantsQuery) Caller() identity.Identity { return q.caller }
func (q ListRestaurantsQuery) Page() int                 { return q.page }
func (q ListRestaurantsQuery) Limit() int                { return q.limit }

// ListRestaurantsQueryResponse is a page plus navigation metadata.
type ListRestaurantsQueryResponse struct {
	Restaurants []*catalog.Restaurant
	Total       int64
	Page        int
	Limit       int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
}
