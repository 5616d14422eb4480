package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit well inside int.
	MaxPage = 1_000_000
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery or NewListUserOrdersQuery constructor",
)

// ListFilter carries the caller supplied listing parameters. Nil fields take their
// defaults. DateFrom and DateTo are calendar days; both ends are inclusive.
type ListFilter struct {
	Page       *int
	Limit      *int
	Status     *order.Status
	ConsumerID string
	VendorID   string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ListOrdersQuery lists orders newest first, one page at a time.
//
// It runs in one of two modes: the general listing (GET /orders) where the caller's role
// narrows the result, and the per-user listing (GET /orders/user/{userId}).
//
// Example:
//
//	page, limit := 2, 10
//	status := order.Pending
//	query, err := NewListOrdersQuery(admin, ListFilter{Page: &page, Limit: &limit, Status: &status})
//	result, err := handler.Handle(ctx, query)
//	// result.Total counts every match, result.Orders holds at most 10 of them
type ListOrdersQuery struct {
	principal identity.Principal
	userID    string
	byUser    bool

	page       int
	limit      int
	status     *order.Status
	consumerID string
	vendorID   string
	dateFrom   *time.Time
	dateTo     *time.Time

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(principal identity.Principal, filter ListFilter) (ListOrdersQuery, error) {
	return newListOrdersQuery(principal, "", false, filter)
}

// NewListUserOrdersQuery lists the orders of userID. Consumer and vendor filters of
// filter are ignored; the user decides the scope.
func NewListUserOrdersQuery(principal identity.Principal, userID string, filter ListFilter) (ListOrdersQuery, error) {
	filter.ConsumerID = ""
	filter.VendorID = ""
	return newListOrdersQuery(principal, userID, true, filter)
}

func newListOrdersQuery(principal identity.Principal, userID string, byUser bool, filter ListFilter) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		byUser:     byUser,
		consumerID: strings.TrimSpace(filter.ConsumerID),
		vendorID:   strings.TrimSpace(filter.VendorID),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setPrincipal(principal),
		q.setUserID(userID),
		q.setPage(filter.Page),
		q.setLimit(filter.Limit),
		q.setStatus(filter.Status),
		q.setDates(filter.DateFrom, filter.DateTo),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Principal() identity.Principal { return q.principal }
func (q ListOrdersQuery) ByUser() bool                  { return q.byUser }
func (q ListOrdersQuery) UserID() string                { return q.userID }
func (q ListOrdersQuery) Page() int                     { return q.page }
func (q ListOrdersQuery) Limit() int                    { return q.limit }
func (q ListOrdersQuery) Status() *order.Status         { return q.status }
func (q ListOrdersQuery) ConsumerID() string            { return q.consumerID }
func (q ListOrdersQuery) VendorID() string              { return q.vendorID }
func (q ListOrdersQuery) DateFrom() *time.Time          { return q.dateFrom }
func (q ListOrdersQuery) DateTo() *time.Time            { return q.dateTo }

// Offset is the number of matches skipped before the page starts.
func (q ListOrdersQuery) Offset() int {
	return (q.page - 1) * q.limit
}

func (q *ListOrdersQuery) setPrincipal(principal identity.Principal) error {
	if err := principal.Validate(); err != nil {
		return errs.NewNotAuthenticatedErrorWithCause(err)
	}
	q.principal = principal
	return nil
}

func (q *ListOrdersQuery) setUserID(userID string) error {
	if !q.byUser {
		return nil
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	q.userID = userID
	return nil
}

func (q *ListOrdersQuery) setPage(page *int) error {
	q.page = DefaultPage
	if page == nil {
		return nil
	}
	if *page < 1 {
		return errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is less than 1", *page))
	}
	if *page > MaxPage {
		return errs.NewValueIsOutOfRangeError("page", *page, 1, MaxPage)
	}
	q.page = *page
	return nil
}

// setLimit clamps large limits to MaxLimit instead of rejecting them.
func (q *ListOrdersQuery) setLimit(limit *int) error {
	q.limit = DefaultLimit
	if limit == nil {
		return nil
	}
	if *limit < 1 {
		return errs.NewValueIsInvalidErrorWithCause("limit", fmt.Errorf("%d is less than 1", *limit))
	}
	q.limit = min(*limit, MaxLimit)
	return nil
}

func (q *ListOrdersQuery) setStatus(status *order.Status) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}
	s := *status
	q.status = &s
	return nil
}

func (q *ListOrdersQuery) setDates(from, to *time.Time) error {
	if from != nil {
		day := truncateToDay(*from)
		q.dateFrom = &day
	}
	if to != nil {
		day := truncateToDay(*to)
		q.dateTo = &day
	}
	if q.dateFrom != nil && q.dateTo != nil && q.dateTo.Before(*q.dateFrom) {
		return errs.NewValueIsInvalidErrorWithCause(
			"dateTo",
			fmt.Errorf("%s is before dateFrom %s", q.dateTo.Format(time.DateOnly), q.dateFrom.Format(time.DateOnly)),
		)
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ListOrdersQueryResponse is one page of orders. Total counts every order matching the
// filters and the caller's scope, before pagination.
type ListOrdersQueryResponse struct {
	Page   int
	Limit  int
	Total  int64
	Orders []*order.Order
}
