// Package repository contains the data access layer: typed query methods
// over the relational store for every entity, including the localized
// content resolver, the price resolver and the commission/discount
// calculator.
package repository

import "errors"

// Not-found sentinels. Callers map these to 404 responses; they are never
// retried.
var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrPackageNotFound      = errors.New("package not found")
	ErrPriceNotFound        = errors.New("no bookable price for that date")
	ErrCommissionNotFound   = errors.New("commission not found")
	ErrCurrencyNotFound     = errors.New("currency not found")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Business-rule rejections. Callers map these to 400 responses with the
// sentinel's message as the user-facing reason.
var (
	ErrDiscountNotFound      = errors.New("code not found")
	ErrDiscountNotApplicable = errors.New("code not valid for this product")
	ErrDiscountLimitReached  = errors.New("limit reached")
	ErrDiscountExpired       = errors.New("code expired")
	ErrDuplicateComment      = errors.New("already commented")
	ErrPriceWindowOverlap    = errors.New("price window overlaps an existing price")
)
