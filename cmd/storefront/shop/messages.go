package shop

import (
	"storefront/internal/api"
)

// bootDoneMsg lands the parallel catalog+cart preload.
type bootDoneMsg struct {
	err error
}

// catalogReloadedMsg lands a catalog refresh.
type catalogReloadedMsg struct {
	err error
}

// detailOpenedMsg lands a product lookup for the detail page.
type detailOpenedMsg struct {
	id  int
	err error
}

// cartReloadedMsg lands a cart view activation load.
type cartReloadedMsg struct {
	err error
}

// actionDoneMsg lands any mutating view-model action. Notice is the
// user-facing message the view-model produced, possibly empty.
type actionDoneMsg struct {
	notice string
	err    error
}

// checkoutDoneMsg lands a checkout attempt; summary is the itemized totals
// message on success.
type checkoutDoneMsg struct {
	summary string
	err     error
}

// adminLookupMsg lands an admin id lookup, fenced by seq.
type adminLookupMsg struct {
	seq     uint64
	product *api.Product
	err     error
}
