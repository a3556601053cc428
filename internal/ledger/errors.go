package ledger

import "errors"

// Rejection reasons. Every mutating operation either commits in full or
// returns exactly one of these with no state change.
var (
	ErrInvalidSaleWindow     = errors.New("invalid sale window")
	ErrInvalidResaleWindow   = errors.New("invalid resale window")
	ErrPriceCapBelowFace     = errors.New("price cap below face price")
	ErrMetadataCountMismatch = errors.New("metadata URIs must match max tickets")
	ErrResaleOverlapsEvent   = errors.New("resale must end before event starts")
	ErrSalesEnded            = errors.New("ticket sales period ended")
	ErrSoldOut               = errors.New("not enough tickets")
	ErrIncorrectPayment      = errors.New("incorrect payment amount")
	ErrNotOwner              = errors.New("not ticket owner")
	ErrAlreadyResold         = errors.New("ticket already resold once")
	ErrAlreadyUsed           = errors.New("ticket already used")
	ErrTicketExpired         = errors.New("ticket has expired")
	ErrResaleWindowClosed    = errors.New("resale not allowed now")
	ErrExceedsCap            = errors.New("resale price exceeds cap")
	ErrNotListed             = errors.New("ticket not listed for resale")
	ErrIncorrectTotalPayment = errors.New("incorrect total payment amount")
	ErrNotOrganizer          = errors.New("not event organizer")
	ErrNoFundsAvailable      = errors.New("no funds to withdraw")

	ErrEventNotFound  = errors.New("event not found")
	ErrTicketNotFound = errors.New("ticket not found")
)

var reasonCodes = map[error]string{
	ErrInvalidSaleWindow:     "InvalidSaleWindow",
	ErrInvalidResaleWindow:   "InvalidResaleWindow",
	ErrPriceCapBelowFace:     "PriceCapBelowFace",
	ErrMetadataCountMismatch: "MetadataCountMismatch",
	ErrResaleOverlapsEvent:   "ResaleOverlapsEvent",
	ErrSalesEnded:            "SalesEnded",
	ErrSoldOut:               "SoldOut",
	ErrIncorrectPayment:      "IncorrectPayment",
	ErrNotOwner:              "NotOwner",
	ErrAlreadyResold:         "AlreadyResold",
	ErrAlreadyUsed:           "AlreadyUsed",
	ErrTicketExpired:         "TicketExpired",
	ErrResaleWindowClosed:    "ResaleWindowClosed",
	ErrExceedsCap:            "ExceedsCap",
	ErrNotListed:             "NotListed",
	ErrIncorrectTotalPayment: "IncorrectTotalPayment",
	ErrNotOrganizer:          "NotOrganizer",
	ErrNoFundsAvailable:      "NoFundsAvailable",
	ErrEventNotFound:         "EventNotFound",
	ErrTicketNotFound:        "TicketNotFound",
}

// Reason returns the stable reason code for a ledger rejection, or "" if err
// is not one of the taxonomy errors.
func Reason(err error) string {
	for sentinel, code := range reasonCodes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}
