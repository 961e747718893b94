package service

import (
	"errors"

	"github.com/sorteo-app/raffles-api/internal/domain"
)

// ErrPermissionDenied means the caller is authenticated and the record is in
// the caller's scope, but the caller's role or ownership does not allow the
// operation. It is deliberately distinct from the not-found errors: the
// record is visible, just not mutable by this caller.
var ErrPermissionDenied = errors.New("permission denied")

// requireEntity gates operations reserved for the tenant owner.
func requireEntity(p domain.Principal) error {
	if !p.IsEntity() {
		return ErrPermissionDenied
	}

	return nil
}

// canMutateBuyer decides update/delete eligibility for a buyer. Entities own
// everything in their scope; a manager may only touch buyers it registered
// itself. A nulled creator reference (the manager was deleted) leaves the
// buyer mutable only by the entity.
func canMutateBuyer(p domain.Principal, buyer domain.Buyer) error {
	if p.IsEntity() {
		return nil
	}
	if buyer.CreatedByManagerNumber != nil && *buyer.CreatedByManagerNumber == p.ManagerNumber {
		return nil
	}

	return ErrPermissionDenied
}

// canMutateRaffle decides update/delete eligibility for a raffle. A manager
// may only touch raffles it sold itself.
func canMutateRaffle(p domain.Principal, raffle domain.Raffle) error {
	if p.IsEntity() {
		return nil
	}
	if raffle.SoldByManagerNumber != nil && *raffle.SoldByManagerNumber == p.ManagerNumber {
		return nil
	}

	return ErrPermissionDenied
}
