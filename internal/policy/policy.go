// Package policy centralizes every authorization and status-transition rule
// for loads and quotes so handlers share one predicate set instead of
// re-deriving role checks inline.
package policy

import (
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

// Actor is the authenticated principal extracted from the JWT claims.
type Actor struct {
	ID   uint
	Role string
}

// Capabilities describes what an actor may do with a load; it is returned on
// the load-details endpoint so clients can render affordances without
// re-deriving authorization.
type Capabilities struct {
	CanEdit          bool `json:"canEdit"`
	CanCancel        bool `json:"canCancel"`
	CanChangeStatus  bool `json:"canChangeStatus"`
	IsOwner          bool `json:"isOwner"`
	IsAssignedDriver bool `json:"isAssignedDriver"`
}

// loadTransitions is the forward transition table. A status update is rejected
// unless the requested state is adjacent to the current one; terminal states
// have no exits. Cancellation is modelled here but additionally gated by
// CanCancelLoad.
var loadTransitions = map[models.LoadStatus][]models.LoadStatus{
	models.LoadOpen:      {models.LoadQuoted, models.LoadAssigned, models.LoadCancelled},
	models.LoadQuoted:    {models.LoadAssigned, models.LoadCancelled},
	models.LoadAssigned:  {models.LoadPickedUp, models.LoadCancelled},
	models.LoadPickedUp:  {models.LoadInTransit, models.LoadCancelled},
	models.LoadInTransit: {models.LoadDelivered, models.LoadCancelled},
	models.LoadDelivered: {models.LoadCompleted},
	models.LoadCompleted: nil,
	models.LoadCancelled: nil,
}

// CanTransition reports whether a load may move from one status to another.
func CanTransition(from, to models.LoadStatus) bool {
	for _, next := range loadTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from s.
func IsTerminal(s models.LoadStatus) bool {
	return len(loadTransitions[s]) == 0
}

// IsOwner reports whether the actor posted the load.
func IsOwner(load *models.Load, actor Actor) bool {
	return load.PostedByID == actor.ID
}

// IsAssignedDriver reports whether the actor is the driver assigned to the load.
func IsAssignedDriver(load *models.Load, actor Actor) bool {
	return load.AssignedToID != nil && *load.AssignedToID == actor.ID
}

// CanViewLoad: owner, assigned driver, or any driver/admin may see details.
func CanViewLoad(load *models.Load, actor Actor) bool {
	return IsOwner(load, actor) ||
		IsAssignedDriver(load, actor) ||
		actor.Role == models.RoleDriver ||
		models.IsAdmin(actor.Role)
}

// CanEditLoad: direct field updates are admin-only.
func CanEditLoad(actor Actor) bool {
	return models.IsAdmin(actor.Role)
}

// CanChangeLoadStatus: the assigned driver, or anyone holding the driver or
// an admin role.
func CanChangeLoadStatus(load *models.Load, actor Actor) bool {
	return IsAssignedDriver(load, actor) ||
		actor.Role == models.RoleDriver ||
		models.IsAdmin(actor.Role)
}

// CanCancelLoad: nobody may cancel a load that is already cancelled,
// completed, or delivered. Admins and drivers may cancel from any other
// state; the owning customer only while the load is still open or quoted.
func CanCancelLoad(load *models.Load, actor Actor) bool {
	switch load.Status {
	case models.LoadCancelled, models.LoadCompleted, models.LoadDelivered:
		return false
	}
	if models.IsAdmin(actor.Role) || actor.Role == models.RoleDriver {
		return true
	}
	if IsOwner(load, actor) &&
		(load.Status == models.LoadOpen || load.Status == models.LoadQuoted) {
		return true
	}
	return false
}

// CanAssignDriver: admin-only.
func CanAssignDriver(actor Actor) bool {
	return models.IsAdmin(actor.Role)
}

// CanSubmitQuote: transporters (and admins) may bid, never on their own load,
// and only while the load is still accepting quotes. The caller maps the
// three failure modes to distinct errors; this predicate is the conjunction.
func CanSubmitQuote(load *models.Load, actor Actor) bool {
	if actor.Role != models.RoleDriver && !models.IsAdmin(actor.Role) {
		return false
	}
	if IsOwner(load, actor) {
		return false
	}
	return LoadAcceptsQuotes(load.Status)
}

// LoadAcceptsQuotes reports whether a load in the given status is still open
// for bidding.
func LoadAcceptsQuotes(s models.LoadStatus) bool {
	return s == models.LoadOpen || s == models.LoadQuoted
}

// CanRespondToQuote: only the load owner or an admin may accept or reject.
func CanRespondToQuote(load *models.Load, actor Actor) bool {
	return IsOwner(load, actor) || models.IsAdmin(actor.Role)
}

// CanSeeAllQuotes: only the load owner and admins see every quote on a load;
// other callers see just their own.
func CanSeeAllQuotes(load *models.Load, actor Actor) bool {
	return IsOwner(load, actor) || models.IsAdmin(actor.Role)
}

// LoadCapabilities computes the capability descriptor for a load and actor
// from the same predicates the write paths use.
func LoadCapabilities(load *models.Load, actor Actor) Capabilities {
	return Capabilities{
		CanEdit:          CanEditLoad(actor),
		CanCancel:        CanCancelLoad(load, actor),
		CanChangeStatus:  CanChangeLoadStatus(load, actor),
		IsOwner:          IsOwner(load, actor),
		IsAssignedDriver: IsAssignedDriver(load, actor),
	}
}
