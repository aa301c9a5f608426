// Package policy decides whether an actor may perform an action on a record.
// It is stateless and pure: every rule is derivable from the actor, the
// target record and at most one precomputed fact (such as whether a review
// already exists), so decisions are trivially unit-testable and identical
// across storage backends.
package policy

// Actor identifies the caller of a facade operation. The zero Actor is the
// anonymous caller.
type Actor struct {
	ID      string
	IsAdmin bool
}

// IsAnonymous reports whether the actor carries no verified identity.
func (a Actor) IsAnonymous() bool {
	return a.ID == ""
}

// Reason explains a denial in a machine-distinguishable way so the transport
// layer can map it to the right response code.
type Reason string

const (
	// ReasonUnauthorized covers missing identity and ownership mismatches.
	ReasonUnauthorized Reason = "unauthorized"

	// ReasonSelfReview denies a review on the actor's own place.
	ReasonSelfReview Reason = "self-review"

	// ReasonDuplicateReview denies a second review for the same place.
	ReasonDuplicateReview Reason = "duplicate-review"

	// ReasonImmutableField denies a change to email or password outside the
	// privileged path.
	ReasonImmutableField Reason = "immutable-field"
)

// Decision is the outcome of a policy evaluation. Reason is set only on
// denials.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow builds a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny builds a denying decision carrying its reason.
func Deny(r Reason) Decision {
	return Decision{Reason: r}
}

// Resource is any record with an accountable owner: a place is owned by its
// host, a review by its author, a user record by the user themselves.
type Resource interface {
	ResourceOwnerID() string
}

// RequireAuthenticated admits any verified identity.
func RequireAuthenticated(actor Actor) Decision {
	if actor.IsAnonymous() {
		return Deny(ReasonUnauthorized)
	}
	return Allow()
}

// RequireAdmin admits administrators only.
func RequireAdmin(actor Actor) Decision {
	if actor.IsAnonymous() || !actor.IsAdmin {
		return Deny(ReasonUnauthorized)
	}
	return Allow()
}

// CanModify rules on updating or deleting an owned resource: anonymous
// callers are denied, administrators are admitted, everyone else must own
// the resource.
func CanModify(actor Actor, res Resource) Decision {
	if actor.IsAnonymous() {
		return Deny(ReasonUnauthorized)
	}
	if actor.IsAdmin {
		return Allow()
	}
	if res.ResourceOwnerID() != actor.ID {
		return Deny(ReasonUnauthorized)
	}
	return Allow()
}

// CanCreateReview rules on submitting a review for the place owned by
// placeOwnerID. The structural checks bind administrators too: nobody may
// review their own place or review the same place twice.
func CanCreateReview(actor Actor, placeOwnerID string, alreadyReviewed bool) Decision {
	if actor.IsAnonymous() {
		return Deny(ReasonUnauthorized)
	}
	if actor.ID == placeOwnerID {
		return Deny(ReasonSelfReview)
	}
	if alreadyReviewed {
		return Deny(ReasonDuplicateReview)
	}
	return Allow()
}

// CanUpdateUser rules on mutating the user record targetID.
// touchesProtected reports whether the request includes the email or
// password; those fields require the administrator path.
func CanUpdateUser(actor Actor, targetID string, touchesProtected bool) Decision {
	if actor.IsAnonymous() {
		return Deny(ReasonUnauthorized)
	}
	if actor.IsAdmin {
		return Allow()
	}
	if actor.ID != targetID {
		return Deny(ReasonUnauthorized)
	}
	if touchesProtected {
		return Deny(ReasonImmutableField)
	}
	return Allow()
}
