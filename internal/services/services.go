// Package services implements the application facade. Each service owns one
// entity: it validates input, consults the policy package, orchestrates the
// storage gateway and records audit events. Handlers never talk to storage
// directly.
package services

import (
	"github.com/avenn/stayfinder-be/internal/apperrors"
	"github.com/avenn/stayfinder-be/internal/policy"
)

// denyError converts a policy denial into a transport-facing error. Anonymous
// actors are asked to authenticate; identified actors get a forbidden error
// carrying the denial reason.
func denyError(actor policy.Actor, decision policy.Decision) error {
	if actor.IsAnonymous() {
		return apperrors.NewAuthError("authentication required")
	}
	switch decision.Reason {
	case policy.ReasonSelfReview:
		return apperrors.NewForbiddenError(string(decision.Reason), "you cannot review your own place")
	case policy.ReasonDuplicateReview:
		return apperrors.NewForbiddenError(string(decision.Reason), "you have already reviewed this place")
	case policy.ReasonImmutableField:
		return apperrors.NewForbiddenError(string(decision.Reason), "you cannot modify email or password")
	default:
		return apperrors.NewForbiddenError(string(decision.Reason), "unauthorized action")
	}
}
