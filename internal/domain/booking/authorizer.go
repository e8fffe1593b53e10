package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/pkg/jwt"
	"github.com/stayhost/stayhost-api/internal/pkg/logger"
)

// Capability is a set of actions an actor may take on a booking
type Capability uint8

const (
	CanView Capability = 1 << iota
	CanSubmit
	CanReview
	CanCancel
	CanReleaseDeposit
	CanCheckout
	CanOperate
)

// Has reports whether c includes every capability in want
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Actor is the authenticated caller
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// Evaluate computes the capabilities of actor on b. manages reports whether
// the actor hosts or co-manages the booking's property.
func Evaluate(actor Actor, b *Booking, manages bool) Capability {
	var caps Capability
	if actor.UserID == uuid.Nil || b == nil {
		return caps
	}

	if b.GuestID == actor.UserID {
		caps |= CanView | CanCancel
		if actor.Role == jwt.RoleGuest {
			caps |= CanSubmit | CanCheckout
		}
	}

	if manages {
		caps |= CanView | CanCancel | CanReleaseDeposit | CanOperate
		if actor.Role == jwt.RoleHost || actor.Role == jwt.RoleAdmin {
			caps |= CanReview
		}
	}

	if actor.Role == jwt.RoleAdmin {
		caps |= CanView | CanCancel | CanOperate
	}

	return caps
}

// ManagerLookup resolves whether a user manages a property
type ManagerLookup interface {
	IsManager(ctx context.Context, propertyID, userID uuid.UUID) (bool, error)
}

// Authorizer computes capabilities against the property manager lookup
type Authorizer struct {
	managers ManagerLookup
}

// NewAuthorizer creates booking authorizer
func NewAuthorizer(managers ManagerLookup) *Authorizer {
	return &Authorizer{managers: managers}
}

// Capabilities returns what actor may do with b. A failed manager lookup
// grants no manager capabilities.
func (a *Authorizer) Capabilities(ctx context.Context, actor Actor, b *Booking) Capability {
	manages := false
	if b != nil && actor.UserID != uuid.Nil && a.managers != nil {
		ok, err := a.managers.IsManager(ctx, b.PropertyID, actor.UserID)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).
				Str("booking_id", b.ID.String()).
				Str("property_id", b.PropertyID.String()).
				Msg("Manager lookup failed, denying manager access")
		}
		manages = err == nil && ok
	}
	return Evaluate(actor, b, manages)
}
