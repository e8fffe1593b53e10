package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/pkg/jwt"
)

type managerSet struct {
	managers map[uuid.UUID]bool
	err      error
}

func (m *managerSet) IsManager(ctx context.Context, propertyID, userID uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.managers[userID], nil
}

func TestEvaluate(t *testing.T) {
	guest := uuid.New()
	b := &Booking{ID: uuid.New(), GuestID: guest, PropertyID: uuid.New()}

	tests := []struct {
		name    string
		actor   Actor
		manages bool
		has     Capability
		lacks   Capability
	}{
		{"owner guest", Actor{guest, jwt.RoleGuest}, false, CanView | CanSubmit | CanCheckout | CanCancel, CanReview | CanReleaseDeposit | CanOperate},
		{"owner with host role", Actor{guest, jwt.RoleHost}, false, CanView | CanCancel, CanSubmit | CanCheckout | CanReview},
		{"host manager", Actor{uuid.New(), jwt.RoleHost}, true, CanView | CanReview | CanCancel | CanReleaseDeposit | CanOperate, CanSubmit | CanCheckout},
		{"guest co-manager", Actor{uuid.New(), jwt.RoleGuest}, true, CanView | CanReleaseDeposit, CanReview},
		{"host stranger", Actor{uuid.New(), jwt.RoleHost}, false, 0, CanView | CanReview},
		{"admin", Actor{uuid.New(), jwt.RoleAdmin}, false, CanView | CanCancel | CanOperate, CanReview | CanSubmit},
		{"anonymous", Actor{uuid.Nil, jwt.RoleGuest}, false, 0, CanView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := Evaluate(tt.actor, b, tt.manages)
			if !caps.Has(tt.has) {
				t.Fatalf("expected %07b to include %07b", caps, tt.has)
			}
			if tt.lacks != 0 && caps&tt.lacks != 0 {
				t.Fatalf("expected %07b to exclude %07b", caps, tt.lacks)
			}
		})
	}
}

func TestAuthorizerFailsClosed(t *testing.T) {
	host := uuid.New()
	b := &Booking{ID: uuid.New(), GuestID: uuid.New(), PropertyID: uuid.New()}

	ok := NewAuthorizer(&managerSet{managers: map[uuid.UUID]bool{host: true}})
	if caps := ok.Capabilities(context.Background(), Actor{host, jwt.RoleHost}, b); !caps.Has(CanReview) {
		t.Fatalf("expected manager to review, got %07b", caps)
	}

	broken := NewAuthorizer(&managerSet{err: errors.New("connection refused")})
	if caps := broken.Capabilities(context.Background(), Actor{host, jwt.RoleHost}, b); caps != 0 {
		t.Fatalf("expected no capabilities on lookup failure, got %07b", caps)
	}
}
