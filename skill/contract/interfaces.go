package contract

import (
	"context"
	"time"

	placesx "github.com/angelonuoha/openclaw/pkg/places"
	vapix "github.com/angelonuoha/openclaw/pkg/vapi"
)

// Dialer places and inspects outbound calls on the calling platform.
type Dialer interface {
	CreateCall(ctx context.Context, req vapix.CallRequest) (*vapix.Call, error)
	GetCall(ctx context.Context, callID string) (*vapix.Call, error)
	PollCall(ctx context.Context, callID string, interval time.Duration) (*vapix.Call, error)
}

// Directory looks businesses up by name and area.
type Directory interface {
	FindRestaurant(ctx context.Context, name, near string) (*placesx.Place, error)
}

// Interpreter turns one free text ask into structured reservation details.
type Interpreter interface {
	Interpret(ctx context.Context, text string) (ReservationDetails, error)
}
