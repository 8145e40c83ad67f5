package auth

import (
	"context"
	"log/slog"
	"net/http"
)

const (
	MsgLoginRequired      = "Login Required"
	MsgMissingPermissions = "Missing Permissions"
	MsgCheckFailed        = "Permission Check Failed"
	MsgInternalError      = "Internal Error"
)

// Principal is the acting identity for an authorization check, resolved
// fresh per request. It carries identity only; the authoritative permission
// integer is re-read from storage at check time because roles can be edited
// between requests.
type Principal struct {
	UserID    string
	Email     string
	RoleID    string
	Superuser bool
}

// Denial is the structured deny result. A nil *Denial means allow. The same
// shape backs both the authoritative request gate and the advisory boolean
// used for UI-style conditionals.
type Denial struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// RolePermissionSource fetches a role's current permission integer from
// persistent storage. Checks never trust a cached or caller-supplied value.
type RolePermissionSource interface {
	RolePermissions(ctx context.Context, roleID string) (Bits, error)
}

type Checker struct {
	source RolePermissionSource
}

func NewChecker(source RolePermissionSource) *Checker {
	return &Checker{source: source}
}

// Check decides whether principal may perform an action requiring every
// permission in required (AND semantics). Failures of the permission source,
// including request cancellation, deny rather than allow.
func (c *Checker) Check(ctx context.Context, principal *Principal, required Resolvable) *Denial {
	bits, err := Resolve(required)
	if err != nil {
		// A call site named a flag the catalog does not define.
		slog.Error("permission requirement failed to resolve", "err", err)
		return &Denial{Message: MsgCheckFailed, Status: http.StatusInternalServerError}
	}

	if principal == nil {
		return &Denial{Message: MsgLoginRequired, Status: http.StatusUnauthorized}
	}

	if principal.Superuser {
		return nil
	}

	if bits == 0 {
		return nil
	}

	if principal.RoleID == "" {
		return &Denial{Message: MsgMissingPermissions, Status: http.StatusForbidden}
	}

	if ctx.Err() != nil {
		return &Denial{Message: MsgCheckFailed, Status: http.StatusInternalServerError}
	}

	granted, err := c.source.RolePermissions(ctx, principal.RoleID)
	if err != nil {
		slog.Warn("role permission lookup failed", "roleId", principal.RoleID, "err", err)
		return &Denial{Message: MsgCheckFailed, Status: http.StatusInternalServerError}
	}

	if granted&bits != bits {
		return &Denial{Message: MsgMissingPermissions, Status: http.StatusForbidden}
	}

	return nil
}

// Allowed adapts Check for call sites that only need a boolean, e.g. to
// decide what a client may render. It fails closed.
func (c *Checker) Allowed(ctx context.Context, principal *Principal, required Resolvable) bool {
	return c.Check(ctx, principal, required) == nil
}

// Tier pairs a permission requirement with the fetch that serves it.
type Tier[T any] struct {
	Required Resolvable
	Fetch    func(ctx context.Context) (T, error)
}

// ResolveTiered evaluates tiers top to bottom and runs the first one the
// principal satisfies. When every tier denies, the last denial is returned,
// so order tiers from broadest requirement to narrowest.
func ResolveTiered[T any](ctx context.Context, c *Checker, principal *Principal, tiers []Tier[T]) (T, *Denial) {
	var zero T
	var denied *Denial
	for _, tier := range tiers {
		if denied = c.Check(ctx, principal, tier.Required); denied != nil {
			continue
		}
		out, err := tier.Fetch(ctx)
		if err != nil {
			return zero, &Denial{Message: MsgInternalError, Status: http.StatusInternalServerError}
		}
		return out, nil
	}
	if denied == nil {
		denied = &Denial{Message: MsgMissingPermissions, Status: http.StatusForbidden}
	}
	return zero, denied
}
