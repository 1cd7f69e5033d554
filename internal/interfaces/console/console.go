// Package console composes the dashboard pages for the terminal. A page
// mounts a cached read, renders it as a table or a distinct loading, empty,
// error or disabled state, and runs its mutations behind role checks,
// confirmations and toasts.
package console

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// Notifier shows the outcome of an action
type Notifier interface {
	Success(message string)
	Error(message string)
}

// RoleGuard answers whether the session may open a page
type RoleGuard interface {
	IsInRole(roles ...identity.Role) bool
}

// Translator resolves message keys for the active locale
type Translator interface {
	T(key string, args ...any) string
}

// Confirmer asks the admin to approve a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Deps are the collaborators every page shares
type Deps struct {
	Guard      RoleGuard
	Notifier   Notifier
	Confirmer  Confirmer
	Translator Translator
	Logger     *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Translator == nil {
		d.Translator = englishFallback{}
	}
	if d.Notifier == nil {
		d.Notifier = nopNotifier{}
	}
	if d.Confirmer == nil {
		d.Confirmer = AssumeNo{}
	}
	if d.Guard == nil {
		d.Guard = denyAll{}
	}
	return d
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

type denyAll struct{}

func (denyAll) IsInRole(...identity.Role) bool { return false }

var english = sync.OnceValues(func() (*i18n.Translator, error) {
	return i18n.New("en")
})

// englishFallback is used when no translator was configured
type englishFallback struct{}

func (englishFallback) T(key string, args ...any) string {
	tr, err := english()
	if err != nil {
		return key
	}
	return tr.T(key, args...)
}

// require fails with ErrForbidden unless the session has one of roles
func (d Deps) require(page string, roles ...identity.Role) error {
	if d.Guard.IsInRole(roles...) {
		return nil
	}
	d.Logger.Warn("Page access denied", zap.String("page", page))
	return shared.ErrForbidden
}

var adminOnly = []identity.Role{identity.RoleAdmin}
