package console

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// ErrorMessage returns the most specific message err carries for the admin:
// field errors first, then the backend or rule message, then a translated
// message for the error kind.
func ErrorMessage(err error, tr Translator) string {
	if err == nil {
		return ""
	}
	if tr == nil {
		tr = englishFallback{}
	}

	var verr *shared.ValidationError
	if errors.As(err, &verr) && verr.HasErrors() {
		return joinFields(verr.Fields)
	}

	var apiErr *shared.APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.Fields) > 0 {
			flat := make(map[string]string, len(apiErr.Fields))
			for field, msgs := range apiErr.Fields {
				flat[field] = strings.Join(msgs, ", ")
			}
			return joinFields(flat)
		}
		switch apiErr.Kind {
		case shared.KindNetwork:
			return tr.T(i18n.ErrNetwork)
		case shared.KindAuth:
			if apiErr.StatusCode == 403 {
				return tr.T(i18n.ErrForbidden)
			}
			return tr.T(i18n.ErrAuth)
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return tr.T(kindKey(apiErr.Kind))
	}

	if errors.Is(err, shared.ErrForbidden) {
		return tr.T(i18n.ErrForbidden)
	}
	if errors.Is(err, shared.ErrNotConfirmed) || errors.Is(err, context.Canceled) {
		return tr.T(i18n.Cancelled)
	}
	var derr *shared.DomainError
	if errors.As(err, &derr) {
		return derr.Message
	}
	return tr.T(i18n.ErrGeneric)
}

func kindKey(kind shared.ErrorKind) string {
	switch kind {
	case shared.KindNetwork:
		return i18n.ErrNetwork
	case shared.KindValidation:
		return i18n.ErrValidation
	case shared.KindNotFound:
		return i18n.ErrNotFound
	case shared.KindAuth:
		return i18n.ErrAuth
	case shared.KindConflict:
		return i18n.ErrConflict
	case shared.KindServer:
		return i18n.ErrServer
	}
	return i18n.ErrGeneric
}

// joinFields renders field errors in a stable order. Messages without a
// field come first.
func joinFields(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			parts = append(parts, fields[name])
			continue
		}
		parts = append(parts, name+": "+fields[name])
	}
	return strings.Join(parts, "; ")
}
