package shared

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Standard paging parameter names
const (
	ParamPageNumber = "pageNumber"
	ParamPageSize   = "pageSize"

	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// Params holds list query parameters. Unset values are never stored, so
// an absent filter is never serialized.
type Params map[string]string

// NewParams creates an empty parameter set
func NewParams() Params {
	return make(Params)
}

// Clone returns a copy of p
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Get returns the value for key
func (p Params) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// SetString stores a non-empty string
func (p Params) SetString(key, value string) Params {
	if value = strings.TrimSpace(value); value != "" {
		p[key] = value
	}
	return p
}

// SetInt stores a positive integer
func (p Params) SetInt(key string, value int) Params {
	if value > 0 {
		p[key] = strconv.Itoa(value)
	}
	return p
}

// SetIntPtr stores an integer when present, zero included. Use it for
// range filters where 0 is a meaningful bound.
func (p Params) SetIntPtr(key string, value *int) Params {
	if value != nil {
		p[key] = strconv.Itoa(*value)
	}
	return p
}

// SetInt64Ptr stores an integer when present
func (p Params) SetInt64Ptr(key string, value *int64) Params {
	if value != nil {
		p[key] = strconv.FormatInt(*value, 10)
	}
	return p
}

// SetBoolPtr stores a boolean when present
func (p Params) SetBoolPtr(key string, value *bool) Params {
	if value != nil {
		p[key] = strconv.FormatBool(*value)
	}
	return p
}

// SetDecimalPtr stores a decimal when present
func (p Params) SetDecimalPtr(key string, value *decimal.Decimal) Params {
	if value != nil {
		p[key] = value.String()
	}
	return p
}

// SetTimePtr stores a date-time in RFC3339 when present
func (p Params) SetTimePtr(key string, value *time.Time) Params {
	if value != nil && !value.IsZero() {
		p[key] = value.UTC().Format(time.RFC3339)
	}
	return p
}

// WithDefaults returns a copy with paging defaults filled in for the given
// parameter names. Other parameters pass through verbatim.
func (p Params) WithDefaults(pageParam, sizeParam string, pageSize int) Params {
	out := p.Clone()
	if _, ok := out[pageParam]; !ok {
		out[pageParam] = strconv.Itoa(DefaultPageNumber)
	}
	if _, ok := out[sizeParam]; !ok {
		if pageSize <= 0 {
			pageSize = DefaultPageSize
		}
		out[sizeParam] = strconv.Itoa(pageSize)
	}
	return out
}

// Values converts p to url.Values
func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for k, val := range p {
		v.Set(k, val)
	}
	return v
}

// Encode serializes p canonically (keys sorted)
func (p Params) Encode() string {
	return p.Values().Encode()
}

// Keys returns the sorted parameter names
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
