package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// envelope is the response wrapper used by the backend. Older endpoints
// answer with a bare payload, and validation failures may come back as
// RFC 7807 problem details; decode accepts all three.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`

	// top level paging of {data, page, limit, total}
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`

	// problem details
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *envelope) isWrapped() bool {
	return e.Success != nil || e.Data != nil
}

func parseEnvelope(body []byte) (*envelope, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, false
	}
	return &env, true
}

// payload returns the data part of a successful response
func payload(body []byte) (json.RawMessage, *envelope) {
	env, ok := parseEnvelope(body)
	if ok && env.isWrapped() {
		return env.Data, env
	}
	return bytes.TrimSpace(body), nil
}

func isNull(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}

// Decode executes req and decodes the response data into T. It returns
// nil when the backend answered without data, e.g. 204 or a bare success.
func Decode[T any](ctx context.Context, c *Client, req Request) (*T, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	data, env := payload(resp.Body)
	if env != nil && env.Success != nil && !*env.Success {
		return nil, errorFromEnvelope(resp.StatusCode, env, resp.RequestID)
	}
	if isNull(data) {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding %s %s response: %w", req.Method, req.Path, err)
	}
	return &out, nil
}

// Exec executes req and discards the response data
func Exec(ctx context.Context, c *Client, req Request) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if _, env := payload(resp.Body); env != nil && env.Success != nil && !*env.Success {
		return errorFromEnvelope(resp.StatusCode, env, resp.RequestID)
	}
	return nil
}

// listPayload accepts the pagination shapes used across endpoints:
// {items, pagination}, flat {items, pageNumber, pageSize, totalCount} and
// {data, page, limit, total}.
type listPayload[T any] struct {
	Items      []T                `json:"items"`
	Data       []T                `json:"data"`
	Pagination *shared.Pagination `json:"pagination"`
	PageNumber int                `json:"pageNumber"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	Limit      int                `json:"limit"`
	TotalCount int64              `json:"totalCount"`
	Total      int64              `json:"total"`
}

// DecodeList executes a list request and normalizes the page
func DecodeList[T any](ctx context.Context, c *Client, req Request) (*shared.ListResponse[T], error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	data, env := payload(resp.Body)
	if env != nil && env.Success != nil && !*env.Success {
		return nil, errorFromEnvelope(resp.StatusCode, env, resp.RequestID)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decoding %s list: %w", req.Path, err)
		}
		page, size, total := 1, len(items), int64(len(items))
		switch {
		case env != nil && env.Meta != nil:
			page, size, total = env.Meta.Page, env.Meta.PageSize, env.Meta.Total
		case env != nil && env.Total > 0:
			page, size, total = firstPositive(env.Page, 1), firstPositive(env.Limit, len(items)), env.Total
		}
		out := shared.NewListResponse(items, page, size, total)
		return &out, nil
	}

	var p listPayload[T]
	if !isNull(trimmed) {
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("decoding %s list: %w", req.Path, err)
		}
	}
	items := p.Items
	if items == nil {
		items = p.Data
	}
	if p.Pagination != nil {
		return &shared.ListResponse[T]{Items: nonNil(items), Pagination: *p.Pagination}, nil
	}
	page := firstPositive(p.PageNumber, p.Page, 1)
	size := firstPositive(p.PageSize, p.Limit, len(items))
	total := p.TotalCount
	if total == 0 {
		total = p.Total
	}
	out := shared.NewListResponse(items, page, size, total)
	return &out, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func errorFromResponse(status int, body []byte, requestID string) *shared.APIError {
	env, ok := parseEnvelope(body)
	if !ok {
		msg := strings.TrimSpace(string(body))
		if msg == "" || len(msg) > 200 {
			msg = http.StatusText(status)
		}
		return &shared.APIError{
			Kind:       shared.KindForStatus(status),
			StatusCode: status,
			Message:    msg,
			RequestID:  requestID,
		}
	}
	return errorFromEnvelope(status, env, requestID)
}

func errorFromEnvelope(status int, env *envelope, requestID string) *shared.APIError {
	out := &shared.APIError{
		Kind:       shared.KindForStatus(status),
		StatusCode: status,
		RequestID:  requestID,
		Fields:     parseFieldErrors(env.Errors),
	}
	switch {
	case env.Error != nil:
		out.Code = env.Error.Code
		out.Message = env.Error.Message
	case env.Message != "":
		out.Message = env.Message
	case env.Detail != "":
		out.Message = env.Detail
	case env.Title != "":
		out.Message = env.Title
	}
	if out.Message == "" {
		out.Message = http.StatusText(status)
	}
	if out.Kind == shared.KindUnknown && len(out.Fields) > 0 {
		out.Kind = shared.KindValidation
	}
	return out
}

// parseFieldErrors reads {"field": ["msg"]}, {"field": "msg"} or a list of
// messages (collected under "")
func parseFieldErrors(raw json.RawMessage) map[string][]string {
	if isNull(raw) {
		return nil
	}
	var multi map[string][]string
	if err := json.Unmarshal(raw, &multi); err == nil {
		return normalizeFields(multi)
	}
	var single map[string]string
	if err := json.Unmarshal(raw, &single); err == nil {
		out := make(map[string][]string, len(single))
		for k, v := range single {
			out[k] = []string{v}
		}
		return normalizeFields(out)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return map[string][]string{"": list}
	}
	return nil
}

// normalizeFields lower-cases the first letter of field names so
// "VendorContactEmail" matches the form field "vendorContactEmail"
func normalizeFields(in map[string][]string) map[string][]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]string, len(in))
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name := k
		if name != "" {
			name = strings.ToLower(name[:1]) + name[1:]
		}
		out[name] = append(out[name], in[k]...)
	}
	return out
}
