package apiclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// Body is an encodable request payload
type Body interface {
	// Encode returns the payload and its content type
	Encode() ([]byte, string, error)
}

// IsMultipart reports whether b is sent as multipart/form-data
func IsMultipart(b Body) bool {
	_, ok := b.(*Form)
	return ok
}

type jsonBody struct {
	v any
}

// JSON encodes v as application/json
func JSON(v any) Body {
	return jsonBody{v: v}
}

func (b jsonBody) Encode() ([]byte, string, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", err
	}
	return data, "application/json", nil
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	name string
	file *shared.File
}

// Form is a multipart/form-data payload. Scalars are stringified; absent
// optional values and absent files are left out rather than sent empty.
type Form struct {
	fields []formField
	files  []formFile
}

// NewForm creates an empty form
func NewForm() *Form {
	return &Form{}
}

// String adds a field, even when empty
func (f *Form) String(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// OptionalString adds a field only when value is not empty
func (f *Form) OptionalString(name, value string) *Form {
	if value != "" {
		f.String(name, value)
	}
	return f
}

// Bool adds a boolean as "true" or "false"
func (f *Form) Bool(name string, value bool) *Form {
	return f.String(name, strconv.FormatBool(value))
}

// Int adds an integer
func (f *Form) Int(name string, value int64) *Form {
	return f.String(name, strconv.FormatInt(value, 10))
}

// OptionalInt adds an integer when present
func (f *Form) OptionalInt(name string, value *int64) *Form {
	if value != nil {
		f.Int(name, *value)
	}
	return f
}

// Decimal adds a decimal in its canonical form
func (f *Form) Decimal(name string, value decimal.Decimal) *Form {
	return f.String(name, value.String())
}

// Time adds a time in RFC3339, skipping the zero time
func (f *Form) Time(name string, value time.Time) *Form {
	if !value.IsZero() {
		f.String(name, value.UTC().Format(time.RFC3339))
	}
	return f
}

// File adds a file part when file has content
func (f *Form) File(name string, file *shared.File) *Form {
	if !file.IsEmpty() {
		f.files = append(f.files, formFile{name: name, file: file})
	}
	return f
}

// Value returns the first value of field name
func (f *Form) Value(name string) (string, bool) {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld.value, true
		}
	}
	return "", false
}

// HasFile reports whether a file part called name was added
func (f *Form) HasFile(name string) bool {
	for _, ff := range f.files {
		if ff.name == name {
			return true
		}
	}
	return false
}

// Len returns the number of fields and files
func (f *Form) Len() int {
	return len(f.fields) + len(f.files)
}

// Encode writes the multipart payload
func (f *Form) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", fld.name, err)
		}
	}
	for _, ff := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, ff.name, fileName(ff.file)))
		ct := ff.file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", ff.name, err)
		}
		if _, err := part.Write(ff.file.Data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", ff.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func fileName(f *shared.File) string {
	if f.Name != "" {
		return f.Name
	}
	return "upload"
}
