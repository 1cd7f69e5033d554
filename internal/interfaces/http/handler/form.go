package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// uploadBaseURL prefixes the URL of stored uploads
const uploadBaseURL = "https://cdn.sooquk.test/uploads/"

const maxUploadBytes = 5 << 20

// form reads a multipart payload field by field. Parse errors are
// collected per field.
type form struct {
	c    *gin.Context
	errs *shared.ValidationError
}

func newForm(c *gin.Context) (*form, error) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}
	return &form{c: c, errs: shared.NewValidationError()}, nil
}

func (f *form) has(name string) bool {
	_, ok := f.c.GetPostForm(name)
	return ok
}

func (f *form) str(name string) string {
	return strings.TrimSpace(f.c.PostForm(name))
}

func (f *form) integer(name string) int64 {
	raw := f.str(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f.errs.Add(name, "Must be a whole number")
	}
	return v
}

func (f *form) optInteger(name string) *int64 {
	if f.str(name) == "" {
		return nil
	}
	v := f.integer(name)
	return &v
}

func (f *form) boolean(name string) bool {
	v, err := strconv.ParseBool(f.str(name))
	if err != nil && f.has(name) {
		f.errs.Add(name, "Must be true or false")
	}
	return v
}

// file reads an uploaded file, nil when the part is absent
func (f *form) file(name string) *shared.File {
	fh, err := f.c.FormFile(name)
	if err != nil {
		return nil
	}
	data, err := readUpload(fh)
	if err != nil {
		f.errs.Add(name, "Could not read the uploaded file")
		return nil
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	if !strings.HasPrefix(ct, "image/") {
		f.errs.Add(name, "Must be an image")
		return nil
	}
	return &shared.File{Name: fh.Filename, ContentType: ct, Data: data}
}

// err returns the collected parse errors
func (f *form) err() error {
	return f.errs.Err()
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

// storeUpload pretends to store an upload and returns its public URL
func storeUpload(kind string, f *shared.File) string {
	return fmt.Sprintf("%s%s/%s%s", uploadBaseURL, kind, uuid.NewString(), path.Ext(f.Name))
}

// validate runs v's own rules and merges them with the parse errors
func (f *form) validate(v validatable) error {
	if err := v.Validate(); err != nil {
		var verr *shared.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for field, msg := range verr.Fields {
			f.errs.Add(field, msg)
		}
	}
	return f.err()
}
