package shared

// File is an attachment uploaded as a multipart part
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// IsEmpty reports whether no file content was provided
func (f *File) IsEmpty() bool {
	return f == nil || len(f.Data) == 0
}
