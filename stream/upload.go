package stream

import (
	"io"
	"mime/multipart"
)

// Upload is a streaming multipart/form-data request body. The source reader
// is copied through an in-process pipe while the HTTP client consumes the
// body, so uploads never buffer the whole file.
type Upload struct {
	pr          *io.PipeReader
	contentType string
}

// NewUpload builds a multipart body with a single file part named fieldName.
// The copy from src starts lazily and keeps pace with the consumer.
func NewUpload(fieldName, fileName string, src io.Reader) *Upload {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(fieldName, fileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	return &Upload{
		pr:          pr,
		contentType: mw.FormDataContentType(),
	}
}

// Read implements io.Reader; the HTTP client drains the multipart body
// through it.
func (u *Upload) Read(p []byte) (int, error) {
	return u.pr.Read(p)
}

// ContentType returns the multipart content type including the boundary.
func (u *Upload) ContentType() string {
	return u.contentType
}

// Close aborts the upload; the producing side unblocks with io.ErrClosedPipe.
func (u *Upload) Close() error {
	return u.pr.Close()
}
