package handler

import (
	"errors"
	"io"
	"net/http"

	"swipe-go/internal/domain/validation"
)

const maxUploadSize = 10 << 20

var errMissingImage = errors.New("image file is required")

type imageResponse struct {
	ID    int64  `json:"id"`
	Owner int64  `json:"owner"`
	Image string `json:"image"`
}

// readImage opens the multipart "image" field. The caller closes it.
func readImage(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, validation.New("image", err.Error())
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, validation.New("image", errMissingImage.Error())
	}
	return file, nil
}
