package request

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"resort/shared/constant"
	"resort/shared/failure"
	"resort/shared/imagestore"
	"resort/shared/validator"
)

type imageForm struct {
	Image *multipart.FileHeader `validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

// FormImage reads the uploaded image stored under field. The form must already be parsed.
func FormImage(r *http.Request, field string) (img imagestore.Image, err error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return img, failure.BadRequestFromString(field + " is required")
		}

		return img, failure.BadRequest(fmt.Errorf("failed to read %s: %w", field, err))
	}
	defer file.Close()

	form := imageForm{Image: header}
	if err = validator.ValidateStruct(&form); err != nil {
		return img, err
	}

	img.Data, err = io.ReadAll(file)
	if err != nil {
		return img, fmt.Errorf("failed to read %s: %w", field, err)
	}

	img.ContentType = header.Header.Get(constant.RequestHeaderContentType)

	return img, nil
}
