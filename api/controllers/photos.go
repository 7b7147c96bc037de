package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/inspectai/inspectai-backend/api/responses"
	"github.com/inspectai/inspectai-backend/internal/analysis"
	"github.com/inspectai/inspectai-backend/internal/photos"
	"github.com/inspectai/inspectai-backend/pkg/config"
	"github.com/inspectai/inspectai-backend/pkg/enums"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
	"github.com/inspectai/inspectai-backend/pkg/logger"
	"github.com/inspectai/inspectai-backend/pkg/types"
)

func fileUpload(header *multipart.FileHeader) photos.FileUpload {
	return photos.FileUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

// PhotosUpload accepts a multipart batch under the "files" field plus an
// inspectionId form value.
func PhotosUpload(svc photos.Service, uploads config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		maxMemory := int64(uploads.MaxMultipartMemoryMB) << 20
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		inspectionID, err := uuid.Parse(strings.TrimSpace(r.FormValue("inspectionId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Missing required field: inspectionId"))
			return
		}

		input := photos.UploadPhotosInput{InspectionID: inspectionID}

		if raw := strings.TrimSpace(r.FormValue("category")); raw != "" {
			category, err := enums.ParsePhotoCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Invalid photo category"))
				return
			}
			input.Category = &category
		}
		if location := strings.TrimSpace(r.FormValue("location")); location != "" {
			input.Location = &location
		}

		maxFileSize := int64(uploads.MaxPhotoSizeMB) << 20
		if r.MultipartForm != nil {
			for _, header := range r.MultipartForm.File["files"] {
				if header.Size > maxFileSize {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Photo exceeds maximum size"))
					return
				}
				input.Files = append(input.Files, fileUpload(header))
			}
		}

		resp, err := svc.Upload(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

func PhotoGet(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), userID, pathUUID(r, "photoId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

func PhotoDelete(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, pathUUID(r, "photoId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.SuccessBody{Success: true})
	}
}

// PhotoAnalyze queues asynchronous analysis and acks immediately.
func PhotoAnalyze(svc analysis.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.QueuePhotoAnalysis(r.Context(), userID, pathUUID(r, "photoId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, resp)
	}
}
