package controllers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/inspectai/inspectai-backend/api/responses"
	"github.com/inspectai/inspectai-backend/internal/analysis"
	"github.com/inspectai/inspectai-backend/internal/voicenotes"
	"github.com/inspectai/inspectai-backend/pkg/config"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
	"github.com/inspectai/inspectai-backend/pkg/logger"
	"github.com/inspectai/inspectai-backend/pkg/types"
)

// VoiceNoteUpload accepts a single multipart "audio" file plus an
// inspectionId and optional duration form value.
func VoiceNoteUpload(svc voicenotes.Service, uploads config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
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

		input := voicenotes.UploadVoiceNoteInput{InspectionID: inspectionID}

		if raw := strings.TrimSpace(r.FormValue("duration")); raw != "" {
			duration, err := strconv.ParseFloat(raw, 64)
			if err != nil || duration < 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Invalid duration"))
				return
			}
			input.Duration = &duration
		}

		if r.MultipartForm != nil {
			if files := r.MultipartForm.File["audio"]; len(files) == 1 {
				header := files[0]
				input.FileName = header.Filename
				input.ContentType = header.Header.Get("Content-Type")
				input.Open = func() (io.ReadCloser, error) {
					return header.Open()
				}
			} else if len(files) > 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Exactly one audio file required"))
				return
			}
		}

		dto, err := svc.Upload(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

func VoiceNoteGet(svc voicenotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), userID, pathUUID(r, "voiceNoteId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

func VoiceNoteDelete(svc voicenotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, pathUUID(r, "voiceNoteId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.SuccessBody{Success: true})
	}
}

// VoiceNoteTranscribe queues asynchronous transcription and acks immediately.
func VoiceNoteTranscribe(svc analysis.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.QueueTranscription(r.Context(), userID, pathUUID(r, "voiceNoteId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, resp)
	}
}
