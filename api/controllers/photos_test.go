package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inspectai/inspectai-backend/api/middleware"
	"github.com/inspectai/inspectai-backend/internal/analysis"
	"github.com/inspectai/inspectai-backend/internal/photos"
	"github.com/inspectai/inspectai-backend/pkg/config"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
	"github.com/inspectai/inspectai-backend/pkg/types"
)

type stubPhotosService struct {
	resp     *photos.UploadPhotosResponse
	dto      *photos.PhotoDTO
	list     []photos.PhotoDTO
	err      error
	gotInput photos.UploadPhotosInput
	gotID    uuid.UUID
}

func (s *stubPhotosService) Upload(_ context.Context, _ uuid.UUID, input photos.UploadPhotosInput) (*photos.UploadPhotosResponse, error) {
	s.gotInput = input
	return s.resp, s.err
}

func (s *stubPhotosService) ListByInspection(_ context.Context, _, inspectionID uuid.UUID) ([]photos.PhotoDTO, error) {
	s.gotID = inspectionID
	return s.list, s.err
}

func (s *stubPhotosService) Get(_ context.Context, _, photoID uuid.UUID) (*photos.PhotoDTO, error) {
	s.gotID = photoID
	return s.dto, s.err
}

func (s *stubPhotosService) Delete(_ context.Context, _, photoID uuid.UUID) error {
	s.gotID = photoID
	return s.err
}

type stubAnalysisService struct {
	resp  *analysis.QueuedResponse
	err   error
	gotID uuid.UUID
}

func (s *stubAnalysisService) QueuePhotoAnalysis(_ context.Context, _, photoID uuid.UUID) (*analysis.QueuedResponse, error) {
	s.gotID = photoID
	return s.resp, s.err
}

func (s *stubAnalysisService) QueueTranscription(_ context.Context, _, voiceNoteID uuid.UUID) (*analysis.QueuedResponse, error) {
	s.gotID = voiceNoteID
	return s.resp, s.err
}

func testUploads() config.UploadConfig {
	return config.UploadConfig{MaxPhotoSizeMB: 10, MaxVoiceNoteDurationSecs: 300, MaxMultipartMemoryMB: 32}
}

func multipartBody(t *testing.T, inspectionID string, fileNames ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if inspectionID != "" {
		if err := writer.WriteField("inspectionId", inspectionID); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, name := range fileNames {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		header.Set("Content-Type", "image/jpeg")
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write([]byte("jpeg-bytes")); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestPhotosUploadPassesBatchToService(t *testing.T) {
	inspectionID := uuid.New()
	svc := &stubPhotosService{resp: &photos.UploadPhotosResponse{Message: "Successfully uploaded 2 photos"}}

	body, contentType := multipartBody(t, inspectionID.String(), "front.jpg", "roof.jpg")
	req := httptest.NewRequest(http.MethodPost, "/api/photos", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

	rec := httptest.NewRecorder()
	PhotosUpload(svc, testUploads(), nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.gotInput.InspectionID != inspectionID {
		t.Fatalf("inspection id = %s", svc.gotInput.InspectionID)
	}
	if len(svc.gotInput.Files) != 2 {
		t.Fatalf("files = %d", len(svc.gotInput.Files))
	}
	if svc.gotInput.Files[0].FileName != "front.jpg" || svc.gotInput.Files[1].FileName != "roof.jpg" {
		t.Fatalf("file names = %s, %s", svc.gotInput.Files[0].FileName, svc.gotInput.Files[1].FileName)
	}
	if svc.gotInput.Files[0].ContentType != "image/jpeg" {
		t.Fatalf("content type = %s", svc.gotInput.Files[0].ContentType)
	}
}

func TestPhotosUploadRequiresInspectionID(t *testing.T) {
	svc := &stubPhotosService{}

	body, contentType := multipartBody(t, "", "front.jpg")
	req := httptest.NewRequest(http.MethodPost, "/api/photos", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

	rec := httptest.NewRecorder()
	PhotosUpload(svc, testUploads(), nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var errBody types.ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if errBody.Error != "Missing required field: inspectionId" {
		t.Fatalf("error = %q", errBody.Error)
	}
}

func TestPhotosUploadEmptyBatchSurfaces400(t *testing.T) {
	svc := &stubPhotosService{err: pkgerrors.New(pkgerrors.CodeValidation, "No files provided")}

	body, contentType := multipartBody(t, uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/api/photos", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

	rec := httptest.NewRecorder()
	PhotosUpload(svc, testUploads(), nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var errBody types.ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if errBody.Error != "No files provided" {
		t.Fatalf("error = %q", errBody.Error)
	}
}

func TestPhotoAnalyzeAcksQueued(t *testing.T) {
	photoID := uuid.New()
	svc := &stubAnalysisService{resp: &analysis.QueuedResponse{
		PhotoID:       &photoID,
		Status:        "queued",
		Message:       "Photo analysis has been queued",
		EstimatedTime: "5-10 seconds",
	}}

	r := chi.NewRouter()
	r.Post("/api/photos/{photoId}/analyze", PhotoAnalyze(svc, nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/photos/"+photoID.String()+"/analyze", ""))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
	var body analysis.QueuedResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "queued" || body.Message != "Photo analysis has been queued" {
		t.Fatalf("body = %+v", body)
	}
	if svc.gotID != photoID {
		t.Fatalf("service saw %s", svc.gotID)
	}
}
