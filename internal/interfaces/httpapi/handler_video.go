package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/glovework/keeper-stats/internal/usecase"
)

// UploadVideo accepts a multipart form with a "video" file part plus
// "title" and optional "description" fields. The response carries the
// poll handle; analysis continues asynchronously.
func (h *Handler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadVideo")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(ctx, w, fmt.Errorf("%w: video exceeds the %d byte upload limit", usecase.ErrInvalidInput, maxBytesErr.Limit))
			return
		}
		writeError(ctx, w, fmt.Errorf("%w: invalid multipart payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: video file part is required", usecase.ErrInvalidInput))
		return
	}
	defer file.Close()

	contentType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if !strings.HasPrefix(contentType, "video/") {
		writeError(ctx, w, fmt.Errorf("%w: content type %q is not a video", usecase.ErrInvalidInput, contentType))
		return
	}

	out, err := h.ingestionService.Submit(ctx, usecase.Submission{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Filename:    header.Filename,
		ContentType: contentType,
		Body:        file,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "video upload failed", "filename", header.Filename, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, uploadResultDTO{
		VideoID:   out.VideoID,
		PublicURL: out.PublicURL,
	})
}

func (h *Handler) GetVideoStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVideoStatus")
	defer span.End()

	videoID := r.PathValue("videoID")
	job, err := h.ingestionService.PollStatus(ctx, videoID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobToStatusDTO(job))
}

func (h *Handler) ListVideoAnalyses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVideoAnalyses")
	defer span.End()

	items, err := h.videoService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list video analyses failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]videoAnalysisDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, videoAnalysisToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, dtos)
}

func (h *Handler) GetVideoAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVideoAnalysis")
	defer span.End()

	analysisID := r.PathValue("analysisID")
	item, err := h.videoService.GetByID(ctx, analysisID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, videoAnalysisToDTO(item))
}

func (h *Handler) DeleteVideoAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteVideoAnalysis")
	defer span.End()

	analysisID := r.PathValue("analysisID")
	if err := h.videoService.Delete(ctx, analysisID); err != nil {
		h.logger.WarnContext(ctx, "delete video analysis failed", "analysis_id", analysisID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": analysisID})
}

func (h *Handler) GetShotMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetShotMap")
	defer span.End()

	analysisID := r.PathValue("analysisID")
	projection, err := h.videoService.ShotMap(ctx, analysisID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, projectionToDTO(projection))
}
