package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"studentapi/internal/model"
	"studentapi/internal/service"
)

// maxBodyBytes caps the size of a threshold request body.
const maxBodyBytes = 1 << 20

// StudentFilterer is the part of service.StudentService used by the handler.
type StudentFilterer interface {
	AboveThreshold(threshold *float64) (*model.ThresholdResponse, error)
	Size() int
}

type StudentHandler struct {
	studentService StudentFilterer
}

func NewStudentHandler(studentService StudentFilterer) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// AboveThreshold handles POST /students/above-threshold
func (h *StudentHandler) AboveThreshold(w http.ResponseWriter, r *http.Request) {
	req, err := decodeThresholdRequest(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Message: service.InvalidThresholdMessage})
		return
	}

	response, err := h.studentService.AboveThreshold(req.Threshold)
	if err != nil {
		if errors.Is(err, service.ErrInvalidThreshold) {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Message: service.InvalidThresholdMessage})
			return
		}
		log.Printf("Error in AboveThreshold handler: %v", err)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Message: "Failed to retrieve students"})
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// decodeThresholdRequest reads exactly one JSON object from an
// application/json body.
func decodeThresholdRequest(w http.ResponseWriter, r *http.Request) (*model.ThresholdRequest, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	if mediaType != "application/json" {
		return nil, fmt.Errorf("unsupported content type %q", mediaType)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var req model.ThresholdRequest
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("unexpected data after request body")
	}
	return &req, nil
}

// Health handles GET /healthz
func (h *StudentHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"students": h.studentService.Size(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Error encoding response:", err)
	}
}
