package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/analyzer"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/service"
)

const (
	maxImageSize = 10 * 1024 * 1024 // 10MB
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// AnalysisService interface for the service
type AnalysisService interface {
	Scan(ctx context.Context, frames [][]byte) (*domain.Analysis, error)
	AnalyzeLandmarks(ctx context.Context, landmarks domain.Landmarks, box domain.BoundingBox) (*domain.Analysis, error)
	AnalyzeUpload(ctx context.Context, image []byte) (*domain.Analysis, error)
	Current() (*domain.Analysis, error)
	Gallery() ([]analyzer.Compatibility, error)
	Compatibility(style string) (analyzer.Compatibility, error)
	Preview(style string) service.Preview
	NextHairModel() (service.HairModel, error)
}

// AnalysisHandler handles face analysis and hairstyle requests
type AnalysisHandler struct {
	service   AnalysisService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler instance
func NewAnalysisHandler(service AnalysisService, validate *validator.Validate, logger *slog.Logger) *AnalysisHandler {
	if validate == nil {
		validate = validator.New()
	}

	return &AnalysisHandler{
		service:   service,
		validator: validate,
		logger:    logger,
	}
}

// PointRequest is a pixel coordinate sent by the client
type PointRequest struct {
	X float64 `json:"x" validate:"gte=0"`
	Y float64 `json:"y" validate:"gte=0"`
}

// BoundingBoxRequest is the detected face region
type BoundingBoxRequest struct {
	TopLeft     *PointRequest `json:"top_left" validate:"required"`
	BottomRight *PointRequest `json:"bottom_right" validate:"required"`
}

// LandmarksRequest request for the landmarks endpoint. Fewer than six
// landmarks is accepted and yields a fallback analysis.
type LandmarksRequest struct {
	Landmarks   []PointRequest      `json:"landmarks" validate:"max=128,dive"`
	BoundingBox *BoundingBoxRequest `json:"bounding_box" validate:"required"`
}

// GalleryResponse response for the hairstyle gallery
type GalleryResponse struct {
	FaceShape  domain.FaceShape         `json:"face_shape"`
	Hairstyles []analyzer.Compatibility `json:"hairstyles"`
}

// Scan POST /v1/analysis/scan - detect a face across camera frames
func (h *AnalysisHandler) Scan(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	files := form.File["frames"]
	if len(files) == 0 {
		return domain.ErrValidationFailed.WithError(errors.New("at least one frame is required"))
	}

	frames := make([][]byte, 0, len(files))
	for _, file := range files {
		frame, err := readImage(file)
		if err != nil {
			return err
		}
		frames = append(frames, frame)
	}

	analysis, err := h.service.Scan(c.Context(), frames)
	if err != nil {
		return err
	}

	return c.JSON(analysis)
}

// AnalyzeLandmarks POST /v1/analysis/landmarks - analyze client-side geometry
func (h *AnalysisHandler) AnalyzeLandmarks(c *fiber.Ctx) error {
	var req LandmarksRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Debug("invalid landmarks request", slog.String("error", err.Error()))
		return domain.ErrValidationFailed.WithError(err)
	}

	landmarks := make(domain.Landmarks, 0, len(req.Landmarks))
	for _, p := range req.Landmarks {
		landmarks = append(landmarks, domain.Point{X: p.X, Y: p.Y})
	}

	box := domain.BoundingBox{
		TopLeft:     domain.Point{X: req.BoundingBox.TopLeft.X, Y: req.BoundingBox.TopLeft.Y},
		BottomRight: domain.Point{X: req.BoundingBox.BottomRight.X, Y: req.BoundingBox.BottomRight.Y},
	}

	analysis, err := h.service.AnalyzeLandmarks(c.Context(), landmarks, box)
	if err != nil {
		return err
	}

	return c.JSON(analysis)
}

// Upload POST /v1/analysis/upload - analyze an uploaded photo
func (h *AnalysisHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	image, err := readImage(file)
	if err != nil {
		return err
	}

	analysis, err := h.service.AnalyzeUpload(c.Context(), image)
	if err != nil {
		return err
	}

	return c.JSON(analysis)
}

// Current GET /v1/analysis/current
func (h *AnalysisHandler) Current(c *fiber.Ctx) error {
	analysis, err := h.service.Current()
	if err != nil {
		return err
	}

	return c.JSON(analysis)
}

// Gallery GET /v1/hairstyles - every catalog style scored against the current analysis
func (h *AnalysisHandler) Gallery(c *fiber.Ctx) error {
	analysis, err := h.service.Current()
	if err != nil {
		return err
	}

	scores, err := h.service.Gallery()
	if err != nil {
		return err
	}

	return c.JSON(GalleryResponse{
		FaceShape:  analysis.FaceShape,
		Hairstyles: scores,
	})
}

// Compatibility GET /v1/hairstyles/:name/compatibility
func (h *AnalysisHandler) Compatibility(c *fiber.Ctx) error {
	style, err := styleParam(c)
	if err != nil {
		return err
	}

	result, err := h.service.Compatibility(style)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Preview GET /v1/hairstyles/:name/preview
func (h *AnalysisHandler) Preview(c *fiber.Ctx) error {
	style, err := styleParam(c)
	if err != nil {
		return err
	}

	return c.JSON(h.service.Preview(style))
}

// NextHairModel POST /v1/preview/hair/next - cycle the 3D hair mesh
func (h *AnalysisHandler) NextHairModel(c *fiber.Ctx) error {
	model, err := h.service.NextHairModel()
	if err != nil {
		return err
	}

	return c.JSON(model)
}

func styleParam(c *fiber.Ctx) (string, error) {
	style, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return "", domain.ErrBadRequest.WithError(err)
	}

	style = strings.TrimSpace(style)
	if style == "" {
		return "", domain.ErrValidationFailed.WithError(errors.New("hairstyle name is required"))
	}

	return style, nil
}

// readImage checks size and declared type before reading an uploaded file
func readImage(file *multipart.FileHeader) ([]byte, error) {
	if file.Size == 0 || file.Size > maxImageSize {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return data, nil
}
