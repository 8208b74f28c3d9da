package handlers

import (
	"github.com/gofiber/fiber/v2"

	"doc_processing_backend/models"
	"doc_processing_backend/pkg/errs"
	"doc_processing_backend/pkg/logging"
	"doc_processing_backend/services"
)

type DocHandler struct {
	docService *services.DocumentService
}

func NewDocHandler(docService *services.DocumentService) *DocHandler {
	return &DocHandler{docService: docService}
}

// Upload accepts a multipart form with a single file part and stages the
// document for processing.
func (h *DocHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Result{
			Success: false, Message: "file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Result{
			Success: false, Message: "could not read the uploaded file",
		})
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	location, err := h.docService.Upload(c.UserContext(), fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		return failure(c, err, "error uploading document")
	}

	return c.JSON(models.Result{
		Success: true,
		Message: "Document uploaded successfully.",
		Data:    location,
	})
}

func (h *DocHandler) Get(c *fiber.Ctx) error {
	view, err := h.docService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return failure(c, err, "error getting document")
	}
	return c.JSON(models.Result{Success: true, Data: view})
}

func (h *DocHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 0)

	views, err := h.docService.List(c.UserContext(), page, pageSize)
	if err != nil {
		return failure(c, err, "error listing documents")
	}
	return c.JSON(models.Result{Success: true, Data: views})
}

func failure(c *fiber.Ctx, err error, msg string) error {
	logging.Logger.Error(msg, "error", err)
	switch {
	case errs.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(models.Result{Success: false, Message: err.Error()})
	case errs.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(models.Result{Success: false, Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.Result{Success: false, Message: msg})
	}
}
