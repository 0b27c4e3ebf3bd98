package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/middleware"
	"bidproposal-backend/internal/service/approval"
	"bidproposal-backend/internal/service/artifact"
	"bidproposal-backend/internal/service/document"
	"bidproposal-backend/internal/service/generation"
	"bidproposal-backend/internal/service/version"
)

type DocumentHandler struct {
	docService      document.Service
	approvalService approval.Service
}

func NewDocumentHandler(docService document.Service, approvalService approval.Service) *DocumentHandler {
	return &DocumentHandler{
		docService:      docService,
		approvalService: approvalService,
	}
}

func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	var input domain.CreateDocumentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if strings.TrimSpace(input.ProjectName) == "" || strings.TrimSpace(input.ProjectDetails) == "" {
		return middleware.BadRequest("project_name and project_details are required")
	}

	doc, err := h.docService.Create(c.Context(), user, input)
	if err != nil {
		return mapDocumentError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"document": doc})
}

func (h *DocumentHandler) CreateFromRFQ(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	var input domain.CreateFromRFQInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if strings.TrimSpace(input.FileName) == "" || strings.TrimSpace(input.RFQText) == "" {
		return middleware.BadRequest("file_name and rfq_text are required")
	}

	doc, err := h.docService.CreateFromRFQ(c.Context(), user, input)
	if err != nil {
		return mapDocumentError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"document": doc})
}

func (h *DocumentHandler) UpdateSection(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	var input domain.UpdateSectionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.DocumentID == uuid.Nil {
		return middleware.BadRequest("document_id is required")
	}
	if strings.TrimSpace(input.SectionName) == "" || strings.TrimSpace(input.Instructions) == "" {
		return middleware.BadRequest("section_name and instructions are required")
	}

	doc, err := h.docService.UpdateSection(c.Context(), user, input)
	if err != nil {
		return mapDocumentError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"document": doc})
}

func (h *DocumentHandler) Submit(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	doc, err := h.docService.Submit(c.Context(), user, docID)
	if err != nil {
		return mapDocumentError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"document": doc})
}

func (h *DocumentHandler) Review(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	var input domain.RecordReviewInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	doc, err := h.docService.Review(c.Context(), user, docID, input)
	if err != nil {
		return mapDocumentError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"document": doc})
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	doc, err := h.docService.Get(c.Context(), user, docID)
	if err != nil {
		return mapDocumentError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"document": doc})
}

func (h *DocumentHandler) GetApproval(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	// Access is checked through the document read path.
	if _, err := h.docService.Get(c.Context(), user, docID); err != nil {
		return mapDocumentError(err)
	}

	appr, err := h.approvalService.GetByDocumentID(c.Context(), docID)
	if err != nil {
		return mapDocumentError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"approval": appr})
}

func (h *DocumentHandler) GetVersion(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	number, err := strconv.Atoi(c.Params("number"))
	if err != nil || number < 1 {
		return middleware.BadRequest("Invalid version number")
	}

	data, err := h.docService.GetVersion(c.Context(), user, docID, number)
	if err != nil {
		return mapDocumentError(err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	params := getPaginationParams(c)

	result, err := h.docService.List(c.Context(), user, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *DocumentHandler) ListReviews(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	reviews, err := h.docService.ListReviews(c.Context(), user, docID)
	if err != nil {
		return mapDocumentError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"reviews": reviews})
}

// mapDocumentError translates service sentinels into HTTP errors. Anything
// unmatched falls through to the global 500 handler.
func mapDocumentError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, domain.ErrNoVersions),
		errors.Is(err, version.ErrSectionNotFound),
		errors.Is(err, artifact.ErrNotFound),
		errors.Is(err, approval.ErrApprovalMissing):
		return middleware.NotFound(err.Error())

	case errors.Is(err, document.ErrAccessDenied),
		errors.Is(err, approval.ErrNotAllowed):
		return middleware.Forbidden(err.Error())

	case errors.Is(err, document.ErrNotEditable),
		errors.Is(err, approval.ErrAlreadyFinalized),
		errors.Is(err, approval.ErrDuplicateReview),
		errors.Is(err, approval.ErrInvalidDecision),
		errors.Is(err, approval.ErrNotSubmitted):
		return middleware.BadRequest(err.Error())

	case errors.Is(err, version.ErrVersionConflict):
		return middleware.Conflict(err.Error())

	case errors.Is(err, generation.ErrTimeout),
		errors.Is(err, generation.ErrInvalidFormat),
		errors.Is(err, generation.ErrEmptyResponse),
		errors.Is(err, artifact.ErrTimeout),
		errors.Is(err, artifact.ErrWrite):
		return middleware.BadGateway(err.Error())

	default:
		return err
	}
}
