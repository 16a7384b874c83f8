package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vijay0896/LoanApp/internal/middleware"
	"github.com/vijay0896/LoanApp/internal/services"
	"github.com/vijay0896/LoanApp/internal/storage"
	"github.com/vijay0896/LoanApp/internal/utils"
)

type LoanHandler struct {
	svc   *services.LoanService
	store storage.ObjectStore
	log   *zap.SugaredLogger
}

func NewLoanHandler(svc *services.LoanService, store storage.ObjectStore, log *zap.SugaredLogger) *LoanHandler {
	return &LoanHandler{svc: svc, store: store, log: log}
}

type addEntryRequest struct {
	services.BorrowerInput
	Loans []services.LoanInput `json:"loans"`
}

// AddEntry handles POST /api/loan/addEntry. The body is either JSON or a
// multipart form carrying the same fields plus an optional "image" part; in
// the multipart case the loans list arrives JSON-encoded in the "loans" field.
func (h *LoanHandler) AddEntry(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req addEntryRequest
	imageKey := ""
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		req.Name = c.FormValue("borrowerName")
		req.Mobile = c.FormValue("borrowerMobile")
		req.Address = c.FormValue("borrowerAddress")
		if raw := c.FormValue("loans"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Loans); err != nil {
				return utils.JSONError(c, fiber.StatusBadRequest, "Loan details missing or malformed")
			}
		}
		key, err := h.storeImage(c, userID)
		if err != nil {
			h.log.Errorw("image upload failed", "err", err)
			return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		imageKey = key
	} else if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}

	borrowerID, err := h.svc.SubmitEntry(c.UserContext(), userID, req.BorrowerInput, req.Loans, imageKey)
	if err != nil {
		return h.writeError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{
		"msg":        "Borrower details added successfully",
		"borrowerId": borrowerID,
	})
}

// storeImage uploads the optional "image" part and returns its object key,
// or "" when the part is absent.
func (h *LoanHandler) storeImage(c *fiber.Ctx, userID string) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	ct := fileHeader.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	key := userID + "/" + utils.NewID() + "_" + fileHeader.Filename
	if _, err := h.store.Upload(c.UserContext(), key, ct, data); err != nil {
		return "", err
	}
	return key, nil
}

// GetBorrowers handles GET /api/loan/getBorrowers.
func (h *LoanHandler) GetBorrowers(c *fiber.Ctx) error {
	borrowers, err := h.svc.ListBorrowers(c.UserContext(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "No borrowers found")
		}
		h.log.Errorw("list borrowers failed", "err", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"borrowers": borrowers})
}

// DeleteBorrower handles DELETE /api/loan/deleteBorrower/:borrowerId.
func (h *LoanHandler) DeleteBorrower(c *fiber.Ctx) error {
	err := h.svc.DeleteBorrower(c.UserContext(), middleware.UserID(c), c.Params("borrowerId"))
	if err != nil {
		return h.writeError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"msg": "Borrower deleted successfully"})
}

// DeleteLoan handles DELETE /api/loan/deleteBorrowerLoan/:borrowerId/loans/:loanId.
func (h *LoanHandler) DeleteLoan(c *fiber.Ctx) error {
	err := h.svc.DeleteLoan(c.UserContext(), middleware.UserID(c), c.Params("borrowerId"), c.Params("loanId"))
	if err != nil {
		return h.writeError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"msg": "Loan deleted successfully"})
}

// UpdateBorrower handles PATCH /api/loan/UpdateBorrower/:borrowerId.
func (h *LoanHandler) UpdateBorrower(c *fiber.Ctx) error {
	var req services.BorrowerInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	err := h.svc.UpdateBorrower(c.UserContext(), middleware.UserID(c), c.Params("borrowerId"), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"msg": "Borrower updated successfully"})
}

// UpdateLoan handles PATCH /api/loan/UpdateBorrowerLoan/:borrowerId/loans/:loanId.
func (h *LoanHandler) UpdateLoan(c *fiber.Ctx) error {
	var req services.LoanInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	err := h.svc.UpdateLoan(c.UserContext(), middleware.UserID(c), c.Params("borrowerId"), c.Params("loanId"), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"msg": "Loan updated successfully"})
}

func (h *LoanHandler) writeError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrInvalidLoanPayload):
		return utils.JSONError(c, fiber.StatusBadRequest, "Loan details missing or malformed")
	case errors.Is(err, services.ErrInvalidNumericField):
		return utils.JSONError(c, fiber.StatusBadRequest, "Loan amount and interest rate must be valid numbers")
	case errors.Is(err, services.ErrNotFound):
		return utils.JSONError(c, fiber.StatusNotFound, "Not found")
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "validation failed", "errors": verr.Fields})
	default:
		h.log.Errorw("loan operation failed", "err", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
