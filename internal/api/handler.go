package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sorinciupitu/extrase-trezorerie/internal/extractor"
	"github.com/sorinciupitu/extrase-trezorerie/internal/models"
	"github.com/sorinciupitu/extrase-trezorerie/internal/parser"
	"github.com/sorinciupitu/extrase-trezorerie/internal/store"
)

// accountHeader carries the caller's account identity, set by the
// fronting proxy after authentication. Auth itself lives outside this
// service.
const accountHeader = "X-Account"

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Log           *logrus.Logger
	Transactions  *store.TransactionStore
	Balances      *store.BalanceStore
	UploadDir     string
	MaxUploadSize int64
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/upload", h.HandleUpload)
	app.Get("/api/transactions", h.HandleTransactions)
	app.Post("/api/delete-file", h.HandleDeleteFile)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "extrase-trezorerie",
	})
}

// HandleUpload receives a statement PDF, parses it, and stores the new
// transactions and the balance update for the caller's account. The
// document is parsed completely before anything is stored: a document
// that fails mid-way commits nothing.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	account := c.Get(accountHeader)
	if account == "" {
		return writeError(c, fiber.StatusBadRequest, "Missing account identity.")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}
	if h.MaxUploadSize > 0 && fileHeader.Size > h.MaxUploadSize {
		return writeError(c, fiber.StatusRequestEntityTooLarge, "File too large.")
	}

	// Saved files get a unique prefix so identically named uploads
	// from different callers never collide.
	savedPath := filepath.Join(h.UploadDir, fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(fileHeader.Filename)))
	if err := c.SaveFile(fileHeader, savedPath); err != nil {
		h.Log.WithError(err).Error("failed to save uploaded file")
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	info, err := h.parseDocument(savedPath, fileHeader.Filename)
	if err != nil {
		os.Remove(savedPath)
		h.Log.WithError(err).WithField("file", fileHeader.Filename).Warn("statement parsing failed")
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	added, err := h.Transactions.InsertIfAbsent(account, info.Transactions)
	if err != nil {
		h.Log.WithError(err).Error("failed to store transactions")
		return writeError(c, fiber.StatusInternalServerError, "Failed to store transactions.")
	}

	balanceApplied := false
	if info.BalanceUpdate != nil {
		balanceApplied, err = h.Balances.Apply(account, *info.BalanceUpdate)
		if err != nil {
			h.Log.WithError(err).Error("failed to apply balance update")
			return writeError(c, fiber.StatusInternalServerError, "Failed to update balance.")
		}
	}

	h.Log.WithFields(logrus.Fields{
		"account": account,
		"file":    fileHeader.Filename,
		"parsed":  len(info.Transactions),
		"added":   added,
	}).Info("statement imported")

	return c.JSON(fiber.Map{
		"status":          "success",
		"parsed":          len(info.Transactions),
		"added":           added,
		"balance_applied": balanceApplied,
	})
}

// parseDocument runs the extraction and parsing pipeline for one file.
func (h *Handler) parseDocument(path, name string) (*models.StatementInfo, error) {
	doc, err := extractor.ExtractDocument(path, name)
	if err != nil {
		return nil, err
	}

	kind, err := parser.AutoDetect(doc)
	if err != nil {
		return nil, err
	}

	p, err := parser.New(kind)
	if err != nil {
		return nil, err
	}
	return p.Parse(doc)
}

// HandleTransactions returns the account's transactions together with
// the current balance and credit/debit totals.
func (h *Handler) HandleTransactions(c *fiber.Ctx) error {
	account := c.Get(accountHeader)
	if account == "" {
		return writeError(c, fiber.StatusBadRequest, "Missing account identity.")
	}

	txns, err := h.Transactions.List(account)
	if err != nil {
		h.Log.WithError(err).Error("failed to list transactions")
		return writeError(c, fiber.StatusInternalServerError, "Failed to load transactions.")
	}
	if txns == nil {
		txns = []models.Transaction{}
	}

	balance, balanceDate, err := h.Balances.Current(account)
	if err != nil {
		h.Log.WithError(err).Error("failed to read balance")
		return writeError(c, fiber.StatusInternalServerError, "Failed to load balance.")
	}

	income, expense, err := h.Transactions.Totals(account)
	if err != nil {
		h.Log.WithError(err).Error("failed to compute totals")
		return writeError(c, fiber.StatusInternalServerError, "Failed to compute totals.")
	}

	return c.JSON(fiber.Map{
		"transactions":  txns,
		"balance":       balance,
		"balance_date":  balanceDate,
		"total_income":  income.InexactFloat64(),
		"total_expense": expense.InexactFloat64(),
	})
}

type deleteFileRequest struct {
	Filename string `json:"filename"`
}

// HandleDeleteFile removes all transactions imported from one document.
func (h *Handler) HandleDeleteFile(c *fiber.Ctx) error {
	account := c.Get(accountHeader)
	if account == "" {
		return writeError(c, fiber.StatusBadRequest, "Missing account identity.")
	}

	var req deleteFileRequest
	if err := c.BodyParser(&req); err != nil || req.Filename == "" {
		return writeError(c, fiber.StatusBadRequest, "Missing filename.")
	}

	deleted, err := h.Transactions.DeleteByDocument(account, req.Filename)
	if err != nil {
		h.Log.WithError(err).Error("failed to delete transactions")
		return writeError(c, fiber.StatusInternalServerError, "Failed to delete transactions.")
	}

	return c.JSON(fiber.Map{
		"status":  "deleted",
		"deleted": deleted,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
