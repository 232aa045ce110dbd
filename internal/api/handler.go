package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/enbd-statement-parser/internal/extractor"
	"github.com/insightdelivered/enbd-statement-parser/internal/logger"
	"github.com/insightdelivered/enbd-statement-parser/internal/models"
	"github.com/insightdelivered/enbd-statement-parser/internal/parser"
	"github.com/insightdelivered/enbd-statement-parser/internal/writer"
)

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success        bool                 `json:"success"`
	Error          string               `json:"error,omitempty"`
	RequestID      string               `json:"requestId,omitempty"`
	Bank           string               `json:"bank,omitempty"`
	Transactions   []models.Transaction `json:"transactions"`
	CSV            string               `json:"csv,omitempty"`
	TotalDebit     string               `json:"totalDebit"`
	TotalCredit    string               `json:"totalCredit"`
	Count          int                  `json:"count"`
	InvalidAmounts int                  `json:"invalidAmounts"`
	RawText        string               `json:"rawText,omitempty"`
	Version        string               `json:"version,omitempty"`
	DebugLines     []models.DebugLine   `json:"debugLines,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Options parser.Options
	Log     zerolog.Logger
	Version string
}

// New builds the fiber app with the API routes registered.
func New(h *Handler, maxUploadMB int) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "enbd-statement-parser",
		BodyLimit:             maxUploadMB << 20,
		DisableStartupMessage: true,
	})
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": h.Version,
		"engine":  "fiber",
	})
}

// HandleConvert accepts either a "text" form field with extracted statement
// text or a "file" upload (.pdf or .txt), and returns the parsed transactions.
func (h *Handler) HandleConvert(c *fiber.Ctx) (err error) {
	requestID := uuid.NewString()
	log := logger.WithFields(h.Log, map[string]interface{}{
		"request_id": requestID,
		"remote_ip":  c.IP(),
	})
	started := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("convert crashed")
			err = writeError(c, fiber.StatusInternalServerError, requestID, fmt.Sprintf("Internal server error (recovered from crash): %v", rec))
		}
	}()

	opts, err := h.requestOptions(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, requestID, err.Error())
	}

	pages, source, status, err := readPages(c)
	if err != nil {
		log.Warn().Err(err).Str("source", source).Msg("extraction failed")
		return writeError(c, status, requestID, err.Error())
	}

	if _, detectErr := parser.AutoDetect(pages); detectErr != nil {
		log.Warn().Err(detectErr).Str("source", source).Msg("layout not recognised, parsing anyway")
	}

	p, err := parser.New(models.BankENBD, opts)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, requestID, err.Error())
	}
	info, err := p.Parse(pages)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, requestID, fmt.Sprintf("Parsing failed: %v", err))
	}
	info.Source = source
	info.RunID = requestID

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{IncludeType: c.FormValue("type") == "true"}
	if err := csvWriter.Write(&csvBuf, info); err != nil {
		return writeError(c, fiber.StatusInternalServerError, requestID, fmt.Sprintf("CSV generation failed: %v", err))
	}

	debit, credit, invalid := writer.Totals(info.Transactions)

	// nil marshals to JSON null, not []
	txns := info.Transactions
	if txns == nil {
		txns = []models.Transaction{}
	}

	resp := ConvertResponse{
		Success:        true,
		RequestID:      requestID,
		Bank:           string(info.Bank),
		Transactions:   txns,
		CSV:            csvBuf.String(),
		TotalDebit:     debit.StringFixed(2),
		TotalCredit:    credit.StringFixed(2),
		Count:          len(txns),
		InvalidAmounts: invalid,
		Version:        h.Version,
	}
	if c.FormValue("debug") == "true" {
		resp.RawText = strings.Join(pages, "\n--- PAGE BREAK ---\n")
		resp.DebugLines = info.DebugLines
	}

	log.Info().
		Str("source", source).
		Int("pages", len(pages)).
		Int("transactions", len(txns)).
		Int("invalid_amounts", invalid).
		Dur("duration", time.Since(started)).
		Msg("statement converted")

	return c.JSON(resp)
}

// requestOptions applies per-request overrides on top of the configured options.
func (h *Handler) requestOptions(c *fiber.Ctx) (parser.Options, error) {
	opts := h.Options
	if v := c.FormValue("stray"); v != "" {
		p, err := parser.ParseStrayLinePolicy(v)
		if err != nil {
			return opts, err
		}
		opts.StrayLines = p
	}
	if v := c.FormValue("unterminated"); v != "" {
		p, err := parser.ParseUnterminatedPolicy(v)
		if err != nil {
			return opts, err
		}
		opts.Unterminated = p
	}
	if c.FormValue("rejectInvalid") == "true" {
		opts.InvalidAmounts = parser.InvalidReject
	}
	return opts, nil
}

// readPages returns the statement text from the "text" field or the uploaded
// file, with the HTTP status to use on failure.
func readPages(c *fiber.Ctx) ([]string, string, int, error) {
	if text := c.FormValue("text"); text != "" {
		return []string{text}, "text", fiber.StatusOK, nil
	}

	header, err := c.FormFile("file")
	if err != nil {
		return nil, "", fiber.StatusBadRequest, errors.New("No file uploaded. Use form field 'file' or 'text'.")
	}
	file, err := header.Open()
	if err != nil {
		return nil, header.Filename, fiber.StatusBadRequest, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, header.Filename, fiber.StatusBadRequest, fmt.Errorf("failed to read upload: %w", err)
	}

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".pdf":
		pages, err := extractor.ExtractTextFromBytes(data)
		if err != nil {
			return nil, header.Filename, fiber.StatusUnprocessableEntity, fmt.Errorf("PDF extraction failed: %w", err)
		}
		return pages, header.Filename, fiber.StatusOK, nil
	case ".txt":
		return []string{string(data)}, header.Filename, fiber.StatusOK, nil
	default:
		return nil, header.Filename, fiber.StatusBadRequest, errors.New("Only PDF and TXT files are supported.")
	}
}

func writeError(c *fiber.Ctx, status int, requestID, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:   false,
		Error:     msg,
		RequestID: requestID,
	})
}
