package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/fuel_station_ledger/internal/core/ports/services"
	"github.com/SscSPs/fuel_station_ledger/internal/dto"
	"github.com/SscSPs/fuel_station_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	transactionService portssvc.TransactionSvc
	location           *time.Location
}

func newTransactionHandler(ts portssvc.TransactionSvc, loc *time.Location) *transactionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &transactionHandler{transactionService: ts, location: loc}
}

// registerTransactionRoutes registers routes on the /accounts/:accountID group.
func registerTransactionRoutes(account *gin.RouterGroup, transactionService portssvc.TransactionSvc, loc *time.Location) {
	h := newTransactionHandler(transactionService, loc)

	account.POST("/transactions", h.recordTransaction)
	account.GET("/transactions", h.listTransactions)
	account.GET("/transactions/:transactionID", h.getTransaction)
}

// recordTransaction godoc
// @Summary Record a transaction
// @Description Records a bill, payment, purchase, deposit, tank movement or salary entry against an account.
// @Description The kind must belong to the account's subject.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   transaction body dto.RecordTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input, wrong kind for the account or inactive account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [post]
func (h *transactionHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("account_id", accountID), slog.String("kind", string(req.Kind)))
	logger.Info("Received request to record transaction")

	txn, err := h.transactionService.RecordTransaction(c.Request.Context(), accountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record transaction")
		return
	}

	logger.Info("Transaction recorded successfully", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List an account's transactions
// @Description Lists transactions dated within the calendar days fromDate..toDate, oldest first
// @Tags transactions
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   fromDate query string true "First day (YYYY-MM-DD)"
// @Param   toDate query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, to, err := parseDateRange(params.FromDate, params.ToDate, h.location)
	if err != nil {
		respondServiceError(c, logger, err, "list transactions")
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), accountID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(txns)})
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Gets one transaction of an account by its ID
// @Tags transactions
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to get transaction"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	transactionID := c.Param("transactionID")

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), accountID, transactionID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("transaction_id", transactionID)), err, "get transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
