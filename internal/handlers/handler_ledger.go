package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/fuel_station_ledger/internal/core/ports/services"
	"github.com/SscSPs/fuel_station_ledger/internal/dto"
	"github.com/SscSPs/fuel_station_ledger/internal/export"
	"github.com/SscSPs/fuel_station_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

const formatXLSX = "xlsx"

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
	location      *time.Location
	now           func() time.Time
}

func newLedgerHandler(ls portssvc.LedgerSvc, loc *time.Location) *ledgerHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ledgerHandler{ledgerService: ls, location: loc, now: time.Now}
}

// registerLedgerRoutes registers the account ledger report and the outstanding balances report.
func registerLedgerRoutes(v1 *gin.RouterGroup, account *gin.RouterGroup, ledgerService portssvc.LedgerSvc, loc *time.Location) {
	h := newLedgerHandler(ledgerService, loc)

	account.GET("/ledger", h.getAccountLedger)
	v1.GET("/balances", h.listBalances)
}

// getAccountLedger godoc
// @Summary Get an account ledger
// @Description Merges every transaction collection of the account into one date-ordered ledger with running balances.
// @Description Entries cover the calendar days fromDate..toDate; earlier transactions feed the balance before the period.
// @Tags ledger
// @Produce  json
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   accountID path string true "Account ID"
// @Param   fromDate query string true "First day (YYYY-MM-DD)"
// @Param   toDate query string true "Last day (YYYY-MM-DD)"
// @Param   format query string false "Response format" Enums(json, xlsx) default(json)
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid date range or malformed transaction data"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to generate ledger"
// @Security BearerAuth
// @Router /accounts/{accountID}/ledger [get]
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.LedgerReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, to, err := parseDateRange(params.FromDate, params.ToDate, h.location)
	if err != nil {
		respondServiceError(c, logger, err, "generate ledger")
		return
	}

	logger = logger.With(slog.String("account_id", accountID), slog.String("from", params.FromDate), slog.String("to", params.ToDate))
	logger.Info("Received request for account ledger", slog.String("format", params.Format))

	report, err := h.ledgerService.GetAccountLedger(c.Request.Context(), accountID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "generate ledger")
		return
	}

	if params.Format == formatXLSX {
		var buf bytes.Buffer
		if err := export.WriteLedger(&buf, report); err != nil {
			respondServiceError(c, logger, err, "export ledger")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.LedgerFilename(report)))
		c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(report))
}

// listBalances godoc
// @Summary Outstanding balances
// @Description Balance, total credit and total debit of every active account of a subject, from each account's opening date through asOf.
// @Tags ledger
// @Produce  json
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   subject query string true "Ledger subject" Enums(CUSTOMER, SUPPLIER, BANK_ACCOUNT, TANK, EMPLOYEE)
// @Param   asOf query string false "Last day included (YYYY-MM-DD), defaults to today"
// @Param   format query string false "Response format" Enums(json, xlsx) default(json)
// @Success 200 {object} dto.BalancesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate balances"
// @Security BearerAuth
// @Router /balances [get]
func (h *ledgerHandler) listBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.BalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for balances", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	asOf := today(h.now(), h.location)
	if params.AsOf != "" {
		var err error
		if asOf, err = parseDate("asOf", params.AsOf, h.location); err != nil {
			respondServiceError(c, logger, err, "generate balances")
			return
		}
	}

	logger = logger.With(slog.String("subject", string(params.Subject)), slog.String("as_of", asOf.Format(time.DateOnly)))
	logger.Info("Received request for outstanding balances")

	rows, err := h.ledgerService.ListBalances(c.Request.Context(), params.Subject, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "generate balances")
		return
	}

	if params.Format == formatXLSX {
		var buf bytes.Buffer
		if err := export.WriteBalances(&buf, params.Subject, asOf, rows); err != nil {
			respondServiceError(c, logger, err, "export balances")
			return
		}
		filename := fmt.Sprintf("balances_%s_%s.xlsx", params.Subject, asOf.Format(time.DateOnly))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
		return
	}

	logger.Info("Balances generated", slog.Int("accounts", len(rows)))
	c.JSON(http.StatusOK, dto.ToBalancesResponse(params.Subject, asOf, rows))
}
