// Package economydelivery manages the HTTP delivery layer of the ledger.
package economydelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/playforge/economy/internal/domain"
	"github.com/playforge/economy/pkg/errorspkg"
	"github.com/playforge/economy/pkg/moneypkg"
	"github.com/playforge/economy/pkg/web"
)

// Service provides service layer interface needed by the ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package economydelivery
type Service interface {
	Balance(ctx context.Context, uuid, currencyType string) (int64, error)
	BalanceOrInit(ctx context.Context, uuid, currencyType string) (int64, error)
	SetBalance(ctx context.Context, uuid, currencyType string, amount int64, reason domain.Reason) error
	AddBalance(ctx context.Context, uuid, currencyType string, delta int64, reason domain.Reason) error
	SubtractBalance(ctx context.Context, uuid, currencyType string, delta int64, reason domain.Reason) error
	Transfer(ctx context.Context, senderUUID, receiverUUID, currencyType string, amount int64, reason domain.Reason) (domain.TransferResult, error)
	Logs(ctx context.Context, f domain.LogFilter) ([]domain.LogEntry, error)
	TopBalances(ctx context.Context, currencyType string, limit, offset int32) ([]domain.RankedBalance, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

// CurrencyValidator returns a binding rule that accepts only configured
// currency types.
func CurrencyValidator(currencies domain.Currencies) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if currencyType, ok := fl.Field().Interface().(string); ok {
			_, err := currencies.Get(currencyType)
			return err == nil
		}

		return false
	}
}

type balanceBody struct {
	UUID         string `json:"uuid"`
	CurrencyType string `json:"currency_type"`
	Amount       string `json:"amount"`
	AmountMinor  int64  `json:"amount_minor"`
}

type balanceData struct {
	Balance balanceBody `json:"balance"`
}

type reasonBody struct {
	Tag     string `json:"tag" binding:"required"`
	Actor   string `json:"actor"`
	Context string `json:"context"`
}

func (r reasonBody) domain() domain.Reason {
	return domain.Reason{Tag: r.Tag, Actor: r.Actor, Context: r.Context}
}

type balanceURI struct {
	UUID     string `uri:"uuid" binding:"required,uuid"`
	Currency string `uri:"currency" binding:"required,currency"`
}

func bindError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	var (
		ve     validator.ValidationErrors
		errMsg string
	)

	if errors.As(err, &ve) {
		field := ve[0]
		errMsg = field.Field() + web.GetErrorMsg(field)
	} else {
		errMsg = err.Error()
	}

	l.Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})
}

func respondError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())
	l.Info().Err(err).Send()

	switch err {
	case
		domain.ErrCurrencyNotConfigured,
		domain.ErrInvalidAmount,
		domain.ErrInsufficientBalance,
		domain.ErrBelowMinimumBalance,
		domain.ErrSelfTransfer,
		domain.ErrTransferNotAllowed:
		gctx.JSON(http.StatusBadRequest, web.Response{Error: err.Error()})

		return
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Response{Error: err.Error()})

		return
	case domain.ErrOperationCancelled:
		gctx.JSON(http.StatusConflict, web.Response{Error: err.Error()})

		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Response{Error: errorspkg.ErrInternal.Error()})
}

func (h *Handler) respondBalance(gctx *gin.Context, uuid, currencyType string, amount int64) {
	gctx.JSON(http.StatusOK, web.Response{
		Data: balanceData{
			Balance: balanceBody{
				UUID:         uuid,
				CurrencyType: currencyType,
				Amount:       moneypkg.Format(amount),
				AmountMinor:  amount,
			},
		},
	})
}

// Get handles http request to read a balance without creating it.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri balanceURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	amount, err := h.service.Balance(ctx, uri.UUID, uri.Currency)
	if err != nil {
		respondError(gctx, err)
		return
	}

	h.respondBalance(gctx, uri.UUID, uri.Currency, amount)
}

// Init handles http request to read a balance, creating the account with
// the currency's initial balance when it does not exist yet.
func (h *Handler) Init(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri balanceURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	amount, err := h.service.BalanceOrInit(ctx, uri.UUID, uri.Currency)
	if err != nil {
		respondError(gctx, err)
		return
	}

	h.respondBalance(gctx, uri.UUID, uri.Currency, amount)
}

type amountRequest struct {
	Amount string     `json:"amount" binding:"required"`
	Reason reasonBody `json:"reason" binding:"required"`
}

func (h *Handler) bindAmount(gctx *gin.Context) (balanceURI, int64, domain.Reason, bool) {
	var uri balanceURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return uri, 0, domain.Reason{}, false
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return uri, 0, domain.Reason{}, false
	}

	amount, err := moneypkg.Parse(req.Amount)
	if err != nil {
		bindError(gctx, err)
		return uri, 0, domain.Reason{}, false
	}

	return uri, amount, req.Reason.domain(), true
}

// Set handles http request to overwrite a balance.
func (h *Handler) Set(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	uri, amount, reason, ok := h.bindAmount(gctx)
	if !ok {
		return
	}

	if err := h.service.SetBalance(ctx, uri.UUID, uri.Currency, amount, reason); err != nil {
		respondError(gctx, err)
		return
	}

	stored, err := h.service.Balance(ctx, uri.UUID, uri.Currency)
	if err != nil {
		respondError(gctx, err)
		return
	}

	h.respondBalance(gctx, uri.UUID, uri.Currency, stored)
}

// Add handles http request to credit a balance.
func (h *Handler) Add(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	uri, amount, reason, ok := h.bindAmount(gctx)
	if !ok {
		return
	}

	if err := h.service.AddBalance(ctx, uri.UUID, uri.Currency, amount, reason); err != nil {
		respondError(gctx, err)
		return
	}

	stored, err := h.service.Balance(ctx, uri.UUID, uri.Currency)
	if err != nil {
		respondError(gctx, err)
		return
	}

	h.respondBalance(gctx, uri.UUID, uri.Currency, stored)
}

// Subtract handles http request to debit a balance.
func (h *Handler) Subtract(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	uri, amount, reason, ok := h.bindAmount(gctx)
	if !ok {
		return
	}

	if err := h.service.SubtractBalance(ctx, uri.UUID, uri.Currency, amount, reason); err != nil {
		respondError(gctx, err)
		return
	}

	stored, err := h.service.Balance(ctx, uri.UUID, uri.Currency)
	if err != nil {
		respondError(gctx, err)
		return
	}

	h.respondBalance(gctx, uri.UUID, uri.Currency, stored)
}

type transferRequest struct {
	SenderUUID   string     `json:"sender_uuid" binding:"required,uuid"`
	ReceiverUUID string     `json:"receiver_uuid" binding:"required,uuid"`
	Currency     string     `json:"currency" binding:"required,currency"`
	Amount       string     `json:"amount" binding:"required"`
	Reason       reasonBody `json:"reason" binding:"required"`
}

type transferBody struct {
	SenderUUID   string `json:"sender_uuid"`
	ReceiverUUID string `json:"receiver_uuid"`
	CurrencyType string `json:"currency_type"`
	Amount       string `json:"amount"`
	Tax          string `json:"tax"`
	Received     string `json:"received"`
}

type transferData struct {
	Transfer transferBody `json:"transfer"`
}

// Transfer handles http request to move currency between two players.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	amount, err := moneypkg.Parse(req.Amount)
	if err != nil {
		bindError(gctx, err)
		return
	}

	result, err := h.service.Transfer(ctx, req.SenderUUID, req.ReceiverUUID, req.Currency, amount, req.Reason.domain())
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		Data: transferData{
			Transfer: transferBody{
				SenderUUID:   result.SenderUUID,
				ReceiverUUID: result.ReceiverUUID,
				CurrencyType: result.CurrencyType,
				Amount:       moneypkg.Format(result.Amount),
				Tax:          moneypkg.Format(result.Tax),
				Received:     moneypkg.Format(result.Received),
			},
		},
	})
}

type logsRequest struct {
	UUID          string `form:"uuid"`
	Currency      string `form:"currency"`
	Start         string `form:"start"`
	End           string `form:"end"`
	ReasonTag     string `form:"tag"`
	ReasonActor   string `form:"actor"`
	ReasonContext string `form:"context"`
	Limit         int32  `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset        int32  `form:"offset" binding:"omitempty,min=0"`
	Ascending     bool   `form:"asc"`
}

type logsData struct {
	Logs []domain.LogEntry `json:"logs"`
}

// Logs handles http request to query the transaction log.
func (h *Handler) Logs(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req logsRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	f := domain.LogFilter{
		UUID:          req.UUID,
		CurrencyType:  req.Currency,
		ReasonTag:     req.ReasonTag,
		ReasonActor:   req.ReasonActor,
		ReasonContext: req.ReasonContext,
		Limit:         req.Limit,
		Offset:        req.Offset,
		Ascending:     req.Ascending,
	}

	if req.Start != "" {
		t, err := time.Parse(time.RFC3339, req.Start)
		if err != nil {
			bindError(gctx, err)
			return
		}

		f.StartTime = &t
	}

	if req.End != "" {
		t, err := time.Parse(time.RFC3339, req.End)
		if err != nil {
			bindError(gctx, err)
			return
		}

		f.EndTime = &t
	}

	entries, err := h.service.Logs(ctx, f)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: logsData{Logs: entries}})
}

type topURI struct {
	Currency string `uri:"currency" binding:"required,currency"`
}

type topRequest struct {
	Limit  int32 `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int32 `form:"offset" binding:"omitempty,min=0"`
}

type rankedBody struct {
	Rank   int32  `json:"rank"`
	UUID   string `json:"uuid"`
	Amount string `json:"amount"`
}

type topData struct {
	CurrencyType string       `json:"currency_type"`
	Top          []rankedBody `json:"top"`
}

// Top handles http request to read the balance-descending ranking of a currency.
func (h *Handler) Top(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri topURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req topRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	ranked, err := h.service.TopBalances(ctx, uri.Currency, req.Limit, req.Offset)
	if err != nil {
		respondError(gctx, err)
		return
	}

	top := make([]rankedBody, len(ranked))
	for i, r := range ranked {
		top[i] = rankedBody{
			Rank:   req.Offset + int32(i) + 1,
			UUID:   r.UUID,
			Amount: moneypkg.Format(r.Amount),
		}
	}

	gctx.JSON(http.StatusOK, web.Response{Data: topData{CurrencyType: uri.Currency, Top: top}})
}
