package handler

import (
	"encoding/json"
	"errors"
	"go-ledger-api/common"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"

	"github.com/shopspring/decimal"
)

// TransferHandler holds dependencies for transfer-related handlers.
type TransferHandler struct {
	service *service.TransferService
}

func NewTransferHandler(s *service.TransferService) *TransferHandler {
	return &TransferHandler{service: s}
}

// CreateTransfer godoc
// @Summary      Transfer money between two accounts
// @Description  Debits the origin, credits the destination and records a correlated pair of ledger entries. Returns the outward transaction id as the transfer reference.
// @Produce      json
// @Param        id path string true "Owner id"
// @Param        iban path string true "Origin account IBAN"
// @Param        recipientIban path string true "Destination account IBAN"
// @Param        amount path string true "Amount to transfer"
// @Success      201  {object}  model.TransferResponse
// @Failure      400  {object}  common.AppError "Non-positive amount, self-transfer or insufficient balance"
// @Failure      404  {object}  common.AppError "Origin or destination account not found"
// @Failure      408  {object}  common.AppError "Timed out waiting for account locks"
// @Failure      500  {object}  common.AppError "Storage failure or partial commit requiring reconciliation"
// @Router       /owner/{id}/bank_account/{iban}/transfer/{recipientIban}/{amount} [post]
func (h *TransferHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) *common.AppError {
	originIBAN := r.PathValue("iban")
	destinationIBAN := r.PathValue("recipientIban")

	amount, err := decimal.NewFromString(r.PathValue("amount"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Amount must be a positive number", err)
	}

	result, err := h.service.Transfer(r.Context(), originIBAN, destinationIBAN, amount)
	if err != nil {
		// Map business errors to HTTP status codes. A partial commit is
		// reported with its reconciliation reference and never swallowed.
		var pce *service.PartialCommitError
		switch {
		case errors.As(err, &pce):
			return common.NewAppError(http.StatusInternalServerError,
				"Transfer partially committed, reconciliation required for transaction "+pce.TransactionRef, err)
		case errors.Is(err, service.ErrAccountNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case errors.Is(err, service.ErrInvalidAmount),
			errors.Is(err, service.ErrInsufficientBalance),
			errors.Is(err, service.ErrSameAccountTransfer):
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, service.ErrLockTimeout):
			return common.NewAppError(http.StatusRequestTimeout, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not process transfer", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(model.TransferResponse{
		TransactionReferenceNumber: result.ReferenceID,
		AccountBalance:             result.OriginBalance,
	})
	return nil
}
