package handler

import (
	"encoding/json"
	"errors"
	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service *service.AccountService
}

func NewAccountHandler(s *service.AccountService) *AccountHandler {
	return &AccountHandler{service: s}
}

// CreateAccount godoc
// @Summary      Create an additional account for an existing owner
// @Produce      json
// @Param        id path string true "Owner id"
// @Param        amount path string true "Initial deposit"
// @Success      201  {object}  model.CreateAccountResponse
// @Failure      400  {object}  common.AppError "Non-positive amount"
// @Failure      404  {object}  common.AppError "Owner not found"
// @Router       /owner/{id}/bank_account/{amount} [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	ownerID := r.PathValue("id")
	amount, err := decimal.NewFromString(r.PathValue("amount"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Amount must be a positive number", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"amount":   amount.String(),
	}).Info("Create account request received")

	account, err := h.service.CreateAccount(r.Context(), ownerID, amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOwnerNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case errors.Is(err, service.ErrInvalidAmount):
			return common.NewAppError(http.StatusBadRequest, "Amount must be a positive number", err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not create account", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(model.CreateAccountResponse{IBAN: account.IBAN})
	return nil
}

// GetBalance godoc
// @Summary      Get the committed balance of an account
// @Produce      json
// @Param        id path string true "Owner id"
// @Param        iban path string true "Account IBAN"
// @Success      200  {object}  model.BalanceResponse
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /owner/{id}/bank_account/{iban}/balance [get]
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) *common.AppError {
	iban := r.PathValue("iban")

	balance, err := h.service.GetBalance(r.Context(), iban)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve balance", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.BalanceResponse{AccountBalance: balance})
	return nil
}

// ListTransactions godoc
// @Summary      List an account's transaction history
// @Description  Returns the account's transactions in chronological order; an empty array when there is no history.
// @Produce      json
// @Param        id path string true "Owner id"
// @Param        iban path string true "Account IBAN"
// @Success      200  {array}   model.TransactionView
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /owner/{id}/bank_account/{iban}/transactions [get]
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) *common.AppError {
	iban := r.PathValue("iban")

	transactions, err := h.service.ListTransactions(r.Context(), iban)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve transactions", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(transactions)
	return nil
}
