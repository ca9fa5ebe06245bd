package handler

import (
	"encoding/json"
	"errors"
	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"
)

type OwnerHandler struct {
	service *service.AccountService
}

func NewOwnerHandler(s *service.AccountService) *OwnerHandler {
	return &OwnerHandler{service: s}
}

// CreateOwner godoc
// @Summary      Create a new owner with an initial account
// @Description  Creates an owner and their first bank account funded with the given amount.
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        body body model.CreateOwnerRequest true "Owner name and initial deposit"
// @Success      201  {object}  model.CreateOwnerResponse
// @Failure      400  {object}  common.AppError "Non-positive amount or malformed body"
// @Router       /owner/{amount} [post]
func (h *OwnerHandler) CreateOwner(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateOwnerRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	logger.Log.WithField("name", req.Owner.Name).Info("Create owner request received")

	owner, account, err := h.service.CreateOwner(r.Context(), req.Owner.Name, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			return common.NewAppError(http.StatusBadRequest, "Amount must be a positive number", err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create owner", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(model.CreateOwnerResponse{ID: owner.ID, IBAN: account.IBAN})
	return nil
}
