package router

import (
	"go-ledger-api/handler"
	"net/http"
)

func NewRouter(ownerHandler *handler.OwnerHandler, accountHandler *handler.AccountHandler, transferHandler *handler.TransferHandler, allowedOrigin string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	mux.Handle("POST /owner/{amount}", handler.ErrorHandlingMiddleware(ownerHandler.CreateOwner))
	mux.Handle("POST /owner/{id}/bank_account/{amount}", handler.ErrorHandlingMiddleware(accountHandler.CreateAccount))
	mux.Handle("POST /owner/{id}/bank_account/{iban}/transfer/{recipientIban}/{amount}", handler.ErrorHandlingMiddleware(transferHandler.CreateTransfer))
	mux.Handle("GET /owner/{id}/bank_account/{iban}/balance", handler.ErrorHandlingMiddleware(accountHandler.GetBalance))
	mux.Handle("GET /owner/{id}/bank_account/{iban}/transactions", handler.ErrorHandlingMiddleware(accountHandler.ListTransactions))

	return handler.CORSMiddleware(allowedOrigin, mux)
}
