package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeUnauthenticated    = "unauthenticated"
	codeForbidden          = "forbidden"
	codeSoldOut            = "sold_out"
	codeAllocationFailed   = "allocation_failed"
	codeValidationFailed   = "validation_failed"
	codeIngestionFailed    = "ingestion_failed"
	codeVendorNotFound     = "vendor_not_found"
	codeCustomerNotFound   = "customer_not_found"
	codeConfigNotFound     = "config_not_found"
	codeInvalidConfig      = "invalid_config"
	codeInvalidID          = "invalid_id"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
