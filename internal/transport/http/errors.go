package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeMissingRequiredField = "missing_required_field"
	codeInvalidEmail         = "invalid_email"
	codeInvalidID            = "invalid_id"
	codeInvalidEventDate     = "invalid_event_date"
	codeInvalidEventType     = "invalid_event_type"
	codeInvalidStatus        = "invalid_status"
	codeInvalidDay           = "invalid_day"
	codeInvalidCredential    = "invalid_credential"
	codeEventNotFound        = "event_not_found"
	codeRegistrationNotFound = "registration_not_found"
	codeTeamMemberNotFound   = "team_member_not_found"
	codeAdminNotFound        = "admin_not_found"
	codeAlreadyRegistered    = "already_registered"
	codeRegistrationClosed   = "registration_closed"
	codeAlreadyMarked        = "already_marked"
	codeWrongEvent           = "wrong_event"
	codeAdminExists          = "admin_exists"
	codeInvalidCredentials   = "invalid_credentials"
	codeUnauthorized         = "unauthorized"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
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
