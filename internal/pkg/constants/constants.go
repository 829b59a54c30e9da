package constants

import "net/http"

const (
	CookieKeySecretToken = "secret_token"

	ViperSecretKey        = "admin_secret"
	ViperSigningKey       = "jwt_signing_key"
	ViperDSNKey           = "postgres_dsn"
	ViperListenAddrKey    = "listen_addr"
	ViperReportBaseURLKey = "report_base_url"
	ViperLookupURLKey     = "lookup_table_url"
	ViperListingURLKey    = "report_listing_url"
)

type CodedError struct {
	code    int
	message string
}

func NewCodedError(code int, message string) *CodedError {
	return &CodedError{code: code, message: message}
}

func (e *CodedError) Error() string {
	return e.message
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound   = NewCodedError(http.StatusNotFound, "not found")
	ErrUnauthorized = NewCodedError(http.StatusUnauthorized, "unauthorized")
	ErrBadRequest   = NewCodedError(http.StatusBadRequest, "bad request")
)
