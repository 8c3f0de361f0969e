package logx

const (
	FieldAPICalls     = "api-calls"
	FieldAppName      = "app-name"
	FieldAppVersion   = "app-version"
	FieldCount        = "count"
	FieldDurationMs   = "duration-ms"
	FieldError        = "error"
	FieldFile         = "file"
	FieldHTTPRequest  = "http-request"
	FieldHTTPResponse = "http-response"
	FieldKeyword      = "keyword"
	FieldPlaceID      = "place-id"
	FieldRadius       = "radius"
	FieldRequestBody  = "request-body"
	FieldRequestID    = "request-id"
	FieldResponseBody = "response-body"
	FieldRunID        = "run-id"
	FieldURL          = "url"
	FieldZipCode      = "zip-code"
)
