package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	InvalidCoordinates failure.ErrorCode = "InvalidCoordinates"
	InvalidRadius      failure.ErrorCode = "InvalidRadius"
	InvalidURL         failure.ErrorCode = "InvalidURL"

	ZipCodeNotFound    failure.ErrorCode = "ZipCodeNotFound"
	PlaceNotFound      failure.ErrorCode = "PlaceNotFound"
	PlacesAPIError     failure.ErrorCode = "PlacesAPIError"
	MailNotConfigured  failure.ErrorCode = "MailNotConfigured"
	MailAuthRequired   failure.ErrorCode = "MailAuthRequired"
	CredentialsMissing failure.ErrorCode = "CredentialsMissing"
)
