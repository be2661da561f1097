package services

import "errors"

// ErrorKind identifies why a claim request was refused. Policy denials
// (Locked, AlreadyClaimed, RecipeTaken, DessertCapReached,
// VegetarianQuotaAdvisory) are expected outcomes a client renders
// verbatim; Conflict and Busy are transient and worth one retry with a
// fresh snapshot; NotFound and InvalidInput are terminal.
type ErrorKind string

const (
	KindNotFound                ErrorKind = "NotFound"
	KindInvalidInput            ErrorKind = "InvalidInput"
	KindLocked                  ErrorKind = "Locked"
	KindAlreadyClaimed          ErrorKind = "AlreadyClaimed"
	KindRecipeTaken             ErrorKind = "RecipeTaken"
	KindDessertCapReached       ErrorKind = "DessertCapReached"
	KindVegetarianQuotaAdvisory ErrorKind = "VegetarianQuotaAdvisory"
	KindConflict                ErrorKind = "Conflict"
	KindBusy                    ErrorKind = "Busy"
)

type ClaimError struct {
	Kind    ErrorKind
	Message string
}

func (e *ClaimError) Error() string { return e.Message }

func claimErr(kind ErrorKind, msg string) *ClaimError {
	return &ClaimError{Kind: kind, Message: msg}
}

// KindOf extracts the kind from any error returned by the engine;
// unrecognized errors report as internal ("").
func KindOf(err error) ErrorKind {
	var ce *ClaimError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
