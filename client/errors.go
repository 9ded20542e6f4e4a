package client

import "fmt"

// Kind classe les échecs d'appel API pour que l'UI choisisse quoi faire :
// notification transiente, redirection login, ou bouton retry.
type Kind int

const (
	KindUnknown Kind = iota
	KindConflict
	KindNotFound
	KindInvalidArgument
	KindUnauthorized
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// APIError porte la classification et le message renvoyé par le serveur.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (%s)", e.Message, e.Kind)
}

func kindOf(err error) Kind {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Kind
	}
	return KindUnknown
}

func IsConflict(err error) bool        { return kindOf(err) == KindConflict }
func IsNotFound(err error) bool        { return kindOf(err) == KindNotFound }
func IsInvalidArgument(err error) bool { return kindOf(err) == KindInvalidArgument }
func IsUnauthorized(err error) bool    { return kindOf(err) == KindUnauthorized }
func IsUnavailable(err error) bool     { return kindOf(err) == KindUnavailable }
