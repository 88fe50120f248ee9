package afip

import (
	"errors"
	"fmt"
	"strings"
)

// Nombres de servicio registrados en WSAA. Cada servicio remoto exige su
// propio ticket de acceso.
const (
	ServiceWsfe   = "wsfe"
	ServicePadron = "ws_sr_constancia_inscripcion"
)

var (
	// ErrInvalidCredentials el loginTicketResponse no trae token o sign
	ErrInvalidCredentials = errors.New("afip: login response is missing token or sign")

	// ErrNoEligibleCondition WSFE no devolvió condiciones IVA para el receptor
	ErrNoEligibleCondition = errors.New("afip: no receiver tax conditions returned")

	// ErrIneligibleReceiver ninguna condición devuelta aplica a la clase de comprobante pedida
	ErrIneligibleReceiver = errors.New("afip: no receiver condition matches the requested voucher class")

	// ErrExpiredCondition la condición aplicable venció antes de hoy
	ErrExpiredCondition = errors.New("afip: matching receiver condition is expired")

	// ErrMalformedRequest la cantidad de detalles no coincide con CantReg
	ErrMalformedRequest = errors.New("afip: detail count does not match header CantReg")

	// ErrMissingAuthorizationDetail FECAESolicitar respondió sin FeDetResp
	ErrMissingAuthorizationDetail = errors.New("afip: authorization response has no detail entries")

	// ErrSequencing FECompUltimoAutorizado no trae CbteNro
	ErrSequencing = errors.New("afip: last voucher response has no voucher number")

	// ErrRemoteTimeout la llamada remota excedió su plazo; el llamador puede reintentar
	ErrRemoteTimeout = errors.New("afip: remote call timed out")
)

// SigningError problema con el material de claves. Fatal, no se reintenta.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("afip: cannot sign login ticket: %v", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// AuthenticationError fallo de login contra WSAA distinto de un timeout o
// de la recuperación por sesión ya activa.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("afip: authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// ServiceError error de negocio reportado por el servicio remoto (array
// Errors de WSFE). No es un bug, se propaga textual.
type ServiceError struct {
	Code    int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("afip: service error %d: %s", e.Code, e.Message)
}

type Environment int

const (
	Testing Environment = iota
	Production
)

func (e Environment) WsaaURL() string {
	switch e {
	case Production:
		return "https://wsaa.afip.gov.ar/ws/services/LoginCms"
	case Testing:
		return "https://wsaahomo.afip.gov.ar/ws/services/LoginCms"
	}
	panic("invalid environment")
}

func (e Environment) WsfeURL() string {
	switch e {
	case Production:
		return "https://servicios1.afip.gov.ar/wsfev1/service.asmx"
	case Testing:
		return "https://wswhomo.afip.gov.ar/wsfev1/service.asmx"
	}
	panic("invalid environment")
}

func (e Environment) PadronURL() string {
	switch e {
	case Production:
		return "https://aws.afip.gov.ar/sr-padron/webservices/personaServiceA5"
	case Testing:
		return "https://awshomo.afip.gov.ar/sr-padron/webservices/personaServiceA5"
	}
	panic("invalid environment")
}

func (e Environment) Name() string {
	switch e {
	case Production:
		return "production"
	case Testing:
		return "testing"
	}
	panic("invalid environment")
}

func (e *Environment) UnmarshalText(text []byte) error {
	val := strings.ToLower(strings.TrimSpace(string(text)))

	switch val {
	case "production", "prod":
		*e = Production
	case "testing", "homo", "test":
		*e = Testing
	default:
		return fmt.Errorf("invalid AFIP_ENV: %q (allowed: production, testing)", val)
	}
	return nil
}
