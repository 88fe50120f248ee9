// Package wsfe habla con el servicio de facturación electrónica (WSFEv1):
// numeración de comprobantes, condiciones IVA del receptor y solicitud de
// CAE.
package wsfe

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/model"
	"github.com/EscuderoKevin93/afip-app/afip/mutex"
	"github.com/EscuderoKevin93/afip-app/afip/soap"
	"github.com/EscuderoKevin93/afip-app/afip/wsaa"
)

var logger = logrus.WithField("component", "afip.wsfe")

// SOAPAction de cada operación WSFEv1.
const (
	actionLastVoucher  = "http://ar.gov.afip.dif.FEV1/FECompUltimoAutorizado"
	actionCondicionIva = "http://ar.gov.afip.dif.FEV1/FEParamGetCondicionIvaReceptor"
	actionSolicitar    = "http://ar.gov.afip.dif.FEV1/FECAESolicitar"
)

// DateLayout formato de fecha del protocolo (CbteFch, CAEFchVto, FchHasta).
const DateLayout = "20060102"

// Authenticator credenciales de sesión para un servicio AFIP. Refresh
// descarta el estado cacheado antes de volver a loguear.
type Authenticator interface {
	Authenticate(ctx context.Context, service string) (*wsaa.Credential, error)
	Refresh(ctx context.Context, service string) (*wsaa.Credential, error)
}

type voucherKey struct {
	ptoVta   int
	cbteTipo int
}

// Service cliente WSFEv1 para un único contribuyente.
type Service struct {
	client soap.Caller
	auth   Authenticator
	cuit   int64
	env    afip.Environment

	// serializa leer-incrementar-enviar por punto de venta y tipo dentro del
	// proceso; la unicidad final la sigue garantizando WSFE
	seq mutex.KeyedMutex[voucherKey]

	now func() time.Time
}

func New(client soap.Caller, auth Authenticator, cuit int64, env afip.Environment) *Service {
	return &Service{
		client: client,
		auth:   auth,
		cuit:   cuit,
		env:    env,
		now:    time.Now,
	}
}

// VoucherClass clase del comprobante según su tipo: 1 es factura A, el resto
// de los tipos soportados (6) factura B.
func VoucherClass(cbteTipo int) string {
	if cbteTipo == 1 {
		return "A"
	}
	return "B"
}

func (s *Service) authDTO(ctx context.Context) (model.Auth, error) {
	cred, err := s.auth.Authenticate(ctx, afip.ServiceWsfe)
	if err != nil {
		return model.Auth{}, err
	}
	return model.Auth{Token: cred.Token, Sign: cred.Sign, Cuit: s.cuit}, nil
}

// firstError traduce el array Errors de una respuesta WSFE.
func firstError(errs []model.Err) error {
	if len(errs) == 0 {
		return nil
	}
	return &afip.ServiceError{Code: errs[0].Code, Message: errs[0].Msg}
}
