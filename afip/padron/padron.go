// Package padron consulta la constancia de inscripción de un contribuyente
// (ws_sr_constancia_inscripcion, padrón A5).
package padron

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/model"
	"github.com/EscuderoKevin93/afip-app/afip/soap"
	"github.com/EscuderoKevin93/afip-app/afip/tpl"
	"github.com/EscuderoKevin93/afip-app/afip/util"
	"github.com/EscuderoKevin93/afip-app/afip/wsaa"
)

var logger = logrus.WithField("component", "afip.padron")

// ErrNotFound el padrón no registra datos generales para el CUIT consultado.
var ErrNotFound = errors.New("padron: taxpayer not found")

type Authenticator interface {
	Authenticate(ctx context.Context, service string) (*wsaa.Credential, error)
}

type Service struct {
	client soap.Caller
	auth   Authenticator
	cuit   int64
	env    afip.Environment
}

func New(client soap.Caller, auth Authenticator, cuit int64, env afip.Environment) *Service {
	return &Service{client: client, auth: auth, cuit: cuit, env: env}
}

// Taxpayer resumen de la constancia, con el tipo de factura que corresponde
// emitirle al contribuyente consultado.
type Taxpayer struct {
	RazonSocial  string `json:"razonSocial"`
	Cuit         int64  `json:"cuit"`
	TipoPersona  string `json:"tipoPersona"`
	CondicionIVA string `json:"condicionIVA"`
	TipoFactura  int    `json:"tipoFactura"`
	Domicilio    string `json:"domicilio"`
	Localidad    string `json:"localidad"`
	Provincia    string `json:"provincia"`
	CodigoPostal string `json:"codigoPostal"`
}

// GetPersona consulta el padrón por CUIT.
func (s *Service) GetPersona(ctx context.Context, cuit int64) (*model.PersonaReturn, error) {

	cred, err := s.auth.Authenticate(ctx, afip.ServicePadron)
	if err != nil {
		return nil, err
	}

	envelope, err := util.MergeTemplate(&tpl.GetPersona, model.GetPersonaDTO{
		Token:            cred.Token,
		Sign:             cred.Sign,
		CuitRepresentada: s.cuit,
		IdPersona:        cuit,
	})
	if err != nil {
		return nil, err
	}

	var resp model.GetPersonaResponse
	if err := s.client.Call(ctx, s.env.PadronURL(), "", envelope, &resp); err != nil {
		return nil, err
	}

	return &resp.Persona, nil
}

// Taxpayer consulta y resume la constancia de inscripción de un CUIT.
func (s *Service) Taxpayer(ctx context.Context, cuit int64) (*Taxpayer, error) {
	persona, err := s.GetPersona(ctx, cuit)
	if err != nil {
		return nil, err
	}
	return taxpayerFromPersona(persona)
}

func taxpayerFromPersona(p *model.PersonaReturn) (*Taxpayer, error) {

	if p == nil || p.DatosGenerales == nil {
		return nil, ErrNotFound
	}
	datos := p.DatosGenerales

	razonSocial := datos.RazonSocial
	if datos.TipoPersona == "FISICA" {
		razonSocial = datos.Apellido + " " + datos.Nombre
	}

	// inscripto en algún impuesto del régimen general => responsable
	// inscripto, factura A; si no, exento y factura B
	condicionIVA := "Exento"
	tipoFactura := 6
	if p.DatosRegimenGeneral != nil && len(p.DatosRegimenGeneral.Impuestos) > 0 {
		condicionIVA = "Resp. Inscripto"
		tipoFactura = 1
	}

	localidad := datos.DomicilioFiscal.Localidad
	if localidad == "" {
		localidad = datos.DomicilioFiscal.DatoAdicional
	}

	logger.Debugf("padron lookup for %d resolved as %s", datos.IdPersona, condicionIVA)

	return &Taxpayer{
		RazonSocial:  razonSocial,
		Cuit:         datos.IdPersona,
		TipoPersona:  datos.TipoPersona,
		CondicionIVA: condicionIVA,
		TipoFactura:  tipoFactura,
		Domicilio:    datos.DomicilioFiscal.Direccion,
		Localidad:    localidad,
		Provincia:    datos.DomicilioFiscal.DescripcionProvincia,
		CodigoPostal: datos.DomicilioFiscal.CodPostal,
	}, nil
}
