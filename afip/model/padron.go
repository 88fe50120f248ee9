package model

import "encoding/xml"

// GetPersonaDTO modelo para la plantilla getPersona del padrón A5.
type GetPersonaDTO struct {
	Token            string
	Sign             string
	CuitRepresentada int64
	IdPersona        int64
}

type GetPersonaResponse struct {
	XMLName xml.Name      `xml:"Envelope"`
	Persona PersonaReturn `xml:"Body>getPersonaResponse>personaReturn"`
}

type PersonaReturn struct {
	DatosGenerales      *DatosGenerales      `xml:"datosGenerales"`
	DatosRegimenGeneral *DatosRegimenGeneral `xml:"datosRegimenGeneral"`
}

type DatosGenerales struct {
	IdPersona       int64     `xml:"idPersona"`
	TipoPersona     string    `xml:"tipoPersona"`
	Apellido        string    `xml:"apellido"`
	Nombre          string    `xml:"nombre"`
	RazonSocial     string    `xml:"razonSocial"`
	DomicilioFiscal Domicilio `xml:"domicilioFiscal"`
}

type Domicilio struct {
	Direccion            string `xml:"direccion"`
	Localidad            string `xml:"localidad"`
	DatoAdicional        string `xml:"datoAdicional"`
	DescripcionProvincia string `xml:"descripcionProvincia"`
	CodPostal            string `xml:"codPostal"`
}

type DatosRegimenGeneral struct {
	Impuestos []Impuesto `xml:"impuesto"`
}

type Impuesto struct {
	IdImpuesto          int    `xml:"idImpuesto"`
	DescripcionImpuesto string `xml:"descripcionImpuesto"`
	Estado              string `xml:"estado"`
}
