package model

import (
	"encoding/xml"

	"github.com/shopspring/decimal"
)

// Auth credenciales de sesión que viajan en cada request WSFE.
type Auth struct {
	Token string
	Sign  string
	Cuit  int64
}

// LastVoucherDTO modelo para la plantilla FECompUltimoAutorizado.
type LastVoucherDTO struct {
	Auth     Auth
	PtoVta   int
	CbteTipo int
}

// CondicionIvaDTO modelo para la plantilla FEParamGetCondicionIvaReceptor.
// ClaseCmp vacía consulta sin filtro.
type CondicionIvaDTO struct {
	Auth     Auth
	ClaseCmp string
}

// FECAEDTO modelo para la plantilla FECAESolicitar.
type FECAEDTO struct {
	Auth Auth
	Cab  FeCabReq
	Det  []FeDetReq
}

type FeCabReq struct {
	CantReg  int
	PtoVta   int
	CbteTipo int
}

type FeDetReq struct {
	Concepto               int
	DocTipo                int
	DocNro                 int64
	CbteDesde              int64
	CbteHasta              int64
	CbteFch                string // yyyyMMdd
	ImpTotal               decimal.Decimal
	ImpTotConc             decimal.Decimal
	ImpNeto                decimal.Decimal
	ImpOpEx                decimal.Decimal
	ImpTrib                decimal.Decimal
	ImpIVA                 decimal.Decimal
	MonId                  string
	MonCotiz               decimal.Decimal
	CondicionIVAReceptorId int
	Iva                    []AlicIva
}

type AlicIva struct {
	Id      int
	BaseImp decimal.Decimal
	Importe decimal.Decimal
}

// Err entrada del array Errors que WSFE adjunta a cualquier respuesta.
type Err struct {
	Code int    `xml:"Code"`
	Msg  string `xml:"Msg"`
}

type LastVoucherResponse struct {
	XMLName xml.Name          `xml:"Envelope"`
	Result  LastVoucherResult `xml:"Body>FECompUltimoAutorizadoResponse>FECompUltimoAutorizadoResult"`
}

type LastVoucherResult struct {
	PtoVta   int    `xml:"PtoVta"`
	CbteTipo int    `xml:"CbteTipo"`
	CbteNro  *int64 `xml:"CbteNro"`
	Errors   []Err  `xml:"Errors>Err"`
}

type CondicionIvaResponse struct {
	XMLName xml.Name           `xml:"Envelope"`
	Result  CondicionIvaResult `xml:"Body>FEParamGetCondicionIvaReceptorResponse>FEParamGetCondicionIvaReceptorResult"`
}

type CondicionIvaResult struct {
	Conditions []CondicionIvaReceptor `xml:"ResultGet>CondicionIvaReceptor"`
	Errors     []Err                  `xml:"Errors>Err"`
}

// CondicionIvaReceptor condición frente al IVA admitida para el receptor.
// FchHasta "NULL" o vacía significa vigencia abierta.
type CondicionIvaReceptor struct {
	Id       int    `xml:"Id"`
	Desc     string `xml:"Desc"`
	CmpClase string `xml:"Cmp_Clase"`
	FchDesde string `xml:"FchDesde"`
	FchHasta string `xml:"FchHasta"`
}

type FECAEResponse struct {
	XMLName xml.Name    `xml:"Envelope"`
	Result  FECAEResult `xml:"Body>FECAESolicitarResponse>FECAESolicitarResult"`
}

type FECAEResult struct {
	FeCabResp FECAECabResponse   `xml:"FeCabResp"`
	FeDetResp []FECAEDetResponse `xml:"FeDetResp>FECAEDetResponse"`
	Errors    []Err              `xml:"Errors>Err"`
}

type FECAECabResponse struct {
	Cuit      int64  `xml:"Cuit"`
	PtoVta    int    `xml:"PtoVta"`
	CbteTipo  int    `xml:"CbteTipo"`
	Resultado string `xml:"Resultado"`
}

type FECAEDetResponse struct {
	Concepto     int    `xml:"Concepto"`
	DocTipo      int    `xml:"DocTipo"`
	DocNro       int64  `xml:"DocNro"`
	CbteDesde    int64  `xml:"CbteDesde"`
	CbteHasta    int64  `xml:"CbteHasta"`
	Resultado    string `xml:"Resultado"`
	CAE          string `xml:"CAE"`
	CAEFchVto    string `xml:"CAEFchVto"`
	Observations []Obs  `xml:"Observaciones>Obs"`
}

type Obs struct {
	Code int    `xml:"Code"`
	Msg  string `xml:"Msg"`
}
