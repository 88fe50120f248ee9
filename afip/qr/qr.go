// Package qr genera el código QR que la RG 4892 exige imprimir en los
// comprobantes electrónicos: una URL de afip.gob.ar con el payload del
// comprobante en JSON base64.
package qr

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/skip2/go-qrcode"
)

const baseURL = "https://www.afip.gob.ar/fe/qr/"

// Payload datos del comprobante según el esquema ver 1 de la RG 4892.
type Payload struct {
	Ver        int     `json:"ver"`
	Fecha      string  `json:"fecha"` // yyyy-MM-dd
	Cuit       int64   `json:"cuit"`
	PtoVta     int     `json:"ptoVta"`
	TipoCmp    int     `json:"tipoCmp"`
	NroCmp     int64   `json:"nroCmp"`
	Importe    float64 `json:"importe"`
	Moneda     string  `json:"moneda"`
	Ctz        float64 `json:"ctz"`
	TipoDocRec int     `json:"tipoDocRec"`
	NroDocRec  int64   `json:"nroDocRec"`
	TipoCodAut string  `json:"tipoCodAut"` // "E" para CAE
	CodAut     int64   `json:"codAut"`
}

// NewPayload arma el payload para un CAE ya autorizado.
func NewPayload(fecha string, cuit int64, ptoVta, tipoCmp int, nroCmp int64, importe float64, docTipo int, docNro int64, cae string) (Payload, error) {
	codAut, err := strconv.ParseInt(cae, 10, 64)
	if err != nil {
		return Payload{}, fmt.Errorf("CAE %q is not numeric: %w", cae, err)
	}
	return Payload{
		Ver:        1,
		Fecha:      fecha,
		Cuit:       cuit,
		PtoVta:     ptoVta,
		TipoCmp:    tipoCmp,
		NroCmp:     nroCmp,
		Importe:    importe,
		Moneda:     "PES",
		Ctz:        1,
		TipoDocRec: docTipo,
		NroDocRec:  docNro,
		TipoCodAut: "E",
		CodAut:     codAut,
	}, nil
}

// URL link de verificación del comprobante.
func URL(p Payload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return baseURL + "?p=" + base64.StdEncoding.EncodeToString(raw), nil
}

// PNG renderiza el QR del comprobante.
func PNG(p Payload) ([]byte, error) {
	link, err := URL(p)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(link, qrcode.Medium, 300)
}
