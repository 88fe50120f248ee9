package server

import (
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// docTipoConsumidorFinal documento genérico; el único que admite DocNro 0.
const docTipoConsumidorFinal = 99

type ticketRequest struct {
	DocTipo     *int             `json:"docTipo"`
	DocNro      *int64           `json:"docNro"`
	TipoFactura *int             `json:"tipoFactura"`
	Monto       *decimal.Decimal `json:"monto"`
}

func bindTicketRequest(c *gin.Context) (*ticketRequest, error) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, errors.Wrap(err, "cuerpo invalido")
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *ticketRequest) validate() error {
	if r.DocTipo == nil || r.DocNro == nil || r.TipoFactura == nil || r.Monto == nil {
		return errors.New("docTipo, docNro, tipoFactura y monto son obligatorios")
	}
	if *r.TipoFactura != 1 && *r.TipoFactura != 6 {
		return errors.New("tipoFactura debe ser 1 (A) o 6 (B)")
	}
	if *r.DocTipo < 0 {
		return errors.New("docTipo debe ser un entero no negativo")
	}
	if *r.DocNro < 0 {
		return errors.New("docNro debe ser un entero no negativo")
	}
	if *r.DocNro == 0 && *r.DocTipo != docTipoConsumidorFinal {
		return errors.New("docNro 0 solo se admite para consumidor final (docTipo 99)")
	}
	if !r.Monto.IsPositive() {
		return errors.New("monto debe ser un decimal positivo")
	}
	return nil
}

var cuitRe = regexp.MustCompile(`^\d{11}$`)

func parseCuit(raw string) (int64, error) {
	if !cuitRe.MatchString(raw) {
		return 0, errors.New("cuit debe tener 11 digitos")
	}
	return strconv.ParseInt(raw, 10, 64)
}

func parseClase(raw string) (string, error) {
	switch raw {
	case "", "A", "B":
		return raw, nil
	}
	return "", errors.New("clase debe ser A o B")
}
