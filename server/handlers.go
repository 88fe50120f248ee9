package server

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/padron"
	"github.com/EscuderoKevin93/afip-app/afip/qr"
	"github.com/EscuderoKevin93/afip-app/afip/wsfe"
)

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "AFIP/ARCA Facturacion API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"POST /afip/ticket":               "Generar factura electronica",
			"POST /afip/ticket-test":          "Factura de prueba ($100)",
			"GET /afip/contribuyente?cuit=XX": "Consultar contribuyente",
			"GET /afip/condicion-iva":         "Condiciones IVA",
		},
	})
}

func (s *Server) handleTicket(c *gin.Context) {

	req, err := bindTicketRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	data, err := s.issueInvoice(c.Request.Context(), *req.TipoFactura, *req.DocTipo, *req.DocNro, *req.Monto)
	if err != nil {
		s.fail(c, "Error generando factura", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// handleTicketTest emite una factura B de $100 a consumidor final, para
// probar la cadena completa contra homologación.
func (s *Server) handleTicketTest(c *gin.Context) {

	logger.Info("generando factura de prueba")

	data, err := s.issueInvoice(c.Request.Context(), 6, docTipoConsumidorFinal, 0, decimal.NewFromInt(100))
	if err != nil {
		s.fail(c, "Error generando factura", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (s *Server) issueInvoice(ctx context.Context, tipoFactura, docTipo int, docNro int64, monto decimal.Decimal) (gin.H, error) {

	net, vat := wsfe.SplitGross(monto)
	fecha := time.Now().Format(wsfe.DateLayout)

	header := wsfe.Header{CbteTipo: tipoFactura, CantReg: 1, PtoVta: s.cfg.PtoVta}
	line := wsfe.Line{
		Concepto:   1,
		DocTipo:    docTipo,
		DocNro:     docNro,
		CbteFch:    fecha,
		ImpTotal:   monto,
		ImpTotConc: decimal.Zero,
		ImpNeto:    net,
		ImpOpEx:    decimal.Zero,
		ImpTrib:    decimal.Zero,
		ImpIVA:     vat,
		MonId:      "PES",
		MonCotiz:   wsfe.One,
		Iva:        []wsfe.VatItem{{Id: wsfe.VatCode21, BaseImp: net, Importe: vat}},
	}

	auth, err := s.invoices.Issue(ctx, header, []wsfe.Line{line})
	if err != nil {
		return nil, err
	}

	logger.Infof("factura generada: CAE %s, numero %d", auth.CAE, auth.VoucherNumber)

	data := gin.H{
		"CAE":           auth.CAE,
		"CAEFchVto":     auth.CAEExpiry.Format(wsfe.DateLayout),
		"voucherNumber": auth.VoucherNumber,
		"montoTotal":    monto.InexactFloat64(),
		"montoNeto":     net.InexactFloat64(),
		"montoIVA":      vat.InexactFloat64(),
	}

	// el QR es un extra de presentación, no voltea la emisión
	if png := s.invoiceQR(auth, tipoFactura, docTipo, docNro, monto); png != nil {
		data["qr"] = base64.StdEncoding.EncodeToString(png)
	}

	return data, nil
}

func (s *Server) invoiceQR(auth *wsfe.Authorization, tipoFactura, docTipo int, docNro int64, monto decimal.Decimal) []byte {
	payload, err := qr.NewPayload(
		time.Now().Format("2006-01-02"),
		s.cfg.Cuit,
		s.cfg.PtoVta,
		tipoFactura,
		auth.VoucherNumber,
		monto.InexactFloat64(),
		docTipo,
		docNro,
		auth.CAE,
	)
	if err != nil {
		logger.WithError(err).Warn("cannot build invoice QR payload")
		return nil
	}
	png, err := qr.PNG(payload)
	if err != nil {
		logger.WithError(err).Warn("cannot render invoice QR")
		return nil
	}
	return png
}

func (s *Server) handleTaxpayer(c *gin.Context) {

	cuit, err := parseCuit(c.Query("cuit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	taxpayer, err := s.taxpayers.Taxpayer(c.Request.Context(), cuit)
	if err != nil {
		if errors.Is(err, padron.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Contribuyente no encontrado"})
			return
		}
		s.fail(c, "Error consultando AFIP", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": taxpayer})
}

func (s *Server) handleConditions(c *gin.Context) {

	clase, err := parseClase(c.Query("clase"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	conditions, err := s.invoices.ReceiverConditions(c.Request.Context(), clase)
	if err != nil {
		s.fail(c, "Error consultando condiciones IVA", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": conditions})
}

// fail responde el fallo genérico del boundary. La taxonomía fina queda en
// el log; solo los errores de negocio de AFIP exponen código y detalle.
func (s *Server) fail(c *gin.Context, msg string, err error) {
	logger.WithError(err).Error(msg)

	var se *afip.ServiceError
	if errors.As(err, &se) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   msg,
			"code":    se.Code,
			"detail":  se.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msg})
}
