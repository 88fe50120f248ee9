// Package server expone la API REST de facturación, el frente HTTP del
// servicio. La validación de forma de los requests vive acá; la semántica
// contra AFIP vive en los paquetes afip/*.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/EscuderoKevin93/afip-app/afip/model"
	"github.com/EscuderoKevin93/afip-app/afip/padron"
	"github.com/EscuderoKevin93/afip-app/afip/util"
	"github.com/EscuderoKevin93/afip-app/afip/wsfe"
	"github.com/EscuderoKevin93/afip-app/config"
)

var logger = logrus.WithField("component", "server")

// InvoiceService operaciones WSFE que consume el frente HTTP.
type InvoiceService interface {
	Issue(ctx context.Context, header wsfe.Header, lines []wsfe.Line) (*wsfe.Authorization, error)
	ReceiverConditions(ctx context.Context, clase string) ([]model.CondicionIvaReceptor, error)
}

// TaxpayerService consulta de padrón.
type TaxpayerService interface {
	Taxpayer(ctx context.Context, cuit int64) (*padron.Taxpayer, error)
}

type Server struct {
	cfg       *config.Config
	invoices  InvoiceService
	taxpayers TaxpayerService
	router    *gin.Engine
}

func New(cfg *config.Config, invoices InvoiceService, taxpayers TaxpayerService) *Server {

	if !util.DebugEnabled() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{cfg: cfg, invoices: invoices, taxpayers: taxpayers, router: router}

	router.GET("/", s.handleIndex)
	router.POST("/afip/ticket", s.handleTicket)
	router.POST("/afip/ticket-test", s.handleTicketTest)
	router.GET("/afip/contribuyente", s.handleTaxpayer)
	router.GET("/afip/condicion-iva", s.handleConditions)

	return s
}

// Router handler raíz, también usado por los tests.
func (s *Server) Router() http.Handler {
	return s.router
}
