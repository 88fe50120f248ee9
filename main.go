package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/EscuderoKevin93/afip-app/afip/padron"
	"github.com/EscuderoKevin93/afip-app/afip/soap"
	"github.com/EscuderoKevin93/afip-app/afip/util"
	"github.com/EscuderoKevin93/afip-app/afip/wsaa"
	"github.com/EscuderoKevin93/afip-app/afip/wsfe"
	"github.com/EscuderoKevin93/afip-app/config"
	"github.com/EscuderoKevin93/afip-app/server"
)

func main() {

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	if util.DebugEnabled() {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := wsaa.NewCache()
	go cache.Sweep(ctx)

	soapClient := soap.NewClient(soap.DefaultTimeout)
	tickets := wsaa.NewTicketSource(cfg.KeyPath, cfg.CertPath, []byte(cfg.KeyPassword))
	auth := wsaa.NewAuthService(soapClient, tickets, cache, cfg.Environment)

	invoices := wsfe.New(soapClient, auth, cfg.Cuit, cfg.Environment)
	taxpayers := padron.New(soapClient, auth, cfg.Cuit, cfg.Environment)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.New(cfg, invoices, taxpayers).Router(),
	}

	go func() {
		log.Infof("API corriendo en puerto %d (CUIT ***%d, PtoVta %d, ambiente %s)",
			cfg.Port, cfg.Cuit%10000, cfg.PtoVta, cfg.Environment.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err)
	}
}
