package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/model"
	"github.com/EscuderoKevin93/afip-app/afip/padron"
	"github.com/EscuderoKevin93/afip-app/afip/wsfe"
	"github.com/EscuderoKevin93/afip-app/config"
)

type fakeInvoices struct {
	issueCalls int
	header     wsfe.Header
	lines      []wsfe.Line
	auth       *wsfe.Authorization
	issueErr   error

	conditions    []model.CondicionIvaReceptor
	conditionsErr error
}

func (f *fakeInvoices) Issue(_ context.Context, header wsfe.Header, lines []wsfe.Line) (*wsfe.Authorization, error) {
	f.issueCalls++
	f.header = header
	f.lines = lines
	return f.auth, f.issueErr
}

func (f *fakeInvoices) ReceiverConditions(_ context.Context, _ string) ([]model.CondicionIvaReceptor, error) {
	return f.conditions, f.conditionsErr
}

type fakeTaxpayers struct {
	cuit     int64
	taxpayer *padron.Taxpayer
	err      error
}

func (f *fakeTaxpayers) Taxpayer(_ context.Context, cuit int64) (*padron.Taxpayer, error) {
	f.cuit = cuit
	return f.taxpayer, f.err
}

func authorizedTicket() *wsfe.Authorization {
	return &wsfe.Authorization{
		CAE:           "75123456789012",
		CAEExpiry:     time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC),
		VoucherNumber: 42,
		Condition:     wsfe.ReceiverCondition{Id: 5, Desc: "Consumidor Final"},
	}
}

func newTestServer(invoices *fakeInvoices, taxpayers *fakeTaxpayers) *Server {
	cfg := &config.Config{Cuit: 20111111112, PtoVta: 3, Environment: afip.Testing}
	return New(cfg, invoices, taxpayers)
}

func doJSON(t *testing.T, s *Server, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w, decoded
}

func TestIndex(t *testing.T) {

	s := newTestServer(&fakeInvoices{}, &fakeTaxpayers{})

	w, body := doJSON(t, s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["endpoints"])
}

func TestTicketValidation(t *testing.T) {

	cases := []struct {
		name string
		body string
	}{
		{"missing fields", `{"docTipo": 99}`},
		{"bad tipoFactura", `{"docTipo": 99, "docNro": 0, "tipoFactura": 3, "monto": 100}`},
		{"negative docNro", `{"docTipo": 80, "docNro": -1, "tipoFactura": 6, "monto": 100}`},
		{"docNro 0 outside consumidor final", `{"docTipo": 80, "docNro": 0, "tipoFactura": 6, "monto": 100}`},
		{"zero monto", `{"docTipo": 99, "docNro": 0, "tipoFactura": 6, "monto": 0}`},
		{"not JSON", `this is not json`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			invoices := &fakeInvoices{auth: authorizedTicket()}
			s := newTestServer(invoices, &fakeTaxpayers{})

			w, body := doJSON(t, s, http.MethodPost, "/afip/ticket", tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, 0, invoices.issueCalls, "invalid requests must not reach AFIP")
		})
	}
}

func TestTicketIssuesInvoice(t *testing.T) {

	invoices := &fakeInvoices{auth: authorizedTicket()}
	s := newTestServer(invoices, &fakeTaxpayers{})

	w, body := doJSON(t, s, http.MethodPost, "/afip/ticket",
		`{"docTipo": 99, "docNro": 0, "tipoFactura": 6, "monto": 100}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "75123456789012", data["CAE"])
	assert.Equal(t, "20250912", data["CAEFchVto"])
	assert.Equal(t, float64(42), data["voucherNumber"])
	assert.Equal(t, float64(100), data["montoTotal"])
	assert.Equal(t, 82.64, data["montoNeto"])
	assert.Equal(t, 17.36, data["montoIVA"])
	assert.NotEmpty(t, data["qr"])

	require.Equal(t, 1, invoices.issueCalls)
	assert.Equal(t, wsfe.Header{CbteTipo: 6, CantReg: 1, PtoVta: 3}, invoices.header)
	require.Len(t, invoices.lines, 1)
	assert.Equal(t, "82.64", invoices.lines[0].ImpNeto.StringFixed(2))
	assert.Equal(t, "17.36", invoices.lines[0].ImpIVA.StringFixed(2))
}

func TestTicketTest(t *testing.T) {

	invoices := &fakeInvoices{auth: authorizedTicket()}
	s := newTestServer(invoices, &fakeTaxpayers{})

	w, body := doJSON(t, s, http.MethodPost, "/afip/ticket-test", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	require.Equal(t, 1, invoices.issueCalls)
	assert.Equal(t, 6, invoices.header.CbteTipo)
	require.Len(t, invoices.lines, 1)
	assert.Equal(t, 99, invoices.lines[0].DocTipo)
	assert.Equal(t, "100", invoices.lines[0].ImpTotal.String())
}

func TestTicketServiceError(t *testing.T) {

	invoices := &fakeInvoices{issueErr: &afip.ServiceError{Code: 10016, Message: "Campo CbteFch invalido"}}
	s := newTestServer(invoices, &fakeTaxpayers{})

	w, body := doJSON(t, s, http.MethodPost, "/afip/ticket",
		`{"docTipo": 99, "docNro": 0, "tipoFactura": 6, "monto": 100}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(10016), body["code"])
	assert.Equal(t, "Campo CbteFch invalido", body["detail"])
}

func TestTaxpayerEndpoint(t *testing.T) {

	taxpayers := &fakeTaxpayers{taxpayer: &padron.Taxpayer{
		RazonSocial: "ACME SA", Cuit: 30333333334, CondicionIVA: "Resp. Inscripto", TipoFactura: 1,
	}}
	s := newTestServer(&fakeInvoices{}, taxpayers)

	w, body := doJSON(t, s, http.MethodGet, "/afip/contribuyente?cuit=30333333334", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(30333333334), taxpayers.cuit)
	data := body["data"].(map[string]any)
	assert.Equal(t, "ACME SA", data["razonSocial"])
}

func TestTaxpayerEndpointBadCuit(t *testing.T) {

	s := newTestServer(&fakeInvoices{}, &fakeTaxpayers{})

	for _, cuit := range []string{"", "abc", "123", "201111111123456"} {
		w, body := doJSON(t, s, http.MethodGet, "/afip/contribuyente?cuit="+cuit, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, cuit)
		assert.Equal(t, false, body["success"])
	}
}

func TestTaxpayerEndpointNotFound(t *testing.T) {

	s := newTestServer(&fakeInvoices{}, &fakeTaxpayers{err: padron.ErrNotFound})

	w, body := doJSON(t, s, http.MethodGet, "/afip/contribuyente?cuit=20999999990", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Contribuyente no encontrado", body["error"])
}

func TestConditionsEndpoint(t *testing.T) {

	invoices := &fakeInvoices{conditions: []model.CondicionIvaReceptor{
		{Id: 5, Desc: "Consumidor Final", CmpClase: "B"},
	}}
	s := newTestServer(invoices, &fakeTaxpayers{})

	w, body := doJSON(t, s, http.MethodGet, "/afip/condicion-iva?clase=B", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	w, _ = doJSON(t, s, http.MethodGet, "/afip/condicion-iva?clase=X", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
