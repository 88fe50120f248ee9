package wsfe

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/model"
	"github.com/EscuderoKevin93/afip-app/afip/soap"
	"github.com/EscuderoKevin93/afip-app/afip/tpl"
	"github.com/EscuderoKevin93/afip-app/afip/util"
	"github.com/EscuderoKevin93/afip-app/afip/wsaa"
)

// Header cabecera del lote a autorizar. CantReg debe coincidir con la
// cantidad de líneas de detalle.
type Header struct {
	CbteTipo int
	CantReg  int
	PtoVta   int
}

type VatItem struct {
	Id      int
	BaseImp decimal.Decimal
	Importe decimal.Decimal
}

// Line detalle de un comprobante. El número de comprobante y la condición
// IVA del receptor los asigna Issue, no el llamador.
type Line struct {
	Concepto   int
	DocTipo    int
	DocNro     int64
	CbteFch    string // yyyyMMdd
	ImpTotal   decimal.Decimal
	ImpTotConc decimal.Decimal
	ImpNeto    decimal.Decimal
	ImpOpEx    decimal.Decimal
	ImpTrib    decimal.Decimal
	ImpIVA     decimal.Decimal
	MonId      string
	MonCotiz   decimal.Decimal
	Iva        []VatItem
}

// ReceiverCondition condición IVA del receptor aplicada al comprobante.
type ReceiverCondition struct {
	Id   int
	Desc string
}

// Authorization resultado de una solicitud de CAE aceptada.
type Authorization struct {
	CAE           string
	CAEExpiry     time.Time
	VoucherNumber int64
	Condition     ReceiverCondition
}

// Issue autoriza un comprobante: asigna número, valida la condición IVA del
// receptor y solicita el CAE. Los pasos corren estrictamente en ese orden.
func (s *Service) Issue(ctx context.Context, header Header, lines []Line) (*Authorization, error) {

	if len(lines) != header.CantReg {
		return nil, afip.ErrMalformedRequest
	}

	key := voucherKey{ptoVta: header.PtoVta, cbteTipo: header.CbteTipo}
	s.seq.Lock(key)
	defer s.seq.Unlock(key)

	next, err := s.NextVoucherNumber(ctx, header.PtoVta, header.CbteTipo)
	if err != nil {
		return nil, err
	}

	clase := VoucherClass(header.CbteTipo)
	cond, err := s.CheckEligibility(ctx, clase)
	if err != nil {
		return nil, err
	}

	auth, err := s.authDTO(ctx)
	if err != nil {
		return nil, err
	}

	dto := buildFECAEDTO(auth, header, lines, next, cond.Id)

	result, err := s.solicitar(ctx, dto)
	if err != nil {
		var fault *soap.Fault
		if errors.As(err, &fault) && wsaa.IsAlreadyAuthenticated(fault) {
			// misma recuperación que el login: renovar la sesión y
			// reintentar el envío completo una única vez
			logger.Warn("WSFE reports an active session, refreshing credentials and retrying")
			cred, rerr := s.auth.Refresh(ctx, afip.ServiceWsfe)
			if rerr != nil {
				return nil, rerr
			}
			dto.Auth = model.Auth{Token: cred.Token, Sign: cred.Sign, Cuit: s.cuit}
			result, err = s.solicitar(ctx, dto)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := firstError(result.Errors); err != nil {
		return nil, err
	}
	if len(result.FeDetResp) == 0 {
		return nil, afip.ErrMissingAuthorizationDetail
	}

	det := result.FeDetResp[0]
	if det.CAE == "" {
		if len(det.Observations) > 0 {
			return nil, &afip.ServiceError{Code: det.Observations[0].Code, Message: det.Observations[0].Msg}
		}
		return nil, afip.ErrMissingAuthorizationDetail
	}

	expiry, err := time.Parse(DateLayout, det.CAEFchVto)
	if err != nil {
		logger.Warnf("unparseable CAEFchVto %q", det.CAEFchVto)
	}

	logger.Infof("CAE %s issued for voucher %d/%d nro %d", det.CAE, header.PtoVta, header.CbteTipo, next)

	return &Authorization{
		CAE:           det.CAE,
		CAEExpiry:     expiry,
		VoucherNumber: next,
		Condition:     ReceiverCondition{Id: cond.Id, Desc: cond.Desc},
	}, nil
}

func (s *Service) solicitar(ctx context.Context, dto model.FECAEDTO) (*model.FECAEResult, error) {
	envelope, err := util.MergeTemplate(&tpl.FECAESolicitar, dto)
	if err != nil {
		return nil, err
	}

	var resp model.FECAEResponse
	if err := s.client.Call(ctx, s.env.WsfeURL(), actionSolicitar, envelope, &resp); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// buildFECAEDTO arma el request de autorización. Todas las líneas comparten
// el número asignado; en la práctica los llamadores envían una sola.
func buildFECAEDTO(auth model.Auth, header Header, lines []Line, voucher int64, condID int) model.FECAEDTO {

	det := make([]model.FeDetReq, 0, len(lines))
	for _, line := range lines {
		iva := make([]model.AlicIva, 0, len(line.Iva))
		for _, item := range line.Iva {
			iva = append(iva, model.AlicIva{Id: item.Id, BaseImp: item.BaseImp, Importe: item.Importe})
		}
		det = append(det, model.FeDetReq{
			Concepto:               line.Concepto,
			DocTipo:                line.DocTipo,
			DocNro:                 line.DocNro,
			CbteDesde:              voucher,
			CbteHasta:              voucher,
			CbteFch:                line.CbteFch,
			ImpTotal:               line.ImpTotal,
			ImpTotConc:             line.ImpTotConc,
			ImpNeto:                line.ImpNeto,
			ImpOpEx:                line.ImpOpEx,
			ImpTrib:                line.ImpTrib,
			ImpIVA:                 line.ImpIVA,
			MonId:                  line.MonId,
			MonCotiz:               line.MonCotiz,
			CondicionIVAReceptorId: condID,
			Iva:                    iva,
		})
	}

	return model.FECAEDTO{
		Auth: auth,
		Cab: model.FeCabReq{
			CantReg:  header.CantReg,
			PtoVta:   header.PtoVta,
			CbteTipo: header.CbteTipo,
		},
		Det: det,
	}
}
