package wsfe

import (
	"context"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/model"
	"github.com/EscuderoKevin93/afip-app/afip/tpl"
	"github.com/EscuderoKevin93/afip-app/afip/util"
)

// LastVoucher consulta el último comprobante autorizado para el punto de
// venta y tipo dados.
func (s *Service) LastVoucher(ctx context.Context, ptoVta, cbteTipo int) (int64, error) {

	auth, err := s.authDTO(ctx)
	if err != nil {
		return 0, err
	}

	envelope, err := util.MergeTemplate(&tpl.FECompUltimoAutorizado, model.LastVoucherDTO{
		Auth:     auth,
		PtoVta:   ptoVta,
		CbteTipo: cbteTipo,
	})
	if err != nil {
		return 0, err
	}

	var resp model.LastVoucherResponse
	if err := s.client.Call(ctx, s.env.WsfeURL(), actionLastVoucher, envelope, &resp); err != nil {
		return 0, err
	}

	if err := firstError(resp.Result.Errors); err != nil {
		return 0, err
	}
	if resp.Result.CbteNro == nil {
		return 0, afip.ErrSequencing
	}

	return *resp.Result.CbteNro, nil
}

// NextVoucherNumber número a usar para el próximo comprobante. La numeración
// vive en WSFE, esto es leer e incrementar contra estado remoto.
func (s *Service) NextVoucherNumber(ctx context.Context, ptoVta, cbteTipo int) (int64, error) {
	last, err := s.LastVoucher(ctx, ptoVta, cbteTipo)
	if err != nil {
		return 0, err
	}
	logger.Debugf("last authorized voucher for %d/%d is %d", ptoVta, cbteTipo, last)
	return last + 1, nil
}
