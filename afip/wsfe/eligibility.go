package wsfe

import (
	"context"
	"time"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/model"
	"github.com/EscuderoKevin93/afip-app/afip/tpl"
	"github.com/EscuderoKevin93/afip-app/afip/util"
)

// ReceiverConditions lista las condiciones IVA admitidas para el receptor,
// filtradas por clase de comprobante si clase no es vacía.
func (s *Service) ReceiverConditions(ctx context.Context, clase string) ([]model.CondicionIvaReceptor, error) {

	auth, err := s.authDTO(ctx)
	if err != nil {
		return nil, err
	}

	envelope, err := util.MergeTemplate(&tpl.FEParamGetCondicionIvaReceptor, model.CondicionIvaDTO{
		Auth:     auth,
		ClaseCmp: clase,
	})
	if err != nil {
		return nil, err
	}

	var resp model.CondicionIvaResponse
	if err := s.client.Call(ctx, s.env.WsfeURL(), actionCondicionIva, envelope, &resp); err != nil {
		return nil, err
	}

	if err := firstError(resp.Result.Errors); err != nil {
		return nil, err
	}

	return resp.Result.Conditions, nil
}

// CheckEligibility valida que el receptor pueda recibir un comprobante de la
// clase dada y devuelve la condición aplicable. Se consulta en cada emisión,
// las reglas pueden cambiar entre llamadas.
func (s *Service) CheckEligibility(ctx context.Context, clase string) (*model.CondicionIvaReceptor, error) {

	conditions, err := s.ReceiverConditions(ctx, clase)
	if err != nil {
		return nil, err
	}
	if len(conditions) == 0 {
		return nil, afip.ErrNoEligibleCondition
	}

	var match *model.CondicionIvaReceptor
	for i := range conditions {
		if conditions[i].CmpClase == clase {
			match = &conditions[i]
			break
		}
	}
	if match == nil {
		return nil, afip.ErrIneligibleReceiver
	}

	if expired, err := conditionExpired(match.FchHasta, s.now()); err != nil {
		return nil, err
	} else if expired {
		return nil, afip.ErrExpiredCondition
	}

	return match, nil
}

// conditionExpired FchHasta vacía o "NULL" es vigencia abierta.
func conditionExpired(fchHasta string, now time.Time) (bool, error) {
	if fchHasta == "" || fchHasta == "NULL" {
		return false, nil
	}
	until, err := time.Parse(DateLayout, fchHasta)
	if err != nil {
		return false, &afip.ServiceError{Message: "unparseable FchHasta " + fchHasta}
	}
	today, err := time.Parse(DateLayout, now.Format(DateLayout))
	if err != nil {
		return false, err
	}
	return until.Before(today), nil
}
