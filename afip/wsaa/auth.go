package wsaa

import (
	"context"
	"encoding/xml"
	"strings"

	"github.com/beevik/etree"
	"github.com/go-faster/errors"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/model"
	"github.com/EscuderoKevin93/afip-app/afip/soap"
	"github.com/EscuderoKevin93/afip-app/afip/tpl"
	"github.com/EscuderoKevin93/afip-app/afip/util"
)

// alreadyAuthenticatedCode discriminador del fault que WSAA devuelve cuando
// el contribuyente ya tiene un TA vigente para el servicio.
const alreadyAuthenticatedCode = "coe.alreadyAuthenticated"

// AuthService obtiene credenciales de sesión para servicios AFIP. Primero el
// cache, después login contra WSAA con un TRA firmado.
type AuthService struct {
	client  soap.Caller
	tickets *TicketSource
	cache   *Cache
	env     afip.Environment
}

func NewAuthService(client soap.Caller, tickets *TicketSource, cache *Cache, env afip.Environment) *AuthService {
	return &AuthService{client: client, tickets: tickets, cache: cache, env: env}
}

// Authenticate devuelve una credencial vigente para service. Dentro de la
// ventana de validez dos llamadas devuelven la misma credencial sin tocar la
// red.
func (a *AuthService) Authenticate(ctx context.Context, service string) (*Credential, error) {
	if cred, ok := a.cache.Get(service); ok {
		logger.Debugf("credential cache hit for %s", service)
		return cred, nil
	}
	return a.login(ctx, service, false)
}

// Refresh descarta todas las credenciales cacheadas y vuelve a autenticar.
// Lo usa el emisor cuando WSFE reporta una sesión ya activa.
func (a *AuthService) Refresh(ctx context.Context, service string) (*Credential, error) {
	a.cache.Clear()
	return a.Authenticate(ctx, service)
}

func (a *AuthService) login(ctx context.Context, service string, retried bool) (*Credential, error) {

	logger.Debugf("logging into WSAA for %s", service)

	cms, err := a.tickets.Build(service)
	if err != nil {
		// material de claves ilegible, no tiene sentido reintentar
		return nil, err
	}

	envelope, err := util.MergeTemplate(&tpl.LoginCms, model.LoginCmsDTO{Cms: cms})
	if err != nil {
		return nil, &afip.AuthenticationError{Err: err}
	}

	var resp model.LoginCmsResponse
	if err := a.client.Call(ctx, a.env.WsaaURL(), "", envelope, &resp); err != nil {

		var fault *soap.Fault
		if errors.As(err, &fault) && IsAlreadyAuthenticated(fault) {
			logger.Warnf("WSAA reports an active session for %s, attempting recovery", service)

			if cred, ok := credentialsFromFault(fault, service); ok {
				a.cache.Put(service, cred)
				return cred, nil
			}
			// El fault no trajo credenciales rescatables. Un reintento sin
			// limpiar estado repite el mismo fault, así que se vacía el
			// cache entero y se reintenta exactamente una vez.
			if !retried {
				a.cache.Clear()
				return a.login(ctx, service, true)
			}
		}

		if errors.Is(err, afip.ErrRemoteTimeout) {
			return nil, err
		}
		return nil, &afip.AuthenticationError{Err: err}
	}

	var ticket model.LoginTicketResponse
	if err := xml.Unmarshal([]byte(resp.Return), &ticket); err != nil {
		return nil, &afip.AuthenticationError{Err: errors.Wrap(err, "decode loginTicketResponse")}
	}

	token := ticket.Credentials.Token
	sign := ticket.Credentials.Sign
	if token == "" || sign == "" {
		return nil, afip.ErrInvalidCredentials
	}

	cred := &Credential{Service: service, Token: token, Sign: sign}
	a.cache.Put(service, cred)

	logger.Infof("authenticated against WSAA for %s", service)
	return cred, nil
}

// IsAlreadyAuthenticated identifica el fault de sesión activa. Se compara el
// faultcode estructurado; el texto queda como último recurso.
func IsAlreadyAuthenticated(fault *soap.Fault) bool {
	if strings.Contains(fault.Code, alreadyAuthenticatedCode) {
		return true
	}
	// fallback por texto, por si el gateway omite el prefijo del código
	return strings.Contains(fault.Message, "ya posee un TA valido")
}

// credentialsFromFault busca token y sign dentro del detail del fault. WSAA
// a veces adjunta ahí las credenciales de la sesión todavía vigente.
func credentialsFromFault(fault *soap.Fault, service string) (*Credential, bool) {
	if len(fault.Detail.Inner) == 0 {
		return nil, false
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes([]byte("<detail>" + string(fault.Detail.Inner) + "</detail>")); err != nil {
		return nil, false
	}

	tokenEl := doc.FindElement("//token")
	signEl := doc.FindElement("//sign")
	if tokenEl == nil || signEl == nil {
		return nil, false
	}
	token := strings.TrimSpace(tokenEl.Text())
	sign := strings.TrimSpace(signEl.Text())
	if token == "" || sign == "" {
		return nil, false
	}

	return &Credential{Service: service, Token: token, Sign: sign}, true
}
