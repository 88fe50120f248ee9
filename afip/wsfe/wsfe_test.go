package wsfe

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/wsaa"
)

// fakeCaller despacha por SOAPAction y responde XML enlatado, igual que lo
// haría WSFE.
type fakeCaller struct {
	calls   int
	handler func(call int, action string, envelope []byte, result any) error
}

func (f *fakeCaller) Call(_ context.Context, _, action string, envelope []byte, result any) error {
	f.calls++
	return f.handler(f.calls, action, envelope, result)
}

func respond(body string, result any) error {
	return xml.Unmarshal([]byte(body), result)
}

type fakeAuth struct {
	cred      *wsaa.Credential
	refreshes int
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{cred: &wsaa.Credential{Service: afip.ServiceWsfe, Token: "TOK", Sign: "SIG"}}
}

func (f *fakeAuth) Authenticate(context.Context, string) (*wsaa.Credential, error) {
	return f.cred, nil
}

func (f *fakeAuth) Refresh(context.Context, string) (*wsaa.Credential, error) {
	f.refreshes++
	return f.cred, nil
}

func lastVoucherXML(nro int64) string {
	return fmt.Sprintf(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
	<soap:Body>
		<FECompUltimoAutorizadoResponse xmlns="http://ar.gov.afip.dif.FEV1/">
			<FECompUltimoAutorizadoResult>
				<PtoVta>3</PtoVta>
				<CbteTipo>6</CbteTipo>
				<CbteNro>%d</CbteNro>
			</FECompUltimoAutorizadoResult>
		</FECompUltimoAutorizadoResponse>
	</soap:Body>
</soap:Envelope>`, nro)
}

func condicionesXML(entries string) string {
	return `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
	<soap:Body>
		<FEParamGetCondicionIvaReceptorResponse xmlns="http://ar.gov.afip.dif.FEV1/">
			<FEParamGetCondicionIvaReceptorResult>
				<ResultGet>` + entries + `</ResultGet>
			</FEParamGetCondicionIvaReceptorResult>
		</FEParamGetCondicionIvaReceptorResponse>
	</soap:Body>
</soap:Envelope>`
}

func condicionXML(id int, desc, clase, fchHasta string) string {
	return fmt.Sprintf(`<CondicionIvaReceptor>
		<Id>%d</Id>
		<Desc>%s</Desc>
		<Cmp_Clase>%s</Cmp_Clase>
		<FchDesde>20080708</FchDesde>
		<FchHasta>%s</FchHasta>
	</CondicionIvaReceptor>`, id, desc, clase, fchHasta)
}

func caeXML(cae, vto string) string {
	return fmt.Sprintf(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
	<soap:Body>
		<FECAESolicitarResponse xmlns="http://ar.gov.afip.dif.FEV1/">
			<FECAESolicitarResult>
				<FeCabResp><Cuit>20111111112</Cuit><PtoVta>3</PtoVta><CbteTipo>6</CbteTipo><Resultado>A</Resultado></FeCabResp>
				<FeDetResp>
					<FECAEDetResponse>
						<Concepto>1</Concepto>
						<DocTipo>99</DocTipo>
						<DocNro>0</DocNro>
						<CbteDesde>42</CbteDesde>
						<CbteHasta>42</CbteHasta>
						<Resultado>A</Resultado>
						<CAE>%s</CAE>
						<CAEFchVto>%s</CAEFchVto>
					</FECAEDetResponse>
				</FeDetResp>
			</FECAESolicitarResult>
		</FECAESolicitarResponse>
	</soap:Body>
</soap:Envelope>`, cae, vto)
}

func newTestService(caller *fakeCaller) (*Service, *fakeAuth) {
	auth := newFakeAuth()
	return New(caller, auth, 20111111112, afip.Testing), auth
}
