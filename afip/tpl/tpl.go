// Package tpl contiene los sobres SOAP de los requests. Las respuestas se
// decodifican con encoding/xml, los requests se renderizan por plantilla
// contra los DTO de model.
package tpl

var LoginCms = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:wsaa="http://wsaa.view.sua.dvadac.desein.afip.gov">
	<soapenv:Header/>
	<soapenv:Body>
		<wsaa:loginCms>
			<wsaa:in0>{{.Cms}}</wsaa:in0>
		</wsaa:loginCms>
	</soapenv:Body>
</soapenv:Envelope>`

var FECompUltimoAutorizado = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:ar="http://ar.gov.afip.dif.FEV1/">
	<soapenv:Header/>
	<soapenv:Body>
		<ar:FECompUltimoAutorizado>
			<ar:Auth>
				<ar:Token>{{.Auth.Token}}</ar:Token>
				<ar:Sign>{{.Auth.Sign}}</ar:Sign>
				<ar:Cuit>{{.Auth.Cuit}}</ar:Cuit>
			</ar:Auth>
			<ar:PtoVta>{{.PtoVta}}</ar:PtoVta>
			<ar:CbteTipo>{{.CbteTipo}}</ar:CbteTipo>
		</ar:FECompUltimoAutorizado>
	</soapenv:Body>
</soapenv:Envelope>`

var FEParamGetCondicionIvaReceptor = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:ar="http://ar.gov.afip.dif.FEV1/">
	<soapenv:Header/>
	<soapenv:Body>
		<ar:FEParamGetCondicionIvaReceptor>
			<ar:Auth>
				<ar:Token>{{.Auth.Token}}</ar:Token>
				<ar:Sign>{{.Auth.Sign}}</ar:Sign>
				<ar:Cuit>{{.Auth.Cuit}}</ar:Cuit>
			</ar:Auth>{{if .ClaseCmp}}
			<ar:ClaseCmp>{{.ClaseCmp}}</ar:ClaseCmp>{{end}}
		</ar:FEParamGetCondicionIvaReceptor>
	</soapenv:Body>
</soapenv:Envelope>`

var FECAESolicitar = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:ar="http://ar.gov.afip.dif.FEV1/">
	<soapenv:Header/>
	<soapenv:Body>
		<ar:FECAESolicitar>
			<ar:Auth>
				<ar:Token>{{.Auth.Token}}</ar:Token>
				<ar:Sign>{{.Auth.Sign}}</ar:Sign>
				<ar:Cuit>{{.Auth.Cuit}}</ar:Cuit>
			</ar:Auth>
			<ar:FeCAEReq>
				<ar:FeCabReq>
					<ar:CantReg>{{.Cab.CantReg}}</ar:CantReg>
					<ar:PtoVta>{{.Cab.PtoVta}}</ar:PtoVta>
					<ar:CbteTipo>{{.Cab.CbteTipo}}</ar:CbteTipo>
				</ar:FeCabReq>
				<ar:FeDetReq>
{{- range .Det}}
					<ar:FECAEDetRequest>
						<ar:Concepto>{{.Concepto}}</ar:Concepto>
						<ar:DocTipo>{{.DocTipo}}</ar:DocTipo>
						<ar:DocNro>{{.DocNro}}</ar:DocNro>
						<ar:CbteDesde>{{.CbteDesde}}</ar:CbteDesde>
						<ar:CbteHasta>{{.CbteHasta}}</ar:CbteHasta>
						<ar:CbteFch>{{.CbteFch}}</ar:CbteFch>
						<ar:ImpTotal>{{.ImpTotal}}</ar:ImpTotal>
						<ar:ImpTotConc>{{.ImpTotConc}}</ar:ImpTotConc>
						<ar:ImpNeto>{{.ImpNeto}}</ar:ImpNeto>
						<ar:ImpOpEx>{{.ImpOpEx}}</ar:ImpOpEx>
						<ar:ImpTrib>{{.ImpTrib}}</ar:ImpTrib>
						<ar:ImpIVA>{{.ImpIVA}}</ar:ImpIVA>
						<ar:MonId>{{.MonId}}</ar:MonId>
						<ar:MonCotiz>{{.MonCotiz}}</ar:MonCotiz>
						<ar:CondicionIVAReceptorId>{{.CondicionIVAReceptorId}}</ar:CondicionIVAReceptorId>
						<ar:Iva>
{{- range .Iva}}
							<ar:AlicIva>
								<ar:Id>{{.Id}}</ar:Id>
								<ar:BaseImp>{{.BaseImp}}</ar:BaseImp>
								<ar:Importe>{{.Importe}}</ar:Importe>
							</ar:AlicIva>
{{- end}}
						</ar:Iva>
					</ar:FECAEDetRequest>
{{- end}}
				</ar:FeDetReq>
			</ar:FeCAEReq>
		</ar:FECAESolicitar>
	</soapenv:Body>
</soapenv:Envelope>`

var GetPersona = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:a5="http://a5.soap.ws.server.puc.sr/">
	<soapenv:Header/>
	<soapenv:Body>
		<a5:getPersona>
			<token>{{.Token}}</token>
			<sign>{{.Sign}}</sign>
			<cuitRepresentada>{{.CuitRepresentada}}</cuitRepresentada>
			<idPersona>{{.IdPersona}}</idPersona>
		</a5:getPersona>
	</soapenv:Body>
</soapenv:Envelope>`
