package model

import "encoding/xml"

// LoginCmsDTO modelo para la plantilla del request loginCms.
type LoginCmsDTO struct {
	Cms string
}

// LoginCmsResponse sobre SOAP de WSAA. loginCmsReturn viene como XML
// escapado dentro del body, se decodifica aparte en LoginTicketResponse.
type LoginCmsResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Return  string   `xml:"Body>loginCmsResponse>loginCmsReturn"`
}

// LoginTicketResponse documento interno devuelto por WSAA.
type LoginTicketResponse struct {
	XMLName     xml.Name          `xml:"loginTicketResponse"`
	Header      LoginTicketHeader `xml:"header"`
	Credentials Credentials       `xml:"credentials"`
}

type LoginTicketHeader struct {
	Source         string `xml:"source"`
	Destination    string `xml:"destination"`
	UniqueID       int64  `xml:"uniqueId"`
	GenerationTime string `xml:"generationTime"`
	ExpirationTime string `xml:"expirationTime"`
}

type Credentials struct {
	Token string `xml:"token"`
	Sign  string `xml:"sign"`
}
