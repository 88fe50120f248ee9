package soap

import (
	"encoding/xml"
	"fmt"
)

// RequestError respuesta HTTP de error sin fault SOAP decodificable.
type RequestError struct {
	StatusCode int
	Body       string
}

func (r *RequestError) Error() string {
	return fmt.Sprintf("soap: status %d: %s", r.StatusCode, r.Body)
}

// Fault fault SOAP 1.1. Detail conserva el XML interno sin decodificar:
// WSAA mete ahí estructuras propias (incluidas credenciales vigentes cuando
// rechaza un login por sesión activa).
type Fault struct {
	Code    string `xml:"faultcode"`
	Message string `xml:"faultstring"`
	Detail  Detail `xml:"detail"`
}

type Detail struct {
	Inner []byte `xml:",innerxml"`
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap: fault %s: %s", f.Code, f.Message)
}

type faultEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Fault   *Fault   `xml:"Body>Fault"`
}

func parseFault(body []byte) *Fault {
	var env faultEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil
	}
	return env.Fault
}
