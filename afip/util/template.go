package util

import (
	"bytes"
	"text/template"
)

// MergeTemplate renderiza una plantilla de request SOAP con el modelo dado.
// Los valores que viajan en los sobres son numéricos o base64, no requieren
// escape XML.
func MergeTemplate(tpl *string, model any) ([]byte, error) {

	tmpl, err := template.New("request").Parse(*tpl)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer

	err = tmpl.Execute(&output, model)
	if err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}
