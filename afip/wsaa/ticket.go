package wsaa

import (
	"encoding/base64"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/smallstep/pkcs7"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/keys"
)

// ticketSkew margen del TRA: generación 10 minutos hacia atrás y expiración
// 10 minutos hacia adelante, como exige WSAA para absorber desfasajes de reloj.
const ticketSkew = 10 * time.Minute

// TicketSource arma y firma el loginTicketRequest (TRA) para un servicio.
// El resultado es un CMS (PKCS#7 signed-data, SHA-256) en base64, listo para
// el elemento in0 de loginCms.
type TicketSource struct {
	keyPath  string
	certPath string
	password []byte

	now func() time.Time
}

func NewTicketSource(keyPath, certPath string, password []byte) *TicketSource {
	return &TicketSource{
		keyPath:  keyPath,
		certPath: certPath,
		password: password,
		now:      time.Now,
	}
}

// Build genera un TRA fresco para service y lo devuelve firmado.
func (t *TicketSource) Build(service string) (string, error) {

	tra := loginTicketRequest(service, t.now())

	signer, err := keys.LoadSignerFromFile(t.keyPath, t.password)
	if err != nil {
		return "", &afip.SigningError{Err: err}
	}
	cert, err := keys.LoadCertificateFromFile(t.certPath)
	if err != nil {
		return "", &afip.SigningError{Err: err}
	}

	signed, err := pkcs7.NewSignedData(tra)
	if err != nil {
		return "", &afip.SigningError{Err: err}
	}
	signed.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)

	if err := signed.AddSigner(cert, signer, pkcs7.SignerInfoConfig{}); err != nil {
		return "", &afip.SigningError{Err: err}
	}

	der, err := signed.Finish()
	if err != nil {
		return "", &afip.SigningError{Err: err}
	}

	return base64.StdEncoding.EncodeToString(der), nil
}

// loginTicketRequest serializa el TRA. uniqueId es el epoch en segundos, WSAA
// solo pide que no se repita dentro de la ventana de validez.
func loginTicketRequest(service string, now time.Time) []byte {

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("loginTicketRequest")
	root.CreateAttr("version", "1.0")

	header := root.CreateElement("header")
	header.CreateElement("uniqueId").SetText(strconv.FormatInt(now.Unix(), 10))
	header.CreateElement("generationTime").SetText(now.Add(-ticketSkew).Format(time.RFC3339))
	header.CreateElement("expirationTime").SetText(now.Add(ticketSkew).Format(time.RFC3339))

	root.CreateElement("service").SetText(service)

	doc.Indent(4)
	out, err := doc.WriteToBytes()
	if err != nil {
		// etree escribe a un buffer en memoria, no puede fallar
		panic(err)
	}
	return out
}
