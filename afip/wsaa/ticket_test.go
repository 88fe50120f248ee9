package wsaa

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/smallstep/pkcs7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EscuderoKevin93/afip-app/afip"
)

// newTestTicketSource escribe una clave y un certificado autofirmado frescos
// en un directorio temporal.
func newTestTicketSource(t *testing.T) *TicketSource {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "afip-app test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	certDER, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	dir := t.TempDir()
	keyPath := filepath.Join(dir, "key.pem")
	certPath := filepath.Join(dir, "cert.pem")

	require.NoError(t, os.WriteFile(keyPath, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}), 0600))
	require.NoError(t, os.WriteFile(certPath, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER}), 0600))

	return NewTicketSource(keyPath, certPath, nil)
}

func TestLoginTicketRequestXML(t *testing.T) {

	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	tra := loginTicketRequest(afip.ServiceWsfe, now)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(tra))

	root := doc.SelectElement("loginTicketRequest")
	require.NotNil(t, root)
	assert.Equal(t, "1.0", root.SelectAttrValue("version", ""))

	header := root.SelectElement("header")
	require.NotNil(t, header)
	assert.Equal(t, strconv.FormatInt(now.Unix(), 10), header.SelectElement("uniqueId").Text())
	assert.Equal(t, now.Add(-10*time.Minute).Format(time.RFC3339), header.SelectElement("generationTime").Text())
	assert.Equal(t, now.Add(10*time.Minute).Format(time.RFC3339), header.SelectElement("expirationTime").Text())

	assert.Equal(t, afip.ServiceWsfe, root.SelectElement("service").Text())
}

func TestBuildProducesVerifiableCMS(t *testing.T) {

	source := newTestTicketSource(t)

	cms, err := source.Build(afip.ServiceWsfe)
	require.NoError(t, err)

	der, err := base64.StdEncoding.DecodeString(cms)
	require.NoError(t, err)

	p7, err := pkcs7.Parse(der)
	require.NoError(t, err)
	assert.Contains(t, string(p7.Content), "<loginTicketRequest")
	assert.Contains(t, string(p7.Content), "<service>"+afip.ServiceWsfe+"</service>")
}

func TestBuildFailsWithUnreadableKeyMaterial(t *testing.T) {

	source := NewTicketSource("/nonexistent/key.pem", "/nonexistent/cert.pem", nil)

	_, err := source.Build(afip.ServiceWsfe)
	require.Error(t, err)

	var se *afip.SigningError
	assert.ErrorAs(t, err, &se)
}
