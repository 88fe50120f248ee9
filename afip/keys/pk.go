package keys

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/youmark/pkcs8"
)

// LoadSignerFromFile carga la clave privada del contribuyente desde PEM y
// devuelve crypto.Signer. Acepta PKCS#8 plano o cifrado y PKCS#1.
func LoadSignerFromFile(path string, password []byte) (crypto.Signer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	return LoadSignerFromPEM(b, password)
}

// LoadSignerFromPEM carga el primer bloque de clave privada encontrado.
func LoadSignerFromPEM(pemBytes []byte, password []byte) (crypto.Signer, error) {

	for len(pemBytes) > 0 {
		var block *pem.Block
		block, pemBytes = pem.Decode(pemBytes)
		if block == nil {
			break
		}

		switch block.Type {
		case "ENCRYPTED PRIVATE KEY":
			if len(password) == 0 {
				return nil, errors.New("password is required for ENCRYPTED PRIVATE KEY")
			}
			keyAny, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
			if err != nil {
				return nil, fmt.Errorf("decrypt PKCS#8 encrypted private key: %w", err)
			}
			return asSigner(keyAny)

		case "PRIVATE KEY":
			keyAny, err := x509.ParsePKCS8PrivateKey(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("parse PKCS#8 private key: %w", err)
			}
			return asSigner(keyAny)

		case "RSA PRIVATE KEY":
			key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("parse PKCS#1 private key: %w", err)
			}
			return key, nil
		}
	}

	return nil, errors.New("no private key block found in PEM")
}

func asSigner(keyAny any) (crypto.Signer, error) {
	switch k := keyAny.(type) {
	case *rsa.PrivateKey:
		return k, nil
	case *ecdsa.PrivateKey:
		return k, nil
	default:
		return nil, fmt.Errorf("unsupported key type: %T (expected RSA or ECDSA)", keyAny)
	}
}

// LoadCertificateFromFile carga el certificado X.509 emitido por AFIP.
func LoadCertificateFromFile(path string) (*x509.Certificate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cert file: %w", err)
	}
	return LoadCertificate(b)
}

func LoadCertificate(certBytes []byte) (*x509.Certificate, error) {
	// PEM?
	if block, _ := pem.Decode(certBytes); block != nil {
		if block.Type != "CERTIFICATE" {
			return nil, fmt.Errorf("unexpected PEM block: %s", block.Type)
		}
		certBytes = block.Bytes
	}

	cert, err := x509.ParseCertificate(certBytes)
	if err != nil {
		return nil, err
	}
	return cert, nil
}
