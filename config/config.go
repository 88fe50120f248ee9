package config

import (
	"os"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/util"
)

// Config configuración del proceso, tomada del ambiente. El contribuyente es
// uno solo: CUIT, punto de venta y material de claves vienen fijos por
// despliegue.
type Config struct {
	Cuit        int64
	PtoVta      int
	Environment afip.Environment
	KeyPath     string
	CertPath    string
	KeyPassword string
	Port        int
}

func Load() (*Config, error) {

	cuit, err := requiredInt64("AFIP_CUIT")
	if err != nil {
		return nil, err
	}

	ptoVta, err := requiredInt("AFIP_PTO_VTA")
	if err != nil {
		return nil, err
	}

	var env afip.Environment
	if err := env.UnmarshalText([]byte(util.GetEnvOrDefault("AFIP_ENV", "testing"))); err != nil {
		return nil, err
	}

	keyPath, err := required("AFIP_KEY")
	if err != nil {
		return nil, err
	}
	certPath, err := required("AFIP_CERT")
	if err != nil {
		return nil, err
	}

	port, err := strconv.Atoi(util.GetEnvOrDefault("PORT", "5001"))
	if err != nil {
		return nil, errors.Wrap(err, "PORT")
	}

	return &Config{
		Cuit:        cuit,
		PtoVta:      ptoVta,
		Environment: env,
		KeyPath:     keyPath,
		CertPath:    certPath,
		KeyPassword: os.Getenv("AFIP_KEY_PASSWORD"),
		Port:        port,
	}, nil
}

func required(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", errors.Errorf("%s environment variable is not set", key)
	}
	return v, nil
}

func requiredInt(key string) (int, error) {
	v, err := required(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrap(err, key)
	}
	return n, nil
}

func requiredInt64(key string) (int64, error) {
	v, err := required(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, key)
	}
	return n, nil
}
