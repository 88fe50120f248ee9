package afip

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentUnmarshalText(t *testing.T) {

	cases := map[string]Environment{
		"production": Production,
		"prod":       Production,
		"PRODUCTION": Production,
		"testing":    Testing,
		"homo":       Testing,
		" test ":     Testing,
	}

	for raw, want := range cases {
		var env Environment
		require.NoError(t, env.UnmarshalText([]byte(raw)), raw)
		assert.Equal(t, want, env, raw)
	}

	var env Environment
	err := env.UnmarshalText([]byte("staging"))
	assert.ErrorContains(t, err, "invalid AFIP_ENV")
}

func TestEnvironmentURLs(t *testing.T) {

	assert.Contains(t, Testing.WsaaURL(), "wsaahomo")
	assert.Contains(t, Production.WsaaURL(), "wsaa.afip.gov.ar")
	assert.Contains(t, Testing.WsfeURL(), "wswhomo")
	assert.Contains(t, Production.WsfeURL(), "servicios1")
	assert.Contains(t, Testing.PadronURL(), "awshomo")

	assert.Equal(t, "testing", Testing.Name())
	assert.Equal(t, "production", Production.Name())
}

func TestErrorWrapping(t *testing.T) {

	cause := errors.New("bad key")

	var signErr error = &SigningError{Err: cause}
	assert.ErrorIs(t, signErr, cause)
	assert.Contains(t, signErr.Error(), "cannot sign")

	var authErr error = &AuthenticationError{Err: cause}
	assert.ErrorIs(t, authErr, cause)

	svcErr := &ServiceError{Code: 602, Message: "Sin resultados"}
	assert.Equal(t, "afip: service error 602: Sin resultados", svcErr.Error())
}
