package wsaa

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("component", "afip.wsaa")

const (
	// credentialTTL ventana de validez del ticket de acceso. WSAA los emite
	// por 12 horas pero rechaza logins repetidos, se renueva corto para no
	// arrastrar sesiones viejas.
	credentialTTL = 11 * time.Minute

	sweepInterval = time.Minute
)

// Credential sesión activa contra un servicio AFIP. Inmutable: un refresh
// reemplaza la entrada completa en el cache.
type Credential struct {
	Service  string
	Token    string
	Sign     string
	IssuedAt time.Time
}

// Cache cache de credenciales por servicio, compartido entre requests
// concurrentes. Get aplica el corte de vencimiento por sí mismo, el barrido
// periódico solo acelera la expulsión.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Credential

	now func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*Credential),
		now:     time.Now,
	}
}

// Get devuelve la credencial vigente para service, si la hay.
func (c *Cache) Get(service string) (*Credential, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[service]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.IssuedAt) >= credentialTTL {
		delete(c.entries, service)
		return nil, false
	}
	return entry, true
}

// Put guarda o pisa la credencial para service, reiniciando su antigüedad.
func (c *Cache) Put(service string, cred *Credential) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cred.IssuedAt = c.now()
	c.entries[service] = cred
}

func (c *Cache) Invalidate(service string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, service)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Credential)
}

// Sweep expulsa credenciales vencidas una vez por minuto hasta que ctx se
// cancele. Se lanza una sola vez por proceso, desde el arranque.
func (c *Cache) Sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("credential sweep stopped")
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *Cache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for service, entry := range c.entries {
		if now.Sub(entry.IssuedAt) >= credentialTTL {
			logger.Debugf("evicting expired credential for %s", service)
			delete(c.entries, service)
		}
	}
}
