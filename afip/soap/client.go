package soap

import (
	"context"
	"encoding/xml"
	"fmt"
	"net"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-resty/resty/v2"

	"github.com/EscuderoKevin93/afip-app/afip"
	"github.com/EscuderoKevin93/afip-app/afip/util"
)

// DefaultTimeout plazo por llamada remota. AFIP no publica un SLA, 30s es
// suficiente para WSAA y WSFE en ambos ambientes.
const DefaultTimeout = 30 * time.Second

// Caller envía un sobre SOAP ya renderizado y decodifica la respuesta en
// result. Un fault remoto se devuelve como *Fault.
type Caller interface {
	Call(ctx context.Context, endpoint, action string, envelope []byte, result any) error
}

type Client struct {
	rest *resty.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	restyClient := resty.New().SetTimeout(timeout)
	return &Client{rest: restyClient}
}

func (c *Client) Call(ctx context.Context, endpoint, action string, envelope []byte, result any) error {

	r := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", `text/xml; charset="utf-8"`).
		SetHeader("SOAPAction", action).
		SetBody(envelope)

	if util.HttpTraceEnabled() {
		r.EnableTrace()
	}

	resp, err := r.Post(endpoint)
	if err != nil {
		if isTimeout(err) {
			return errors.Wrapf(afip.ErrRemoteTimeout, "POST %s", endpoint)
		}
		return errors.Wrapf(err, "POST %s", endpoint)
	}

	printTraceInfo(endpoint, err, resp)

	if resp.IsError() {
		if fault := parseFault(resp.Body()); fault != nil {
			return fault
		}
		return &RequestError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	if result == nil {
		return nil
	}
	if err := xml.Unmarshal(resp.Body(), result); err != nil {
		return errors.Wrapf(err, "decode SOAP response from %s", endpoint)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func printTraceInfo(endpoint string, err error, resp *resty.Response) {

	if !util.HttpTraceEnabled() {
		return
	}

	fmt.Println("Response Info:")
	fmt.Println("  URL        :", endpoint)
	fmt.Println("  Error      :", err)
	fmt.Println("  Status Code:", resp.StatusCode())
	fmt.Println("  Status     :", resp.Status())
	fmt.Println("  Time       :", resp.Time())
	fmt.Println("  Body       :\n", resp)
	fmt.Println()

	ti := resp.Request.TraceInfo()
	fmt.Println("Request Trace Info:")
	fmt.Println("  DNSLookup     :", ti.DNSLookup)
	fmt.Println("  ConnTime      :", ti.ConnTime)
	fmt.Println("  TLSHandshake  :", ti.TLSHandshake)
	fmt.Println("  ServerTime    :", ti.ServerTime)
	fmt.Println("  TotalTime     :", ti.TotalTime)
	fmt.Println("  IsConnReused  :", ti.IsConnReused)
}
