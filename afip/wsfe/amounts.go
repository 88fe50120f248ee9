package wsfe

import "github.com/shopspring/decimal"

// VatCode21 código de alícuota IVA 21% en la tabla de WSFE.
const VatCode21 = 5

var grossDivisor = decimal.RequireFromString("1.21")

// One cotización para operaciones en pesos.
var One = decimal.NewFromInt(1)

// SplitGross separa un importe final IVA incluido en neto gravado e IVA al
// 21%, redondeando al centavo. neto + iva reconstruye el total.
func SplitGross(total decimal.Decimal) (net, vat decimal.Decimal) {
	net = total.Div(grossDivisor).Round(2)
	vat = total.Sub(net).Round(2)
	return net, vat
}
