package templates

import (
	"strconv"

	"sales-dashboard/internal/filter"
)

// RawDataProps seeds the raw-data page controls.
type RawDataProps struct {
	FileName string
}

const refreshRecords = "@get('/sse/records')"

type multiSelect struct {
	id     string
	signal string
	label  string
}

var rawSelects = []multiSelect{
	{"colunas", "coluna", "Colunas"},
	{"produtos", "produto", "Produto"},
	{"categorias", "categoria", "Categoria do produto"},
	{"vendedores", "vendedor", "Vendedor"},
	{"estados", "estado", "Local da compra"},
	{"pagamentos", "pagamento", "Tipo de pagamento"},
}

type slider struct {
	label    string
	low      string
	high     string
	min, max float64
	step     string
}

// caption shows the selected range next to the slider label.
func (s slider) caption() string {
	return "$" + s.low + " + ' a ' + $" + s.high
}

var rawSliders = []slider{
	{"Preço do produto", "preco_min", "preco_max", filter.PriceBounds.Low, filter.PriceBounds.High, "1"},
	{"Frete", "frete_min", "frete_max", filter.FreightBounds.Low, filter.FreightBounds.High, "1"},
	{"Avaliação da compra", "avaliacao_min", "avaliacao_max", float64(filter.ReviewBounds.Low), float64(filter.ReviewBounds.High), "1"},
	{"Quantidade de parcelas", "parcelas_min", "parcelas_max", float64(filter.InstallmentsBounds.Low), float64(filter.InstallmentsBounds.High), "1"},
}

func rawSignals(props RawDataProps) map[string]any {
	signals := map[string]any{
		"arquivo":     props.FileName,
		"data_inicio": "",
		"data_fim":    "",
	}
	for _, s := range rawSelects {
		signals[s.signal] = []string{}
	}
	for _, s := range rawSliders {
		signals[s.low] = s.min
		signals[s.high] = s.max
	}
	return signals
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
