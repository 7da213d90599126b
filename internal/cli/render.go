package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/iurnickita/creditorder/internal/balance"
	"github.com/iurnickita/creditorder/internal/format"
	"github.com/iurnickita/creditorder/internal/model"
)

var (
	accent  = lipgloss.Color("#1976D2")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#2E7D32")
	danger  = lipgloss.Color("#D32F2F")
	warning = lipgloss.Color("#ED6C02")
	info    = lipgloss.Color("#0288D1")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	headerStyle = lipgloss.NewStyle().Bold(true)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	severityColors = map[model.Severity]lipgloss.Color{
		model.SeveritySuccess: success,
		model.SeverityInfo:    info,
		model.SeverityWarning: warning,
		model.SeverityError:   danger,
	}
)

func severityStyle(severity model.Severity) lipgloss.Style {
	color, ok := severityColors[severity]
	if !ok {
		color = dim
	}
	return lipgloss.NewStyle().Foreground(color)
}

func statusStyle(status string) lipgloss.Style {
	return severityStyle(model.Severity(format.StatusColor(status))).Bold(true)
}

func row(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = lipgloss.NewStyle().Width(widths[i]).Render(cell)
	}
	return strings.Join(parts, " ")
}

func renderCatalog(customers []model.Customer, products []model.Product) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Clientes"))
	b.WriteString("\n")
	widths := []int{6, 32, 18}
	b.WriteString(headerStyle.Render(row([]string{"ID", "Nome", "Limite"}, widths)))
	b.WriteString("\n")
	for _, customer := range customers {
		b.WriteString(row([]string{
			fmt.Sprint(customer.ID),
			customer.Nome,
			format.FormatCurrency(customer.LimiteCredito),
		}, widths))
		b.WriteString("\n")
	}
	if len(customers) == 0 {
		b.WriteString(dimStyle.Render("nenhum cliente"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Produtos"))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(row([]string{"ID", "Nome", "Preço"}, widths)))
	b.WriteString("\n")
	for _, product := range products {
		b.WriteString(row([]string{
			fmt.Sprint(product.ID),
			product.Nome,
			format.FormatCurrency(product.Preco),
		}, widths))
		b.WriteString("\n")
	}
	if len(products) == 0 {
		b.WriteString(dimStyle.Render("nenhum produto"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCredit(info model.CreditInfo) string {
	utilization := format.Ratio(info.ValorUtilizado, info.LimiteCredito)
	level := balance.Level(utilization)

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s (#%d)", info.ClienteNome, info.ClienteID)),
		"",
		"Limite de crédito: " + format.FormatCurrency(info.LimiteCredito),
		"Valor utilizado:   " + format.FormatCurrency(info.ValorUtilizado),
		"Saldo disponível:  " + format.FormatCurrency(info.SaldoDisponivel),
		"Utilização:        " + severityStyle(level).Render(format.FormatPercent(utilization)),
	}
	return boxStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func renderMessage(message model.Message) string {
	if message.Empty() {
		return ""
	}
	return severityStyle(message.Type).Render(message.Text) + "\n"
}

func renderDraft(items []orderLine, total decimal.Decimal) string {
	var b strings.Builder
	widths := []int{24, 6, 14, 14}
	b.WriteString(headerStyle.Render(row([]string{"Produto", "Qtd", "Preço", "Subtotal"}, widths)))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString(row([]string{
			item.name,
			fmt.Sprint(item.quantity),
			format.FormatCurrency(item.price),
			format.FormatCurrency(item.subtotal),
		}, widths))
		b.WriteString("\n")
	}
	b.WriteString(headerStyle.Render("Total: " + format.FormatCurrency(total)))
	b.WriteString("\n")
	return b.String()
}

func renderHistory(submissions []model.Submission) string {
	if len(submissions) == 0 {
		return dimStyle.Render("nenhum pedido registrado") + "\n"
	}
	var b strings.Builder
	widths := []int{8, 24, 12, 16, 16, 17}
	b.WriteString(headerStyle.Render(row([]string{"Pedido", "Cliente", "Status", "Total", "Saldo", "Data"}, widths)))
	b.WriteString("\n")
	for _, submission := range submissions {
		b.WriteString(row([]string{
			"#" + fmt.Sprint(submission.OrderID),
			submission.CustomerName,
			statusStyle(submission.Status).Render(format.FormatOrderStatus(submission.Status)),
			format.FormatCurrency(submission.OrderTotal),
			format.FormatCurrency(submission.AvailableAmount),
			format.FormatDate(submission.SettledAt.Local()),
		}, widths))
		b.WriteString("\n")
	}
	return b.String()
}
