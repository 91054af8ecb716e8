package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// ErrNotCompleted возвращается при попытке напечатать квитанцию незавершенного оформления
var ErrNotCompleted = errors.New("pdf: checkout is not completed")

const utf8FontName = "Receipt"

// labels подписи квитанции
type labels struct {
	title, number, issued, car, term, months, start, end, down, monthly, contract, reservation, paid, footer string
}

var cyrillicLabels = labels{
	title:       "Квитанция об оформлении лизинга",
	number:      "Оформление №",
	issued:      "Дата выдачи",
	car:         "Автомобиль",
	term:        "Срок лизинга",
	months:      "мес.",
	start:       "Начало договора",
	end:         "Окончание договора",
	down:        "Первоначальный взнос",
	monthly:     "Ежемесячный платеж",
	contract:    "Договор лизинга №",
	reservation: "Бронь №",
	paid:        "Взнос оплачен",
	footer:      "RoyalWheels. Документ сформирован автоматически.",
}

var latinLabels = labels{
	title:       "Lease checkout receipt",
	number:      "Checkout #",
	issued:      "Issued",
	car:         "Car",
	term:        "Lease term",
	months:      "months",
	start:       "Contract start",
	end:         "Contract end",
	down:        "Down payment",
	monthly:     "Monthly payment",
	contract:    "Lease contract #",
	reservation: "Reservation #",
	paid:        "Down payment paid",
	footer:      "RoyalWheels. Generated automatically.",
}

// Generator печатает PDF квитанции оформления лизинга
type Generator struct {
	font []byte
}

// NewGenerator создает генератор квитанций
// fontPath путь к TTF шрифту с кириллицей; пустой путь означает встроенный Helvetica и латинские подписи
func NewGenerator(fontPath string) (*Generator, error) {
	if fontPath == "" {
		return &Generator{}, nil
	}

	font, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read receipt font: %w", err)
	}
	if len(font) == 0 {
		return nil, fmt.Errorf("receipt font %s is empty", fontPath)
	}
	return &Generator{font: font}, nil
}

// Generate печатает квитанцию завершенного оформления
func (g *Generator) Generate(c *domain.Checkout, issuedAt time.Time) ([]byte, error) {
	if !c.IsCompleted() {
		return nil, ErrNotCompleted
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	fontName, text, l := g.setupFont(pdf)

	pdf.SetFont(fontName, "B", 16)
	pdf.CellFormat(0, 10, text(l.title), "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, text(fmt.Sprintf("%s %d, %s %s", l.number, c.ID, l.issued, formatDate(issuedAt))), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	rows := [][2]string{
		{l.car, c.CarBrand + " " + c.CarModel},
		{l.term, fmt.Sprintf("%d %s", c.LeaseTerm, l.months)},
		{l.start, formatDatePtr(c.LeaseStartDate)},
		{l.end, formatDatePtr(c.LeaseEndDate)},
		{l.down, formatAmount(c.DownPayment)},
		{l.monthly, formatAmount(c.MonthlyPayment)},
		{l.contract, formatID(c.LeaseContractID)},
		{l.reservation, formatID(c.ReservationID)},
		{l.paid, formatDatePtr(c.PaidAt)},
	}
	for _, row := range rows {
		drawRow(pdf, fontName, text(row[0]), text(row[1]))
	}

	pdf.Ln(8)
	pdf.SetFont(fontName, "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 5, text(l.footer), "", "L", false)
	pdf.SetTextColor(0, 0, 0)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// setupFont подключает шрифт и возвращает имя шрифта, функцию перекодировки и подписи
func (g *Generator) setupFont(pdf *gofpdf.Fpdf) (string, func(string) string, labels) {
	if len(g.font) > 0 {
		pdf.AddUTF8FontFromBytes(utf8FontName, "", g.font)
		pdf.AddUTF8FontFromBytes(utf8FontName, "B", g.font)
		return utf8FontName, func(s string) string { return s }, cyrillicLabels
	}
	return "Helvetica", pdf.UnicodeTranslatorFromDescriptor(""), latinLabels
}

func drawRow(pdf *gofpdf.Fpdf, fontName, label, value string) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(70, 8, label, "1", 0, "L", false, 0, "")
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 8, value, "1", 1, "L", false, 0, "")
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(domain.DisplayDateFormat)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}

func formatID(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
