package services

import (
	"bytes"
	"fmt"
	"strings"

	"truckledger/internal/domain"
	"truckledger/internal/repositories"
	"truckledger/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// StatementService renders a per-trip debt statement PDF: the record's cost
// breakdown, its trip-mode payment history and the computed balance.
type StatementService struct {
	DebtRepo    repositories.DebtRepository
	PaymentRepo repositories.PaymentRepository
	RequestID   string
}

func (s StatementService) GenerateTripStatement(tripCode string) ([]byte, string, error) {
	rec, found, err := s.DebtRepo.GetByTripCode(tripCode)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", domain.NotFoundError{Resource: "debt record"}
	}

	payments, err := s.PaymentRepo.ListByTripCode(rec.TripCode)
	if err != nil {
		return nil, "", err
	}

	var paid int64
	for _, p := range payments {
		paid += p.Amount
	}
	bal := domain.ComputeBalance(rec.TotalAmount, paid)

	utils.LogEvent(s.RequestID, "statement", "generate", "trip_code="+rec.TripCode)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Surat Tagihan", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SURAT TAGIHAN")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	head := []string{
		fmt.Sprintf("Kode Trip    : %s", rec.TripCode),
		fmt.Sprintf("Customer     : %s (%s)", safe(rec.CustomerName, "-"), safe(rec.CustomerCode, "-")),
		fmt.Sprintf("Rute         : %s -> %s", safe(rec.OriginPoint, "-"), safe(rec.DestinationPoint, "-")),
		fmt.Sprintf("Tanggal Kirim: %s", safe(rec.DeliveryDate, "-")),
		fmt.Sprintf("Nopol        : %s", safe(rec.PlateNumber, "-")),
		fmt.Sprintf("Dicetak      : %s", utils.FormatDateTime(utils.NowUTC())),
	}
	for _, line := range head {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rincian Biaya:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	costs := []struct {
		label  string
		amount int64
	}{
		{"Ongkos pokok", rec.BaseFreight},
		{"Biaya muat", rec.LoadingFee},
		{"Biaya tiket", rec.TicketFee},
		{"Biaya muatan balik", rec.ReturnCargoFee},
		{"Biaya inap/shift", rec.ShiftHoldingFee},
		{"Biaya titik tambahan", rec.ExtraPointFee},
		{"Biaya lain-lain", rec.OtherFee},
	}
	for _, c := range costs {
		pdf.Cell(0, 6, fmt.Sprintf("%-22s %s", c.label, utils.FormatRupiah(c.amount)))
		pdf.Ln(6)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatRupiah(bal.TotalAmount))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Pembayaran:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	if len(payments) == 0 {
		pdf.Cell(0, 6, "Belum ada pembayaran.")
		pdf.Ln(6)
	}
	for i, p := range payments {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s  %s  (%s)", i+1, safe(p.CreatedAt, "-"), utils.FormatRupiah(p.Amount), p.Method))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Terbayar : "+utils.FormatRupiah(bal.PaidAmount))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Sisa     : "+utils.FormatRupiah(bal.Remaining))
	pdf.Ln(10)

	if rec.IsLocked {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Catatan: tagihan ini sudah dikunci (periode ditutup).", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TAGIHAN_%s_%s.pdf", safeFilenamePart(rec.TripCode), utils.FormatDate(utils.NowUTC()))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "X"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(s)
}
