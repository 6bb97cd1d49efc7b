package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/models"
)

func writeExcel(w http.ResponseWriter, file *excelize.File, name string) {
	buffer, err := file.WriteToBuffer()
	if err != nil {
		respondInternal(w, err)
		return
	}
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportOrdersToExcel downloads the period's orders as a spreadsheet.
func ExportOrdersToExcel(w http.ResponseWriter, r *http.Request) {
	from, to := parsePeriod(r)

	var orders []models.Order
	err := config.DB.Preload("Client").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").Find(&orders).Error
	if err != nil {
		respondInternal(w, err)
		return
	}

	file := excelize.NewFile()
	sheet := "Pedidos"
	file.SetSheetName("Sheet1", sheet)

	headers := []string{"Folio", "Cliente", "Estado", "Subtotal", "IVA", "Total", "Pagado", "Saldo", "Estado de pago", "Creado"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, h)
	}

	for row, o := range orders {
		clientName := ""
		if o.Client != nil {
			clientName = o.Client.Name
		}
		values := []interface{}{
			o.Folio, clientName, o.Status,
			o.Subtotal.InexactFloat64(), o.Tax.InexactFloat64(), o.Total.InexactFloat64(),
			o.AmountPaid.InexactFloat64(), o.BalanceDue.InexactFloat64(),
			o.PaymentStatus, o.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			file.SetCellValue(sheet, cell, v)
		}
	}

	writeExcel(w, file, "pedidos")
}

// ExportInventoryToExcel downloads the current product catalog with stock
// levels.
func ExportInventoryToExcel(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if err := config.DB.Where("is_active = ?", true).Order("name").Find(&products).Error; err != nil {
		respondInternal(w, err)
		return
	}

	file := excelize.NewFile()
	sheet := "Inventario"
	file.SetSheetName("Sheet1", sheet)

	headers := []string{"SKU", "Nombre", "Categoría", "Precio unitario", "Existencias", "Mínimo", "Bajo stock"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, h)
	}

	for row, p := range products {
		low := ""
		if p.StockQuantity <= p.MinStock {
			low = "SÍ"
		}
		values := []interface{}{
			p.SKU, p.Name, p.Category,
			p.UnitPrice.InexactFloat64(), p.StockQuantity, p.MinStock, low,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			file.SetCellValue(sheet, cell, v)
		}
	}

	writeExcel(w, file, "inventario")
}
