package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
)

// ExportOrdersToExcel downloads the session artisan's order history as an
// .xlsx workbook.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanID := c.GetString(middleware.UserIDKey)

		var orders []models.Order
		if err := db.
			Where("artisan_id = ?", artisanID).
			Preload("Buyer").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderID", "Buyer", "BuyerCity", "BuyerState",
			"Status", "TotalAmount", "Items", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			units := 0
			for _, item := range o.Items {
				units += item.Quantity
			}

			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.Buyer.Name)
			row.AddCell().SetValue(o.BuyerCity)
			row.AddCell().SetValue(o.BuyerState)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(float64(o.TotalAmount) / 100) // rupees
			row.AddCell().SetValue(units)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
