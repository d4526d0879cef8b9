package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/database"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

func formatTk(amount float64) string {
	return fmt.Sprintf("Tk %.2f", amount)
}

func buildOrderPDF(order models.Order) ([]byte, error) {
	qrPNG, err := qrcode.Encode(order.TrackingCode, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "MAZZ STUDIO")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Order Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 7, "Order "+order.TrackingCode)
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Date: "+order.CreatedAt.Format("02 Jan 2006 15:04"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Status: "+strings.ReplaceAll(string(order.Status), "_", " "))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Customer: "+order.CustomerName)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Phone: "+order.Phone)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Address: "+order.Address)
	pdf.Ln(10)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 7, "Product", "1", 0, "L", false, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Line Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		name := item.ProductName
		if item.Color != "" {
			name += " (" + item.Color + ")"
		}
		pdf.CellFormat(90, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", item.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, formatTk(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, formatTk(item.Price*float64(item.Qty)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	totalsRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(140, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, value, "", 1, "R", false, 0, "")
	}

	totalsRow("Subtotal", formatTk(order.Subtotal), false)
	totalsRow("Delivery Charge", formatTk(order.DeliveryCharge), false)
	if order.Discount > 0 {
		totalsRow("Discount", "-"+formatTk(order.Discount), false)
	}
	if order.AppliedCoupon != nil {
		totalsRow("Coupon", order.AppliedCoupon.Code, false)
	}
	totalsRow("Total", formatTk(order.Total), true)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("tracking-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("tracking-qr", 160, 12, 35, 35, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportOrderPDF renders an order as a printable invoice with the tracking
// code embedded as a QR image.
func ExportOrderPDF(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/:id/pdf"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var order models.Order
		if err := db.Collection(database.ColOrders).FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		pdfBytes, err := buildOrderPDF(order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "pdf generation failed")
			return
		}

		c.Header("Content-Disposition", "attachment; filename=order-"+order.TrackingCode+".pdf")
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
	}
}
