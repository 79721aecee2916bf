package service

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"shopadmin/internal/domain"
)

var orderCSVHeader = []string{
	"Order ID", "Customer", "Total Amount", "Delivery Status",
	"Payment Status", "Payment Method", "Items", "City", "Created At",
}

// WriteOrdersCSV renders orders in the column layout of the orders page export.
func WriteOrdersCSV(w io.Writer, orders []domain.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(orderCSVHeader); err != nil {
		return err
	}
	for _, o := range orders {
		var items int64
		for _, it := range o.OrderItems {
			items += it.Quantity
		}
		rec := []string{
			o.ID,
			o.CustomerName(),
			o.TotalAmount.StringFixed(2),
			o.DeliveryStatus.Label(),
			o.PaymentStatus.Label(),
			string(o.PaymentMethod),
			strconv.FormatInt(items, 10),
			o.ShippingAddress.City,
			o.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
