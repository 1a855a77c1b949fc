package dataset

import (
	"fmt"
	"strings"

	"rfm-segments/pkg/models"
)

// Mots-clés par rôle, du plus spécifique au plus générique.
var (
	idKeywords      = []string{"customerid", "customer_id", "clientid", "client_id", "userid", "user_id", "customer", "client", "user"}
	dateKeywords    = []string{"invoicedate", "orderdate", "order_date", "purchase_date", "date", "time", "created"}
	revenueKeywords = []string{"revenue", "totalamount", "total_amount", "amount", "total", "price", "sales"}
)

// DetectFields devine les colonnes identifiant, date et revenu d'après leur nom.
func DetectFields(columns []string) (models.Fields, error) {
	var f models.Fields
	used := map[string]bool{}
	pick := func(role string, keywords []string) (string, error) {
		for _, kw := range keywords {
			for _, c := range columns {
				if used[c] {
					continue
				}
				if strings.Contains(strings.ToLower(c), kw) {
					used[c] = true
					return c, nil
				}
			}
		}
		return "", fmt.Errorf("no %s column among %v", role, columns)
	}

	var err error
	if f.ID, err = pick("customer id", idKeywords); err != nil {
		return f, err
	}
	if f.Date, err = pick("date", dateKeywords); err != nil {
		return f, err
	}
	if f.Revenue, err = pick("revenue", revenueKeywords); err != nil {
		return f, err
	}
	return f, nil
}
