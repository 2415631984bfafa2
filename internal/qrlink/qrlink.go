package qrlink

import (
	"fmt"
	"net/url"
)

// Builder constructs the QR image provider URL for a given donation amount.
// The provider renders the image itself; we only assemble the request.
type Builder struct {
	BaseURL     string
	BankID      string
	AccountNo   string
	Template    string
	AccountName string
	Note        string
}

// ImageURL returns the image reference for amount, or "" when amount is not
// positive so the caller can show the placeholder instead.
func (b Builder) ImageURL(amount int64) string {
	if amount <= 0 {
		return ""
	}

	query := url.Values{}
	query.Set("amount", fmt.Sprintf("%d", amount))
	query.Set("addInfo", b.Note)
	query.Set("accountName", b.AccountName)

	return fmt.Sprintf("%s/image/%s-%s-%s.png?%s",
		b.BaseURL, b.BankID, b.AccountNo, b.Template, query.Encode())
}
