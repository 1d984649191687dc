// Package archive stores receipt artifacts (QR images) outside the order tables.
package archive

import "context"

// Archive writes an object under key. Implementations overwrite existing keys.
type Archive interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

// ReceiptKey is the object key for a transaction's QR image.
func ReceiptKey(txnID string) string {
	return "receipts/" + txnID + ".png"
}
