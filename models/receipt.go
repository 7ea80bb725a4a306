package models

// Receipt is rendered on demand from an order and its latest transaction.
// Nothing here is persisted.
type Receipt struct {
	Number   string          `json:"receipt_number"`
	Merchant ReceiptMerchant `json:"merchant"`
	Order    ReceiptOrder    `json:"order"`
	Payment  ReceiptPayment  `json:"payment"`
}

type ReceiptMerchant struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ReceiptOrder struct {
	ID             uint        `json:"id"`
	Date           string      `json:"date"`
	Table          string      `json:"table,omitempty"`
	Items          []OrderLine `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	Tip            float64     `json:"tip"`
	Total          float64     `json:"total"`
	TotalFormatted string      `json:"total_formatted"`
}

type ReceiptPayment struct {
	Status      string `json:"status"`
	AuthCode    string `json:"auth_code,omitempty"`
	MaskedCard  string `json:"masked_card,omitempty"`
	TerminalRef string `json:"terminal_ref,omitempty"`
	Time        string `json:"time"`
}
