package handler

// OpenAccountRequest is the payload for creating an account.
type OpenAccountRequest struct {
	InitialBalance float64 `json:"initial_balance"`
}

// AmountRequest carries a single amount, used by deposit and withdraw.
type AmountRequest struct {
	Amount float64 `json:"amount"`
}

// TransferRequest names the destination account and the amount to move.
type TransferRequest struct {
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}
