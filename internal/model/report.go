package model

import "time"

// ContractRegister is the data behind the contracts spreadsheet export.
type ContractRegister struct {
	GeneratedAt time.Time
	Query       string
	Contracts   []Contract
}

type ContractSheet struct {
	Contract    Contract
	GeneratedAt time.Time
}
