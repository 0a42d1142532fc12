package entity

import (
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type Action string

// Command is one state transition submitted to the launchpad. Accepted commands
// are journaled in order; replaying the journal rebuilds every sale.
type Command struct {
	ID        int64           `json:"id"`
	SaleID    string          `json:"saleId"`
	Action    Action          `json:"action"`
	Caller    common.Address  `json:"caller"`
	Time      uint64          `json:"time"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Event is a journaled notification emitted by a command.
type Event struct {
	CommandID int64           `json:"commandId"`
	SaleID    string          `json:"saleId"`
	Index     int32           `json:"index"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	Time      uint64          `json:"time"`
}
