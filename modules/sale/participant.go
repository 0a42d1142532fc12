package sale

import (
	"github.com/holiman/uint256"
)

// Participant is one wallet's state in a sale.
type Participant struct {
	PaymentReceived         *uint256.Int `json:"paymentReceived"`
	SaleTokenOwed           *uint256.Int `json:"saleTokenOwed"`
	Withdrawn               *uint256.Int `json:"withdrawn"`
	HasWithdrawnGiveaway    bool         `json:"hasWithdrawnGiveaway"`
	GiveawayWithdrawn       *uint256.Int `json:"giveawayWithdrawn"`
	PaymentReceivedWithCode *uint256.Int `json:"paymentReceivedWithCode"`

	hasPurchased bool
	hasWithdrawn bool
}

func newParticipant() *Participant {
	return &Participant{
		PaymentReceived:         new(uint256.Int),
		SaleTokenOwed:           new(uint256.Int),
		Withdrawn:               new(uint256.Int),
		GiveawayWithdrawn:       new(uint256.Int),
		PaymentReceivedWithCode: new(uint256.Int),
	}
}

func (p *Participant) clone() *Participant {
	return &Participant{
		PaymentReceived:         p.PaymentReceived.Clone(),
		SaleTokenOwed:           p.SaleTokenOwed.Clone(),
		Withdrawn:               p.Withdrawn.Clone(),
		HasWithdrawnGiveaway:    p.HasWithdrawnGiveaway,
		GiveawayWithdrawn:       p.GiveawayWithdrawn.Clone(),
		PaymentReceivedWithCode: p.PaymentReceivedWithCode.Clone(),
		hasPurchased:            p.hasPurchased,
		hasWithdrawn:            p.hasWithdrawn,
	}
}
