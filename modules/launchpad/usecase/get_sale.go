package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/modules/sale"
	"github.com/holiman/uint256"
)

type Participant struct {
	*sale.Participant
	Codes []string `json:"codes"`
}

func (u *Usecase) GetSale(ctx context.Context, saleID string) (*sale.Info, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s, err := u.processor.Sale(saleID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	info := s.Info()
	return &info, nil
}

func (u *Usecase) GetParticipant(ctx context.Context, saleID string, wallet common.Address) (*Participant, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s, err := u.processor.Sale(saleID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Participant{
		Participant: s.Participant(wallet),
		Codes:       s.CodesOf(wallet),
	}, nil
}

func (u *Usecase) CheckWhitelist(ctx context.Context, saleID string, wallet common.Address, proof []common.Hash, allocation *uint256.Int) (bool, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s, err := u.processor.Sale(saleID)
	if err != nil {
		return false, errors.WithStack(err)
	}
	ok, err := s.CheckWhitelist(wallet, proof, allocation)
	if err != nil {
		return false, errors.Wrap(err, "failed to verify whitelist proof")
	}
	return ok, nil
}

// GetBalance returns the ledger balance of wallet for token.
func (u *Usecase) GetBalance(ctx context.Context, token, wallet common.Address) *uint256.Int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.processor.Ledger().BalanceOf(token, wallet)
}
