package sale

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// CodeStats is the aggregate use of one free-text purchase code.
type CodeStats struct {
	Code       string       `json:"code"`
	Amount     *uint256.Int `json:"amount"`
	UniqueUses uint64       `json:"uniqueUses"`
}

// codeBook keeps purchase codes as append-only logs with membership sets.
type codeBook struct {
	codes []string
	stats map[string]*CodeStats

	byWallet map[common.Address][]string
	used     map[common.Address]map[string]*uint256.Int
}

func newCodeBook() *codeBook {
	return &codeBook{
		stats:    make(map[string]*CodeStats),
		byWallet: make(map[common.Address][]string),
		used:     make(map[common.Address]map[string]*uint256.Int),
	}
}

func (b *codeBook) record(wallet common.Address, code string, amount *uint256.Int) {
	stats, ok := b.stats[code]
	if !ok {
		stats = &CodeStats{Code: code, Amount: new(uint256.Int)}
		b.stats[code] = stats
		b.codes = append(b.codes, code)
	}
	stats.Amount.Add(stats.Amount, amount)

	perCode, ok := b.used[wallet]
	if !ok {
		perCode = make(map[string]*uint256.Int)
		b.used[wallet] = perCode
	}
	paid, ok := perCode[code]
	if !ok {
		paid = new(uint256.Int)
		perCode[code] = paid
		b.byWallet[wallet] = append(b.byWallet[wallet], code)
		stats.UniqueUses++
	}
	paid.Add(paid, amount)
}

func (b *codeBook) hasUsed(wallet common.Address, code string) bool {
	_, ok := b.used[wallet][code]
	return ok
}

func (b *codeBook) paidWith(wallet common.Address, code string) *uint256.Int {
	if paid, ok := b.used[wallet][code]; ok {
		return paid.Clone()
	}
	return new(uint256.Int)
}

// Codes returns every code used in the sale, in order of first use.
func (s *Sale) Codes() []string {
	return append([]string(nil), s.codes.codes...)
}

// CodesOf returns the codes wallet used, in order of first use.
func (s *Sale) CodesOf(wallet common.Address) []string {
	return append([]string(nil), s.codes.byWallet[wallet]...)
}

func (s *Sale) HasUsedCode(wallet common.Address, code string) bool {
	return s.codes.hasUsed(wallet, code)
}

// PaymentReceivedWithEachCode returns what wallet paid with code.
func (s *Sale) PaymentReceivedWithEachCode(wallet common.Address, code string) *uint256.Int {
	return s.codes.paidWith(wallet, code)
}

func (s *Sale) CodeStats(code string) (CodeStats, bool) {
	stats, ok := s.codes.stats[code]
	if !ok {
		return CodeStats{}, false
	}
	return CodeStats{Code: stats.Code, Amount: stats.Amount.Clone(), UniqueUses: stats.UniqueUses}, true
}
